// Package forms defines the page forms of the site as instances of workflow.Form.
package forms

import (
	"jobboard_front/internal/imageprocessor"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/validator"
	"jobboard_front/internal/workflow"
)

// Deps are the collaborators shared by every form.
type Deps struct {
	API       workflow.Doer
	Validator *validator.Validator
	Images    *imageprocessor.Processor
	Observer  workflow.Observer
}

// Callbacks are the page hooks fired after a submission settles.
type Callbacks struct {
	OnSuccess func()
	OnError   func(error)
}

func (d Deps) options(n notify.Notifier, cb Callbacks) []workflow.Option {
	opts := []workflow.Option{workflow.WithNotifier(n)}
	if d.Observer != nil {
		opts = append(opts, workflow.WithObserver(d.Observer))
	}
	if cb.OnError != nil {
		opts = append(opts, workflow.OnError(cb.OnError))
	}
	return opts
}
