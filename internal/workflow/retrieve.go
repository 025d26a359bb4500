package workflow

import (
	"context"
	"errors"

	"jobboard_front/internal/apiclient"
	"jobboard_front/internal/logger"
)

type ViewState string

const (
	ViewLoading ViewState = "loading"
	ViewFailed  ViewState = "failed"
	ViewReady   ViewState = "ready"
)

// View is the retrieve-on-mount state of a page.
type View[T any] struct {
	State        ViewState
	Data         T
	ErrorMessage string
	Err          error
}

func Loading[T any]() View[T] {
	return View[T]{State: ViewLoading}
}

func (v View[T]) Ready() bool {
	return v.State == ViewReady
}

// NotFound reports whether the fetch failed with a 404.
func (v View[T]) NotFound() bool {
	var apiErr *apiclient.APIError
	return errors.As(v.Err, &apiErr) && apiErr.NotFound()
}

// Retrieve issues one GET and decodes the record into T.
func Retrieve[T any](ctx context.Context, api Doer, req *apiclient.Request, failureMessage string) View[T] {
	view := Loading[T]()

	res, err := api.Do(ctx, req)
	if err == nil {
		err = res.Decode(&view.Data)
	}
	if err != nil {
		logger.CtxDebug(ctx, "retrieve failed", "path", req.Path, "error", err.Error())
		view.State = ViewFailed
		view.ErrorMessage = failureMessage
		view.Err = err
		return view
	}

	view.State = ViewReady
	return view
}
