// Package workflow implements the form-submission lifecycle shared by every page:
// validate, send one API request, then settle into a success or error state.
package workflow

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"jobboard_front/internal/apiclient"
	"jobboard_front/internal/logger"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/session"
	"jobboard_front/pkg/apperrors"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// ErrSubmitting is returned when Submit is called while a submission is in flight.
var ErrSubmitting = errors.New("workflow: submission already in progress")

// Fields holds one text slot per schema name.
type Fields map[string]string

func (f Fields) clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Doer sends one API request.
type Doer interface {
	Do(ctx context.Context, req *apiclient.Request) (*apiclient.Response, error)
}

// Definition parameterizes a Form for one page.
type Definition struct {
	Name   string
	Schema []string
	Rules  []Rule

	// Build turns the validated fields into the request. The bearer token is added by the Form.
	Build func(fields Fields, s session.Session) (*apiclient.Request, error)

	// ResetOnSuccess lists the fields cleared after a successful submission.
	ResetOnSuccess []string

	SuccessTitle      string
	FailureTitle      string
	FailureMessage    string
	UnexpectedMessage string

	// ServerMessage makes a server "message" win over FailureMessage when no error list is present.
	ServerMessage bool
}

// Form is one instance of a page form bound to an explicit session.
type Form struct {
	def      *Definition
	api      Doer
	session  session.Session
	notifier notify.Notifier
	observer Observer

	onSuccess func(*apiclient.Response)
	onError   func(error)

	mu           sync.Mutex
	fields       Fields
	state        State
	errorMessage string
}

type Option func(*Form)

func WithNotifier(n notify.Notifier) Option {
	return func(f *Form) { f.notifier = n }
}

func WithObserver(o Observer) Option {
	return func(f *Form) { f.observer = o }
}

// OnSuccess registers the callback run once per successful submission.
func OnSuccess(fn func(*apiclient.Response)) Option {
	return func(f *Form) { f.onSuccess = fn }
}

// OnError registers the callback run once per failed request.
func OnError(fn func(error)) Option {
	return func(f *Form) { f.onError = fn }
}

func New(def *Definition, api Doer, s session.Session, opts ...Option) *Form {
	f := &Form{
		def:      def,
		api:      api,
		session:  s,
		notifier: notify.Nop{},
		fields:   make(Fields, len(def.Schema)),
		state:    StateIdle,
	}
	for _, name := range def.Schema {
		f.fields[name] = ""
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Name() string {
	return f.def.Name
}

func (f *Form) Session() session.Session {
	return f.session
}

// UpdateField sets a schema field. Names outside the schema are ignored.
func (f *Form) UpdateField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.fields[name]; ok {
		f.fields[name] = value
	}
}

// Load replaces every schema field, typically with a fetched record.
func (f *Form) Load(values Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name := range f.fields {
		f.fields[name] = values[name]
	}
}

// Bind copies the posted values of schema fields.
func (f *Form) Bind(values url.Values) {
	for _, name := range f.def.Schema {
		if vs, ok := values[name]; ok && len(vs) > 0 {
			f.UpdateField(name, vs[0])
		}
	}
}

func (f *Form) Field(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[name]
}

func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields.clone()
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorMessage
}

// Submit runs one submission attempt. It returns nil on success, a
// VALIDATION_FAILED or AUTH_MISSING error before any request is made, or the
// API/unexpected failure after exactly one request.
func (f *Form) Submit(ctx context.Context) error {
	ctx = logger.WithForm(ctx, f.def.Name)

	fields, err := f.begin()
	if err != nil {
		return err
	}
	defer f.settle()

	start := time.Now()
	result := Result{Form: f.def.Name, UserID: f.session.UserID}

	if !f.session.Authenticated() {
		f.setError(apperrors.ErrAuthMissing.Message)
		logger.CtxWarn(ctx, "submission aborted: no auth token")
		result.Outcome = OutcomeAuthMissing
		f.observe(ctx, result, start)
		return apperrors.ErrAuthMissing
	}

	req, err := f.def.Build(fields, f.session)
	if err != nil {
		result.Outcome = OutcomeUnexpected
		return f.fail(ctx, result, start, apperrors.ErrUnexpected(err, f.def.Name, f.def.UnexpectedMessage))
	}
	req.Token = f.session.Token
	result.Method, result.Path = req.Method, req.Path

	res, err := f.api.Do(ctx, req)
	if err != nil {
		appErr := f.describe(err)
		result.Outcome = outcomeOf(appErr)
		result.Status, result.Errors = apiDetails(err)
		return f.fail(ctx, result, start, appErr)
	}

	f.mu.Lock()
	for _, name := range f.def.ResetOnSuccess {
		f.fields[name] = ""
	}
	f.mu.Unlock()

	if f.onSuccess != nil {
		f.onSuccess(res)
	}
	if f.def.SuccessTitle != "" {
		f.notifier.Notify(ctx, f.session.UserID, notify.Success(f.def.SuccessTitle))
	}

	result.Outcome = OutcomeSuccess
	result.Status = res.Status
	f.observe(ctx, result, start)
	logger.CtxInfo(ctx, "submission succeeded", "method", req.Method, "path", req.Path, "status", res.Status)
	return nil
}

// begin validates the fields and enters the submitting state.
func (f *Form) begin() (Fields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return nil, ErrSubmitting
	}

	for _, rule := range f.def.Rules {
		if msg := rule(f.fields, f.session); msg != "" {
			f.errorMessage = msg
			return nil, apperrors.ValidationError(f.def.Name, msg)
		}
	}

	f.state = StateSubmitting
	f.errorMessage = ""
	return f.fields.clone(), nil
}

func (f *Form) settle() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
}

func (f *Form) setError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errorMessage = msg
}

func (f *Form) fail(ctx context.Context, result Result, start time.Time, appErr *apperrors.AppError) error {
	f.setError(appErr.Message)
	logger.CtxWarn(ctx, "submission failed", "code", appErr.Code, "error", appErr.Error())

	f.notifier.Notify(ctx, f.session.UserID, notify.Failure(f.def.FailureTitle, appErr.Message))
	if f.onError != nil {
		f.onError(appErr)
	}

	f.observe(ctx, result, start)
	return appErr
}

func (f *Form) observe(ctx context.Context, result Result, start time.Time) {
	if f.observer == nil {
		return
	}
	result.Duration = time.Since(start)
	f.observer.Observe(ctx, result)
}

// describe maps a request failure to the message shown on the page.
func (f *Form) describe(err error) *apperrors.AppError {
	var apiErr *apiclient.APIError
	var transportErr *apiclient.TransportError

	switch {
	case errors.As(err, &apiErr):
		msg := f.def.FailureMessage
		switch {
		case len(apiErr.Errors) > 0:
			msg = apiErr.Joined()
		case f.def.ServerMessage && apiErr.Message != "":
			msg = apiErr.Message
		}
		appErr := apperrors.ErrAPIRequest(err, f.def.Name, msg)
		if len(apiErr.Errors) > 0 {
			appErr.WithDetails(apiErr.Errors)
		}
		return appErr
	case errors.As(err, &transportErr):
		return apperrors.ErrAPIRequest(err, f.def.Name, f.def.FailureMessage)
	default:
		return apperrors.ErrUnexpected(err, f.def.Name, f.def.UnexpectedMessage)
	}
}

func apiDetails(err error) (int, []string) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Errors
	}
	return 0, nil
}
