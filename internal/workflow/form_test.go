package workflow

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"jobboard_front/internal/apiclient"
	"jobboard_front/internal/apitest"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/session"
	"jobboard_front/internal/validator"
	"jobboard_front/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	results []Result
}

func (r *recorder) Observe(_ context.Context, result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func noteDefinition() *Definition {
	v := validator.New()
	return &Definition{
		Name:   "note",
		Schema: []string{"receiver_id", "content"},
		Rules: []Rule{
			RequiredID(v, "receiver_id", "Pick a receiver."),
			NotSelf("receiver_id", "Not yourself."),
			NotBlank(v, "content", "Write something."),
		},
		Build: func(fields Fields, _ session.Session) (*apiclient.Request, error) {
			id, err := strconv.ParseInt(fields["receiver_id"], 10, 64)
			if err != nil {
				return nil, err
			}
			return &apiclient.Request{
				Method: http.MethodPost,
				Path:   "/notes",
				JSON:   map[string]any{"receiver_id": id, "content": fields["content"]},
			}, nil
		},
		ResetOnSuccess:    []string{"content"},
		SuccessTitle:      "Sent",
		FailureTitle:      "Error",
		FailureMessage:    "Failed to send.",
		UnexpectedMessage: "Unexpected error.",
	}
}

type harness struct {
	api       *apitest.Server
	form      *Form
	toasts    *notify.Collector
	journal   *recorder
	successes int
	failures  []error
}

func newHarness(t *testing.T, def *Definition, s session.Session) *harness {
	h := &harness{api: apitest.NewServer(t), toasts: notify.NewCollector(), journal: &recorder{}}
	h.form = New(def, apiclient.New(h.api.URL, 0), s,
		WithNotifier(h.toasts),
		WithObserver(h.journal),
		OnSuccess(func(*apiclient.Response) { h.successes++ }),
		OnError(func(err error) { h.failures = append(h.failures, err) }),
	)
	return h
}

var alice = session.Session{Token: "tok", UserID: 1}

func TestSubmitBlankContentMakesNoRequest(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		h := newHarness(t, noteDefinition(), alice)
		h.form.UpdateField("receiver_id", "2")
		h.form.UpdateField("content", content)

		err := h.form.Submit(context.Background())

		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
		assert.Equal(t, "Write something.", h.form.ErrorMessage())
		assert.Equal(t, 0, h.api.CallCount())
		assert.Empty(t, h.toasts.Drain())
		assert.Empty(t, h.failures)
		assert.Equal(t, StateIdle, h.form.State())
	}
}

func TestSubmitRuleOrderFirstFailureWins(t *testing.T) {
	h := newHarness(t, noteDefinition(), alice)

	require.Error(t, h.form.Submit(context.Background()))
	assert.Equal(t, "Pick a receiver.", h.form.ErrorMessage())

	h.form.UpdateField("receiver_id", "1")
	require.Error(t, h.form.Submit(context.Background()))
	assert.Equal(t, "Not yourself.", h.form.ErrorMessage())
	assert.Equal(t, 0, h.api.CallCount())
}

func TestSubmitMissingTokenAbortsBeforeRequest(t *testing.T) {
	h := newHarness(t, noteDefinition(), session.Session{UserID: 1})
	h.form.UpdateField("receiver_id", "2")
	h.form.UpdateField("content", "hello")

	err := h.form.Submit(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrAuthMissing)
	assert.Equal(t, apperrors.ErrAuthMissing.Message, h.form.ErrorMessage())
	assert.Equal(t, 0, h.api.CallCount())
	assert.Empty(t, h.failures)
	assert.Equal(t, StateIdle, h.form.State())
	require.Len(t, h.journal.results, 1)
	assert.Equal(t, OutcomeAuthMissing, h.journal.results[0].Outcome)
}

func TestSubmitSuccess(t *testing.T) {
	h := newHarness(t, noteDefinition(), alice)
	h.api.Handle(http.MethodPost, "/notes", http.StatusCreated, map[string]any{"id": 10})
	h.form.UpdateField("receiver_id", "2")
	h.form.UpdateField("content", "hello")

	require.NoError(t, h.form.Submit(context.Background()))

	assert.Equal(t, 1, h.api.CallCount())
	assert.Equal(t, 1, h.successes)
	assert.Empty(t, h.failures)
	assert.Equal(t, "", h.form.Field("content"))
	assert.Equal(t, "2", h.form.Field("receiver_id"))
	assert.Equal(t, "", h.form.ErrorMessage())
	assert.Equal(t, StateIdle, h.form.State())
	assert.Equal(t, []notify.Notification{notify.Success("Sent")}, h.toasts.Drain())

	call, _ := h.api.LastCall()
	assert.Equal(t, "Bearer tok", call.Auth)

	require.Len(t, h.journal.results, 1)
	got := h.journal.results[0]
	assert.Equal(t, OutcomeSuccess, got.Outcome)
	assert.Equal(t, http.StatusCreated, got.Status)
	assert.Equal(t, "/notes", got.Path)
}

func TestSubmitErrorListIsJoined(t *testing.T) {
	h := newHarness(t, noteDefinition(), alice)
	h.api.Handle(http.MethodPost, "/notes", http.StatusUnprocessableEntity, map[string]any{
		"errors": []string{"content required"},
	})
	h.form.UpdateField("receiver_id", "2")
	h.form.UpdateField("content", "hello")

	err := h.form.Submit(context.Background())

	assert.True(t, apperrors.HasCode(err, apperrors.CodeAPIRequestFailed))
	assert.Equal(t, "content required", h.form.ErrorMessage())
	assert.Len(t, h.failures, 1)
	assert.Equal(t, 0, h.successes)
	assert.Equal(t, "hello", h.form.Field("content"))
	assert.Equal(t, []notify.Notification{notify.Failure("Error", "content required")}, h.toasts.Drain())
	assert.Equal(t, StateIdle, h.form.State())
	assert.Equal(t, 1, h.api.CallCount())
	assert.Equal(t, []string{"content required"}, h.journal.results[0].Errors)
}

func TestSubmitFallbackMessages(t *testing.T) {
	def := noteDefinition()
	h := newHarness(t, def, alice)
	h.api.Handle(http.MethodPost, "/notes", http.StatusBadRequest, map[string]any{"message": "quota exceeded"})
	h.form.UpdateField("receiver_id", "2")
	h.form.UpdateField("content", "hello")

	require.Error(t, h.form.Submit(context.Background()))
	assert.Equal(t, "Failed to send.", h.form.ErrorMessage())

	def.ServerMessage = true
	require.Error(t, h.form.Submit(context.Background()))
	assert.Equal(t, "quota exceeded", h.form.ErrorMessage())
	assert.Len(t, h.failures, 2)
}

func TestSubmitTransportFailure(t *testing.T) {
	h := newHarness(t, noteDefinition(), alice)
	h.api.Close()
	h.form.UpdateField("receiver_id", "2")
	h.form.UpdateField("content", "hello")

	err := h.form.Submit(context.Background())

	assert.True(t, apperrors.HasCode(err, apperrors.CodeAPIRequestFailed))
	assert.Equal(t, "Failed to send.", h.form.ErrorMessage())
	assert.Len(t, h.failures, 1)
	assert.Equal(t, StateIdle, h.form.State())
}

type brokenDoer struct{ calls int }

func (b *brokenDoer) Do(context.Context, *apiclient.Request) (*apiclient.Response, error) {
	b.calls++
	return nil, errors.New("boom")
}

func TestSubmitUnexpectedFailure(t *testing.T) {
	doer := &brokenDoer{}
	var onErr []error
	form := New(noteDefinition(), doer, alice, OnError(func(err error) { onErr = append(onErr, err) }))
	form.UpdateField("receiver_id", "2")
	form.UpdateField("content", "hello")

	err := form.Submit(context.Background())

	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnexpectedError))
	assert.Equal(t, "Unexpected error.", form.ErrorMessage())
	assert.Equal(t, 1, doer.calls)
	assert.Len(t, onErr, 1)
	assert.Equal(t, StateIdle, form.State())
}

func TestSubmitWhileSubmittingIsRejected(t *testing.T) {
	var form *Form
	var nested error
	def := noteDefinition()
	build := def.Build
	def.Build = func(fields Fields, s session.Session) (*apiclient.Request, error) {
		assert.Equal(t, StateSubmitting, form.State())
		nested = form.Submit(context.Background())
		return build(fields, s)
	}

	api := apitest.NewServer(t)
	api.Handle(http.MethodPost, "/notes", http.StatusCreated, nil)
	form = New(def, apiclient.New(api.URL, 0), alice)
	form.UpdateField("receiver_id", "2")
	form.UpdateField("content", "hello")

	require.NoError(t, form.Submit(context.Background()))
	assert.ErrorIs(t, nested, ErrSubmitting)
	assert.Equal(t, 1, api.CallCount())
}

func TestBindIgnoresUnknownFields(t *testing.T) {
	form := New(noteDefinition(), &brokenDoer{}, alice)
	form.Bind(url.Values{"content": {"hi"}, "admin": {"true"}})
	form.UpdateField("other", "x")

	assert.Equal(t, Fields{"receiver_id": "", "content": "hi"}, form.Fields())
}
