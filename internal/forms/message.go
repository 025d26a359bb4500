package forms

import (
	"net/http"
	"strconv"
	"strings"

	"jobboard_front/internal/apiclient"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/session"
	"jobboard_front/internal/validator"
	"jobboard_front/internal/workflow"
)

const (
	MsgSelectRecipient = "Please select a recipient."
	MsgMessageToSelf   = "You cannot send a message to yourself."
	MsgEmptyMessage    = "Please enter a message."
	MsgSendFailed      = "Failed to send the message."
	MsgSendUnexpected  = "An unexpected error occurred while sending the message."
)

type messagePayload struct {
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
}

// MessageDefinition posts {receiver_id, content} to /messages.
func MessageDefinition(v *validator.Validator) *workflow.Definition {
	return &workflow.Definition{
		Name:   "message",
		Schema: []string{"receiver_id", "content"},
		Rules: []workflow.Rule{
			workflow.RequiredID(v, "receiver_id", MsgSelectRecipient),
			workflow.NotSelf("receiver_id", MsgMessageToSelf),
			workflow.NotBlank(v, "content", MsgEmptyMessage),
		},
		Build: func(fields workflow.Fields, _ session.Session) (*apiclient.Request, error) {
			receiverID, err := strconv.ParseInt(strings.TrimSpace(fields["receiver_id"]), 10, 64)
			if err != nil {
				return nil, err
			}
			return &apiclient.Request{
				Method: http.MethodPost,
				Path:   "/messages",
				JSON:   messagePayload{ReceiverID: receiverID, Content: fields["content"]},
			}, nil
		},
		ResetOnSuccess:    []string{"content"},
		SuccessTitle:      "Message sent",
		FailureTitle:      "Error",
		FailureMessage:    MsgSendFailed,
		UnexpectedMessage: MsgSendUnexpected,
	}
}

// NewMessageForm builds the message form for a receiver. cb.OnSuccess is the onMessageSent hook.
func NewMessageForm(d Deps, s session.Session, n notify.Notifier, receiverID string, cb Callbacks) *workflow.Form {
	opts := d.options(n, cb)
	if cb.OnSuccess != nil {
		opts = append(opts, workflow.OnSuccess(func(*apiclient.Response) { cb.OnSuccess() }))
	}

	form := workflow.New(MessageDefinition(d.Validator), d.API, s, opts...)
	form.UpdateField("receiver_id", receiverID)
	return form
}
