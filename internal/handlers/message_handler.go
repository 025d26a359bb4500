package handlers

import (
	"context"
	"net/url"
	"strconv"

	"jobboard_front/internal/forms"
	"jobboard_front/internal/logger"
	"jobboard_front/internal/notify"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
}

func NewMessageHandler(base *BaseHandler) *MessageHandler {
	return &MessageHandler{BaseHandler: base}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.GET("/new", h.New)
		messages.POST("", h.Create)
	}
}

// New renders an empty message form; receiver_id preselects the recipient.
func (h *MessageHandler) New(c *gin.Context) {
	form := forms.NewMessageForm(h.forms, h.Session(c), h.Toasts(c), c.Query("receiver_id"), forms.Callbacks{})
	h.RenderForm(c, nil, "message.html", form, nil)
}

func (h *MessageHandler) Create(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	s := h.Session(c)
	receiverID := c.Request.PostForm.Get("receiver_id")
	ctx := c.Request.Context()

	form := forms.NewMessageForm(h.forms, s, h.Toasts(c), receiverID, forms.Callbacks{
		OnSuccess: func() { h.onMessageSent(ctx, s.UserID, receiverID) },
	})
	form.Bind(c.Request.PostForm)

	if err := form.Submit(ctx); err != nil {
		h.RenderForm(c, err, "message.html", form, nil)
		return
	}
	h.RedirectWithToasts(c, "/messages/new?receiver_id="+url.QueryEscape(receiverID))
}

// onMessageSent pushes a toast to the receiver's open tabs.
func (h *MessageHandler) onMessageSent(ctx context.Context, senderID int64, receiverID string) {
	id, err := strconv.ParseInt(receiverID, 10, 64)
	if err != nil {
		return
	}
	logger.CtxDebug(ctx, "message sent", "receiver_id", id)
	h.live.Notify(ctx, id, notify.Notification{
		Icon:  notify.IconInfo,
		Title: "New message",
		Text:  "You have a new message from user " + strconv.FormatInt(senderID, 10) + ".",
	})
}

