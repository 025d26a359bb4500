package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"jobboard_front/internal/apiclient"
	"jobboard_front/internal/forms"
	"jobboard_front/internal/logger"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/session"
	"jobboard_front/internal/validator"
	"jobboard_front/internal/workflow"
	"jobboard_front/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	forms     forms.Deps
	live      notify.Notifier // push в открытые вкладки других пользователей
}

func NewBaseHandler(v *validator.Validator, deps forms.Deps, live notify.Notifier) *BaseHandler {
	if live == nil {
		live = notify.Nop{}
	}
	return &BaseHandler{
		validator: v,
		forms:     deps,
		live:      live,
	}
}

// ============================================================================
// 2. Сессия и уведомления запроса
// ============================================================================

func (h *BaseHandler) Session(c *gin.Context) session.Session {
	return session.FromContext(c)
}

// Toasts is the notification surface of the current page.
func (h *BaseHandler) Toasts(c *gin.Context) *notify.Collector {
	return notify.FromContext(c)
}

// ============================================================================
// 3. Рендеринг
// ============================================================================

// Render adds the session and pending toasts to data and renders the page template.
func (h *BaseHandler) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = h.Session(c)
	data["Notifications"] = h.Toasts(c).Drain()
	c.HTML(status, name, data)
}

// RenderForm renders a page that hosts a form, with its fields and inline error.
func (h *BaseHandler) RenderForm(c *gin.Context, err error, name string, form *workflow.Form, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Form"] = form.Fields()
	data["Error"] = form.ErrorMessage()
	data["Submitting"] = form.State() == workflow.StateSubmitting
	h.Render(c, statusOf(err), name, data)
}

// RedirectWithToasts keeps the pending toasts for the next page and redirects (PRG).
func (h *BaseHandler) RedirectWithToasts(c *gin.Context, location string) {
	notify.Flash(c)
	c.Redirect(http.StatusSeeOther, location)
}

// ============================================================================
// 4. Ошибки и параметры
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if appErr, ok := apperrors.AsAppError(err); ok {
		logger.CtxWarn(ctx, "Service error", "error", appErr.Message, "path", c.Request.URL.Path)
		apperrors.HandleError(c, appErr)
		return
	}
	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// ParseParamID reads a positive numeric path parameter.
func (h *BaseHandler) ParseParamID(c *gin.Context, key string) (int64, bool) {
	raw := c.Param(key)
	if err := h.validator.Var(raw, "required,numeric-id"); err != nil {
		logger.CtxWarn(c.Request.Context(), "Invalid path parameter", "key", key, "value", raw)
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid path parameter: "+key))
		return 0, false
	}
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id, true
}

// statusOf maps a submission error to the status of the re-rendered page.
func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		return apiErr.Status
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.HTTPCode
	}
	if errors.Is(err, workflow.ErrSubmitting) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
