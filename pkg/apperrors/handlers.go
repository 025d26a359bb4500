package apperrors

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders an AppError as JSON or as the shared HTML error page.
type GinErrorHandler struct {
	Debug    bool
	Template string
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("Server error: %v", appErr)
	}

	if h.Template == "" || !wantsHTML(c) {
		c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
		return
	}
	c.HTML(appErr.HTTPCode, h.Template, gin.H{
		"Title": http.StatusText(appErr.HTTPCode),
		"Error": appErr.Message,
	})
}

// HandleError is the shortcut used by handlers.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode, Template: "error.html"}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// wantsHTML is true for browser navigations, which always list text/html.
func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), gin.MIMEHTML)
}
