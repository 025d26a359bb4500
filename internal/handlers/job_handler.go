package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"jobboard_front/internal/forms"
	"jobboard_front/internal/logger"
	"jobboard_front/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	indexPath string
	maxUpload int64
}

func NewJobHandler(base *BaseHandler, indexPath string, maxUpload int64) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		indexPath:   indexPath,
		maxUpload:   maxUpload,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.GET("/:id/edit", h.Edit)
		jobs.POST("/:id", h.Update)
	}
}

// Edit fetches the job and renders the edit form.
func (h *JobHandler) Edit(c *gin.Context) {
	jobID, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	s := h.Session(c)
	view := forms.FetchJob(c.Request.Context(), h.forms, s, jobID)
	if !view.Ready() {
		status := http.StatusBadGateway
		if view.NotFound() {
			status = http.StatusNotFound
		}
		h.Render(c, status, "job_edit.html", gin.H{"JobID": jobID, "LoadError": view.ErrorMessage})
		return
	}

	form := forms.NewJobForm(h.forms, s, h.Toasts(c), jobID, nil, forms.Callbacks{})
	form.Load(forms.JobFields(view.Data))
	h.RenderForm(c, nil, "job_edit.html", form, gin.H{"JobID": jobID, "ImageURL": view.Data.ImageURL})
}

// Update submits the edited job and redirects to the jobs index on success.
func (h *JobHandler) Update(c *gin.Context) {
	jobID, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	upload, err := h.readUpload(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	form := forms.NewJobForm(h.forms, h.Session(c), h.Toasts(c), jobID, upload, forms.Callbacks{
		OnSuccess: func() { logger.CtxInfo(ctx, "job updated", "job_id", jobID) },
	})
	form.Bind(c.Request.PostForm)

	if err := form.Submit(ctx); err != nil {
		h.RenderForm(c, err, "job_edit.html", form, gin.H{"JobID": jobID})
		return
	}
	h.RedirectWithToasts(c, h.indexPath)
}

// readUpload parses the posted form and returns the optional "image" file.
func (h *JobHandler) readUpload(c *gin.Context) (*forms.Upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+(1<<20))

	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, c.Request.ParseForm()
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.New(apperrors.CodeValidationFailed, "job", "The upload is too large.", http.StatusRequestEntityTooLarge)
		}
		return nil, apperrors.NewBadRequestError("Invalid form data")
	}

	file, header, err := c.Request.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid image upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &forms.Upload{Filename: header.Filename, Data: data}, nil
}
