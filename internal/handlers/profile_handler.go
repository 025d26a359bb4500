package handlers

import (
	"fmt"
	"net/http"

	"jobboard_front/internal/forms"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	defaultImageURL string
}

func NewProfileHandler(base *BaseHandler, defaultImageURL string) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:     base,
		defaultImageURL: defaultImageURL,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users/:id")
	{
		users.GET("/profile", h.Show)
		users.POST("/profile", h.Save)
	}
}

// Show renders the profile; ?edit=1 opens the form for the owner.
func (h *ProfileHandler) Show(c *gin.Context) {
	userID, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	s := h.Session(c)
	page := forms.LoadProfilePage(c.Request.Context(), h.forms, s, userID, h.defaultImageURL)
	if page.ErrorMessage != "" {
		h.Render(c, http.StatusBadGateway, "profile.html", gin.H{"Page": page})
		return
	}

	data := gin.H{"Page": page}
	editing := page.CanEdit && (!page.Exists() || c.Query("edit") == "1")
	if !editing {
		h.Render(c, http.StatusOK, "profile.html", data)
		return
	}

	form := forms.NewProfileForm(h.forms, s, h.Toasts(c), userID, page.Exists(), nil, nil)
	if page.Exists() {
		form.Load(forms.ProfileFields(*page.Profile))
	}
	data["Editing"] = true
	h.RenderForm(c, nil, "profile.html", form, data)
}

// Save creates or updates the profile depending on the posted "exists" flag.
func (h *ProfileHandler) Save(c *gin.Context) {
	userID, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	s := h.Session(c)
	exists := c.Request.PostForm.Get("exists") == "1"

	form := forms.NewProfileForm(h.forms, s, h.Toasts(c), userID, exists, nil, nil)
	form.Bind(c.Request.PostForm)

	if err := form.Submit(c.Request.Context()); err != nil {
		page := forms.ProfilePage{
			UserID:   userID,
			CanEdit:  s.IsUser(userID),
			ImageURL: h.defaultImageURL,
		}
		if exists {
			page.Profile = &forms.Profile{UserID: userID}
		}
		h.RenderForm(c, err, "profile.html", form, gin.H{"Page": page, "Editing": true})
		return
	}
	h.RedirectWithToasts(c, fmt.Sprintf("/users/%d/profile", userID))
}

