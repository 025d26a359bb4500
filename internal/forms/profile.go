package forms

import (
	"context"
	"fmt"
	"net/http"

	"jobboard_front/internal/apiclient"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/session"
	"jobboard_front/internal/workflow"
)

const (
	MsgProfileNotOwner   = "You can only edit your own profile."
	MsgProfileFailed     = "API request failed."
	MsgProfileUnexpected = "An unexpected error occurred while saving the profile."
	MsgProfileLoadFailed = "Failed to load the profile."
)

// Profile mirrors the API profile record; a user has at most one.
type Profile struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Introduction string `json:"introduction"`
	Skills       string `json:"skills"`
	CompanyName  string `json:"company_name"`
	Industry     string `json:"industry"`
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

var profileSchema = []string{"introduction", "skills", "company_name", "industry"}

func ProfileFields(p Profile) workflow.Fields {
	return workflow.Fields{
		"introduction": p.Introduction,
		"skills":       p.Skills,
		"company_name": p.CompanyName,
		"industry":     p.Industry,
	}
}

type profilePayload struct {
	Introduction string `json:"introduction"`
	Skills       string `json:"skills"`
	CompanyName  string `json:"company_name"`
	Industry     string `json:"industry"`
}

// orSpace keeps blank fields from being dropped by the API on update.
func orSpace(s string) string {
	if s == "" {
		return " "
	}
	return s
}

// ProfileDefinition creates (POST) or updates (PUT) the profile of userID.
func ProfileDefinition(userID int64, exists bool) *workflow.Definition {
	def := &workflow.Definition{
		Name:   "profile",
		Schema: profileSchema,
		Rules: []workflow.Rule{
			func(_ workflow.Fields, s session.Session) string {
				if !s.IsUser(userID) {
					return MsgProfileNotOwner
				}
				return ""
			},
		},
		FailureTitle:      "Error",
		FailureMessage:    MsgProfileFailed,
		UnexpectedMessage: MsgProfileUnexpected,
		ServerMessage:     true,
	}

	if exists {
		def.SuccessTitle = "Profile updated"
		def.Build = func(fields workflow.Fields, _ session.Session) (*apiclient.Request, error) {
			return &apiclient.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/users/%d/profiles/1", userID),
				JSON: profilePayload{
					Introduction: orSpace(fields["introduction"]),
					Skills:       orSpace(fields["skills"]),
					CompanyName:  orSpace(fields["company_name"]),
					Industry:     orSpace(fields["industry"]),
				},
			}, nil
		}
		return def
	}

	def.SuccessTitle = "Profile created"
	def.Build = func(fields workflow.Fields, _ session.Session) (*apiclient.Request, error) {
		return &apiclient.Request{
			Method: http.MethodPost,
			Path:   fmt.Sprintf("/users/%d/profiles", userID),
			JSON: profilePayload{
				Introduction: fields["introduction"],
				Skills:       fields["skills"],
				CompanyName:  fields["company_name"],
				Industry:     fields["industry"],
			},
		}, nil
	}
	return def
}

// NewProfileForm builds the create or update form. onSaved receives the stored profile.
func NewProfileForm(d Deps, s session.Session, n notify.Notifier, userID int64, exists bool, onSaved func(Profile), onError func(error)) *workflow.Form {
	opts := d.options(n, Callbacks{OnError: onError})
	if onSaved != nil {
		opts = append(opts, workflow.OnSuccess(func(res *apiclient.Response) {
			var saved Profile
			if err := res.Decode(&saved); err == nil {
				onSaved(saved)
			}
		}))
	}
	return workflow.New(ProfileDefinition(userID, exists), d.API, s, opts...)
}

// ProfilePage is everything the profile page renders.
type ProfilePage struct {
	UserID       int64
	Username     string
	Profile      *Profile
	CanEdit      bool
	ImageURL     string
	ErrorMessage string
}

// Exists reports whether the user already has a profile.
func (p ProfilePage) Exists() bool {
	return p.Profile != nil
}

// LoadProfilePage fetches the profile (404 means none yet) and then the user's public record.
func LoadProfilePage(ctx context.Context, d Deps, s session.Session, userID int64, imageURL string) ProfilePage {
	page := ProfilePage{
		UserID:   userID,
		CanEdit:  s.IsUser(userID),
		ImageURL: imageURL,
	}

	profile := workflow.Retrieve[Profile](ctx, d.API, &apiclient.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/users/%d/profiles/1", userID),
		Token:  s.Token,
	}, MsgProfileLoadFailed)

	switch {
	case profile.Ready():
		page.Profile = &profile.Data
	case !profile.NotFound():
		page.ErrorMessage = profile.ErrorMessage
		return page
	}

	user := workflow.Retrieve[User](ctx, d.API, &apiclient.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/users/show_by_id/%d", userID),
	}, MsgProfileLoadFailed)
	if !user.Ready() {
		page.ErrorMessage = user.ErrorMessage
		return page
	}
	page.Username = user.Data.Name
	return page
}
