package forms

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"jobboard_front/internal/apiclient"
	"jobboard_front/internal/imageprocessor"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/session"
	"jobboard_front/internal/validator"
	"jobboard_front/internal/workflow"
)

const (
	MsgTitleRequired       = "Please enter a title."
	MsgDescriptionRequired = "Please enter a description."
	MsgInvalidImage        = "The image must be a JPEG, PNG, GIF or WebP file within the upload limit."
	MsgJobLoadFailed       = "Failed to load the job."
	MsgJobUpdateFailed     = "Failed to update the job."
	MsgJobUpdateUnexpected = "An error occurred while updating the job."
)

// Job mirrors the API job record.
type Job struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Salary         *int   `json:"salary"`
	Requirements   string `json:"requirements"`
	Benefits       string `json:"benefits"`
	EmploymentType string `json:"employment_type"`
	ImageURL       string `json:"image_url,omitempty"`
}

var jobSchema = []string{"title", "description", "location", "salary", "requirements", "benefits", "employment_type"}

// Upload is a raw image file posted with the job form.
type Upload struct {
	Filename string
	Data     []byte
}

// JobFields maps a fetched job to form fields. A null salary becomes an empty field, 0 stays "0".
func JobFields(j Job) workflow.Fields {
	salary := ""
	if j.Salary != nil {
		salary = strconv.Itoa(*j.Salary)
	}
	return workflow.Fields{
		"title":           j.Title,
		"description":     j.Description,
		"location":        j.Location,
		"salary":          salary,
		"requirements":    j.Requirements,
		"benefits":        j.Benefits,
		"employment_type": j.EmploymentType,
	}
}

// ParseSalary reads the leading integer of s. No digits means no salary.
func ParseSalary(s string) *int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

type jobPayload struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Salary         *int   `json:"salary"`
	Requirements   string `json:"requirements"`
	Benefits       string `json:"benefits"`
	EmploymentType string `json:"employment_type"`
}

// jobImage prepares the optional upload once, during validation.
type jobImage struct {
	upload *Upload
	images *imageprocessor.Processor

	mu       sync.Mutex
	prepared *imageprocessor.Image
}

func (ji *jobImage) rule(workflow.Fields, session.Session) string {
	if ji.upload == nil || len(ji.upload.Data) == 0 {
		return ""
	}
	img, err := ji.images.Prepare(ji.upload.Filename, ji.upload.Data)
	if err != nil {
		return MsgInvalidImage
	}
	ji.mu.Lock()
	ji.prepared = img
	ji.mu.Unlock()
	return ""
}

func (ji *jobImage) get() *imageprocessor.Image {
	ji.mu.Lock()
	defer ji.mu.Unlock()
	return ji.prepared
}

// JobDefinition updates job jobID with PUT /jobs/:id, as JSON or as multipart when an image is attached.
func JobDefinition(v *validator.Validator, images *imageprocessor.Processor, jobID int64, upload *Upload) *workflow.Definition {
	img := &jobImage{upload: upload, images: images}
	path := fmt.Sprintf("/jobs/%d", jobID)

	rules := []workflow.Rule{
		workflow.NotBlank(v, "title", MsgTitleRequired),
		workflow.NotBlank(v, "description", MsgDescriptionRequired),
	}
	if upload != nil && images != nil {
		rules = append(rules, img.rule)
	}

	return &workflow.Definition{
		Name:   "job",
		Schema: jobSchema,
		Rules:  rules,
		Build: func(fields workflow.Fields, _ session.Session) (*apiclient.Request, error) {
			req := &apiclient.Request{Method: http.MethodPut, Path: path}

			prepared := img.get()
			if prepared == nil {
				req.JSON = jobPayload{
					Title:          fields["title"],
					Description:    fields["description"],
					Location:       fields["location"],
					Salary:         ParseSalary(fields["salary"]),
					Requirements:   fields["requirements"],
					Benefits:       fields["benefits"],
					EmploymentType: fields["employment_type"],
				}
				return req, nil
			}

			salary := ""
			if n := ParseSalary(fields["salary"]); n != nil {
				salary = strconv.Itoa(*n)
			}
			mp := &apiclient.Multipart{}
			for _, name := range jobSchema {
				value := fields[name]
				if name == "salary" {
					value = salary
				}
				mp.Fields = append(mp.Fields, apiclient.Field{Name: name, Value: value})
			}
			mp.Files = []apiclient.File{{
				Field:       "image",
				Filename:    prepared.Filename,
				ContentType: prepared.ContentType,
				Data:        prepared.Data,
			}}
			req.Multipart = mp
			return req, nil
		},
		SuccessTitle:      "Job updated",
		FailureTitle:      "Error",
		FailureMessage:    MsgJobUpdateFailed,
		UnexpectedMessage: MsgJobUpdateUnexpected,
		ServerMessage:     true,
	}
}

// NewJobForm builds the edit form of jobID. cb.OnSuccess runs before the page redirects.
func NewJobForm(d Deps, s session.Session, n notify.Notifier, jobID int64, upload *Upload, cb Callbacks) *workflow.Form {
	opts := d.options(n, cb)
	if cb.OnSuccess != nil {
		opts = append(opts, workflow.OnSuccess(func(*apiclient.Response) { cb.OnSuccess() }))
	}
	return workflow.New(JobDefinition(d.Validator, d.Images, jobID, upload), d.API, s, opts...)
}

// FetchJob loads job jobID for editing.
func FetchJob(ctx context.Context, d Deps, s session.Session, jobID int64) workflow.View[Job] {
	return workflow.Retrieve[Job](ctx, d.API, &apiclient.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/jobs/%d", jobID),
		Token:  s.Token,
	}, MsgJobLoadFailed)
}
