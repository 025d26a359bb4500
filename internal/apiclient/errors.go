package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Errors  []string
	Message string
}

func (e *APIError) Error() string {
	switch {
	case len(e.Errors) > 0:
		return fmt.Sprintf("api returned %d: %s", e.Status, e.Joined())
	case e.Message != "":
		return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("api returned %d", e.Status)
	}
}

// Joined returns the server error list joined with ", ".
func (e *APIError) Joined() string {
	return strings.Join(e.Errors, ", ")
}

func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// TransportError means no HTTP answer was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var payload struct {
		Errors  json.RawMessage `json:"errors"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	apiErr.Errors = parseErrorList(payload.Errors)
	apiErr.Message = payload.Message
	if apiErr.Message == "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}

// parseErrorList accepts ["a","b"], "a" or {"field":["a"]}.
func parseErrorList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}

	var byField map[string][]string
	if err := json.Unmarshal(raw, &byField); err == nil {
		fields := make([]string, 0, len(byField))
		for field := range byField {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			for _, msg := range byField[field] {
				list = append(list, field+" "+msg)
			}
		}
		return list
	}
	return nil
}
