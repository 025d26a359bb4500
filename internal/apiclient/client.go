// Package apiclient talks to the job-board REST API with bearer authentication.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"jobboard_front/internal/logger"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL. A zero timeout means no client timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Request describes one API call. At most one of JSON and Multipart is set.
type Request struct {
	Method    string
	Path      string
	Token     string
	JSON      interface{}
	Multipart *Multipart
}

// Multipart is a form-data body: text fields in order plus optional files.
type Multipart struct {
	Fields []Field
	Files  []File
}

type Field struct {
	Name  string
	Value string
}

type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("apiclient: empty response body (status %d)", r.Status)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

// Do sends exactly one request. Non-2xx answers are returned as *APIError,
// network failures as *TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + req.Path
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	start := time.Now()
	res, err := c.http.Do(httpReq)
	if err != nil {
		logger.APILog(req.Method, url, 0, time.Since(start), err)
		return nil, &TransportError{Method: req.Method, URL: url, Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		logger.APILog(req.Method, url, res.StatusCode, time.Since(start), err)
		return nil, &TransportError{Method: req.Method, URL: url, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := newAPIError(res.StatusCode, resBody)
		logger.APILog(req.Method, url, res.StatusCode, time.Since(start), apiErr)
		return nil, apiErr
	}

	logger.APILog(req.Method, url, res.StatusCode, time.Since(start), nil)
	return &Response{Status: res.StatusCode, Body: resBody}, nil
}

func encodeBody(req *Request) (io.Reader, string, error) {
	switch {
	case req.Multipart != nil:
		return encodeMultipart(req.Multipart)
	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("apiclient: encode json body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	default:
		return nil, "", nil
	}
}

func encodeMultipart(m *Multipart) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("apiclient: write field %s: %w", f.Name, err)
		}
	}

	for _, f := range m.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.Field, f.Filename))
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		} else {
			h.Set("Content-Type", "application/octet-stream")
		}

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("apiclient: create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("apiclient: write part %s: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("apiclient: close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
