package apiclient

import (
	"context"
	"net/http"
	"testing"

	"jobboard_front/internal/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSendsBearerAndJSON(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodPost, "/messages", http.StatusCreated, map[string]any{"id": 1})

	client := New(api.URL+"/", 0)
	res, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/messages",
		Token:  "tok",
		JSON:   map[string]any{"receiver_id": 2, "content": "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.Status)

	call, ok := api.LastCall()
	require.True(t, ok)
	assert.Equal(t, "Bearer tok", call.Auth)
	assert.Equal(t, "application/json", call.ContentType)

	var body map[string]any
	call.JSON(t, &body)
	assert.EqualValues(t, 2, body["receiver_id"])
	assert.Equal(t, "hi", body["content"])

	var created struct {
		ID int `json:"id"`
	}
	require.NoError(t, res.Decode(&created))
	assert.Equal(t, 1, created.ID)
}

func TestDoMapsErrorList(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodPost, "/messages", http.StatusUnprocessableEntity, map[string]any{
		"errors": []string{"content required", "receiver invalid"},
	})

	_, err := New(api.URL, 0).Do(context.Background(), &Request{Method: http.MethodPost, Path: "/messages"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "content required, receiver invalid", apiErr.Joined())
}

func TestDoMapsMessageAndFieldErrors(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodPut, "/jobs/1", http.StatusBadRequest, map[string]any{"message": "salary too low"})
	api.Handle(http.MethodPut, "/jobs/2", http.StatusBadRequest, map[string]any{
		"errors": map[string][]string{"title": {"can't be blank"}},
	})

	client := New(api.URL, 0)

	_, err := client.Do(context.Background(), &Request{Method: http.MethodPut, Path: "/jobs/1"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Errors)
	assert.Equal(t, "salary too low", apiErr.Message)

	_, err = client.Do(context.Background(), &Request{Method: http.MethodPut, Path: "/jobs/2"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"title can't be blank"}, apiErr.Errors)
}

func TestDoNotFound(t *testing.T) {
	api := apitest.NewServer(t)

	_, err := New(api.URL, 0).Do(context.Background(), &Request{Method: http.MethodGet, Path: "/users/1/profiles/1"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
}

func TestDoTransportError(t *testing.T) {
	api := apitest.NewServer(t)
	url := api.URL
	api.Close()

	_, err := New(url, 0).Do(context.Background(), &Request{Method: http.MethodGet, Path: "/jobs/1"})

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestDoMultipart(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodPut, "/jobs/4", http.StatusOK, map[string]any{"id": 4})

	_, err := New(api.URL, 0).Do(context.Background(), &Request{
		Method: http.MethodPut,
		Path:   "/jobs/4",
		Token:  "tok",
		Multipart: &Multipart{
			Fields: []Field{{Name: "job[title]", Value: "Engineer"}},
			Files:  []File{{Field: "job[image]", Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}},
		},
	})
	require.NoError(t, err)

	call, _ := api.LastCall()
	assert.Contains(t, call.ContentType, "multipart/form-data")
	assert.Equal(t, "Engineer", call.Form["job[title]"])
	assert.Equal(t, []byte("jpeg"), call.Files["job[image]"])
}
