package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yama-admin/video-console-go/internal/models"
)

// staticCreds satisfies CredentialSource for tests.
type staticCreds struct {
	details models.UserDetails
	err     error
}

func (s staticCreds) Current() (models.UserDetails, error) {
	return s.details, s.err
}

func testCreds() staticCreds {
	return staticCreds{details: models.UserDetails{
		User:         models.User{UserID: "42"},
		AccessToken:  "token-abc",
		RefreshToken: "refresh-abc",
	}}
}

func newTestClient(t *testing.T, handler http.Handler, creds CredentialSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, Creds: creds})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestAuthHeaders(t *testing.T) {
	var gotAuth, gotUserID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserID = r.Header.Get("x-userid")
		json.NewEncoder(w).Encode(map[string]interface{}{"sports": []models.Sport{}})
	})

	client := newTestClient(t, handler, testCreds())
	_, err := client.Sports().List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "42", gotUserID)
}

func TestAuthenticatedCallFailsClosedWithoutSession(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	client := newTestClient(t, handler, staticCreds{err: context.Canceled})
	_, err := client.Sports().List(context.Background())

	require.Error(t, err)
	assert.False(t, called, "no request may leave the client without a session")
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "not an admin"})
	})

	client := newTestClient(t, handler, testCreds())
	_, err := client.Sports().List(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "not an admin", apiErr.Message)
}

func TestLogin(t *testing.T) {
	var body map[string]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/users/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"userDetails": models.UserDetails{
				User:         models.User{UserID: "7", EmailID: body["emailId"]},
				AccessToken:  "fresh-access",
				RefreshToken: "fresh-refresh",
			},
		})
	})

	client := newTestClient(t, handler, staticCreds{err: context.Canceled})
	details, err := client.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "7", details.User.UserID)
	assert.Equal(t, "fresh-access", details.AccessToken)
	assert.Equal(t, "admin@example.com", body["emailId"])
	assert.Equal(t, "secret", body["password"])
	assert.NotEmpty(t, body["deviceId"])
}

func TestVideosListForwardsQuery(t *testing.T) {
	var got VideoQuery
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/admin/videos", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Success",
			"details": map[string]interface{}{
				"videos": []models.ReadyVideo{{VideoID: "9", Title: "Final"}},
				"pagination": models.Pagination{
					CurrentPage: 2, TotalPages: 5, TotalRecords: 41,
				},
			},
		})
	})

	client := newTestClient(t, handler, testCreds())
	page, err := client.Videos().List(context.Background(), VideoQuery{
		Page:  2,
		Limit: 10,
		Title: "final",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Page)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "createdAt", got.SortBy, "empty sort falls back to server default")
	assert.Equal(t, "desc", got.SortDirection)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, 5, page.Pagination.TotalPages)
}

func TestSubCategoryScopedList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/videoSubCategory/3", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"videoSubCategories": []models.VideoSubCategory{
				{SubCategoryID: 11, Name: "Dribbling", CategoryID: 3},
			},
		})
	})

	client := newTestClient(t, handler, testCreds())
	subs, err := client.Categories().ListSubCategories(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, 11, subs[0].SubCategoryID)
}

func TestDeleteBuildsPath(t *testing.T) {
	var gotPath, gotMethod string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, handler, testCreds())
	require.NoError(t, client.RawVideos().Delete(context.Background(), 17))

	assert.Equal(t, "/api/v1/admin/rawVideo/17", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}
