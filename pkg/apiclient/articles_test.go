package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/pkg/models"
)

func TestCreateArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/articles", r.URL.Path)

		var req CreateArticleRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "alice", req.Author)
		assert.Equal(t, "hello world", req.Content)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Article{
			ID:        "article-123",
			Author:    req.Author,
			Content:   req.Content,
			Tags:      req.Tags,
			CreatedAt: time.Now().UTC(),
		})
	}))
	defer server.Close()

	client := New(server.URL)
	article, err := client.CreateArticle(t.Context(), CreateArticleRequest{
		Author:  "alice",
		Content: "hello world",
		Tags:    []string{"go"},
	})

	require.NoError(t, err)
	assert.Equal(t, "article-123", article.ID)
	assert.Equal(t, "alice", article.Author)
	assert.Equal(t, []string{"go"}, article.Tags)
}

func TestListArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/articles", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]models.Article{
			{ID: "1", Author: "alice", Content: "first"},
			{ID: "2", Author: "bob", Content: "second"},
		})
	}))
	defer server.Close()

	client := New(server.URL)
	articles, err := client.ListArticles(t.Context(), ListArticlesOptions{})

	require.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, "alice", articles[0].Author)
	assert.Equal(t, "bob", articles[1].Author)
}

func TestListArticles_Filters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice", r.URL.Query().Get("author"))
		assert.Equal(t, "go", r.URL.Query().Get("tag"))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]models.Article{
			{ID: "1", Author: "alice", Tags: []string{"go"}},
		})
	}))
	defer server.Close()

	client := New(server.URL)
	articles, err := client.ListArticles(t.Context(), ListArticlesOptions{Author: "alice", Tag: "go"})

	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestGetArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/articles/article-123", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.Article{
			ID:      "article-123",
			Author:  "alice",
			Content: "hello",
		})
	}))
	defer server.Close()

	client := New(server.URL)
	article, err := client.GetArticle(t.Context(), "article-123")

	require.NoError(t, err)
	assert.Equal(t, "article-123", article.ID)
}

func TestGetArticle_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(APIError{
			Title:  "Not Found",
			Status: http.StatusNotFound,
			Detail: "article not found",
		})
	}))
	defer server.Close()

	client := New(server.URL)
	article, err := client.GetArticle(t.Context(), "nonexistent")

	assert.Nil(t, article)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
	assert.Contains(t, apiErr.Error(), "article not found")
}

func TestDeleteArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/articles/article-123", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.DeleteArticle(t.Context(), "article-123")

	require.NoError(t, err)
}

func TestReady_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health/ready", r.URL.Path)

		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(APIError{
			Title:  "Service Unavailable",
			Status: http.StatusServiceUnavailable,
			Detail: "storage not assembled",
		})
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Ready(t.Context())

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnavailable())
}

func TestClient_NonProblemErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.GetArticle(t.Context(), "any")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "upstream exploded")
}
