package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/quillhq/quill/pkg/models"
)

// CreateArticleRequest is the payload for creating an article.
type CreateArticleRequest struct {
	Author  string   `json:"author"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// ListArticlesOptions are the optional filters for listing articles.
type ListArticlesOptions struct {
	// Author filters to articles by this author. Empty matches all.
	Author string

	// Tag filters to articles carrying this tag. Empty matches all.
	Tag string
}

// CreateArticle creates a new article.
func (c *Client) CreateArticle(ctx context.Context, req CreateArticleRequest) (*models.Article, error) {
	return createResource[models.Article](ctx, c, "/api/v1/articles", req)
}

// ListArticles lists articles, optionally filtered by author and tag.
func (c *Client) ListArticles(ctx context.Context, opts ListArticlesOptions) ([]models.Article, error) {
	path := "/api/v1/articles"

	query := url.Values{}
	if opts.Author != "" {
		query.Set("author", opts.Author)
	}
	if opts.Tag != "" {
		query.Set("tag", opts.Tag)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	return listResources[models.Article](ctx, c, path)
}

// GetArticle fetches a single article by id.
func (c *Client) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return getResource[models.Article](ctx, c, fmt.Sprintf("/api/v1/articles/%s", url.PathEscape(id)))
}

// DeleteArticle deletes an article by id.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/articles/%s", url.PathEscape(id)))
}

// HealthStatus is the payload returned by the health endpoints.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Detail    string `json:"detail,omitempty"`
}

// Health checks the liveness endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	return getResource[HealthStatus](ctx, c, "/health")
}

// Ready checks the readiness endpoint. A non-nil error with IsUnavailable()
// true means the server is up but storage is not yet assembled.
func (c *Client) Ready(ctx context.Context) (*HealthStatus, error) {
	return getResource[HealthStatus](ctx, c, "/health/ready")
}
