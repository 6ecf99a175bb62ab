package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quillhq/quill/pkg/articles"
	"github.com/quillhq/quill/pkg/models"
	"github.com/quillhq/quill/pkg/registry"
	"github.com/quillhq/quill/pkg/store"
)

// ArticleHandler handles article CRUD endpoints.
type ArticleHandler struct {
	service *articles.Service
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(service *articles.Service) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Create handles POST /api/v1/articles.
//
// Request body: {"author": "...", "content": "...", "tags": ["..."]}
// Responses:
//   - 201 with the created article (including its assigned id)
//   - 400 if the body is malformed or required fields are missing
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params articles.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	article, err := h.service.Create(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	WriteJSONCreated(w, article)
}

// List handles GET /api/v1/articles.
//
// Optional query parameters: author, tag.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{
		Author: r.URL.Query().Get("author"),
		Tag:    r.URL.Query().Get("tag"),
	}

	results, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	WriteJSONOK(w, results)
}

// Get handles GET /api/v1/articles/{id}.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	WriteJSONOK(w, article)
}

// Delete handles DELETE /api/v1/articles/{id}.
//
// Responses:
//   - 204 if the article was deleted
//   - 404 if no article with that id exists
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !deleted {
		NotFound(w, "article not found")
		return
	}

	WriteNoContent(w)
}

// writeError maps service errors to problem responses.
func (h *ArticleHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		BadRequest(w, err.Error())
	case errors.Is(err, models.ErrArticleNotFound):
		NotFound(w, "article not found")
	case errors.Is(err, registry.ErrUnbound):
		ServiceUnavailable(w, "storage not assembled")
	default:
		InternalServerError(w, err.Error())
	}
}
