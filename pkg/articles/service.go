// Package articles implements the article operations exposed over HTTP.
//
// The service holds no storage handle of its own: every operation resolves
// the registry slot at call time, so substituting the store (during tests
// or assembly) is immediately visible to all subsequent calls.
package articles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quillhq/quill/internal/logger"
	"github.com/quillhq/quill/internal/telemetry"
	"github.com/quillhq/quill/pkg/metrics"
	"github.com/quillhq/quill/pkg/models"
	"github.com/quillhq/quill/pkg/registry"
	"github.com/quillhq/quill/pkg/store"
)

// CreateParams is the payload for creating an article. Only field presence
// is validated; author and content are otherwise opaque.
type CreateParams struct {
	Author  string   `json:"author" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// Config controls which registry slot and collection the service uses.
type Config struct {
	// Cell is the registry slot to resolve. Defaults to registry.DefaultCell.
	Cell string

	// Collection is the storage collection. Defaults to "articles".
	Collection string
}

// Service implements article operations over a late-bound store.
type Service struct {
	registry   *registry.Registry
	cell       string
	collection string
	metrics    metrics.ArticleMetrics
	validate   *validator.Validate
}

// NewService creates an article service. Pass nil metrics to disable
// collection with zero overhead.
func NewService(reg *registry.Registry, cfg Config, m metrics.ArticleMetrics) *Service {
	if cfg.Cell == "" {
		cfg.Cell = registry.DefaultCell
	}
	if cfg.Collection == "" {
		cfg.Collection = "articles"
	}
	return &Service{
		registry:   reg,
		cell:       cfg.Cell,
		collection: cfg.Collection,
		metrics:    m,
		validate:   validator.New(),
	}
}

// resolve fetches the current store binding. It must be called per
// operation, never cached, so rebinding takes effect immediately.
func (s *Service) resolve() (store.Store, error) {
	return s.registry.Resolve(s.cell)
}

// startSpan opens the operation span and stamps its identifiers into the
// request's log context so Ctx log lines correlate with the trace.
func (s *Service) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := telemetry.StartArticleSpan(ctx, op, attrs...)
	if lc := logger.FromContext(ctx); lc != nil {
		if lc.ClientIP != "" {
			span.SetAttributes(telemetry.ClientIP(lc.ClientIP))
		}
		ctx = logger.WithContext(ctx, lc.WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx)))
	}
	return ctx, span
}

// startStoreSpan opens a client span for a single store call.
func (s *Service) startStoreSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return telemetry.StartStoreSpan(ctx, op,
		telemetry.StoreCell(s.cell),
		telemetry.Collection(s.collection),
	)
}

// Create validates the payload and inserts a new article. Validation
// failures are reported before any storage call.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Article, error) {
	start := time.Now()
	s.begin("create")
	defer s.end("create")

	ctx, span := s.startSpan(ctx, "create", telemetry.Author(params.Author))
	defer span.End()

	if err := s.validate.Struct(params); err != nil {
		s.observe("create", start, "validation_error")
		verr := validationError(err)
		telemetry.RecordError(ctx, verr)
		return nil, verr
	}

	st, err := s.resolve()
	if err != nil {
		s.observe("create", start, "error")
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	article := &models.Article{
		Author:  params.Author,
		Content: params.Content,
		Tags:    params.Tags,
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}

	storeCtx, storeSpan := s.startStoreSpan(ctx, "insert")
	id, err := st.Insert(storeCtx, s.collection, article)
	telemetry.RecordError(storeCtx, err)
	storeSpan.End()
	if err != nil {
		s.observe("create", start, "error")
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	telemetry.SetAttributes(ctx, telemetry.ArticleID(id))
	s.observe("create", start, "ok")
	logger.DebugCtx(ctx, "Article created", logger.KeyArticleID, id, logger.KeyAuthor, article.Author)
	return article, nil
}

// List returns the articles matching the filter. An empty filter returns
// everything; no matches yields an empty slice.
func (s *Service) List(ctx context.Context, filter store.Filter) ([]*models.Article, error) {
	start := time.Now()
	s.begin("list")
	defer s.end("list")

	spanAttrs := make([]attribute.KeyValue, 0, 2)
	if filter.Author != "" {
		spanAttrs = append(spanAttrs, telemetry.Author(filter.Author))
	}
	if filter.Tag != "" {
		spanAttrs = append(spanAttrs, telemetry.Tag(filter.Tag))
	}
	ctx, span := s.startSpan(ctx, "list", spanAttrs...)
	defer span.End()

	st, err := s.resolve()
	if err != nil {
		s.observe("list", start, "error")
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	storeCtx, storeSpan := s.startStoreSpan(ctx, "find")
	results, err := st.Find(storeCtx, s.collection, filter)
	telemetry.RecordError(storeCtx, err)
	storeSpan.End()
	if err != nil {
		s.observe("list", start, "error")
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	telemetry.SetAttributes(ctx, telemetry.Count(len(results)))
	s.observe("list", start, "ok")

	logArgs := []any{logger.KeyCount, len(results)}
	if filter.Author != "" {
		logArgs = append(logArgs, logger.KeyAuthor, filter.Author)
	}
	if filter.Tag != "" {
		logArgs = append(logArgs, logger.KeyTag, filter.Tag)
	}
	logger.DebugCtx(ctx, "Articles listed", logArgs...)
	return results, nil
}

// Get returns the article with the given ID, or models.ErrArticleNotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.Article, error) {
	start := time.Now()
	s.begin("get")
	defer s.end("get")

	ctx, span := s.startSpan(ctx, "get", telemetry.ArticleID(id))
	defer span.End()

	st, err := s.resolve()
	if err != nil {
		s.observe("get", start, "error")
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	storeCtx, storeSpan := s.startStoreSpan(ctx, "find_by_id")
	article, err := st.FindByID(storeCtx, s.collection, id)
	storeSpan.End()
	if errors.Is(err, store.ErrNotFound) {
		s.observe("get", start, "not_found")
		telemetry.RecordError(ctx, models.ErrArticleNotFound)
		return nil, models.ErrArticleNotFound
	}
	if err != nil {
		s.observe("get", start, "error")
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	s.observe("get", start, "ok")
	return article, nil
}

// Delete removes the article with the given ID. Absence is a routine
// outcome reported as false, not an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	s.begin("delete")
	defer s.end("delete")

	ctx, span := s.startSpan(ctx, "delete", telemetry.ArticleID(id))
	defer span.End()

	st, err := s.resolve()
	if err != nil {
		s.observe("delete", start, "error")
		telemetry.RecordError(ctx, err)
		return false, err
	}

	storeCtx, storeSpan := s.startStoreSpan(ctx, "delete")
	deleted, err := st.DeleteByID(storeCtx, s.collection, id)
	telemetry.RecordError(storeCtx, err)
	storeSpan.End()
	if err != nil {
		s.observe("delete", start, "error")
		telemetry.RecordError(ctx, err)
		return false, err
	}

	if deleted {
		s.observe("delete", start, "ok")
		logger.DebugCtx(ctx, "Article deleted", logger.KeyArticleID, id)
	} else {
		s.observe("delete", start, "not_found")
		telemetry.AddEvent(ctx, "article not found", telemetry.ArticleID(id))
	}
	return deleted, nil
}

func (s *Service) begin(op string) {
	if s.metrics != nil {
		s.metrics.RecordOperationStart(op)
	}
}

func (s *Service) end(op string) {
	if s.metrics != nil {
		s.metrics.RecordOperationEnd(op)
	}
}

func (s *Service) observe(op string, start time.Time, status string) {
	if s.metrics != nil {
		s.metrics.RecordOperation(op, time.Since(start), status)
	}
}

// validationError wraps validator output in models.ErrValidation with the
// offending field names.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: missing required fields %v", models.ErrValidation, fields)
	}
	return fmt.Errorf("%w: %v", models.ErrValidation, err)
}
