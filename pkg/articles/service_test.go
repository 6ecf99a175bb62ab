package articles_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/quillhq/quill/pkg/articles"
	"github.com/quillhq/quill/pkg/models"
	"github.com/quillhq/quill/pkg/registry"
	"github.com/quillhq/quill/pkg/store"
	"github.com/quillhq/quill/pkg/store/memory"
)

// newService builds a service over a fresh registry with a memory store
// bound to the default cell.
func newService(t *testing.T) (*articles.Service, *registry.Registry) {
	t.Helper()

	reg := registry.New()
	require.NoError(t, reg.Bind(registry.DefaultCell, memory.New()))
	return articles.NewService(reg, articles.Config{}, nil), reg
}

func TestCreateThenGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, articles.CreateParams{
		Author:  "ada",
		Content: "on analytical engines",
		Tags:    []string{"computing", "history"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "ada", got.Author)
	assert.Equal(t, "on analytical engines", got.Content)
	assert.Equal(t, []string{"computing", "history"}, got.Tags)
}

func TestCreateDefaultsTagsToEmpty(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(t.Context(), articles.CreateParams{
		Author:  "grace",
		Content: "compilers",
	})
	require.NoError(t, err)
	assert.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags)
}

func TestCreateValidation(t *testing.T) {
	svc, reg := newService(t)

	tests := []struct {
		name   string
		params articles.CreateParams
	}{
		{"missing author", articles.CreateParams{Content: "c"}},
		{"missing content", articles.CreateParams{Author: "a"}},
		{"missing both", articles.CreateParams{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(t.Context(), tt.params)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	// Validation failures never reach storage.
	s, err := reg.Resolve(registry.DefaultCell)
	require.NoError(t, err)
	all, err := s.Find(t.Context(), "articles", store.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetUnknownID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Get(t.Context(), "no-such-id")
	assert.ErrorIs(t, err, models.ErrArticleNotFound)
}

func TestDeleteIdempotence(t *testing.T) {
	svc, _ := newService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, articles.CreateParams{Author: "a", Content: "c"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete must report false, never true twice")
}

func TestDeleteUnknownIDReturnsFalse(t *testing.T) {
	svc, _ := newService(t)

	deleted, err := svc.Delete(t.Context(), "never-created")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestIDUniqueness(t *testing.T) {
	svc, _ := newService(t)
	ctx := t.Context()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		created, err := svc.Create(ctx, articles.CreateParams{Author: "a", Content: "c"})
		require.NoError(t, err)
		require.False(t, seen[created.ID], "id %q returned twice", created.ID)
		seen[created.ID] = true
	}
}

func TestOperationsBeforeBindFail(t *testing.T) {
	reg := registry.New()
	svc := articles.NewService(reg, articles.Config{}, nil)
	ctx := t.Context()

	_, err := svc.Create(ctx, articles.CreateParams{Author: "a", Content: "c"})
	assert.ErrorIs(t, err, registry.ErrUnbound)

	_, err = svc.List(ctx, store.Filter{})
	assert.ErrorIs(t, err, registry.ErrUnbound)

	_, err = svc.Get(ctx, "id")
	assert.ErrorIs(t, err, registry.ErrUnbound)

	_, err = svc.Delete(ctx, "id")
	assert.ErrorIs(t, err, registry.ErrUnbound)
}

func TestSubstitutionIsVisibleImmediately(t *testing.T) {
	svc, reg := newService(t)
	ctx := t.Context()

	_, err := svc.Create(ctx, articles.CreateParams{Author: "real", Content: "persists"})
	require.NoError(t, err)

	t.Run("with double installed", func(t *testing.T) {
		double := memory.New()
		registry.Install(t, reg, registry.DefaultCell, double)

		// The service, constructed long before the substitution, now talks
		// to the empty double.
		all, err := svc.List(t.Context(), store.Filter{})
		require.NoError(t, err)
		assert.Empty(t, all)

		_, err = svc.Create(t.Context(), articles.CreateParams{Author: "double", Content: "isolated"})
		require.NoError(t, err)
	})

	// After restore, the original data is intact and the double's write is gone.
	all, err := svc.List(ctx, store.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "real", all[0].Author)
}

func TestListFilters(t *testing.T) {
	svc, _ := newService(t)
	ctx := t.Context()

	_, err := svc.Create(ctx, articles.CreateParams{Author: "ada", Content: "a", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, articles.CreateParams{Author: "grace", Content: "b", Tags: []string{"go", "infra"}})
	require.NoError(t, err)

	byAuthor, err := svc.List(ctx, store.Filter{Author: "ada"})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "ada", byAuthor[0].Author)

	byTag, err := svc.List(ctx, store.Filter{Tag: "infra"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "grace", byTag[0].Author)
}

func TestCreateListDeleteScenario(t *testing.T) {
	svc, _ := newService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, articles.CreateParams{
		Author:  "a",
		Content: "c",
		Tags:    []string{"x", "y"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "a", created.Author)
	assert.Equal(t, "c", created.Content)
	assert.Equal(t, []string{"x", "y"}, created.Tags)

	all, err := svc.List(ctx, store.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	all, err = svc.List(ctx, store.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOperationsEmitSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	svc, _ := newService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, articles.CreateParams{Author: "ada", Content: "c", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = svc.List(ctx, store.Filter{Tag: "go"})
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	spans := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range recorder.Ended() {
		spans[s.Name()] = s
	}
	for _, want := range []string{
		"article.create", "article.list", "article.get", "article.delete",
		"store.insert", "store.find", "store.find_by_id", "store.delete",
	} {
		assert.Contains(t, spans, want)
	}

	// Storage spans nest under their operation span.
	require.Contains(t, spans, "article.create")
	require.Contains(t, spans, "store.insert")
	assert.Equal(t,
		spans["article.create"].SpanContext().SpanID(),
		spans["store.insert"].Parent().SpanID())
}

func TestBackendErrorsPropagateUnchanged(t *testing.T) {
	reg := registry.New()
	closed := memory.New()
	require.NoError(t, closed.Close())
	require.NoError(t, reg.Bind(registry.DefaultCell, closed))

	svc := articles.NewService(reg, articles.Config{}, nil)

	_, err := svc.List(t.Context(), store.Filter{})
	assert.True(t, errors.Is(err, store.ErrClosed), "got %v", err)
}
