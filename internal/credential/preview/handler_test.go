package preview

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minet/internal/credential"
	"minet/internal/credential/render"
	"minet/internal/platform/metrics"
)

var handlerMetrics = metrics.New()

func newPreviewRouter(t *testing.T) (http.Handler, *Store) {
	t.Helper()

	store := NewStore()
	renderStub := func(_ context.Context, data credential.Data) (string, error) {
		return "data:image/png;base64,preview-for-" + data.FullName, nil
	}
	logger := slog.New(slog.DiscardHandler)
	scheduler := NewScheduler(store, renderStub, 5*time.Millisecond, logger)
	t.Cleanup(scheduler.Close)

	renderer, err := render.New()
	require.NoError(t, err)
	generator := render.NewGenerator(renderer, render.WithLogger(logger))
	h := NewHandler(store, scheduler, generator, handlerMetrics, logger)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, store
}

func TestHandlePreview(t *testing.T) {
	router, _ := newPreviewRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/preview",
		strings.NewReader(`{"fullName":"Jane Doe","profession":"Engineer","template":"template-2"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Image, "data:image/png;base64,"))
	assert.Equal(t, "template-2", resp.Template)
}

func TestHandlePreviewDefaultsTemplate(t *testing.T) {
	router, _ := newPreviewRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/preview",
		strings.NewReader(`{"fullName":"Jane Doe"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, render.DefaultTemplate, resp.Template)
}

func TestDraftLifecycleOverHTTP(t *testing.T) {
	router, store := newPreviewRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/drafts",
		strings.NewReader(`{"fullName":"Jane Doe"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var draft Draft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	require.NotEmpty(t, draft.ID)
	assert.Equal(t, uint64(1), draft.Version)

	require.Eventually(t, func() bool {
		d, err := store.Get(draft.ID)
		return err == nil && !d.Pending()
	}, time.Second, 5*time.Millisecond)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/drafts/"+draft.ID+"/preview", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var preview DraftPreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.Equal(t, "data:image/png;base64,preview-for-Jane Doe", preview.Preview)
	assert.False(t, preview.Pending)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/drafts/"+draft.ID,
		strings.NewReader(`{"fullName":"Janet Doe"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Draft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, uint64(2), updated.Version)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/drafts/"+draft.ID, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/drafts/"+draft.ID+"/preview", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftEndpointsUnknownID(t *testing.T) {
	router, _ := newPreviewRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/drafts/missing",
		strings.NewReader(`{"fullName":"Jane"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/drafts/missing/preview", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTemplates(t *testing.T) {
	router, _ := newPreviewRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TemplatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Templates, 6)
	assert.Contains(t, resp.Templates, "template-1")
	assert.Equal(t, render.DefaultTemplate, resp.Default)
}

func TestHandlePreviewRejectsInvalidFields(t *testing.T) {
	router, _ := newPreviewRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/preview",
		strings.NewReader(`{"fullName":"Jane Doe","email":"not-an-email"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
