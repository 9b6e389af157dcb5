package preview

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minet/internal/credential"
	"minet/internal/credential/render"
	"minet/internal/platform/metrics"
	"minet/pkg/platform/httputil"
	"minet/pkg/requestcontext"
	"minet/pkg/validation"
)

// Handler exposes the draft and preview endpoints.
type Handler struct {
	store     *Store
	scheduler *Scheduler
	generator *render.Generator
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(store *Store, scheduler *Scheduler, generator *render.Generator, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		store:     store,
		scheduler: scheduler,
		generator: generator,
		metrics:   m,
		logger:    logger,
	}
}

// RegisterRoutes mounts the preview and draft endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/templates", h.HandleTemplates)
	r.Post("/preview", h.HandlePreview)
	r.Post("/drafts", h.HandleCreateDraft)
	r.Put("/drafts/{id}", h.HandleUpdateDraft)
	r.Get("/drafts/{id}/preview", h.HandleDraftPreview)
	r.Delete("/drafts/{id}", h.HandleDeleteDraft)
}

// DraftRequest is the body for preview renders and draft writes.
type DraftRequest struct {
	credential.Data
}

// Validate enforces field size and format limits.
func (r *DraftRequest) Validate() error {
	return validation.Validate(r)
}

// TemplatesResponse lists the available credential designs.
type TemplatesResponse struct {
	Templates []string `json:"templates"`
	Default   string   `json:"default"`
}

// HandleTemplates lists the template names a credential can be rendered
// with.
func (h *Handler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, TemplatesResponse{
		Templates: render.Templates(),
		Default:   render.DefaultTemplate,
	})
}

// PreviewResponse carries a rendered credential image.
type PreviewResponse struct {
	Image    string `json:"image"`
	Template string `json:"template"`
}

// HandlePreview renders a credential image synchronously.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DraftRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	template := req.Template
	if template == "" {
		template = render.DefaultTemplate
	}

	started := time.Now()
	image, err := h.generator.Generate(ctx, req.Data)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.metrics.IncrementRenders(template)
	h.metrics.ObserveRenderDuration(time.Since(started).Seconds())

	httputil.WriteJSON(w, http.StatusOK, PreviewResponse{Image: image, Template: template})
}

// HandleCreateDraft registers a draft and queues its first render.
func (h *Handler) HandleCreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DraftRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	draft := h.store.Create(req.Data)
	h.scheduler.Schedule(draft.ID)

	httputil.WriteJSON(w, http.StatusCreated, draft)
}

// HandleUpdateDraft replaces a draft's data and queues a fresh render.
func (h *Handler) HandleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DraftRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	draft, err := h.store.Update(chi.URLParam(r, "id"), req.Data)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.scheduler.Schedule(draft.ID)

	httputil.WriteJSON(w, http.StatusOK, draft)
}

// DraftPreviewResponse reports the latest render for a draft.
type DraftPreviewResponse struct {
	ID      string `json:"id"`
	Preview string `json:"preview,omitempty"`
	Version uint64 `json:"version"`
	Pending bool   `json:"pending"`
}

// HandleDraftPreview returns the latest rendered preview. Pending reports
// whether a newer edit is still waiting for its render.
func (h *Handler) HandleDraftPreview(w http.ResponseWriter, r *http.Request) {
	draft, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DraftPreviewResponse{
		ID:      draft.ID,
		Preview: draft.Preview,
		Version: draft.Version,
		Pending: draft.Pending(),
	})
}

// HandleDeleteDraft drops a draft and any queued render.
func (h *Handler) HandleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.scheduler.Cancel(id)
	h.store.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}
