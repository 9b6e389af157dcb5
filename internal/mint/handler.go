package mint

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minet/pkg/platform/httputil"
	"minet/pkg/platform/middleware/request"
	"minet/pkg/requestcontext"
)

// Handler exposes the mint endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the mint endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(request.ContentTypeJSON).Post("/mint/document", h.HandleMintDocument)
	r.With(request.ContentTypeJSON).Post("/mint/resume", h.HandleMintResume)
}

// HandleMintDocument mints a document-backed credential.
func (h *Handler) HandleMintDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[DocumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.MintDocument(ctx, *req)
	if err != nil {
		h.logger.WarnContext(ctx, "document mint failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleMintResume mints a resume credential from a rendered preview.
func (h *Handler) HandleMintResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[ResumeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.MintResume(ctx, *req)
	if err != nil {
		h.logger.WarnContext(ctx, "resume mint failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
