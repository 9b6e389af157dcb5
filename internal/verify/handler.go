package verify

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minet/pkg/platform/httputil"
	"minet/pkg/requestcontext"
)

// Handler exposes the verification endpoint.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the verification endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/verify", h.HandleVerify)
}

// VerifyRequest is the lookup request body.
type VerifyRequest struct {
	Query      string `json:"query"`
	SearchType string `json:"searchType"`
}

// Normalize trims the query and defaults the search type to token ID.
func (r *VerifyRequest) Normalize() {
	if r.SearchType == "" {
		r.SearchType = SearchByTokenID
	}
}

// HandleVerify resolves a credential by token ID or wallet address.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Verify(ctx, req.Query, req.SearchType)
	if err != nil {
		h.logger.WarnContext(ctx, "verification lookup failed",
			"search_type", req.SearchType,
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
