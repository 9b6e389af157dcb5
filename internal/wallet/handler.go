package wallet

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minet/pkg/platform/httputil"
	"minet/pkg/requestcontext"
	"minet/pkg/web3"
)

// Handler exposes the wallet session endpoints.
type Handler struct {
	connection *Connection
	logger     *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(connection *Connection, logger *slog.Logger) *Handler {
	return &Handler{connection: connection, logger: logger}
}

// RegisterRoutes mounts the wallet endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/wallet", h.HandleStatus)
	r.Post("/wallet/connect", h.HandleConnect)
	r.Post("/wallet/disconnect", h.HandleDisconnect)
}

// ConnectRequest carries the wallet address to attach.
type ConnectRequest struct {
	Address string `json:"address"`
}

// StatusResponse reports the current wallet session.
type StatusResponse struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
	Display   string `json:"display,omitempty"`
}

func (h *Handler) status() StatusResponse {
	address := h.connection.Account()
	return StatusResponse{
		Connected: address != "",
		Address:   address,
		Display:   web3.TruncateAddress(address),
	}
}

// HandleStatus returns the current wallet session.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.status())
}

// HandleConnect attaches a wallet address to the session.
func (h *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[ConnectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.connection.Connect(req.Address); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "wallet connected",
		"address", web3.TruncateAddress(h.connection.Account()),
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusOK, h.status())
}

// HandleDisconnect detaches the current wallet.
func (h *Handler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	h.connection.Disconnect()
	httputil.WriteJSON(w, http.StatusOK, h.status())
}
