package pinata

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"minet/internal/platform/metrics"
	domainerrors "minet/pkg/domain-errors"
	"minet/pkg/platform/httputil"
	"minet/pkg/platform/middleware/request"
)

// Handler exposes the upload endpoints backed by the pinning client.
type Handler struct {
	client  *Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler builds a Handler.
func NewHandler(client *Client, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{client: client, logger: logger, metrics: m}
}

// RegisterRoutes mounts the upload endpoints. The file upload is multipart,
// so only the JSON route gets the content-type check.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/storage/upload-file", h.HandleUploadFile)
	r.With(request.ContentTypeJSON).Post("/storage/upload", h.HandleUploadJSON)
}

// UploadResponse is returned for successful file uploads.
type UploadResponse struct {
	Success  bool   `json:"success"`
	IPFSHash string `json:"ipfsHash"`
	IPFSURI  string `json:"ipfsUri"`
	URL      string `json:"url"`
}

// HandleUploadFile accepts a multipart upload ("file" field, optional
// "kind" field) and pins it. Size and type are checked before any network
// traffic.
func (h *Handler) HandleUploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxFileSize + 1<<20); err != nil {
		httputil.WriteError(w, domainerrors.Wrap(err, domainerrors.CodeInvalidInput, "malformed multipart body"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInvalidInput, "No file provided"))
		return
	}
	defer file.Close()

	if header.Size > MaxFileSize {
		sizeMB := float64(header.Size) / 1024 / 1024
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInvalidInput,
			fmt.Sprintf("File size %.2fMB exceeds 10MB limit", sizeMB)))
		return
	}

	kind := Kind(r.FormValue("kind"))
	if kind == "" {
		kind = KindPhoto
	}
	contentType := header.Header.Get("Content-Type")

	if kind == KindPhoto {
		if !strings.HasPrefix(contentType, "image/") {
			httputil.WriteError(w, domainerrors.New(domainerrors.CodeInvalidInput,
				fmt.Sprintf("Invalid file type. Expected image, got %s", contentType)))
			return
		}
	} else if err := ValidateUpload(kind, contentType, header.Size); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.client.PinFile(r.Context(), header.Filename, contentType, file)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementPins("file")
	h.metrics.AddUploadedBytes(header.Size)

	httputil.WriteJSON(w, http.StatusOK, UploadResponse{
		Success:  true,
		IPFSHash: result.IPFSHash,
		IPFSURI:  result.IPFSURI,
		URL:      result.URL,
	})
}

// HandleUploadJSON pins the request body verbatim as a JSON document.
func (h *Handler) HandleUploadJSON(w http.ResponseWriter, r *http.Request) {
	var content map[string]any
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		httputil.WriteError(w, domainerrors.Wrap(err, domainerrors.CodeInvalidInput, "malformed JSON body"))
		return
	}

	result, err := h.client.PinJSON(r.Context(), content)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementPins("json")
	httputil.WriteJSON(w, http.StatusOK, result)
}
