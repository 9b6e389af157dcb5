// Package pinata talks to the Pinata pinning API. Files and JSON
// documents are pinned to IPFS and addressed by the returned content hash.
package pinata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/goccy/go-json"

	domainerrors "minet/pkg/domain-errors"
	"minet/pkg/web3"
)

// MaxFileSize is the largest upload accepted, enforced before any network
// traffic.
const MaxFileSize = 10 << 20

// Allowed MIME types per upload kind.
var (
	photoTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	documentTypes = map[string]bool{
		"application/pdf": true,
		"image/jpeg":      true,
		"image/jpg":       true,
		"image/png":       true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	}
)

// Kind distinguishes upload validation rules.
type Kind string

const (
	// KindPhoto accepts raster images only.
	KindPhoto Kind = "photo"
	// KindDocument additionally accepts PDF and Word documents.
	KindDocument Kind = "document"
)

// PinResult describes a pinned object.
type PinResult struct {
	IPFSHash string `json:"ipfsHash"`
	IPFSURI  string `json:"ipfsUri"`
	URL      string `json:"url"`
}

// Client is a Pinata API client.
type Client struct {
	baseURL    string
	gatewayURL string
	apiKey     string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New builds a Client. baseURL is the Pinata API root and gatewayURL the
// public gateway prefix used to build fetchable URLs.
func New(baseURL, gatewayURL, apiKey, secretKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether API credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.secretKey != ""
}

// ValidateUpload applies the size and MIME rules for the given kind
// without touching the network.
func ValidateUpload(kind Kind, contentType string, size int64) error {
	if size > MaxFileSize {
		return domainerrors.New(domainerrors.CodeInvalidInput, "File too large. Maximum size is 10MB.")
	}

	allowed := documentTypes
	if kind == KindPhoto {
		allowed = photoTypes
	}
	if !allowed[strings.ToLower(contentType)] {
		return domainerrors.New(domainerrors.CodeInvalidInput,
			fmt.Sprintf("File type %s is not allowed", contentType))
	}
	return nil
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// PinFile uploads file content and pins it. name becomes the pinned
// object's display name.
func (c *Client) PinFile(ctx context.Context, name, contentType string, content io.Reader) (PinResult, error) {
	if !c.Configured() {
		return PinResult{}, domainerrors.New(domainerrors.CodeInternal, "Pinata credentials not configured")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(fileHeader(name, contentType))
	if err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "build upload body")
	}
	if _, err := io.Copy(part, content); err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "read upload content")
	}

	meta, _ := json.Marshal(map[string]string{"name": name})
	if err := writer.WriteField("pinataMetadata", string(meta)); err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "build upload body")
	}
	if err := writer.Close(); err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "build upload body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pinning/pinFileToIPFS", body)
	if err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	return c.do(req)
}

// PinJSON pins an arbitrary JSON document. The document itself is the
// request body, so whatever shape the caller provides is what gets pinned.
func (c *Client) PinJSON(ctx context.Context, content any) (PinResult, error) {
	if !c.Configured() {
		return PinResult{}, domainerrors.New(domainerrors.CodeInternal, "Pinata credentials not configured")
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "encode metadata")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pinning/pinJSONToIPFS", bytes.NewReader(payload))
	if err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "build pin request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	return c.do(req)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.secretKey)
}

func (c *Client) do(req *http.Request) (PinResult, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeCollaboratorUnavailable, "pinning service unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeCollaboratorFailed, "read pinning response")
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("pinning request rejected", "status", resp.StatusCode, "body", string(raw))
		return PinResult{}, domainerrors.New(domainerrors.CodeCollaboratorFailed,
			fmt.Sprintf("Pinata API error: %d", resp.StatusCode))
	}

	var parsed pinResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return PinResult{}, domainerrors.Wrap(err, domainerrors.CodeCollaboratorFailed, "decode pinning response")
	}
	// The API addresses pins by CIDv0; anything else means a broken response.
	if !web3.IsValidCIDv0(parsed.IpfsHash) {
		return PinResult{}, domainerrors.New(domainerrors.CodeCollaboratorFailed, "Invalid response from Pinata")
	}

	return PinResult{
		IPFSHash: parsed.IpfsHash,
		IPFSURI:  "ipfs://" + parsed.IpfsHash,
		URL:      c.gatewayURL + parsed.IpfsHash,
	}, nil
}

func fileHeader(name, contentType string) textproto.MIMEHeader {
	return textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename="%s"`, name)},
		"Content-Type":        {contentType},
	}
}
