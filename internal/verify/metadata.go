package verify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"minet/internal/verify/tracer"
)

const metadataFetchTimeout = 10 * time.Second

// MetadataFetcher resolves token metadata documents. ipfs:// URIs are
// translated to the configured gateway; concurrent fetches of the same URI
// are collapsed into one request.
type MetadataFetcher struct {
	gatewayURL string
	httpClient *http.Client
	logger     *slog.Logger
	tracer     tracer.Tracer
	group      singleflight.Group
}

// NewMetadataFetcher builds a fetcher using the given gateway prefix for
// ipfs:// translation.
func NewMetadataFetcher(gatewayURL string, httpClient *http.Client, logger *slog.Logger, tr tracer.Tracer) *MetadataFetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: metadataFetchTimeout}
	}
	return &MetadataFetcher{
		gatewayURL: gatewayURL,
		httpClient: httpClient,
		logger:     logger,
		tracer:     tr,
	}
}

// ResolveURI translates a token URI into a fetchable URL.
func (f *MetadataFetcher) ResolveURI(uri string) string {
	if strings.HasPrefix(uri, "ipfs://") {
		return f.gatewayURL + strings.TrimPrefix(uri, "ipfs://")
	}
	return uri
}

// Fetch retrieves and decodes the metadata document behind a token URI.
// Failures return an error; callers treat metadata as optional and carry
// on with a null document.
func (f *MetadataFetcher) Fetch(ctx context.Context, uri string) (map[string]any, error) {
	ctx, span := f.tracer.Start(ctx, tracer.SpanMetadataFetch,
		tracer.String(tracer.AttrGatewayURL, f.gatewayURL))

	result, err, shared := f.group.Do(uri, func() (any, error) {
		return f.fetch(ctx, uri)
	})
	span.SetAttributes(tracer.Bool(tracer.AttrShared, shared))
	span.End(err)

	if err != nil {
		return nil, err
	}
	return result.(map[string]any), nil
}

func (f *MetadataFetcher) fetch(ctx context.Context, uri string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, metadataFetchTimeout)
	defer cancel()

	url := f.ResolveURI(uri)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported metadata URI %q", uri)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch metadata: unexpected status %d", resp.StatusCode)
	}

	var doc map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return doc, nil
}
