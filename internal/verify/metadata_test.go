package verify

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minet/internal/verify/tracer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestMetadataFetcherResolveURI(t *testing.T) {
	fetcher := NewMetadataFetcher("https://gateway.example/ipfs/", nil, discardLogger(), tracer.NewNoop())

	assert.Equal(t, "https://gateway.example/ipfs/QmHash", fetcher.ResolveURI("ipfs://QmHash"))
	assert.Equal(t, "https://other.example/doc.json", fetcher.ResolveURI("https://other.example/doc.json"))
}

func TestMetadataFetcherFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "/ipfs/QmHash", r.URL.Path)
		w.Write([]byte(`{"name":"Jane Doe - OnchainCred","image":"ipfs://QmImage"}`))
	}))
	defer srv.Close()

	fetcher := NewMetadataFetcher(srv.URL+"/ipfs/", srv.Client(), discardLogger(), tracer.NewNoop())

	doc, err := fetcher.Fetch(t.Context(), "ipfs://QmHash")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe - OnchainCred", doc["name"])
	assert.Equal(t, int32(1), hits.Load())
}

func TestMetadataFetcherFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ipfs/QmMissing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Write([]byte("not json"))
		}
	}))
	defer srv.Close()

	fetcher := NewMetadataFetcher(srv.URL+"/ipfs/", srv.Client(), discardLogger(), tracer.NewNoop())

	_, err := fetcher.Fetch(t.Context(), "ipfs://QmMissing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")

	_, err = fetcher.Fetch(t.Context(), "ipfs://QmGarbled")
	require.Error(t, err)

	_, err = fetcher.Fetch(t.Context(), "ipfs://")
	require.Error(t, err)
}

func TestMetadataFetcherRejectsNonHTTP(t *testing.T) {
	fetcher := NewMetadataFetcher("", nil, discardLogger(), tracer.NewNoop())

	_, err := fetcher.Fetch(t.Context(), "ipfs://QmHash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metadata URI")
}
