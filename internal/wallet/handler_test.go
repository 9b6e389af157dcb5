package wallet

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalletRouter(conn *Connection) http.Handler {
	h := NewHandler(conn, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) StatusResponse {
	t.Helper()
	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return status
}

func TestWalletLifecycle(t *testing.T) {
	conn := NewConnection()
	router := newWalletRouter(conn)
	address := "0xAbCdEF1234567890abcdef1234567890ABCDEF12"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeStatus(t, rec).Connected)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wallet/connect",
		strings.NewReader(`{"address":"`+address+`"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	status := decodeStatus(t, rec)
	assert.True(t, status.Connected)
	assert.Equal(t, strings.ToLower(address), status.Address)
	assert.Equal(t, "0xabcd...ef12", status.Display)
	assert.True(t, conn.Connected())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wallet/disconnect", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeStatus(t, rec).Connected)
	assert.False(t, conn.Connected())
}

func TestWalletConnectRejectsBadAddress(t *testing.T) {
	router := newWalletRouter(NewConnection())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wallet/connect",
		strings.NewReader(`{"address":"nope"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid wallet address", resp["error"])
}
