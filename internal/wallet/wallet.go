// Package wallet tracks the connected wallet and submits mint
// transactions through the external signer bridge. The bridge holds the
// keys; this service never sees them.
package wallet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	domainerrors "minet/pkg/domain-errors"
	"minet/pkg/web3"
)

// Connection holds the currently connected wallet address.
type Connection struct {
	mu      sync.RWMutex
	address string
}

// NewConnection returns a Connection with no wallet attached.
func NewConnection() *Connection {
	return &Connection{}
}

// Connect attaches a wallet address after validating its format.
func (c *Connection) Connect(address string) error {
	if !web3.IsValidAddress(address) {
		return domainerrors.New(domainerrors.CodeInvalidInput, "Invalid wallet address")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.address = strings.ToLower(address)
	return nil
}

// Disconnect detaches the current wallet.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.address = ""
}

// Account returns the connected address, or "" when none is attached.
func (c *Connection) Account() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// Connected reports whether a wallet is attached.
func (c *Connection) Connected() bool {
	return c.Account() != ""
}

// Bridge is a client for the signer bridge, the collaborator that signs
// and submits transactions on behalf of the connected wallet.
type Bridge struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) BridgeOption {
	return func(b *Bridge) {
		b.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// NewBridge builds a Bridge client. baseURL may be empty, in which case
// every mint attempt fails with a configuration error.
func NewBridge(baseURL string, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Configured reports whether a bridge endpoint is set.
func (b *Bridge) Configured() bool {
	return b.baseURL != ""
}

type mintRequest struct {
	To       string `json:"to"`
	TokenURI string `json:"tokenUri"`
}

type mintResponse struct {
	TxHash string `json:"txHash"`
	Error  string `json:"error,omitempty"`
}

// Mint asks the bridge to sign and submit mint(to, tokenURI). It returns
// the transaction hash once the bridge has broadcast the transaction.
func (b *Bridge) Mint(ctx context.Context, to, tokenURI string) (string, error) {
	if !b.Configured() {
		return "", domainerrors.New(domainerrors.CodeCollaboratorUnavailable, "wallet bridge not configured")
	}

	payload, err := json.Marshal(mintRequest{To: to, TokenURI: tokenURI})
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "encode mint request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/mint", bytes.NewReader(payload))
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "build mint request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeCollaboratorUnavailable, "wallet bridge unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeCollaboratorFailed, "read bridge response")
	}

	var parsed mintResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeCollaboratorFailed, "decode bridge response")
	}

	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error
		if msg == "" {
			msg = fmt.Sprintf("bridge returned %d", resp.StatusCode)
		}
		return "", domainerrors.New(domainerrors.CodeCollaboratorFailed, msg)
	}

	if !web3.IsValidTransactionHash(parsed.TxHash) {
		return "", domainerrors.New(domainerrors.CodeCollaboratorFailed,
			fmt.Sprintf("bridge returned malformed transaction hash %q", parsed.TxHash))
	}
	return parsed.TxHash, nil
}

// Health probes the bridge, used by the readiness check.
func (b *Bridge) Health(ctx context.Context) error {
	if !b.Configured() {
		return fmt.Errorf("wallet bridge not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge health returned %d", resp.StatusCode)
	}
	return nil
}
