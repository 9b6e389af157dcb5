package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"MINET_ADDR", "PINATA_API_KEY", "PINATA_SECRET_KEY", "PINATA_BASE_URL",
		"PINATA_GATEWAY_URL", "MINET_CONTRACT_ADDRESS", "CHAIN_RPC_URL",
		"WALLET_BRIDGE_URL", "MINT_API_SECRET", "PREVIEW_DEBOUNCE", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultChainRPCURL, cfg.ChainRPCURL)
	assert.Equal(t, DefaultPinataBaseURL, cfg.PinataBaseURL)
	assert.Equal(t, DefaultGatewayBaseURL, cfg.GatewayBaseURL)
	assert.Equal(t, DefaultPreviewDelay, cfg.PreviewDelay)
	assert.Equal(t, "json", cfg.LogFormat)

	assert.False(t, cfg.HasPinningCredentials())
	assert.False(t, cfg.HasContract())
	assert.Len(t, cfg.Describe(), 3)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MINET_ADDR", ":9090")
	t.Setenv("PINATA_API_KEY", "key")
	t.Setenv("PINATA_SECRET_KEY", "secret")
	t.Setenv("MINET_CONTRACT_ADDRESS", "0x1111111111111111111111111111111111111111")
	t.Setenv("WALLET_BRIDGE_URL", "http://bridge.local")
	t.Setenv("PREVIEW_DEBOUNCE", "250ms")
	t.Setenv("LOG_FORMAT", "text")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.HasPinningCredentials())
	assert.True(t, cfg.HasContract())
	assert.Equal(t, 250*time.Millisecond, cfg.PreviewDelay)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.Describe())
}

func TestHasContractTreatsPlaceholderAsUnset(t *testing.T) {
	cfg := Server{ContractAddress: "0x"}
	assert.False(t, cfg.HasContract())
}

func TestFromEnvIgnoresBadDebounce(t *testing.T) {
	t.Setenv("PREVIEW_DEBOUNCE", "soon")
	cfg := FromEnv()
	assert.Equal(t, DefaultPreviewDelay, cfg.PreviewDelay)
}
