// Package config builds runtime configuration from the environment so main
// stays lean. A local .env file is honored when present, which mirrors how
// the service is run in development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults that hold unless overridden by the environment.
const (
	DefaultAddr           = ":8080"
	DefaultChainRPCURL    = "https://forno.celo.org"
	DefaultPinataBaseURL  = "https://api.pinata.cloud"
	DefaultGatewayBaseURL = "https://gateway.pinata.cloud/ipfs/"
	DefaultPreviewDelay   = 800 * time.Millisecond
)

// Server captures all service-level configuration.
type Server struct {
	Addr string

	// Pinning service (Pinata) credentials and endpoints.
	PinataAPIKey    string
	PinataSecretKey string
	PinataBaseURL   string
	GatewayBaseURL  string

	// Chain access.
	ContractAddress string
	ChainRPCURL     string

	// Wallet collaborator (external signer bridge) and WalletConnect project.
	WalletBridgeURL        string
	WalletConnectProjectID string

	// Optional bearer guard for mint/upload routes.
	MintAPISecret string

	// Live preview debounce quiet period.
	PreviewDelay time.Duration

	LogFormat string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	// Ignore a missing .env; the environment itself is authoritative.
	_ = godotenv.Load()

	cfg := Server{
		Addr:                   getenv("MINET_ADDR", DefaultAddr),
		PinataAPIKey:           os.Getenv("PINATA_API_KEY"),
		PinataSecretKey:        os.Getenv("PINATA_SECRET_KEY"),
		PinataBaseURL:          getenv("PINATA_BASE_URL", DefaultPinataBaseURL),
		GatewayBaseURL:         getenv("PINATA_GATEWAY_URL", DefaultGatewayBaseURL),
		ContractAddress:        os.Getenv("MINET_CONTRACT_ADDRESS"),
		ChainRPCURL:            getenv("CHAIN_RPC_URL", DefaultChainRPCURL),
		WalletBridgeURL:        os.Getenv("WALLET_BRIDGE_URL"),
		WalletConnectProjectID: os.Getenv("WALLETCONNECT_PROJECT_ID"),
		MintAPISecret:          os.Getenv("MINT_API_SECRET"),
		PreviewDelay:           DefaultPreviewDelay,
		LogFormat:              getenv("LOG_FORMAT", "json"),
	}

	if d := os.Getenv("PREVIEW_DEBOUNCE"); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil {
			cfg.PreviewDelay = parsed
		}
	}

	return cfg
}

// HasPinningCredentials reports whether the pinning collaborator is usable.
// Callers must check this before attempting any upload so missing credentials
// fail fast with a descriptive error instead of a doomed network call.
func (c Server) HasPinningCredentials() bool {
	return c.PinataAPIKey != "" && c.PinataSecretKey != ""
}

// HasContract reports whether a contract address is configured. The original
// deployment used "0x" as an explicit placeholder, so that counts as unset.
func (c Server) HasContract() bool {
	return c.ContractAddress != "" && c.ContractAddress != "0x"
}

// Describe returns readiness problems for startup logging and health checks.
func (c Server) Describe() []error {
	var problems []error
	if !c.HasPinningCredentials() {
		problems = append(problems, fmt.Errorf("pinning credentials not configured (PINATA_API_KEY / PINATA_SECRET_KEY)"))
	}
	if !c.HasContract() {
		problems = append(problems, fmt.Errorf("contract not configured (MINET_CONTRACT_ADDRESS)"))
	}
	if c.WalletBridgeURL == "" {
		problems = append(problems, fmt.Errorf("wallet bridge not configured (WALLET_BRIDGE_URL); minting disabled"))
	}
	return problems
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
