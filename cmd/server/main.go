// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minet/internal/chain/contract"
	"minet/internal/chain/rpc"
	"minet/internal/credential/preview"
	"minet/internal/credential/render"
	"minet/internal/mint"
	"minet/internal/platform/config"
	"minet/internal/platform/health"
	"minet/internal/platform/httpserver"
	"minet/internal/platform/logger"
	"minet/internal/platform/metrics"
	"minet/internal/storage/pinata"
	httptransport "minet/internal/transport/http"
	"minet/internal/verify"
	"minet/internal/verify/tracer"
	"minet/internal/wallet"
	"minet/pkg/platform/middleware/request"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogFormat)

	log.Info("initializing minet",
		"addr", cfg.Addr,
		"chain_rpc", cfg.ChainRPCURL,
		"contract_configured", cfg.HasContract(),
		"version", health.Version,
	)
	for _, problem := range cfg.Describe() {
		log.Warn("configuration incomplete", "problem", problem.Error())
	}

	m := metrics.New()
	requestMetrics := request.NewMetrics()

	renderer, err := render.New()
	if err != nil {
		log.Error("renderer init failed", "error", err)
		os.Exit(1)
	}
	generator := render.NewGenerator(renderer, render.WithLogger(log))

	store := preview.NewStore()
	scheduler := preview.NewScheduler(store, generator.Generate, cfg.PreviewDelay, log)

	pinClient := pinata.New(cfg.PinataBaseURL, cfg.GatewayBaseURL, cfg.PinataAPIKey, cfg.PinataSecretKey,
		pinata.WithLogger(log))

	rpcClient := rpc.NewClient(cfg.ChainRPCURL)
	var (
		reader         verify.ContractReader
		contractReader *contract.Reader
	)
	if cfg.HasContract() {
		contractReader = contract.NewReader(rpcClient, cfg.ContractAddress, m)
		reader = contractReader
	}

	tr := tracer.NewOTel()
	fetcher := verify.NewMetadataFetcher(cfg.GatewayBaseURL, nil, log, tr)
	verifyService := verify.NewService(reader, fetcher, m, tr, log)

	connection := wallet.NewConnection()
	bridge := wallet.NewBridge(cfg.WalletBridgeURL, wallet.WithLogger(log))

	mintService := mint.NewService(pinClient, bridge, rpcClient, cfg.ContractAddress, connection, m, log)

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}
	healthHandler := health.New(environment)
	healthHandler.RegisterCheck("chain", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := rpcClient.ChainID(ctx)
		return err
	})
	healthHandler.RegisterCheck("pinning", func() error {
		if !cfg.HasPinningCredentials() {
			return errors.New("pinning credentials not configured")
		}
		return nil
	})
	if contractReader != nil {
		healthHandler.RegisterCheck("contract", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := contractReader.TotalSupply(ctx)
			return err
		})
	}
	if bridge.Configured() {
		healthHandler.RegisterCheck("wallet-bridge", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return bridge.Health(ctx)
		})
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		RequestMetrics: requestMetrics,
		Health:         healthHandler,
		APISecret:      cfg.MintAPISecret,
		Public: []httptransport.RouteRegistrar{
			verify.NewHandler(verifyService, log),
			preview.NewHandler(store, scheduler, generator, m, log),
			wallet.NewHandler(connection, log),
		},
		Protected: []httptransport.RouteRegistrar{
			mint.NewHandler(mintService, log),
			pinata.NewHandler(pinClient, log, m),
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	scheduler.Close()
	log.Info("server stopped")
}
