package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/app/service"
	"smartaccount_playground/internal/infrastructure/account"
	"smartaccount_playground/internal/infrastructure/configloader"
	"smartaccount_playground/internal/infrastructure/httpclient"
	evmclient "smartaccount_playground/internal/infrastructure/network/client"
	networkdefinition "smartaccount_playground/internal/infrastructure/network/definition"
	"smartaccount_playground/internal/infrastructure/restapi"
	"smartaccount_playground/internal/infrastructure/settingsstore"
	"smartaccount_playground/internal/infrastructure/tokenloader"
	"smartaccount_playground/internal/infrastructure/wallet"
	"smartaccount_playground/internal/pkg/logger"
	"smartaccount_playground/internal/pkg/metrics"
	"smartaccount_playground/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Error("Playground stopped with error", zap.Error(err))
		_ = zapLogger.Sync()
		os.Exit(1)
	}
}

func run(cfg *configloader.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.MustRegisterMetrics()

	networks := networkdefinition.NewNetworkDefinitionProvider(logger.NewSlogAdapter(), cfg.Networks)

	tokens, err := tokenloader.NewTokenLoader(cfg.Tokens.Directory, logger.Info, logger.Warn)
	if err != nil {
		return fmt.Errorf("load tokens: %w", err)
	}

	balanceClient, closeBalances := newBalanceClient(cfg, networks, tokens, zapLogger)
	defer closeBalances()

	priceClient := httpclient.NewCachedPriceClient(
		httpclient.NewPriceAPIClient(cfg.PriceService.BaseURL, cfg.PriceService.RequestTimeout(), cfg.PriceService.MaxIDsPerRequest, zapLogger),
		cfg.PriceService.CacheTTL(),
		zapLogger,
	)

	walletCapability, closeWallet, err := newWallet(ctx, cfg.Wallet, zapLogger)
	if err != nil {
		return err
	}
	defer closeWallet()

	accounts, err := account.NewStaticProvider(cfg.Account.SmartAccountAddress, cfg.Account.OwnerAddress, logger.NewZapAdapter(zapLogger.Named("Account")))
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}

	store, err := newSettingsStore(cfg.Settings)
	if err != nil {
		return err
	}

	fetcher := service.NewBalanceFetcher(balanceClient, priceClient, tokens,
		logger.NewZapAdapter(zapLogger.Named("BalanceFetcher")), cfg.BalanceService.RefreshInterval())
	playground := service.NewPlaygroundService(
		networks,
		tokens,
		accounts,
		service.NewSettingsService(store, logger.NewZapAdapter(zapLogger.Named("SettingsService"))),
		service.NewSubmissionOrchestrator(walletCapability, networks,
			logger.NewZapAdapter(zapLogger.Named("SubmissionOrchestrator")), cfg.Wallet.SubmitTimeout()),
		fetcher,
		logger.NewZapAdapter(zapLogger.Named("PlaygroundService")),
	)
	if err := playground.Start(ctx); err != nil {
		return fmt.Errorf("start playground: %w", err)
	}
	go fetcher.Run(ctx)

	handler := restapi.NewPlaygroundHandler(playground, fetcher, rate.NewLimiter(rate.Every(time.Second), 3), zapLogger)
	router := restapi.SetupRouter(restapi.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MockPrices:     cfg.MockPrices.Enabled,
	}, handler, zapLogger)

	addr := cfg.Server.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("Server starting", zap.String("addr", addr),
			zap.String("balance_source", cfg.BalanceService.Source), zap.String("wallet_mode", cfg.Wallet.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	zapLogger.Info("Server exiting")
	return nil
}

func newBalanceClient(
	cfg *configloader.Config,
	networks port.NetworkDefinitionProvider,
	tokens port.TokenProvider,
	zapLogger *zap.Logger,
) (port.BalanceClient, func()) {
	if cfg.BalanceService.Source == "rpc" {
		c := evmclient.NewRPCBalanceClient(networks, tokens,
			logger.NewZapAdapter(zapLogger.Named("RPCBalanceClient")),
			time.Duration(cfg.BalanceService.RPCCallTimeoutSeconds)*time.Second)
		return c, c.Close
	}
	c := httpclient.NewBalanceAPIClient(cfg.BalanceService.BaseURL, cfg.BalanceService.RequestTimeout(),
		cfg.BalanceService.RateLimit, cfg.BalanceService.BurstLimit, zapLogger)
	return c, func() {}
}

func newWallet(ctx context.Context, cfg configloader.WalletConfig, zapLogger *zap.Logger) (port.WalletCapability, func(), error) {
	if cfg.Mode == "rpc" {
		w, err := wallet.DialRPCWallet(ctx, cfg.Endpoint, cfg.Method, cfg.APIKey, zapLogger)
		if err != nil {
			return nil, nil, err
		}
		return w, w.Close, nil
	}
	zapLogger.Warn("Using the simulated wallet, no operation reaches a chain")
	return wallet.NewSimulatedWallet(time.Duration(cfg.SimulatedLatencyMs)*time.Millisecond, zapLogger), func() {}, nil
}

func newSettingsStore(cfg configloader.SettingsConfig) (port.SettingsStore, error) {
	if cfg.File == "" {
		return settingsstore.NewMemoryStore(), nil
	}
	s, err := settingsstore.OpenFileStore(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("settings store: %w", err)
	}
	return s, nil
}
