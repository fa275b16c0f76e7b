package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-store/auth"
	"chat-store/contract"
	"chat-store/domain"
	"chat-store/infrastructure/grpc/server"
	"chat-store/internal"
	"chat-store/profile"
	"chat-store/runtime/workers"
	"chat-store/services"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat store terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the profile, its workers and the gRPC ledger, then blocks until
// a signal or a server failure. Returning instead of exiting lets the
// deferred closes release the database lock.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	certificate, err := os.ReadFile(config.AccountCertificatePath)
	if err != nil {
		return exitConfig, fmt.Errorf("read account certificate: %w", err)
	}
	accountID, err := internal.AccountID(certificate)
	if err != nil {
		return exitConfig, err
	}

	// 2. Profile (BadgerDB, Bluge, subscriptions)
	p, err := profile.Open(profile.Options{
		AccountID:    accountID,
		Badger:       profile.BadgerOptions(config.BadgerFilepath, logger),
		BlugePath:    config.BlugeFilepath,
		RebuildIndex: true,
	}, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		logger.Info("Closing profile...")
		if err := p.Close(); err != nil {
			logger.Error("Profile close failed", "error", err)
		}
	}()

	authenticator, err := buildAuthenticator(config, accountID, logger)
	if err != nil {
		return exitConfig, err
	}

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Supervised workers
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	addWorkers(sup, p, config, logger)
	supervised := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervised)
	}()

	// 5. gRPC Server Setup
	listener, err := net.Listen("tcp", config.Address())
	if err != nil {
		sup.Stop()
		<-supervised
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.Address(), err)
	}
	s := server.NewGRPCServer(services.NewLedgerService(p, logger), authenticator, logger)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting gRPC server", "address", config.Address(), "account", accountID.String(), "at", time.Now().UTC())
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	code := exitOK
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err = <-errChan:
		code = exitRuntime
	}

	// 7. Graceful Shutdown: drain commit streams before the workers and the profile go away
	logger.Info("Shutting down gracefully...")
	s.GracefulStop()
	sup.Stop()
	<-supervised
	logger.Info("Program stopped cleanly")
	return code, err
}

// buildAuthenticator returns nil when no secret is configured. Otherwise it
// issues a token for the owner, written to AUTH_TOKEN_FILE when set.
func buildAuthenticator(config internal.Config, accountID domain.ID, logger *slog.Logger) (*auth.Authenticator, error) {
	if !config.AuthEnabled() {
		logger.Warn("AUTH_SECRET is not set, gRPC calls are not authenticated")
		return nil, nil
	}
	authenticator := auth.NewAuthenticator(config.AuthSecret, accountID, config.AuthTokenDuration)
	if config.AuthTokenFile == "" {
		return authenticator, nil
	}
	token, err := authenticator.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err = os.WriteFile(config.AuthTokenFile, []byte(token), 0o600); err != nil {
		return nil, fmt.Errorf("write token file: %w", err)
	}
	logger.Info("Bearer token written", "path", config.AuthTokenFile, "valid_for", config.AuthTokenDuration)
	return authenticator, nil
}

// addWorkers registers the long running loops of the profile: subscription
// refresh, store maintenance and the debug server.
func addWorkers(sup contract.ISupervisor, p *profile.Profile, config internal.Config, logger *slog.Logger) contract.ISupervisor {
	return sup.Add(
		p.Registry,
		workers.NewStoreMaintenanceWorker(p.DB, config.MaintenanceInterval, config.GCDiscardRatio, logger),
		internal.NewDebugServer(config.DebugAddress(), internal.NewDebugRouter(p.Store, logger), config.ShutdownTimeout, logger),
	)
}
