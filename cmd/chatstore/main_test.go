package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chat-store/domain"
	"chat-store/internal"
	"chat-store/mocks"
	"chat-store/profile"
	"chat-store/runtime/workers"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var owner = domain.AccountIDOf([]byte("owner certificate"))

func openProfile(t *testing.T) *profile.Profile {
	dir := t.TempDir()
	p, err := profile.Open(profile.Options{
		AccountID: owner,
		Badger:    badger.DefaultOptions(filepath.Join(dir, "badger")).WithLoggingLevel(badger.ERROR),
		BlugePath: filepath.Join(dir, "bluge"),
	}, logs.GetLoggerFromLevel(slog.LevelDebug))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestAddWorkers_RegistersProfileLoops(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	p := openProfile(t)
	sup := mocks.NewMockISupervisor(ctrl)
	config := internal.Config{Host: "localhost", DebugPort: 9090, MaintenanceInterval: time.Minute, GCDiscardRatio: 0.5, ShutdownTimeout: time.Second}

	// Then the registry, the maintenance worker and the debug server are supervised, in that order
	sup.EXPECT().Add(
		gomock.Eq(p.Registry),
		gomock.AssignableToTypeOf(&workers.StoreMaintenanceWorker{}),
		gomock.AssignableToTypeOf(&internal.DebugServer{}),
	).Return(sup)

	// When the daemon wires its workers
	got := addWorkers(sup, p, config, logs.GetLoggerFromLevel(slog.LevelDebug))

	req.Equal(sup, got)
}

func TestBuildAuthenticator_DisabledWithoutSecret(t *testing.T) {
	req := require.New(t)

	authenticator, err := buildAuthenticator(internal.Config{}, owner, logs.GetLoggerFromLevel(slog.LevelDebug))

	req.NoError(err)
	req.Nil(authenticator)
}

func TestBuildAuthenticator_WritesOwnerToken(t *testing.T) {
	req := require.New(t)
	tokenFile := filepath.Join(t.TempDir(), "token")
	config := internal.Config{AuthSecret: "daemon_test_secret", AuthTokenDuration: time.Hour, AuthTokenFile: tokenFile}

	authenticator, err := buildAuthenticator(config, owner, logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)
	req.NotNil(authenticator)

	// Then the written token authenticates the owner
	token, err := os.ReadFile(tokenFile)
	req.NoError(err)
	subject, err := authenticator.ValidateToken(string(token))
	req.NoError(err)
	req.Equal(owner, subject)
}
