// Command replay streams a JSON-lines file of wire records through the
// ledger Commit RPC of a running chat store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"chat-store/auth"
	"chat-store/infrastructure/grpc/client"
	"chat-store/infrastructure/grpc/ledger"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	LedgerAddr string        `envconfig:"LEDGER_ADDR" default:"localhost:8080"`
	Token      string        `envconfig:"AUTH_TOKEN"`
	TokenFile  string        `envconfig:"AUTH_TOKEN_FILE"`
	Timeout    time.Duration `envconfig:"REPLAY_TIMEOUT" default:"30s"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"INFO"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("Replay failed: %v", err))
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		return exitConfig, fmt.Errorf("usage: replay <records.jsonl>")
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		return exitConfig, err
	}
	defer func() { _ = file.Close() }()
	records, err := ledger.LoadRecords(file)
	if err != nil {
		return exitConfig, fmt.Errorf("%s: %w", flag.Arg(0), err)
	}

	token, err := readToken(config)
	if err != nil {
		return exitConfig, err
	}
	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(auth.BearerToken(token)))
	}
	conn, err := grpc.NewClient(config.LedgerAddr, opts...)
	if err != nil {
		return exitRuntime, fmt.Errorf("connect to %s: %w", config.LedgerAddr, err)
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	start := time.Now()
	if err = client.NewLedgerClient(conn, logger).CommitRecords(ctx, records); err != nil {
		st := status.Convert(err)
		return exitRuntime, fmt.Errorf("%s: %s", st.Code(), st.Message())
	}
	fmt.Println(color.Green.Sprintf("%d records committed in %v", len(records), time.Since(start).Round(time.Millisecond)))
	return exitOK, nil
}

func readToken(config Config) (string, error) {
	if config.Token != "" || config.TokenFile == "" {
		return config.Token, nil
	}
	raw, err := os.ReadFile(config.TokenFile)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
