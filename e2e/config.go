package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// LEDGER_ADDR points at a running chat store; the suite is skipped without it
	LedgerAddr string `envconfig:"LEDGER_ADDR"`
	// AUTH_TOKEN is the bearer token printed by the daemon, when it requires one
	AuthToken string        `envconfig:"AUTH_TOKEN"`
	Timeout   time.Duration `envconfig:"E2E_STEP_TIMEOUT" default:"30s"`
	DebugJSON bool          `envconfig:"E2E_DEBUG_JSON" default:"false"`
	Colours   bool          `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
