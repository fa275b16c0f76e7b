package internal

import (
	"fmt"
	"time"

	"chat-store/domain"
)

type Config struct {
	AccountCertificatePath string        `env:"ACCOUNT_CERTIFICATE_PATH,required=true"`
	BadgerFilepath         string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath          string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel               string        `env:"LOG_LEVEL,required=true"`
	Host                   string        `env:"HOST,required=true"`
	Port                   int           `env:"PORT,required=true"`
	DebugPort              int           `env:"DEBUG_PORT,required=true"`
	AuthSecret             string        `env:"AUTH_SECRET"`
	AuthTokenDuration      time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	AuthTokenFile          string        `env:"AUTH_TOKEN_FILE"`
	MaintenanceInterval    time.Duration `env:"MAINTENANCE_INTERVAL,default=1m"`
	GCDiscardRatio         float64       `env:"GC_DISCARD_RATIO,default=0.5"`
	RestartInterval        time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout        time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}

// AuthEnabled reports whether gRPC calls must carry a bearer token.
func (c Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

// Address is the gRPC listen address.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) DebugAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.DebugPort)
}

// AccountID derives the profile owner from its certificate bytes.
func AccountID(certificate []byte) (domain.ID, error) {
	if len(certificate) == 0 {
		return domain.ID{}, fmt.Errorf("account certificate is empty")
	}
	return domain.AccountIDOf(certificate), nil
}
