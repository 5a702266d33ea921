package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"sigil/internal/commands"
	"sigil/internal/wallet"
)

// NewExecutor builds the storage backend and spawns a running executor from
// cfg. The executor takes ownership of the backend; Shutdown releases it.
func NewExecutor(cfg Config) (*commands.Executor, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	log.SetLevel(level)

	backend, err := newBackend(cfg, log)
	if err != nil {
		return nil, err
	}
	return commands.NewExecutor(backend, log), nil
}

func newBackend(cfg Config, log *logrus.Logger) (wallet.Backend, error) {
	switch cfg.Backend {
	case "badger":
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		return wallet.OpenBadger(filepath.Join(cfg.Home, "wallets"), log)
	case "memory":
		return wallet.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
