package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

type migrateLogger struct {
	logger *zap.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.logger.Sugar().Infof("migration: "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}

// Migrate applies every pending migration in dir. An up-to-date schema is
// not an error.
func Migrate(cfg *Config, dir string, logger *zap.Logger) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("migrations dir: %w", err)
	}

	m, err := migrate.New("file://"+abs, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer func() { _, _ = m.Close() }()
	m.Log = &migrateLogger{logger: logger}

	logger.Info("running database migrations", zap.String("dir", abs))
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("database migration: no change needed")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
