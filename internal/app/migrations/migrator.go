package migrations

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5:// scheme
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

// Migrator applies the versioned SQL files of a directory with golang-migrate
type Migrator struct {
	databaseURL string
	logger      zerolog.Logger
}

// NewMigrator creates a new migrator. databaseURL must use the pgx5:// scheme.
func NewMigrator(databaseURL string, logger zerolog.Logger) *Migrator {
	return &Migrator{
		databaseURL: databaseURL,
		logger:      logger,
	}
}

// MigrateFromDirectory applies every pending up migration found in dirPath
func (m *Migrator) MigrateFromDirectory(dirPath string) error {
	if _, err := os.Stat(dirPath); err != nil {
		return fmt.Errorf("migrations directory not found at %s: %w", dirPath, err)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to resolve migrations directory: %w", err)
	}

	mg, err := migrate.New("file://"+filepath.ToSlash(absPath), m.databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialise migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := mg.Close()
		if srcErr != nil || dbErr != nil {
			m.logger.Warn().AnErr("sourceErr", srcErr).AnErr("dbErr", dbErr).Msg("Failed to close migrator")
		}
	}()

	if err := mg.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info().Msg("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("error occurred during SQL migration execution: %w", err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	m.logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrations applied")
	return nil
}
