package main

import (
	"os"

	"github.com/dukkan/backend/internal/infrastructure/config"
	"github.com/dukkan/backend/internal/infrastructure/logger"
	"github.com/dukkan/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Applies the settlement schema and exits. Useful for deployments where
// the server runs without DDL privileges.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration complete",
		zap.String("driver", cfg.Database.Driver))
}
