package cmds

import (
	"context"
	"fmt"
	"log/slog"

	sloggorm "github.com/orandin/slog-gorm"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hackwave-community/platform-api/internal/config"
	"github.com/hackwave-community/platform-api/internal/logger"
)

var tracer = otel.Tracer("github.com/hackwave-community/platform-api/ctl")

var rootCmd = &cobra.Command{
	Use:   "ctl",
	Short: "Operations tooling for the platform API",
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(migrateCmd, tokenCmd, adjustCmd)
}

// openDB connects with the same config the server uses.
func openDB() (*gorm.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.LogLevel.Set(slog.Level(cfg.Logging.App.Level))
	gormLogger := slog.New(logger.Handler)

	db, err := gorm.Open(
		postgres.Open(cfg.PostgresDSN()),
		&gorm.Config{
			Logger: sloggorm.New(
				sloggorm.WithHandler(gormLogger.Handler()),
				sloggorm.SetLogLevel(sloggorm.DefaultLogType, slog.Level(cfg.Logging.Gorm.Level)),
			),
			TranslateError: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
