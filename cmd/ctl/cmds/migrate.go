package cmds

import (
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"

	"github.com/hackwave-community/platform-api/internal/migrations"
	"github.com/hackwave-community/platform-api/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Migrate the database to the latest version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, span := tracer.Start(cmd.Context(), "migrateUpCmd")
		defer span.End()

		db, err := openDB()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to open database")
			return err
		}

		if err := migrations.Up(ctx, db); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to migrate up")
			return err
		}

		logger.Logger.InfoContext(ctx, "database migrated to latest version")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll the database back one version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, span := tracer.Start(cmd.Context(), "migrateDownCmd")
		defer span.End()

		db, err := openDB()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to open database")
			return err
		}

		if err := migrations.Down(ctx, db); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to migrate down")
			return err
		}

		logger.Logger.InfoContext(ctx, "database rolled back one version")
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
