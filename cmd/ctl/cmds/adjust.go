package cmds

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/internal/voting"
	"github.com/hackwave-community/platform-api/internal/logger"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <submission_id> <target>",
	Short: "Set the displayed vote count for a submission",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, span := tracer.Start(cmd.Context(), "adjustCmd")
		defer span.End()

		id, err := uuid.Parse(args[0])
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse submission id")
			return fmt.Errorf("failed to parse submission id: %w", err)
		}

		target, err := strconv.Atoi(args[1])
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse target")
			return fmt.Errorf("failed to parse target: %w", err)
		}

		span.SetAttributes(
			attribute.String("submission.id", id.String()),
			attribute.Int("target", target),
		)

		db, err := openDB()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to open database")
			return err
		}
		db = db.WithContext(ctx)

		submission, err := models.ByID[models.Submission](ctx, db, id)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load submission")
			return fmt.Errorf("failed to load submission: %w", err)
		}

		project, err := models.ByID[models.Project](ctx, db, submission.ProjectID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load project")
			return fmt.Errorf("failed to load project: %w", err)
		}

		ledgerCount, err := voting.LedgerCount(ctx, db, submission.EventID, project.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to count votes")
			return fmt.Errorf("failed to count votes: %w", err)
		}

		voting.SetAdjustmentTarget(project, target, ledgerCount)

		err = db.Model(project).Update("vote_adjustment", project.VoteAdjustment).Error
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to store adjustment")
			return fmt.Errorf("failed to store adjustment: %w", err)
		}

		logger.Logger.InfoContext(
			ctx,
			"adjusted vote count",
			"submission", id.String(),
			"displayed", voting.EffectiveCount(ledgerCount, voting.Adjustment(project)),
		)
		return nil
	},
}
