package submissions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/hackwave-community/platform-api/internal/models"
)

// SyncTeam replaces a project's roster with one leader row plus one
// member row per deduplicated id, skipping the leader if it appears in
// the member set. It must run inside the caller's transaction so a
// roster with zero rows is never observable.
func SyncTeam(
	ctx context.Context,
	tx *gorm.DB,
	projectID uuid.UUID,
	leaderID uuid.UUID,
	memberIDs []uuid.UUID,
) error {
	ctx, span := tracer.Start(ctx, "SyncTeam")
	defer span.End()

	db := tx.WithContext(ctx)

	span.AddEvent("clearing existing roster")
	err := db.Where("project_id = ?", projectID).
		Delete(&models.TeamMembership{}).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to clear roster")
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	rows := []models.TeamMembership{
		{Role: models.TeamRoleLeader, ProjectID: projectID, UserID: leaderID},
	}
	seen := map[uuid.UUID]struct{}{leaderID: {}}
	for _, id := range memberIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		rows = append(rows, models.TeamMembership{
			Role:      models.TeamRoleMember,
			ProjectID: projectID,
			UserID:    id,
		})
	}

	span.AddEvent("inserting roster rows")
	err = db.Create(&rows).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert roster")
		return fmt.Errorf("failed to insert roster: %w", err)
	}

	return nil
}

// DedupeMembers removes duplicates and the leader from a member id
// list, preserving first-seen order.
func DedupeMembers(leaderID uuid.UUID, memberIDs []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(memberIDs))
	seen := map[uuid.UUID]struct{}{leaderID: {}}
	for _, id := range memberIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
