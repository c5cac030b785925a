package voting

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

// CountsByEvent returns the ledger count per project for one event in
// a single grouped query. Projects with no votes are absent.
func CountsByEvent(
	ctx context.Context,
	db *gorm.DB,
	eventID uuid.UUID,
) (map[uuid.UUID]int64, error) {
	ctx, span := tracer.Start(ctx, "CountsByEvent")
	defer span.End()

	var rows []struct {
		ProjectID uuid.UUID
		Count     int64
	}
	err := db.WithContext(ctx).
		Table("votes").
		Select("project_id, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("project_id").
		Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to count votes by project")
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ProjectID] = row.Count
	}

	return counts, nil
}
