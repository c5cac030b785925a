package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

// Ensure GormService implements Service interface.
var _ Service = (*GormService)(nil)

// GormService resolves registrations from the local store. Used when
// the platform runs as a single binary with its registration tables in
// the same database.
type GormService struct {
	db *gorm.DB
}

func NewGormService(db *gorm.DB) *GormService {
	return &GormService{db: db}
}

func (s *GormService) HasActiveRegistration(
	ctx context.Context,
	eventID, userID uuid.UUID,
) (bool, error) {
	ctx, span := tracer.Start(ctx, "GormService.HasActiveRegistration")
	defer span.End()

	span.SetAttributes(
		attribute.String("event.id", eventID.String()),
		attribute.String("user.id", userID.String()),
	)

	db := s.db.WithContext(ctx)

	var exists bool
	result := db.Table("event_registrations").
		Select("1").
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, "confirmed").
		Limit(1).
		Find(&exists)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}

		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "failed to query registrations")
		return false, fmt.Errorf("failed to query registrations: %w", result.Error)
	}

	span.AddEvent("checked registration")
	return exists, nil
}
