package voting

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/hackwave-community/platform-api/internal/models"
)

// Adjustment reads the administrator applied delta from the project.
// Absent means zero.
func Adjustment(p *models.Project) int64 {
	if !p.VoteAdjustment.Valid {
		return 0
	}
	return p.VoteAdjustment.V
}

// EffectiveCount combines the ledger count with the manual adjustment.
// Adjustments can be negative but the displayed count never drops
// below zero.
func EffectiveCount(ledgerCount int64, adjustment int64) int {
	count := ledgerCount + adjustment
	if count < 0 {
		return 0
	}
	return int(count)
}

// SetAdjustmentTarget mutates the project so the displayed count
// becomes `target` given the current ledger count. A derived
// adjustment of exactly zero clears the column instead of storing 0.
func SetAdjustmentTarget(p *models.Project, target int, ledgerCount int64) {
	if target < 0 {
		target = 0
	}

	adjustment := int64(target) - ledgerCount
	if adjustment == 0 {
		p.VoteAdjustment = models.NewNull[int64](nil)
		return
	}

	p.VoteAdjustment = models.NewNullFromData(adjustment)
}

// LedgerCount counts recorded votes for one project within one event.
func LedgerCount(
	ctx context.Context,
	db *gorm.DB,
	eventID, projectID uuid.UUID,
) (int64, error) {
	ctx, span := tracer.Start(ctx, "LedgerCount")
	defer span.End()

	span.SetAttributes(
		attribute.String("event.id", eventID.String()),
		attribute.String("project.id", projectID.String()),
	)

	db = db.WithContext(ctx)

	var count int64
	err := db.Model(&models.Vote{}).
		Where("event_id = ? AND project_id = ?", eventID, projectID).
		Count(&count).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to count votes")
		return 0, err
	}

	return count, nil
}

// UsedVotes counts how many casts a voter has spent within one event.
func UsedVotes(
	ctx context.Context,
	db *gorm.DB,
	eventID, voterID uuid.UUID,
) (int, error) {
	ctx, span := tracer.Start(ctx, "UsedVotes")
	defer span.End()

	span.SetAttributes(
		attribute.String("event.id", eventID.String()),
		attribute.String("voter.id", voterID.String()),
	)

	db = db.WithContext(ctx)

	var count int64
	err := db.Model(&models.Vote{}).
		Where("event_id = ? AND voter_id = ?", eventID, voterID).
		Count(&count).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to count used votes")
		return 0, err
	}

	return int(count), nil
}

// Ranked pairs a submission with its project and effective vote count
// for sorting and display.
type Ranked struct {
	Submission models.Submission
	Project    models.Project
	VoteCount  int
}

const (
	SortVoteCount = "voteCount"
	SortCreatedAt = "createdAt"
	SortName      = "name"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Rank stably sorts submissions in place. Ties keep their prior
// relative order; no secondary key is applied. Display rank is
// index+1 regardless of direction.
func Rank(items []Ranked, sortKey, order string) {
	desc := order == OrderDesc

	less := func(i, j int) bool { return false }
	switch sortKey {
	case SortCreatedAt:
		less = func(i, j int) bool {
			return items[i].Submission.CreatedAt.Before(items[j].Submission.CreatedAt)
		}
	case SortName:
		less = func(i, j int) bool {
			return strings.Compare(items[i].Project.Title, items[j].Project.Title) < 0
		}
	case SortVoteCount:
		less = func(i, j int) bool {
			return items[i].VoteCount < items[j].VoteCount
		}
	}

	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(items, less)
}
