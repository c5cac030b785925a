package voting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/internal/registration"
	"github.com/hackwave-community/platform-api/internal/types"
)

const name = "github.com/hackwave-community/platform-api/internal/voting"

var tracer = otel.Tracer(name)

// Ledger records and removes individual votes while enforcing the
// eligibility rules.
type Ledger struct {
	DB           *gorm.DB
	Registration registration.Service
}

func NewLedger(db *gorm.DB, reg registration.Service) *Ledger {
	return &Ledger{DB: db, Registration: reg}
}

// Outcome is the result of a cast or revoke attempt. Code is empty on
// success; ineligibility is a normal return value, not an error.
type Outcome struct {
	Code   types.VoteCode
	Result types.VoteResult
}

func (o Outcome) OK() bool {
	return o.Code == ""
}

func refused(code types.VoteCode) Outcome {
	return Outcome{Code: code}
}

// checkEligibility runs the shared eligibility rules in their fixed
// order, short circuiting on the first failure. The cast specific
// rules (duplicate row, quota budget) are layered on by the callers.
func (l *Ledger) checkEligibility(
	ctx context.Context,
	event *models.Event,
	project *models.Project,
	voterID uuid.UUID,
	now time.Time,
	policy Policy,
) (types.VoteCode, error) {
	ctx, span := tracer.Start(ctx, "Ledger.checkEligibility")
	defer span.End()

	db := l.DB.WithContext(ctx)

	span.AddEvent("checking voter is not on the team")
	if project.OwnerUserID == voterID {
		return types.VoteCodeOwnProject, nil
	}
	onTeam, err := models.Exists[models.TeamMembership](
		ctx, db, "project_id = ? AND user_id = ?", project.ID, voterID,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check team membership")
		return "", err
	}
	if onTeam {
		return types.VoteCodeOwnProject, nil
	}

	if !event.VotingOpen {
		return types.VoteCodeVotingClosed, nil
	}

	if event.VotingEnded(now) {
		return types.VoteCodeVotingEnded, nil
	}

	if !policy.AllowPublicVoting {
		return types.VoteCodePublicVotingDisabled, nil
	}

	if policy.Scope == types.VoteScopeParticipants {
		span.AddEvent("checking registration for participants scope")
		registered, err := l.Registration.HasActiveRegistration(ctx, event.ID, voterID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to check registration")
			return "", err
		}
		if !registered {
			return types.VoteCodeNotEligible, nil
		}
	}

	return "", nil
}

// Cast records one vote. On success it returns the recomputed
// effective count and the voter's remaining budget.
func (l *Ledger) Cast(
	ctx context.Context,
	event *models.Event,
	project *models.Project,
	voterID uuid.UUID,
	now time.Time,
	policy Policy,
) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "Ledger.Cast")
	defer span.End()

	span.SetAttributes(
		attribute.String("event.id", event.ID.String()),
		attribute.String("project.id", project.ID.String()),
		attribute.String("voter.id", voterID.String()),
	)

	db := l.DB.WithContext(ctx)

	code, err := l.checkEligibility(ctx, event, project, voterID, now, policy)
	if err != nil {
		return Outcome{}, err
	}
	if code != "" {
		span.AddEvent("refused cast", trace.WithAttributes(attribute.String("code", string(code))))
		return refused(code), nil
	}

	span.AddEvent("checking for an existing ledger row")
	voted, err := models.Exists[models.Vote](
		ctx, db,
		"event_id = ? AND project_id = ? AND voter_id = ?",
		event.ID, project.ID, voterID,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check for existing vote")
		return Outcome{}, err
	}
	if voted {
		return refused(types.VoteCodeAlreadyVoted), nil
	}

	used, err := UsedVotes(ctx, db, event.ID, voterID)
	if err != nil {
		return Outcome{}, err
	}
	if !policy.CanCastVote(used) {
		return refused(types.VoteCodeNoVotesLeft), nil
	}

	span.AddEvent("inserting ledger row")
	vote := models.Vote{
		EventID:   event.ID,
		ProjectID: project.ID,
		VoterID:   voterID,
	}
	err = db.Create(&vote).Error
	if err != nil {
		// Two concurrent casts can both pass the pre-check; the unique
		// constraint decides, and the loser is a duplicate, not a 500.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			span.AddEvent("lost duplicate insert race")
			return refused(types.VoteCodeAlreadyVoted), nil
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert vote")
		return Outcome{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	result, err := l.result(ctx, event, project, used+1, true, policy)
	if err != nil {
		return Outcome{}, err
	}

	span.AddEvent("cast recorded")
	return Outcome{Result: result}, nil
}

// Revoke removes an existing vote. The cast budget rule does not apply
// here; a voter at quota may always take a vote back.
func (l *Ledger) Revoke(
	ctx context.Context,
	event *models.Event,
	project *models.Project,
	voterID uuid.UUID,
	now time.Time,
	policy Policy,
) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "Ledger.Revoke")
	defer span.End()

	span.SetAttributes(
		attribute.String("event.id", event.ID.String()),
		attribute.String("project.id", project.ID.String()),
		attribute.String("voter.id", voterID.String()),
	)

	db := l.DB.WithContext(ctx)

	var vote models.Vote
	err := db.Where(
		"event_id = ? AND project_id = ? AND voter_id = ?",
		event.ID, project.ID, voterID,
	).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return refused(types.VoteCodeNotVoted), nil
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to look up vote")
		return Outcome{}, err
	}

	code, err := l.checkEligibility(ctx, event, project, voterID, now, policy)
	if err != nil {
		return Outcome{}, err
	}
	if code != "" {
		return refused(code), nil
	}

	span.AddEvent("deleting ledger row")
	err = db.Delete(&vote).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete vote")
		return Outcome{}, fmt.Errorf("failed to delete vote: %w", err)
	}

	used, err := UsedVotes(ctx, db, event.ID, voterID)
	if err != nil {
		return Outcome{}, err
	}

	result, err := l.result(ctx, event, project, used, false, policy)
	if err != nil {
		return Outcome{}, err
	}

	span.AddEvent("vote revoked")
	return Outcome{Result: result}, nil
}

func (l *Ledger) result(
	ctx context.Context,
	event *models.Event,
	project *models.Project,
	used int,
	voted bool,
	policy Policy,
) (types.VoteResult, error) {
	ledgerCount, err := LedgerCount(ctx, l.DB, event.ID, project.ID)
	if err != nil {
		return types.VoteResult{}, err
	}

	return types.VoteResult{
		VoteCount:      EffectiveCount(ledgerCount, Adjustment(project)),
		RemainingVotes: policy.RemainingVotes(used),
		Voted:          voted,
	}, nil
}
