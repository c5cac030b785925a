package voting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/hackwave-community/platform-api/internal/models"
	regmock "github.com/hackwave-community/platform-api/internal/registration/mock"
	"github.com/hackwave-community/platform-api/internal/types"
)

// The refusal rules short circuit before any ledger row is written, so
// they run against a dry run session with a mocked registration
// service. Leaving an expectation unset doubles as the assertion that
// the rule never consults the registry.
func TestEligibilityRules(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err, "failed to open dry run session")

	owner := uuid.New()
	voter := uuid.New()

	event := models.Event{
		Model:      models.Model{ID: uuid.New()},
		Title:      "autumn jam",
		EventType:  "hackathon",
		Enabled:    true,
		VotingOpen: true,
	}
	project := models.Project{
		Model:       models.Model{ID: uuid.New()},
		Title:       "night train",
		OwnerUserID: owner,
	}
	policy := ResolvePolicy(event.EventType, nil, 3)

	newLedger := func(t *testing.T) (*Ledger, *regmock.MockService) {
		t.Helper()

		reg := regmock.NewMockService(gomock.NewController(t))
		return NewLedger(db, reg), reg
	}

	t.Run("OwnProject", func(t *testing.T) {
		ledger, _ := newLedger(t)

		outcome, err := ledger.Cast(ctx, &event, &project, owner, now, policy)
		require.NoError(t, err, "failed to cast")

		assert.Equal(t, types.VoteCodeOwnProject, outcome.Code)
	})

	t.Run("VotingClosed", func(t *testing.T) {
		ledger, _ := newLedger(t)

		closed := event
		closed.VotingOpen = false

		outcome, err := ledger.Cast(ctx, &closed, &project, voter, now, policy)
		require.NoError(t, err, "failed to cast")

		assert.Equal(t, types.VoteCodeVotingClosed, outcome.Code)
	})

	t.Run("VotingEnded", func(t *testing.T) {
		ledger, _ := newLedger(t)

		ended := event
		ended.EndAt = models.NewNullFromData(now.Add(-time.Hour))

		outcome, err := ledger.Cast(ctx, &ended, &project, voter, now, policy)
		require.NoError(t, err, "failed to cast")

		assert.Equal(t, types.VoteCodeVotingEnded, outcome.Code)
	})

	t.Run("PublicVotingDisabled", func(t *testing.T) {
		ledger, _ := newLedger(t)

		judged := ResolvePolicy("judged", nil, 3)

		outcome, err := ledger.Cast(ctx, &event, &project, voter, now, judged)
		require.NoError(t, err, "failed to cast")

		assert.Equal(t, types.VoteCodePublicVotingDisabled, outcome.Code)
	})

	t.Run("NotEligible", func(t *testing.T) {
		ledger, reg := newLedger(t)
		reg.EXPECT().HasActiveRegistration(gomock.Any(), event.ID, voter).Return(false, nil)

		outcome, err := ledger.Cast(ctx, &event, &project, voter, now, policy)
		require.NoError(t, err, "failed to cast")

		assert.Equal(t, types.VoteCodeNotEligible, outcome.Code)
	})

	t.Run("RegisteredParticipantPasses", func(t *testing.T) {
		ledger, reg := newLedger(t)
		reg.EXPECT().HasActiveRegistration(gomock.Any(), event.ID, voter).Return(true, nil)

		code, err := ledger.checkEligibility(ctx, &event, &project, voter, now, policy)
		require.NoError(t, err, "failed to check eligibility")

		assert.Empty(t, code)
	})

	t.Run("AllScopeSkipsRegistration", func(t *testing.T) {
		ledger, _ := newLedger(t)

		community := ResolvePolicy("community", nil, 3)

		code, err := ledger.checkEligibility(ctx, &event, &project, voter, now, community)
		require.NoError(t, err, "failed to check eligibility")

		assert.Empty(t, code)
	})

	t.Run("RegistrationError", func(t *testing.T) {
		ledger, reg := newLedger(t)

		regErr := errors.New("registry unreachable")
		reg.EXPECT().HasActiveRegistration(gomock.Any(), event.ID, voter).Return(false, regErr)

		_, err := ledger.Cast(ctx, &event, &project, voter, now, policy)
		assert.ErrorIs(t, err, regErr)
	})
}
