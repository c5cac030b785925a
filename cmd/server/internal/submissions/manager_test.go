package submissions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hackwave-community/platform-api/internal/migrations"
	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/internal/voting"
	"github.com/hackwave-community/platform-api/internal/registration"
	"github.com/hackwave-community/platform-api/internal/types"
	mockupload "github.com/hackwave-community/platform-api/internal/upload/mock"
)

func seedUser(t *testing.T, db *gorm.DB, handle string, perms models.Permissions) *models.User {
	t.Helper()

	user := models.User{
		Handle:      handle,
		DisplayName: handle,
		Token:       "unusable",
		Permissions: perms,
		Active:      models.NewNullFromData(true),
	}
	require.NoError(t, db.Create(&user).Error, "failed to seed user %s", handle)

	return &user
}

func asRejection(t *testing.T, err error) *Rejection {
	t.Helper()

	var rejection *Rejection
	require.ErrorAs(t, err, &rejection, "expected a business rejection")

	return rejection
}

func TestManager(t *testing.T) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16.4-alpine",
		postgres.WithDatabase("platformapi"),
		postgres.WithUsername("platformapi"),
		postgres.WithPassword("platformapi"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	defer func() {
		err = testcontainers.TerminateContainer(postgresContainer)
		assert.NoError(t, err, "failed to terminate container")
	}()
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := postgresContainer.ConnectionString(ctx)
	require.NoError(t, err, "failed to get connection string to container")

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to connect to the database")

	err = migrations.Up(ctx, db)
	require.NoError(t, err, "failed to migrate db")

	admin := seedUser(t, db, "admin", models.Permissions{Admin: true})
	leader := seedUser(t, db, "leader", models.Permissions{})
	member := seedUser(t, db, "member", models.Permissions{})
	stranger := seedUser(t, db, "stranger", models.Permissions{})

	event := models.Event{
		Title:     "spring hackathon",
		EventType: "hackathon",
		CreatedBy: admin.ID,
		Enabled:   true,
		SubmissionFormFields: datatypes.JSONSlice[types.SubmissionFormField]{
			{Key: "pitch", Label: "Pitch", Type: types.FieldTypeString, Required: true, Enabled: true, PublicVisible: true},
			{Key: "budget", Label: "Budget", Type: types.FieldTypeNumber, Enabled: true},
		},
		SubmissionsOpen: true,
		VotingOpen:      true,
	}
	require.NoError(t, db.Create(&event).Error, "failed to seed event")

	for _, u := range []*models.User{leader, member} {
		require.NoError(t, db.Create(&models.EventRegistration{
			EventID: event.ID,
			UserID:  u.ID,
			Status:  models.RegistrationStatusConfirmed,
		}).Error, "failed to seed registration")
	}

	manager := NewManager(db, registration.NewGormService(db), nil)
	now := time.Now()

	createReq := types.SubmissionCreateRequest{
		Title:               "carbon tracker",
		Tagline:             "less CO2",
		Description:         "tracks carbon",
		MemberIDs:           []string{member.ID.String(), leader.ID.String(), member.ID.String()},
		Fields:              map[string]any{"pitch": "we make things", "budget": float64(100)},
		Attachments:         []types.AttachmentPayload{{Name: "deck", URL: "https://example.com/deck.pdf", Order: 1}},
		CommunityAuthorized: true,
	}

	t.Run("CreateRejectsUnregistered", func(t *testing.T) {
		_, err := manager.Create(ctx, &event, stranger, createReq, now)

		rejection := asRejection(t, err)
		assert.Equal(t, types.CodePermission, rejection.Code)
		assert.Equal(t, "需先报名", rejection.Message)
	})

	t.Run("CreateRejectsClosedWindow", func(t *testing.T) {
		closed := event
		closed.SubmissionsOpen = false

		_, err := manager.Create(ctx, &closed, leader, createReq, now)

		rejection := asRejection(t, err)
		assert.Equal(t, types.CodeValidation, rejection.Code)
	})

	t.Run("CreateRejectsMissingRequiredField", func(t *testing.T) {
		bad := createReq
		bad.Fields = map[string]any{"budget": float64(100)}

		_, err := manager.Create(ctx, &event, leader, bad, now)

		rejection := asRejection(t, err)
		assert.Contains(t, rejection.Fields, "pitch")
	})

	var item *Item

	t.Run("Create", func(t *testing.T) {
		created, err := manager.Create(ctx, &event, leader, createReq, now)
		require.NoError(t, err, "failed to create submission")
		item = created

		assert.Equal(t, types.SubmissionStatusSubmitted, item.Submission.Status)
		assert.Equal(t, leader.ID, item.Project.OwnerUserID)
		assert.Equal(t, 0, item.VoteCount)

		// Duplicate member ids and the leader itself collapse to one
		// leader row plus one member row.
		require.Len(t, item.Team, 2)

		require.Len(t, item.Attachments, 1)
		assert.Equal(t, "deck", item.Attachments[0].Name)
	})

	t.Run("GetHidesDisabledEvent", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Event{}).
			Where("id = ?", event.ID).
			Update("enabled", false).Error)
		defer func() {
			require.NoError(t, db.Model(&models.Event{}).
				Where("id = ?", event.ID).
				Update("enabled", true).Error)
		}()

		_, _, err := manager.Get(ctx, &item.Submission)

		rejection := asRejection(t, err)
		assert.Equal(t, types.CodeNotFound, rejection.Code)
	})

	t.Run("Get", func(t *testing.T) {
		got, formFields, err := manager.Get(ctx, &item.Submission)
		require.NoError(t, err, "failed to get submission")

		assert.Equal(t, item.Submission.ID, got.Submission.ID)
		assert.Len(t, formFields, 2)
	})

	t.Run("UpdateRejectsStranger", func(t *testing.T) {
		title := "hijacked"
		_, err := manager.Update(ctx, &item.Submission, stranger, types.SubmissionUpdateRequest{
			Title: &title,
		})

		rejection := asRejection(t, err)
		assert.Equal(t, types.CodePermission, rejection.Code)
	})

	t.Run("UpdateResetsReviewState", func(t *testing.T) {
		note := "looks good"
		score := 90
		err := manager.Review(ctx, &item.Submission, types.ReviewRequest{
			Decision:   types.SubmissionStatusApproved,
			Note:       &note,
			JudgeScore: &score,
		})
		require.NoError(t, err, "failed to review submission")

		title := "carbon tracker v2"
		updated, err := manager.Update(ctx, &item.Submission, leader, types.SubmissionUpdateRequest{
			Title: &title,
		})
		require.NoError(t, err, "failed to update submission")

		assert.Equal(t, "carbon tracker v2", updated.Submission.Title)
		assert.Equal(t, types.SubmissionStatusSubmitted, updated.Submission.Status)
		assert.False(t, updated.Submission.ReviewNote.Valid, "review note not cleared")
		assert.False(t, updated.Submission.JudgeScore.Valid, "judge score not cleared")

		item = updated
	})

	t.Run("UpdateMergesFields", func(t *testing.T) {
		fields := map[string]any{"pitch": "we make better things"}
		updated, err := manager.Update(ctx, &item.Submission, leader, types.SubmissionUpdateRequest{
			Fields: &fields,
		})
		require.NoError(t, err, "failed to update submission")

		assert.Equal(t, "we make better things", updated.Project.Fields["pitch"])
		assert.Equal(t, float64(100), updated.Project.Fields["budget"], "unchanged answer dropped")

		item = updated
	})

	t.Run("UpdateValidatesMergedFields", func(t *testing.T) {
		fields := map[string]any{"budget": "lots"}
		_, err := manager.Update(ctx, &item.Submission, leader, types.SubmissionUpdateRequest{
			Fields: &fields,
		})

		rejection := asRejection(t, err)
		assert.Contains(t, rejection.Fields, "budget")
	})

	var hidden *Item

	t.Run("ListFiltersUnauthorizedProjects", func(t *testing.T) {
		unlisted := createReq
		unlisted.Title = "secret lab"
		unlisted.MemberIDs = nil
		unlisted.Attachments = nil
		unlisted.CommunityAuthorized = false

		created, err := manager.Create(ctx, &event, member, unlisted, now)
		require.NoError(t, err, "failed to create second submission")
		hidden = created

		public, err := manager.List(ctx, &event, voting.SortVoteCount, voting.OrderDesc, false)
		require.NoError(t, err, "failed to list submissions")

		require.Len(t, public, 1)
		assert.Equal(t, item.Submission.ID, public[0].Submission.ID)
		if assert.NotNil(t, public[0].Rank) {
			assert.Equal(t, 1, *public[0].Rank)
		}

		privileged, err := manager.List(ctx, &event, voting.SortVoteCount, voting.OrderDesc, true)
		require.NoError(t, err, "failed to list submissions")

		assert.Len(t, privileged, 2)
	})

	t.Run("SetVoteTarget", func(t *testing.T) {
		count, adjustment, err := manager.SetVoteTarget(ctx, &item.Submission, 5)
		require.NoError(t, err, "failed to set vote target")

		assert.Equal(t, 5, count)
		if assert.NotNil(t, adjustment) {
			assert.Equal(t, int64(5), *adjustment)
		}

		count, adjustment, err = manager.SetVoteTarget(ctx, &item.Submission, 0)
		require.NoError(t, err, "failed to clear vote target")

		assert.Equal(t, 0, count)
		assert.Nil(t, adjustment, "zero adjustment stored instead of cleared")
	})

	t.Run("DeleteArchivesSnapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		archiver := mockupload.NewMockArchiver(ctrl)

		archiver.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil).Times(1)
		archiver.EXPECT().
			Archive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(1)
		archiver.EXPECT().StoreIdentifier(gomock.Any()).Return("minio:snapshots", nil).Times(1)

		archiving := NewManager(db, registration.NewGormService(db), archiver)

		snapshot, err := archiving.Delete(ctx, &hidden.Submission, member)
		require.NoError(t, err, "failed to delete submission")

		require.NotNil(t, snapshot.Store)
		assert.Equal(t, "minio:snapshots", *snapshot.Store)
		require.NotNil(t, snapshot.Object)

		_, err = models.ByID[models.Submission](ctx, db, hidden.Submission.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "submission row survived delete")

		_, err = models.ByID[models.Project](ctx, db, hidden.Project.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "project row survived delete")

		roster, err := models.Exists[models.TeamMembership](ctx, db, "project_id = ?", hidden.Project.ID)
		require.NoError(t, err)
		assert.False(t, roster, "roster rows survived delete")
	})

	t.Run("DeleteWithoutArchiver", func(t *testing.T) {
		quick := createReq
		quick.Title = "throwaway"
		quick.MemberIDs = nil
		quick.Attachments = nil

		created, err := manager.Create(ctx, &event, leader, quick, now)
		require.NoError(t, err, "failed to create submission")

		snapshot, err := manager.Delete(ctx, &created.Submission, leader)
		require.NoError(t, err, "failed to delete submission")

		assert.Nil(t, snapshot.Store)
		assert.Nil(t, snapshot.Object)
	})
}
