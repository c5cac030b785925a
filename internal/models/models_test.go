package models

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hackwave-community/platform-api/internal/migrations"
)

func TestUtilities(t *testing.T) {
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

	db, err := gorm.Open(gormpostgres.Open(dsn))
	require.NoError(t, err, "failed to connect to the database")

	err = migrations.Up(ctx, db)
	require.NoError(t, err, "failed to migrate db")

	user := &User{
		Handle:      "ada",
		DisplayName: "Ada",
		Token:       "unusable",
		Active:      NewNullFromData(true),
		Permissions: Permissions{Organizer: true},
	}
	result := db.Create(user)
	require.NoError(t, result.Error, "failed to write element to db")

	t.Run("ExistsByID", func(t *testing.T) {
		exists, err := Exists[User](context.Background(), db, "id = ?", user.ID)
		require.NoError(t, err, "failed to check db for existence")

		assert.True(t, exists, "did not find the object")
	})

	t.Run("ExistsByHandle", func(t *testing.T) {
		exists, err := Exists[User](context.Background(), db, "handle = ?", user.Handle)
		require.NoError(t, err, "failed to check db for existence")

		assert.True(t, exists, "did not find the object")
	})

	t.Run("DoesNotExistByID", func(t *testing.T) {
		exists, err := Exists[User](context.Background(), db, "id = ?", uuid.New())
		require.NoError(t, err, "failed to check db for existence")

		assert.False(t, exists, "should not find object")
	})

	t.Run("ByID", func(t *testing.T) {
		found, err := ByID[User](context.Background(), db, user.ID)
		require.NoError(t, err, "failed to get object by id")

		assert.Equal(t, user.Handle, found.Handle)
		assert.True(t, found.Permissions.Organizer)
	})

	t.Run("ByIDMissing", func(t *testing.T) {
		_, err := ByID[User](context.Background(), db, uuid.New())

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestNullHelpers(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		v := 42
		null := NewNull(&v)

		require.True(t, null.Valid)
		out := PtrFromNull(null)
		require.NotNil(t, out)
		assert.Equal(t, 42, *out)
	})

	t.Run("NilStaysInvalid", func(t *testing.T) {
		null := NewNull[int](nil)

		assert.False(t, null.Valid)
		assert.Nil(t, PtrFromNull(null))
	})
}

func TestEventWindows(t *testing.T) {
	now := time.Now()

	t.Run("SubmissionsClosedFlag", func(t *testing.T) {
		event := Event{SubmissionsOpen: false}

		assert.False(t, event.SubmissionWindowOpen(now))
	})

	t.Run("SubmissionsOpenNoDeadline", func(t *testing.T) {
		event := Event{SubmissionsOpen: true}

		assert.True(t, event.SubmissionWindowOpen(now))
	})

	t.Run("SubmissionsPastDeadline", func(t *testing.T) {
		event := Event{
			SubmissionsOpen:    true,
			SubmissionDeadline: NewNullFromData(now.Add(-time.Minute)),
		}

		assert.False(t, event.SubmissionWindowOpen(now))
	})

	t.Run("VotingEnded", func(t *testing.T) {
		open := Event{}
		ended := Event{EndAt: NewNullFromData(now.Add(-time.Minute))}

		assert.False(t, open.VotingEnded(now))
		assert.True(t, ended.VotingEnded(now))
	})
}
