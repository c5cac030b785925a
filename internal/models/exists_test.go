package models

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

// recordingLogger keeps the last rendered statement so tests can
// assert on the SQL gorm actually builds.
type recordingLogger struct {
	last string
}

func (l *recordingLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface { return l }
func (l *recordingLogger) Info(context.Context, string, ...any)             {}
func (l *recordingLogger) Warn(context.Context, string, ...any)             {}
func (l *recordingLogger) Error(context.Context, string, ...any)            {}

func (l *recordingLogger) Trace(
	_ context.Context,
	_ time.Time,
	fc func() (string, int64),
	_ error,
) {
	l.last, _ = fc()
}

// A variadic arg slice passed to Where as a single value renders the
// first placeholder as a row value and leaves the rest unbound.
// Exists must expand its args so multi placeholder conditions bind
// one argument each.
func TestExistsBindsEveryPlaceholder(t *testing.T) {
	ctx := context.Background()

	rec := &recordingLogger{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true, Logger: rec})
	require.NoError(t, err, "failed to open dry run session")

	t.Run("TwoPlaceholders", func(t *testing.T) {
		projectID := uuid.New()
		userID := uuid.New()

		_, err := Exists[TeamMembership](
			ctx, db, "project_id = ? AND user_id = ?", projectID, userID,
		)
		require.NoError(t, err, "failed to build membership query")

		assert.Contains(
			t,
			rec.last,
			fmt.Sprintf("project_id = %q AND user_id = %q", projectID.String(), userID.String()),
			"each placeholder should bind its own argument",
		)
	})

	t.Run("ThreePlaceholders", func(t *testing.T) {
		eventID := uuid.New()
		projectID := uuid.New()
		voterID := uuid.New()

		_, err := Exists[Vote](
			ctx, db,
			"event_id = ? AND project_id = ? AND voter_id = ?",
			eventID, projectID, voterID,
		)
		require.NoError(t, err, "failed to build vote query")

		assert.Contains(
			t,
			rec.last,
			fmt.Sprintf(
				"event_id = %q AND project_id = %q AND voter_id = %q",
				eventID.String(), projectID.String(), voterID.String(),
			),
			"each placeholder should bind its own argument",
		)
	})

	t.Run("SinglePlaceholder", func(t *testing.T) {
		handle := "ada"

		_, err := Exists[User](ctx, db, "handle = ?", handle)
		require.NoError(t, err, "failed to build user query")

		assert.Contains(
			t,
			rec.last,
			fmt.Sprintf("handle = %q", handle),
			"single argument should bind as a plain scalar",
		)
	})
}
