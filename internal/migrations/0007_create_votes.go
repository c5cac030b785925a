package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0007, Down0007)
}

func Up0007(ctx context.Context, tx *sql.Tx) error {
	// The unique constraint is the authoritative guard against
	// concurrent duplicate casts from the same voter.
	_, err := tx.ExecContext(ctx, `
CREATE TABLE votes (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    event_id UUID NOT NULL REFERENCES events (id),
    project_id UUID NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    voter_id UUID NOT NULL REFERENCES users (id),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    UNIQUE (event_id, project_id, voter_id)
);
`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
CREATE INDEX votes_by_event_voter ON votes (event_id, voter_id);
`)
	if err != nil {
		return err
	}

	return nil
}

func Down0007(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE votes;`)
	if err != nil {
		return err
	}

	return nil
}
