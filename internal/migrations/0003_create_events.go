package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0003, Down0003)
}

func Up0003(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
CREATE TABLE events (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    title TEXT NOT NULL,
    event_type TEXT NOT NULL DEFAULT 'hackathon',
    created_by UUID NOT NULL REFERENCES users (id),
    enabled BOOLEAN NOT NULL DEFAULT TRUE,
    submission_form_fields JSONB NOT NULL DEFAULT '[]',
    voting_config JSONB DEFAULT NULL,
    submission_deadline TIMESTAMP WITH TIME ZONE DEFAULT NULL,
    end_at TIMESTAMP WITH TIME ZONE DEFAULT NULL,
    submissions_open BOOLEAN NOT NULL DEFAULT FALSE,
    voting_open BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp
);
`)
	if err != nil {
		return err
	}

	return nil
}

func Down0003(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE events;`)
	if err != nil {
		return err
	}

	return nil
}
