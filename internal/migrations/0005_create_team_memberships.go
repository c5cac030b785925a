package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0005, Down0005)
}

func Up0005(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
CREATE TABLE team_memberships (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    project_id UUID NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    user_id UUID NOT NULL REFERENCES users (id),
    role TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    UNIQUE (project_id, user_id)
);
`)
	if err != nil {
		return err
	}

	// one leader per project
	_, err = tx.ExecContext(ctx, `
CREATE UNIQUE INDEX team_memberships_one_leader
ON team_memberships (project_id)
WHERE role = 'leader';
`)
	if err != nil {
		return err
	}

	return nil
}

func Down0005(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE team_memberships;`)
	if err != nil {
		return err
	}

	return nil
}
