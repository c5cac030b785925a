package cmds

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/internal/logger"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage user API tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue <user_id>",
	Short: "Issue a fresh API token for a user and activate the account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, span := tracer.Start(cmd.Context(), "tokenIssueCmd")
		defer span.End()

		id, err := uuid.Parse(args[0])
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse user id")
			return fmt.Errorf("failed to parse user id: %w", err)
		}

		span.SetAttributes(attribute.String("user.id", id.String()))

		db, err := openDB()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to open database")
			return err
		}

		user, err := models.ByID[models.User](ctx, db.WithContext(ctx), id)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load user")
			return fmt.Errorf("failed to load user: %w", err)
		}

		raw := make([]byte, 48)
		if _, err := rand.Read(raw); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to generate token")
			return fmt.Errorf("failed to generate token: %w", err)
		}
		token := base64.StdEncoding.EncodeToString(raw)

		hash, err := argon2id.CreateHash(token, argon2id.DefaultParams)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to hash token")
			return fmt.Errorf("failed to hash token: %w", err)
		}

		user.Token = hash
		user.Active = models.NewNullFromData(true)

		if err := db.WithContext(ctx).Save(user).Error; err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to save user")
			return fmt.Errorf("failed to save user: %w", err)
		}

		logger.Logger.InfoContext(ctx, "issued token", "user", id.String())

		// The plaintext token is only ever available here.
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenIssueCmd)
}
