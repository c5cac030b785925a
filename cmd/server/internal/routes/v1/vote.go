package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	srverr "github.com/hackwave-community/platform-api/cmd/server/internal/error"
	servermiddleware "github.com/hackwave-community/platform-api/cmd/server/internal/middleware"
	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/cmd/server/internal/response"
	"github.com/hackwave-community/platform-api/cmd/server/internal/submissions"
	"github.com/hackwave-community/platform-api/internal/voting"
	"github.com/hackwave-community/platform-api/internal/audit"
	"github.com/hackwave-community/platform-api/internal/types"
)

// voteSetting bundles everything both vote endpoints need resolved
// before touching the ledger.
type voteSetting struct {
	event   *models.Event
	project *models.Project
	policy  voting.Policy
}

func (h *Handler) resolveVoteSetting(
	c echo.Context,
	submission *models.Submission,
) (*voteSetting, error) {
	ctx, span := tracer.Start(c.Request().Context(), "resolveVoteSetting")
	defer span.End()

	db := h.DB.WithContext(ctx)

	event, err := models.ByID[models.Event](ctx, db, submission.EventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load event")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "event not found")
			return nil, response.NotFoundError
		}
		return nil, response.InternalServerError
	}
	if !event.Enabled {
		span.AddEvent("event is disabled")
		return nil, response.NotFoundError
	}

	project, err := models.ByID[models.Project](ctx, db, submission.ProjectID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load project")
		return nil, response.InternalServerError
	}

	return &voteSetting{
		event:   event,
		project: project,
		policy: voting.ResolvePolicy(
			event.EventType,
			event.VotingConfig.Data(),
			h.config.Voting.DefaultQuota,
		),
	}, nil
}

func (h *Handler) CastVote(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "CastVote")
	defer span.End()

	submission, ok := c.Get("submission").(*models.Submission)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("submission: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	user, ok := c.Get(servermiddleware.UserContextKey).(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	requestTime, ok := c.Get("time").(time.Time)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("time: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("submission.id", submission.ID.String()),
		attribute.String("user.id", user.ID.String()),
	)

	setting, err := h.resolveVoteSetting(c, submission)
	if err != nil {
		return err
	}

	outcome, err := h.Ledger.Cast(
		ctx,
		setting.event,
		setting.project,
		user.ID,
		requestTime,
		setting.policy,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to cast vote")
		return response.InternalServerError
	}
	if !outcome.OK() {
		span.AddEvent("cast refused")
		span.SetStatus(codes.Ok, string(outcome.Code))
		return voteRefusal(outcome.Code)
	}

	audit.LogVote(
		auditContext(setting.event.ID, user),
		audit.EvtVoteCast,
		submission.ID.String(),
		setting.project.ID.String(),
		outcome.Result.VoteCount,
	)

	span.AddEvent("vote cast")
	return response.OK(c, http.StatusOK, outcome.Result)
}

func (h *Handler) RevokeVote(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "RevokeVote")
	defer span.End()

	submission, ok := c.Get("submission").(*models.Submission)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("submission: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	user, ok := c.Get(servermiddleware.UserContextKey).(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	requestTime, ok := c.Get("time").(time.Time)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("time: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("submission.id", submission.ID.String()),
		attribute.String("user.id", user.ID.String()),
	)

	setting, err := h.resolveVoteSetting(c, submission)
	if err != nil {
		return err
	}

	outcome, err := h.Ledger.Revoke(
		ctx,
		setting.event,
		setting.project,
		user.ID,
		requestTime,
		setting.policy,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to revoke vote")
		return response.InternalServerError
	}
	if !outcome.OK() {
		span.AddEvent("revoke refused")
		span.SetStatus(codes.Ok, string(outcome.Code))
		return voteRefusal(outcome.Code)
	}

	audit.LogVote(
		auditContext(setting.event.ID, user),
		audit.EvtVoteRevoked,
		submission.ID.String(),
		setting.project.ID.String(),
		outcome.Result.VoteCount,
	)

	span.AddEvent("vote revoked")
	return response.OK(c, http.StatusOK, outcome.Result)
}

func (h *Handler) AdjustVotes(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "AdjustVotes")
	defer span.End()

	submission, ok := c.Get("submission").(*models.Submission)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("submission: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	user, ok := c.Get(servermiddleware.UserContextKey).(*models.User)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("user: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	span.SetAttributes(
		attribute.String("submission.id", submission.ID.String()),
		attribute.String("user.id", user.ID.String()),
	)

	var req types.VoteAdjustmentRequest

	span.AddEvent("parsing request body")
	err := c.Bind(&req)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to parse request data")
		span.RecordError(err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.Fail(types.CodeValidation, "failed to parse request data"),
		)
	}

	span.AddEvent("validating request body")
	err = c.Validate(req)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to validate request data")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.ValidationFail(err))
	}

	count, adjustment, err := h.Manager.SetVoteTarget(ctx, submission, req.VoteCount)
	if err != nil {
		var rejection *submissions.Rejection
		if errors.As(err, &rejection) {
			span.SetStatus(codes.Ok, "adjustment refused")
			return rejectionError(rejection)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to adjust votes")
		return response.InternalServerError
	}

	audit.LogVoteAdjusted(
		auditContext(submission.EventID, user),
		submission.ID.String(),
		submission.ProjectID.String(),
		count,
		adjustment,
	)

	type adjustmentData struct {
		VoteCount  int    `json:"voteCount"`
		Adjustment *int64 `json:"adjustment"`
	}

	span.AddEvent("votes adjusted")
	return response.OK(c, http.StatusOK, adjustmentData{VoteCount: count, Adjustment: adjustment})
}
