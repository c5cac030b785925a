package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	srverr "github.com/hackwave-community/platform-api/cmd/server/internal/error"
	servermiddleware "github.com/hackwave-community/platform-api/cmd/server/internal/middleware"
	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/cmd/server/internal/response"
	"github.com/hackwave-community/platform-api/cmd/server/internal/submissions"
	"github.com/hackwave-community/platform-api/internal/audit"
	"github.com/hackwave-community/platform-api/internal/types"
)

func (h *Handler) ReviewSubmission(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ReviewSubmission")
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

	var req types.ReviewRequest

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

	err = h.Manager.Review(ctx, submission, req)
	if err != nil {
		var rejection *submissions.Rejection
		if errors.As(err, &rejection) {
			span.SetStatus(codes.Ok, "review refused")
			return rejectionError(rejection)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to review submission")
		return response.InternalServerError
	}

	audit.LogSubmission(
		auditContext(submission.EventID, user),
		audit.EvtSubmissionReviewed,
		submission.ID.String(),
		submission.ProjectID.String(),
		submission.Status,
	)

	type reviewData struct {
		Status types.SubmissionStatus `json:"status"`
	}

	span.AddEvent("review recorded")
	return response.OK(c, http.StatusOK, reviewData{Status: submission.Status})
}
