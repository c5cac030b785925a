package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	srverr "github.com/hackwave-community/platform-api/cmd/server/internal/error"
	servermiddleware "github.com/hackwave-community/platform-api/cmd/server/internal/middleware"
	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/cmd/server/internal/response"
	"github.com/hackwave-community/platform-api/cmd/server/internal/submissions"
	"github.com/hackwave-community/platform-api/internal/voting"
	"github.com/hackwave-community/platform-api/internal/audit"
	"github.com/hackwave-community/platform-api/internal/types"
)

func (h *Handler) ListSubmissions(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListSubmissions")
	defer span.End()

	event, ok := c.Get("event").(*models.Event)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("event: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	user, _ := c.Get(servermiddleware.UserContextKey).(*models.User)

	span.SetAttributes(attribute.String("event.id", event.ID.String()))

	var query types.ListQuery

	span.AddEvent("parsing list query")
	err := c.Bind(&query)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to parse query")
		span.RecordError(err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.Fail(types.CodeValidation, "failed to parse query"),
		)
	}

	span.AddEvent("validating list query")
	err = c.Validate(query)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to validate query")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.ValidationFail(err))
	}

	sortKey := query.Sort
	if sortKey == "" {
		sortKey = voting.SortVoteCount
	}
	order := query.Order
	if order == "" {
		order = voting.OrderDesc
	}

	privileged := user != nil && (user.Permissions.Admin || user.Permissions.Organizer)

	items, err := h.Manager.List(ctx, event, sortKey, order, privileged)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list submissions")
		return response.InternalServerError
	}

	views := make([]types.SubmissionView, 0, len(items))
	for i := range items {
		views = append(
			views,
			items[i].View(privilegedFor(user, &items[i]), event.SubmissionFormFields),
		)
	}

	span.AddEvent("listed submissions")
	return response.OK(c, http.StatusOK, views)
}

func (h *Handler) GetSubmission(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "GetSubmission")
	defer span.End()

	submission, ok := c.Get("submission").(*models.Submission)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("submission: %s", srverr.ErrTypeAssertMismatch))
		return response.InternalServerError
	}

	user, _ := c.Get(servermiddleware.UserContextKey).(*models.User)

	span.SetAttributes(attribute.String("submission.id", submission.ID.String()))

	item, formFields, err := h.Manager.Get(ctx, submission)
	if err != nil {
		var rejection *submissions.Rejection
		if errors.As(err, &rejection) {
			span.SetStatus(codes.Ok, "submission not visible")
			return rejectionError(rejection)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load submission")
		return response.InternalServerError
	}

	span.AddEvent("fetched submission")
	return response.OK(c, http.StatusOK, item.View(privilegedFor(user, item), formFields))
}

func (h *Handler) CreateSubmission(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "CreateSubmission")
	defer span.End()

	event, ok := c.Get("event").(*models.Event)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("event: %s", srverr.ErrTypeAssertMismatch))
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
		attribute.String("event.id", event.ID.String()),
		attribute.String("user.id", user.ID.String()),
		attribute.Int64("request.timestamp_ms", requestTime.UnixMilli()),
	)

	var req types.SubmissionCreateRequest

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

	item, err := h.Manager.Create(ctx, event, user, req, requestTime)
	if err != nil {
		var rejection *submissions.Rejection
		if errors.As(err, &rejection) {
			span.SetStatus(codes.Ok, "submission refused")
			return rejectionError(rejection)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create submission")
		return response.InternalServerError
	}

	audit.LogSubmission(
		auditContext(event.ID, user),
		audit.EvtSubmissionCreated,
		item.Submission.ID.String(),
		item.Project.ID.String(),
		item.Submission.Status,
	)

	span.AddEvent("created submission")
	return response.OK(c, http.StatusCreated, item.View(true, event.SubmissionFormFields))
}

func (h *Handler) UpdateSubmission(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "UpdateSubmission")
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

	var req types.SubmissionUpdateRequest

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

	item, err := h.Manager.Update(ctx, submission, user, req)
	if err != nil {
		var rejection *submissions.Rejection
		if errors.As(err, &rejection) {
			span.SetStatus(codes.Ok, "update refused")
			return rejectionError(rejection)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update submission")
		return response.InternalServerError
	}

	audit.LogSubmission(
		auditContext(submission.EventID, user),
		audit.EvtSubmissionUpdated,
		item.Submission.ID.String(),
		item.Project.ID.String(),
		item.Submission.Status,
	)

	span.AddEvent("updated submission")
	return response.OK(c, http.StatusOK, item.View(true, nil))
}

func (h *Handler) DeleteSubmission(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "DeleteSubmission")
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

	snapshot, err := h.Manager.Delete(ctx, submission, user)
	if err != nil {
		var rejection *submissions.Rejection
		if errors.As(err, &rejection) {
			span.SetStatus(codes.Ok, "delete refused")
			return rejectionError(rejection)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete submission")
		return response.InternalServerError
	}

	audit.LogSubmissionDeleted(
		auditContext(submission.EventID, user),
		submission.ID.String(),
		submission.ProjectID.String(),
		snapshot.Store,
		snapshot.Object,
	)

	span.AddEvent("deleted submission")
	return response.OK(c, http.StatusOK, nil)
}
