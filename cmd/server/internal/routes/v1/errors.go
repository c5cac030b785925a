package v1

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/cmd/server/internal/response"
	"github.com/hackwave-community/platform-api/cmd/server/internal/submissions"
	"github.com/hackwave-community/platform-api/internal/audit"
	"github.com/hackwave-community/platform-api/internal/types"
)

// rejectionError maps a business refusal onto the wire envelope.
func rejectionError(rej *submissions.Rejection) *echo.HTTPError {
	switch rej.Code {
	case types.CodeNotFound:
		return response.NotFoundError
	case types.CodePermission:
		return echo.NewHTTPError(
			http.StatusForbidden,
			types.Fail(types.CodePermission, rej.Message),
		)
	case types.CodeConflict:
		return echo.NewHTTPError(
			http.StatusConflict,
			types.Fail(types.CodeConflict, rej.Message),
		)
	default:
		if rej.Fields != nil {
			return echo.NewHTTPError(http.StatusBadRequest, types.FieldFail(rej.Fields))
		}
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.Fail(types.CodeValidation, rej.Message),
		)
	}
}

var voteStatus = map[types.VoteCode]int{
	types.VoteCodeOwnProject:           http.StatusBadRequest,
	types.VoteCodeVotingClosed:         http.StatusBadRequest,
	types.VoteCodeVotingEnded:          http.StatusBadRequest,
	types.VoteCodePublicVotingDisabled: http.StatusForbidden,
	types.VoteCodeNotEligible:          http.StatusForbidden,
	types.VoteCodeAlreadyVoted:         http.StatusConflict,
	types.VoteCodeNoVotesLeft:          http.StatusBadRequest,
	types.VoteCodeNotVoted:             http.StatusBadRequest,
}

var voteMessage = map[types.VoteCode]string{
	types.VoteCodeOwnProject:           "cannot vote for your own project",
	types.VoteCodeVotingClosed:         "voting is closed",
	types.VoteCodeVotingEnded:          "voting has ended",
	types.VoteCodePublicVotingDisabled: "public voting is disabled for this event",
	types.VoteCodeNotEligible:          "not eligible to vote in this event",
	types.VoteCodeAlreadyVoted:         "already voted for this project",
	types.VoteCodeNoVotesLeft:          "no votes left",
	types.VoteCodeNotVoted:             "no vote to revoke",
}

// voteRefusal renders an eligibility code as the envelope with its
// machine readable error field.
func voteRefusal(code types.VoteCode) *echo.HTTPError {
	status, ok := voteStatus[code]
	if !ok {
		status = http.StatusBadRequest
	}

	return echo.NewHTTPError(status, types.Response{
		Success: false,
		Error:   string(code),
		Message: voteMessage[code],
	})
}

func auditContext(eventID uuid.UUID, actor *models.User) audit.Context {
	eid := eventID.String()
	ctx := audit.Context{EventID: &eid}
	if actor != nil {
		aid := actor.ID.String()
		ctx.ActorID = &aid
	}

	return ctx
}

// privilegedFor implements the visibility privilege rule: project
// owner, team member, original submitter, or an administrator.
func privilegedFor(user *models.User, item *submissions.Item) bool {
	if user == nil {
		return false
	}
	if user.Permissions.Admin || user.Permissions.Organizer {
		return true
	}
	if user.ID == item.Project.OwnerUserID || user.ID == item.Submission.SubmitterID {
		return true
	}
	for _, member := range item.Team {
		if member.User.ID == user.ID {
			return true
		}
	}

	return false
}
