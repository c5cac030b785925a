package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hackwave-community/platform-api/internal/logger"
	"github.com/hackwave-community/platform-api/internal/types"
)

// Context carries the identifiers shared by every audit line emitted
// while serving one request.
type Context struct {
	EventID *string
	ActorID *string
}

func baseMessage(c Context, evt EventType, disp Disposition) Message {
	return Message{
		EventID:       c.EventID,
		ActorID:       c.ActorID,
		LogContext:    logContext,
		SchemaVersion: schemaVersion,
		Disposition:   disp,
		Type:          evt,
		Timestamp:     types.UnixMilli(time.Now().UTC().UnixMilli()),
	}
}

func emit(event any, evtType EventType) {
	evtStr, err := json.Marshal(event)
	if err != nil {
		logger.Logger.Error("could not serialize audit event", "type", evtType)
		return
	}

	fmt.Println(string(evtStr))
}

func LogSubmission(
	c Context,
	evt EventType,
	submissionID string,
	projectID string,
	status types.SubmissionStatus,
) {
	record := SubmissionRecord{}
	record.Message = baseMessage(c, evt, DispositionNeutral)
	record.Event.SubmissionID = submissionID
	record.Event.ProjectID = projectID
	record.Event.Status = status

	emit(record, evt)
}

func LogSubmissionDeleted(
	c Context,
	submissionID string,
	projectID string,
	snapshotStore *string,
	snapshotObject *string,
) {
	record := SubmissionRecord{}
	record.Message = baseMessage(c, EvtSubmissionDeleted, DispositionNeutral)
	record.Event.SubmissionID = submissionID
	record.Event.ProjectID = projectID
	record.Event.SnapshotStore = snapshotStore
	record.Event.SnapshotObject = snapshotObject

	emit(record, EvtSubmissionDeleted)
}

func LogVote(
	c Context,
	evt EventType,
	submissionID string,
	projectID string,
	voteCount int,
) {
	record := VoteRecord{}
	record.Message = baseMessage(c, evt, DispositionNeutral)
	record.Event.SubmissionID = submissionID
	record.Event.ProjectID = projectID
	record.Event.VoteCount = voteCount

	emit(record, evt)
}

func LogVoteAdjusted(
	c Context,
	submissionID string,
	projectID string,
	voteCount int,
	adjustment *int64,
) {
	record := VoteRecord{}
	record.Message = baseMessage(c, EvtVoteAdjusted, DispositionNeutral)
	record.Event.SubmissionID = submissionID
	record.Event.ProjectID = projectID
	record.Event.VoteCount = voteCount
	record.Event.Adjustment = adjustment

	emit(record, EvtVoteAdjusted)
}
