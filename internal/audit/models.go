package audit

import (
	"github.com/hackwave-community/platform-api/internal/types"
)

var schemaVersion = "0.1.0"
var logContext = "audit"

type Disposition string

const (
	DispositionNeutral Disposition = "neutral"
	DispositionGood    Disposition = "good"
	DispositionBad     Disposition = "bad"
)

type EventType string

const (
	EvtSubmissionCreated  EventType = "submission_created"
	EvtSubmissionUpdated  EventType = "submission_updated"
	EvtSubmissionDeleted  EventType = "submission_deleted"
	EvtSubmissionReviewed EventType = "submission_reviewed"
	EvtVoteCast           EventType = "vote_cast"
	EvtVoteRevoked        EventType = "vote_revoked"
	EvtVoteAdjusted       EventType = "vote_adjusted"
)

type Message struct {
	EventID       *string     `json:"event_id"`
	ActorID       *string     `json:"actor_id"`
	LogContext    string      `json:"log_context" validate:"required"`
	SchemaVersion string      `json:"version"     validate:"required"`
	Disposition   Disposition `json:"disposition" validate:"required"`
	Type          EventType   `json:"event_type"  validate:"required"`

	Timestamp types.UnixMilli `json:"timestamp" validate:"required"`
}

type SubmissionEvent struct {
	SubmissionID string                 `json:"submission_id" validate:"required"`
	ProjectID    string                 `json:"project_id"    validate:"required"`
	Status       types.SubmissionStatus `json:"status"`
	// Object name of the archived snapshot, set for deletes.
	SnapshotObject *string `json:"snapshot_object,omitempty"`
	SnapshotStore  *string `json:"snapshot_store,omitempty"`
}

type SubmissionRecord struct {
	Event SubmissionEvent `json:"event" validate:"required"`
	Message
}

type VoteEvent struct {
	SubmissionID string `json:"submission_id" validate:"required"`
	ProjectID    string `json:"project_id"    validate:"required"`
	VoteCount    int    `json:"vote_count"`
	// Stored manual adjustment after the operation, nil when cleared.
	Adjustment *int64 `json:"adjustment,omitempty"`
}

type VoteRecord struct {
	Event VoteEvent `json:"event" validate:"required"`
	Message
}
