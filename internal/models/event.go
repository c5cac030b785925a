package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/hackwave-community/platform-api/internal/types"
)

// Event is a hackathon or community contest. Events are created and mutated by organizers
// and never deleted by this service.
type Event struct {
	Title     string
	EventType string `gorm:"type:text"`
	Model
	CreatedBy            uuid.UUID
	SubmissionFormFields datatypes.JSONSlice[types.SubmissionFormField]
	VotingConfig         datatypes.JSONType[*types.EventVotingConfig]
	SubmissionDeadline   datatypes.Null[time.Time]
	EndAt                datatypes.Null[time.Time]
	Enabled              bool
	SubmissionsOpen      bool
	VotingOpen           bool
}

func (Event) TableName() string {
	return "events"
}

func (e Event) GetID() uuid.UUID {
	return e.ID
}

// SubmissionWindowOpen reports whether new submissions are accepted at
// `now`.
func (e Event) SubmissionWindowOpen(now time.Time) bool {
	if !e.SubmissionsOpen {
		return false
	}
	if e.SubmissionDeadline.Valid && now.After(e.SubmissionDeadline.V) {
		return false
	}
	return true
}

// VotingEnded reports whether the event carries an end time that has
// passed at `now`.
func (e Event) VotingEnded(now time.Time) bool {
	return e.EndAt.Valid && now.After(e.EndAt.V)
}
