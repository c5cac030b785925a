package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/hackwave-community/platform-api/internal/types"
)

// Submission is one row per (event, project) pair; the pair is unique
// at the store level. Title and description are denormalized snapshots
// taken when the team submits.
type Submission struct {
	Title       string
	Description string
	Status      types.SubmissionStatus `gorm:"type:text"`
	Model
	EventID     uuid.UUID
	ProjectID   uuid.UUID
	SubmitterID uuid.UUID
	ReviewNote  datatypes.Null[string]
	JudgeScore  datatypes.Null[int]
}

func (Submission) TableName() string {
	return "submissions"
}

func (s Submission) GetID() uuid.UUID {
	return s.ID
}
