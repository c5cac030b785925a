package models

import (
	"github.com/google/uuid"
)

// Vote is one ledger row. The store enforces uniqueness over
// (event_id, project_id, voter_id); that constraint is the
// authoritative guard against concurrent duplicate casts.
type Vote struct {
	Model
	EventID   uuid.UUID
	ProjectID uuid.UUID
	VoterID   uuid.UUID
}

func (Vote) TableName() string {
	return "votes"
}

func (v Vote) GetID() uuid.UUID {
	return v.ID
}
