package models

import (
	"github.com/google/uuid"
)

type TeamRole string

const (
	TeamRoleLeader TeamRole = "leader"
	TeamRoleMember TeamRole = "member"
)

// TeamMembership links a project to its roster. Exactly one leader row
// exists per project; members are deduplicated and never include the
// leader.
type TeamMembership struct {
	Role TeamRole `gorm:"type:text"`
	Model
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

func (TeamMembership) TableName() string {
	return "team_memberships"
}

func (m TeamMembership) GetID() uuid.UUID {
	return m.ID
}
