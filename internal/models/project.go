package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is the deliverable behind a submission. It exists only while
// a submission references it; deleting the submission deletes the
// project in the same transaction.
type Project struct {
	Title         string
	Tagline       string
	Description   string
	DemoURL       string
	CoverImageURL string
	Model
	OwnerUserID uuid.UUID
	// Validated answers for the event's dynamic submission form.
	Fields datatypes.JSONMap
	// Administrator applied delta on top of the ledger vote count.
	// NULL means no adjustment; an exact zero is never stored.
	VoteAdjustment      datatypes.Null[int64]
	CommunityAuthorized bool
}

func (Project) TableName() string {
	return "projects"
}

func (p Project) GetID() uuid.UUID {
	return p.ID
}

type ProjectAttachment struct {
	Name        string
	URL         string
	ContentType string
	Model
	ProjectID uuid.UUID
	Order     int `gorm:"column:display_order"`
}

func (ProjectAttachment) TableName() string {
	return "project_attachments"
}

func (a ProjectAttachment) GetID() uuid.UUID {
	return a.ID
}
