package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Permissions struct {
	Admin     bool `json:"admin"`
	Organizer bool `json:"organizer"`
}

// User is a community member. Token is the argon2id hash of the user's
// API token; identity issuance itself lives outside this service.
type User struct {
	Handle      string
	DisplayName string
	AvatarURL   string
	Token       string // argon2id hash
	Email       string
	Phone       string
	MessagingID string
	Region      string
	RoleText    string
	CurrentWork string
	Model
	Permissions Permissions `gorm:"type:jsonb;serializer:json"`
	Active      datatypes.Null[bool]
}

func (User) TableName() string {
	return "users"
}

func (u User) GetID() uuid.UUID {
	return u.ID
}
