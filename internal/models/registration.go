package models

import (
	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusWaitlist  RegistrationStatus = "waitlist"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// EventRegistration backs the db mode of the registration service. One
// row per (event, user).
type EventRegistration struct {
	Status RegistrationStatus `gorm:"type:text"`
	Model
	EventID uuid.UUID
	UserID  uuid.UUID
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}

func (r EventRegistration) GetID() uuid.UUID {
	return r.ID
}

func (r EventRegistration) Active() bool {
	return r.Status == RegistrationStatusConfirmed
}
