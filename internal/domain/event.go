package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a scheduled club event backed by a reservation.
type Event struct {
	ExternalID      int64      `json:"external_id"`
	Name            string     `json:"name"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	ReservationID   *uuid.UUID `json:"reservation_id,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Description     *string    `json:"description,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty"`
	Canceled        bool       `json:"canceled"`
}

// EventCategory groups events for display and reporting.
type EventCategory struct {
	ExternalID int64   `json:"external_id"`
	Name       string  `json:"name"`
	Color      *string `json:"color,omitempty"`
}

// EventRegistration records a member signed up for one event date.
type EventRegistration struct {
	ExternalEventDateID int64      `json:"external_event_date_id"`
	EventID             *uuid.UUID `json:"event_id,omitempty"`
	MemberID            *uuid.UUID `json:"member_id,omitempty"`
	RegisteredAt        *time.Time `json:"registered_at,omitempty"`
	Attended            bool       `json:"attended"`
}
