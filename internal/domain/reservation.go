package domain

import (
	"time"

	"github.com/google/uuid"
)

// Default status applied when the external record carries none.
const ReservationStatusConfirmed = "confirmed"

// Court is a bookable playing surface.
type Court struct {
	ExternalID int64  `json:"external_id"`
	Label      string `json:"label"`
	TypeName   string `json:"type_name"`
	OrderIndex int    `json:"order_index"`
}

// Reservation is a booked time slot on a court.
type Reservation struct {
	ExternalID        int64      `json:"external_id"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	CourtID           *uuid.UUID `json:"court_id,omitempty"`
	ReservationTypeID *uuid.UUID `json:"reservation_type_id,omitempty"`
	BookedByMemberID  *uuid.UUID `json:"booked_by_member_id,omitempty"`
	Status            string     `json:"status"`
	Note              *string    `json:"note,omitempty"`
}

// ReservationType categorizes reservations (open play, lesson, league, ...).
type ReservationType struct {
	ExternalID int64   `json:"external_id"`
	Name       string  `json:"name"`
	Color      *string `json:"color,omitempty"`
	Bookable   bool    `json:"bookable"`
}

// ReservationPlayer links a member onto a reservation.
type ReservationPlayer struct {
	ExternalID    int64      `json:"external_id"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	MemberID      *uuid.UUID `json:"member_id,omitempty"`
	Paid          bool       `json:"paid"`
}

// PlayerReport is a per-member playing activity line used for utilization
// reporting.
type PlayerReport struct {
	ExternalID      int64      `json:"external_id"`
	MemberID        *uuid.UUID `json:"member_id,omitempty"`
	ReservationID   *uuid.UUID `json:"reservation_id,omitempty"`
	CourtID         *uuid.UUID `json:"court_id,omitempty"`
	PlayedAt        *time.Time `json:"played_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	FeeAmount       *float64   `json:"fee_amount,omitempty"`
}
