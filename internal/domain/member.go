package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member is a club member imported from the external platform. Relational
// fields point at internal identifiers, never at external natural keys.
type Member struct {
	ExternalID       int64      `json:"external_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            *string    `json:"email,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	JoinedAt         *time.Time `json:"joined_at,omitempty"`
	FamilyID         *uuid.UUID `json:"family_id,omitempty"`
	MembershipTypeID *uuid.UUID `json:"membership_type_id,omitempty"`
	Status           string     `json:"status"`
}

// Family groups members that share billing and contact details.
type Family struct {
	ExternalID int64   `json:"external_id"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
}

// MembershipType describes a billing tier a member can hold.
type MembershipType struct {
	ExternalID  int64    `json:"external_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	MonthlyFee  *float64 `json:"monthly_fee,omitempty"`
	Active      bool     `json:"active"`
}
