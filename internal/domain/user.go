package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization member roles.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleMember = "member"
)

// User represents an authenticated back-office user. The authentication
// system itself is external; this subsystem only reads the resolved identity
// and the user's current organization context.
type User struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	CurrentOrganizationID *uuid.UUID `json:"current_organization_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// OrganizationMembership links a user to an organization with a role.
type OrganizationMembership struct {
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
