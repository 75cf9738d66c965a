package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant club. Every imported record carries its id as the
// tenant partition key.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
