package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClubRecord is one normalized internal document produced by the import
// pipeline. The typed entity lives in Properties and is persisted as JSONB;
// the external system's numeric natural key is promoted to ExternalID so
// reference lookups never have to dig into the document body.
type ClubRecord struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	EntityType     string    `json:"entity_type"`
	ExternalID     *int64    `json:"external_id,omitempty"`
	Properties     any       `json:"properties"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewClubRecord creates a record scoped to the given organization.
func NewClubRecord(organizationID uuid.UUID, entityType string, externalID *int64, properties any) ClubRecord {
	return ClubRecord{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		EntityType:     entityType,
		ExternalID:     externalID,
		Properties:     properties,
		CreatedAt:      time.Now(),
	}
}

// PropertiesJSON marshals the typed document body for JSONB storage.
func (r ClubRecord) PropertiesJSON() ([]byte, error) {
	data, err := json.Marshal(r.Properties)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s properties: %w", r.EntityType, err)
	}
	return data, nil
}
