package domain

import (
	"time"

	"github.com/google/uuid"
)

// Import outcomes recorded in the history ledger. StatusDuplicate is reserved
// for a checksum-based dedup gate; the pipeline does not currently produce it.
const (
	ImportStatusSuccess   = "success"
	ImportStatusFailed    = "failed"
	ImportStatusDuplicate = "duplicate"
)

// ImportHistory is one append-only audit row per import attempt. Every field
// is denormalized at write time so historical rows can be read without joins.
type ImportHistory struct {
	ID             uuid.UUID `json:"id"`
	FileName       string    `json:"file_name"`
	CollectionName string    `json:"collection_name"`
	Checksum       string    `json:"checksum"`
	RecordCount    int       `json:"record_count"`
	Status         string    `json:"status"`
	ErrorMessage   *string   `json:"error_message,omitempty"`
	UploaderID     uuid.UUID `json:"uploader_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}
