package repository

import (
	"context"
	"errors"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ClubRecordRepository persists and resolves imported club records.
type ClubRecordRepository interface {
	// InsertBatch inserts all records atomically, in order. A failure aborts
	// the batch and reports the offending record position.
	InsertBatch(ctx context.Context, records []domain.ClubRecord) (int, error)
	// ResolveExternalIDs maps external natural keys of one entity type to
	// internal ids within an organization. Missing keys are absent from the
	// result, not an error.
	ResolveExternalIDs(ctx context.Context, organizationID uuid.UUID, entityType string, externalIDs []int64) (map[int64]uuid.UUID, error)
	// ResolveCourtLabels maps court display labels to internal ids.
	ResolveCourtLabels(ctx context.Context, organizationID uuid.UUID, labels []string) (map[string]uuid.UUID, error)
	// CountByType counts an organization's imported records of one type.
	CountByType(ctx context.Context, organizationID uuid.UUID, entityType string) (int64, error)
}

// ImportHistoryRepository stores the append-only import audit ledger.
type ImportHistoryRepository interface {
	Record(ctx context.Context, entry domain.ImportHistory) error
	List(ctx context.Context, organizationID uuid.UUID, limit int, offset int) ([]domain.ImportHistory, error)
}

// UserRepository reads back-office users and their organization roles.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetRole(ctx context.Context, userID uuid.UUID, organizationID uuid.UUID) (string, error)
}

// OrganizationRepository reads tenant organizations. Provisioning happens in
// the surrounding platform; this subsystem only resolves them.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error)
}
