package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// clubRecordRepository implements ClubRecordRepository backed by pgxpool.
type clubRecordRepository struct {
	pool *pgxpool.Pool
}

// NewClubRecordRepository creates a new club record repository.
func NewClubRecordRepository(pool *pgxpool.Pool) ClubRecordRepository {
	return &clubRecordRepository{pool: pool}
}

// InsertBatch pipelines the inserts inside one transaction. The first failing
// insert aborts the remainder of the batch; earlier batches committed by
// prior calls stay committed.
func (r *clubRecordRepository) InsertBatch(ctx context.Context, records []domain.ClubRecord) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("club record repository not initialized")
	}
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, record := range records {
		properties, err := record.PropertiesJSON()
		if err != nil {
			return 0, err
		}

		var externalID any
		if record.ExternalID != nil {
			externalID = *record.ExternalID
		}

		batch.Queue(
			`INSERT INTO club_records (id, organization_id, entity_type, external_id, properties)
			 VALUES ($1, $2, $3, $4, $5)`,
			record.ID,
			record.OrganizationID,
			record.EntityType,
			externalID,
			properties,
		)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin batch transaction: %w", err)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range records {
		if _, execErr := results.Exec(); execErr != nil {
			_ = results.Close()
			_ = tx.Rollback(ctx)
			return 0, fmt.Errorf("batch insert failed at record %d: %w", i+1, execErr)
		}
	}
	if err := results.Close(); err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("failed to close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}

	return len(records), nil
}

func (r *clubRecordRepository) ResolveExternalIDs(ctx context.Context, organizationID uuid.UUID, entityType string, externalIDs []int64) (map[int64]uuid.UUID, error) {
	resolved := make(map[int64]uuid.UUID, len(externalIDs))
	if len(externalIDs) == 0 {
		return resolved, nil
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT external_id, id
		 FROM club_records
		 WHERE organization_id = $1
		   AND entity_type = $2
		   AND external_id = ANY($3)
		 ORDER BY created_at`,
		organizationID,
		entityType,
		externalIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s references: %w", entityType, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			externalID int64
			id         uuid.UUID
		)
		if scanErr := rows.Scan(&externalID, &id); scanErr != nil {
			return nil, fmt.Errorf("failed to scan %s reference: %w", entityType, scanErr)
		}
		// Re-imports can create duplicate natural keys; keep the oldest row.
		if _, ok := resolved[externalID]; !ok {
			resolved[externalID] = id
		}
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate %s references: %w", entityType, rowsErr)
	}

	return resolved, nil
}

func (r *clubRecordRepository) ResolveCourtLabels(ctx context.Context, organizationID uuid.UUID, labels []string) (map[string]uuid.UUID, error) {
	resolved := make(map[string]uuid.UUID, len(labels))
	if len(labels) == 0 {
		return resolved, nil
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT properties->>'label', id
		 FROM club_records
		 WHERE organization_id = $1
		   AND entity_type = 'court'
		   AND properties->>'label' = ANY($2)
		 ORDER BY created_at`,
		organizationID,
		labels,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve court labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			label string
			id    uuid.UUID
		)
		if scanErr := rows.Scan(&label, &id); scanErr != nil {
			return nil, fmt.Errorf("failed to scan court label: %w", scanErr)
		}
		if _, ok := resolved[label]; !ok {
			resolved[label] = id
		}
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate court labels: %w", rowsErr)
	}

	return resolved, nil
}

func (r *clubRecordRepository) CountByType(ctx context.Context, organizationID uuid.UUID, entityType string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM club_records WHERE organization_id = $1 AND entity_type = $2`,
		organizationID,
		entityType,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", entityType, err)
	}
	return count, nil
}
