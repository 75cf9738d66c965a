package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type importHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewImportHistoryRepository wires a repository backed by pgxpool.
func NewImportHistoryRepository(pool *pgxpool.Pool) ImportHistoryRepository {
	return &importHistoryRepository{pool: pool}
}

func (r *importHistoryRepository) Record(ctx context.Context, entry domain.ImportHistory) error {
	if r.pool == nil {
		return fmt.Errorf("import history repository not initialized")
	}

	var errorMessage any
	if entry.ErrorMessage != nil {
		errorMessage = *entry.ErrorMessage
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO import_history
		 (file_name, collection_name, checksum, record_count, status, error_message, uploader_id, organization_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.FileName,
		entry.CollectionName,
		entry.Checksum,
		entry.RecordCount,
		entry.Status,
		errorMessage,
		entry.UploaderID,
		entry.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to record import history: %w", err)
	}

	return nil
}

func (r *importHistoryRepository) List(ctx context.Context, organizationID uuid.UUID, limit int, offset int) ([]domain.ImportHistory, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("import history repository not initialized")
	}

	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, file_name, collection_name, checksum, record_count, status, error_message, uploader_id, organization_id, created_at
		 FROM import_history
		 WHERE organization_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		organizationID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list import history: %w", err)
	}
	defer rows.Close()

	entries := []domain.ImportHistory{}
	for rows.Next() {
		var (
			entry        domain.ImportHistory
			errorMessage pgtype.Text
			createdAt    pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.FileName,
			&entry.CollectionName,
			&entry.Checksum,
			&entry.RecordCount,
			&entry.Status,
			&errorMessage,
			&entry.UploaderID,
			&entry.OrganizationID,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan import history: %w", scanErr)
		}

		if errorMessage.Valid {
			value := errorMessage.String
			entry.ErrorMessage = &value
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate import history: %w", rowsErr)
	}

	return entries, nil
}
