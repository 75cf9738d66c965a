package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/rpattn/clubsync/internal/domain"
	"github.com/rpattn/clubsync/internal/repository"
	"github.com/rpattn/clubsync/pkg/apierror"

	"github.com/google/uuid"
)

// insertBatchSize is the number of transformed records per bulk insert.
const insertBatchSize = 1000

// Service orchestrates one import run: authorize, validate, transform,
// batch-insert, audit.
type Service struct {
	users   repository.UserRepository
	orgs    repository.OrganizationRepository
	records repository.ClubRecordRepository
	history repository.ImportHistoryRepository
}

// NewService creates a new import service.
func NewService(
	users repository.UserRepository,
	orgs repository.OrganizationRepository,
	records repository.ClubRecordRepository,
	history repository.ImportHistoryRepository,
) *Service {
	return &Service{
		users:   users,
		orgs:    orgs,
		records: records,
		history: history,
	}
}

// Request describes one uploaded file.
type Request struct {
	UploaderID uuid.UUID
	FileName   string
	Format     Format
	EntityType EntityType
	Payload    []byte
}

// Result reports a completed import back to the caller.
type Result struct {
	FileName         string `json:"filename"`
	RecordsProcessed int    `json:"recordsProcessed"`
}

// Process runs the pipeline for one uploaded file. Every terminal outcome
// after authorization writes exactly one import history row; authorization
// failures deliberately leave no audit trail.
func (s *Service) Process(ctx context.Context, req Request) (Result, error) {
	uploader, organizationID, err := s.authorize(ctx, req.UploaderID)
	if err != nil {
		return Result{}, err
	}

	// Validation fails fast, before the audit boundary: a rejected file
	// leaves no history row. Errors past this point are always audited.
	source, err := Validate(req.Payload, req.FileName, req.Format, req.EntityType)
	if err != nil {
		return Result{}, err
	}

	sum := sha256.Sum256(req.Payload)
	checksum := hex.EncodeToString(sum[:])

	count, runErr := s.run(ctx, req, organizationID, source)

	entry := domain.ImportHistory{
		FileName:       req.FileName,
		CollectionName: string(req.EntityType),
		Checksum:       checksum,
		UploaderID:     uploader.ID,
		OrganizationID: organizationID,
	}

	if runErr != nil {
		message := runErr.Error()
		entry.Status = domain.ImportStatusFailed
		entry.ErrorMessage = &message
		if recordErr := s.history.Record(ctx, entry); recordErr != nil {
			log.Printf("[IMPORT] failed to record failed import of %s: %v", req.FileName, recordErr)
		}

		var apiErr *apierror.Error
		if errors.As(runErr, &apiErr) {
			return Result{}, apiErr
		}
		return Result{}, apierror.BadRequest(fmt.Sprintf("import failed: %v", runErr))
	}

	entry.Status = domain.ImportStatusSuccess
	entry.RecordCount = count
	if recordErr := s.history.Record(ctx, entry); recordErr != nil {
		// The rows are committed; losing the audit row is logged, not fatal.
		log.Printf("[IMPORT] failed to record import history for %s: %v", req.FileName, recordErr)
	}

	return Result{FileName: req.FileName, RecordsProcessed: count}, nil
}

// authorize resolves the uploader and confirms an administrator role in
// their current organization.
func (s *Service) authorize(ctx context.Context, uploaderID uuid.UUID) (domain.User, uuid.UUID, error) {
	uploader, err := s.users.GetByID(ctx, uploaderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, uuid.Nil, apierror.BadRequest("uploader not found")
		}
		return domain.User{}, uuid.Nil, fmt.Errorf("failed to resolve uploader: %w", err)
	}
	if uploader.CurrentOrganizationID == nil {
		return domain.User{}, uuid.Nil, apierror.BadRequest("uploader has no active organization")
	}
	organizationID := *uploader.CurrentOrganizationID

	role, err := s.users.GetRole(ctx, uploader.ID, organizationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, uuid.Nil, apierror.Forbidden("uploader is not a member of the organization")
		}
		return domain.User{}, uuid.Nil, fmt.Errorf("failed to resolve organization role: %w", err)
	}
	if role != domain.RoleAdmin {
		return domain.User{}, uuid.Nil, apierror.Forbidden("administrator role required to import data")
	}

	return uploader, organizationID, nil
}

// run streams records through transformation and batch insertion.
// Transformed records are flushed every insertBatchSize so a large
// CSV never materializes fully; a failing batch aborts the run while prior
// batches remain committed.
func (s *Service) run(ctx context.Context, req Request, organizationID uuid.UUID, source RecordSource) (int, error) {
	transformer, ok := TransformerFor(req.EntityType)
	if !ok {
		return 0, apierror.BadRequest(fmt.Sprintf("no transformer for entity type %q", req.EntityType))
	}

	refs := NewReferenceResolver(s.records, organizationID)

	batch := make([]domain.ClubRecord, 0, insertBatchSize)
	inserted := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, insertErr := s.records.InsertBatch(ctx, batch)
		inserted += n
		batch = batch[:0]
		return insertErr
	}

	for {
		rec, nextErr := source.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return inserted, nextErr
		}

		record, transformErr := transformer.Transform(ctx, rec, organizationID, refs)
		if transformErr != nil {
			return inserted, transformErr
		}
		if record == nil {
			// Transformer skip, not an error.
			continue
		}

		batch = append(batch, *record)
		if len(batch) == insertBatchSize {
			if flushErr := flush(); flushErr != nil {
				return inserted, flushErr
			}
		}
	}

	if flushErr := flush(); flushErr != nil {
		return inserted, flushErr
	}

	return inserted, nil
}

// History lists the caller's organization's import audit trail. Any
// organization member may read it.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ImportHistory, error) {
	organizationID, err := s.memberOrganization(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.history.List(ctx, organizationID, limit, offset)
}

// Summary reports an organization's imported data volume per entity type.
type Summary struct {
	Organization domain.Organization `json:"organization"`
	RecordCounts map[string]int64    `json:"recordCounts"`
	TotalRecords int64               `json:"totalRecords"`
}

// Summary resolves the caller's organization and counts its imported records
// for every catalog type. Any organization member may read it.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (Summary, error) {
	organizationID, err := s.memberOrganization(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	org, err := s.orgs.GetByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Summary{}, apierror.BadRequest("organization not found")
		}
		return Summary{}, fmt.Errorf("failed to resolve organization: %w", err)
	}

	summary := Summary{
		Organization: org,
		RecordCounts: make(map[string]int64, len(catalog)),
	}
	for _, entityType := range EntityTypes() {
		count, countErr := s.records.CountByType(ctx, organizationID, string(entityType))
		if countErr != nil {
			return Summary{}, fmt.Errorf("failed to count %s records: %w", entityType, countErr)
		}
		summary.RecordCounts[Slug(entityType)] = count
		summary.TotalRecords += count
	}

	return summary, nil
}

// memberOrganization resolves the caller's current organization, requiring
// membership of any role.
func (s *Service) memberOrganization(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, apierror.BadRequest("user not found")
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user.CurrentOrganizationID == nil {
		return uuid.Nil, apierror.BadRequest("user has no active organization")
	}
	organizationID := *user.CurrentOrganizationID

	if _, err := s.users.GetRole(ctx, user.ID, organizationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, apierror.Forbidden("user is not a member of the organization")
		}
		return uuid.Nil, fmt.Errorf("failed to resolve organization role: %w", err)
	}

	return organizationID, nil
}
