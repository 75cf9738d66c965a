package importer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rpattn/clubsync/internal/repository"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader"
)

// ReferenceKind names one of the per-type reference caches.
type ReferenceKind string

const (
	RefTransaction     ReferenceKind = "transaction"
	RefMember          ReferenceKind = "member"
	RefFamily          ReferenceKind = "family"
	RefMembershipType  ReferenceKind = "membership_type"
	RefEventCategory   ReferenceKind = "event_category"
	RefReservation     ReferenceKind = "reservation"
	RefCourt           ReferenceKind = "court"
	RefReservationType ReferenceKind = "reservation_type"
	RefEvent           ReferenceKind = "event"
	// RefCourtLabel resolves courts by display label instead of numeric id;
	// some extracts only carry the label.
	RefCourtLabel ReferenceKind = "court_label"
)

var referenceEntityTypes = map[ReferenceKind]EntityType{
	RefTransaction:     EntityTransaction,
	RefMember:          EntityMember,
	RefFamily:          EntityFamily,
	RefMembershipType:  EntityMembershipType,
	RefEventCategory:   EntityEventCategory,
	RefReservation:     EntityReservation,
	RefCourt:           EntityCourt,
	RefReservationType: EntityReservationType,
	RefEvent:           EntityEvent,
}

// ReferenceResolver memoizes natural-key lookups for one import run. Each
// kind holds its own dataloader, so repeated keys hit the backing store at
// most once and "not found" answers are cached too. Resolvers are constructed
// per invocation; nothing survives the run.
type ReferenceResolver struct {
	organizationID uuid.UUID
	loaders        map[ReferenceKind]*dataloader.Loader
}

// NewReferenceResolver builds the per-run caches for one organization.
func NewReferenceResolver(records repository.ClubRecordRepository, organizationID uuid.UUID) *ReferenceResolver {
	loaders := make(map[ReferenceKind]*dataloader.Loader, len(referenceEntityTypes)+1)
	for kind, entityType := range referenceEntityTypes {
		loaders[kind] = newExternalIDLoader(records, organizationID, string(entityType))
	}
	loaders[RefCourtLabel] = newCourtLabelLoader(records, organizationID)

	return &ReferenceResolver{
		organizationID: organizationID,
		loaders:        loaders,
	}
}

// OrganizationID returns the tenant scope all lookups run under.
func (r *ReferenceResolver) OrganizationID() uuid.UUID {
	return r.organizationID
}

// ResolveID maps an external numeric natural key to an internal id. A nil
// key resolves to nil without any lookup; an unknown key resolves to nil and
// the miss is cached.
func (r *ReferenceResolver) ResolveID(ctx context.Context, kind ReferenceKind, key *int64) (*uuid.UUID, error) {
	if key == nil {
		return nil, nil
	}
	loader, ok := r.loaders[kind]
	if !ok {
		return nil, fmt.Errorf("no reference loader for kind %q", kind)
	}
	return await(loader.Load(ctx, dataloader.StringKey(strconv.FormatInt(*key, 10))))
}

// ResolveCourtLabel maps a court display label to an internal id.
func (r *ReferenceResolver) ResolveCourtLabel(ctx context.Context, label *string) (*uuid.UUID, error) {
	if label == nil {
		return nil, nil
	}
	return await(r.loaders[RefCourtLabel].Load(ctx, dataloader.StringKey(*label)))
}

func await(thunk dataloader.Thunk) (*uuid.UUID, error) {
	value, err := thunk()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("unexpected reference value %T", value)
	}
	return &id, nil
}

func newExternalIDLoader(records repository.ClubRecordRepository, organizationID uuid.UUID, entityType string) *dataloader.Loader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		externalIDs := make([]int64, len(keys))
		for i, key := range keys {
			id, err := strconv.ParseInt(key.String(), 10, 64)
			if err != nil {
				return failAll(keys, fmt.Errorf("invalid %s reference key %q: %w", entityType, key.String(), err))
			}
			externalIDs[i] = id
		}

		resolved, err := records.ResolveExternalIDs(ctx, organizationID, entityType, externalIDs)
		if err != nil {
			return failAll(keys, err)
		}

		results := make([]*dataloader.Result, len(keys))
		for i, externalID := range externalIDs {
			if id, ok := resolved[externalID]; ok {
				results[i] = &dataloader.Result{Data: id}
			} else {
				results[i] = &dataloader.Result{Data: nil}
			}
		}
		return results
	}
	return dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(500*time.Microsecond))
}

func newCourtLabelLoader(records repository.ClubRecordRepository, organizationID uuid.UUID) *dataloader.Loader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		labels := make([]string, len(keys))
		for i, key := range keys {
			labels[i] = key.String()
		}

		resolved, err := records.ResolveCourtLabels(ctx, organizationID, labels)
		if err != nil {
			return failAll(keys, err)
		}

		results := make([]*dataloader.Result, len(keys))
		for i, label := range labels {
			if id, ok := resolved[label]; ok {
				results[i] = &dataloader.Result{Data: id}
			} else {
				results[i] = &dataloader.Result{Data: nil}
			}
		}
		return results
	}
	return dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(500*time.Microsecond))
}

func failAll(keys dataloader.Keys, err error) []*dataloader.Result {
	results := make([]*dataloader.Result, len(keys))
	for i := range results {
		results[i] = &dataloader.Result{Error: err}
	}
	return results
}
