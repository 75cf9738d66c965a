package importer

import (
	"context"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
)

// Transformer converts one external record into at most one internal
// document. Returning (nil, nil) skips the record; the orchestrator filters
// skips out of the batch without treating them as errors. Transformers never
// write to the store; their only database traffic is reference resolution.
type Transformer interface {
	Transform(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error)
}

type transformFunc func(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error)

func (f transformFunc) Transform(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	return f(ctx, rec, organizationID, refs)
}

var transformers = map[EntityType]Transformer{
	EntityFamily:             transformFunc(transformFamily),
	EntityMember:             transformFunc(transformMember),
	EntityMembershipType:     transformFunc(transformMembershipType),
	EntityCourt:              transformFunc(transformCourt),
	EntityRevenueRecognition: transformFunc(transformRevenueRecognition),
	EntityEvent:              transformFunc(transformEvent),
	EntityReservationType:    transformFunc(transformReservationType),
	EntityEventCategory:      transformFunc(transformEventCategory),
	EntityReservation:        transformFunc(transformReservation),
	EntityPlayerReport:       transformFunc(transformPlayerReport),
	EntitySalesSummary:       transformFunc(transformSalesSummary),
	EntityEventRegistration:  transformFunc(transformEventRegistration),
	EntityTransaction:        transformFunc(transformTransaction),
	EntityReservationPlayer:  transformFunc(transformReservationPlayer),
}

// TransformerFor selects the transformer for an entity type.
func TransformerFor(entityType EntityType) (Transformer, bool) {
	t, ok := transformers[entityType]
	return t, ok
}
