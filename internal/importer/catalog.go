package importer

import "sort"

// EntityType tags one of the importable entity types. The catalog is fixed:
// uploads declaring any other type are rejected before parsing.
type EntityType string

const (
	EntityFamily             EntityType = "family"
	EntityMember             EntityType = "member"
	EntityMembershipType     EntityType = "membership_type"
	EntityCourt              EntityType = "court"
	EntityRevenueRecognition EntityType = "revenue_recognition"
	EntityEvent              EntityType = "event"
	EntityReservationType    EntityType = "reservation_type"
	EntityEventCategory      EntityType = "event_category"
	EntityReservation        EntityType = "reservation"
	EntityPlayerReport       EntityType = "player_report"
	EntitySalesSummary       EntityType = "sales_summary"
	EntityEventRegistration  EntityType = "event_registration"
	EntityTransaction        EntityType = "transaction"
	EntityReservationPlayer  EntityType = "reservation_player"
)

type entityDescriptor struct {
	slug string
	// requiredFields lists the external natural-key field names checked on
	// the first parsed record. An empty list means any well-formed record
	// passes.
	requiredFields []string
}

var catalog = map[EntityType]entityDescriptor{
	EntityFamily:             {slug: "families", requiredFields: []string{"FamilyId", "FamilyName"}},
	EntityMember:             {slug: "members", requiredFields: []string{"OrganizationMemberId", "FirstName", "LastName"}},
	EntityMembershipType:     {slug: "membership-types", requiredFields: []string{"Id", "Name"}},
	EntityCourt:              {slug: "courts", requiredFields: []string{"Id"}},
	EntityRevenueRecognition: {slug: "revenue-recognitions", requiredFields: []string{"FeeId", "OrganizationMemberId", "RelationId"}},
	EntityEvent:              {slug: "events", requiredFields: []string{"EventId", "EventName", "ReservationId"}},
	EntityReservationType:    {slug: "reservation-types", requiredFields: []string{"Id", "Name"}},
	EntityEventCategory:      {slug: "event-categories", requiredFields: []string{"Id", "Name"}},
	EntityReservation:        {slug: "reservations", requiredFields: []string{"Id", "StartTime", "EndTime"}},
	EntityPlayerReport:       {slug: "player-reports", requiredFields: []string{"ReservationMemberId", "OrganizationMemberId"}},
	EntitySalesSummary:       {slug: "sales-summaries", requiredFields: []string{"TransactionId", "TransactionDate"}},
	EntityEventRegistration:  {slug: "event-registrations", requiredFields: []string{"EventDateId", "EventId"}},
	EntityTransaction:        {slug: "transactions", requiredFields: []string{"TransactionId", "TransactionDate"}},
	EntityReservationPlayer:  {slug: "reservation-players"},
}

var slugIndex = func() map[string]EntityType {
	index := make(map[string]EntityType, len(catalog))
	for entityType, descriptor := range catalog {
		index[descriptor.slug] = entityType
	}
	return index
}()

// EntityTypes lists every importable type in stable order.
func EntityTypes() []EntityType {
	types := make([]EntityType, 0, len(catalog))
	for entityType := range catalog {
		types = append(types, entityType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// EntityTypeFromSlug resolves a URL slug to its entity type.
func EntityTypeFromSlug(slug string) (EntityType, bool) {
	entityType, ok := slugIndex[slug]
	return entityType, ok
}

// KnownEntityType reports whether the type is part of the importer catalog.
func KnownEntityType(entityType EntityType) bool {
	_, ok := catalog[entityType]
	return ok
}

// RequiredFields returns the natural-key fields the validator checks for the
// given type.
func RequiredFields(entityType EntityType) []string {
	return catalog[entityType].requiredFields
}

// Slug returns the URL slug for the given type.
func Slug(entityType EntityType) string {
	return catalog[entityType].slug
}
