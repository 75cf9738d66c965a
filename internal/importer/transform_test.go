package importer

import (
	"context"
	"testing"
	"time"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
)

func TestTransformMemberResolvesReferences(t *testing.T) {
	orgID := uuid.New()
	familyID := uuid.New()
	membershipTypeID := uuid.New()
	records := &stubRecordRepo{
		byExternal: map[string]map[int64]uuid.UUID{
			string(EntityFamily):         {10: familyID},
			string(EntityMembershipType): {3: membershipTypeID},
		},
	}
	refs := NewReferenceResolver(records, orgID)

	rec := Record{
		"OrganizationMemberId": "101",
		"FirstName":            "Alice",
		"LastName":             "Smith",
		"FamilyId":             float64(10),
		"MembershipTypeId":     "3",
		"DateOfBirth":          "1990-05-04",
	}
	transform, ok := TransformerFor(EntityMember)
	if !ok {
		t.Fatalf("no transformer for member")
	}
	result, err := transform.Transform(context.Background(), rec, orgID, refs)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if result == nil {
		t.Fatalf("expected a record")
	}

	if result.OrganizationID != orgID || result.EntityType != string(EntityMember) {
		t.Fatalf("unexpected record scope: %+v", result)
	}
	if result.ExternalID == nil || *result.ExternalID != 101 {
		t.Fatalf("external id not promoted: %v", result.ExternalID)
	}

	member := result.Properties.(domain.Member)
	if member.FamilyID == nil || *member.FamilyID != familyID {
		t.Fatalf("family not resolved: %+v", member)
	}
	if member.MembershipTypeID == nil || *member.MembershipTypeID != membershipTypeID {
		t.Fatalf("membership type not resolved: %+v", member)
	}
	if member.Status != "active" {
		t.Fatalf("expected default status active, got %q", member.Status)
	}
	if member.DateOfBirth == nil || member.DateOfBirth.Year() != 1990 {
		t.Fatalf("date of birth not parsed: %v", member.DateOfBirth)
	}
}

func TestTransformMemberSkipsWithoutNaturalKey(t *testing.T) {
	refs := NewReferenceResolver(&stubRecordRepo{}, uuid.New())
	transform, _ := TransformerFor(EntityMember)

	result, err := transform.Transform(context.Background(), Record{
		"FirstName": "Alice",
		"LastName":  "Smith",
	}, uuid.New(), refs)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if result != nil {
		t.Fatalf("expected record without natural key to be skipped")
	}
}

func TestTransformReservationCourtFallback(t *testing.T) {
	orgID := uuid.New()
	courtID := uuid.New()
	records := &stubRecordRepo{
		byLabel: map[string]uuid.UUID{"Court 4": courtID},
	}
	refs := NewReferenceResolver(records, orgID)
	transform, _ := TransformerFor(EntityReservation)

	result, err := transform.Transform(context.Background(), Record{
		"Id":         "55",
		"StartTime":  "2026-03-01T09:00:00Z",
		"EndTime":    "2026-03-01T10:00:00Z",
		"CourtLabel": "Court 4",
	}, orgID, refs)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}

	reservation := result.Properties.(domain.Reservation)
	if reservation.CourtID == nil || *reservation.CourtID != courtID {
		t.Fatalf("court label fallback not applied: %+v", reservation)
	}
	if reservation.Status != domain.ReservationStatusConfirmed {
		t.Fatalf("expected confirmed default, got %q", reservation.Status)
	}
	if !reservation.StartTime.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("start time not parsed: %v", reservation.StartTime)
	}
}

func TestTransformUnresolvedReferenceStaysNil(t *testing.T) {
	refs := NewReferenceResolver(&stubRecordRepo{}, uuid.New())
	transform, _ := TransformerFor(EntityMember)

	result, err := transform.Transform(context.Background(), Record{
		"OrganizationMemberId": "1",
		"FirstName":            "Bob",
		"LastName":             "Jones",
		"FamilyId":             "999",
	}, uuid.New(), refs)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}

	member := result.Properties.(domain.Member)
	if member.FamilyID != nil {
		t.Fatalf("unknown family must stay nil, got %v", member.FamilyID)
	}
}

func TestTransformerCatalogIsComplete(t *testing.T) {
	for _, entityType := range []EntityType{
		EntityFamily, EntityMember, EntityMembershipType, EntityCourt,
		EntityReservation, EntityReservationType, EntityReservationPlayer,
		EntityPlayerReport, EntityEvent, EntityEventCategory,
		EntityEventRegistration, EntityTransaction, EntitySalesSummary,
		EntityRevenueRecognition,
	} {
		if _, ok := TransformerFor(entityType); !ok {
			t.Fatalf("no transformer registered for %q", entityType)
		}
	}
	if _, ok := TransformerFor(EntityType("bogus")); ok {
		t.Fatalf("unexpected transformer for unknown type")
	}
}

func TestRecordCoercions(t *testing.T) {
	rec := Record{
		"stringID": "42",
		"floatID":  float64(7),
		"fraction": "7.5",
		"spaced":   "  hello  ",
		"yes":      "Yes",
		"zero":     "0",
		"date":     "03/15/2026",
		"blank":    "",
	}

	if id := rec.Int64("stringID"); id == nil || *id != 42 {
		t.Fatalf("string id not coerced: %v", id)
	}
	if id := rec.Int64("floatID"); id == nil || *id != 7 {
		t.Fatalf("float id not coerced: %v", id)
	}
	if id := rec.Int64("fraction"); id != nil {
		t.Fatalf("fractional value must not coerce to id, got %v", *id)
	}
	if s := rec.String("spaced"); s == nil || *s != "hello" {
		t.Fatalf("string not trimmed: %v", s)
	}
	if b := rec.Bool("yes"); b == nil || !*b {
		t.Fatalf("yes not coerced: %v", b)
	}
	if b := rec.Bool("zero"); b == nil || *b {
		t.Fatalf("zero not coerced: %v", b)
	}
	if ts := rec.Time("date"); ts == nil || ts.Month() != time.March || ts.Day() != 15 {
		t.Fatalf("date not parsed: %v", ts)
	}
	if rec.Has("blank") {
		t.Fatalf("blank value must not count as present")
	}
	if rec.Has("missing") {
		t.Fatalf("missing key must not count as present")
	}
}
