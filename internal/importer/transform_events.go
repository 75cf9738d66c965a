package importer

import (
	"context"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
)

func transformEvent(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("EventId")
	name := rec.String("EventName")
	if externalID == nil || name == nil {
		return nil, nil
	}

	categoryID, err := refs.ResolveID(ctx, RefEventCategory, rec.Int64("CategoryId"))
	if err != nil {
		return nil, err
	}
	reservationID, err := refs.ResolveID(ctx, RefReservation, rec.Int64("ReservationId"))
	if err != nil {
		return nil, err
	}

	canceled := false
	if b := rec.Bool("IsCanceled"); b != nil {
		canceled = *b
	}

	event := domain.Event{
		ExternalID:      *externalID,
		Name:            *name,
		CategoryID:      categoryID,
		ReservationID:   reservationID,
		StartTime:       rec.Time("StartTime"),
		EndTime:         rec.Time("EndTime"),
		Description:     rec.String("Description"),
		MaxParticipants: rec.Int("MaxParticipants"),
		Canceled:        canceled,
	}

	record := domain.NewClubRecord(organizationID, string(EntityEvent), externalID, event)
	return &record, nil
}

func transformEventCategory(_ context.Context, rec Record, organizationID uuid.UUID, _ *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("Id")
	name := rec.String("Name")
	if externalID == nil || name == nil {
		return nil, nil
	}

	category := domain.EventCategory{
		ExternalID: *externalID,
		Name:       *name,
		Color:      rec.String("Color"),
	}

	record := domain.NewClubRecord(organizationID, string(EntityEventCategory), externalID, category)
	return &record, nil
}

func transformEventRegistration(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalEventDateID := rec.Int64("EventDateId")
	if externalEventDateID == nil {
		return nil, nil
	}

	eventID, err := refs.ResolveID(ctx, RefEvent, rec.Int64("EventId"))
	if err != nil {
		return nil, err
	}
	memberID, err := refs.ResolveID(ctx, RefMember, rec.Int64("OrganizationMemberId"))
	if err != nil {
		return nil, err
	}

	attended := false
	if b := rec.Bool("Attended"); b != nil {
		attended = *b
	}

	registration := domain.EventRegistration{
		ExternalEventDateID: *externalEventDateID,
		EventID:             eventID,
		MemberID:            memberID,
		RegisteredAt:        rec.Time("RegistrationDate"),
		Attended:            attended,
	}

	record := domain.NewClubRecord(organizationID, string(EntityEventRegistration), externalEventDateID, registration)
	return &record, nil
}
