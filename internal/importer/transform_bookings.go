package importer

import (
	"context"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
)

func transformReservation(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("Id")
	startTime := rec.Time("StartTime")
	endTime := rec.Time("EndTime")
	if externalID == nil || startTime == nil || endTime == nil {
		return nil, nil
	}

	// Some extracts reference courts by numeric id, others only by label.
	courtID, err := refs.ResolveID(ctx, RefCourt, rec.Int64("CourtId"))
	if err != nil {
		return nil, err
	}
	if courtID == nil {
		courtID, err = refs.ResolveCourtLabel(ctx, rec.String("CourtLabel"))
		if err != nil {
			return nil, err
		}
	}

	reservationTypeID, err := refs.ResolveID(ctx, RefReservationType, rec.Int64("ReservationTypeId"))
	if err != nil {
		return nil, err
	}
	bookedBy, err := refs.ResolveID(ctx, RefMember, rec.Int64("OrganizationMemberId"))
	if err != nil {
		return nil, err
	}

	status := domain.ReservationStatusConfirmed
	if s := rec.String("Status"); s != nil {
		status = *s
	}

	reservation := domain.Reservation{
		ExternalID:        *externalID,
		StartTime:         *startTime,
		EndTime:           *endTime,
		CourtID:           courtID,
		ReservationTypeID: reservationTypeID,
		BookedByMemberID:  bookedBy,
		Status:            status,
		Note:              rec.String("Note"),
	}

	record := domain.NewClubRecord(organizationID, string(EntityReservation), externalID, reservation)
	return &record, nil
}

func transformReservationType(_ context.Context, rec Record, organizationID uuid.UUID, _ *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("Id")
	name := rec.String("Name")
	if externalID == nil || name == nil {
		return nil, nil
	}

	bookable := true
	if b := rec.Bool("IsBookable"); b != nil {
		bookable = *b
	}

	reservationType := domain.ReservationType{
		ExternalID: *externalID,
		Name:       *name,
		Color:      rec.String("Color"),
		Bookable:   bookable,
	}

	record := domain.NewClubRecord(organizationID, string(EntityReservationType), externalID, reservationType)
	return &record, nil
}

func transformReservationPlayer(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("ReservationMemberId")
	if externalID == nil {
		return nil, nil
	}

	reservationID, err := refs.ResolveID(ctx, RefReservation, rec.Int64("ReservationId"))
	if err != nil {
		return nil, err
	}
	memberID, err := refs.ResolveID(ctx, RefMember, rec.Int64("OrganizationMemberId"))
	if err != nil {
		return nil, err
	}

	paid := false
	if b := rec.Bool("IsPaid"); b != nil {
		paid = *b
	}

	player := domain.ReservationPlayer{
		ExternalID:    *externalID,
		ReservationID: reservationID,
		MemberID:      memberID,
		Paid:          paid,
	}

	record := domain.NewClubRecord(organizationID, string(EntityReservationPlayer), externalID, player)
	return &record, nil
}

func transformPlayerReport(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("ReservationMemberId")
	externalMemberID := rec.Int64("OrganizationMemberId")
	if externalID == nil || externalMemberID == nil {
		return nil, nil
	}

	memberID, err := refs.ResolveID(ctx, RefMember, externalMemberID)
	if err != nil {
		return nil, err
	}
	reservationID, err := refs.ResolveID(ctx, RefReservation, rec.Int64("ReservationId"))
	if err != nil {
		return nil, err
	}
	courtID, err := refs.ResolveID(ctx, RefCourt, rec.Int64("CourtId"))
	if err != nil {
		return nil, err
	}

	report := domain.PlayerReport{
		ExternalID:      *externalID,
		MemberID:        memberID,
		ReservationID:   reservationID,
		CourtID:         courtID,
		PlayedAt:        rec.Time("Date"),
		DurationMinutes: rec.Int("DurationMinutes"),
		FeeAmount:       rec.Float("FeeAmount"),
	}

	record := domain.NewClubRecord(organizationID, string(EntityPlayerReport), externalID, report)
	return &record, nil
}
