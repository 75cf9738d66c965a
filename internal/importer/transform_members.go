package importer

import (
	"context"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
)

func transformFamily(_ context.Context, rec Record, organizationID uuid.UUID, _ *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("FamilyId")
	name := rec.String("FamilyName")
	if externalID == nil || name == nil {
		return nil, nil
	}

	family := domain.Family{
		ExternalID: *externalID,
		Name:       *name,
		Email:      rec.String("Email"),
		Phone:      rec.String("Phone"),
		Address:    rec.String("Address"),
	}

	record := domain.NewClubRecord(organizationID, string(EntityFamily), externalID, family)
	return &record, nil
}

func transformMember(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("OrganizationMemberId")
	firstName := rec.String("FirstName")
	lastName := rec.String("LastName")
	if externalID == nil || firstName == nil || lastName == nil {
		return nil, nil
	}

	familyID, err := refs.ResolveID(ctx, RefFamily, rec.Int64("FamilyId"))
	if err != nil {
		return nil, err
	}
	membershipTypeID, err := refs.ResolveID(ctx, RefMembershipType, rec.Int64("MembershipTypeId"))
	if err != nil {
		return nil, err
	}

	status := "active"
	if s := rec.String("Status"); s != nil {
		status = *s
	}

	member := domain.Member{
		ExternalID:       *externalID,
		FirstName:        *firstName,
		LastName:         *lastName,
		Email:            rec.String("Email"),
		Phone:            rec.String("CellPhone"),
		Gender:           rec.String("Gender"),
		DateOfBirth:      rec.Time("DateOfBirth"),
		JoinedAt:         rec.Time("JoinDate"),
		FamilyID:         familyID,
		MembershipTypeID: membershipTypeID,
		Status:           status,
	}

	record := domain.NewClubRecord(organizationID, string(EntityMember), externalID, member)
	return &record, nil
}

func transformMembershipType(_ context.Context, rec Record, organizationID uuid.UUID, _ *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("Id")
	name := rec.String("Name")
	if externalID == nil || name == nil {
		return nil, nil
	}

	active := true
	if b := rec.Bool("IsActive"); b != nil {
		active = *b
	}

	membershipType := domain.MembershipType{
		ExternalID:  *externalID,
		Name:        *name,
		Description: rec.String("Description"),
		MonthlyFee:  rec.Float("MonthlyFee"),
		Active:      active,
	}

	record := domain.NewClubRecord(organizationID, string(EntityMembershipType), externalID, membershipType)
	return &record, nil
}

func transformCourt(_ context.Context, rec Record, organizationID uuid.UUID, _ *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("Id")
	if externalID == nil {
		return nil, nil
	}

	label := ""
	if l := rec.String("Label"); l != nil {
		label = *l
	}
	typeName := ""
	if t := rec.String("TypeName"); t != nil {
		typeName = *t
	}
	orderIndex := 0
	if i := rec.Int("OrderIndex"); i != nil {
		orderIndex = *i
	}

	court := domain.Court{
		ExternalID: *externalID,
		Label:      label,
		TypeName:   typeName,
		OrderIndex: orderIndex,
	}

	record := domain.NewClubRecord(organizationID, string(EntityCourt), externalID, court)
	return &record, nil
}
