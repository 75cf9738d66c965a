package importer

import (
	"context"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
)

func transformTransaction(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalID := rec.Int64("TransactionId")
	date := rec.Time("TransactionDate")
	if externalID == nil || date == nil {
		return nil, nil
	}

	memberID, err := refs.ResolveID(ctx, RefMember, rec.Int64("OrganizationMemberId"))
	if err != nil {
		return nil, err
	}

	transaction := domain.Transaction{
		ExternalID:    *externalID,
		Date:          *date,
		MemberID:      memberID,
		Amount:        rec.Float("Amount"),
		Description:   rec.String("Description"),
		PaymentMethod: rec.String("PaymentMethod"),
	}

	record := domain.NewClubRecord(organizationID, string(EntityTransaction), externalID, transaction)
	return &record, nil
}

func transformSalesSummary(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalTransactionID := rec.Int64("TransactionId")
	date := rec.Time("TransactionDate")
	if externalTransactionID == nil || date == nil {
		return nil, nil
	}

	transactionID, err := refs.ResolveID(ctx, RefTransaction, externalTransactionID)
	if err != nil {
		return nil, err
	}
	memberID, err := refs.ResolveID(ctx, RefMember, rec.Int64("OrganizationMemberId"))
	if err != nil {
		return nil, err
	}

	summary := domain.SalesSummary{
		ExternalTransactionID: *externalTransactionID,
		Date:                  *date,
		TransactionID:         transactionID,
		MemberID:              memberID,
		Category:              rec.String("Category"),
		GrossAmount:           rec.Float("GrossAmount"),
		NetAmount:             rec.Float("NetAmount"),
		TaxAmount:             rec.Float("TaxAmount"),
	}

	record := domain.NewClubRecord(organizationID, string(EntitySalesSummary), externalTransactionID, summary)
	return &record, nil
}

func transformRevenueRecognition(ctx context.Context, rec Record, organizationID uuid.UUID, refs *ReferenceResolver) (*domain.ClubRecord, error) {
	externalFeeID := rec.Int64("FeeId")
	externalMemberID := rec.Int64("OrganizationMemberId")
	externalRelationID := rec.Int64("RelationId")
	if externalFeeID == nil || externalMemberID == nil || externalRelationID == nil {
		return nil, nil
	}

	memberID, err := refs.ResolveID(ctx, RefMember, externalMemberID)
	if err != nil {
		return nil, err
	}
	transactionID, err := refs.ResolveID(ctx, RefTransaction, rec.Int64("TransactionId"))
	if err != nil {
		return nil, err
	}

	recognition := domain.RevenueRecognition{
		ExternalFeeID:      *externalFeeID,
		ExternalRelationID: *externalRelationID,
		MemberID:           memberID,
		TransactionID:      transactionID,
		Amount:             rec.Float("Amount"),
		RecognizedAt:       rec.Time("RecognitionDate"),
	}

	record := domain.NewClubRecord(organizationID, string(EntityRevenueRecognition), externalFeeID, recognition)
	return &record, nil
}
