package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a posted financial transaction for a member account.
type Transaction struct {
	ExternalID    int64      `json:"external_id"`
	Date          time.Time  `json:"date"`
	MemberID      *uuid.UUID `json:"member_id,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
	Description   *string    `json:"description,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
}

// SalesSummary is an aggregated sales line tied back to a transaction.
type SalesSummary struct {
	ExternalTransactionID int64      `json:"external_transaction_id"`
	Date                  time.Time  `json:"date"`
	TransactionID         *uuid.UUID `json:"transaction_id,omitempty"`
	MemberID              *uuid.UUID `json:"member_id,omitempty"`
	Category              *string    `json:"category,omitempty"`
	GrossAmount           *float64   `json:"gross_amount,omitempty"`
	NetAmount             *float64   `json:"net_amount,omitempty"`
	TaxAmount             *float64   `json:"tax_amount,omitempty"`
}

// RevenueRecognition is a recognized-revenue line for a billed fee.
type RevenueRecognition struct {
	ExternalFeeID      int64      `json:"external_fee_id"`
	ExternalRelationID int64      `json:"external_relation_id"`
	MemberID           *uuid.UUID `json:"member_id,omitempty"`
	TransactionID      *uuid.UUID `json:"transaction_id,omitempty"`
	Amount             *float64   `json:"amount,omitempty"`
	RecognizedAt       *time.Time `json:"recognized_at,omitempty"`
}
