package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// FinanceRecord is an optional side-effect of parsing a log. LogID is a weak
// reference: deleting a record never cascades to its log, and vice versa.
type FinanceRecord struct {
	ID              types.RecordID    `firestore:"id" json:"id"`
	UserID          types.UserID      `firestore:"user_id" json:"userId"`
	LogID           types.LogID       `firestore:"log_id,omitempty" json:"logId,omitempty"`
	Type            types.FinanceType `firestore:"type" json:"type"`
	Amount          float64           `firestore:"amount" json:"amount"`
	Currency        string            `firestore:"currency" json:"currency"`
	Category        string            `firestore:"category" json:"category"`
	Description     string            `firestore:"description,omitempty" json:"description,omitempty"`
	TransactionDate time.Time         `firestore:"transaction_date" json:"transactionDate"`
	CreatedAt       time.Time         `firestore:"created_at" json:"createdAt"`
}

// Validate checks structural invariants of the finance record
func (r *FinanceRecord) Validate() error {
	if !r.Type.IsValid() {
		return goerr.New("invalid finance type", goerr.V("type", r.Type))
	}
	if r.Amount < 0 {
		return goerr.New("amount must be non-negative", goerr.V("amount", r.Amount))
	}
	if r.Category == "" {
		return goerr.New("finance category is required")
	}
	return nil
}

// Clone returns a copy of the finance record
func (r *FinanceRecord) Clone() *FinanceRecord {
	copied := *r
	return &copied
}

// FinanceStats summarizes finance records over a date range
type FinanceStats struct {
	TotalExpense float64            `json:"totalExpense"`
	TotalIncome  float64            `json:"totalIncome"`
	ByCategory   map[string]float64 `json:"byCategory"`
}
