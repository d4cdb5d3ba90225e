package interfaces

import (
	"context"
	"time"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// FinanceRepository defines the interface for FinanceRecord data access
type FinanceRepository interface {
	// Create stores a new finance record, assigning an ID when absent
	Create(ctx context.Context, record *model.FinanceRecord) (*model.FinanceRecord, error)

	// List retrieves all records of a user, most recent transaction first
	List(ctx context.Context, userID types.UserID) ([]*model.FinanceRecord, error)

	// ListByRange retrieves records whose transaction date falls within [from, to]
	ListByRange(ctx context.Context, userID types.UserID, from, to time.Time) ([]*model.FinanceRecord, error)

	// Delete removes a record by ID
	Delete(ctx context.Context, userID types.UserID, id types.RecordID) error

	// ReplaceByLog atomically deletes all records linked to the log and
	// inserts the given ones. This is the batch "overwrite" used when a log
	// is re-parsed or edited.
	ReplaceByLog(ctx context.Context, userID types.UserID, logID types.LogID, records []*model.FinanceRecord) error
}
