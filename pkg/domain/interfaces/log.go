package interfaces

import (
	"context"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// LogRepository defines the interface for LogEntry data access.
// List returns entries most-recent-first (timestamp descending); callers rely
// on that ordering for display and fingerprint computation.
type LogRepository interface {
	// Create stores a new log entry, assigning an ID when absent
	Create(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error)

	// Get retrieves a log entry by ID
	Get(ctx context.Context, userID types.UserID, id types.LogID) (*model.LogEntry, error)

	// List retrieves all log entries of a user, most-recent-first
	List(ctx context.Context, userID types.UserID) ([]*model.LogEntry, error)

	// Update replaces an existing log entry
	Update(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error)

	// Delete removes a log entry by ID
	Delete(ctx context.Context, userID types.UserID, id types.LogID) error

	// Count returns the number of log entries owned by the user
	Count(ctx context.Context, userID types.UserID) (int, error)

	// BulkUpsert stores multiple entries at once, preserving given IDs.
	// Used for guest-to-authenticated data migration.
	BulkUpsert(ctx context.Context, entries []*model.LogEntry) error
}
