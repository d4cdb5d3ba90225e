package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

type logRepository struct {
	mu      sync.RWMutex
	entries map[types.UserID]map[types.LogID]*model.LogEntry
}

func newLogRepository() *logRepository {
	return &logRepository{
		entries: make(map[types.UserID]map[types.LogID]*model.LogEntry),
	}
}

func (r *logRepository) ensureUser(userID types.UserID) {
	if _, exists := r.entries[userID]; !exists {
		r.entries[userID] = make(map[types.LogID]*model.LogEntry)
	}
}

func (r *logRepository) Create(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureUser(entry.UserID)

	created := entry.Clone()
	if created.ID == "" {
		created.ID = types.NewLogID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.entries[entry.UserID][created.ID] = created
	return created.Clone(), nil
}

func (r *logRepository) Get(ctx context.Context, userID types.UserID, id types.LogID) (*model.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.entries[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "log not found", goerr.V("logID", id))
	}

	entry, exists := bucket[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "log not found", goerr.V("logID", id))
	}

	return entry.Clone(), nil
}

func (r *logRepository) List(ctx context.Context, userID types.UserID) ([]*model.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.entries[userID]
	if !exists {
		return []*model.LogEntry{}, nil
	}

	result := make([]*model.LogEntry, 0, len(bucket))
	for _, entry := range bucket {
		result = append(result, entry.Clone())
	}

	// most-recent-first; ID as deterministic tie-break
	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp > result[j].Timestamp
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

func (r *logRepository) Update(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.entries[entry.UserID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "log not found", goerr.V("logID", entry.ID))
	}

	existing, exists := bucket[entry.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "log not found", goerr.V("logID", entry.ID))
	}

	updated := entry.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	bucket[entry.ID] = updated
	return updated.Clone(), nil
}

func (r *logRepository) Delete(ctx context.Context, userID types.UserID, id types.LogID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.entries[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "log not found", goerr.V("logID", id))
	}

	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "log not found", goerr.V("logID", id))
	}

	delete(bucket, id)
	return nil
}

func (r *logRepository) Count(ctx context.Context, userID types.UserID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries[userID]), nil
}

func (r *logRepository) BulkUpsert(ctx context.Context, entries []*model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, entry := range entries {
		r.ensureUser(entry.UserID)

		stored := entry.Clone()
		if stored.ID == "" {
			stored.ID = types.NewLogID()
		}
		if existing, ok := r.entries[entry.UserID][stored.ID]; ok {
			stored.CreatedAt = existing.CreatedAt
		} else {
			stored.CreatedAt = now
		}
		stored.UpdatedAt = now
		r.entries[entry.UserID][stored.ID] = stored
	}

	return nil
}
