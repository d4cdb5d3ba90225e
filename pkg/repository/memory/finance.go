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

type financeRepository struct {
	mu      sync.RWMutex
	records map[types.UserID]map[types.RecordID]*model.FinanceRecord
}

func newFinanceRepository() *financeRepository {
	return &financeRepository{
		records: make(map[types.UserID]map[types.RecordID]*model.FinanceRecord),
	}
}

func (r *financeRepository) ensureUser(userID types.UserID) {
	if _, exists := r.records[userID]; !exists {
		r.records[userID] = make(map[types.RecordID]*model.FinanceRecord)
	}
}

func (r *financeRepository) Create(ctx context.Context, record *model.FinanceRecord) (*model.FinanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureUser(record.UserID)

	created := record.Clone()
	if created.ID == "" {
		created.ID = types.NewRecordID()
	}
	if created.TransactionDate.IsZero() {
		created.TransactionDate = time.Now().UTC()
	}
	created.CreatedAt = time.Now().UTC()

	r.records[record.UserID][created.ID] = created
	return created.Clone(), nil
}

func (r *financeRepository) List(ctx context.Context, userID types.UserID) ([]*model.FinanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.records[userID]
	if !exists {
		return []*model.FinanceRecord{}, nil
	}

	result := make([]*model.FinanceRecord, 0, len(bucket))
	for _, record := range bucket {
		result = append(result, record.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TransactionDate.After(result[j].TransactionDate)
	})

	return result, nil
}

func (r *financeRepository) ListByRange(ctx context.Context, userID types.UserID, from, to time.Time) ([]*model.FinanceRecord, error) {
	all, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*model.FinanceRecord, 0, len(all))
	for _, record := range all {
		if record.TransactionDate.Before(from) || record.TransactionDate.After(to) {
			continue
		}
		result = append(result, record)
	}

	return result, nil
}

func (r *financeRepository) Delete(ctx context.Context, userID types.UserID, id types.RecordID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.records[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "finance record not found", goerr.V("recordID", id))
	}

	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "finance record not found", goerr.V("recordID", id))
	}

	delete(bucket, id)
	return nil
}

func (r *financeRepository) ReplaceByLog(ctx context.Context, userID types.UserID, logID types.LogID, records []*model.FinanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureUser(userID)
	bucket := r.records[userID]

	for id, record := range bucket {
		if record.LogID == logID {
			delete(bucket, id)
		}
	}

	now := time.Now().UTC()
	for _, record := range records {
		stored := record.Clone()
		if stored.ID == "" {
			stored.ID = types.NewRecordID()
		}
		stored.UserID = userID
		stored.LogID = logID
		if stored.TransactionDate.IsZero() {
			stored.TransactionDate = now
		}
		stored.CreatedAt = now
		bucket[stored.ID] = stored
	}

	return nil
}
