package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/interfaces"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// FinanceUseCase handles standalone finance records and log-linked syncing
type FinanceUseCase struct {
	repo interfaces.Repository
}

func newFinanceUseCase(repo interfaces.Repository) *FinanceUseCase {
	return &FinanceUseCase{repo: repo}
}

// Create stores a manually entered finance record
func (uc *FinanceUseCase) Create(ctx context.Context, user *model.User, record *model.FinanceRecord) (*model.FinanceRecord, error) {
	record.UserID = user.ID
	if err := record.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid finance record")
	}

	created, err := uc.repo.Finance().Create(ctx, record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store finance record")
	}

	return created, nil
}

// List returns the user's finance records, most recent transaction first
func (uc *FinanceUseCase) List(ctx context.Context, user *model.User) ([]*model.FinanceRecord, error) {
	records, err := uc.repo.Finance().List(ctx, user.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list finance records")
	}

	return records, nil
}

// Delete removes a finance record the user owns
func (uc *FinanceUseCase) Delete(ctx context.Context, user *model.User, id types.RecordID) error {
	if err := uc.repo.Finance().Delete(ctx, user.ID, id); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrRecordNotFound, "finance record not found", goerr.V("recordID", id))
		}
		return goerr.Wrap(err, "failed to delete finance record", goerr.V("recordID", id))
	}

	return nil
}

// SyncForLog re-derives the finance records linked to a log entry. Existing
// linked records are dropped and replaced so repeated syncs stay idempotent.
func (uc *FinanceUseCase) SyncForLog(ctx context.Context, user *model.User, logID types.LogID, items []model.ParsedFinance) ([]*model.FinanceRecord, error) {
	entry, err := uc.repo.Log().Get(ctx, user.ID, logID)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrLogNotFound, "log not found", goerr.V("logID", logID))
		}
		return nil, goerr.Wrap(err, "failed to get log entry", goerr.V("logID", logID))
	}

	records := make([]*model.FinanceRecord, 0, len(items))
	for _, item := range items {
		records = append(records, &model.FinanceRecord{
			UserID:          user.ID,
			LogID:           entry.ID,
			Type:            item.Type,
			Amount:          item.Amount,
			Category:        item.Category,
			Description:     entry.Activity,
			TransactionDate: entry.Time(),
		})
	}

	if err := uc.repo.Finance().ReplaceByLog(ctx, user.ID, entry.ID, records); err != nil {
		return nil, goerr.Wrap(err, "failed to replace finance records", goerr.V("logID", logID))
	}

	return records, nil
}

// Stats sums the user's income and expenses within the optional time range.
// Zero times mean an unbounded side.
func (uc *FinanceUseCase) Stats(ctx context.Context, user *model.User, from, to time.Time) (*model.FinanceStats, error) {
	var records []*model.FinanceRecord
	var err error
	if from.IsZero() && to.IsZero() {
		records, err = uc.repo.Finance().List(ctx, user.ID)
	} else {
		if to.IsZero() {
			to = time.Now().UTC()
		}
		records, err = uc.repo.Finance().ListByRange(ctx, user.ID, from, to)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load finance records")
	}

	stats := &model.FinanceStats{
		ByCategory: map[string]float64{},
	}
	for _, record := range records {
		switch record.Type {
		case types.FinanceExpense:
			stats.TotalExpense += record.Amount
			stats.ByCategory[record.Category] += record.Amount
		case types.FinanceIncome:
			stats.TotalIncome += record.Amount
		}
	}

	return stats, nil
}
