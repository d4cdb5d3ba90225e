package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/repository/memory"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
)

func TestFinanceUseCase_SyncForLog(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)
	user := authedUser()

	entry, err := uc.Log.Create(ctx, user, newEntry("shopping trip", types.CategoryChores, 60))
	gt.NoError(t, err).Required()

	t.Run("first sync creates linked records", func(t *testing.T) {
		records, err := uc.Finance.SyncForLog(ctx, user, entry.ID, []model.ParsedFinance{
			{Type: types.FinanceExpense, Amount: 42, Category: "groceries"},
			{Type: types.FinanceExpense, Amount: 15, Category: "household"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)

		stored, err := uc.Finance.List(ctx, user)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(2)
	})

	t.Run("repeat sync replaces instead of accumulating", func(t *testing.T) {
		_, err := uc.Finance.SyncForLog(ctx, user, entry.ID, []model.ParsedFinance{
			{Type: types.FinanceExpense, Amount: 57, Category: "groceries"},
		})
		gt.NoError(t, err).Required()

		stored, err := uc.Finance.List(ctx, user)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)
		gt.Value(t, stored[0].Amount).Equal(57.0)
	})

	t.Run("unknown log is reported as such", func(t *testing.T) {
		_, err := uc.Finance.SyncForLog(ctx, user, types.NewLogID(), nil)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, usecase.ErrLogNotFound)).True()
	})
}

func TestFinanceUseCase_Stats(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)
	user := authedUser()

	seed := []*model.FinanceRecord{
		{Type: types.FinanceExpense, Amount: 100, Category: "rent", TransactionDate: time.Now()},
		{Type: types.FinanceExpense, Amount: 30, Category: "food", TransactionDate: time.Now()},
		{Type: types.FinanceExpense, Amount: 20, Category: "food", TransactionDate: time.Now()},
		{Type: types.FinanceIncome, Amount: 500, Category: "salary", TransactionDate: time.Now()},
	}
	for _, record := range seed {
		_, err := uc.Finance.Create(ctx, user, record)
		gt.NoError(t, err).Required()
	}

	stats, err := uc.Finance.Stats(ctx, user, time.Time{}, time.Time{})
	gt.NoError(t, err).Required()
	gt.Value(t, stats.TotalExpense).Equal(150.0)
	gt.Value(t, stats.TotalIncome).Equal(500.0)
	gt.Value(t, stats.ByCategory["food"]).Equal(50.0)
	gt.Value(t, stats.ByCategory["rent"]).Equal(100.0)
}

func TestFinanceUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)
	user := authedUser()

	record, err := uc.Finance.Create(ctx, user, &model.FinanceRecord{
		Type: types.FinanceExpense, Amount: 12, Category: "coffee", TransactionDate: time.Now(),
	})
	gt.NoError(t, err).Required()

	t.Run("another user cannot delete it", func(t *testing.T) {
		err := uc.Finance.Delete(ctx, authedUser(), record.ID)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, usecase.ErrRecordNotFound)).True()
	})

	t.Run("owner can delete it", func(t *testing.T) {
		gt.NoError(t, uc.Finance.Delete(ctx, user, record.ID)).Required()

		stored, err := uc.Finance.List(ctx, user)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(0)
	})
}
