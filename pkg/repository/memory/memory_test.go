package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/repository/memory"
)

func newEntry(userID types.UserID, ts int64, activity string) *model.LogEntry {
	return &model.LogEntry{
		UserID:          userID,
		Timestamp:       ts,
		RawText:         activity,
		Activity:        activity,
		Category:        types.CategoryWork,
		DurationMinutes: 30,
		Importance:      3,
	}
}

func TestLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	userID := types.NewUserID()

	t.Run("create assigns an ID and timestamps", func(t *testing.T) {
		created, err := repo.Log().Create(ctx, newEntry(userID, 1000, "first"))
		gt.NoError(t, err).Required()
		gt.String(t, created.ID.String()).NotEqual("")
		gt.B(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("list is most recent first", func(t *testing.T) {
		_, err := repo.Log().Create(ctx, newEntry(userID, 3000, "third"))
		gt.NoError(t, err).Required()
		_, err = repo.Log().Create(ctx, newEntry(userID, 2000, "second"))
		gt.NoError(t, err).Required()

		entries, err := repo.Log().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3)
		gt.Value(t, entries[0].Activity).Equal("third")
		gt.Value(t, entries[1].Activity).Equal("second")
		gt.Value(t, entries[2].Activity).Equal("first")
	})

	t.Run("get enforces ownership", func(t *testing.T) {
		entries, err := repo.Log().List(ctx, userID)
		gt.NoError(t, err).Required()

		_, err = repo.Log().Get(ctx, types.NewUserID(), entries[0].ID)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, memory.ErrNotFound)).True()
	})

	t.Run("update keeps CreatedAt", func(t *testing.T) {
		entries, err := repo.Log().List(ctx, userID)
		gt.NoError(t, err).Required()
		target := entries[0]

		modified := target.Clone()
		modified.Activity = "renamed"
		updated, err := repo.Log().Update(ctx, modified)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Activity).Equal("renamed")
		gt.Value(t, updated.CreatedAt).Equal(target.CreatedAt)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Log().Count(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(3)
	})

	t.Run("bulk upsert keeps existing CreatedAt and inserts new", func(t *testing.T) {
		entries, err := repo.Log().List(ctx, userID)
		gt.NoError(t, err).Required()
		existing := entries[0].Clone()
		existing.Activity = "bulk-updated"

		fresh := newEntry(userID, 4000, "fourth")

		gt.NoError(t, repo.Log().BulkUpsert(ctx, []*model.LogEntry{existing, fresh})).Required()

		after, err := repo.Log().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, after).Length(4)
		gt.Value(t, after[0].Activity).Equal("fourth")

		got, err := repo.Log().Get(ctx, userID, existing.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Activity).Equal("bulk-updated")
		gt.Value(t, got.CreatedAt).Equal(entries[0].CreatedAt)
	})

	t.Run("delete", func(t *testing.T) {
		entries, err := repo.Log().List(ctx, userID)
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Log().Delete(ctx, userID, entries[0].ID)).Required()

		_, err = repo.Log().Get(ctx, userID, entries[0].ID)
		gt.B(t, errors.Is(err, memory.ErrNotFound)).True()
	})
}

func TestFinanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	userID := types.NewUserID()
	logID := types.NewLogID()

	t.Run("replace by log is idempotent", func(t *testing.T) {
		first := []*model.FinanceRecord{
			{Type: types.FinanceExpense, Amount: 10, Category: "food", TransactionDate: time.Now()},
			{Type: types.FinanceExpense, Amount: 20, Category: "transport", TransactionDate: time.Now()},
		}
		gt.NoError(t, repo.Finance().ReplaceByLog(ctx, userID, logID, first)).Required()

		second := []*model.FinanceRecord{
			{Type: types.FinanceExpense, Amount: 30, Category: "food", TransactionDate: time.Now()},
		}
		gt.NoError(t, repo.Finance().ReplaceByLog(ctx, userID, logID, second)).Required()

		records, err := repo.Finance().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
		gt.Value(t, records[0].Amount).Equal(30.0)
		gt.Value(t, records[0].LogID).Equal(logID)
	})

	t.Run("replace does not touch unlinked records", func(t *testing.T) {
		standalone, err := repo.Finance().Create(ctx, &model.FinanceRecord{
			UserID: userID, Type: types.FinanceIncome, Amount: 100, Category: "salary",
			TransactionDate: time.Now(),
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Finance().ReplaceByLog(ctx, userID, logID, nil)).Required()

		records, err := repo.Finance().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
		gt.Value(t, records[0].ID).Equal(standalone.ID)
	})

	t.Run("list by range is inclusive", func(t *testing.T) {
		base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			_, err := repo.Finance().Create(ctx, &model.FinanceRecord{
				UserID: userID, Type: types.FinanceExpense, Amount: float64(i + 1),
				Category: "test", TransactionDate: base.AddDate(0, 0, i),
			})
			gt.NoError(t, err).Required()
		}

		records, err := repo.Finance().ListByRange(ctx, userID, base, base.AddDate(0, 0, 1))
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	created, err := repo.User().Create(ctx, &model.User{
		Name:   "Alice",
		Email:  "alice@example.com",
		Status: types.UserStatusAuthenticated,
	})
	gt.NoError(t, err).Required()
	gt.String(t, created.ID.String()).NotEqual("")

	t.Run("get by ID", func(t *testing.T) {
		got, err := repo.User().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Email).Equal("alice@example.com")
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := repo.User().GetByEmail(ctx, "alice@example.com")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(created.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.User().GetByEmail(ctx, "nobody@example.com")
		gt.B(t, errors.Is(err, memory.ErrNotFound)).True()
	})
}
