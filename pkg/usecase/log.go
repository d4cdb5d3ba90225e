package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/interfaces"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/service/llm"
	"github.com/chunpat/life-pulse-ai/pkg/utils/logging"
)

// LogUseCase handles life log CRUD, AI-assisted creation and guest sync
type LogUseCase struct {
	repo         interfaces.Repository
	parser       llm.ParseService
	guestMaxLogs int
}

func newLogUseCase(repo interfaces.Repository, parser llm.ParseService, guestMaxLogs int) *LogUseCase {
	return &LogUseCase{
		repo:         repo,
		parser:       parser,
		guestMaxLogs: guestMaxLogs,
	}
}

// checkGuestQuota rejects the write when a guest user already holds the
// maximum number of stored logs. Registered users have no ceiling.
func (uc *LogUseCase) checkGuestQuota(ctx context.Context, userID types.UserID) error {
	if !userID.IsGuest() {
		return nil
	}

	count, err := uc.repo.Log().Count(ctx, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to count guest logs")
	}
	if count >= uc.guestMaxLogs {
		return goerr.Wrap(ErrGuestQuotaExceeded, "guest log limit reached",
			goerr.V("count", count),
			goerr.V("limit", uc.guestMaxLogs),
		)
	}

	return nil
}

// Parse runs the LLM parser over a free-text note without storing anything
func (uc *LogUseCase) Parse(ctx context.Context, text, lang string) (*model.ParsedLog, error) {
	if uc.parser == nil {
		return nil, goerr.New("parse service is not configured")
	}

	parsed, err := uc.parser.Parse(ctx, text, lang)
	if err != nil {
		return nil, goerr.Wrap(ErrParseFailed, "parse request failed", goerr.V("cause", err.Error()))
	}

	return parsed, nil
}

// CreateFromText parses a free-text note into structured fields and stores
// the resulting log entry. Finance items found in the note are synced as
// linked records; if that sync fails the stored log is removed again so a
// retry starts clean.
func (uc *LogUseCase) CreateFromText(ctx context.Context, user *model.User, text, lang string) (*model.LogEntry, error) {
	// quota first: a rejected write must not cost an LLM call
	if err := uc.checkGuestQuota(ctx, user.ID); err != nil {
		return nil, err
	}

	parsed, err := uc.Parse(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	entry := &model.LogEntry{
		UserID:          user.ID,
		Timestamp:       time.Now().UnixMilli(),
		RawText:         text,
		Activity:        parsed.Activity,
		Category:        parsed.Category,
		DurationMinutes: parsed.DurationMinutes,
		Mood:            parsed.Mood,
		Importance:      parsed.Importance,
	}
	if err := entry.Validate(); err != nil {
		return nil, goerr.Wrap(ErrParseFailed, "parsed entry is invalid", goerr.V("cause", err.Error()))
	}

	created, err := uc.repo.Log().Create(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store log entry")
	}

	if len(parsed.Finance) > 0 {
		if err := uc.syncParsedFinance(ctx, user.ID, created, parsed.Finance); err != nil {
			// compensating delete so the note can be retried without leaving
			// a log with missing finance records behind
			if delErr := uc.repo.Log().Delete(ctx, user.ID, created.ID); delErr != nil {
				logging.From(ctx).Error("failed to roll back log after finance sync failure",
					slog.Any("error", delErr),
					slog.String("log_id", created.ID.String()),
				)
			}
			return nil, goerr.Wrap(err, "failed to sync finance records", goerr.V("logID", created.ID))
		}
	}

	return created, nil
}

func (uc *LogUseCase) syncParsedFinance(ctx context.Context, userID types.UserID, entry *model.LogEntry, items []model.ParsedFinance) error {
	records := make([]*model.FinanceRecord, 0, len(items))
	for _, item := range items {
		records = append(records, &model.FinanceRecord{
			UserID:          userID,
			LogID:           entry.ID,
			Type:            item.Type,
			Amount:          item.Amount,
			Category:        item.Category,
			Description:     entry.Activity,
			TransactionDate: entry.Time(),
		})
	}

	return uc.repo.Finance().ReplaceByLog(ctx, userID, entry.ID, records)
}

// Create stores a pre-structured log entry
func (uc *LogUseCase) Create(ctx context.Context, user *model.User, entry *model.LogEntry) (*model.LogEntry, error) {
	entry.UserID = user.ID
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	if err := entry.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid log entry")
	}

	if err := uc.checkGuestQuota(ctx, user.ID); err != nil {
		return nil, err
	}

	created, err := uc.repo.Log().Create(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store log entry")
	}

	return created, nil
}

// Get returns a single log entry owned by the user
func (uc *LogUseCase) Get(ctx context.Context, user *model.User, id types.LogID) (*model.LogEntry, error) {
	entry, err := uc.repo.Log().Get(ctx, user.ID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrLogNotFound, "log not found", goerr.V("logID", id))
		}
		return nil, goerr.Wrap(err, "failed to get log entry", goerr.V("logID", id))
	}

	return entry, nil
}

// List returns the user's log entries, most recent first
func (uc *LogUseCase) List(ctx context.Context, user *model.User) ([]*model.LogEntry, error) {
	entries, err := uc.repo.Log().List(ctx, user.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list log entries")
	}

	return entries, nil
}

// Update replaces a log entry the user owns
func (uc *LogUseCase) Update(ctx context.Context, user *model.User, entry *model.LogEntry) (*model.LogEntry, error) {
	entry.UserID = user.ID
	if err := entry.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid log entry")
	}

	if _, err := uc.Get(ctx, user, entry.ID); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Log().Update(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update log entry", goerr.V("logID", entry.ID))
	}

	return updated, nil
}

// Delete removes a log entry. Linked finance records are left in place: the
// link is a weak reference and deletion never cascades.
func (uc *LogUseCase) Delete(ctx context.Context, user *model.User, id types.LogID) error {
	if _, err := uc.Get(ctx, user, id); err != nil {
		return err
	}

	if err := uc.repo.Log().Delete(ctx, user.ID, id); err != nil {
		return goerr.Wrap(err, "failed to delete log entry", goerr.V("logID", id))
	}

	return nil
}

// BulkSync imports guest-side logs into the authenticated user's account.
// Entries are re-keyed to the target user; guest quota does not apply since
// the target account is registered.
func (uc *LogUseCase) BulkSync(ctx context.Context, user *model.User, entries []*model.LogEntry) (int, error) {
	if user.IsGuest() {
		return 0, goerr.Wrap(ErrGuestNotAllowed, "bulk sync requires a registered account")
	}

	imported := make([]*model.LogEntry, 0, len(entries))
	for _, entry := range entries {
		cloned := entry.Clone()
		cloned.UserID = user.ID
		if err := cloned.Validate(); err != nil {
			logging.From(ctx).Warn("skipping invalid entry in bulk sync",
				slog.Any("error", err),
				slog.String("log_id", cloned.ID.String()),
			)
			continue
		}
		imported = append(imported, cloned)
	}

	if len(imported) == 0 {
		return 0, nil
	}

	if err := uc.repo.Log().BulkUpsert(ctx, imported); err != nil {
		return 0, goerr.Wrap(err, "failed to bulk upsert logs", goerr.V("count", len(imported)))
	}

	return len(imported), nil
}
