package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/interfaces"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/service/analytics"
)

// AnalyticsUseCase resolves a period, filters the user's logs and aggregates
// them into per-category totals
type AnalyticsUseCase struct {
	repo     interfaces.Repository
	location *time.Location
}

func newAnalyticsUseCase(repo interfaces.Repository, loc *time.Location) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo, location: loc}
}

// SummaryResult carries the aggregation plus the resolved boundaries so the
// caller can render the window alongside the totals
type SummaryResult struct {
	Period  types.PeriodType   `json:"period"`
	Start   time.Time          `json:"start"`
	End     time.Time          `json:"end"`
	Summary *analytics.Summary `json:"summary"`
}

// Summary aggregates the user's logs within the period containing date
func (uc *AnalyticsUseCase) Summary(ctx context.Context, user *model.User, period types.PeriodType, date time.Time) (*SummaryResult, error) {
	logs, rng, err := logsInPeriod(ctx, uc.repo, user.ID, period, date, uc.location)
	if err != nil {
		return nil, err
	}

	return &SummaryResult{
		Period:  period,
		Start:   rng.Start,
		End:     rng.End,
		Summary: analytics.Aggregate(logs),
	}, nil
}

// logsInPeriod is the shared resolve-then-filter step used by analytics,
// insight and export flows
func logsInPeriod(ctx context.Context, repo interfaces.Repository, userID types.UserID, period types.PeriodType, date time.Time, loc *time.Location) ([]*model.LogEntry, analytics.Range, error) {
	rng, err := analytics.ResolvePeriod(date, period, loc)
	if err != nil {
		return nil, analytics.Range{}, goerr.Wrap(err, "failed to resolve period", goerr.V("period", period))
	}

	logs, err := repo.Log().List(ctx, userID)
	if err != nil {
		return nil, analytics.Range{}, goerr.Wrap(err, "failed to list logs")
	}

	return analytics.FilterByRange(logs, rng), rng, nil
}
