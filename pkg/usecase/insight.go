package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/singleflight"

	"github.com/chunpat/life-pulse-ai/pkg/domain/interfaces"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/service/llm"
)

// Static texts returned without calling the LLM
const (
	guestInsightText = "Sign in to unlock AI insights about your day."
	emptyInsightText = "No logs in this period yet. Start logging to get insights!"
	insightFallback  = "Insights are taking a break. Your logs are safe; try again in a moment."
)

const slotDateFormat = "2006-01-02"

type slotKey struct {
	period types.PeriodType
	date   string
}

func (k slotKey) String() string {
	return string(k.period) + ":" + k.date
}

// insightSlot is one cache cell. seq increments whenever a new fingerprint is
// observed for the slot; a finished generation only stores its result while
// its own seq is still current, so late responses for an outdated log set are
// discarded instead of overwriting fresher state.
type insightSlot struct {
	fingerprint string
	text        string
	generatedAt time.Time
	seq         uint64
}

// InsightUseCase caches AI-generated narratives per (period, date) slot and
// regenerates only when the underlying log set's fingerprint changes
type InsightUseCase struct {
	repo     interfaces.Repository
	insight  llm.InsightService
	location *time.Location
	language string

	mu    sync.Mutex
	slots map[slotKey]*insightSlot
	group singleflight.Group

	now func() time.Time
}

func newInsightUseCase(repo interfaces.Repository, insight llm.InsightService, loc *time.Location, lang string) *InsightUseCase {
	return &InsightUseCase{
		repo:     repo,
		insight:  insight,
		location: loc,
		language: lang,
		slots:    map[slotKey]*insightSlot{},
		now:      time.Now,
	}
}

// Enabled reports whether an insight service is configured
func (uc *InsightUseCase) Enabled() bool {
	return uc.insight != nil
}

func (uc *InsightUseCase) slot(key slotKey) *insightSlot {
	if s, ok := uc.slots[key]; ok {
		return s
	}
	s := &insightSlot{}
	uc.slots[key] = s
	return s
}

// DailyInsight serves the default slot (day, today). It returns the cached
// text when the stored fingerprint still matches the current log set and
// regenerates otherwise. Guests and empty periods get static texts without
// any LLM call.
func (uc *InsightUseCase) DailyInsight(ctx context.Context, user *model.User) (*model.Insight, error) {
	today := uc.now().In(uc.location)
	key := slotKey{period: types.PeriodDay, date: today.Format(slotDateFormat)}

	if user.IsGuest() {
		return uc.staticInsight(key, guestInsightText), nil
	}

	logs, _, err := logsInPeriod(ctx, uc.repo, user.ID, key.period, today, uc.location)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return uc.staticInsight(key, emptyInsightText), nil
	}

	fp := model.Fingerprint(logs)

	uc.mu.Lock()
	s := uc.slot(key)
	if s.fingerprint == fp && s.text != "" {
		ins := uc.cachedInsight(key, s)
		uc.mu.Unlock()
		return ins, nil
	}
	s.seq++
	seq := s.seq
	uc.mu.Unlock()

	return uc.generate(ctx, key, fp, seq, logs)
}

// Generate regenerates the insight for an arbitrary slot. Non-default slots
// are never generated on fetch; this explicit trigger always calls the LLM,
// even when the fingerprint is unchanged.
func (uc *InsightUseCase) Generate(ctx context.Context, user *model.User, period types.PeriodType, date time.Time) (*model.Insight, error) {
	local := date.In(uc.location)
	key := slotKey{period: period, date: local.Format(slotDateFormat)}

	if user.IsGuest() {
		return uc.staticInsight(key, guestInsightText), nil
	}

	logs, _, err := logsInPeriod(ctx, uc.repo, user.ID, period, local, uc.location)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return uc.staticInsight(key, emptyInsightText), nil
	}

	fp := model.Fingerprint(logs)

	uc.mu.Lock()
	s := uc.slot(key)
	s.seq++
	seq := s.seq
	uc.mu.Unlock()

	return uc.generate(ctx, key, fp, seq, logs)
}

// Cached returns the stored insight for a slot without triggering generation,
// or nil when the slot holds nothing usable for the current log set.
func (uc *InsightUseCase) Cached(ctx context.Context, user *model.User, period types.PeriodType, date time.Time) (*model.Insight, error) {
	local := date.In(uc.location)
	key := slotKey{period: period, date: local.Format(slotDateFormat)}

	if user.IsGuest() {
		return uc.staticInsight(key, guestInsightText), nil
	}

	logs, _, err := logsInPeriod(ctx, uc.repo, user.ID, period, local, uc.location)
	if err != nil {
		return nil, err
	}

	fp := model.Fingerprint(logs)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.slots[key]
	if !ok || s.text == "" || s.fingerprint != fp {
		return nil, nil
	}
	return uc.cachedInsight(key, s), nil
}

func (uc *InsightUseCase) generate(ctx context.Context, key slotKey, fp string, seq uint64, logs []*model.LogEntry) (*model.Insight, error) {
	if uc.insight == nil {
		return uc.staticInsight(key, insightFallback), goerr.Wrap(ErrInsightGeneration, "insight service is not configured")
	}

	// Concurrent requests for the same slot+fingerprint share one LLM call
	sfKey := key.String() + "@" + fp
	text, err, _ := uc.group.Do(sfKey, func() (any, error) {
		return uc.insight.Generate(ctx, logs, key.period, uc.language)
	})
	if err != nil {
		uc.mu.Lock()
		uc.slot(key).fingerprint = ""
		uc.mu.Unlock()
		ins := uc.staticInsight(key, insightFallback)
		ins.Fallback = true
		return ins, goerr.Wrap(ErrInsightGeneration, "generation failed",
			goerr.V("slot", key.String()),
			goerr.V("cause", err.Error()),
		)
	}

	generatedAt := uc.now()

	uc.mu.Lock()
	s := uc.slot(key)
	if s.seq == seq {
		s.fingerprint = fp
		s.text = text.(string)
		s.generatedAt = generatedAt
	}
	uc.mu.Unlock()

	return &model.Insight{
		Text:        text.(string),
		Period:      key.period,
		Date:        key.date,
		Fingerprint: fp,
		GeneratedAt: generatedAt,
	}, nil
}

func (uc *InsightUseCase) staticInsight(key slotKey, text string) *model.Insight {
	return &model.Insight{
		Text:        text,
		Period:      key.period,
		Date:        key.date,
		GeneratedAt: uc.now(),
	}
}

func (uc *InsightUseCase) cachedInsight(key slotKey, s *insightSlot) *model.Insight {
	return &model.Insight{
		Text:        s.text,
		Period:      key.period,
		Date:        key.date,
		Fingerprint: s.fingerprint,
		Cached:      true,
		GeneratedAt: s.generatedAt,
	}
}
