package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/repository/memory"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
)

type mockInsight struct {
	texts []string
	errs  []error
	calls int
}

func (m *mockInsight) Generate(ctx context.Context, logs []*model.LogEntry, period types.PeriodType, lang string) (string, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.texts) {
		return m.texts[i], nil
	}
	return fmt.Sprintf("insight #%d", i), nil
}

func TestInsightUseCase_FingerprintCache(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := &mockInsight{texts: []string{"busy but balanced day", "even busier day"}}
	uc := usecase.New(repo, usecase.WithInsightService(gen))
	user := authedUser()

	_, err := uc.Log.Create(ctx, user, newEntry("deep work", types.CategoryWork, 120))
	gt.NoError(t, err).Required()

	t.Run("first fetch generates", func(t *testing.T) {
		ins, err := uc.Insight.DailyInsight(ctx, user)
		gt.NoError(t, err).Required()
		gt.Value(t, ins.Text).Equal("busy but balanced day")
		gt.B(t, ins.Cached).False()
		gt.Value(t, gen.calls).Equal(1)
	})

	t.Run("unchanged logs serve the cache", func(t *testing.T) {
		ins, err := uc.Insight.DailyInsight(ctx, user)
		gt.NoError(t, err).Required()
		gt.Value(t, ins.Text).Equal("busy but balanced day")
		gt.B(t, ins.Cached).True()
		gt.Value(t, gen.calls).Equal(1)
	})

	t.Run("a new log invalidates the fingerprint", func(t *testing.T) {
		_, err := uc.Log.Create(ctx, user, newEntry("gym", types.CategoryHealth, 60))
		gt.NoError(t, err).Required()

		ins, err := uc.Insight.DailyInsight(ctx, user)
		gt.NoError(t, err).Required()
		gt.Value(t, ins.Text).Equal("even busier day")
		gt.B(t, ins.Cached).False()
		gt.Value(t, gen.calls).Equal(2)
	})
}

func TestInsightUseCase_FailureClearsFingerprint(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := &mockInsight{
		texts: []string{"", "recovered insight"},
		errs:  []error{errors.New("model overloaded"), nil},
	}
	uc := usecase.New(repo, usecase.WithInsightService(gen))
	user := authedUser()

	_, err := uc.Log.Create(ctx, user, newEntry("reading", types.CategoryLeisure, 40))
	gt.NoError(t, err).Required()

	t.Run("failure returns fallback text and a typed error", func(t *testing.T) {
		ins, err := uc.Insight.DailyInsight(ctx, user)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, usecase.ErrInsightGeneration)).True()
		gt.B(t, ins.Fallback).True()
		gt.Value(t, ins.Text).NotEqual("")
	})

	t.Run("next fetch retries even though logs are unchanged", func(t *testing.T) {
		ins, err := uc.Insight.DailyInsight(ctx, user)
		gt.NoError(t, err).Required()
		gt.Value(t, ins.Text).Equal("recovered insight")
		gt.Value(t, gen.calls).Equal(2)
	})
}

func TestInsightUseCase_StaticTexts(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := &mockInsight{}
	uc := usecase.New(repo, usecase.WithInsightService(gen))

	t.Run("guest never triggers generation", func(t *testing.T) {
		ins, err := uc.Insight.DailyInsight(ctx, model.NewGuestUser())
		gt.NoError(t, err).Required()
		gt.Value(t, ins.Text).NotEqual("")
		gt.Value(t, gen.calls).Equal(0)
	})

	t.Run("empty period never triggers generation", func(t *testing.T) {
		ins, err := uc.Insight.DailyInsight(ctx, authedUser())
		gt.NoError(t, err).Required()
		gt.Value(t, ins.Text).NotEqual("")
		gt.Value(t, gen.calls).Equal(0)
	})

	t.Run("guest cached view is static too", func(t *testing.T) {
		ins, err := uc.Insight.Cached(ctx, model.NewGuestUser(), types.PeriodDay, time.Now())
		gt.NoError(t, err).Required()
		gt.Value(t, ins).NotNil()
		gt.Value(t, ins.Text).NotEqual("")
		gt.Value(t, gen.calls).Equal(0)
	})
}

// gatedInsight blocks each Generate call until the test hands it a reply,
// so completion order can be forced.
type gatedInsight struct {
	started chan chan string
}

func (m *gatedInsight) Generate(ctx context.Context, logs []*model.LogEntry, period types.PeriodType, lang string) (string, error) {
	reply := make(chan string)
	m.started <- reply
	return <-reply, nil
}

func TestInsightUseCase_StaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := &gatedInsight{started: make(chan chan string)}
	uc := usecase.New(repo, usecase.WithInsightService(gen))
	user := authedUser()

	_, err := uc.Log.Create(ctx, user, newEntry("morning run", types.CategoryHealth, 30))
	gt.NoError(t, err).Required()

	// first request stalls while its generation is in flight
	firstDone := make(chan *model.Insight, 1)
	go func() {
		ins, err := uc.Insight.DailyInsight(ctx, user)
		gt.NoError(t, err)
		firstDone <- ins
	}()
	firstReply := <-gen.started

	// a new log lands before the first generation finishes
	_, err = uc.Log.Create(ctx, user, newEntry("lunch", types.CategorySocial, 45))
	gt.NoError(t, err).Required()

	secondDone := make(chan *model.Insight, 1)
	go func() {
		ins, err := uc.Insight.DailyInsight(ctx, user)
		gt.NoError(t, err)
		secondDone <- ins
	}()
	secondReply := <-gen.started

	// the newer generation completes first and populates the slot
	secondReply <- "fresh two-entry summary"
	fresh := <-secondDone
	gt.Value(t, fresh.Text).Equal("fresh two-entry summary")

	// the late result still reaches its own caller
	firstReply <- "stale one-entry summary"
	stale := <-firstDone
	gt.Value(t, stale.Text).Equal("stale one-entry summary")

	// but it must not overwrite the slot: the next fetch serves the fresh
	// text from the cache without another generation
	ins, err := uc.Insight.DailyInsight(ctx, user)
	gt.NoError(t, err).Required()
	gt.B(t, ins.Cached).True()
	gt.Value(t, ins.Text).Equal("fresh two-entry summary")

	select {
	case <-gen.started:
		t.Fatal("unexpected generation for an unchanged log set")
	default:
	}
}

func TestInsightUseCase_ExplicitGenerate(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := &mockInsight{texts: []string{"week one", "week two"}}
	uc := usecase.New(repo, usecase.WithInsightService(gen))
	user := authedUser()

	_, err := uc.Log.Create(ctx, user, newEntry("sprint work", types.CategoryWork, 300))
	gt.NoError(t, err).Required()

	now := time.Now()

	t.Run("explicit trigger always regenerates", func(t *testing.T) {
		first, err := uc.Insight.Generate(ctx, user, types.PeriodWeek, now)
		gt.NoError(t, err).Required()
		gt.Value(t, first.Text).Equal("week one")

		// same fingerprint, still a fresh call
		second, err := uc.Insight.Generate(ctx, user, types.PeriodWeek, now)
		gt.NoError(t, err).Required()
		gt.Value(t, second.Text).Equal("week two")
		gt.Value(t, gen.calls).Equal(2)
	})

	t.Run("cached view serves the stored slot without a call", func(t *testing.T) {
		ins, err := uc.Insight.Cached(ctx, user, types.PeriodWeek, now)
		gt.NoError(t, err).Required()
		gt.Value(t, ins).NotNil()
		gt.Value(t, ins.Text).Equal("week two")
		gt.B(t, ins.Cached).True()
		gt.Value(t, gen.calls).Equal(2)
	})

	t.Run("unpopulated slot has no cached view", func(t *testing.T) {
		ins, err := uc.Insight.Cached(ctx, user, types.PeriodMonth, now)
		gt.NoError(t, err).Required()
		gt.Value(t, ins).Nil()
	})
}
