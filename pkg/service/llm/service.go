package llm

import (
	"context"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// ParseService extracts a structured log from a free-text note.
// A failure must surface as a distinguishable error, never a malformed
// success.
type ParseService interface {
	Parse(ctx context.Context, text string, lang string) (*model.ParsedLog, error)
}

// InsightService generates a short natural-language narrative over a filtered
// log set. Idempotence with respect to identical inputs is enforced by the
// caller's fingerprint cache, not here.
type InsightService interface {
	Generate(ctx context.Context, logs []*model.LogEntry, period types.PeriodType, lang string) (string, error)
}
