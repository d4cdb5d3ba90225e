package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// insightClient implements InsightService on top of a gollem LLM client
type insightClient struct {
	llmClient gollem.LLMClient
}

// NewInsight creates an InsightService backed by the given LLM client
func NewInsight(llmClient gollem.LLMClient) (InsightService, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &insightClient{llmClient: llmClient}, nil
}

const insightSystemPrompt = "Keep it under 3 sentences. Be supportive and analytical."

var periodNoun = map[types.PeriodType]string{
	types.PeriodDay:   "day",
	types.PeriodWeek:  "week",
	types.PeriodMonth: "month",
}

// Generate produces a short motivating summary of where the time in the
// filtered set went and how to improve.
func (c *insightClient) Generate(ctx context.Context, logs []*model.LogEntry, period types.PeriodType, lang string) (string, error) {
	if len(logs) == 0 {
		return "", goerr.New("log set is empty")
	}

	items := make([]string, 0, len(logs))
	for _, l := range logs {
		items = append(items, fmt.Sprintf("%s (%dm, %s)", l.Activity, l.DurationMinutes, l.Category))
	}

	systemPrompt := insightSystemPrompt
	if lang != "" {
		systemPrompt += fmt.Sprintf(" Respond in %s.", lang)
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	noun := periodNoun[period]
	if noun == "" {
		noun = "period"
	}
	prompt := fmt.Sprintf(
		"Review my %s and provide a short, motivating summary or insight about where my time went and how I can improve: %s",
		noun, strings.Join(items, ", "))

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate insight from LLM")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("LLM insight returned empty result")
	}

	return strings.TrimSpace(strings.Join(resp.Texts, "\n")), nil
}
