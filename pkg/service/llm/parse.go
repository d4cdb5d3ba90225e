package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// parser implements ParseService on top of a gollem LLM client
type parser struct {
	llmClient gollem.LLMClient
}

// NewParser creates a ParseService backed by the given LLM client
func NewParser(llmClient gollem.LLMClient) (ParseService, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &parser{llmClient: llmClient}, nil
}

const parseSystemPrompt = `You are an expert life-logging assistant. Your job is to extract activities and metadata from casual user notes.
- Category must be one of: Work, Leisure, Health, Chores, Social, Other.
- Duration: if not mentioned, estimate a reasonable duration in minutes based on the activity.
- Mood: briefly describe the vibe (e.g. Happy, Tired, Productive).
- Importance: rate from 1 (trivial) to 5 (significant).
- If the note mentions money spent or earned, include each amount as a finance entry.
- If multiple activities are mentioned, focus on the primary one or combine them logically.`

func buildParseSchema() *gollem.Parameter {
	categories := make([]string, 0, len(types.AllCategories()))
	for _, c := range types.AllCategories() {
		categories = append(categories, c.String())
	}

	return &gollem.Parameter{
		Title:       "ParsedLifeLog",
		Description: "Structured fields extracted from a free-text life log note",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"activity": {
				Type:        gollem.TypeString,
				Description: "Short name of the primary activity",
				Required:    true,
			},
			"category": {
				Type:        gollem.TypeString,
				Description: "One of: Work, Leisure, Health, Chores, Social, Other",
				Enum:        categories,
				Required:    true,
			},
			"durationMinutes": {
				Type:        gollem.TypeInteger,
				Description: "Duration in minutes; estimate when not stated",
				Required:    true,
			},
			"mood": {
				Type:        gollem.TypeString,
				Description: "Brief mood description",
				Required:    true,
			},
			"importance": {
				Type:        gollem.TypeInteger,
				Description: "1 (trivial) to 5 (significant)",
				Required:    true,
			},
			"finance": {
				Type:        gollem.TypeArray,
				Description: "Money movements mentioned in the note, if any",
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"type": {
							Type:        gollem.TypeString,
							Description: "EXPENSE or INCOME",
							Enum:        []string{"EXPENSE", "INCOME"},
							Required:    true,
						},
						"amount": {
							Type:        gollem.TypeNumber,
							Description: "Non-negative amount",
							Required:    true,
						},
						"category": {
							Type:        gollem.TypeString,
							Description: "Free text spending category",
							Required:    true,
						},
					},
				},
			},
		},
	}
}

// Parse extracts structured fields from a free-text note. The result is
// validated before it is returned; a payload missing required fields is a
// parse failure, not a defaulted success.
func (p *parser) Parse(ctx context.Context, text string, lang string) (*model.ParsedLog, error) {
	if text == "" {
		return nil, goerr.New("text is empty")
	}

	systemPrompt := parseSystemPrompt
	if lang != "" {
		systemPrompt += fmt.Sprintf("\n- Write all text fields (activity, mood) in %s.", lang)
	}

	session, err := p.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildParseSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	prompt := fmt.Sprintf("Parse the following daily log note into a structured JSON object: %q", text)
	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("LLM parse returned empty result")
	}

	var parsed model.ParsedLog
	if err := json.Unmarshal([]byte(resp.Texts[0]), &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	if err := parsed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "LLM returned incomplete parse result", goerr.V("response", resp.Texts[0]))
	}

	return &parsed, nil
}
