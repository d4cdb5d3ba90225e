package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// ParsedLog is the validated result of LLM parsing of a free-text note.
// Payloads missing required fields are rejected at the parse boundary rather
// than defaulted deep into business logic.
type ParsedLog struct {
	Activity        string          `json:"activity"`
	Category        types.Category  `json:"category"`
	DurationMinutes int             `json:"durationMinutes"`
	Mood            string          `json:"mood"`
	Importance      int             `json:"importance"`
	Finance         []ParsedFinance `json:"finance,omitempty"`
}

// ParsedFinance is a finance entry extracted from a note alongside the log
type ParsedFinance struct {
	Type     types.FinanceType `json:"type"`
	Amount   float64           `json:"amount"`
	Category string            `json:"category"`
}

// Validate rejects parse payloads that miss required fields or carry
// out-of-range values
func (p *ParsedLog) Validate() error {
	if p.Activity == "" {
		return goerr.New("parsed activity is empty")
	}
	if !p.Category.IsValid() {
		return goerr.New("parsed category is invalid", goerr.V("category", p.Category))
	}
	if p.DurationMinutes < 0 {
		return goerr.New("parsed duration is negative", goerr.V("durationMinutes", p.DurationMinutes))
	}
	if p.Importance < 1 || p.Importance > 5 {
		return goerr.New("parsed importance is out of range", goerr.V("importance", p.Importance))
	}
	for _, f := range p.Finance {
		if !f.Type.IsValid() {
			return goerr.New("parsed finance type is invalid", goerr.V("type", f.Type))
		}
		if f.Amount < 0 {
			return goerr.New("parsed finance amount is negative", goerr.V("amount", f.Amount))
		}
	}
	return nil
}
