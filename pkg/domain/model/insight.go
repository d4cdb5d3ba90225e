package model

import (
	"fmt"
	"time"

	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// Insight is an AI-generated narrative summary of a filtered log set
type Insight struct {
	Text        string           `json:"text"`
	Period      types.PeriodType `json:"period"`
	Date        string           `json:"date"`
	Fingerprint string           `json:"-"`
	Cached      bool             `json:"cached"`
	Fallback    bool             `json:"fallback,omitempty"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// Fingerprint computes a cheap identity proxy for a log collection's state:
// entry count, first entry's ID and first entry's timestamp. "First" means
// index 0 of the caller's ordering (most-recent-first). Any change to the
// set's size, newest ID or newest timestamp yields a different fingerprint.
func Fingerprint(logs []*LogEntry) string {
	var firstID types.LogID
	var firstTS int64
	if len(logs) > 0 {
		firstID = logs[0].ID
		firstTS = logs[0].Timestamp
	}
	return fmt.Sprintf("%d-%s-%d", len(logs), firstID, firstTS)
}
