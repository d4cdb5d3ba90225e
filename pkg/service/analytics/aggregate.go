package analytics

import (
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// CategoryTotal is the summed duration of one category within a filtered set
type CategoryTotal struct {
	Category types.Category `json:"category"`
	Minutes  int            `json:"minutes"`
}

// Summary is the chart-ready reduction of a filtered log set. Categories are
// ordered by first appearance in the input; categories without entries are
// omitted. The aggregation key is always the category enum value, never a
// localized display label.
type Summary struct {
	TotalMinutes int             `json:"totalMinutes"`
	Entries      int             `json:"entries"`
	Categories   []CategoryTotal `json:"categories"`
	TopMood      string          `json:"topMood,omitempty"`
}

// Hours returns the whole-hour part of the total duration
func (s *Summary) Hours() int {
	return s.TotalMinutes / 60
}

// RemMinutes returns the minute remainder of the total duration
func (s *Summary) RemMinutes() int {
	return s.TotalMinutes % 60
}

// Aggregate reduces a filtered log set into per-category duration totals and
// a total-duration statistic. The sum of category minutes always equals
// TotalMinutes.
func Aggregate(logs []*model.LogEntry) *Summary {
	summary := &Summary{
		Entries:    len(logs),
		Categories: []CategoryTotal{},
	}

	index := make(map[types.Category]int)
	moodCount := make(map[string]int)
	var topMood string

	for _, entry := range logs {
		summary.TotalMinutes += entry.DurationMinutes

		if i, ok := index[entry.Category]; ok {
			summary.Categories[i].Minutes += entry.DurationMinutes
		} else {
			index[entry.Category] = len(summary.Categories)
			summary.Categories = append(summary.Categories, CategoryTotal{
				Category: entry.Category,
				Minutes:  entry.DurationMinutes,
			})
		}

		if entry.Mood != "" {
			moodCount[entry.Mood]++
			// first-seen wins on ties
			if topMood == "" || moodCount[entry.Mood] > moodCount[topMood] {
				topMood = entry.Mood
			}
		}
	}

	summary.TopMood = topMood
	return summary
}
