package analytics

import "github.com/chunpat/life-pulse-ai/pkg/domain/model"

// FilterByRange returns the subset of entries whose timestamp lies within the
// resolved range, inclusive on both bounds. Input order is preserved; callers
// hand in most-recent-first collections and get the same ordering back. The
// result is never nil.
func FilterByRange(logs []*model.LogEntry, r Range) []*model.LogEntry {
	filtered := make([]*model.LogEntry, 0, len(logs))
	for _, entry := range logs {
		if r.Contains(entry.Timestamp) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
