package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// LogEntry represents one recorded activity. Timestamp is milliseconds since
// epoch and is the ordering key for all temporal logic. RawText is the
// original unparsed user input and is retained for audit/display.
type LogEntry struct {
	ID              types.LogID    `firestore:"id" json:"id"`
	UserID          types.UserID   `firestore:"user_id" json:"userId"`
	Timestamp       int64          `firestore:"timestamp" json:"timestamp"`
	RawText         string         `firestore:"raw_text" json:"rawText"`
	Activity        string         `firestore:"activity" json:"activity"`
	Category        types.Category `firestore:"category" json:"category"`
	DurationMinutes int            `firestore:"duration_minutes" json:"durationMinutes"`
	Mood            string         `firestore:"mood" json:"mood"`
	Importance      int            `firestore:"importance" json:"importance"`
	Images          []string       `firestore:"images,omitempty" json:"images,omitempty"`
	Location        *Location      `firestore:"location,omitempty" json:"location,omitempty"`
	Tags            []string       `firestore:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt       time.Time      `firestore:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `firestore:"updated_at" json:"updatedAt"`
}

// Location is an optional place attached to a log entry
type Location struct {
	Name string  `firestore:"name" json:"name"`
	Lat  float64 `firestore:"lat" json:"lat"`
	Lon  float64 `firestore:"lon" json:"lon"`
}

// Time returns the entry timestamp as time.Time
func (l *LogEntry) Time() time.Time {
	return time.UnixMilli(l.Timestamp)
}

// Validate checks structural invariants of the log entry
func (l *LogEntry) Validate() error {
	if l.RawText == "" {
		return goerr.New("raw text is required")
	}
	if l.Activity == "" {
		return goerr.New("activity is required")
	}
	if !l.Category.IsValid() {
		return goerr.New("invalid category", goerr.V("category", l.Category))
	}
	if l.DurationMinutes < 0 {
		return goerr.New("duration must be non-negative", goerr.V("durationMinutes", l.DurationMinutes))
	}
	if l.Importance < 1 || l.Importance > 5 {
		return goerr.New("importance must be between 1 and 5", goerr.V("importance", l.Importance))
	}
	return nil
}

// Clone returns a deep copy of the log entry
func (l *LogEntry) Clone() *LogEntry {
	copied := *l
	if l.Images != nil {
		copied.Images = make([]string, len(l.Images))
		copy(copied.Images, l.Images)
	}
	if l.Tags != nil {
		copied.Tags = make([]string, len(l.Tags))
		copy(copied.Tags, l.Tags)
	}
	if l.Location != nil {
		loc := *l.Location
		copied.Location = &loc
	}
	return &copied
}
