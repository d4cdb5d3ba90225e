package types

import "github.com/google/uuid"

// UserID identifies a user. GuestUserID is the sentinel owner of
// anonymous/local-only entries.
type UserID string

// GuestUserID is the sentinel user ID for anonymous mode
const GuestUserID UserID = "guest_local"

// IsGuest reports whether the ID is the guest sentinel
func (id UserID) IsGuest() bool {
	return id == GuestUserID
}

func (id UserID) String() string {
	return string(id)
}

// NewUserID generates a new random user ID
func NewUserID() UserID {
	return UserID(uuid.NewString())
}

// LogID identifies a log entry
type LogID string

func (id LogID) String() string {
	return string(id)
}

// NewLogID generates a new random log ID
func NewLogID() LogID {
	return LogID(uuid.NewString())
}

// RecordID identifies a finance record
type RecordID string

func (id RecordID) String() string {
	return string(id)
}

// NewRecordID generates a new random finance record ID
func NewRecordID() RecordID {
	return RecordID(uuid.NewString())
}
