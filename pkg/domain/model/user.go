package model

import (
	"time"

	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// User represents an account. Guest users are quota-limited and may hold
// local-only data until they register.
type User struct {
	ID           types.UserID     `firestore:"id" json:"id"`
	Name         string           `firestore:"name" json:"name"`
	Email        string           `firestore:"email,omitempty" json:"email,omitempty"`
	Status       types.UserStatus `firestore:"status" json:"status"`
	PasswordHash []byte           `firestore:"password_hash" json:"-"`
	CreatedAt    time.Time        `firestore:"created_at" json:"createdAt"`
}

// IsGuest reports whether the user is quota-limited
func (u *User) IsGuest() bool {
	return u == nil || u.Status != types.UserStatusAuthenticated
}

// NewGuestUser returns the anonymous guest user
func NewGuestUser() *User {
	return &User{
		ID:     types.GuestUserID,
		Name:   "Guest",
		Status: types.UserStatusGuest,
	}
}
