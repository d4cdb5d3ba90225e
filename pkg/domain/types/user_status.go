package types

import "fmt"

// UserStatus distinguishes quota-limited guest users from registered ones
type UserStatus string

const (
	UserStatusGuest         UserStatus = "guest"
	UserStatusAuthenticated UserStatus = "authenticated"
)

// IsValid checks if the user status is valid
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusGuest, UserStatusAuthenticated:
		return true
	default:
		return false
	}
}

// String returns the string representation of the user status
func (s UserStatus) String() string {
	return string(s)
}

// ParseUserStatus parses a string into a UserStatus
func ParseUserStatus(s string) (UserStatus, error) {
	status := UserStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid user status: %s", s)
	}
	return status, nil
}
