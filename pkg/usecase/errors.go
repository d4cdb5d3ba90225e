package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/repository/firestore"
	"github.com/chunpat/life-pulse-ai/pkg/repository/memory"
)

// Sentinel errors for the use case layer. All of them are expected,
// non-fatal outcomes converted to user-visible responses at the boundary.
var (
	// Not found errors
	ErrLogNotFound    = goerr.New("log entry not found")
	ErrRecordNotFound = goerr.New("finance record not found")
	ErrUserNotFound   = goerr.New("user not found")

	// External call failures
	ErrParseFailed       = goerr.New("failed to parse note with AI")
	ErrInsightGeneration = goerr.New("failed to generate AI insight")

	// Quota and access errors
	ErrGuestQuotaExceeded = goerr.New("guest log quota exceeded")
	ErrPermissionDenied   = goerr.New("permission denied")
	ErrGuestNotAllowed    = goerr.New("operation requires a registered account")

	// Auth errors
	ErrInvalidCredentials = goerr.New("invalid credentials")
	ErrEmailTaken         = goerr.New("email is already registered")
)

// isNotFound matches the not-found sentinel of either repository backend
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}
