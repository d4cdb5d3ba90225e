package auth

import (
	"context"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
)

type ctxUserKey struct{}

// ContextWithUser embeds the authenticated (or guest) user into the context
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, user)
}

// UserFromContext extracts the user from the context. Requests that carried
// no valid token resolve to the guest user.
func UserFromContext(ctx context.Context) *model.User {
	if user, ok := ctx.Value(ctxUserKey{}).(*model.User); ok && user != nil {
		return user
	}
	return model.NewGuestUser()
}
