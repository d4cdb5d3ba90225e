package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/chunpat/life-pulse-ai/pkg/domain/interfaces"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

const (
	tokenIssuer = "life-pulse-ai"
	tokenTTL    = 30 * 24 * time.Hour
)

// AuthUseCase handles registration, login and token verification
type AuthUseCase struct {
	repo   interfaces.Repository
	secret []byte
}

func newAuthUseCase(repo interfaces.Repository, secret []byte) *AuthUseCase {
	return &AuthUseCase{repo: repo, secret: secret}
}

// Register creates an account and returns the user with a signed token
func (uc *AuthUseCase) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", goerr.Wrap(ErrInvalidCredentials, "email and password are required")
	}

	if _, err := uc.repo.User().GetByEmail(ctx, email); err == nil {
		return nil, "", goerr.Wrap(ErrEmailTaken, "email already in use", goerr.V("email", email))
	} else if !isNotFound(err) {
		return nil, "", goerr.Wrap(err, "failed to check email", goerr.V("email", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to hash password")
	}

	user, err := uc.repo.User().Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		Status:       types.UserStatusAuthenticated,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to create user", goerr.V("email", email))
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", goerr.Wrap(ErrInvalidCredentials, "unknown email")
		}
		return nil, "", goerr.Wrap(err, "failed to look up user", goerr.V("email", email))
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", goerr.Wrap(ErrInvalidCredentials, "password mismatch")
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// VerifyToken validates a bearer token and loads its user
func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, uc.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidCredentials, "invalid token", goerr.V("cause", err.Error()))
	}

	user, err := uc.repo.User().Get(ctx, types.UserID(parsed.Subject()))
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrInvalidCredentials, "token subject no longer exists")
		}
		return nil, goerr.Wrap(err, "failed to load token subject")
	}

	return user, nil
}

func (uc *AuthUseCase) issueToken(user *model.User) (string, error) {
	if len(uc.secret) == 0 {
		return "", goerr.New("jwt secret is not configured")
	}

	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(user.ID.String()).
		IssuedAt(now).
		Expiration(now.Add(tokenTTL)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, uc.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}

	return string(signed), nil
}
