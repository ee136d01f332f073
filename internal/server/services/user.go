// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks, and
// issuing/verifying session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dstepanenko/storefront/internal/common"
	"github.com/dstepanenko/storefront/internal/cryptox"
	"github.com/dstepanenko/storefront/internal/server/auth"
	"github.com/dstepanenko/storefront/internal/server/config"
	"github.com/dstepanenko/storefront/internal/server/models"
	"github.com/dstepanenko/storefront/internal/server/repositories/repomanager"
)

// Session is an issued token together with the expiry stamped into it.
// ExpiresAt doubles as the cookie expiry attribute so both always agree.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// UserService provides authentication-related operations:
// - Register: create accounts
// - Login: verify credentials and mint a session token
// - VerifySession: validate a presented token and recover its claims
//
// Sessions are stateless: the token itself carries the identity, nothing is
// stored server-side, and logout is a client-side cookie removal.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	codec                 *auth.Codec
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		codec:                 auth.NewCodec([]byte(cfg.SecretKey)),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new account with the given email, plaintext password,
// and profile. The password is digested before it reaches storage. A taken
// email yields common.ErrorDuplicateEmail, whether it is caught by the
// advisory Exists check or by the unique constraint underneath.
func (s *UserService) Register(ctx context.Context, email, password string, profile models.Profile) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	exists, err := repo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, common.ErrorDuplicateEmail
	}

	user := &models.User{
		Email:    email,
		Password: cryptox.HashPassword(password),
		Profile:  profile,
	}
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the email/password pair and, on success, returns a fresh
// session. Unknown email and wrong password both come back as
// common.ErrorInvalidCredentials so the two cases are indistinguishable to
// the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)

	ok, err := repo.Matches(ctx, email, cryptox.HashPassword(password))
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorInvalidCredentials
	}

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	claims := &auth.Claims{
		Email:     user.Email,
		Firstname: user.Profile.Firstname,
		Lastname:  user.Profile.Lastname,
		Gender:    user.Profile.Gender,
		Birthday:  user.Profile.Birthday,
	}
	token, err := s.codec.Encode(claims, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// VerifySession checks a presented session token. An empty token means no
// session was presented at all (common.ErrorNoSession); any token that fails
// signature, expiry, or structural checks is common.ErrorInvalidSession.
func (s *UserService) VerifySession(token string) (*auth.Claims, error) {
	if token == "" {
		return nil, common.ErrorNoSession
	}
	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, common.ErrorInvalidSession
	}
	return claims, nil
}
