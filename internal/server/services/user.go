// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, password changes and
// session-token validation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recipebox/recipebox/internal/common"
	"github.com/recipebox/recipebox/internal/server/auth"
	"github.com/recipebox/recipebox/internal/server/config"
	"github.com/recipebox/recipebox/internal/server/models"
	"github.com/recipebox/recipebox/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users and issue a session token
// - Login: verify credentials and issue a session token
// - UpdatePassword: replace the stored hash after reverifying the caller
// - ValidateToken: resolve a bearer token to a user id
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
	}
}

// Register creates a new user and returns the sanitized account plus a fresh
// session token. The email must not be taken: a repository lookup gives the
// friendly fast-path error, the unique constraint the authoritative one —
// both surface as common.ErrorDuplicateEmail.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.PublicUser, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, "", fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if password == "" {
		return nil, "", fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrorDuplicateEmail
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", common.ErrorInternal
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, "", common.ErrorDuplicateEmail
		}
		return nil, "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user.Public(), token, nil
}

// Login verifies email+password and, on success, returns the sanitized user
// and a session token. Unknown email and wrong password both return
// common.ErrorInvalidCredentials; the unknown-email path burns a bcrypt
// comparison so the two failures cost the same.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user.Public(), token, nil
}

// UpdatePassword replaces the caller's password hash after verifying the
// current password. No token is reissued; existing tokens stay valid.
func (s *UserService) UpdatePassword(ctx context.Context, callerUserID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return common.ErrorInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return common.ErrorInternal
	}

	if err := repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}

// ValidateToken resolves a session token to the embedded user id. Invalid or
// expired tokens return common.ErrInvalidToken / common.ErrTokenExpired.
func (s *UserService) ValidateToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
