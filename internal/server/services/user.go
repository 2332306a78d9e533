// Package services contains server-side business logic: accounts, the
// wardrobe, AI outfit suggestions, the marketplace, chat history and share links.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/server/auth"
	"github.com/outfitai/outfitai/internal/server/config"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/outfitai/outfitai/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxUsernameLength = 32
)

// bcryptCost is lowered in tests.
var bcryptCost = bcrypt.DefaultCost

// UserService handles registration, login and session token issue.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	tokenTTL    time.Duration

	// dummyHash is compared against when the username is unknown so a
	// failed login costs the same either way.
	dummyHash []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("outfitai-dummy-password"), bcryptCost)
	return &UserService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		tokenTTL:    cfg.TokenValidityDuration,
		dummyHash:   dummy,
	}
}

// TokenTTL is the lifetime of issued session tokens.
func (s *UserService) TokenTTL() time.Duration { return s.tokenTTL }

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.Detail(common.ErrorValidation, "Username and password are required")
	}
	if len(username) > maxUsernameLength {
		return nil, common.Detail(common.ErrorValidation, fmt.Sprintf("Username must be at most %d characters", maxUsernameLength))
	}
	if len(password) < minPasswordLength {
		return nil, common.Detail(common.ErrorValidation, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.Detail(common.ErrorAlreadyExists, "User already exists")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the password and returns the user with a fresh session token.
// Unknown usernames and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.IssueToken(auth.Identity{SubjectID: user.ID, Username: user.UserName}, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Me loads the account behind a verified identity. A token can outlive its
// account, so a missing row is reported as "User not found".
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Detail(common.ErrorNotFound, "User not found")
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}
