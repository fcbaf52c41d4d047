package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"inkpress/auth"
	"inkpress/internal/logger"
	"inkpress/models"
)

var (
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 6

// UserStore is the persistence surface AuthService needs for users.
// *repositories.UserRepository satisfies it.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) (*mongo.InsertOneResult, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// AuthResult pairs an issued token with its user.
type AuthResult struct {
	Token string
	User  *models.User
}

// AuthService handles registration, login and the current-user lookup.
type AuthService struct {
	users UserStore
	jwt   *auth.JWTManager
}

func NewAuthService(users UserStore, jwt *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Register creates a new admin account and returns an issued token plus the
// user. Emails are unique case-insensitively.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Name:         name,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if _, err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	token, err := s.jwt.Sign(user)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	logger.Log.Infof("registered admin user %s", user.Email)
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and returns a fresh token plus the user.
// Unknown email and wrong password yield the same error so callers cannot
// probe which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, auth.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.SetLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	user.LastLogin = &now

	token, err := s.jwt.Sign(user)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// CurrentUser returns the user behind the principal.
func (s *AuthService) CurrentUser(p *auth.Principal) (*models.User, error) {
	if err := auth.RequireAuth(p); err != nil {
		return nil, err
	}
	return p.User, nil
}
