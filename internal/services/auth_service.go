package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zennexify/internal/models"
	"zennexify/internal/repositories"
	"zennexify/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// Registration holds the fields accepted at sign-up. Only username, email
// and password are required.
type Registration struct {
	Username   string
	Email      string
	Password   string
	Name       string
	DOB        *time.Time
	PANCard    string
	AadharCard string
	Phone      string
	GstID      string
}

// ProfileInput is a profile update. Password and DOB are optional.
type ProfileInput struct {
	Name       string
	DOB        *time.Time
	PANCard    string
	AadharCard string
	Phone      string
	GstID      string
	Password   string
}

// Identity is the authenticated subject.
type Identity struct {
	ID    string
	Email string
}

// AuthService handles business logic for authentication and user profiles.
type AuthService struct {
	users  repositories.UserRepository
	tokens *TokenService
	events EventPublisher
	log    *logger.Logger
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(users repositories.UserRepository, tokens *TokenService, events EventPublisher, log *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		events: events,
		log:    log,
	}
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password and returns it.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*models.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = NormalizeEmail(reg.Email)
	if err := requireFields(map[string]string{
		"username": reg.Username,
		"email":    reg.Email,
		"password": reg.Password,
	}); err != nil {
		return nil, err
	}

	if err := s.checkAvailable(ctx, reg.Username, reg.Email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:   reg.Username,
		Email:      reg.Email,
		Password:   hash,
		Name:       reg.Name,
		DOB:        reg.DOB,
		PANCard:    reg.PANCard,
		AadharCard: reg.AadharCard,
		Phone:      reg.Phone,
		GstID:      reg.GstID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.WithOp("Register").WithField("user_id", user.ID).Info("user registered")
	publishEvent(s.events, s.log, EventUserRegistered, map[string]string{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
	return user, nil
}

func (s *AuthService) checkAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

// Authenticate checks a password against the stored hash.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	email = NormalizeEmail(email)
	if err := requireFields(map[string]string{"email": email, "password": password}); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}

// Login authenticates and issues a token for the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *Identity, error) {
	identity, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(identity.ID, identity.Email)
	if err != nil {
		return "", nil, err
	}
	s.log.WithOp("Login").WithField("user_id", identity.ID).Info("user logged in")
	return token, identity, nil
}

// IssueToken signs a token for an already registered user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return s.tokens.Issue(user.ID, user.Email)
}

// GetUser returns a user by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a profile update on behalf of actorID. Users may only
// update their own profile. The password is re-hashed only when supplied.
func (s *AuthService) UpdateProfile(ctx context.Context, actorID, userID string, in ProfileInput) (*models.User, error) {
	if err := requireFields(map[string]string{
		"userId":      userID,
		"name":        in.Name,
		"PAN_card":    in.PANCard,
		"Aadhar_card": in.AadharCard,
		"phone":       in.Phone,
		"Gst_id":      in.GstID,
	}); err != nil {
		return nil, err
	}
	if actorID != userID {
		return nil, ErrForbidden
	}

	update := models.ProfileUpdate{
		Name:       &in.Name,
		DOB:        in.DOB,
		PANCard:    &in.PANCard,
		AadharCard: &in.AadharCard,
		Phone:      &in.Phone,
		GstID:      &in.GstID,
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.log.WithOp("UpdateProfile").WithField("user_id", userID).Info("profile updated")
	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &ValidationError{
			Message: MsgValidationFailed,
			Fields:  map[string]string{"password": "must be at most 72 bytes"},
		}
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
