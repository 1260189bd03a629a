package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zennexify/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, enforcing unique username and email.
func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	if !models.IsHashedPassword(user.Password) {
		return models.ErrPlaintextPassword
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by username.
func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(username, func(u models.User) bool { return u.Username == username })
}

// GetByEmail returns a user by email.
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(email, func(u models.User) bool { return u.Email == email })
}

// GetByID returns a user by its ID.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields of update.
func (r *MemoryUserRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if update.IsEmpty() {
		return &user, nil
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.DOB != nil {
		dob := *update.DOB
		user.DOB = &dob
	}
	if update.PANCard != nil {
		user.PANCard = *update.PANCard
	}
	if update.AadharCard != nil {
		user.AadharCard = *update.AadharCard
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.GstID != nil {
		user.GstID = *update.GstID
	}
	if update.PasswordHash != nil {
		user.Password = *update.PasswordHash
	}
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return &user, nil
}

func (r *MemoryUserRepository) find(key string, match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", key, ErrNotFound)
}
