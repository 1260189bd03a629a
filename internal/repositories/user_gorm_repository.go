package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zennexify/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

// UpdateProfile writes only the fields present in update and returns the
// stored record.
func (r *GORMUserRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	columns := profileColumns(update)
	if len(columns) > 0 {
		err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(columns).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update user %s: %w", id, err)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *GORMUserRepository) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", arg, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", arg, err)
	}
	return &user, nil
}

func profileColumns(update models.ProfileUpdate) map[string]interface{} {
	columns := make(map[string]interface{})
	if update.Name != nil {
		columns["name"] = *update.Name
	}
	if update.DOB != nil {
		columns["dob"] = *update.DOB
	}
	if update.PANCard != nil {
		columns["pan_card"] = *update.PANCard
	}
	if update.AadharCard != nil {
		columns["aadhar_card"] = *update.AadharCard
	}
	if update.Phone != nil {
		columns["phone"] = *update.Phone
	}
	if update.GstID != nil {
		columns["gst_id"] = *update.GstID
	}
	if update.PasswordHash != nil {
		columns["password"] = *update.PasswordHash
	}
	return columns
}

// isDuplicateKeyError recognises unique violations whether or not the
// dialector translated them.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
