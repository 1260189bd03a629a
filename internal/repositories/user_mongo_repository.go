package repositories

import (
	"context"
	"fmt"
	"time"

	"zennexify/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository stores users in the "users" collection. Uniqueness of
// username and email relies on the indexes created by database.EnsureIndexes.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new instance of MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

// Create inserts a new user document.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if !models.IsHashedPassword(user.Password) {
		return models.ErrPlaintextPassword
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	ctx, cancel := mongoContext(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by username.
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, username, bson.M{"username": username})
}

// GetByEmail retrieves a user by email.
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, email, bson.M{"email": email})
}

// GetByID retrieves a user by ID.
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, id, bson.M{"_id": id})
}

// UpdateProfile sets the present fields and returns the document after the update.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := profileDocument(update)
	set["updatedAt"] = time.Now().UTC()

	ctx, cancel := mongoContext(ctx)
	defer cancel()

	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &user, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, key string, filter bson.M) (*models.User, error) {
	ctx, cancel := mongoContext(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("user %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", key, err)
	}
	return &user, nil
}

func profileDocument(update models.ProfileUpdate) bson.M {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.DOB != nil {
		set["dob"] = *update.DOB
	}
	if update.PANCard != nil {
		set["panCard"] = *update.PANCard
	}
	if update.AadharCard != nil {
		set["aadharCard"] = *update.AadharCard
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.GstID != nil {
		set["gstId"] = *update.GstID
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}
	return set
}
