package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zennexify/internal/models"
	"zennexify/internal/repositories"
	"zennexify/pkg/logger"
)

// NewStore is the input of CreateStore. Username names the owner.
type NewStore struct {
	Username string
	Location models.Location
	Contact  string
}

// StoreService handles business logic related to stores.
type StoreService struct {
	users  repositories.UserRepository
	stores repositories.StoreRepository
	events EventPublisher
	log    *logger.Logger
}

// NewStoreService creates a new StoreService. events may be nil.
func NewStoreService(users repositories.UserRepository, stores repositories.StoreRepository, events EventPublisher, log *logger.Logger) *StoreService {
	return &StoreService{
		users:  users,
		stores: stores,
		events: events,
		log:    log,
	}
}

// CreateStore creates a store owned by the named user. Only that user may do so.
func (s *StoreService) CreateStore(ctx context.Context, actorID string, in NewStore) (*models.Store, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := requireFields(map[string]string{
		"username":         in.Username,
		"contact":          in.Contact,
		"location.street":  in.Location.Street,
		"location.city":    in.Location.City,
		"location.state":   in.Location.State,
		"location.zip":     in.Location.Zip,
		"location.country": in.Location.Country,
	}); err != nil {
		return nil, err
	}

	owner, err := s.resolveUser(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if owner.ID != actorID {
		return nil, ErrForbidden
	}

	store := &models.Store{
		OwnerID:  owner.ID,
		Location: in.Location,
		Contact:  in.Contact,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	s.log.WithOp("CreateStore").WithField("store_id", store.ID).Info("store created")
	publishEvent(s.events, s.log, EventStoreCreated, map[string]string{
		"id":      store.ID,
		"ownerId": store.OwnerID,
	})
	return store, nil
}

// ListStores returns the stores of the named user, oldest first.
func (s *StoreService) ListStores(ctx context.Context, username string) ([]models.Store, error) {
	username = strings.TrimSpace(username)
	if err := requireFields(map[string]string{"username": username}); err != nil {
		return nil, err
	}

	owner, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	stores, err := s.stores.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (s *StoreService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
