package services_test

import (
	"context"
	"errors"
	"testing"

	"zennexify/internal/models"
	"zennexify/internal/services"
	"zennexify/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLocation = models.Location{Street: "1 Main St", City: "Pune", State: "MH", Zip: "41100", Country: "IN"}

func TestStoreService_CreateStore(t *testing.T) {
	ctx := context.Background()
	owner := &models.User{ID: "user-123", Username: "bob"}
	in := services.NewStore{Username: "bob", Location: testLocation, Contact: "9876543210"}

	t.Run("owner creates store", func(t *testing.T) {
		users, stores, pub := new(MockUserRepository), new(MockStoreRepository), new(MockPublisher)
		users.On("GetByUsername", mock.Anything, "bob").Return(owner, nil).Once()
		stores.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Store) bool {
			return s.OwnerID == "user-123" && s.Location == testLocation
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Store).ID = "store-1"
		}).Return(nil).Once()
		pub.On("PublishEvent", services.EventStoreCreated, mock.Anything).Return(nil).Once()

		store, err := services.NewStoreService(users, stores, pub, logger.NewNop()).CreateStore(ctx, "user-123", in)
		require.NoError(t, err)
		assert.Equal(t, "store-1", store.ID)
		users.AssertExpectations(t)
		stores.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		users, stores := new(MockUserRepository), new(MockStoreRepository)
		users.On("GetByUsername", mock.Anything, "ghost").Return(nil, notFound).Once()

		ghost := in
		ghost.Username = "ghost"
		_, err := services.NewStoreService(users, stores, nil, logger.NewNop()).CreateStore(ctx, "user-123", ghost)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		stores.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("someone else's username", func(t *testing.T) {
		users, stores := new(MockUserRepository), new(MockStoreRepository)
		users.On("GetByUsername", mock.Anything, "bob").Return(owner, nil).Once()

		_, err := services.NewStoreService(users, stores, nil, logger.NewNop()).CreateStore(ctx, "mallory", in)
		assert.ErrorIs(t, err, services.ErrForbidden)
		stores.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing location field", func(t *testing.T) {
		users, stores := new(MockUserRepository), new(MockStoreRepository)
		partial := in
		partial.Location.Zip = ""

		_, err := services.NewStoreService(users, stores, nil, logger.NewNop()).CreateStore(ctx, "user-123", partial)
		var verr *services.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "location.zip")
		users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})
}

func TestStoreService_ListStores(t *testing.T) {
	ctx := context.Background()
	users, stores := new(MockUserRepository), new(MockStoreRepository)
	svc := services.NewStoreService(users, stores, nil, logger.NewNop())

	users.On("GetByUsername", mock.Anything, "bob").Return(&models.User{ID: "user-123"}, nil).Once()
	stores.On("ListByOwner", mock.Anything, "user-123").Return([]models.Store{{ID: "s1"}, {ID: "s2"}}, nil).Once()

	list, err := svc.ListStores(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "s1", list[0].ID)

	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, notFound).Once()
	_, err = svc.ListStores(ctx, "ghost")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.ListStores(ctx, " ")
	assert.ErrorIs(t, err, services.ErrValidation)

	users.AssertExpectations(t)
	stores.AssertExpectations(t)
}
