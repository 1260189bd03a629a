package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"zennexify/internal/models"
	"zennexify/internal/repositories"
	"zennexify/internal/services"
	"zennexify/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var notFound = fmt.Errorf("user x: %w", repositories.ErrNotFound)

func newAuthService(repo *MockUserRepository, pub services.EventPublisher) *services.AuthService {
	tokens := services.NewTokenService(testJWTSecret, services.DefaultTokenTTL)
	return services.NewAuthService(repo, tokens, pub, logger.NewNop())
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: "user-123", Username: "bob", Email: "b@x.com", Password: string(hash)}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	pub := new(MockPublisher)
	authService := newAuthService(mockRepo, pub)

	mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, notFound).Once()
	mockRepo.On("GetByUsername", mock.Anything, "bob").Return(nil, notFound).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "b@x.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secretpw12")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = "user-123"
	}).Return(nil).Once()
	pub.On("PublishEvent", services.EventUserRegistered, mock.Anything).Return(nil).Once()

	user, err := authService.Register(ctx, services.Registration{
		Username: "bob",
		Email:    "  B@X.com ",
		Password: "secretpw12",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.NotEqual(t, "secretpw12", user.Password)

	cost, err := bcrypt.Cost([]byte(user.Password))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	mockRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	ctx := context.Background()
	reg := services.Registration{Username: "bob", Email: "b@x.com", Password: "secretpw12"}

	t.Run("email taken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(&models.User{ID: "1"}, nil).Once()

		_, err := newAuthService(mockRepo, nil).Register(ctx, reg)
		assert.ErrorIs(t, err, services.ErrConflict)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("username taken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, notFound).Once()
		mockRepo.On("GetByUsername", mock.Anything, "bob").Return(&models.User{ID: "1"}, nil).Once()

		_, err := newAuthService(mockRepo, nil).Register(ctx, reg)
		assert.ErrorIs(t, err, services.ErrConflict)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique index wins the race", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, notFound).Once()
		mockRepo.On("GetByUsername", mock.Anything, "bob").Return(nil, notFound).Once()
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("failed to create user bob: %w", repositories.ErrDuplicate)).Once()

		_, err := newAuthService(mockRepo, nil).Register(ctx, reg)
		assert.ErrorIs(t, err, services.ErrConflict)
		mockRepo.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, errors.New("connection refused")).Once()

		_, err := newAuthService(mockRepo, nil).Register(ctx, reg)
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrConflict)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestAuthService_RegisterPasswordTooLong(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, notFound).Once()
	mockRepo.On("GetByUsername", mock.Anything, "bob").Return(nil, notFound).Once()

	_, err := newAuthService(mockRepo, nil).Register(context.Background(), services.Registration{
		Username: "bob",
		Email:    "b@x.com",
		Password: strings.Repeat("p", 80),
	})
	assert.ErrorIs(t, err, services.ErrValidation)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, services.MsgValidationFailed, verr.Message)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_RegisterMissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	_, err := newAuthService(mockRepo, nil).Register(context.Background(), services.Registration{Email: "b@x.com"})

	assert.ErrorIs(t, err, services.ErrValidation)
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, services.MsgFieldsRequired, verr.Message)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "password")
	assert.NotContains(t, verr.Fields, "email")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterIgnoresPublishFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	pub := new(MockPublisher)

	mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, notFound).Once()
	mockRepo.On("GetByUsername", mock.Anything, "bob").Return(nil, notFound).Once()
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	pub.On("PublishEvent", services.EventUserRegistered, mock.Anything).Return(errors.New("broker down")).Once()

	_, err := newAuthService(mockRepo, pub).Register(context.Background(), services.Registration{
		Username: "bob", Email: "b@x.com", Password: "secretpw12",
	})
	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	user := hashedUser(t, "secretpw12")

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(m *MockUserRepository)
		wantErr  error
	}{
		{
			name:     "correct password",
			email:    "B@x.com",
			password: "secretpw12",
			setup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "b@x.com").Return(user, nil).Once()
			},
		},
		{
			name:     "wrong password",
			email:    "b@x.com",
			password: "wrongpassword",
			setup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "b@x.com").Return(user, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "secretpw12",
			setup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, notFound).Once()
			},
			wantErr: services.ErrNotFound,
		},
		{
			name:    "missing password",
			email:   "b@x.com",
			setup:   func(m *MockUserRepository) {},
			wantErr: services.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setup(mockRepo)

			identity, err := newAuthService(mockRepo, nil).Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, identity)
			} else {
				require.NoError(t, err)
				assert.Equal(t, &services.Identity{ID: user.ID, Email: user.Email}, identity)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	user := hashedUser(t, "secretpw12")
	mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(user, nil).Once()

	token, identity, err := newAuthService(mockRepo, nil).Login(context.Background(), "b@x.com", "secretpw12")
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)

	claims, err := services.NewTokenService(testJWTSecret, services.DefaultTokenTTL).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	input := services.ProfileInput{
		Name:       "Bob",
		PANCard:    "ABCDE1234F",
		AadharCard: "234567890123",
		Phone:      "9876543210",
		GstID:      "22ABCDE1234F1Z5",
	}

	t.Run("keeps password when none given", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		updated := &models.User{ID: "user-123", Name: "Bob"}
		mockRepo.On("UpdateProfile", mock.Anything, "user-123", mock.MatchedBy(func(u models.ProfileUpdate) bool {
			return u.PasswordHash == nil && *u.Name == "Bob" && *u.GstID == "22ABCDE1234F1Z5"
		})).Return(updated, nil).Once()

		user, err := newAuthService(mockRepo, nil).UpdateProfile(ctx, "user-123", "user-123", input)
		require.NoError(t, err)
		assert.Equal(t, "Bob", user.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("hashes a new password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		withPassword := input
		withPassword.Password = "newsecret99"
		mockRepo.On("UpdateProfile", mock.Anything, "user-123", mock.MatchedBy(func(u models.ProfileUpdate) bool {
			return u.PasswordHash != nil &&
				bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("newsecret99")) == nil
		})).Return(&models.User{ID: "user-123"}, nil).Once()

		_, err := newAuthService(mockRepo, nil).UpdateProfile(ctx, "user-123", "user-123", withPassword)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("other user's profile", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		_, err := newAuthService(mockRepo, nil).UpdateProfile(ctx, "someone-else", "user-123", input)
		assert.ErrorIs(t, err, services.ErrForbidden)
		mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UpdateProfile", mock.Anything, "ghost", mock.Anything).Return(nil, notFound).Once()

		_, err := newAuthService(mockRepo, nil).UpdateProfile(ctx, "ghost", "ghost", input)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("password too long", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		withPassword := input
		withPassword.Password = strings.Repeat("p", 73)
		_, err := newAuthService(mockRepo, nil).UpdateProfile(ctx, "user-123", "user-123", withPassword)

		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "password")
		mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		partial := input
		partial.PANCard = ""
		_, err := newAuthService(mockRepo, nil).UpdateProfile(ctx, "user-123", "user-123", partial)
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestAuthService_GetUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByID", mock.Anything, "user-123").Return(&models.User{ID: "user-123"}, nil).Once()
	mockRepo.On("GetByID", mock.Anything, "ghost").Return(nil, notFound).Once()
	authService := newAuthService(mockRepo, nil)

	user, err := authService.GetUser(context.Background(), "user-123")
	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)

	_, err = authService.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
