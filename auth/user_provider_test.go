package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/YOUBAZ/SafeStay/auth"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func notFoundErr() error {
	return errors.New("user not found", errors.CategoryNotFound)
}

func TestUserProviderVerifyIdentity(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockUserStore)

	provider := auth.NewUserProvider(mockStore)

	t.Run("Successful verification", func(t *testing.T) {
		userID := uuid.New()
		passwordHash, _ := auth.HashPassword("password123")
		user := &auth.User{
			ID:           userID,
			Email:        "test@example.com",
			PasswordHash: passwordHash,
			Role:         auth.RoleStudent,
			IsActive:     true,
		}

		mockStore.On("GetByEmailOrPhone", ctx, "test@example.com").Return(user, nil).Once()
		mockStore.On("TrackSuccessfulLogin", ctx, user).Return(nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())
		assert.Equal(t, "test@example.com", identity.Email())
		assert.Equal(t, auth.RoleStudent, identity.Role())

		mockStore.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userID := uuid.New()
		passwordHash, _ := auth.HashPassword("correct_password")
		user := &auth.User{
			ID:           userID,
			Email:        "test@example.com",
			PasswordHash: passwordHash,
			Role:         auth.RoleStudent,
			IsActive:     true,
		}

		mockStore.On("GetByEmailOrPhone", ctx, "test@example.com").Return(user, nil).Once()
		mockStore.On("TrackAttemptedLogin", ctx, user).Return(nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "wrong_password")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown identifier reports the same error as a wrong password", func(t *testing.T) {
		mockStore.On("GetByEmailOrPhone", ctx, "nonexistent@example.com").
			Return(nil, notFoundErr()).Once()

		identity, err := provider.VerifyIdentity(ctx, "nonexistent@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		mockStore.AssertExpectations(t)
	})

	t.Run("Deactivated account with correct password", func(t *testing.T) {
		passwordHash, _ := auth.HashPassword("password123")
		user := &auth.User{
			ID:           uuid.New(),
			Email:        "inactive@example.com",
			PasswordHash: passwordHash,
			Role:         auth.RoleOwner,
			IsActive:     false,
		}

		mockStore.On("GetByEmailOrPhone", ctx, "inactive@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "inactive@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, auth.ErrAccountDeactivated)

		mockStore.AssertExpectations(t)
	})

	t.Run("Deactivated account with wrong password reports invalid credentials", func(t *testing.T) {
		passwordHash, _ := auth.HashPassword("password123")
		user := &auth.User{
			ID:           uuid.New(),
			Email:        "inactive@example.com",
			PasswordHash: passwordHash,
			Role:         auth.RoleOwner,
			IsActive:     false,
		}

		mockStore.On("GetByEmailOrPhone", ctx, "inactive@example.com").Return(user, nil).Once()
		mockStore.On("TrackAttemptedLogin", ctx, user).Return(nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "inactive@example.com", "wrong_password")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		mockStore.AssertExpectations(t)
	})

	t.Run("Too many login attempts", func(t *testing.T) {
		passwordHash, _ := auth.HashPassword("password123")
		now := time.Now()
		user := &auth.User{
			ID:             uuid.New(),
			Email:          "test@example.com",
			PasswordHash:   passwordHash,
			Role:           auth.RoleStudent,
			IsActive:       true,
			LoginAttempts:  auth.MaxLoginAttempts + 1,
			LoginAttemptAt: &now,
		}

		mockStore.On("GetByEmailOrPhone", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, auth.ErrTooManyLoginAttempts)

		mockStore.AssertExpectations(t)
	})

	t.Run("Login attempts cooldown expired", func(t *testing.T) {
		userID := uuid.New()
		passwordHash, _ := auth.HashPassword("password123")
		oldAttempt := time.Now().Add(-48 * time.Hour)
		user := &auth.User{
			ID:             userID,
			Email:          "test@example.com",
			PasswordHash:   passwordHash,
			Role:           auth.RoleStudent,
			IsActive:       true,
			LoginAttempts:  auth.MaxLoginAttempts + 1,
			LoginAttemptAt: &oldAttempt,
		}

		mockStore.On("GetByEmailOrPhone", ctx, "test@example.com").Return(user, nil).Once()
		mockStore.On("TrackSuccessfulLogin", ctx, mock.MatchedBy(func(u *auth.User) bool {
			return u.ID == userID && u.LoginAttempts == 0 // attempts reset
		})).Return(nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())

		mockStore.AssertExpectations(t)
	})
}

func TestUserProviderFindIdentityByID(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockUserStore)

	provider := auth.NewUserProvider(mockStore)

	t.Run("User found", func(t *testing.T) {
		userID := uuid.New()
		user := &auth.User{
			ID:       userID,
			Email:    "test@example.com",
			Role:     auth.RoleParent,
			IsActive: true,
		}

		mockStore.On("GetByID", ctx, userID.String()).Return(user, nil).Once()

		identity, err := provider.FindIdentityByID(ctx, userID.String())

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())
		assert.Equal(t, auth.RoleParent, identity.Role())

		mockStore.AssertExpectations(t)
	})

	t.Run("User not found", func(t *testing.T) {
		mockStore.On("GetByID", ctx, "missing-id").
			Return(nil, notFoundErr()).Once()

		identity, err := provider.FindIdentityByID(ctx, "missing-id")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)

		mockStore.AssertExpectations(t)
	})

	t.Run("Deactivated user", func(t *testing.T) {
		userID := uuid.New()
		user := &auth.User{
			ID:       userID,
			Email:    "inactive@example.com",
			Role:     auth.RoleOwner,
			IsActive: false,
		}

		mockStore.On("GetByID", ctx, userID.String()).Return(user, nil).Once()

		identity, err := provider.FindIdentityByID(ctx, userID.String())

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, auth.ErrAccountDeactivated)

		mockStore.AssertExpectations(t)
	})
}
