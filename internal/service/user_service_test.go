package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/mocks"
	"github.com/fintrack/ledger-api/internal/service/auth"
	"github.com/fintrack/ledger-api/internal/store"
)

func newUserServiceForTest(
	userStore *mocks.MockUserStore,
	verifier *mocks.MockPasswordVerifier,
) UserService {
	return NewUserService(userStore, &mocks.MockPasswordHasher{}, verifier, nil)
}

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewMockUserStore()
	svc := newUserServiceForTest(userStore, &mocks.MockPasswordVerifier{})

	user, err := svc.Register(ctx, "Maria Souza", "maria@example.com", "secretpass")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.Equal(t, "hashed:secretpass", user.HashedPassword)
	assert.Empty(t, user.Password, "plaintext must be cleared before persistence")
}

func TestUserServiceRegisterRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewMockUserStore()
	svc := newUserServiceForTest(userStore, &mocks.MockPasswordVerifier{})

	_, err := svc.Register(ctx, "Maria", "maria@example.com", "secretpass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Maria", "maria@example.com", "otherpass")
	assert.ErrorIs(t, err, ErrEmailRegistered)
}

func TestUserServiceRegisterRejectsInvalidUser(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewMockUserStore()
	svc := newUserServiceForTest(userStore, &mocks.MockPasswordVerifier{})

	_, err := svc.Register(ctx, "", "maria@example.com", "secretpass")
	assert.ErrorIs(t, err, domain.ErrEmptyName)
	assert.Empty(t, userStore.Users)
}

func TestUserServiceRegisterConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewMockUserStore()
	// Uniqueness check passes, but the insert hits the unique index.
	userStore.ExistsByEmailFn = func(ctx context.Context, email string) (bool, error) {
		return false, nil
	}
	userStore.CreateError = store.ErrEmailExists
	svc := newUserServiceForTest(userStore, &mocks.MockPasswordVerifier{})

	_, err := svc.Register(ctx, "Maria", "maria@example.com", "secretpass")
	assert.ErrorIs(t, err, ErrEmailRegistered)
}

func TestUserServiceValidateEmailUnique(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewMockUserStore()
	svc := newUserServiceForTest(userStore, &mocks.MockPasswordVerifier{})

	assert.NoError(t, svc.ValidateEmailUnique(ctx, "fresh@example.com"))

	_, err := svc.Register(ctx, "Maria", "maria@example.com", "secretpass")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ValidateEmailUnique(ctx, "maria@example.com"), ErrEmailRegistered)
}

func TestUserServiceAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		svc := newUserServiceForTest(
			mocks.NewMockUserStore(),
			&mocks.MockPasswordVerifier{ShouldSucceed: true},
		)

		_, err := svc.Authenticate(ctx, "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: false}
		svc := newUserServiceForTest(userStore, verifier)

		_, err := svc.Register(ctx, "Maria", "maria@example.com", "secretpass")
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "maria@example.com", "wrongpass")
		assert.ErrorIs(t, err, auth.ErrInvalidCredential)
		assert.Equal(t, 1, verifier.CompareCallCount)
		assert.Equal(t, "hashed:secretpass", verifier.CompareCalledWith.HashedPassword)
	})

	t.Run("success", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		svc := newUserServiceForTest(userStore, &mocks.MockPasswordVerifier{ShouldSucceed: true})

		registered, err := svc.Register(ctx, "Maria", "maria@example.com", "secretpass")
		require.NoError(t, err)

		user, err := svc.Authenticate(ctx, "maria@example.com", "secretpass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})
}

func TestUserServiceGetByID(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewMockUserStore()
	svc := newUserServiceForTest(userStore, &mocks.MockPasswordVerifier{})

	registered, err := svc.Register(ctx, "Maria", "maria@example.com", "secretpass")
	require.NoError(t, err)

	user, err := svc.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", user.Email)

	_, err = svc.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
