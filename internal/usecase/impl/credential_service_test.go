package impl

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/infra/auth"
	"userhub/internal/usecase"
)

type credentialFixture struct {
	repo    *fakeUserRepo
	service usecase.CredentialUsecase
}

func newCredentialFixture(t *testing.T) *credentialFixture {
	t.Helper()

	cfg := newTestConfig()
	repo := newFakeUserRepo()

	codec, err := auth.NewJWTCodec(cfg, nil)
	require.NoError(t, err)

	return &credentialFixture{
		repo:    repo,
		service: NewCredentialService(repo, auth.NewArgon2Hasher(), codec, cfg, newDiscardLogger()),
	}
}

func registerInput(username, email string) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username: username,
		Email:    email,
		Password: "s3cret-password",
	}
}

func TestCredentialService_Register(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	user, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.Equal(t, []string{"user"}, user.Roles.ToStrings())

	// The stored credential is a parameterized hash, never the password.
	assert.NotEqual(t, "s3cret-password", user.PasswordHash)
	assert.Contains(t, user.PasswordHash, "$argon2id$")
}

func TestCredentialService_Register_DuplicateUsername(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = fx.service.Register(ctx, registerInput("alice", "other@example.com"))
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestCredentialService_Register_DuplicateEmail(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = fx.service.Register(ctx, registerInput("bob", "alice@example.com"))
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestCredentialService_Register_RaceLostToConcurrentInsert(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	// The pre-check sees no conflict, but the storage uniqueness constraint
	// rejects the insert as if a concurrent registration committed first.
	fx.repo.insertHook = func(*repository.NewUser) error {
		return repository.ErrDuplicateUser
	}

	_, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestCredentialService_Register_ExistenceCheckFailure(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	fx.repo.usernameExistsHook = func(string) (bool, error) {
		return false, errors.New("connection reset")
	}

	_, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.Error(t, err)
	assert.Equal(t, domainerrors.ErrInternalError, domainerrors.FromError(err))
}

func TestCredentialService_LoginAndVerifyToken(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	token, err := fx.service.Login(ctx, "alice", "s3cret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := fx.service.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{"user"}, claims.Roles)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestCredentialService_Login_ByEmail(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	token, err := fx.service.Login(ctx, "alice@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestCredentialService_Login_WrongPassword(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestCredentialService_Login_UnknownUser(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	// Indistinguishable from a wrong password, so accounts cannot be
	// enumerated through the login endpoint.
	_, err := fx.service.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestCredentialService_Login_InactiveUser(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = fx.repo.UpdateStatus(ctx, registered.ID, false)
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, "alice", "s3cret-password")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestCredentialService_Login_MalformedStoredHash(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	fx.repo.mu.Lock()
	fx.repo.users[registered.ID].PasswordHash = "not-a-valid-hash"
	fx.repo.mu.Unlock()

	_, err = fx.service.Login(ctx, "alice", "s3cret-password")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestCredentialService_VerifyToken_Invalid(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	_, err := fx.service.VerifyToken(ctx, "not.a.token")
	require.Error(t, err)
	assert.Equal(t, domainerrors.ErrUnauthenticated, domainerrors.FromError(err))
}

func TestCredentialService_VerifyToken_TamperedSignature(t *testing.T) {
	fx := newCredentialFixture(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)

	token, err := fx.service.Login(ctx, "alice", "s3cret-password")
	require.NoError(t, err)

	_, err = fx.service.VerifyToken(ctx, token+"x")
	require.Error(t, err)
	assert.Equal(t, domainerrors.ErrUnauthenticated, domainerrors.FromError(err))
}

func TestCredentialService_Logout(t *testing.T) {
	fx := newCredentialFixture(t)

	assert.NoError(t, fx.service.Logout(context.Background(), "any-token"))
}
