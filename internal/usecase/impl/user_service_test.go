package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/usecase"
)

type userFixture struct {
	repo    *fakeUserRepo
	service usecase.UserUsecase
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	repo := newFakeUserRepo()

	return &userFixture{
		repo:    repo,
		service: NewUserService(repo, newDiscardLogger()),
	}
}

func (fx *userFixture) seedUsers(t *testing.T, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		name := "user" + string(rune('a'+i))
		_, err := fx.repo.Insert(context.Background(), &repository.NewUser{
			Username:     name,
			Email:        name + "@example.com",
			PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdHNhbHQ$ZGlnZXN0ZGlnZXN0",
			Roles:        entity.DefaultRoles(),
			IsActive:     true,
		})
		require.NoError(t, err)
	}
}

func TestUserService_GetUser(t *testing.T) {
	fx := newUserFixture(t)
	fx.seedUsers(t, 1)

	user, err := fx.service.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "usera", user.Username)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fx := newUserFixture(t)

	_, err := fx.service.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	fx := newUserFixture(t)
	fx.seedUsers(t, 5)

	users, err := fx.service.ListUsers(context.Background(), 3, 0)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "usera", users[0].Username)

	users, err = fx.service.ListUsers(context.Background(), 3, 3)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_ListUsers_BoundsClamped(t *testing.T) {
	fx := newUserFixture(t)
	fx.seedUsers(t, 5)

	// A non-positive limit falls back to the default page size and a negative
	// offset starts from the beginning.
	users, err := fx.service.ListUsers(context.Background(), 0, -10)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	users, err = fx.service.ListUsers(context.Background(), maxListLimit+1, 0)
	require.NoError(t, err)
	assert.Len(t, users, 5)
}

func TestUserService_UsernameAndEmailExists(t *testing.T) {
	fx := newUserFixture(t)
	fx.seedUsers(t, 1)

	taken, err := fx.service.UsernameExists(context.Background(), "usera")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = fx.service.UsernameExists(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = fx.service.EmailExists(context.Background(), "usera@example.com")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserService_UpdateUserStatus(t *testing.T) {
	fx := newUserFixture(t)
	fx.seedUsers(t, 1)

	user, err := fx.service.UpdateUserStatus(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	user, err = fx.service.UpdateUserStatus(context.Background(), 1, true)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
}

func TestUserService_UpdateUserStatus_NotFound(t *testing.T) {
	fx := newUserFixture(t)

	_, err := fx.service.UpdateUserStatus(context.Background(), 99, false)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	fx := newUserFixture(t)
	fx.seedUsers(t, 1)

	require.NoError(t, fx.service.DeleteUser(context.Background(), 1))

	_, err := fx.service.GetUser(context.Background(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	fx := newUserFixture(t)

	err := fx.service.DeleteUser(context.Background(), 99)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
