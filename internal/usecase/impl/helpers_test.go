package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"userhub/config"
	"userhub/internal/domain/entity"
	"userhub/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		Secret:        "0123456789abcdef0123456789abcdef",
		ExpirySeconds: 3600,
	}

	return cfg
}

// fakeUserRepo is an in-memory UserRepository. Error hooks, when set, run
// before the in-memory behavior so tests can force storage failures at a
// specific call site.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*entity.User
	nextID int64

	insertHook         func(user *repository.NewUser) error
	usernameExistsHook func(username string) (bool, error)
	findHook           func() error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, identifier string, activeOnly bool) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findHook != nil {
		if err := f.findHook(); err != nil {
			return nil, err
		}
	}

	for _, u := range f.users {
		if u.Username != identifier && u.Email != identifier {
			continue
		}
		if activeOnly && !u.IsActive {
			continue
		}
		copied := *u

		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Insert(_ context.Context, user *repository.NewUser) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertHook != nil {
		if err := f.insertHook(user); err != nil {
			return 0, err
		}
	}

	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, repository.ErrDuplicateUser
		}
	}

	f.nextID++
	f.users[f.nextID] = &entity.User{
		ID:           f.nextID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Age:          user.Age,
		Roles:        user.Roles,
		IsActive:     user.IsActive,
	}

	return f.nextID, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findHook != nil {
		if err := f.findHook(); err != nil {
			return nil, err
		}
	}

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u

	return &copied, nil
}

func (f *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*entity.User, 0, len(f.users))
	for id := int64(1); id <= f.nextID; id++ {
		u, ok := f.users[id]
		if !ok {
			continue
		}
		copied := *u
		result = append(result, &copied)
	}

	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}

	return result, nil
}

func (f *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.usernameExistsHook != nil {
		return f.usernameExistsHook(username)
	}

	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, id int64, isActive bool) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.IsActive = isActive
	copied := *u

	return &copied, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)

	return nil
}
