package registry

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	name string
}

type fakeService struct {
	repo *fakeRepo
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := New()

	repo := &fakeRepo{name: "users"}
	require.NoError(t, Register(reg, repo))

	resolved, err := Resolve[*fakeRepo](reg)
	require.NoError(t, err)
	assert.Same(t, repo, resolved)
}

func TestRegistry_LookupMissingType(t *testing.T) {
	reg := New()

	_, ok := Lookup[*fakeRepo](reg)
	assert.False(t, ok)
}

func TestRegistry_ResolveMissingType(t *testing.T) {
	reg := New()

	_, err := Resolve[*fakeRepo](reg)
	require.Error(t, err)

	var notRegistered *NotRegisteredError
	assert.ErrorAs(t, err, &notRegistered)
}

func TestRegistry_DuplicateRegistrationRejected(t *testing.T) {
	reg := New()

	first := &fakeRepo{name: "first"}
	require.NoError(t, Register(reg, first))

	err := Register(reg, &fakeRepo{name: "second"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateService)

	// The original registration survives the rejected attempt.
	resolved, err := Resolve[*fakeRepo](reg)
	require.NoError(t, err)
	assert.Same(t, first, resolved)
}

func TestRegistry_DuplicateProvideRejected(t *testing.T) {
	reg := New()

	require.NoError(t, Provide(reg, func() (*fakeRepo, error) {
		return &fakeRepo{}, nil
	}))

	err := Provide(reg, func() (*fakeRepo, error) {
		return &fakeRepo{}, nil
	})
	assert.ErrorIs(t, err, ErrDuplicateService)
}

func TestRegistry_LazyFactoryRunsOnFirstResolve(t *testing.T) {
	reg := New()

	var calls atomic.Int32
	require.NoError(t, Provide(reg, func() (*fakeRepo, error) {
		calls.Add(1)

		return &fakeRepo{name: "lazy"}, nil
	}))

	assert.Equal(t, int32(0), calls.Load())

	first, err := Resolve[*fakeRepo](reg)
	require.NoError(t, err)

	second, err := Resolve[*fakeRepo](reg)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistry_LazyFactoryErrorIsCached(t *testing.T) {
	reg := New()

	var calls atomic.Int32
	buildErr := errors.New("connection refused")
	require.NoError(t, Provide(reg, func() (*fakeRepo, error) {
		calls.Add(1)

		return nil, buildErr
	}))

	_, err := Resolve[*fakeRepo](reg)
	require.ErrorIs(t, err, buildErr)

	_, err = Resolve[*fakeRepo](reg)
	require.ErrorIs(t, err, buildErr)

	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistry_ConcurrentResolveRunsFactoryOnce(t *testing.T) {
	reg := New()

	var calls atomic.Int32
	require.NoError(t, Provide(reg, func() (*fakeRepo, error) {
		calls.Add(1)

		return &fakeRepo{name: "shared"}, nil
	}))

	const goroutines = 64

	var wg sync.WaitGroup
	results := make([]*fakeRepo, goroutines)

	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()

			v, err := Resolve[*fakeRepo](reg)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Same(t, results[0], v)
	}
}

func TestRegistry_FactoryResolvesOwnDependencies(t *testing.T) {
	reg := New()

	repo := &fakeRepo{name: "users"}
	require.NoError(t, Register(reg, repo))

	require.NoError(t, Provide(reg, func() (*fakeService, error) {
		dep, err := Resolve[*fakeRepo](reg)
		if err != nil {
			return nil, err
		}

		return &fakeService{repo: dep}, nil
	}))

	svc, err := Resolve[*fakeService](reg)
	require.NoError(t, err)
	assert.Same(t, repo, svc.repo)
}

func TestRegistry_InterfaceAndConcreteKeysAreDistinct(t *testing.T) {
	reg := New()

	repo := &fakeRepo{name: "users"}
	require.NoError(t, Register(reg, repo))
	require.NoError(t, Register[any](reg, repo))

	byConcrete, err := Resolve[*fakeRepo](reg)
	require.NoError(t, err)

	byInterface, err := Resolve[any](reg)
	require.NoError(t, err)

	assert.Same(t, byConcrete, byInterface)
}

func TestRegistry_MustResolvePanicsOnMissingType(t *testing.T) {
	reg := New()

	assert.Panics(t, func() {
		MustResolve[*fakeRepo](reg)
	})
}
