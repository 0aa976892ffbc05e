package features_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"productcompare.org/web/internal/web/backend"
	"productcompare.org/web/internal/web/features"
)

type fakeCatalog struct {
	createCalls int
	listCalls   int
	createFn    func(name string) (*backend.Feature, error)
	listFn      func() ([]backend.Feature, error)
}

func (f *fakeCatalog) CreateFeature(ctx context.Context, token, name string) (*backend.Feature, error) {
	f.createCalls++
	return f.createFn(name)
}

func (f *fakeCatalog) Features(ctx context.Context, token string) ([]backend.Feature, error) {
	f.listCalls++
	if f.listFn == nil {
		return nil, errors.New("unexpected list call")
	}
	return f.listFn()
}

func TestEnsureCreatesOnceAndMemoizes(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		createFn: func(name string) (*backend.Feature, error) {
			return &backend.Feature{ID: 42, Name: name}, nil
		},
	}
	resolver := features.NewResolver(catalog, "token", nil)

	first, err := resolver.Ensure(context.Background(), "Color")
	require.NoError(t, err)
	second, err := resolver.Ensure(context.Background(), "Color")
	require.NoError(t, err)

	require.Equal(t, int64(42), first)
	require.Equal(t, first, second)
	require.Equal(t, 1, catalog.createCalls)
	require.Zero(t, catalog.listCalls)
}

func TestEnsureUsesSeededCacheWithoutNetwork(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		createFn: func(name string) (*backend.Feature, error) {
			return nil, errors.New("unexpected create call")
		},
	}
	seed := []backend.Feature{{ID: 9, Name: " Purchase Link "}}
	resolver := features.NewResolver(catalog, "token", seed)

	id, err := resolver.Ensure(context.Background(), "purchase link")
	require.NoError(t, err)
	require.Equal(t, int64(9), id)
	require.Zero(t, catalog.createCalls)
}

func TestEnsureEmptyNameResolvesToNothing(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		createFn: func(name string) (*backend.Feature, error) {
			return nil, errors.New("unexpected create call")
		},
	}
	resolver := features.NewResolver(catalog, "token", nil)

	id, err := resolver.Ensure(context.Background(), "   ")
	require.NoError(t, err)
	require.Zero(t, id)
	require.Zero(t, catalog.createCalls)
}

func TestEnsureFallsBackToListingOnCreateConflict(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		createFn: func(name string) (*backend.Feature, error) {
			return nil, errors.New("feature already exists: Color")
		},
		listFn: func() ([]backend.Feature, error) {
			return []backend.Feature{
				{ID: 3, Name: "Weight"},
				{ID: 5, Name: "  COLOR  "},
			}, nil
		},
	}
	resolver := features.NewResolver(catalog, "token", nil)

	id, err := resolver.Ensure(context.Background(), "Color")
	require.NoError(t, err)
	require.Equal(t, int64(5), id)
	require.Equal(t, 1, catalog.createCalls)
	require.Equal(t, 1, catalog.listCalls)

	// Second resolution is served from the cache with no further creates.
	again, err := resolver.Ensure(context.Background(), "color")
	require.NoError(t, err)
	require.Equal(t, int64(5), again)
	require.Equal(t, 1, catalog.createCalls)
}

func TestEnsureFailsWhenNameMissingEverywhere(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		createFn: func(name string) (*backend.Feature, error) {
			return nil, errors.New("boom")
		},
		listFn: func() ([]backend.Feature, error) {
			return []backend.Feature{{ID: 1, Name: "Weight"}}, nil
		},
	}
	resolver := features.NewResolver(catalog, "token", nil)

	_, err := resolver.Ensure(context.Background(), "Color")
	require.EqualError(t, err, "unable to save feature: Color")
}
