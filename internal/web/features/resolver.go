// Package features resolves human-entered feature names to stable catalog
// identifiers. The backend has no native upsert, so resolution is a lazy
// create-then-lookup: try to create the feature, and when that fails (usually
// because the name already exists) fall back to listing the catalog and
// matching by normalized name.
package features

import (
	"context"
	"fmt"
	"strings"

	"productcompare.org/web/internal/web/backend"
)

// Catalog is the slice of the backend service the resolver depends on.
type Catalog interface {
	CreateFeature(ctx context.Context, token, name string) (*backend.Feature, error)
	Features(ctx context.Context, token string) ([]backend.Feature, error)
}

// Resolver maps normalized feature names to identifiers for one submission
// flow. The cache makes repeated resolutions of the same name within the flow
// hit the network at most once. Resolver is not safe for concurrent use; the
// submission flow is intentionally sequential.
type Resolver struct {
	svc   Catalog
	token string
	cache map[string]int64
}

// NewResolver builds a resolver seeded with the currently loaded catalog.
func NewResolver(svc Catalog, token string, seed []backend.Feature) *Resolver {
	cache := make(map[string]int64, len(seed))
	for _, feature := range seed {
		cache[normalize(feature.Name)] = feature.ID
	}
	return &Resolver{
		svc:   svc,
		token: token,
		cache: cache,
	}
}

// Ensure returns the identifier for the named feature, creating it remotely if
// needed. An empty (after trimming) name resolves to zero with no error and no
// network call.
func (r *Resolver) Ensure(ctx context.Context, name string) (int64, error) {
	key := normalize(name)
	if key == "" {
		return 0, nil
	}
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	created, err := r.svc.CreateFeature(ctx, r.token, strings.TrimSpace(name))
	if err == nil {
		r.cache[key] = created.ID
		return created.ID, nil
	}

	// Creation failures are usually a name collision from a concurrent or
	// prior run; the create error alone cannot tell that apart from a real
	// failure, so look the name up before giving up.
	latest, listErr := r.svc.Features(ctx, r.token)
	if listErr != nil {
		return 0, listErr
	}
	for _, feature := range latest {
		if normalize(feature.Name) == key {
			r.cache[key] = feature.ID
			return feature.ID, nil
		}
	}
	return 0, fmt.Errorf("unable to save feature: %s", name)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
