package compare

import (
	"context"

	"golang.org/x/sync/errgroup"

	"productcompare.org/web/internal/web/backend"
)

// Source is the slice of the backend service the loader depends on.
type Source interface {
	Product(ctx context.Context, token string, id int64) (*backend.Product, error)
	StoreOfferings(ctx context.Context, token string, productID int64) ([]backend.StoreOffering, error)
	Recommendation(ctx context.Context, token string, productA, productB int64) (*backend.Recommendation, error)
}

// Comparison is the fully derived comparison view for two products.
type Comparison struct {
	Products       [2]*backend.Product
	Rows           []Row
	Grids          [2]StoreGrid
	Recommendation *backend.Recommendation
	// Recommended is the loaded product matching the recommendation, or nil.
	Recommended *backend.Product
}

// Load fetches both products, both store lists and the recommendation in
// parallel, then derives the comparison locally. Any single fetch failure
// aborts the whole load; there is no partial comparison.
func Load(ctx context.Context, svc Source, token string, ids [2]int64) (*Comparison, error) {
	var (
		products       [2]*backend.Product
		offerings      [2][]backend.StoreOffering
		recommendation *backend.Recommendation
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			product, err := svc.Product(gctx, token, id)
			if err != nil {
				return err
			}
			products[i] = product
			return nil
		})
		g.Go(func() error {
			stores, err := svc.StoreOfferings(gctx, token, id)
			if err != nil {
				return err
			}
			offerings[i] = stores
			return nil
		})
	}
	g.Go(func() error {
		rec, err := svc.Recommendation(gctx, token, ids[0], ids[1])
		if err != nil {
			return err
		}
		recommendation = rec
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Products:       products,
		Rows:           BuildRows(products[0], products[1]),
		Recommendation: recommendation,
		Recommended:    ResolveRecommendation(recommendation, products[:]),
	}
	for i := range products {
		cmp.Grids[i] = BuildStoreGrid(products[i], offerings[i])
	}
	return cmp, nil
}
