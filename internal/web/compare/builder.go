package compare

import (
	"strings"

	"productcompare.org/web/internal/web/backend"
)

// KnownStorefronts is the fixed set of storefronts every product grid shows,
// in display order.
var KnownStorefronts = []string{"Amazon", "Myntra", "Nykaa", "Flipkart"}

// Row is one feature's side-by-side rendering for the two products.
type Row struct {
	FeatureName string
	Left        string
	Right       string
	// Different flags plain display inequality, independent of the verdicts.
	Different    bool
	LeftVerdict  Verdict
	RightVerdict Verdict
}

// StoreCell is one storefront slot in a product's availability grid.
type StoreCell struct {
	StoreName string
	// Price is the raw backend rendering; empty for synthesized placeholders.
	Price     string
	BuyLink   string
	BestPrice bool
}

// StoreGrid is one product's "available on" panel.
type StoreGrid struct {
	ProductID   int64
	ProductName string
	Stores      []StoreCell
}

// BuildRows merges the two products' feature lists into ordered comparison
// rows. Row order is first-seen across the first product's list then the
// second's; lookups are by exact feature name, with a duplicate name within
// one product resolving to its last occurrence.
func BuildRows(left, right *backend.Product) []Row {
	leftMap, order := indexFeatures(left, nil)
	rightMap, order := indexFeatures(right, order)

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		leftDisplay := AsDisplay(leftMap[name])
		rightDisplay := AsDisplay(rightMap[name])
		leftVerdict, rightVerdict := ComparePair(leftDisplay, rightDisplay)
		rows = append(rows, Row{
			FeatureName:  name,
			Left:         leftDisplay,
			Right:        rightDisplay,
			Different:    leftDisplay != rightDisplay,
			LeftVerdict:  leftVerdict,
			RightVerdict: rightVerdict,
		})
	}
	return rows
}

func indexFeatures(product *backend.Product, order []string) (map[string]*backend.ProductFeature, []string) {
	index := make(map[string]*backend.ProductFeature)
	if product == nil {
		return index, order
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		seen[name] = true
	}
	for i := range product.Features {
		feature := &product.Features[i]
		index[feature.Name] = feature
		if !seen[feature.Name] {
			seen[feature.Name] = true
			order = append(order, feature.Name)
		}
	}
	return index, order
}

// BuildStoreGrid normalizes a product's backend-reported offerings and
// synthesizes a placeholder for every known storefront missing from them, so
// the grid always shows the full storefront set. Offerings whose parsed price
// equals the product's minimum parsed price are marked best-price; ties all
// get the mark.
func BuildStoreGrid(product *backend.Product, offerings []backend.StoreOffering) StoreGrid {
	grid := StoreGrid{ProductName: "Product"}
	if product != nil {
		grid.ProductID = product.ID
		if product.Name != "" {
			grid.ProductName = product.Name
		}
	}

	present := make(map[string]bool, len(offerings))
	for _, offering := range offerings {
		present[strings.ToLower(strings.TrimSpace(offering.StoreName))] = true
		grid.Stores = append(grid.Stores, StoreCell{
			StoreName: offering.StoreName,
			Price:     offering.Price.String(),
			BuyLink:   offering.BuyLink,
		})
	}
	for _, storeName := range KnownStorefronts {
		if !present[strings.ToLower(storeName)] {
			grid.Stores = append(grid.Stores, StoreCell{StoreName: storeName})
		}
	}

	lowest := 0.0
	found := false
	for _, cell := range grid.Stores {
		price, ok := ParseNumeric(cell.Price)
		if !ok {
			continue
		}
		if !found || price < lowest {
			lowest = price
			found = true
		}
	}
	if found {
		for i := range grid.Stores {
			if price, ok := ParseNumeric(grid.Stores[i].Price); ok && price == lowest {
				grid.Stores[i].BestPrice = true
			}
		}
	}
	return grid
}

// ResolveRecommendation matches the backend's recommended id against the two
// loaded products. No match means no recommendation panel.
func ResolveRecommendation(rec *backend.Recommendation, products []*backend.Product) *backend.Product {
	if rec == nil || rec.RecommendedProductID == 0 {
		return nil
	}
	for _, product := range products {
		if product != nil && product.ID == rec.RecommendedProductID {
			return product
		}
	}
	return nil
}
