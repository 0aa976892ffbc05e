package comparepage

import (
	"productcompare.org/web/internal/web/backend"
	"productcompare.org/web/internal/web/compare"
)

// PageData drives the comparison page. A non-empty Error renders the error
// panel instead of the comparison.
type PageData struct {
	Error        string
	ProductNames [2]string
	Rows         []compare.Row
	Grids        [2]compare.StoreGrid
	// Recommended is nil when the backend's pick matches neither product.
	Recommended *backend.Product
	Reason      string
}
