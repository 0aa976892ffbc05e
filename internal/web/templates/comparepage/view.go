// Package comparepage renders the side-by-side comparison view: the feature
// table with difference and better/worse markers, the recommendation card, and
// the per-product storefront grids.
package comparepage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"productcompare.org/web/internal/web/compare"
)

const defaultReason = "Balanced overall value across compared specs."

// Content renders the comparison page body.
func Content(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Error != "" {
			return errorPanel(w, data.Error)
		}
		if err := tablePanelOpen(w, data); err != nil {
			return err
		}
		if err := comparisonTable(w, data); err != nil {
			return err
		}
		if err := recommendationCard(w, data); err != nil {
			return err
		}
		if err := storeGrids(w, data); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

func errorPanel(w io.Writer, message string) error {
	_, err := fmt.Fprintf(w,
		`<section class="panel"><h2>Comparison Error</h2><p class="status-text">%s</p><a class="ghost" href="/">Back to Home</a></section>`,
		templ.EscapeString(message))
	return err
}

func tablePanelOpen(w io.Writer, data PageData) error {
	_, err := fmt.Fprintf(w,
		`<section class="panel card compare-page-panel">`+
			`<div class="compare-header-row"><h2>Product Comparison</h2><a class="ghost" href="/">Back</a></div>`+
			`<div class="compare-name-row"><div class="compare-name-card">%s</div><div class="compare-name-card">%s</div></div>`,
		templ.EscapeString(data.ProductNames[0]), templ.EscapeString(data.ProductNames[1]))
	return err
}

func comparisonTable(w io.Writer, data PageData) error {
	if _, err := fmt.Fprintf(w,
		`<div class="table-wrapper"><table class="compare-table"><thead><tr><th>Feature</th><th>%s</th><th>%s</th></tr></thead><tbody>`,
		templ.EscapeString(data.ProductNames[0]), templ.EscapeString(data.ProductNames[1])); err != nil {
		return err
	}

	if len(data.Rows) == 0 {
		if _, err := io.WriteString(w, `<tr><td colspan="3">No features available for these products.</td></tr>`); err != nil {
			return err
		}
	}
	for _, row := range data.Rows {
		if _, err := fmt.Fprintf(w,
			`<tr><td>%s</td><td class="%s">%s</td><td class="%s">%s</td></tr>`,
			templ.EscapeString(row.FeatureName),
			cellClass(row.Different, row.LeftVerdict),
			templ.EscapeString(row.Left),
			cellClass(row.Different, row.RightVerdict),
			templ.EscapeString(row.Right)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, `</tbody></table></div>`)
	return err
}

func cellClass(different bool, verdict compare.Verdict) string {
	classes := make([]string, 0, 2)
	if different {
		classes = append(classes, "compare-different")
	}
	if verdict != compare.VerdictNone {
		classes = append(classes, string(verdict))
	}
	return strings.Join(classes, " ")
}

func recommendationCard(w io.Writer, data PageData) error {
	if data.Recommended == nil {
		return nil
	}
	reason := strings.TrimSpace(data.Reason)
	if reason == "" {
		reason = defaultReason
	}
	_, err := fmt.Fprintf(w,
		`<div class="recommendation-card"><h3>Recommended Pick: %s <span class="badge-best">Best Pick</span></h3><p>%s</p></div>`,
		templ.EscapeString(data.Recommended.Name), templ.EscapeString(reason))
	return err
}

func storeGrids(w io.Writer, data PageData) error {
	if _, err := io.WriteString(w, `<div class="available-on-wrap"><h3>Available On</h3><div class="available-on-grid">`); err != nil {
		return err
	}

	for _, grid := range data.Grids {
		if _, err := fmt.Fprintf(w, `<div class="available-on-card card"><h4>%s</h4><div class="store-cards-grid">`,
			templ.EscapeString(grid.ProductName)); err != nil {
			return err
		}
		for _, cell := range grid.Stores {
			if err := storeCard(w, cell); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div></div>`); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, `</div></div>`)
	return err
}

func storeCard(w io.Writer, cell compare.StoreCell) error {
	price := "-"
	if cell.Price != "" {
		price = "&#8377;" + templ.EscapeString(cell.Price)
	}

	badge := ""
	if cell.BestPrice {
		badge = `<span class="badge-best">Best Price</span>`
	}

	buy := `<span class="buy-now-btn mini btn-primary disabled">Buy</span>`
	if cell.BuyLink != "" {
		buy = fmt.Sprintf(`<a href="%s" target="_blank" rel="noreferrer" class="buy-now-btn mini btn-primary">Buy</a>`,
			templ.EscapeString(string(templ.URL(cell.BuyLink))))
	}

	_, err := fmt.Fprintf(w,
		`<div class="store-card card"><div><strong>%s</strong><div>%s</div></div><div>%s%s</div></div>`,
		templ.EscapeString(cell.StoreName), price, badge, buy)
	return err
}
