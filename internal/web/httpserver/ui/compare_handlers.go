package ui

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"productcompare.org/web/internal/web/compare"
	"productcompare.org/web/internal/web/templates/comparepage"
	"productcompare.org/web/internal/web/templates/layout"
)

// ComparePage loads both products, their store offerings and the
// recommendation, derives the comparison locally and renders it. Any single
// fetch failure renders the error panel; there is no partial comparison.
func (h *Handlers) ComparePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrNew(r)
	shell := h.shell(r, "Product Comparison")

	token := sess.Token()
	if token == "" {
		h.renderCompareError(w, r, shell, "Please login first.")
		return
	}

	ids, err := parseProductIDs(r.URL.Query().Get("ids"))
	if err != nil {
		h.renderCompareError(w, r, shell, err.Error())
		return
	}

	cmp, err := compare.Load(r.Context(), h.svc, token, ids)
	if err != nil {
		log.Printf("compare: load failed: %v", err)
		h.renderCompareError(w, r, shell, err.Error())
		return
	}

	data := comparepage.PageData{
		Rows:        cmp.Rows,
		Grids:       cmp.Grids,
		Recommended: cmp.Recommended,
	}
	for i, product := range cmp.Products {
		data.ProductNames[i] = fmt.Sprintf("Product %d", i+1)
		if product != nil && product.Name != "" {
			data.ProductNames[i] = product.Name
		}
	}
	if cmp.Recommendation != nil {
		data.Reason = cmp.Recommendation.Reason
	}
	h.render(w, r, shell, comparepage.Content(data))
}

func (h *Handlers) renderCompareError(w http.ResponseWriter, r *http.Request, shell layout.Shell, message string) {
	h.render(w, r, shell, comparepage.Content(comparepage.PageData{Error: message}))
}

// parseProductIDs reads the comma-separated ids query value, using only the
// first two entries.
func parseProductIDs(raw string) ([2]int64, error) {
	var ids [2]int64

	parts := make([]string, 0, 2)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) < 2 {
		return ids, fmt.Errorf("Two product IDs are required in query params.")
	}
	for i, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return ids, fmt.Errorf("invalid product id: %s", part)
		}
		ids[i] = id
	}
	return ids, nil
}
