// Package submission implements the two-product entry flow: local validation,
// sequential product creation, and optional purchase-link attachment through
// the feature resolver.
package submission

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"productcompare.org/web/internal/web/backend"
	"productcompare.org/web/internal/web/features"
)

// PurchaseLinkFeature is the catalog feature that carries a product's buy URL.
const PurchaseLinkFeature = "Purchase Link"

// ErrNameRequired is returned before any network call when either entry is
// missing a product name.
var ErrNameRequired = errors.New("product name is required in both forms")

// Entry is one product form as entered by the user. All fields arrive as raw
// form strings.
type Entry struct {
	Name         string
	Category     string
	Price        string
	PurchaseLink string
}

// Backend is the slice of the backend service the flow depends on.
type Backend interface {
	features.Catalog
	Workspace(ctx context.Context, token string) (*backend.Workspace, error)
	CreateProduct(ctx context.Context, token string, req backend.ProductRequest) (*backend.Product, error)
	SetFeatureValue(ctx context.Context, token string, productID, featureID int64, value string) error
}

// Flow submits pairs of products for comparison.
type Flow struct {
	svc Backend
}

// NewFlow wires the submission flow.
func NewFlow(svc Backend) *Flow {
	return &Flow{svc: svc}
}

// Submit validates and creates both products in order and returns their ids in
// creation order. The two creations run sequentially so the feature-name cache
// stays coherent across them. A failure partway leaves already-created
// products in place; there is no compensating rollback.
func (f *Flow) Submit(ctx context.Context, token string, entries [2]Entry) ([2]int64, error) {
	var ids [2]int64

	for _, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			return ids, ErrNameRequired
		}
	}

	// Seed the resolver from the currently loaded feature catalog so repeated
	// names across the two products resolve without duplicate creations.
	workspace, err := f.svc.Workspace(ctx, token)
	if err != nil {
		return ids, err
	}
	resolver := features.NewResolver(f.svc, token, workspace.Features)

	for i, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		created, err := f.svc.CreateProduct(ctx, token, backend.ProductRequest{
			Name:     name,
			Category: entry.Category,
			ImageURL: nil,
			Price:    ParsePrice(entry.Price),
		})
		if err != nil {
			return ids, err
		}
		ids[i] = created.ID

		raw := strings.TrimSpace(entry.PurchaseLink)
		if raw == "" || raw == "-" {
			continue
		}
		link := NormalizeURL(raw)
		if link == "" {
			return ids, fmt.Errorf("invalid purchase link: %s", name)
		}

		featureID, err := resolver.Ensure(ctx, PurchaseLinkFeature)
		if err != nil {
			return ids, err
		}
		if err := f.svc.SetFeatureValue(ctx, token, created.ID, featureID, link); err != nil {
			return ids, err
		}
	}

	return ids, nil
}

// NormalizeURL accepts http(s) URLs as-is, upgrades www.-prefixed hosts to
// https, and rejects everything else (including placeholder values) by
// returning the empty string.
func NormalizeURL(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" || raw == "-" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if strings.HasPrefix(raw, "www.") {
		return "https://" + raw
	}
	return ""
}

// ParsePrice turns a raw price string into a number, or nil when the string is
// empty or not numeric. The client never sends a non-numeric price.
func ParsePrice(value string) *float64 {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
