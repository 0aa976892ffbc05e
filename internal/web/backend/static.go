package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// StaticService is an in-memory Service for development and tests. It mimics
// the backend's observable behaviour closely enough for the client's flows:
// duplicate feature names fail creation (so the resolver's conflict fallback
// has something to fall back from), unknown tokens are rejected, and created
// products pick up seeded demo specifications and store offerings.
type StaticService struct {
	mu sync.Mutex

	users  map[string]string
	tokens map[string]string

	features      []Feature
	nextFeatureID int64

	products      map[int64]*Product
	nextProductID int64
	stores        map[int64][]StoreOffering
}

// NewStaticService returns an empty in-memory backend.
func NewStaticService() *StaticService {
	return &StaticService{
		users:         make(map[string]string),
		tokens:        make(map[string]string),
		products:      make(map[int64]*Product),
		stores:        make(map[int64][]StoreOffering),
		nextFeatureID: 1,
		nextProductID: 1,
	}
}

// Register creates an account and returns its first session.
func (s *StaticService) Register(ctx context.Context, creds Credentials) (*AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[creds.Username]; exists {
		return nil, fmt.Errorf("username already taken: %s", creds.Username)
	}
	s.users[creds.Username] = creds.Password
	return s.issueToken(creds.Username), nil
}

// Login exchanges credentials for a session token.
func (s *StaticService) Login(ctx context.Context, creds Credentials) (*AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	password, exists := s.users[creds.Username]
	if !exists || password != creds.Password {
		return nil, fmt.Errorf("invalid username or password")
	}
	return s.issueToken(creds.Username), nil
}

// Logout invalidates the session token.
func (s *StaticService) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return err
	}
	delete(s.tokens, token)
	return nil
}

// Me resolves the token into the owning account.
func (s *StaticService) Me(ctx context.Context, token string) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, err := s.authenticate(token)
	if err != nil {
		return nil, err
	}
	return &Identity{Username: username}, nil
}

// Workspace returns the user's aggregate comparison workspace.
func (s *StaticService) Workspace(ctx context.Context, token string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return nil, err
	}
	ws := &Workspace{
		Features: append([]Feature(nil), s.features...),
	}
	for _, p := range s.products {
		ws.Products = append(ws.Products, Feature{ID: p.ID, Name: p.Name})
	}
	return ws, nil
}

// Features lists the full feature catalog.
func (s *StaticService) Features(ctx context.Context, token string) ([]Feature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return nil, err
	}
	return append([]Feature(nil), s.features...), nil
}

// CreateFeature adds a catalog feature, rejecting duplicate names the way the
// backend's unique constraint does.
func (s *StaticService) CreateFeature(ctx context.Context, token, name string) (*Feature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return nil, err
	}
	return s.createFeatureLocked(name)
}

// CreateProduct creates a product and attaches the demo specification set for
// its category plus a couple of seeded store offerings.
func (s *StaticService) CreateProduct(ctx context.Context, token string, req ProductRequest) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return nil, err
	}

	product := &Product{
		ID:       s.nextProductID,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Features: demoFeatures(req.Category),
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	s.nextProductID++
	s.products[product.ID] = product
	s.stores[product.ID] = demoOfferings(product)

	for _, feature := range product.Features {
		if _, err := s.createFeatureLocked(feature.Name); err != nil {
			continue
		}
	}
	return cloneProduct(product), nil
}

// Product fetches one product with its embedded feature list.
func (s *StaticService) Product(ctx context.Context, token string, id int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return nil, err
	}
	product, exists := s.products[id]
	if !exists {
		return nil, fmt.Errorf("product not found: %d", id)
	}
	return cloneProduct(product), nil
}

// SetFeatureValue writes a feature value on a product, attaching the feature
// when the product does not carry it yet.
func (s *StaticService) SetFeatureValue(ctx context.Context, token string, productID, featureID int64, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return err
	}
	product, exists := s.products[productID]
	if !exists {
		return fmt.Errorf("product not found: %d", productID)
	}
	var catalog *Feature
	for i := range s.features {
		if s.features[i].ID == featureID {
			catalog = &s.features[i]
			break
		}
	}
	if catalog == nil {
		return fmt.Errorf("feature not found: %d", featureID)
	}
	for i := range product.Features {
		if product.Features[i].Name == catalog.Name {
			product.Features[i].Value = value
			return nil
		}
	}
	product.Features = append(product.Features, ProductFeature{Name: catalog.Name, Value: value})
	return nil
}

// StoreOfferings lists storefront offerings for a product.
func (s *StaticService) StoreOfferings(ctx context.Context, token string, productID int64) ([]StoreOffering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return nil, err
	}
	if _, exists := s.products[productID]; !exists {
		return nil, fmt.Errorf("product not found: %d", productID)
	}
	return append([]StoreOffering(nil), s.stores[productID]...), nil
}

// Recommendation picks the product with the richer specification set, falling
// back to product A on a tie.
func (s *StaticService) Recommendation(ctx context.Context, token string, productA, productB int64) (*Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authenticate(token); err != nil {
		return nil, err
	}
	first, okA := s.products[productA]
	second, okB := s.products[productB]
	if !okA || !okB {
		return nil, fmt.Errorf("products not found: %d, %d", productA, productB)
	}

	pick := first
	if len(second.Features) > len(first.Features) {
		pick = second
	}
	return &Recommendation{
		RecommendedProductID: pick.ID,
		Reason:               fmt.Sprintf("%s covers more of the compared specifications.", pick.Name),
	}, nil
}

// SetStoreOfferings overrides the seeded offerings for a product.
func (s *StaticService) SetStoreOfferings(productID int64, offerings []StoreOffering) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[productID] = append([]StoreOffering(nil), offerings...)
}

func (s *StaticService) issueToken(username string) *AuthSession {
	token := "token-" + strconv.Itoa(len(s.tokens)+1) + "-" + username
	s.tokens[token] = username
	return &AuthSession{Token: token, Username: username}
}

func (s *StaticService) authenticate(token string) (string, error) {
	username, exists := s.tokens[token]
	if !exists {
		return "", fmt.Errorf("invalid session token")
	}
	return username, nil
}

func (s *StaticService) createFeatureLocked(name string) (*Feature, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, feature := range s.features {
		if strings.ToLower(strings.TrimSpace(feature.Name)) == key {
			return nil, fmt.Errorf("feature already exists: %s", feature.Name)
		}
	}
	feature := Feature{ID: s.nextFeatureID, Name: strings.TrimSpace(name)}
	s.nextFeatureID++
	s.features = append(s.features, feature)
	return &feature, nil
}

func cloneProduct(p *Product) *Product {
	clone := *p
	clone.Features = append([]ProductFeature(nil), p.Features...)
	if p.Price != nil {
		price := *p.Price
		clone.Price = &price
	}
	return &clone
}

func demoFeatures(category string) []ProductFeature {
	if category == "non-electronic" {
		return []ProductFeature{
			{Name: "Material", Value: "Cotton"},
			{Name: "Warranty", Value: "6 months"},
		}
	}
	return []ProductFeature{
		{Name: "Battery", Value: "5000 mAh"},
		{Name: "Display", Value: "6.5 inch"},
		{Name: "Warranty", Value: "1 year"},
	}
}

func demoOfferings(p *Product) []StoreOffering {
	base := 999.0
	if p.Price != nil {
		base = *p.Price
	}
	return []StoreOffering{
		{
			StoreName: "Amazon",
			Price:     json.Number(strconv.FormatFloat(base, 'f', -1, 64)),
			BuyLink:   "https://www.amazon.in/s?k=" + strings.ReplaceAll(strings.TrimSpace(p.Name), " ", "+"),
		},
		{
			StoreName: "Flipkart",
			Price:     json.Number(strconv.FormatFloat(base+50, 'f', -1, 64)),
			BuyLink:   "https://www.flipkart.com/search?q=" + strings.ReplaceAll(strings.TrimSpace(p.Name), " ", "+"),
		},
	}
}
