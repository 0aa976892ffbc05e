package backend

import "encoding/json"

// Credentials carries a username/password pair for register and login calls.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthSession is the backend's response to a successful register or login.
type AuthSession struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Identity describes the account behind a session token.
type Identity struct {
	Username string `json:"username"`
}

// Feature is a shared catalog entry referenced by name across products.
type Feature struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductFeature is one named specification attached to a product. Value and
// price are free text; either may be empty.
type ProductFeature struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Price string `json:"price"`
}

// Product is a product with its embedded feature list as returned by the backend.
type Product struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    *float64         `json:"price"`
	ImageURL string           `json:"imageUrl"`
	BuyLink  string           `json:"buyLink"`
	Features []ProductFeature `json:"features"`
}

// ProductRequest is the creation payload for a new product.
type ProductRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	ImageURL *string  `json:"imageUrl"`
	Price    *float64 `json:"price"`
}

// StoreOffering is one storefront listing for a product. Price stays a
// json.Number so the page shows the backend's exact decimal rendering; a null
// price decodes to the empty string.
type StoreOffering struct {
	StoreName string      `json:"storeName"`
	Price     json.Number `json:"price"`
	BuyLink   string      `json:"buyLink"`
}

// Recommendation is the backend's pick between two compared products.
type Recommendation struct {
	RecommendedProductID int64  `json:"recommendedProductId"`
	Reason               string `json:"reason"`
}

// Workspace is the aggregate comparison workspace for the signed-in user.
// The client only consumes the feature catalog.
type Workspace struct {
	Products []Feature `json:"products"`
	Features []Feature `json:"features"`
}
