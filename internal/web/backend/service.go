package backend

import "context"

// Service exposes the comparison backend to the rest of the client. The token
// argument is the caller's session token; methods that accept an empty token
// send the request unauthenticated.
type Service interface {
	// Register creates an account and returns its first session.
	Register(ctx context.Context, creds Credentials) (*AuthSession, error)
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, creds Credentials) (*AuthSession, error)
	// Logout invalidates the session token server-side.
	Logout(ctx context.Context, token string) error
	// Me resolves the token into the owning account.
	Me(ctx context.Context, token string) (*Identity, error)

	// Workspace returns the user's aggregate comparison workspace.
	Workspace(ctx context.Context, token string) (*Workspace, error)
	// Features lists the full feature catalog.
	Features(ctx context.Context, token string) ([]Feature, error)
	// CreateFeature adds a catalog feature by display name.
	CreateFeature(ctx context.Context, token, name string) (*Feature, error)

	// CreateProduct creates a product and returns it with its assigned id.
	CreateProduct(ctx context.Context, token string, req ProductRequest) (*Product, error)
	// Product fetches one product with its embedded feature list.
	Product(ctx context.Context, token string, id int64) (*Product, error)
	// SetFeatureValue writes a feature value on a product.
	SetFeatureValue(ctx context.Context, token string, productID, featureID int64, value string) error
	// StoreOfferings lists storefront offerings for a product.
	StoreOfferings(ctx context.Context, token string, productID int64) ([]StoreOffering, error)
	// Recommendation asks the backend which of the two products is the better pick.
	Recommendation(ctx context.Context, token string, productA, productB int64) (*Recommendation, error)
}
