package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"productcompare.org/web/internal/web/backend"
)

func TestHTTPServiceMeSendsAuthToken(t *testing.T) {
	t.Parallel()

	var receivedToken string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		receivedToken = r.Header.Get("X-Auth-Token")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(backend.Identity{Username: "asha"})
	}))
	t.Cleanup(ts.Close)

	svc, err := backend.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	identity, err := svc.Me(context.Background(), "session-token")
	require.NoError(t, err)
	require.Equal(t, "asha", identity.Username)
	require.Equal(t, "session-token", receivedToken)
}

func TestHTTPServiceLoginOmitsAuthToken(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("X-Auth-Token"))

		var creds backend.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "asha", creds.Username)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(backend.AuthSession{Token: "t-1", Username: creds.Username})
	}))
	t.Cleanup(ts.Close)

	svc, err := backend.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), backend.Credentials{Username: "asha", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "t-1", session.Token)
}

func TestHTTPServiceCreateProductBody(t *testing.T) {
	t.Parallel()

	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(backend.Product{ID: 7, Name: "Pixel 9"})
	}))
	t.Cleanup(ts.Close)

	svc, err := backend.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	price := 49999.0
	created, err := svc.CreateProduct(context.Background(), "token", backend.ProductRequest{
		Name:     "Pixel 9",
		Category: "electronic",
		Price:    &price,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), created.ID)

	require.Equal(t, "Pixel 9", body["name"])
	require.Equal(t, "electronic", body["category"])
	require.Nil(t, body["imageUrl"])
	require.InDelta(t, 49999.0, body["price"], 0.001)
}

func TestHTTPServiceSetFeatureValuePath(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/3/features/12/value", r.URL.Path)
		require.Equal(t, http.MethodPut, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "https://www.example.com", body["value"])

		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(ts.Close)

	svc, err := backend.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)
	require.NoError(t, svc.SetFeatureValue(context.Background(), "token", 3, 12, "https://www.example.com"))
}

func TestHTTPServiceRecommendationQuery(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/compare/recommendation", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("productA"))
		require.Equal(t, "2", r.URL.Query().Get("productB"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(backend.Recommendation{RecommendedProductID: 2, Reason: "better battery"})
	}))
	t.Cleanup(ts.Close)

	svc, err := backend.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	rec, err := svc.Recommendation(context.Background(), "token", 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), rec.RecommendedProductID)
	require.Equal(t, "better battery", rec.Reason)
}

func TestHTTPServiceErrorBodySurfacedVerbatim(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("Feature already exists"))
	}))
	t.Cleanup(ts.Close)

	svc, err := backend.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = svc.CreateFeature(context.Background(), "token", "Color")
	require.EqualError(t, err, "Feature already exists")
}

func TestHTTPServiceEmptyErrorBodyFallsBack(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	svc, err := backend.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = svc.Features(context.Background(), "token")
	require.EqualError(t, err, "request failed")
}

func TestHTTPServiceKeepsBasePathPrefix(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/features", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Color"}]`))
	}))
	t.Cleanup(ts.Close)

	svc, err := backend.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	features, err := svc.Features(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, features, 1)
	require.Equal(t, "Color", features[0].Name)
}
