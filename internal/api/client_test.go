package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcg-eyewear/storefront/internal/domain"
	"github.com/gcg-eyewear/storefront/internal/session"
	apperrors "github.com/gcg-eyewear/storefront/pkg/errors"
	"github.com/gcg-eyewear/storefront/pkg/logger"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return store
}

func newTestClient(t *testing.T, store *session.Store, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", store, logger.NewWithWriter("api-test", "error", io.Discard))
}

func TestClientAttachesBearerToken(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetSession("tok-123", domain.AdminUser{ID: "u1", Username: "root", Role: domain.RoleAdmin}))

	var gotAuth string
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	_, err := client.Products.List(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientOmitsAuthorizationWhenLoggedOut(t *testing.T) {
	store := newTestStore(t)

	var gotAuth string
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	_, err := client.Collections.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientInvalidatesSessionOn401(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetSession("stale", domain.AdminUser{ID: "u1", Username: "root"}))

	var invalidations atomic.Int32
	store.OnInvalidate(func() { invalidations.Add(1) })

	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Could not validate credentials"}`))
	}))

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Admin.Stats(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	}
	assert.Equal(t, int32(1), invalidations.Load(), "callback must fire once per session")
	assert.False(t, store.Authenticated())
}

func TestClientExtractsDetailFromErrorBody(t *testing.T) {
	store := newTestStore(t)
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Product not found"}`))
	}))

	_, err := client.Products.Get(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "Product not found")
}

func TestLoginStoresSession(t *testing.T) {
	store := newTestStore(t)
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/admin/login", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"username":"root"`)
		w.Write([]byte(`{
			"access_token": "jwt-abc",
			"token_type": "bearer",
			"expires_in": 1800,
			"user_info": {"id": "u1", "username": "root", "role": "admin"}
		}`))
	}))

	token, err := client.Admin.Login(context.Background(), domain.Credentials{Username: "root", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token.AccessToken)
	assert.True(t, store.Authenticated())
	assert.Equal(t, "jwt-abc", store.Token())

	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestFailedLoginClearsStaleSession(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetSession("current", domain.AdminUser{ID: "u1", Username: "root"}))

	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Incorrect username or password"}`))
	}))

	// 401 handling is global, so a rejected login also invalidates
	// whatever session was held.
	_, err := client.Admin.Login(context.Background(), domain.Credentials{Username: "root", Password: "wrong"})
	require.Error(t, err)
	assert.False(t, store.Authenticated())
}

func TestProductFilterQuery(t *testing.T) {
	featured := true
	min, max := 150.0, 400.5

	tests := []struct {
		name   string
		filter domain.ProductFilter
		want   map[string]string
		absent []string
	}{
		{
			name:   "zero filter sends nothing",
			filter: domain.ProductFilter{},
			absent: []string{"collection", "gender", "type", "status", "is_featured", "is_on_sale", "search", "price_min", "price_max", "skip", "limit"},
		},
		{
			name: "full filter",
			filter: domain.ProductFilter{
				Collection: "heritage",
				Gender:     "women",
				Type:       "sunglasses",
				Status:     "active",
				IsFeatured: &featured,
				Search:     "aviator",
				PriceMin:   &min,
				PriceMax:   &max,
				Skip:       20,
				Limit:      10,
			},
			want: map[string]string{
				"collection":  "heritage",
				"gender":      "women",
				"type":        "sunglasses",
				"status":      "active",
				"is_featured": "true",
				"search":      "aviator",
				"price_min":   "150",
				"price_max":   "400.5",
				"skip":        "20",
				"limit":       "10",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := filterQuery(tt.filter)
			for k, v := range tt.want {
				assert.Equal(t, v, q.Get(k), k)
			}
			for _, k := range tt.absent {
				assert.False(t, q.Has(k), k)
			}
		})
	}
}

func TestUpdateStatusUsesQueryParameter(t *testing.T) {
	store := newTestStore(t)
	var gotPath, gotStatus, gotMethod string
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotStatus = r.URL.Query().Get("status")
		w.Write([]byte(`{}`))
	}))

	err := client.Admin.UpdateStatus(context.Background(), "p1", domain.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/admin/products/p1/status", gotPath)
	assert.Equal(t, "inactive", gotStatus)
}

func TestBulkUpdateStatusSendsIDsInBody(t *testing.T) {
	store := newTestStore(t)
	var gotBody string
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/products/bulk/status", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{}`))
	}))

	err := client.Admin.BulkUpdateStatus(context.Background(), []string{"p1", "p2"}, domain.StatusActive)
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_ids": ["p1", "p2"], "status": "active"}`, gotBody)
}

func TestUploadSendsMultipartFile(t *testing.T) {
	store := newTestStore(t)
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/upload", r.URL.Path)
		require.Equal(t, "products", r.URL.Query().Get("category"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File["file"]
		require.Len(t, files, 1)
		assert.Equal(t, "frame.jpg", files[0].Filename)

		w.Write([]byte(`{"image_url": "/static/uploads/products/frame.jpg"}`))
	}))

	result, err := client.Admin.Upload(context.Background(), File{
		Name:        "frame.jpg",
		ContentType: "image/jpeg",
		Size:        3,
		Data:        strings.NewReader("abc"),
	}, "products")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/products/frame.jpg", result.ImageURL)
}

func TestUploadMultipleRepeatsFilesField(t *testing.T) {
	store := newTestStore(t)
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/upload/multiple", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.png", files[0].Filename)
		assert.Equal(t, "b.png", files[1].Filename)

		w.Write([]byte(`{"image_urls": ["/static/uploads/a.png", "/static/uploads/b.png"]}`))
	}))

	result, err := client.Admin.UploadMultiple(context.Background(), []File{
		{Name: "a.png", ContentType: "image/png", Data: strings.NewReader("aa")},
		{Name: "b.png", ContentType: "image/png", Data: strings.NewReader("bb")},
	}, "")
	require.NoError(t, err)
	require.Len(t, result.ImageURLs, 2)
	assert.Equal(t, "/static/uploads/a.png", result.ImageURLs[0])
}

func TestCollectionEndpointsUseExpectedPaths(t *testing.T) {
	store := newTestStore(t)
	var paths []string
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch {
		case (strings.HasSuffix(r.URL.Path, "/collections") || strings.HasSuffix(r.URL.Path, "/collections/active")) && r.Method == http.MethodGet:
			w.Write([]byte(`[{"id": "c1", "name": "Heritage", "slug": "heritage"}]`))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`{"id": "c1", "name": "Heritage", "slug": "heritage"}`))
		}
	}))

	ctx := context.Background()
	_, err := client.Collections.List(ctx)
	require.NoError(t, err)
	_, err = client.Collections.Active(ctx)
	require.NoError(t, err)
	_, err = client.Collections.BySlug(ctx, "heritage")
	require.NoError(t, err)
	_, err = client.Collections.Create(ctx, CollectionInput{Name: "Heritage", Slug: "heritage", IsActive: true})
	require.NoError(t, err)
	require.NoError(t, client.Collections.Delete(ctx, "c1"))

	assert.Equal(t, []string{
		"GET /api/collections",
		"GET /api/collections/active",
		"GET /api/collections/slug/heritage",
		"POST /api/collections",
		"DELETE /api/collections/c1",
	}, paths)
}
