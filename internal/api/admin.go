package api

import (
	"context"
	"net/url"

	"github.com/gcg-eyewear/storefront/internal/domain"
)

// AdminAPI maps the authenticated back-office endpoints. Login is the only
// operation that works without a session; everything else sends the bearer
// token held by the session store.
type AdminAPI struct {
	client *Client
}

// bulkStatusRequest is the body for the bulk status endpoint.
type bulkStatusRequest struct {
	ProductIDs []string      `json:"product_ids"`
	Status     domain.Status `json:"status"`
}

// Login exchanges credentials for a bearer token and stores the resulting
// session.
func (a *AdminAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AdminToken, error) {
	var token domain.AdminToken
	if err := a.client.sendJSON(ctx, "POST", "/admin/login", nil, creds, &token); err != nil {
		return nil, err
	}
	if err := a.client.session.SetSession(token.AccessToken, token.UserInfo); err != nil {
		return nil, err
	}
	return &token, nil
}

// Register creates a new back-office account.
func (a *AdminAPI) Register(ctx context.Context, reg domain.Registration) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := a.client.sendJSON(ctx, "POST", "/admin/register", nil, reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the user record for the current token.
func (a *AdminAPI) Me(ctx context.Context) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := a.client.getJSON(ctx, "/admin/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Products fetches the unfiltered-by-status admin product listing.
func (a *AdminAPI) Products(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var products []domain.Product
	if err := a.client.getJSON(ctx, "/admin/products", filterQuery(filter), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateStatus sets the status of a single product.
func (a *AdminAPI) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	q := url.Values{"status": {string(status)}}
	path := "/admin/products/" + url.PathEscape(id) + "/status"
	return a.client.sendJSON(ctx, "PUT", path, q, nil, nil)
}

// BulkUpdateStatus sets the status of several products in one call.
func (a *AdminAPI) BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) error {
	body := bulkStatusRequest{ProductIDs: ids, Status: status}
	return a.client.sendJSON(ctx, "PUT", "/admin/products/bulk/status", nil, body, nil)
}

// Stats fetches the dashboard catalog counters.
func (a *AdminAPI) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	var stats domain.CatalogStats
	if err := a.client.getJSON(ctx, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Upload sends a single image under the given category folder.
func (a *AdminAPI) Upload(ctx context.Context, file File, category string) (*domain.UploadResult, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	var result domain.UploadResult
	if err := a.client.sendMultipart(ctx, "/admin/upload", q, "file", []File{file}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadMultiple sends several images in one request; the backend returns
// the stored URLs in the order the files were sent.
func (a *AdminAPI) UploadMultiple(ctx context.Context, files []File, category string) (*domain.MultiUploadResult, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	var result domain.MultiUploadResult
	if err := a.client.sendMultipart(ctx, "/admin/upload/multiple", q, "files", files, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
