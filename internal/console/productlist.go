package console

import (
	"context"
	"sync"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/domain"
	"github.com/gcg-eyewear/storefront/internal/fetch"
	apperrors "github.com/gcg-eyewear/storefront/pkg/errors"
)

// ProductList drives the admin product listing: a search term, the filter
// dimensions, a multi-select set of product ids and a pending-delete
// confirmation. Any change to the search term or a filter re-fetches
// immediately; the selection is cleared on every re-fetch so it can never
// reference rows the operator no longer sees.
type ProductList struct {
	mu sync.Mutex

	client  *api.Client
	fetcher *fetch.Fetcher[[]domain.Product]

	filter        domain.ProductFilter
	selected      map[string]struct{}
	pendingDelete string
}

// NewProductList creates the listing controller.
func NewProductList(client *api.Client) *ProductList {
	l := &ProductList{
		client:   client,
		selected: make(map[string]struct{}),
	}
	l.fetcher = fetch.New(func(ctx context.Context) ([]domain.Product, error) {
		l.mu.Lock()
		filter := l.filter
		l.mu.Unlock()
		return client.Admin.Products(ctx, filter)
	})
	return l
}

// Refresh re-fetches the listing with the current filter and clears the
// selection.
func (l *ProductList) Refresh(ctx context.Context) {
	l.mu.Lock()
	l.selected = make(map[string]struct{})
	l.mu.Unlock()
	l.fetcher.Fetch(ctx)
}

// Snapshot returns the listing's current fetch state.
func (l *ProductList) Snapshot() fetch.Snapshot[[]domain.Product] {
	return l.fetcher.Snapshot()
}

// SetSearch updates the search term and re-fetches.
func (l *ProductList) SetSearch(ctx context.Context, term string) {
	l.mu.Lock()
	l.filter.Search = term
	l.mu.Unlock()
	l.Refresh(ctx)
}

// SetFilter replaces the filter dimensions (search term included) and
// re-fetches.
func (l *ProductList) SetFilter(ctx context.Context, filter domain.ProductFilter) {
	l.mu.Lock()
	l.filter = filter
	l.mu.Unlock()
	l.Refresh(ctx)
}

// Filter returns the active filter.
func (l *ProductList) Filter() domain.ProductFilter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// ToggleSelect adds the id to the selection, or removes it when already
// selected.
func (l *ProductList) ToggleSelect(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.selected[id]; ok {
		delete(l.selected, id)
		return
	}
	l.selected[id] = struct{}{}
}

// SelectAll selects every row currently shown.
func (l *ProductList) SelectAll() {
	snap := l.fetcher.Snapshot()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selected = make(map[string]struct{}, len(snap.Data))
	for _, p := range snap.Data {
		l.selected[p.ID] = struct{}{}
	}
}

// ClearSelection empties the selection set.
func (l *ProductList) ClearSelection() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selected = make(map[string]struct{})
}

// Selected returns the selected product ids in listing order.
func (l *ProductList) Selected() []string {
	snap := l.fetcher.Snapshot()
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.selected))
	for _, p := range snap.Data {
		if _, ok := l.selected[p.ID]; ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// BulkSetStatus applies the status to the full current selection in one
// request, then clears the selection and re-fetches.
func (l *ProductList) BulkSetStatus(ctx context.Context, status domain.Status) error {
	ids := l.Selected()
	if len(ids) == 0 {
		return apperrors.InvalidInput("no products selected")
	}
	if err := l.client.Admin.BulkUpdateStatus(ctx, ids, status); err != nil {
		return err
	}
	l.Refresh(ctx)
	return nil
}

// SetStatus updates a single row's status and re-fetches.
func (l *ProductList) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if err := l.client.Admin.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	l.Refresh(ctx)
	return nil
}

// RequestDelete stages a row deletion pending operator confirmation. No
// request is issued until ConfirmDelete.
func (l *ProductList) RequestDelete(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = id
}

// PendingDelete returns the id staged for deletion, or "".
func (l *ProductList) PendingDelete() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingDelete
}

// CancelDelete drops the staged deletion.
func (l *ProductList) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = ""
}

// ConfirmDelete issues the staged deletion and re-fetches. Calling it with
// nothing staged is an error.
func (l *ProductList) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	id := l.pendingDelete
	l.pendingDelete = ""
	l.mu.Unlock()

	if id == "" {
		return apperrors.InvalidInput("no deletion pending confirmation")
	}
	if err := l.client.Products.Delete(ctx, id); err != nil {
		return err
	}
	l.Refresh(ctx)
	return nil
}
