// Package console implements the admin back-office workflows: dashboard,
// product list and form, collections manager and the image upload center.
// Each controller owns its own state and is mutated only through its own
// methods; nothing here is shared between controllers.
package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/domain"
	"github.com/gcg-eyewear/storefront/internal/fetch"
)

// DefaultRecentLimit is how many recently updated products the dashboard
// shows alongside the aggregate counters.
const DefaultRecentLimit = 5

// DashboardData is the joined result of the two dashboard requests.
type DashboardData struct {
	Stats  domain.CatalogStats
	Recent []domain.Product
}

// Dashboard loads catalog stats and the most recent products concurrently
// and joins them. A failure in either request settles the whole view into
// an explicit error state instead of leaving it loading forever.
type Dashboard struct {
	fetcher *fetch.Fetcher[DashboardData]
}

// NewDashboard creates the dashboard controller.
func NewDashboard(client *api.Client, logger *slog.Logger, recentLimit int) *Dashboard {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	load := func(ctx context.Context) (DashboardData, error) {
		var (
			wg       sync.WaitGroup
			stats    *domain.CatalogStats
			recent   []domain.Product
			statsErr error
			listErr  error
		)

		wg.Add(2)
		go func() {
			defer wg.Done()
			stats, statsErr = client.Admin.Stats(ctx)
		}()
		go func() {
			defer wg.Done()
			recent, listErr = client.Admin.Products(ctx, domain.ProductFilter{Limit: recentLimit})
		}()
		wg.Wait()

		if statsErr != nil {
			logger.ErrorContext(ctx, "dashboard stats load failed", slog.String("error", statsErr.Error()))
			return DashboardData{}, statsErr
		}
		if listErr != nil {
			logger.ErrorContext(ctx, "dashboard recent products load failed", slog.String("error", listErr.Error()))
			return DashboardData{}, listErr
		}
		return DashboardData{Stats: *stats, Recent: recent}, nil
	}

	return &Dashboard{fetcher: fetch.New(load)}
}

// Refresh loads both dashboard sections and blocks until they settle.
func (d *Dashboard) Refresh(ctx context.Context) {
	d.fetcher.Fetch(ctx)
}

// Snapshot returns the dashboard's current state.
func (d *Dashboard) Snapshot() fetch.Snapshot[DashboardData] {
	return d.fetcher.Snapshot()
}
