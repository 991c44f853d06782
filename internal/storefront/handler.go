package storefront

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcg-eyewear/storefront/pkg/health"
	"github.com/gcg-eyewear/storefront/pkg/httputil"
	"github.com/gcg-eyewear/storefront/pkg/middleware"
)

// viewCacheMaxAge is the browser cache window for composed views, seconds.
const viewCacheMaxAge = 60

// Handler serves the composed storefront views over HTTP.
type Handler struct {
	views  *Views
	logger *slog.Logger
}

// NewHandler creates the storefront HTTP handler.
func NewHandler(views *Views, logger *slog.Logger) *Handler {
	return &Handler{views: views, logger: logger}
}

// Routes builds the chi router with the standard middleware stack plus the
// health and metrics endpoints.
func (h *Handler) Routes(hh *health.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogging(h.logger))
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.PrometheusMetrics())
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	r.Get("/health/live", hh.LivenessHandler())
	r.Get("/health/ready", hh.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/views", func(r chi.Router) {
		r.Use(middleware.CacheControl(viewCacheMaxAge))
		r.Get("/home", h.handleHome)
		r.Get("/about", h.handleAbout)
	})

	return r
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	view := h.views.Home(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

func (h *Handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.views.About()})
}
