package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/shopify"
)

type Catalog interface {
	List(ctx context.Context, opts catalog.ListOptions) (catalog.Page, error)
	Get(ctx context.Context, handle string) (catalog.Product, error)
}

type Sessions interface {
	Session(ctx context.Context, key string) *cart.Session
}

type Pinger interface {
	Ping(ctx context.Context) shopify.HealthResult
}

type Deps struct {
	Logger *zap.Logger

	Catalog  Catalog
	Sessions Sessions
	Upstream Pinger

	CORSAllowOrigins []string
	SessionCookie    middleware.SessionCookie
	PageSize         int
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(d.CORSAllowOrigins))

	health := &HealthHandler{upstream: d.Upstream}
	r.Get("/health", health.Service)
	r.Get("/health/upstreams", health.Upstreams)

	products := &CatalogHandler{catalog: d.Catalog, pageSize: d.PageSize, logger: logger}
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Get("/{handle}", products.Get)
	})

	carts := &CartHandler{sessions: d.Sessions, logger: logger}
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(d.SessionCookie.Handler)
		r.Get("/", carts.Get)
		r.Delete("/", carts.Clear)
		r.Post("/refresh", carts.Refresh)
		r.Get("/checkout", carts.Checkout)
		r.Post("/items", carts.AddItem)
		r.Patch("/items/{lineId}", carts.UpdateItem)
		r.Delete("/items/{lineId}", carts.RemoveItem)
	})

	themes := &ThemeHandler{logger: logger}
	r.Route("/api/themes", func(r chi.Router) {
		r.Get("/", themes.List)
		r.Get("/{mode}/timeline", themes.Timeline)
	})

	return r
}
