package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"
)

type Config struct {
	Port            string        `help:"HTTP listen port." env:"PORT" default:"8080"`
	UpstreamTimeout time.Duration `help:"Timeout for calls to the Storefront API." env:"UPSTREAM_TIMEOUT" default:"10s"`

	// CORS
	CORSAllowOrigins []string `name:"cors-allow-origins" help:"Allowed browser origins." env:"CORS_ALLOW_ORIGINS" default:"*" sep:","`

	Shopify ShopifyConfig `embed:"" prefix:"shopify-"`
	Cart    CartConfig    `embed:"" prefix:"cart-"`
	Catalog CatalogConfig `embed:"" prefix:"catalog-"`

	DatabaseDSN   string `name:"database-dsn" help:"Postgres DSN, required by the postgres cart store and event sequences." env:"DATABASE_DSN"`
	RunMigrations bool   `help:"Apply embedded migrations on startup." env:"RUN_MIGRATIONS" default:"true" negatable:""`

	RabbitMQURL   string `name:"rabbitmq-url" help:"AMQP URL for cart lifecycle events, empty disables publishing." env:"RABBITMQ_URL"`
	EventProducer string `help:"Producer name stamped on published events." env:"EVENT_PRODUCER" default:"storefront-go"`

	LogLevel  string `help:"Log level." env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format." env:"LOG_FORMAT" default:"json" enum:"json,console"`
}

type ShopifyConfig struct {
	StoreDomain string `help:"Shop domain, e.g. my-shop.myshopify.com." env:"SHOPIFY_STORE_DOMAIN"`
	AccessToken string `help:"Storefront API public access token." env:"SHOPIFY_STOREFRONT_ACCESS_TOKEN"`
	APIVersion  string `name:"api-version" help:"Storefront API version." env:"SHOPIFY_API_VERSION" default:"2026-01"`
}

type CartConfig struct {
	Store         string        `help:"Where stored cart ids live." env:"CART_STORE" default:"memory" enum:"memory,postgres"`
	ExpiryPolicy  string        `help:"Which failures discard a stored cart id." env:"CART_EXPIRY_POLICY" default:"any" enum:"any,rejection"`
	SessionTTL    time.Duration `help:"Idle time before a shopper session is dropped from memory." env:"CART_SESSION_TTL" default:"30m"`
	SessionCookie string        `help:"Name of the shopper session cookie." env:"CART_SESSION_COOKIE" default:"storefront_session"`
	SecureCookie  bool          `help:"Mark the session cookie Secure." env:"CART_SECURE_COOKIE"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `name:"cache-ttl" help:"How long catalog responses are cached." env:"CATALOG_CACHE_TTL" default:"5m"`
	PageSize int           `help:"Default number of products listed." env:"CATALOG_PAGE_SIZE" default:"20"`
}

// Load parses command line args, falling back to environment variables and defaults.
func Load(args []string, options ...kong.Option) (Config, error) {
	var cfg Config
	options = append([]kong.Option{
		kong.Name("storefront"),
		kong.Description("Storefront backend-for-frontend: catalog and cart over the Storefront API."),
	}, options...)
	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return Config{}, fmt.Errorf("build config parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.CORSAllowOrigins = cleanOrigins(cfg.CORSAllowOrigins)
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Cart.Store == "postgres" && strings.TrimSpace(c.DatabaseDSN) == "" {
		return fmt.Errorf("cart store %q requires --database-dsn", c.Cart.Store)
	}
	if c.Catalog.PageSize < 0 {
		return fmt.Errorf("catalog page size must not be negative, got %d", c.Catalog.PageSize)
	}
	return nil
}

func cleanOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
