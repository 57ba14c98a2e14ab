package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/shopify"
)

var ErrNotFound = errors.New("product not found")

// Remote is the part of the Storefront API client the catalog reads from.
type Remote interface {
	Products(ctx context.Context, first int) ([]shopify.Product, error)
	CollectionProducts(ctx context.Context, handle string, first int) ([]shopify.Product, error)
	ProductByHandle(ctx context.Context, handle string) (*shopify.Product, error)
}

type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

type ListOptions struct {
	First      int
	Collection string
}

type Page struct {
	Products []Product `json:"products"`
	Source   Source    `json:"source"`
}

type Service struct {
	remote   Remote
	lists    *ttlcache.Cache[string, []Product]
	products *ttlcache.Cache[string, Product]
	logger   *zap.Logger
}

func NewService(remote Remote, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		remote:   remote,
		lists:    ttlcache.New(ttlcache.WithTTL[string, []Product](ttl), ttlcache.WithDisableTouchOnHit[string, []Product]()),
		products: ttlcache.New(ttlcache.WithTTL[string, Product](ttl), ttlcache.WithDisableTouchOnHit[string, Product]()),
		logger:   logger,
	}
}

// Run evicts expired entries until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	go s.lists.Start()
	go s.products.Start()
	<-ctx.Done()
	s.lists.Stop()
	s.products.Stop()
	return nil
}

// List returns products for a storefront grid. A non-positive First is an
// empty page without touching the remote. Remote failures are served from
// the fallback list and are not cached.
func (s *Service) List(ctx context.Context, opts ListOptions) (Page, error) {
	if opts.First <= 0 {
		return Page{Products: []Product{}, Source: SourceRemote}, nil
	}

	key := "products:" + strconv.Itoa(opts.First)
	if opts.Collection != "" {
		key = "collection:" + opts.Collection + ":" + strconv.Itoa(opts.First)
	}
	if item := s.lists.Get(key); item != nil {
		return Page{Products: item.Value(), Source: SourceRemote}, nil
	}

	var (
		raw []shopify.Product
		err error
	)
	if opts.Collection != "" {
		raw, err = s.remote.CollectionProducts(ctx, opts.Collection, opts.First)
	} else {
		raw, err = s.remote.Products(ctx, opts.First)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Page{}, ctxErr
		}
		s.logger.Warn("catalog fetch failed, serving fallback",
			zap.String("collection", opts.Collection),
			zap.Int("first", opts.First),
			zap.Error(err),
		)
		return Page{Products: fallbackPage(opts), Source: SourceFallback}, nil
	}

	products := MapProducts(raw)
	s.lists.Set(key, products, ttlcache.DefaultTTL)
	return Page{Products: products, Source: SourceRemote}, nil
}

// Get returns one product by handle. When the remote fails the fallback list
// is searched by id; if that misses too the remote error is returned.
func (s *Service) Get(ctx context.Context, handle string) (Product, error) {
	if item := s.products.Get(handle); item != nil {
		return item.Value(), nil
	}

	raw, err := s.remote.ProductByHandle(ctx, handle)
	if err != nil {
		if p, ok := FallbackByID(handle); ok {
			s.logger.Warn("product fetch failed, serving fallback", zap.String("handle", handle), zap.Error(err))
			return p, nil
		}
		return Product{}, fmt.Errorf("get product %q: %w", handle, err)
	}
	if raw == nil {
		if p, ok := FallbackByID(handle); ok {
			return p, nil
		}
		return Product{}, ErrNotFound
	}

	p := MapProduct(*raw)
	s.products.Set(handle, p, ttlcache.DefaultTTL)
	return p, nil
}

// fallbackPage narrows the fallback list to a collection when it names one of
// the fallback categories, and to at most First entries.
func fallbackPage(opts ListOptions) []Product {
	all := Fallback()
	out := all
	if opts.Collection != "" {
		var matched []Product
		for _, p := range all {
			if p.Category == opts.Collection {
				matched = append(matched, p)
			}
		}
		if len(matched) > 0 {
			out = matched
		}
	}
	if len(out) > opts.First {
		out = out[:opts.First]
	}
	return out
}
