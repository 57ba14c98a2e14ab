package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/shopify"
)

type fakeRemote struct {
	mu          sync.Mutex
	products    []shopify.Product
	byHandle    map[string]*shopify.Product
	err         error
	listCalls   int
	collections []string
	handleCalls int
}

func (f *fakeRemote) Products(_ context.Context, first int) ([]shopify.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	if first < len(f.products) {
		return f.products[:first], nil
	}
	return f.products, nil
}

func (f *fakeRemote) CollectionProducts(_ context.Context, handle string, first int) ([]shopify.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections = append(f.collections, handle)
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeRemote) ProductByHandle(_ context.Context, handle string) (*shopify.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handleCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byHandle[handle], nil
}

func money(amount string) shopify.MoneyV2 {
	return shopify.MoneyV2{Amount: amount, CurrencyCode: "HKD"}
}

func remoteProduct(handle, price, compareAt string) shopify.Product {
	p := shopify.Product{
		ID:         "gid://shopify/Product/" + handle,
		Handle:     handle,
		Title:      "Title " + handle,
		PriceRange: shopify.PriceRange{MinVariantPrice: money(price)},
	}
	if compareAt != "" {
		p.CompareAtPriceRange = &shopify.PriceRange{MinVariantPrice: money(compareAt)}
	}
	return p
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{name: "hkd whole", amount: "148.0", currency: "HKD", want: "HK$148"},
		{name: "hkd rounds", amount: "101.5", currency: "HKD", want: "HK$102"},
		{name: "other currency", amount: "12.5", currency: "USD", want: "USD 12.50"},
		{name: "zero", amount: "0", currency: "EUR", want: "EUR 0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestMapProductDefaults(t *testing.T) {
	p := MapProduct(remoteProduct("plain", "not-a-number", ""))

	assert.True(t, p.Price.IsZero())
	assert.Equal(t, "HK$0", p.FormattedPrice)
	assert.Equal(t, PlaceholderImage, p.Image)
	assert.Empty(t, p.Images)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, p.Name, p.Calligraphy)
	assert.Empty(t, p.VariantID)
	assert.Nil(t, p.OriginalPrice)
	assert.Nil(t, p.Features)
	require.Len(t, p.PickupMethods, 1)
	assert.Equal(t, "store", p.PickupMethods[0].ID)
	assert.Equal(t, "分店無紙換領", p.PickupMethods[0].Name)
}

func TestMapProductCompareAtPrice(t *testing.T) {
	tests := []struct {
		name      string
		compareAt string
		wantSet   bool
	}{
		{name: "greater is kept", compareAt: "198.0", wantSet: true},
		{name: "equal is dropped", compareAt: "148.0"},
		{name: "lower is dropped", compareAt: "100.0"},
		{name: "missing", compareAt: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MapProduct(remoteProduct("x", "148.0", tt.compareAt))
			if !tt.wantSet {
				assert.Nil(t, p.OriginalPrice)
				assert.Empty(t, p.FormattedOriginalPrice)
				return
			}
			require.NotNil(t, p.OriginalPrice)
			assert.Equal(t, "198", p.OriginalPrice.String())
			assert.Equal(t, "HK$198", p.FormattedOriginalPrice)
		})
	}
}

func TestMapProductMediaAndMetafields(t *testing.T) {
	raw := remoteProduct("x", "148.0", "")
	raw.Images.Edges = []shopify.Edge[shopify.Image]{
		{Node: shopify.Image{URL: "https://cdn/a.jpg"}},
		{Node: shopify.Image{URL: "https://cdn/b.jpg"}},
	}
	raw.Variants.Edges = []shopify.Edge[shopify.Variant]{
		{Node: shopify.Variant{ID: "gid://shopify/ProductVariant/1"}},
		{Node: shopify.Variant{ID: "gid://shopify/ProductVariant/2"}},
	}
	raw.Metafields = []*shopify.Metafield{
		nil,
		{Key: "foot_weight", Value: "每個約800克"},
		{Key: "product_features", Value: `["北海道瑤柱","臘味及蝦米"]`},
		{Key: "main_ingredients", Value: "白蘿蔔, 瑤柱 ,, 臘腸"},
		{Key: "redemption_locations", Value: `"全線分店"`},
		{Key: "redemption_period", Value: "2026年2月5日至2月14日"},
		{Key: "made_in", Value: "香港"},
		{Key: "hppye_tag", Value: "限定"},
	}

	p := MapProduct(raw)

	assert.Equal(t, "https://cdn/a.jpg", p.Image)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, p.Images)
	assert.Equal(t, "gid://shopify/ProductVariant/1", p.VariantID)
	assert.Equal(t, "每個約800克", p.Weight)
	assert.Equal(t, []string{"北海道瑤柱", "臘味及蝦米"}, p.Features)
	assert.Equal(t, []string{"白蘿蔔", "瑤柱", "臘腸"}, p.Ingredients)
	assert.Equal(t, []string{`"全線分店"`}, p.RedemptionLocations)
	assert.Equal(t, "2026年2月5日至2月14日", p.RedemptionPeriod)
	assert.Equal(t, "香港", p.MadeIn)
	assert.Equal(t, "限定", p.Tag)
}

func TestFallbackList(t *testing.T) {
	products := Fallback()
	require.Len(t, products, 3)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		assert.Equal(t, "HKD", p.Currency)
		require.NotNil(t, p.OriginalPrice)
		assert.True(t, p.OriginalPrice.GreaterThan(p.Price))
		assert.NotEmpty(t, p.Images)
	}
	assert.Equal(t, []string{
		"mx-turnip-pudding-with-conpoy",
		"mx-turnip-pudding-with-mushroom-taro",
		"mx-taro-pudding",
	}, ids)

	p, ok := FallbackByID("mx-turnip-pudding-with-mushroom-taro")
	require.True(t, ok)
	assert.Equal(t, "HK$102", p.FormattedPrice)
	assert.Equal(t, "HK$133", p.FormattedOriginalPrice)

	_, ok = FallbackByID("nope")
	assert.False(t, ok)
}

func TestListNonPositiveCountSkipsRemote(t *testing.T) {
	remote := &fakeRemote{}
	svc := NewService(remote, time.Minute, nil)

	for _, n := range []int{0, -3} {
		page, err := svc.List(context.Background(), ListOptions{First: n})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
	}
	assert.Zero(t, remote.listCalls)
	assert.Empty(t, remote.collections)
}

func TestListCachesRemoteResults(t *testing.T) {
	remote := &fakeRemote{products: []shopify.Product{
		remoteProduct("a", "10", ""),
		remoteProduct("b", "20", ""),
	}}
	svc := NewService(remote, time.Minute, nil)

	page, err := svc.List(context.Background(), ListOptions{First: 5})
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, page.Source)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "a", page.Products[0].Handle)

	_, err = svc.List(context.Background(), ListOptions{First: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, remote.listCalls)

	_, err = svc.List(context.Background(), ListOptions{First: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, remote.listCalls)
}

func TestListUsesCollectionQuery(t *testing.T) {
	remote := &fakeRemote{products: []shopify.Product{remoteProduct("a", "10", "")}}
	svc := NewService(remote, time.Minute, nil)

	page, err := svc.List(context.Background(), ListOptions{First: 4, Collection: "cny-2026"})
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Equal(t, []string{"cny-2026"}, remote.collections)
	assert.Zero(t, remote.listCalls)
}

func TestListFallsBackOnRemoteFailure(t *testing.T) {
	remote := &fakeRemote{err: errors.New("boom")}
	svc := NewService(remote, time.Minute, nil)

	page, err := svc.List(context.Background(), ListOptions{First: 20})
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, page.Source)
	assert.Len(t, page.Products, 3)

	page, err = svc.List(context.Background(), ListOptions{First: 2})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)

	page, err = svc.List(context.Background(), ListOptions{First: 20, Collection: "taro-pudding"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "mx-taro-pudding", page.Products[0].ID)

	// failures are not cached
	remote.err = nil
	remote.products = []shopify.Product{remoteProduct("a", "10", "")}
	page, err = svc.List(context.Background(), ListOptions{First: 20})
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, page.Source)
}

func TestListReturnsContextError(t *testing.T) {
	remote := &fakeRemote{err: context.Canceled}
	svc := NewService(remote, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.List(ctx, ListOptions{First: 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet(t *testing.T) {
	found := remoteProduct("mx-taro-pudding", "150", "")
	remote := &fakeRemote{byHandle: map[string]*shopify.Product{"mx-taro-pudding": &found}}
	svc := NewService(remote, time.Minute, nil)

	p, err := svc.Get(context.Background(), "mx-taro-pudding")
	require.NoError(t, err)
	assert.Equal(t, "HK$150", p.FormattedPrice)

	_, err = svc.Get(context.Background(), "mx-taro-pudding")
	require.NoError(t, err)
	assert.Equal(t, 1, remote.handleCalls)

	p, err = svc.Get(context.Background(), "mx-turnip-pudding-with-conpoy")
	require.NoError(t, err)
	assert.Equal(t, "快樂印刷瑤柱蘿蔔糕", p.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRemoteFailure(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&fakeRemote{err: boom}, time.Minute, nil)

	p, err := svc.Get(context.Background(), "mx-taro-pudding")
	require.NoError(t, err)
	assert.Equal(t, "taro-pudding", p.Category)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRunStopsOnCancel(t *testing.T) {
	svc := NewService(&fakeRemote{}, time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
