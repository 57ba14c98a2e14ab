package shopify

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor,omitempty"`
}

type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
}

func (c Connection[T]) Nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

// MoneyV2 keeps the amount as the decimal string the API sends.
type MoneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m MoneyV2) toDomain() cart.Money {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	return cart.Money{Amount: amount, CurrencyCode: m.CurrencyCode}
}

type PriceRange struct {
	MinVariantPrice MoneyV2 `json:"minVariantPrice"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type Variant struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Price            MoneyV2 `json:"price"`
	AvailableForSale bool    `json:"availableForSale"`
}

type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

type Product struct {
	ID                  string              `json:"id"`
	Handle              string              `json:"handle"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	DescriptionHTML     string              `json:"descriptionHtml"`
	PriceRange          PriceRange          `json:"priceRange"`
	CompareAtPriceRange *PriceRange         `json:"compareAtPriceRange"`
	Images              Connection[Image]   `json:"images"`
	Variants            Connection[Variant] `json:"variants"`
	Metafields          []*Metafield        `json:"metafields"`
}

// Metafield returns the value for key, skipping identifiers the shop has
// no value for (the API answers those with null).
func (p Product) Metafield(key string) (string, bool) {
	for _, m := range p.Metafields {
		if m != nil && m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

type CartMerchandise struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Price   MoneyV2 `json:"price"`
	Image   *Image  `json:"image"`
	Product struct {
		Title  string `json:"title"`
		Handle string `json:"handle"`
	} `json:"product"`
}

type CartLine struct {
	ID          string          `json:"id"`
	Quantity    int             `json:"quantity"`
	Merchandise CartMerchandise `json:"merchandise"`
}

type Cart struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
	Cost          struct {
		TotalAmount MoneyV2 `json:"totalAmount"`
	} `json:"cost"`
	Lines Connection[CartLine] `json:"lines"`
}

func (c *Cart) toDomain() *cart.Cart {
	if c == nil {
		return nil
	}
	out := &cart.Cart{
		ID:            c.ID,
		CheckoutURL:   c.CheckoutURL,
		TotalQuantity: c.TotalQuantity,
		Total:         c.Cost.TotalAmount.toDomain(),
		Lines:         make([]cart.Line, 0, len(c.Lines.Edges)),
	}
	for _, l := range c.Lines.Nodes() {
		m := cart.Merchandise{
			ID:            l.Merchandise.ID,
			Title:         l.Merchandise.Title,
			Price:         l.Merchandise.Price.toDomain(),
			ProductTitle:  l.Merchandise.Product.Title,
			ProductHandle: l.Merchandise.Product.Handle,
		}
		if l.Merchandise.Image != nil {
			m.Image = &cart.Image{URL: l.Merchandise.Image.URL, AltText: l.Merchandise.Image.AltText}
		}
		out.Lines = append(out.Lines, cart.Line{ID: l.ID, Quantity: l.Quantity, Merchandise: m})
	}
	return out
}

// cartPayload is the shape shared by every cart mutation.
type cartPayload struct {
	Cart       *Cart           `json:"cart"`
	UserErrors cart.UserErrors `json:"userErrors"`
}

func (p *cartPayload) result() (*cart.Cart, error) {
	if p == nil {
		return nil, cart.ErrCartNotFound
	}
	if len(p.UserErrors) > 0 {
		return nil, p.UserErrors
	}
	if p.Cart == nil {
		return nil, cart.ErrCartNotFound
	}
	return p.Cart.toDomain(), nil
}
