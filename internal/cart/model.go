package cart

import "github.com/shopspring/decimal"

type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// Merchandise is the purchasable variant a line points at.
type Merchandise struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Price         Money  `json:"price"`
	Image         *Image `json:"image,omitempty"`
	ProductTitle  string `json:"productTitle"`
	ProductHandle string `json:"productHandle,omitempty"`
}

type Line struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
}

// Cart is a cached copy of the remote cart. The remote platform owns it.
type Cart struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
	Total         Money  `json:"total"`
	Lines         []Line `json:"lines"`
}

// LineInput adds a variant to a cart.
type LineInput struct {
	MerchandiseID string
	Quantity      int
}

// LineUpdate sets the quantity of an existing line.
type LineUpdate struct {
	ID       string
	Quantity int
}
