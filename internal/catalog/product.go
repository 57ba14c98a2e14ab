// Package catalog turns remote product records into the storefront's product
// shape and serves them with a cache and a static fallback list.
package catalog

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/shopify"
)

const (
	DefaultCategory  = "maxim"
	PlaceholderImage = "/placeholder.jpg"
)

type PickupMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameEn      string `json:"nameEn,omitempty"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

var StorePickup = PickupMethod{
	ID:          "store",
	Name:        "分店無紙換領",
	NameEn:      "Store Pickup",
	Icon:        "🏪",
	Description: "門市取現貨，無需截圖或列印",
}

type Product struct {
	ID                     string           `json:"id"`
	Handle                 string           `json:"handle,omitempty"`
	Name                   string           `json:"name"`
	NameEn                 string           `json:"nameEn,omitempty"`
	Price                  decimal.Decimal  `json:"price"`
	OriginalPrice          *decimal.Decimal `json:"originalPrice,omitempty"`
	FormattedPrice         string           `json:"formattedPrice"`
	FormattedOriginalPrice string           `json:"formattedOriginalPrice,omitempty"`
	Currency               string           `json:"currency"`
	Category               string           `json:"category"`
	Image                  string           `json:"image"`
	Images                 []string         `json:"images"`
	Description            string           `json:"description"`
	DescriptionHTML        string           `json:"descriptionHtml,omitempty"`
	Calligraphy            string           `json:"calligraphy"`
	VariantID              string           `json:"variantId,omitempty"`
	Weight                 string           `json:"weight,omitempty"`
	Dimensions             string           `json:"dimensions,omitempty"`
	Features               []string         `json:"features,omitempty"`
	Ingredients            []string         `json:"ingredients,omitempty"`
	RedemptionPeriod       string           `json:"redemptionPeriod,omitempty"`
	RedemptionLocations    []string         `json:"redemptionLocations,omitempty"`
	MadeIn                 string           `json:"madeIn,omitempty"`
	Tag                    string           `json:"tag,omitempty"`
	PickupMethods          []PickupMethod   `json:"pickupMethods"`
}

// FormatPrice renders HKD as whole dollars and anything else with two decimals.
func FormatPrice(amount decimal.Decimal, currency string) string {
	if currency == "HKD" {
		return "HK$" + amount.StringFixed(0)
	}
	return currency + " " + amount.StringFixed(2)
}

// MapProduct never fails. Unparseable amounts become zero and missing media
// falls back to the placeholder image.
func MapProduct(p shopify.Product) Product {
	price := parseAmount(p.PriceRange.MinVariantPrice.Amount)
	currency := p.PriceRange.MinVariantPrice.CurrencyCode

	out := Product{
		ID:              p.ID,
		Handle:          p.Handle,
		Name:            p.Title,
		Price:           price,
		FormattedPrice:  FormatPrice(price, currency),
		Currency:        currency,
		Category:        DefaultCategory,
		Image:           PlaceholderImage,
		Images:          []string{},
		Description:     p.Description,
		DescriptionHTML: p.DescriptionHTML,
		Calligraphy:     p.Title,
		PickupMethods:   []PickupMethod{StorePickup},
	}

	if p.CompareAtPriceRange != nil && p.CompareAtPriceRange.MinVariantPrice.Amount != "" {
		original := parseAmount(p.CompareAtPriceRange.MinVariantPrice.Amount)
		if original.GreaterThan(price) {
			out.OriginalPrice = &original
			out.FormattedOriginalPrice = FormatPrice(original, currency)
		}
	}

	for i, img := range p.Images.Nodes() {
		if i == 0 && img.URL != "" {
			out.Image = img.URL
		}
		out.Images = append(out.Images, img.URL)
	}
	if variants := p.Variants.Nodes(); len(variants) > 0 {
		out.VariantID = variants[0].ID
	}

	out.Weight, _ = p.Metafield("foot_weight")
	out.Features = listMetafield(p, "product_features")
	out.Ingredients = listMetafield(p, "main_ingredients")
	out.RedemptionPeriod, _ = p.Metafield("redemption_period")
	out.RedemptionLocations = listMetafield(p, "redemption_locations")
	out.MadeIn, _ = p.Metafield("made_in")
	out.Tag, _ = p.Metafield("hppye_tag")
	return out
}

func MapProducts(ps []shopify.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, MapProduct(p))
	}
	return out
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// listMetafield reads a list-typed metafield. A JSON array is used as is, any
// other JSON value becomes a single entry holding the raw value, and text
// that is not JSON is split on commas.
func listMetafield(p shopify.Product, key string) []string {
	value, ok := p.Metafield(key)
	if !ok || value == "" {
		return nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	arr, isArray := parsed.([]any)
	if !isArray {
		return []string{value}
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		switch s := v.(type) {
		case string:
			out = append(out, s)
		default:
			b, _ := json.Marshal(s)
			out = append(out, string(b))
		}
	}
	return out
}
