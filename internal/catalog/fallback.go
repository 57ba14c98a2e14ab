package catalog

import "github.com/shopspring/decimal"

// Fallback is served whenever the remote catalog cannot answer.
func Fallback() []Product {
	return []Product{
		seasonal(seasonalProduct{
			id:          "mx-turnip-pudding-with-conpoy",
			name:        "快樂印刷瑤柱蘿蔔糕",
			nameEn:      "Happy Printing Turnip Pudding with Conpoy",
			price:       148,
			original:    198,
			description: "厚切絲蘿蔔糕，嚴選清甜白蘿蔔，切成8mm絲絲蘿蔔條",
			images: []string{
				"/779a50d7-948b-4e3b-ab1e-ee962b0ded74.png",
				"/09805662-55d2-4c02-81af-1cf924cb8802.png",
			},
			weight:     "每個約800克",
			dimensions: "315 x 180 x 60mm",
			period:     "2026年2月5日至2月14日",
			locations:  []string{"全線快樂印刷西餅", "指定分店"},
			features:   []string{"8mm厚切絲蘿蔔條", "北海道瑤柱", "臘味及蝦米", "100%香港製造"},
			ingredient: []string{"白蘿蔔", "瑤柱", "臘腸", "蝦米", "粘米粉"},
			category:   "turnip-pudding",
		}),
		seasonal(seasonalProduct{
			id:          "mx-turnip-pudding-with-mushroom-taro",
			name:        "快樂印刷香菇芋粒蘿蔔糕",
			nameEn:      "Happy Printing Turnip Pudding with Mushroom & Taro",
			price:       102,
			original:    133,
			description: "蔬食配方，清甜8mm絲絲蘿蔔條配炒至甘香的椴木香菇",
			images: []string{
				"/4dcf5afc-efcd-4709-a84c-a218b74670e6_400x320.png",
				"/92a37fd9-6e29-4519-b95f-4c4339f45926_400x320.png",
			},
			weight:     "每個約570克",
			period:     "2026年2月8日至2月14日",
			locations:  []string{"全線快樂印刷西餅", "指定分店"},
			features:   []string{"8mm絲絲蘿蔔條", "椴木香菇", "炸杏鮑菇", "芋粒", "蔬食配方", "100%香港製造"},
			ingredient: []string{"白蘿蔔", "香菇", "杏鮑菇", "芋頭", "甘筍", "粘米粉"},
			category:   "turnip-pudding",
		}),
		seasonal(seasonalProduct{
			id:          "mx-taro-pudding",
			name:        "快樂印刷芋頭糕",
			nameEn:      "Happy Printing Taro Pudding",
			price:       148,
			original:    198,
			description: "特選香甜新鮮芋頭，厚切成粒，搭配惹味甘香臘腸",
			images: []string{
				"/01a5a5c8-7764-4fd7-8c79-daa1b910207c.png",
				"/f2aec032-41e5-47b3-a872-5a1e6353c28a.png",
			},
			weight:     "每個約810克",
			dimensions: "315 x 180 x 60mm",
			period:     "2026年2月5日至2月14日",
			locations:  []string{"2月5-11日：全線快樂印刷西餅及指定分店", "2月12-14日：指定分店"},
			features:   []string{"厚切芋頭粒", "惹味甘香臘腸", "芋頭綿香四溢", "100%香港製造"},
			ingredient: []string{"芋頭", "臘腸", "粘米粉", "蔥"},
			category:   "taro-pudding",
		}),
	}
}

// FallbackByID looks a product up in the fallback list.
func FallbackByID(id string) (Product, bool) {
	for _, p := range Fallback() {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

type seasonalProduct struct {
	id          string
	name        string
	nameEn      string
	price       int64
	original    int64
	description string
	images      []string
	weight      string
	dimensions  string
	period      string
	locations   []string
	features    []string
	ingredient  []string
	category    string
}

func seasonal(s seasonalProduct) Product {
	price := decimal.NewFromInt(s.price)
	original := decimal.NewFromInt(s.original)
	return Product{
		ID:                     s.id,
		Handle:                 s.id,
		Name:                   s.name,
		NameEn:                 s.nameEn,
		Price:                  price,
		OriginalPrice:          &original,
		FormattedPrice:         FormatPrice(price, "HKD"),
		FormattedOriginalPrice: FormatPrice(original, "HKD"),
		Currency:               "HKD",
		Category:               s.category,
		Image:                  s.images[0],
		Images:                 s.images,
		Description:            s.description,
		Calligraphy:            s.name,
		Weight:                 s.weight,
		Dimensions:             s.dimensions,
		Features:               s.features,
		Ingredients:            s.ingredient,
		RedemptionPeriod:       s.period,
		RedemptionLocations:    s.locations,
		MadeIn:                 "香港",
		PickupMethods:          []PickupMethod{StorePickup},
	}
}
