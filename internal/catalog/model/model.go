package model

import "strings"

// Category is the coarse product tag agreed with the feed owners.
type Category string

const (
	CategoryPower      Category = "power"
	CategoryGenerators Category = "generators"
	CategoryBatteries  Category = "batteries"
	CategoryStoves     Category = "stoves"
	CategoryCamping    Category = "camping"
	CategoryClothing   Category = "clothing"
	CategoryTools      Category = "tools"
	CategoryNavigation Category = "navigation"
	CategoryWater      Category = "water"
	CategoryFood       Category = "food"
	CategoryOther      Category = "other"
)

var knownCategories = map[Category]struct{}{
	CategoryPower: {}, CategoryGenerators: {}, CategoryBatteries: {}, CategoryStoves: {},
	CategoryCamping: {}, CategoryClothing: {}, CategoryTools: {}, CategoryNavigation: {},
	CategoryWater: {}, CategoryFood: {},
}

// ParseCategory maps a free-form sheet value onto the enum; anything unknown is "other".
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownCategories[c]; ok {
		return c
	}
	return CategoryOther
}

// Known reports whether c is a real tag (not empty and not "other").
func (c Category) Known() bool {
	_, ok := knownCategories[c]
	return ok
}

type Retailer string

const (
	RetailerAmazon  Retailer = "Amazon"
	RetailerCabelas Retailer = "Cabela's"
	RetailerUnknown Retailer = "Unknown"
)

type CardType string

const (
	CardSingle     CardType = "single"
	CardComparison CardType = "comparison"
)

// Product is the read-only view the similarity matcher works on.
// A Price <= 0 means the price is unknown.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Price    float64  `json:"price,omitempty"`
}

func (p Product) HasPrice() bool { return p.Price > 0 }

// Deal is one card of the storefront: either a single-retailer offer
// or a comparison of the same product at Amazon and Cabela's.
type Deal struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Category Category `json:"category"`
	Featured bool     `json:"featured"`
	EndDate  string   `json:"dealEndDate,omitempty"`
	CardType CardType `json:"cardType"`
	Savings  float64  `json:"savings"`

	// single
	Retailer        Retailer `json:"retailer,omitempty"`
	Link            string   `json:"dealLink,omitempty"`
	RegularPrice    float64  `json:"regularPrice,omitempty"`
	SalePrice       float64  `json:"salePrice,omitempty"`
	DiscountPercent int      `json:"discountPercent,omitempty"`

	// comparison
	AmazonPrice  float64  `json:"amazonPrice,omitempty"`
	CabelasPrice float64  `json:"cabelasPrice,omitempty"`
	AmazonLink   string   `json:"amazonLink,omitempty"`
	CabelasLink  string   `json:"cabelasLink,omitempty"`
	BestRetailer Retailer `json:"bestDealRetailer,omitempty"`
}

// CurrentPrice is the price a shopper would pay: the sale price of a single
// deal or the cheaper side of a comparison. Zero when unknown.
func (d Deal) CurrentPrice() float64 {
	if d.CardType == CardComparison {
		switch {
		case d.AmazonPrice > 0 && d.CabelasPrice > 0:
			if d.AmazonPrice < d.CabelasPrice {
				return d.AmazonPrice
			}
			return d.CabelasPrice
		case d.AmazonPrice > 0:
			return d.AmazonPrice
		default:
			return d.CabelasPrice
		}
	}
	return d.SalePrice
}

// DisplayRetailer is the retailer used to group cards on the page.
func (d Deal) DisplayRetailer() Retailer {
	if d.CardType == CardComparison {
		return d.BestRetailer
	}
	if d.Retailer == "" {
		return RetailerUnknown
	}
	return d.Retailer
}

func (d Deal) Product() Product {
	return Product{ID: d.ID, Name: d.Name, Category: d.Category, Price: d.CurrentPrice()}
}

// Products projects deals onto the matcher's view, keeping order.
func Products(deals []Deal) []Product {
	out := make([]Product, len(deals))
	for i := range deals {
		out[i] = deals[i].Product()
	}
	return out
}
