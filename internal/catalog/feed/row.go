package feed

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"deals-service/internal/catalog/model"
	"deals-service/internal/catalog/pairing"
	"deals-service/internal/utils"
)

// Column positions of a feed row (sheet columns A..L).
const (
	colName = iota
	colImage
	colAmazonPrice
	colCabelasPrice
	colAmazonLink
	colCabelasLink
	colEndDate
	colCategory
	colFeatured
	colOriginalPrice
	colDiscount
	colSavings
)

var (
	amazonNS  = uuid.MustParse("0d9f6d2e-2b8c-4c61-9d44-5a0f3e1b7c21")
	cabelasNS = uuid.MustParse("7a3e9b14-61f0-4d2a-8c5e-2f9b0d4a6e83")
)

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// dealID is stable across refreshes as long as the row keeps its position and name.
func dealID(ns uuid.UUID, pos int, name string) string {
	return uuid.NewSHA1(ns, []byte(strconv.Itoa(pos)+"|"+name)).String()
}

func baseDeal(row []string) model.Deal {
	return model.Deal{
		Name:     cell(row, colName),
		ImageURL: cell(row, colImage),
		EndDate:  cell(row, colEndDate),
		Category: model.ParseCategory(cell(row, colCategory)),
		Featured: strings.EqualFold(cell(row, colFeatured), "true"),
	}
}

func price(row []string, i int) decimal.Decimal {
	d, _ := utils.ParsePrice(cell(row, i))
	return d
}

// amazonRow converts a row of the Amazon sheet. A row with price and link for
// both retailers is a ready-made comparison card. Rows without a name are skipped.
func amazonRow(row []string, pos int) (model.Deal, bool) {
	d := baseDeal(row)
	if d.Name == "" {
		return d, false
	}
	d.ID = dealID(amazonNS, pos, d.Name)

	hasAmazon := cell(row, colAmazonPrice) != "" && cell(row, colAmazonLink) != ""
	hasCabelas := cell(row, colCabelasPrice) != "" && cell(row, colCabelasLink) != ""
	if hasAmazon && hasCabelas {
		d.CardType = model.CardComparison
		d.AmazonPrice = utils.Cents(price(row, colAmazonPrice))
		d.CabelasPrice = utils.Cents(price(row, colCabelasPrice))
		d.AmazonLink = cell(row, colAmazonLink)
		d.CabelasLink = cell(row, colCabelasLink)
		d.Savings = utils.Cents(price(row, colSavings))
		d.BestRetailer = pairing.BestRetailer(d.AmazonPrice, d.CabelasPrice)
		return d, true
	}

	d.Link = firstNonEmpty(cell(row, colAmazonLink), cell(row, colCabelasLink))
	switch {
	case cell(row, colAmazonLink) != "":
		d.Retailer = model.RetailerAmazon
	case cell(row, colCabelasLink) != "":
		d.Retailer = model.RetailerCabelas
	default:
		d.Retailer = model.RetailerUnknown
	}
	fillSingle(&d, row, colAmazonPrice)
	return d, true
}

// cabelasRow converts a row of the Cabela's sheet; the price lives in column D.
func cabelasRow(row []string, pos int) (model.Deal, bool) {
	d := baseDeal(row)
	if d.Name == "" {
		return d, false
	}
	d.ID = dealID(cabelasNS, pos, d.Name)
	d.Retailer = model.RetailerCabelas
	d.Link = firstNonEmpty(cell(row, colCabelasLink), cell(row, colAmazonLink))
	fillSingle(&d, row, colCabelasPrice)
	return d, true
}

var hundred = decimal.NewFromInt(100)

// fillSingle sets the price fields of a single card, deriving the discount or
// the original price when only one of them is present.
func fillSingle(d *model.Deal, row []string, priceCol int) {
	d.CardType = model.CardSingle
	sale := price(row, priceCol)
	original := price(row, colOriginalPrice)
	discount, _ := utils.ParsePercent(cell(row, colDiscount))

	if original.IsPositive() && sale.IsPositive() && discount == 0 {
		discount = int(original.Sub(sale).Div(original).Mul(hundred).Round(0).IntPart())
	}
	if sale.IsPositive() && original.IsZero() && discount > 0 && discount < 100 {
		rest := hundred.Sub(decimal.NewFromInt(int64(discount))).Div(hundred)
		original = sale.Div(rest).Round(2)
	}

	d.SalePrice = utils.Cents(sale)
	d.RegularPrice = utils.Cents(original)
	d.DiscountPercent = discount
	if original.GreaterThan(sale) {
		d.Savings = utils.Cents(original.Sub(sale))
	} else {
		d.Savings = utils.Cents(price(row, colSavings))
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
