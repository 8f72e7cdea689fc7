package feed

import "deals-service/internal/catalog/model"

// DemoPrefix marks sample deals served because no real feed could be loaded.
const DemoPrefix = "[DEMO] "

// SampleDeals is the built-in catalog used when both sheets are empty.
func SampleDeals() []model.Deal {
	return []model.Deal{
		{
			ID: "sample-1", Name: "Goal Zero Yeti 1500X Portable Power Station",
			ImageURL: "https://m.media-amazon.com/images/I/71yeti1500xL._AC_SL1500_.jpg",
			Category: model.CategoryPower, Featured: true, EndDate: "2024-12-31", CardType: model.CardSingle,
			Retailer: model.RetailerAmazon, Link: "https://amazon.com/dp/B08FXQB4Z4",
			RegularPrice: 2199.99, SalePrice: 1899.99, DiscountPercent: 14, Savings: 300,
		},
		{
			ID: "sample-2", Name: "Jackery Solar Generator 1000 Pro",
			ImageURL: "https://m.media-amazon.com/images/I/71K6I5u9EjL._AC_SL1500_.jpg",
			Category: model.CategoryGenerators, EndDate: "2024-12-25", CardType: model.CardSingle,
			Retailer: model.RetailerAmazon, Link: "https://amazon.com/dp/B095GJLPRP",
			RegularPrice: 1499.99, SalePrice: 1299.99, DiscountPercent: 13, Savings: 200,
		},
		{
			ID: "sample-3", Name: "Renogy 100W Solar Panel Kit",
			ImageURL: "https://m.media-amazon.com/images/I/81VLfpYgJgL._AC_SL1500_.jpg",
			Category: model.CategoryPower, EndDate: "2024-12-28", CardType: model.CardSingle,
			Retailer: model.RetailerCabelas, Link: "https://cabelas.com/shop/en/renogy-100w-solar-panel-kit",
			RegularPrice: 229.99, SalePrice: 179.99, DiscountPercent: 22, Savings: 50,
		},
		{
			ID: "sample-4", Name: "Champion 3800-Watt Dual Fuel Generator",
			ImageURL: "https://m.media-amazon.com/images/I/71lLO5JZgzL._AC_SL1500_.jpg",
			Category: model.CategoryGenerators, Featured: true, EndDate: "2024-12-30", CardType: model.CardComparison,
			AmazonPrice: 449.99, CabelasPrice: 469.99, Savings: 20, BestRetailer: model.RetailerAmazon,
			AmazonLink:  "https://amazon.com/dp/B01MXYBZWM",
			CabelasLink: "https://cabelas.com/shop/en/champion-3800-watt-dual-fuel-generator",
		},
		{
			ID: "sample-5", Name: "BattleBorn 100Ah LiFePO4 Battery",
			ImageURL: "https://m.media-amazon.com/images/I/61zN7zJhYfL._AC_SL1024_.jpg",
			Category: model.CategoryBatteries, EndDate: "2024-12-26", CardType: model.CardComparison,
			AmazonPrice: 899.99, CabelasPrice: 849.99, Savings: 50, BestRetailer: model.RetailerCabelas,
			AmazonLink:  "https://amazon.com/dp/B078WQGPX8",
			CabelasLink: "https://cabelas.com/shop/en/battleborn-100ah-lifepo4-battery",
		},
		{
			ID: "sample-6", Name: "Bluetti AC300 Power Station",
			ImageURL: "https://m.media-amazon.com/images/I/71QVTnWGAeL._AC_SL1500_.jpg",
			Category: model.CategoryPower, Featured: true, EndDate: "2024-12-27", CardType: model.CardSingle,
			Retailer: model.RetailerAmazon, Link: "https://amazon.com/dp/B09KQXDVHF",
			RegularPrice: 2999.99, SalePrice: 2599.99, DiscountPercent: 13, Savings: 400,
		},
		{
			ID: "sample-7", Name: "Cubic Mini Wood Stove",
			ImageURL: "https://m.media-amazon.com/images/I/71dJKtGXkjL._AC_SL1500_.jpg",
			Category: model.CategoryStoves, EndDate: "2024-12-20", CardType: model.CardSingle,
			Retailer: model.RetailerCabelas, Link: "https://cabelas.com/shop/en/cubic-mini-wood-stove",
			RegularPrice: 349.99, SalePrice: 289.99, DiscountPercent: 17, Savings: 60,
		},
		{
			ID: "sample-8", Name: "Honda EU2200i Generator",
			ImageURL: "https://m.media-amazon.com/images/I/71xQnZGdg4L._AC_SL1500_.jpg",
			Category: model.CategoryGenerators, EndDate: "2024-12-18", CardType: model.CardSingle,
			Retailer: model.RetailerAmazon, Link: "https://amazon.com/dp/B073HWMVGR",
			RegularPrice: 1399.99, SalePrice: 1199.99, DiscountPercent: 14, Savings: 200,
		},
	}
}

// DemoDeals is SampleDeals with every name carrying DemoPrefix.
func DemoDeals() []model.Deal {
	deals := SampleDeals()
	for i := range deals {
		deals[i].Name = DemoPrefix + deals[i].Name
	}
	return deals
}
