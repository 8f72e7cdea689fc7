package articles

// Defaults is the built-in article set served without an articles file.
func Defaults() []Article {
	return []Article{
		{
			Slug:        "best-diesel-heaters-2025",
			Title:       "Best Diesel Heaters 2025: Ultimate Guide for Van Life & Off-Grid Living",
			Description: "Diesel heaters for van life, RVs and off-grid cabins. Compare Planar, Webasto and budget models and find the best deals on reliable heating.",
			Category:    "heating",
			Keywords: []string{"diesel heater", "van life", "off-grid heating", "rv heater", "cabin heater",
				"planar heater", "webasto", "portable heater", "chinese diesel heater", "campervan heating"},
			Featured: true,
			Content: Content{
				Intro: "We ran diesel heaters through a hard winter to find the ones worth buying in 2025. " +
					"Whether you heat a van, an RV or an off-grid cabin, these units deliver steady heat on little fuel.",
				BuyersGuide: "## What to look for\n\n" +
					"**Output:** 2kW for small vans, 4kW for large vans and RVs, 5kW+ for cabins.\n\n" +
					"**Fuel use:** a good heater burns 3-4 liters over an 8-hour night.\n\n" +
					"**Safety:** external exhaust, overheat protection and automatic shutoff.\n\n" +
					"**Power draw:** 8-12 A at startup, 0.5-2 A running on 12V.",
				Conclusion: "For maximum reliability buy a Planar or Webasto. Budget models work but expect a shorter life. " +
					"Always vent exhaust outside and fit a carbon monoxide detector.",
			},
			Products: Products{
				Keywords:   []string{"diesel heater", "heater", "heating", "planar", "webasto", "portable heater", "van heater", "rv heater"},
				MaxResults: 12,
				SortBy:     SortDiscount,
			},
			SEO: SEO{
				MetaTitle:       "Best Diesel Heaters 2025: Van Life & Off-Grid Heating Guide",
				MetaDescription: "Diesel heaters for van life and off-grid living. Planar, Webasto and budget models with BTU sizing and current deals.",
				Schema:          Schema{Type: "Article", Author: "Off-Grid Heating Experts", Organization: "Off-Grid Discounts"},
			},
		},
		{
			Slug:        "top-camping-stoves-under-100",
			Title:       "Top 10 Camping Stoves Under $100 - Budget Outdoor Cooking",
			Description: "Budget camping stoves that cook well without breaking the bank. Compare fuel types, weight and cooking power.",
			Category:    "cooking",
			Keywords:    []string{"camping stove", "budget camping gear", "outdoor cooking", "backpacking stove"},
			Featured:    true,
			Content: Content{
				Intro:       "Good outdoor cooking does not need expensive gear. These stoves put a hot meal on the trail for under $100.",
				BuyersGuide: "Consider fuel type (propane, butane, alcohol), weight for backpacking, cooking surface and wind resistance.",
				Conclusion:  "A reliable stove under $100 opens up plenty of meals on your next trip.",
			},
			Products: Products{
				Keywords:   []string{"camping stove", "stove", "outdoor cooking"},
				MaxResults: 10,
				SortBy:     SortPrice,
			},
			SEO: SEO{
				MetaTitle:       "Best Camping Stoves Under $100 - Budget Outdoor Cooking Guide",
				MetaDescription: "Budget camping stoves under $100 compared on weight, fuel efficiency and cooking power.",
				Schema:          Schema{Type: "Article", Author: "Outdoor Gear Experts", Organization: "Off-Grid Discounts"},
			},
		},
	}
}
