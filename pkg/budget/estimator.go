package budget

// basePrices maps each category to its four price tiers
// (1=cheap, 2=moderate, 3=expensive, 4=very expensive), in KRW.
var basePrices = map[Category][4]float64{
	CategoryTransport: {5000, 15000, 30000, 50000},
	CategoryLodging:   {50000, 100000, 200000, 300000},
	CategoryFood:      {15000, 30000, 60000, 100000},
	CategoryActivity:  {10000, 30000, 50000, 100000},
	CategoryShopping:  {20000, 50000, 100000, 200000},
	CategoryOther:     {10000, 20000, 40000, 60000},
}

// Estimate returns the typical cost for a place of the given price level in
// the given category. The price level is clamped into [1,4] rather than
// rejected, and an unknown category falls back to the moderate tier of 기타.
// Estimate never fails.
func Estimate(priceLevel int, category Category) float64 {
	if priceLevel < 1 {
		priceLevel = 1
	}
	if priceLevel > 4 {
		priceLevel = 4
	}

	prices, ok := basePrices[category]
	if !ok {
		return basePrices[CategoryOther][1]
	}
	return prices[priceLevel-1]
}
