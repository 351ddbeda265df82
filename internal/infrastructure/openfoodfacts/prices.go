package openfoodfacts

import (
	"math"
	"strings"

	"github.com/liquiverde/backend/internal/domain"
)

// categoryPrices holds average prices per category in Chilean pesos, used
// when a product arrives without a known price.
var categoryPrices = map[string]float64{
	"meat":       8000,
	"poultry":    5000,
	"fish":       7000,
	"dairy":      2000,
	"cheese":     4000,
	"vegetables": 1500,
	"fruits":     2000,
	"grains":     1200,
	"legumes":    1000,
	"beverages":  1500,
	"snacks":     2500,
	"bread":      1800,
	"pasta":      1200,
	"rice":       1000,
	"oil":        3000,
	"default":    2000,
}

// premiumBrandMarkers are brand substrings that push the estimate up
var premiumBrandMarkers = []string{"premium", "gourmet", "organic"}

// EstimatePrice estimates a price in CLP from the product's category,
// brand, labels, and quantity. Rounded to whole pesos.
func EstimatePrice(product *domain.Product) float64 {
	price, ok := categoryPrices[strings.ToLower(product.Category)]
	if !ok {
		price = categoryPrices["default"]
	}

	brand := strings.ToLower(product.Brand)
	for _, marker := range premiumBrandMarkers {
		if brand != "" && strings.Contains(brand, marker) {
			price *= 1.5
			break
		}
	}

	for _, label := range product.Labels {
		switch strings.ToLower(label) {
		case "organic":
			price *= 1.3
		case "fair-trade":
			price *= 1.2
		}
	}

	// Volume pricing: bigger packs cost more, with a per-unit discount
	if product.Quantity > 1.0 {
		price *= 1 + (product.Quantity-1)*0.8
	}

	return math.Round(price)
}

// CategoryAveragePrice returns the average price for a category in CLP
func CategoryAveragePrice(category string) float64 {
	if price, ok := categoryPrices[strings.ToLower(category)]; ok {
		return price
	}
	return categoryPrices["default"]
}
