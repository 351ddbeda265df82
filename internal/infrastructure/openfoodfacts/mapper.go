package openfoodfacts

import (
	"strconv"
	"strings"

	"github.com/liquiverde/backend/internal/domain"
)

// productResponse is the Open Food Facts single-product envelope
type productResponse struct {
	Status  int         `json:"status"`
	Product *offProduct `json:"product"`
}

// searchResponse is the Open Food Facts search envelope
type searchResponse struct {
	Products []offProduct `json:"products"`
}

// offProduct is the subset of the Open Food Facts product document the
// mapper consumes.
type offProduct struct {
	Code           string        `json:"code"`
	ProductName    string        `json:"product_name"`
	Brands         string        `json:"brands"`
	GenericName    string        `json:"generic_name"`
	ImageURL       string        `json:"image_url"`
	Quantity       string        `json:"quantity"`
	Countries      string        `json:"countries"`
	CategoriesTags []string      `json:"categories_tags"`
	LabelsTags     []string      `json:"labels_tags"`
	AllergensTags  []string      `json:"allergens_tags"`
	IngredientsEn  string        `json:"ingredients_text_en"`
	Nutriments     offNutriments `json:"nutriments"`
}

// offNutriments carries per-100g nutrient values
type offNutriments struct {
	EnergyKcal    float64 `json:"energy-kcal_100g"`
	Proteins      float64 `json:"proteins_100g"`
	Carbohydrates float64 `json:"carbohydrates_100g"`
	Fat           float64 `json:"fat_100g"`
	Fiber         float64 `json:"fiber_100g"`
	Sodium        float64 `json:"sodium_100g"`
}

// mapProduct converts an Open Food Facts document into a domain product.
// Open Food Facts carries no prices, so the price is estimated from the
// category and labels.
func mapProduct(p *offProduct) *domain.Product {
	name := p.ProductName
	if name == "" {
		name = "Unknown Product"
	}

	product := &domain.Product{
		Barcode:     p.Code,
		Name:        name,
		Brand:       p.Brands,
		Category:    mapCategory(p.CategoriesTags),
		Unit:        "unit",
		Quantity:    parseQuantity(p.Quantity),
		ImageURL:    p.ImageURL,
		Description: p.GenericName,
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal:    p.Nutriments.EnergyKcal,
			Proteins:      p.Nutriments.Proteins,
			Carbohydrates: p.Nutriments.Carbohydrates,
			Fats:          p.Nutriments.Fat,
			Fiber:         p.Nutriments.Fiber,
			Sodium:        p.Nutriments.Sodium,
		},
		Allergens:     p.AllergensTags,
		Labels:        mapLabels(p.LabelsTags),
		OriginCountry: firstCountry(p.Countries),
	}

	if p.IngredientsEn != "" {
		product.Ingredients = strings.Split(p.IngredientsEn, ", ")
	}

	product.Price = EstimatePrice(product)

	return product
}

// mapCategory picks the first category tag and strips its language prefix.
// Products without tags land in the generic "food" category.
func mapCategory(tags []string) string {
	if len(tags) == 0 {
		return "food"
	}
	tag := strings.TrimPrefix(tags[0], "en:")
	if idx := strings.LastIndex(tag, ":"); idx >= 0 {
		tag = tag[idx+1:]
	}
	return tag
}

// mapLabels converts label tags like "en:fair-trade" into readable labels
func mapLabels(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	labels := make([]string, len(tags))
	for i, tag := range tags {
		label := strings.TrimPrefix(tag, "en:")
		label = strings.ReplaceAll(label, "-", " ")
		labels[i] = titleCase(label)
	}
	return labels
}

// titleCase uppercases the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// firstCountry returns the first entry of a comma-separated country list
func firstCountry(countries string) string {
	if countries == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(countries, ",")[0])
}

// parseQuantity extracts the leading numeric part of quantity strings like
// "1.5 L" or "500 g". Unparseable quantities default to 1.
func parseQuantity(quantity string) float64 {
	fields := strings.Fields(quantity)
	if len(fields) == 0 {
		return 1
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil || value <= 0 {
		return 1
	}
	return value
}
