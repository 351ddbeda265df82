package domain

import "time"

// NutritionalInfo holds nutrient amounts per reference serving (100g/100ml).
// Zero values mean the nutrient was not reported.
type NutritionalInfo struct {
	EnergyKcal    float64 `json:"energy_kcal,omitempty"`
	Proteins      float64 `json:"proteins,omitempty"`
	Carbohydrates float64 `json:"carbohydrates,omitempty"`
	Fats          float64 `json:"fats,omitempty"`
	Fiber         float64 `json:"fiber,omitempty"`
	Sodium        float64 `json:"sodium,omitempty"`
}

// SustainabilityScore holds the three dimension scores plus the weighted
// overall score, all in [0,100], and the estimated carbon footprint in
// kg CO2-equivalent.
type SustainabilityScore struct {
	EconomicScore      float64 `json:"economic_score"`
	EnvironmentalScore float64 `json:"environmental_score"`
	SocialScore        float64 `json:"social_score"`
	OverallScore       float64 `json:"overall_score"`
	CarbonFootprint    float64 `json:"carbon_footprint"`
}

// Product represents a grocery product as stored locally or mapped from
// OpenFoodFacts. Price must be > 0 for the product to be scorable.
type Product struct {
	ID              string               `json:"id,omitempty"`
	Barcode         string               `json:"barcode,omitempty"`
	Name            string               `json:"name" binding:"required"`
	Brand           string               `json:"brand,omitempty"`
	Category        string               `json:"category" binding:"required"`
	Price           float64              `json:"price" binding:"required,gt=0"`
	Unit            string               `json:"unit,omitempty"` // "kg", "l" or "unit"
	Quantity        float64              `json:"quantity,omitempty"`
	Store           string               `json:"store,omitempty"`
	ImageURL        string               `json:"image_url,omitempty"`
	Description     string               `json:"description,omitempty"`
	NutritionalInfo *NutritionalInfo     `json:"nutritional_info,omitempty"`
	Sustainability  *SustainabilityScore `json:"sustainability_score,omitempty"`
	Ingredients     []string             `json:"ingredients,omitempty"`
	Allergens       []string             `json:"allergens,omitempty"`
	Labels          []string             `json:"labels,omitempty"` // organic, fair-trade, etc.
	OriginCountry   string               `json:"origin_country,omitempty"`
	CreatedAt       time.Time            `json:"created_at,omitempty"`
	UpdatedAt       time.Time            `json:"updated_at,omitempty"`
}

// ProductSearch holds the filters accepted by the product search endpoint.
type ProductSearch struct {
	Query             string  `json:"query"`
	Category          string  `json:"category,omitempty"`
	MaxPrice          float64 `json:"max_price,omitempty"`
	MinSustainability float64 `json:"min_sustainability,omitempty"`
	Store             string  `json:"store,omitempty"`
}

// Substitute is a ranked substitution candidate for an original product.
type Substitute struct {
	Product                   Product              `json:"product"`
	SubstitutionScore         float64              `json:"substitution_score"`
	SustainabilityImprovement float64              `json:"sustainability_improvement"`
	Savings                   float64              `json:"savings"`
	SavingsPercent            float64              `json:"savings_percent"`
	CarbonReduction           float64              `json:"carbon_reduction"`
	Reason                    string               `json:"reason"`
	OriginalScore             *SustainabilityScore `json:"original_score,omitempty"`
	SubstituteScore           *SustainabilityScore `json:"substitute_score,omitempty"`
}

// ProductComparison is the result of comparing two products head to head.
type ProductComparison struct {
	Product1Scores  *SustainabilityScore `json:"product1_scores"`
	Product2Scores  *SustainabilityScore `json:"product2_scores"`
	BetterProduct   int                  `json:"better_product"` // 1 or 2
	ScoreDifference float64              `json:"score_difference"`
	CarbonDiff      float64              `json:"carbon_difference"`
	Recommendation  string               `json:"recommendation"`
}
