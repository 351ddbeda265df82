package usecase

import (
	"log"
	"math"
	"strings"

	"github.com/liquiverde/backend/internal/domain"
)

// Dimension weights for the overall score. Fixed, sum to 1.00.
const (
	economicWeight      = 0.33
	environmentalWeight = 0.34
	socialWeight        = 0.33
)

// Score adjustments shared by the scoring dimensions
const (
	baseScore = 50.0 // every dimension starts here

	nutritionBonus = 10.0 // protein > 10g or fiber > 5g per serving
	bulkBonusCap   = 10.0 // bulk bonus is min(cap, quantity*2)

	organicBonus     = 15.0 // "organic" label
	ecoFriendlyBonus = 10.0 // "eco-friendly" label
	localOriginBonus = 20.0 // produced in Chile / labelled local
	singleUsePenalty = 15.0 // "single-use" in the description

	fairTradeBonus     = 25.0 // "fair-trade" label
	bCorpBonus         = 20.0 // "b-corp" label
	regionalBonus      = 10.0 // neighboring-country origin
	smallProducerBonus = 15.0 // "small-producer" / "artesanal"
	cooperativeBonus   = 15.0 // "cooperative" / "cooperativa"

	organicFootprintFactor = 0.9 // organic production emits slightly less
	localFootprintFactor   = 0.7 // local transport emits far less
)

// transportEmissionRate is kg CO2 per ton-km for road freight.
const transportEmissionRate = 0.1

// defaultCarbonFactors maps product category to kg CO2 per kg of product.
var defaultCarbonFactors = map[string]float64{
	"meat":       27.0,
	"dairy":      13.5,
	"fish":       6.0,
	"vegetables": 2.0,
	"fruits":     1.1,
	"grains":     2.5,
	"legumes":    0.9,
	"beverages":  1.5,
	"snacks":     3.0,
	"default":    3.5,
}

// defaultTransportDistances maps origin region to an average transport
// distance in km.
var defaultTransportDistances = map[string]float64{
	"local":         50,
	"south_america": 2000,
	"north_america": 5000,
	"europe":        10000,
	"asia":          12000,
	"default":       8000,
}

// originRegions maps country-name substrings to transport regions. Matching
// is case-insensitive substring containment on the origin string.
var originRegions = []struct {
	region    string
	countries []string
}{
	{"local", []string{"chile", "local"}},
	{"south_america", []string{"argentina", "peru", "brazil", "uruguay"}},
	{"north_america", []string{"usa", "mexico", "canada"}},
	{"europe", []string{"spain", "france", "italy", "germany"}},
	{"asia", []string{"china", "japan", "india", "thailand"}},
}

// ScoringConfig holds the lookup tables and weights for the scorer. Zero
// fields fall back to the package defaults so callers can override tables
// selectively.
type ScoringConfig struct {
	CarbonFactors      map[string]float64
	TransportDistances map[string]float64
	EnableDebugLogging bool
}

// ScoringService computes sustainability scores for products. It is a pure
// function of (product, config) and safe for concurrent use.
type ScoringService struct {
	carbonFactors      map[string]float64
	transportDistances map[string]float64
	enableDebugLogging bool
}

// NewScoringService creates a scoring service with the given configuration
func NewScoringService(config ScoringConfig) *ScoringService {
	factors := config.CarbonFactors
	if factors == nil {
		factors = defaultCarbonFactors
	}
	distances := config.TransportDistances
	if distances == nil {
		distances = defaultTransportDistances
	}

	return &ScoringService{
		carbonFactors:      factors,
		transportDistances: distances,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// EconomicScore rates price competitiveness on a 0-100 scale. A zero or
// negative price is unscorable and returns exactly the base score. The
// category average price is optional; pass 0 when unknown.
func (s *ScoringService) EconomicScore(product *domain.Product, categoryAvgPrice float64) float64 {
	score := baseScore

	if product.Price <= 0 {
		return baseScore
	}

	if categoryAvgPrice > 0 {
		ratio := product.Price / categoryAvgPrice
		switch {
		case ratio < 0.8:
			score += 30
		case ratio < 1.0:
			score += 20
		case ratio < 1.2:
			score += 10
		case ratio < 1.5:
			score -= 10
		default:
			score -= 20
		}
	}

	if n := product.NutritionalInfo; n != nil {
		if n.Proteins > 10 || n.Fiber > 5 {
			score += nutritionBonus
		}
	}

	if product.Quantity > 1.0 {
		score += math.Min(bulkBonusCap, product.Quantity*2)
	}

	return clampScore(score)
}

// EnvironmentalScore rates the product's environmental impact and returns
// the score along with the estimated carbon footprint in kg CO2-equivalent.
func (s *ScoringService) EnvironmentalScore(product *domain.Product) (float64, float64) {
	score := baseScore

	category := strings.ToLower(product.Category)
	factor, ok := s.carbonFactors[category]
	if !ok {
		factor = s.carbonFactors["default"]
	}

	// Normalize quantity to an approximate mass in kg
	quantity := product.Quantity
	if quantity == 0 {
		quantity = 1.0
	}
	var weightKg float64
	switch product.Unit {
	case "kg":
		weightKg = quantity
	case "l":
		weightKg = quantity * 1.0 // density approximation
	default:
		weightKg = quantity * 0.5 // approximation for unit counts
	}

	footprint := factor * weightKg

	origin := strings.ToLower(product.OriginCountry)
	transportDistance := s.transportDistance(origin)
	footprint += (transportDistance / 1000) * transportEmissionRate * weightKg

	switch {
	case footprint < 1.0:
		score += 30
	case footprint < 3.0:
		score += 15
	case footprint < 5.0:
		score += 5
	case footprint < 10.0:
		score -= 10
	default:
		score -= 25
	}

	labels := lowerLabels(product.Labels)
	if labels["organic"] {
		score += organicBonus
		footprint *= organicFootprintFactor
	}
	if labels["eco-friendly"] {
		score += ecoFriendlyBonus
	}

	if origin == "chile" || origin == "local" {
		score += localOriginBonus
		footprint *= localFootprintFactor
	}

	if strings.Contains(strings.ToLower(product.Description), "single-use") {
		score -= singleUsePenalty
	}

	if footprint < 0 {
		footprint = 0
	}

	return clampScore(score), round3(footprint)
}

// SocialScore rates labor and community signals: fair trade, local and
// regional production, small producers, and cooperatives.
func (s *ScoringService) SocialScore(product *domain.Product) float64 {
	score := baseScore

	labels := lowerLabels(product.Labels)

	if labels["fair-trade"] {
		score += fairTradeBonus
	}
	if labels["b-corp"] {
		score += bCorpBonus
	}

	origin := strings.ToLower(product.OriginCountry)
	switch origin {
	case "chile", "local":
		score += localOriginBonus
	case "argentina", "peru", "brazil":
		score += regionalBonus
	}

	if labels["small-producer"] || labels["artesanal"] {
		score += smallProducerBonus
	}
	if labels["cooperative"] || labels["cooperativa"] {
		score += cooperativeBonus
	}

	return clampScore(score)
}

// Score computes all sustainability dimensions for a product. Pass a
// category average price of 0 when no comparison baseline exists.
func (s *ScoringService) Score(product *domain.Product, categoryAvgPrice float64) *domain.SustainabilityScore {
	economic := s.EconomicScore(product, categoryAvgPrice)
	environmental, footprint := s.EnvironmentalScore(product)
	social := s.SocialScore(product)

	overall := economic*economicWeight + environmental*environmentalWeight + social*socialWeight

	if s.enableDebugLogging {
		log.Printf("[SCORE] %q: eco=%.2f env=%.2f soc=%.2f overall=%.2f carbon=%.3fkg",
			product.Name, economic, environmental, social, overall, footprint)
	}

	return &domain.SustainabilityScore{
		EconomicScore:      round2(economic),
		EnvironmentalScore: round2(environmental),
		SocialScore:        round2(social),
		OverallScore:       round2(overall),
		CarbonFootprint:    footprint,
	}
}

// CompareProducts scores both products and recommends the more sustainable
// one. When the overall scores are exactly equal the second product is
// reported as better; deterministic, and pinned by tests.
func (s *ScoringService) CompareProducts(product1, product2 *domain.Product) *domain.ProductComparison {
	score1 := s.Score(product1, 0)
	score2 := s.Score(product2, 0)

	better := 2
	if score1.OverallScore > score2.OverallScore {
		better = 1
	}

	return &domain.ProductComparison{
		Product1Scores:  score1,
		Product2Scores:  score2,
		BetterProduct:   better,
		ScoreDifference: round2(math.Abs(score1.OverallScore - score2.OverallScore)),
		CarbonDiff:      round3(math.Abs(score1.CarbonFootprint - score2.CarbonFootprint)),
		Recommendation:  s.recommendation(product1, product2, score1, score2),
	}
}

// recommendation generates the tiered textual recommendation for a
// comparison. Ties fall through to the second product.
func (s *ScoringService) recommendation(p1, p2 *domain.Product, s1, s2 *domain.SustainabilityScore) string {
	betterProduct, betterScore, worseScore := p2, s2, s1
	if s1.OverallScore > s2.OverallScore {
		betterProduct, betterScore, worseScore = p1, s1, s2
	}

	diff := betterScore.OverallScore - worseScore.OverallScore

	switch {
	case diff > 20:
		return betterProduct.Name + " is significantly better in sustainability"
	case diff > 10:
		return betterProduct.Name + " is the better option considering sustainability"
	default:
		return "Both products are similar, consider price and preferences"
	}
}

// transportDistance estimates transport distance in km from the origin
// string using case-insensitive substring matching.
func (s *ScoringService) transportDistance(origin string) float64 {
	for _, group := range originRegions {
		for _, country := range group.countries {
			if strings.Contains(origin, country) {
				return s.transportDistances[group.region]
			}
		}
	}
	return s.transportDistances["default"]
}

// lowerLabels builds a lowercase lookup set from a product's labels
func lowerLabels(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[strings.ToLower(l)] = true
	}
	return set
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
