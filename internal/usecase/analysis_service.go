package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/liquiverde/backend/internal/domain"
)

// Carbon equivalence factors for impact reports
const (
	kmDrivenPerKgCO2    = 4.5  // 1 kg CO2 is roughly 4.5 km by car
	kgCO2PerTreePerYear = 21.0 // one tree absorbs ~21 kg CO2/year
	kgCO2PerHomeDay     = 6.0  // average household emits ~6 kg CO2/day
)

// savingsSampleSize bounds how many list products get a substitute search
// when estimating potential savings.
const savingsSampleSize = 5

// AnalysisService aggregates shopping lists and product selections into
// cost, sustainability, and carbon insights.
type AnalysisService struct {
	products     domain.ProductRepository
	scorer       *ScoringService
	substitution *SubstitutionService
}

// NewAnalysisService creates an analysis service with its dependencies
func NewAnalysisService(products domain.ProductRepository, scorer *ScoringService, substitution *SubstitutionService) *AnalysisService {
	return &AnalysisService{
		products:     products,
		scorer:       scorer,
		substitution: substitution,
	}
}

// AnalyzeList aggregates a shopping list: totals, category breakdown,
// potential substitution savings, and textual recommendations. Items whose
// product cannot be found are skipped.
func (s *AnalysisService) AnalyzeList(ctx context.Context, items []domain.ShoppingListItem) (*domain.ShoppingAnalysis, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	totalCost := 0.0
	totalCarbon := 0.0
	sustainabilityTotal := 0.0
	scoredCount := 0
	categoryCosts := map[string]float64{}

	var analyzed []domain.Product

	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			continue
		}
		analyzed = append(analyzed, *product)

		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		cost := product.Price * float64(quantity)
		totalCost += cost

		category := product.Category
		if category == "" {
			category = "other"
		}
		categoryCosts[category] += cost

		score := s.productScore(product)
		sustainabilityTotal += score.OverallScore
		scoredCount++
		totalCarbon += score.CarbonFootprint * float64(quantity)
	}

	avgSustainability := 0.0
	if scoredCount > 0 {
		avgSustainability = sustainabilityTotal / float64(scoredCount)
	}

	return &domain.ShoppingAnalysis{
		TotalItems:            len(items),
		TotalCost:             round2(totalCost),
		AverageSustainability: round2(avgSustainability),
		TotalCarbonFootprint:  round3(totalCarbon),
		CategoryBreakdown:     categoryCosts,
		PotentialSavings:      round2(s.potentialSavings(ctx, analyzed)),
		Recommendations:       listRecommendations(avgSustainability, totalCarbon, categoryCosts),
	}, nil
}

// productScore returns the stored score or computes one on demand
func (s *AnalysisService) productScore(product *domain.Product) *domain.SustainabilityScore {
	if product.Sustainability != nil {
		return product.Sustainability
	}
	return s.scorer.Score(product, 0)
}

// potentialSavings sums the best substitute's savings for a sample of the
// analyzed products, searching within each product's own category.
func (s *AnalysisService) potentialSavings(ctx context.Context, products []domain.Product) float64 {
	savings := 0.0

	sample := products
	if len(sample) > savingsSampleSize {
		sample = sample[:savingsSampleSize]
	}

	for _, product := range sample {
		candidates, err := s.products.GetByCategory(ctx, product.Category, 200)
		if err != nil {
			continue
		}

		subs := s.substitution.FindSubstitutes(&product, candidates, DefaultMaxPriceIncrease, DefaultMinImprovement)
		if len(subs) > 0 && subs[0].Savings > 0 {
			savings += subs[0].Savings
		}
	}

	return savings
}

// listRecommendations produces the tiered advice strings for a list analysis
func listRecommendations(avgSustainability, totalCarbon float64, categoryCosts map[string]float64) []string {
	var recommendations []string

	if avgSustainability < 50 {
		recommendations = append(recommendations, "Consider products with better sustainability scores")
	}
	if totalCarbon > 20 {
		recommendations = append(recommendations, "Your list has a high carbon footprint. Consider local products")
	}

	if len(categoryCosts) > 0 {
		type categoryCost struct {
			name string
			cost float64
		}
		sorted := make([]categoryCost, 0, len(categoryCosts))
		for name, cost := range categoryCosts {
			sorted = append(sorted, categoryCost{name, cost})
		}
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].cost != sorted[j].cost {
				return sorted[i].cost > sorted[j].cost
			}
			return sorted[i].name < sorted[j].name
		})
		if len(sorted) > 3 {
			sorted = sorted[:3]
		}
		names := make([]string, len(sorted))
		for i, c := range sorted {
			names[i] = c.name
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Highest spending categories: %s", strings.Join(names, ", ")))
	}

	return recommendations
}

// Impact computes the environmental and economic impact of a product
// selection, with per-category breakdown and everyday equivalences.
// Unknown product ids are skipped; an empty selection yields a zero report.
func (s *AnalysisService) Impact(ctx context.Context, productIDs []string) (*domain.ImpactReport, error) {
	var products []domain.Product
	for _, id := range productIDs {
		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			continue
		}
		products = append(products, *product)
	}

	if len(products) == 0 {
		return &domain.ImpactReport{ImpactBreakdown: map[string]domain.CategoryImpact{}}, nil
	}

	totalCost := 0.0
	totalCarbon := 0.0
	sustainabilityTotal := 0.0
	breakdown := map[string]domain.CategoryImpact{}

	for i := range products {
		product := &products[i]
		score := s.productScore(product)

		totalCost += product.Price
		totalCarbon += score.CarbonFootprint
		sustainabilityTotal += score.OverallScore

		category := product.Category
		if category == "" {
			category = "other"
		}
		impact := breakdown[category]
		impact.Count++
		impact.Cost += product.Price
		impact.Carbon += score.CarbonFootprint
		breakdown[category] = impact
	}

	avgSustainability := sustainabilityTotal / float64(len(products))

	return &domain.ImpactReport{
		TotalCost:             round2(totalCost),
		TotalCarbon:           round3(totalCarbon),
		AverageSustainability: round2(avgSustainability),
		ImpactBreakdown:       breakdown,
		Equivalences: domain.ImpactEquivalences{
			KmDriven:     round1(totalCarbon * kmDrivenPerKgCO2),
			TreesNeeded:  round1(totalCarbon / kgCO2PerTreePerYear),
			DaysOfEnergy: round1(totalCarbon / kgCO2PerHomeDay),
		},
		Recommendations: impactRecommendations(totalCarbon, avgSustainability),
	}, nil
}

// impactRecommendations produces the tiered advice strings for an impact
// report.
func impactRecommendations(carbon, sustainability float64) []string {
	var recommendations []string

	switch {
	case carbon > 50:
		recommendations = append(recommendations, "High carbon footprint. Consider local and seasonal products.")
	case carbon > 20:
		recommendations = append(recommendations, "Moderate carbon footprint. You can improve by choosing organic products.")
	default:
		recommendations = append(recommendations, "Excellent carbon footprint. Keep it up!")
	}

	switch {
	case sustainability < 40:
		recommendations = append(recommendations, "Low sustainability score. Review the suggested alternatives.")
	case sustainability < 60:
		recommendations = append(recommendations, "Moderate sustainability. There is room for improvement.")
	default:
		recommendations = append(recommendations, "Excellent sustainability. You are making a difference.")
	}

	return recommendations
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
