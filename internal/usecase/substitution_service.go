package usecase

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/liquiverde/backend/internal/domain"
)

// Composite substitution score weights
const (
	improvementWeight         = 0.35
	priceSavingsWeight        = 0.30
	categoryMatchWeight       = 0.20
	nutritionSimilarityWeight = 0.15
)

// Category similarity tiers
const (
	exactCategoryMatch   = 100.0
	relatedCategoryMatch = 70.0
	unrelatedCategory    = 30.0
)

// Default filter thresholds used by batch substitution and the HTTP layer.
//
// DefaultMaxPriceIncrease is conventionally a fraction (0.1) but is compared
// directly against a percentage value, which makes the filter much stricter
// than the number suggests. The comparison is kept literal on purpose.
const (
	DefaultMaxPriceIncrease = 0.1
	DefaultMinImprovement   = 5.0
)

// relatedCategories maps a category to the categories considered adjacent
// to it for similarity scoring.
var relatedCategories = map[string][]string{
	"meat":       {"poultry", "fish"},
	"dairy":      {"cheese", "yogurt", "milk"},
	"vegetables": {"fruits", "legumes"},
	"snacks":     {"sweets", "cookies"},
}

// SubstitutionService finds and ranks more sustainable alternatives for a
// product. Safe for concurrent use.
type SubstitutionService struct {
	scorer             *ScoringService
	enableDebugLogging bool
}

// NewSubstitutionService creates a substitution service backed by the given
// scorer
func NewSubstitutionService(scorer *ScoringService, enableDebugLogging bool) *SubstitutionService {
	return &SubstitutionService{
		scorer:             scorer,
		enableDebugLogging: enableDebugLogging,
	}
}

// FindSubstitutes ranks candidate products as substitutes for the original.
// Candidates sharing the original's id, exceeding maxPriceIncrease, or
// improving sustainability by less than minImprovement points are excluded.
// Results are sorted by descending substitution score; no match yields an
// empty slice, never an error.
func (s *SubstitutionService) FindSubstitutes(original *domain.Product, candidates []domain.Product,
	maxPriceIncrease, minImprovement float64) []domain.Substitute {
	if len(candidates) == 0 {
		return []domain.Substitute{}
	}

	originalScore := s.scorer.Score(original, 0)
	originalPrice := original.Price

	substitutes := []domain.Substitute{}

	for _, candidate := range candidates {
		if candidate.ID == original.ID {
			continue
		}

		priceDiffPercent := 0.0
		if originalPrice > 0 {
			priceDiffPercent = (candidate.Price - originalPrice) / originalPrice * 100
		}
		if priceDiffPercent > maxPriceIncrease {
			continue
		}

		candidateScore := s.scorer.Score(&candidate, 0)
		improvement := candidateScore.OverallScore - originalScore.OverallScore
		if improvement < minImprovement {
			continue
		}

		savings := originalPrice - candidate.Price
		savingsPercent := 0.0
		if originalPrice > 0 {
			savingsPercent = savings / originalPrice * 100
		}

		substitutes = append(substitutes, domain.Substitute{
			Product:                   candidate,
			SubstitutionScore:         s.substitutionScore(original, &candidate, originalScore, candidateScore),
			SustainabilityImprovement: improvement,
			Savings:                   savings,
			SavingsPercent:            savingsPercent,
			CarbonReduction:           originalScore.CarbonFootprint - candidateScore.CarbonFootprint,
			Reason:                    s.substitutionReason(&candidate, improvement, savingsPercent),
			OriginalScore:             originalScore,
			SubstituteScore:           candidateScore,
		})
	}

	sort.SliceStable(substitutes, func(i, j int) bool {
		return substitutes[i].SubstitutionScore > substitutes[j].SubstitutionScore
	})

	if s.enableDebugLogging {
		log.Printf("[SUBSTITUTE] Found %d substitutes for %q", len(substitutes), original.Name)
	}

	return substitutes
}

// substitutionScore combines sustainability gain, price savings, category
// similarity and nutritional similarity into a 0-100 composite.
func (s *SubstitutionService) substitutionScore(original, candidate *domain.Product,
	originalScore, candidateScore *domain.SustainabilityScore) float64 {
	score := 0.0

	improvement := candidateScore.OverallScore - originalScore.OverallScore
	score += math.Min(100, math.Max(0, improvement)) * improvementWeight

	if original.Price > 0 {
		savingsPercent := (original.Price - candidate.Price) / original.Price * 100
		score += math.Min(100, math.Max(0, savingsPercent*5)) * priceSavingsWeight
	}

	score += categorySimilarity(original.Category, candidate.Category) * categoryMatchWeight
	score += nutritionalSimilarity(original.NutritionalInfo, candidate.NutritionalInfo) * nutritionSimilarityWeight

	return round2(score)
}

// categorySimilarity scores how close two categories are: exact match,
// adjacent per relatedCategories, or unrelated.
func categorySimilarity(category1, category2 string) float64 {
	cat1 := strings.ToLower(category1)
	cat2 := strings.ToLower(category2)

	if cat1 == cat2 {
		return exactCategoryMatch
	}

	for mainCat, related := range relatedCategories {
		for _, rel := range related {
			if (cat1 == mainCat && cat2 == rel) || (cat2 == mainCat && cat1 == rel) {
				return relatedCategoryMatch
			}
		}
	}

	return unrelatedCategory
}

// nutritionalSimilarity averages per-metric similarity over energy, protein,
// carbohydrate and fat. Metrics where both values are zero count as fully
// similar, one-sided zeros as fully dissimilar. Missing info on either side
// yields a neutral 50.
func nutritionalSimilarity(info1, info2 *domain.NutritionalInfo) float64 {
	if info1 == nil || info2 == nil {
		return 50.0
	}

	pairs := [][2]float64{
		{info1.EnergyKcal, info2.EnergyKcal},
		{info1.Proteins, info2.Proteins},
		{info1.Carbohydrates, info2.Carbohydrates},
		{info1.Fats, info2.Fats},
	}

	total := 0.0
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		switch {
		case a == 0 && b == 0:
			total += 100
		case a == 0 || b == 0:
			total += 0
		default:
			diff := math.Abs(a-b) / math.Max(a, b)
			total += math.Max(0, (1-diff)*100)
		}
	}

	return total / float64(len(pairs))
}

// substitutionReason builds the human-readable justification for a
// substitute from tiered thresholds and label checks.
func (s *SubstitutionService) substitutionReason(substitute *domain.Product,
	improvement, savingsPercent float64) string {
	var reasons []string

	if improvement > 20 {
		reasons = append(reasons, fmt.Sprintf("Significant sustainability improvement (+%.1f points)", improvement))
	} else if improvement > 10 {
		reasons = append(reasons, fmt.Sprintf("Higher sustainability (+%.1f points)", improvement))
	}

	if savingsPercent > 15 {
		reasons = append(reasons, fmt.Sprintf("Considerable savings (%.1f%%)", savingsPercent))
	} else if savingsPercent > 5 {
		reasons = append(reasons, fmt.Sprintf("Savings of %.1f%%", savingsPercent))
	} else if savingsPercent < -5 {
		reasons = append(reasons, fmt.Sprintf("Investment in sustainability (+%.1f%%)", math.Abs(savingsPercent)))
	}

	labels := lowerLabels(substitute.Labels)
	if labels["organic"] {
		reasons = append(reasons, "Organic product")
	}
	if labels["fair-trade"] {
		reasons = append(reasons, "Fair trade")
	}

	origin := strings.ToLower(substitute.OriginCountry)
	if origin == "chile" || origin == "local" {
		reasons = append(reasons, "Local production")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "More sustainable alternative")
	}

	return strings.Join(reasons, " | ")
}

// BatchSubstitute picks the single top-ranked substitute for each product
// and aggregates the savings and carbon reduction. A positive
// maxSubstitutions caps the result, re-ranked by improvement + savings*10.
func (s *SubstitutionService) BatchSubstitute(products []domain.Product, candidatePool []domain.Product,
	maxSubstitutions int) *domain.BatchSubstitutionResult {
	var substitutions []domain.BatchSubstitution
	totalSavings := 0.0
	totalCarbonReduction := 0.0

	for _, product := range products {
		substitutes := s.FindSubstitutes(&product, candidatePool, DefaultMaxPriceIncrease, DefaultMinImprovement)
		if len(substitutes) == 0 {
			continue
		}

		best := substitutes[0]
		substitutions = append(substitutions, domain.BatchSubstitution{
			Original:                  product,
			Substitute:                best.Product,
			Reason:                    best.Reason,
			Savings:                   best.Savings,
			SustainabilityImprovement: best.SustainabilityImprovement,
			CarbonReduction:           best.CarbonReduction,
		})
		totalSavings += best.Savings
		totalCarbonReduction += best.CarbonReduction
	}

	if maxSubstitutions > 0 && len(substitutions) > maxSubstitutions {
		sort.SliceStable(substitutions, func(i, j int) bool {
			return substitutions[i].SustainabilityImprovement+substitutions[i].Savings*10 >
				substitutions[j].SustainabilityImprovement+substitutions[j].Savings*10
		})
		substitutions = substitutions[:maxSubstitutions]
	}

	avgImprovement := 0.0
	if len(substitutions) > 0 {
		for _, sub := range substitutions {
			avgImprovement += sub.SustainabilityImprovement
		}
		avgImprovement = round2(avgImprovement / float64(len(substitutions)))
	}

	return &domain.BatchSubstitutionResult{
		Substitutions:        substitutions,
		TotalSubstitutions:   len(substitutions),
		TotalSavings:         round2(totalSavings),
		TotalCarbonReduction: round3(totalCarbonReduction),
		AverageImprovement:   avgImprovement,
	}
}
