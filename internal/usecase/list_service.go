package usecase

import (
	"context"
	"log"

	"github.com/liquiverde/backend/internal/domain"
)

// Objective weights applied when optimizing a stored list, depending on the
// caller's priorities.
const (
	prioritizedWeight   = 0.35
	deprioritizedWeight = 0.2
	listPriorityWeight  = 0.3
)

// Quick optimization uses a slightly stronger sustainability pull and a
// fixed medium priority.
const (
	quickSustainabilityWeight = 0.4
	quickSavingsWeight        = 0.3
	quickPriorityWeight       = 0.3
	quickItemPriority         = 3
)

// categoryAvgMarkup approximates an unknown category average price from the
// product's own price.
const categoryAvgMarkup = 1.1

// Substitution thresholds used when enriching an optimized list with
// suggested swaps.
const (
	listMaxPriceIncrease = 0.15
	listMinImprovement   = 10.0
	maxListSubstitutions = 5
)

// ListService manages shopping lists and runs the budget optimizer over
// them.
type ListService struct {
	lists        domain.ShoppingListRepository
	products     domain.ProductRepository
	scorer       *ScoringService
	substitution *SubstitutionService
}

// NewListService creates a shopping list service with its dependencies
func NewListService(lists domain.ShoppingListRepository, products domain.ProductRepository,
	scorer *ScoringService, substitution *SubstitutionService) *ListService {
	return &ListService{
		lists:        lists,
		products:     products,
		scorer:       scorer,
		substitution: substitution,
	}
}

// Create stores a new shopping list and returns it with its assigned id
func (s *ListService) Create(ctx context.Context, list *domain.ShoppingList) (*domain.ShoppingList, error) {
	id, err := s.lists.Create(ctx, list)
	if err != nil {
		return nil, err
	}
	list.ID = id
	return list, nil
}

// Get returns a stored list by id
func (s *ListService) Get(ctx context.Context, id string) (*domain.ShoppingList, error) {
	return s.lists.GetByID(ctx, id)
}

// GetAll returns stored lists up to the limit
func (s *ListService) GetAll(ctx context.Context, limit int) ([]domain.ShoppingList, error) {
	return s.lists.GetAll(ctx, limit)
}

// Optimize runs the budget optimizer over a stored list. Items referencing
// unknown products are skipped; essential items are passed through the
// essentials-aware optimization path. When sustainability is prioritized,
// the result also carries up to five substitution suggestions.
func (s *ListService) Optimize(ctx context.Context, listID string, criteria *domain.OptimizationCriteria) (*domain.OptimizedShoppingList, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	var items []OptimizerItem
	var quantities []int
	var essentialIndices []int

	for _, listItem := range list.Items {
		product, err := s.products.GetByID(ctx, listItem.ProductID)
		if err != nil {
			log.Printf("[LIST] Product %s not found, skipping", listItem.ProductID)
			continue
		}

		score := product.Sustainability
		if score == nil {
			score = s.scorer.Score(product, 0)
		}

		if listItem.IsEssential {
			essentialIndices = append(essentialIndices, len(items))
		}
		items = append(items, OptimizerItem{
			Product:          *product,
			Sustainability:   score.OverallScore,
			CategoryAvgPrice: product.Price * categoryAvgMarkup,
			Priority:         listItem.Priority,
		})
		quantities = append(quantities, listItem.Quantity)
	}

	if len(items) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	sustainabilityWeight := deprioritizedWeight
	if criteria.PrioritizeSustainability {
		sustainabilityWeight = prioritizedWeight
	}
	savingsWeight := deprioritizedWeight
	if criteria.PrioritizeSavings {
		savingsWeight = prioritizedWeight
	}

	optimizer := NewBudgetOptimizer(criteria.MaxBudget, OptimizerConfig{
		SustainabilityWeight: sustainabilityWeight,
		SavingsWeight:        savingsWeight,
		PriorityWeight:       listPriorityWeight,
	})

	var selected []int
	var stats *domain.OptimizationStats
	if len(essentialIndices) > 0 {
		selected, stats = optimizer.OptimizeWithEssentials(items, quantities, essentialIndices)
	} else {
		selected, stats = optimizer.Optimize(items, quantities)
	}

	optimizedItems := []domain.OptimizedItem{}
	totalCarbon := 0.0
	originalCost := 0.0

	for i, qty := range selected {
		originalCost += items[i].Product.Price * float64(quantities[i])
		if qty == 0 {
			continue
		}
		optimizedItems = append(optimizedItems, domain.OptimizedItem{
			Product:  items[i].Product,
			Quantity: qty,
			Subtotal: round2(items[i].Product.Price * float64(qty)),
		})
		if items[i].Product.Sustainability != nil {
			totalCarbon += items[i].Product.Sustainability.CarbonFootprint * float64(qty)
		}
	}

	var substitutions []domain.SubstitutionSummary
	if criteria.PrioritizeSustainability {
		substitutions = s.suggestSubstitutions(ctx, optimizedItems)
	}

	return &domain.OptimizedShoppingList{
		OriginalList:         list,
		OptimizedItems:       optimizedItems,
		TotalCost:            stats.TotalCost,
		EstimatedSavings:     round2(originalCost - stats.TotalCost),
		EnvironmentalScore:   stats.AverageSustainability,
		TotalCarbonFootprint: round3(totalCarbon),
		SubstitutionsMade:    substitutions,
		Stats:                stats,
	}, nil
}

// suggestSubstitutions looks up better alternatives within each selected
// product's category, capped at maxListSubstitutions.
func (s *ListService) suggestSubstitutions(ctx context.Context, items []domain.OptimizedItem) []domain.SubstitutionSummary {
	var substitutions []domain.SubstitutionSummary

	for _, item := range items {
		if len(substitutions) >= maxListSubstitutions {
			break
		}

		candidates, err := s.products.GetByCategory(ctx, item.Product.Category, 200)
		if err != nil {
			continue
		}

		subs := s.substitution.FindSubstitutes(&item.Product, candidates, listMaxPriceIncrease, listMinImprovement)
		if len(subs) == 0 {
			continue
		}

		substitutions = append(substitutions, domain.SubstitutionSummary{
			Original:                  item.Product.Name,
			Substitute:                subs[0].Product.Name,
			Reason:                    subs[0].Reason,
			Savings:                   subs[0].Savings,
			SustainabilityImprovement: subs[0].SustainabilityImprovement,
		})
	}

	return substitutions
}

// QuickOptimize optimizes an ad-hoc selection of product ids with one unit
// requested per product, without touching stored lists.
func (s *ListService) QuickOptimize(ctx context.Context, productIDs []string, maxBudget float64, prioritizeSustainability bool) (*domain.QuickOptimization, error) {
	var items []OptimizerItem
	var quantities []int

	for _, id := range productIDs {
		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			continue
		}

		score := product.Sustainability
		if score == nil {
			score = s.scorer.Score(product, 0)
		}

		items = append(items, OptimizerItem{
			Product:          *product,
			Sustainability:   score.OverallScore,
			CategoryAvgPrice: product.Price * categoryAvgMarkup,
			Priority:         quickItemPriority,
		})
		quantities = append(quantities, 1)
	}

	if len(items) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	sustainabilityWeight := deprioritizedWeight
	if prioritizeSustainability {
		sustainabilityWeight = quickSustainabilityWeight
	}

	optimizer := NewBudgetOptimizer(maxBudget, OptimizerConfig{
		SustainabilityWeight: sustainabilityWeight,
		SavingsWeight:        quickSavingsWeight,
		PriorityWeight:       quickPriorityWeight,
	})

	selected, stats := optimizer.Optimize(items, quantities)

	selectedProducts := []domain.OptimizedItem{}
	for i, qty := range selected {
		if qty == 0 {
			continue
		}
		selectedProducts = append(selectedProducts, domain.OptimizedItem{
			Product:  items[i].Product,
			Quantity: qty,
			Subtotal: round2(items[i].Product.Price * float64(qty)),
		})
	}

	return &domain.QuickOptimization{
		SelectedProducts: selectedProducts,
		Stats:            stats,
	}, nil
}
