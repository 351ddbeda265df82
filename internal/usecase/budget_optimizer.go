package usecase

import (
	"log"

	"github.com/liquiverde/backend/internal/domain"
)

// Default multi-objective weights. Caller-configurable; they need not sum to 1.
const (
	defaultSustainabilityWeight = 0.3
	defaultSavingsWeight        = 0.4
	defaultPriorityWeight       = 0.3
)

// defaultItemSustainability is assumed when an item carries no score.
const defaultItemSustainability = 50.0

// OptimizerItem is one purchasable product as seen by the optimizer.
// Sustainability of 0 means unscored and defaults to 50; CategoryAvgPrice
// of 0 means unknown and defaults to the item's own price; Priority of 0
// defaults to 1.
type OptimizerItem struct {
	Product          domain.Product
	Sustainability   float64
	CategoryAvgPrice float64
	Priority         int
}

// OptimizerConfig holds the objective weights for the budget optimizer.
// All-zero weights select the 0.3/0.4/0.3 defaults.
type OptimizerConfig struct {
	SustainabilityWeight float64
	SavingsWeight        float64
	PriorityWeight       float64
	EnableDebugLogging   bool
}

// BudgetOptimizer selects purchase quantities under a monetary cap using a
// bounded multi-choice knapsack. It holds no mutable state and is safe for
// concurrent use.
type BudgetOptimizer struct {
	maxBudget            float64
	sustainabilityWeight float64
	savingsWeight        float64
	priorityWeight       float64
	enableDebugLogging   bool
}

// NewBudgetOptimizer creates an optimizer for the given budget
func NewBudgetOptimizer(maxBudget float64, config OptimizerConfig) *BudgetOptimizer {
	wSus := config.SustainabilityWeight
	wSav := config.SavingsWeight
	wPri := config.PriorityWeight
	if wSus == 0 && wSav == 0 && wPri == 0 {
		wSus = defaultSustainabilityWeight
		wSav = defaultSavingsWeight
		wPri = defaultPriorityWeight
	}

	return &BudgetOptimizer{
		maxBudget:            maxBudget,
		sustainabilityWeight: wSus,
		savingsWeight:        wSav,
		priorityWeight:       wPri,
		enableDebugLogging:   config.EnableDebugLogging,
	}
}

// ItemValue computes the per-unit multi-objective value of an item:
// 100 * (w_sus*sustainability/100 + w_sav*savings_ratio + w_pri*priority/5)
func (o *BudgetOptimizer) ItemValue(item OptimizerItem) float64 {
	sustainability := item.Sustainability
	if sustainability == 0 {
		sustainability = defaultItemSustainability
	}

	avgPrice := item.CategoryAvgPrice
	if avgPrice == 0 {
		avgPrice = item.Product.Price
	}
	savings := 0.0
	if avgPrice > 0 {
		savings = (avgPrice - item.Product.Price) / avgPrice
		if savings < 0 {
			savings = 0
		}
	}

	priority := item.Priority
	if priority == 0 {
		priority = 1
	}

	value := sustainability/100.0*o.sustainabilityWeight +
		savings*o.savingsWeight +
		float64(priority)/5.0*o.priorityWeight

	return value * 100 // scale for precision
}

// Optimize selects a quantity per item (0..quantities[i]) maximizing total
// value under the budget. Prices and the budget are discretized to cents so
// the DP table is exact. Returns the per-item quantities positionally plus
// run statistics. An empty item list or a non-positive budget yields a
// zero-valued result, never an error.
func (o *BudgetOptimizer) Optimize(items []OptimizerItem, quantities []int) ([]int, *domain.OptimizationStats) {
	n := len(items)
	if n == 0 {
		return []int{}, &domain.OptimizationStats{}
	}

	budgetCents := int(o.maxBudget * 100)
	if budgetCents < 0 {
		budgetCents = 0
	}

	values := make([]float64, n)
	pricesCents := make([]int, n)
	for i, item := range items {
		values[i] = o.ItemValue(item)
		pricesCents[i] = int(item.Product.Price * 100)
	}

	if o.enableDebugLogging {
		log.Printf("[OPTIMIZER] Optimizing %d products with budget $%.2f", n, o.maxBudget)
	}

	// dp[i][w] = best value using the first i items within capacity w.
	// The quantity loop runs ascending with strict improvement, so value
	// ties keep the largest feasible quantity; reconstruction below relies
	// on this exact order.
	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, budgetCents+1)
	}

	for i := 1; i <= n; i++ {
		for w := 0; w <= budgetCents; w++ {
			dp[i][w] = dp[i-1][w]

			for qty := 1; qty <= quantities[i-1]; qty++ {
				cost := pricesCents[i-1] * qty
				if cost > w {
					continue
				}
				if value := dp[i-1][w-cost] + values[i-1]*float64(qty); value > dp[i][w] {
					dp[i][w] = value
				}
			}
		}
	}

	// Walk the table backward, matching the first quantity (scanned from
	// the full requested quantity downward) whose delta reproduces the
	// stored value exactly.
	selected := make([]int, n)
	w := budgetCents
	totalValue := dp[n][w]

	for i := n; i >= 1; i-- {
		if dp[i][w] == dp[i-1][w] {
			continue
		}
		for qty := quantities[i-1]; qty >= 1; qty-- {
			cost := pricesCents[i-1] * qty
			if w >= cost && dp[i][w] == dp[i-1][w-cost]+values[i-1]*float64(qty) {
				selected[i-1] = qty
				w -= cost
				break
			}
		}
	}

	stats := o.buildStats(items, selected, totalValue)

	if o.enableDebugLogging {
		log.Printf("[OPTIMIZER] Optimization complete: %d items, $%.2f spent",
			stats.ItemsSelected, stats.TotalCost)
	}

	return selected, stats
}

// OptimizeWithEssentials fixes essential items at their requested quantity
// and optimizes the remainder with the residual budget. When the essentials
// alone exceed the budget their quantities are scaled down proportionally
// (floored, minimum 1 each) and the stats carry a warning instead of an
// error; no further optimization is attempted.
func (o *BudgetOptimizer) OptimizeWithEssentials(items []OptimizerItem, quantities []int, essentialIndices []int) ([]int, *domain.OptimizationStats) {
	n := len(items)
	if n == 0 {
		return []int{}, &domain.OptimizationStats{}
	}

	essential := make(map[int]bool, len(essentialIndices))
	essentialCost := 0.0
	for _, i := range essentialIndices {
		essential[i] = true
		essentialCost += items[i].Product.Price * float64(quantities[i])
	}

	if essentialCost > o.maxBudget {
		if o.enableDebugLogging {
			log.Printf("[OPTIMIZER] Essential items cost $%.2f exceeds budget $%.2f",
				essentialCost, o.maxBudget)
		}

		factor := o.maxBudget / essentialCost
		selected := make([]int, n)
		for _, i := range essentialIndices {
			qty := int(float64(quantities[i]) * factor)
			if qty < 1 {
				qty = 1
			}
			selected[i] = qty
		}

		totalCost := 0.0
		for i := range items {
			totalCost += float64(selected[i]) * items[i].Product.Price
		}
		return selected, &domain.OptimizationStats{
			TotalCost:          round2(totalCost),
			ItemsSelected:      len(essentialIndices),
			EssentialsIncluded: len(essentialIndices),
			Warning:            "Budget insufficient for all essentials",
		}
	}

	selected := make([]int, n)
	for _, i := range essentialIndices {
		selected[i] = quantities[i]
	}

	remainingBudget := o.maxBudget - essentialCost
	if remainingBudget > 0 {
		var restItems []OptimizerItem
		var restQuantities []int
		for i := range items {
			if !essential[i] {
				restItems = append(restItems, items[i])
				restQuantities = append(restQuantities, quantities[i])
			}
		}

		if len(restItems) > 0 {
			sub := NewBudgetOptimizer(remainingBudget, OptimizerConfig{
				SustainabilityWeight: o.sustainabilityWeight,
				SavingsWeight:        o.savingsWeight,
				PriorityWeight:       o.priorityWeight,
			})
			restSelected, _ := sub.Optimize(restItems, restQuantities)

			restIdx := 0
			for i := range items {
				if !essential[i] {
					selected[i] = restSelected[restIdx]
					restIdx++
				}
			}
		}
	}

	totalCost := 0.0
	itemsSelected := 0
	for i := range items {
		totalCost += float64(selected[i]) * items[i].Product.Price
		if selected[i] > 0 {
			itemsSelected++
		}
	}

	return selected, &domain.OptimizationStats{
		TotalCost:          round2(totalCost),
		ItemsSelected:      itemsSelected,
		EssentialsIncluded: len(essentialIndices),
		BudgetRemaining:    round2(o.maxBudget - totalCost),
	}
}

// buildStats aggregates the selection into run statistics
func (o *BudgetOptimizer) buildStats(items []OptimizerItem, selected []int, totalValue float64) *domain.OptimizationStats {
	totalCost := 0.0
	itemsSelected := 0
	totalUnits := 0
	totalSustainability := 0.0

	for i := range items {
		if selected[i] == 0 {
			continue
		}
		totalCost += float64(selected[i]) * items[i].Product.Price
		itemsSelected++
		totalUnits += selected[i]

		sustainability := items[i].Sustainability
		if sustainability == 0 {
			sustainability = defaultItemSustainability
		}
		totalSustainability += float64(selected[i]) * sustainability
	}

	avgSustainability := 0.0
	if totalUnits > 0 {
		avgSustainability = totalSustainability / float64(totalUnits)
	}
	budgetUsed := 0.0
	if o.maxBudget > 0 {
		budgetUsed = totalCost / o.maxBudget * 100
	}

	return &domain.OptimizationStats{
		TotalCost:             round2(totalCost),
		TotalValue:            round2(totalValue),
		ItemsSelected:         itemsSelected,
		TotalItems:            totalUnits,
		BudgetUsedPercent:     round2(budgetUsed),
		AverageSustainability: round2(avgSustainability),
		BudgetRemaining:       round2(o.maxBudget - totalCost),
	}
}
