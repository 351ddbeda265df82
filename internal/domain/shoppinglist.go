package domain

import "time"

// ShoppingListItem is a single entry on a shopping list. Essential items
// must be included in any optimized selection, budget permitting.
type ShoppingListItem struct {
	ProductID   string `json:"product_id" binding:"required"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Priority    int    `json:"priority" binding:"omitempty,min=1,max=5"` // 1=low, 5=high
	IsEssential bool   `json:"is_essential"`
}

// OptimizationCriteria carries the caller's constraints for list optimization.
type OptimizationCriteria struct {
	MaxBudget                float64  `json:"max_budget" binding:"required,gt=0"`
	PrioritizeSustainability bool     `json:"prioritize_sustainability"`
	PrioritizeSavings        bool     `json:"prioritize_savings"`
	MinEnvironmentalScore    float64  `json:"min_environmental_score,omitempty"`
	PreferredStores          []string `json:"preferred_stores,omitempty"`
}

// ShoppingList is a named collection of items, optionally optimized.
type ShoppingList struct {
	ID          string                `json:"id,omitempty"`
	Name        string                `json:"name" binding:"required"`
	Items       []ShoppingListItem    `json:"items"`
	Criteria    *OptimizationCriteria `json:"optimization_criteria,omitempty"`
	IsOptimized bool                  `json:"is_optimized"`
	CreatedAt   time.Time             `json:"created_at,omitempty"`
	UpdatedAt   time.Time             `json:"updated_at,omitempty"`
}

// OptimizationStats summarizes a budget optimization run. Currency and
// percentage fields are rounded to 2 decimals; counts are exact.
type OptimizationStats struct {
	TotalCost             float64 `json:"total_cost"`
	TotalValue            float64 `json:"total_value"`
	ItemsSelected         int     `json:"items_selected"`
	TotalItems            int     `json:"total_items"`
	BudgetUsedPercent     float64 `json:"budget_used_percent"`
	AverageSustainability float64 `json:"average_sustainability"`
	BudgetRemaining       float64 `json:"budget_remaining"`
	EssentialsIncluded    int     `json:"essentials_included,omitempty"`
	Warning               string  `json:"warning,omitempty"`
}

// OptimizedItem is a product selected by the optimizer with its quantity.
type OptimizedItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// SubstitutionSummary is a compact substitution suggestion attached to an
// optimized list.
type SubstitutionSummary struct {
	Original                  string  `json:"original"`
	Substitute                string  `json:"substitute"`
	Reason                    string  `json:"reason"`
	Savings                   float64 `json:"savings"`
	SustainabilityImprovement float64 `json:"sustainability_improvement"`
}

// OptimizedShoppingList is the full result of optimizing a stored list.
type OptimizedShoppingList struct {
	OriginalList         *ShoppingList         `json:"original_list"`
	OptimizedItems       []OptimizedItem       `json:"optimized_items"`
	TotalCost            float64               `json:"total_cost"`
	EstimatedSavings     float64               `json:"estimated_savings"`
	EnvironmentalScore   float64               `json:"total_environmental_score"`
	TotalCarbonFootprint float64               `json:"total_carbon_footprint"`
	SubstitutionsMade    []SubstitutionSummary `json:"substitutions_made"`
	Stats                *OptimizationStats    `json:"optimization_stats"`
}

// QuickOptimization is the result of an ad-hoc optimization over product ids.
type QuickOptimization struct {
	SelectedProducts []OptimizedItem    `json:"selected_products"`
	Stats            *OptimizationStats `json:"stats"`
}

// ShoppingAnalysis is the aggregate view of a shopping list: totals,
// per-category spend, and textual recommendations.
type ShoppingAnalysis struct {
	TotalItems            int                `json:"total_items"`
	TotalCost             float64            `json:"total_cost"`
	AverageSustainability float64            `json:"average_sustainability_score"`
	TotalCarbonFootprint  float64            `json:"total_carbon_footprint"`
	CategoryBreakdown     map[string]float64 `json:"category_breakdown"`
	PotentialSavings      float64            `json:"potential_savings"`
	Recommendations       []string           `json:"recommendations"`
}
