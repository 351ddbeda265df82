package domain

// CategoryImpact breaks down cost and carbon for a single category.
type CategoryImpact struct {
	Count  int     `json:"count"`
	Cost   float64 `json:"cost"`
	Carbon float64 `json:"carbon"`
}

// ImpactEquivalences translates kg CO2 into everyday comparisons.
type ImpactEquivalences struct {
	KmDriven     float64 `json:"km_driven"`
	TreesNeeded  float64 `json:"trees_needed"`
	DaysOfEnergy float64 `json:"days_of_energy"`
}

// ImpactReport is the environmental and economic impact of a product
// selection.
type ImpactReport struct {
	TotalCost             float64                   `json:"total_cost"`
	TotalCarbon           float64                   `json:"total_carbon"`
	AverageSustainability float64                   `json:"average_sustainability"`
	ImpactBreakdown       map[string]CategoryImpact `json:"impact_breakdown"`
	Equivalences          ImpactEquivalences        `json:"equivalences"`
	Recommendations       []string                  `json:"recommendations"`
}
