package domain

// BatchSubstitution pairs an original product with its best substitute.
type BatchSubstitution struct {
	Original                  Product `json:"original"`
	Substitute                Product `json:"substitute"`
	Reason                    string  `json:"reason"`
	Savings                   float64 `json:"savings"`
	SustainabilityImprovement float64 `json:"sustainability_improvement"`
	CarbonReduction           float64 `json:"carbon_reduction"`
}

// BatchSubstitutionResult aggregates a batch substitution run.
type BatchSubstitutionResult struct {
	Substitutions        []BatchSubstitution `json:"substitutions"`
	TotalSubstitutions   int                 `json:"total_substitutions"`
	TotalSavings         float64             `json:"total_savings"`
	TotalCarbonReduction float64             `json:"total_carbon_reduction"`
	AverageImprovement   float64             `json:"average_sustainability_improvement"`
}
