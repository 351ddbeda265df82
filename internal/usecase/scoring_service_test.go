package usecase

import (
	"testing"

	"github.com/liquiverde/backend/internal/domain"
)

func TestEconomicScore(t *testing.T) {
	svc := NewScoringService(ScoringConfig{})

	t.Run("returns base score for non-positive price", func(t *testing.T) {
		product := &domain.Product{Name: "Free sample", Category: "snacks", Price: 0}
		if got := svc.EconomicScore(product, 1000); got != 50 {
			t.Errorf("EconomicScore = %v, want 50", got)
		}
	})

	t.Run("price ratio tiers", func(t *testing.T) {
		tests := []struct {
			name  string
			price float64
			want  float64
		}{
			{"very cheap", 700, 80},  // ratio 0.7 -> +30
			{"cheap", 900, 70},       // ratio 0.9 -> +20
			{"fair", 1100, 60},       // ratio 1.1 -> +10
			{"expensive", 1400, 40},  // ratio 1.4 -> -10
			{"very expensive", 2000, 30}, // ratio 2.0 -> -20
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				product := &domain.Product{Name: "x", Category: "grains", Price: tt.price}
				if got := svc.EconomicScore(product, 1000); got != tt.want {
					t.Errorf("EconomicScore(price=%v) = %v, want %v", tt.price, got, tt.want)
				}
			})
		}
	})

	t.Run("no category average leaves ratio out", func(t *testing.T) {
		product := &domain.Product{Name: "x", Category: "grains", Price: 500}
		if got := svc.EconomicScore(product, 0); got != 50 {
			t.Errorf("EconomicScore = %v, want 50", got)
		}
	})

	t.Run("nutrition bonus for high protein or fiber", func(t *testing.T) {
		product := &domain.Product{
			Name: "lentils", Category: "legumes", Price: 1000,
			NutritionalInfo: &domain.NutritionalInfo{Proteins: 12},
		}
		if got := svc.EconomicScore(product, 0); got != 60 {
			t.Errorf("EconomicScore = %v, want 60", got)
		}
	})

	t.Run("bulk bonus is capped at 10", func(t *testing.T) {
		product := &domain.Product{Name: "rice", Category: "grains", Price: 1000, Quantity: 3}
		if got := svc.EconomicScore(product, 0); got != 56 {
			t.Errorf("EconomicScore(qty=3) = %v, want 56", got)
		}

		product.Quantity = 20
		if got := svc.EconomicScore(product, 0); got != 60 {
			t.Errorf("EconomicScore(qty=20) = %v, want 60 (capped)", got)
		}
	})
}

func TestEnvironmentalScore(t *testing.T) {
	svc := NewScoringService(ScoringConfig{})

	t.Run("low footprint vegetables score high", func(t *testing.T) {
		product := &domain.Product{
			Name: "tomatoes", Category: "vegetables", Price: 1000,
			Quantity: 1, Unit: "kg", OriginCountry: "Chile",
		}
		score, footprint := svc.EnvironmentalScore(product)
		if score < 70 {
			t.Errorf("score = %v, want >= 70", score)
		}
		if footprint <= 0 {
			t.Errorf("footprint = %v, want > 0", footprint)
		}
	})

	t.Run("meat from far away scores low", func(t *testing.T) {
		product := &domain.Product{
			Name: "imported beef", Category: "meat", Price: 9000,
			Quantity: 1, Unit: "kg", OriginCountry: "USA",
		}
		score, footprint := svc.EnvironmentalScore(product)
		if score >= 50 {
			t.Errorf("score = %v, want < 50", score)
		}
		if footprint < 27 {
			t.Errorf("footprint = %v, want >= 27 (carbon factor alone)", footprint)
		}
	})

	t.Run("organic label reduces footprint", func(t *testing.T) {
		base := &domain.Product{Name: "apples", Category: "fruits", Price: 1000, Quantity: 1, Unit: "kg", OriginCountry: "Spain"}
		organic := &domain.Product{Name: "apples", Category: "fruits", Price: 1000, Quantity: 1, Unit: "kg", OriginCountry: "Spain", Labels: []string{"Organic"}}

		baseScore, baseFootprint := svc.EnvironmentalScore(base)
		organicScore, organicFootprint := svc.EnvironmentalScore(organic)

		if organicScore != baseScore+15 {
			t.Errorf("organic score = %v, want %v", organicScore, baseScore+15)
		}
		if organicFootprint >= baseFootprint {
			t.Errorf("organic footprint = %v, want < %v", organicFootprint, baseFootprint)
		}
	})

	t.Run("single-use description is penalized", func(t *testing.T) {
		plain := &domain.Product{Name: "water", Category: "beverages", Price: 500, Quantity: 1, Unit: "l", OriginCountry: "Chile"}
		wasteful := &domain.Product{Name: "water", Category: "beverages", Price: 500, Quantity: 1, Unit: "l", OriginCountry: "Chile",
			Description: "Single-use plastic bottle"}

		plainScore, _ := svc.EnvironmentalScore(plain)
		wastefulScore, _ := svc.EnvironmentalScore(wasteful)

		if wastefulScore != plainScore-15 {
			t.Errorf("penalized score = %v, want %v", wastefulScore, plainScore-15)
		}
	})

	t.Run("scores stay within bounds", func(t *testing.T) {
		worst := &domain.Product{Name: "x", Category: "meat", Price: 100, Quantity: 50, Unit: "kg",
			OriginCountry: "China", Description: "single-use packaging"}
		score, footprint := svc.EnvironmentalScore(worst)
		if score < 0 || score > 100 {
			t.Errorf("score = %v, want within [0,100]", score)
		}
		if footprint < 0 {
			t.Errorf("footprint = %v, want >= 0", footprint)
		}
	})
}

func TestSocialScore(t *testing.T) {
	svc := NewScoringService(ScoringConfig{})

	tests := []struct {
		name    string
		product domain.Product
		want    float64
	}{
		{
			name:    "no signals stays at base",
			product: domain.Product{Name: "x", Category: "snacks", Price: 100, OriginCountry: "China"},
			want:    50,
		},
		{
			name:    "local origin",
			product: domain.Product{Name: "x", Category: "vegetables", Price: 100, OriginCountry: "Chile"},
			want:    70,
		},
		{
			name:    "neighboring country origin",
			product: domain.Product{Name: "x", Category: "fruits", Price: 100, OriginCountry: "Peru"},
			want:    60,
		},
		{
			name: "fair trade cooperative",
			product: domain.Product{Name: "x", Category: "beverages", Price: 100,
				Labels: []string{"Fair-Trade", "Cooperative"}},
			want: 90,
		},
		{
			name: "all signals clamp at 100",
			product: domain.Product{Name: "x", Category: "grains", Price: 100, OriginCountry: "Chile",
				Labels: []string{"fair-trade", "b-corp", "small-producer", "cooperative"}},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.SocialScore(&tt.product); got != tt.want {
				t.Errorf("SocialScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_OverallWeighting(t *testing.T) {
	svc := NewScoringService(ScoringConfig{})

	// Local organic vegetables, cheaper than the category average
	product := &domain.Product{
		Name: "organic tomatoes", Category: "vegetables", Price: 1000,
		OriginCountry: "Chile", Labels: []string{"organic", "local"},
		NutritionalInfo: &domain.NutritionalInfo{Proteins: 5, Fiber: 8},
	}

	score := svc.Score(product, 1500)

	if score.EconomicScore <= 50 {
		t.Errorf("EconomicScore = %v, want > 50 (cheaper than average)", score.EconomicScore)
	}
	if score.EnvironmentalScore < 70 {
		t.Errorf("EnvironmentalScore = %v, want >= 70", score.EnvironmentalScore)
	}
	if score.SocialScore != 70 {
		t.Errorf("SocialScore = %v, want 70 (local origin only)", score.SocialScore)
	}

	want := round2(score.EconomicScore*0.33 + score.EnvironmentalScore*0.34 + score.SocialScore*0.33)
	if score.OverallScore != want {
		t.Errorf("OverallScore = %v, want %v (fixed weighting)", score.OverallScore, want)
	}

	for _, v := range []float64{score.EconomicScore, score.EnvironmentalScore, score.SocialScore, score.OverallScore} {
		if v < 0 || v > 100 {
			t.Errorf("score %v out of [0,100]", v)
		}
	}
	if score.CarbonFootprint < 0 {
		t.Errorf("CarbonFootprint = %v, want >= 0", score.CarbonFootprint)
	}
}

func TestCompareProducts(t *testing.T) {
	svc := NewScoringService(ScoringConfig{})

	t.Run("clearly better product wins", func(t *testing.T) {
		local := &domain.Product{Name: "local lentils", Category: "legumes", Price: 1000,
			OriginCountry: "Chile", Labels: []string{"organic", "fair-trade"}}
		imported := &domain.Product{Name: "imported beef", Category: "meat", Price: 8000,
			Quantity: 2, Unit: "kg", OriginCountry: "USA"}

		result := svc.CompareProducts(local, imported)
		if result.BetterProduct != 1 {
			t.Errorf("BetterProduct = %v, want 1", result.BetterProduct)
		}
		if result.ScoreDifference <= 0 {
			t.Errorf("ScoreDifference = %v, want > 0", result.ScoreDifference)
		}
	})

	t.Run("tie favors the second product", func(t *testing.T) {
		a := &domain.Product{Name: "brand A rice", Category: "grains", Price: 1000, OriginCountry: "Chile"}
		b := &domain.Product{Name: "brand B rice", Category: "grains", Price: 1000, OriginCountry: "Chile"}

		result := svc.CompareProducts(a, b)
		if result.BetterProduct != 2 {
			t.Errorf("BetterProduct = %v, want 2 (documented tie-break)", result.BetterProduct)
		}
		if result.ScoreDifference != 0 {
			t.Errorf("ScoreDifference = %v, want 0", result.ScoreDifference)
		}
		if result.Recommendation != "Both products are similar, consider price and preferences" {
			t.Errorf("unexpected recommendation: %q", result.Recommendation)
		}
	})
}

func TestTransportDistance(t *testing.T) {
	svc := NewScoringService(ScoringConfig{})

	tests := []struct {
		origin string
		want   float64
	}{
		{"chile", 50},
		{"producido en chile", 50}, // substring match
		{"argentina", 2000},
		{"mexico", 5000},
		{"france", 10000},
		{"japan", 12000},
		{"atlantis", 8000}, // unknown origin
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			if got := svc.transportDistance(tt.origin); got != tt.want {
				t.Errorf("transportDistance(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
