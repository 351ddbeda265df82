package seed

import (
	"context"
	"testing"

	"github.com/liquiverde/backend/internal/infrastructure/memstore"
	"github.com/liquiverde/backend/internal/usecase"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	products := memstore.NewProductStore()
	stores := memstore.NewStoreStore()
	scorer := usecase.NewScoringService(usecase.ScoringConfig{})

	productCount, storeCount, err := Load(ctx, products, stores, scorer)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if productCount != len(sampleProducts) {
		t.Errorf("productCount = %v, want %v", productCount, len(sampleProducts))
	}
	if storeCount != len(sampleStores) {
		t.Errorf("storeCount = %v, want %v", storeCount, len(sampleStores))
	}

	t.Run("products are scored on the way in", func(t *testing.T) {
		all, err := products.GetAll(ctx, 0)
		if err != nil {
			t.Fatalf("GetAll: %v", err)
		}
		if len(all) != len(sampleProducts) {
			t.Fatalf("stored products = %v, want %v", len(all), len(sampleProducts))
		}
		for _, product := range all {
			if product.Sustainability == nil {
				t.Errorf("product %q has no sustainability score", product.Name)
				continue
			}
			if product.Sustainability.OverallScore <= 0 || product.Sustainability.OverallScore > 100 {
				t.Errorf("product %q overall score = %v, want within (0,100]",
					product.Name, product.Sustainability.OverallScore)
			}
		}
	})

	t.Run("catalog is searchable by barcode", func(t *testing.T) {
		product, err := products.GetByBarcode(ctx, "7804123456791")
		if err != nil {
			t.Fatalf("GetByBarcode: %v", err)
		}
		if product.Name != "Leche Descremada Orgánica" {
			t.Errorf("Name = %q, want Leche Descremada Orgánica", product.Name)
		}
	})

	t.Run("stores are within greater Santiago", func(t *testing.T) {
		nearby, err := stores.GetNearby(ctx, -33.4489, -70.6693, 30)
		if err != nil {
			t.Fatalf("GetNearby: %v", err)
		}
		if len(nearby) != len(sampleStores) {
			t.Errorf("nearby = %v, want all %v stores", len(nearby), len(sampleStores))
		}
	})
}
