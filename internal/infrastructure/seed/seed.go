package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/liquiverde/backend/internal/domain"
)

// seedCategoryAvgPrice is the simplified category average used when scoring
// the sample catalog.
const seedCategoryAvgPrice = 2000

// Scorer computes a sustainability score for a product. Satisfied by
// usecase.ScoringService.
type Scorer interface {
	Score(product *domain.Product, categoryAvgPrice float64) *domain.SustainabilityScore
}

// Load scores and stores the sample catalog and the Santiago stores.
// Returns how many products and stores were created.
func Load(ctx context.Context, products domain.ProductRepository, stores domain.StoreRepository, scorer Scorer) (int, int, error) {
	log.Printf("[SEED] Seeding %d products and %d stores", len(sampleProducts), len(sampleStores))

	created := 0
	for i := range sampleProducts {
		product := sampleProducts[i]
		product.Sustainability = scorer.Score(&product, seedCategoryAvgPrice)

		if _, err := products.Create(ctx, &product); err != nil {
			return created, 0, fmt.Errorf("seeding product %q: %w", product.Name, err)
		}
		created++
	}

	storesCreated := 0
	for i := range sampleStores {
		store := sampleStores[i]
		if _, err := stores.Create(ctx, &store); err != nil {
			return created, storesCreated, fmt.Errorf("seeding store %q: %w", store.Name, err)
		}
		storesCreated++
	}

	log.Printf("[SEED] Seeding completed: %d products, %d stores", created, storesCreated)
	return created, storesCreated, nil
}

// sampleProducts is a Chilean grocery catalog with realistic prices in CLP.
var sampleProducts = []domain.Product{
	{
		Barcode: "7804123456789", Name: "Pechuga de Pollo Orgánica", Brand: "Agrosuper",
		Category: "poultry", Price: 4500, Unit: "kg", Quantity: 1.0, Store: "Jumbo",
		Description: "Pechuga de pollo orgánico, sin antibióticos",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 165, Proteins: 31, Fats: 3.6, Sodium: 0.074,
		},
		Labels: []string{"organic", "antibiotic-free"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456790", Name: "Carne Molida Premium", Brand: "PF",
		Category: "meat", Price: 6800, Unit: "kg", Quantity: 1.0, Store: "Jumbo",
		Description: "Carne molida de res, 90% magra",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 250, Proteins: 26, Fats: 17, Sodium: 0.075,
		},
		OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456791", Name: "Leche Descremada Orgánica", Brand: "Colun",
		Category: "dairy", Price: 1200, Unit: "l", Quantity: 1.0, Store: "Lider",
		Description: "Leche descremada orgánica certificada",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 35, Proteins: 3.4, Carbohydrates: 5, Fats: 0.1, Sodium: 0.044,
		},
		Labels: []string{"organic"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456792", Name: "Yogurt Natural", Brand: "Nestlé",
		Category: "dairy", Price: 890, Unit: "unit", Quantity: 1.0, Store: "Lider",
		Description: "Yogurt natural sin azúcar añadida",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 59, Proteins: 3.5, Carbohydrates: 4.7, Fats: 3.3, Sodium: 0.046,
		},
		OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456793", Name: "Manzanas Orgánicas", Brand: "Frutas del Huerto",
		Category: "fruits", Price: 2500, Unit: "kg", Quantity: 1.0, Store: "Santa Isabel",
		Description: "Manzanas rojas orgánicas de temporada",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 52, Proteins: 0.3, Carbohydrates: 14, Fats: 0.2, Fiber: 2.4, Sodium: 0.001,
		},
		Labels: []string{"organic", "local"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456794", Name: "Tomates Cherry", Brand: "Hortifrut",
		Category: "vegetables", Price: 1800, Unit: "kg", Quantity: 1.0, Store: "Santa Isabel",
		Description: "Tomates cherry frescos",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 18, Proteins: 0.9, Carbohydrates: 3.9, Fats: 0.2, Fiber: 1.2, Sodium: 0.005,
		},
		Labels: []string{"local"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456795", Name: "Espinaca Orgánica", Brand: "Verde Vivo",
		Category: "vegetables", Price: 2200, Unit: "kg", Quantity: 1.0, Store: "Jumbo",
		Description: "Espinaca fresca orgánica",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 23, Proteins: 2.9, Carbohydrates: 3.6, Fats: 0.4, Fiber: 2.2, Sodium: 0.079,
		},
		Labels: []string{"organic", "local"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456796", Name: "Arroz Integral Orgánico", Brand: "Tucapel",
		Category: "grains", Price: 1500, Unit: "kg", Quantity: 1.0, Store: "Lider",
		Description: "Arroz integral de grano largo",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 370, Proteins: 7.9, Carbohydrates: 77.2, Fats: 2.9, Fiber: 3.5, Sodium: 0.005,
		},
		Labels: []string{"organic"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456797", Name: "Lentejas Orgánicas", Brand: "Grano de Oro",
		Category: "legumes", Price: 1200, Unit: "kg", Quantity: 1.0, Store: "Santa Isabel",
		Description: "Lentejas orgánicas certificadas",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 352, Proteins: 25.8, Carbohydrates: 60.1, Fats: 1.1, Fiber: 10.7, Sodium: 0.006,
		},
		Labels: []string{"organic", "local"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456798", Name: "Quinoa Real", Brand: "Andes Organics",
		Category: "grains", Price: 3500, Unit: "kg", Quantity: 1.0, Store: "Jumbo",
		Description: "Quinoa real boliviana orgánica",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 368, Proteins: 14.1, Carbohydrates: 64.2, Fats: 6.1, Fiber: 7, Sodium: 0.005,
		},
		Labels: []string{"organic", "fair-trade"}, OriginCountry: "Bolivia",
	},
	{
		Barcode: "7804123456799", Name: "Jugo de Naranja Natural", Brand: "Watts",
		Category: "beverages", Price: 1800, Unit: "l", Quantity: 1.0, Store: "Lider",
		Description: "Jugo de naranja 100% natural",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 45, Proteins: 0.7, Carbohydrates: 10.4, Fats: 0.2, Fiber: 0.2, Sodium: 0.001,
		},
		Labels: []string{"no-added-sugar"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456800", Name: "Mix de Frutos Secos", Brand: "Nuts & Co",
		Category: "snacks", Price: 3200, Unit: "kg", Quantity: 0.5, Store: "Jumbo",
		Description: "Mix de almendras, nueces y pasas",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 607, Proteins: 20, Carbohydrates: 20, Fats: 52, Fiber: 7, Sodium: 0.01,
		},
		Labels: []string{"organic"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456801", Name: "Pan Integral Artesanal", Brand: "Panadería del Barrio",
		Category: "bread", Price: 2500, Unit: "unit", Quantity: 1.0, Store: "Local",
		Description: "Pan integral con semillas",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 247, Proteins: 9, Carbohydrates: 41, Fats: 4.2, Fiber: 6.5, Sodium: 0.5,
		},
		Labels: []string{"artesanal", "local"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456802", Name: "Aceite de Oliva Extra Virgen", Brand: "Olivos del Sur",
		Category: "oil", Price: 5500, Unit: "l", Quantity: 1.0, Store: "Jumbo",
		Description: "Aceite de oliva extra virgen primera presión",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 884, Fats: 100, Sodium: 0.002,
		},
		Labels: []string{"organic", "local"}, OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456803", Name: "Pasta Integral", Brand: "Carozzi",
		Category: "pasta", Price: 1400, Unit: "kg", Quantity: 0.5, Store: "Lider",
		Description: "Pasta de trigo integral",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 348, Proteins: 13, Carbohydrates: 70, Fats: 2.5, Fiber: 9, Sodium: 0.006,
		},
		OriginCountry: "Chile",
	},
	{
		Barcode: "7804123456804", Name: "Salmón Fresco", Brand: "AquaChile",
		Category: "fish", Price: 8900, Unit: "kg", Quantity: 1.0, Store: "Jumbo",
		Description: "Salmón del Atlántico fresco",
		NutritionalInfo: &domain.NutritionalInfo{
			EnergyKcal: 208, Proteins: 20, Fats: 13, Sodium: 0.059,
		},
		OriginCountry: "Chile",
	},
}

// sampleStores are Santiago supermarkets across price levels.
var sampleStores = []domain.Store{
	{
		Name: "Jumbo Kennedy", Chain: "Jumbo",
		Location: domain.Location{
			Latitude: -33.4172, Longitude: -70.6040,
			Address: "Av. Kennedy 9001, Las Condes, Santiago",
		},
		Phone: "+56 2 2630 5000", SustainabilityRating: 4.2, AveragePriceLevel: "high",
	},
	{
		Name: "Lider Express Providencia", Chain: "Lider",
		Location: domain.Location{
			Latitude: -33.4250, Longitude: -70.6100,
			Address: "Av. Providencia 2330, Providencia, Santiago",
		},
		Phone: "+56 2 2600 4000", SustainabilityRating: 3.8, AveragePriceLevel: "medium",
	},
	{
		Name: "Santa Isabel Ñuñoa", Chain: "Santa Isabel",
		Location: domain.Location{
			Latitude: -33.4569, Longitude: -70.5980,
			Address: "Av. Irarrázaval 3520, Ñuñoa, Santiago",
		},
		Phone: "+56 2 2630 6000", SustainabilityRating: 3.5, AveragePriceLevel: "medium",
	},
	{
		Name: "Jumbo Bilbao", Chain: "Jumbo",
		Location: domain.Location{
			Latitude: -33.4378, Longitude: -70.6200,
			Address: "Av. Bilbao 2750, Providencia, Santiago",
		},
		Phone: "+56 2 2630 5100", SustainabilityRating: 4.0, AveragePriceLevel: "high",
	},
	{
		Name: "Lider Maipú", Chain: "Lider",
		Location: domain.Location{
			Latitude: -33.5100, Longitude: -70.7600,
			Address: "Av. Américo Vespucio 1501, Maipú, Santiago",
		},
		Phone: "+56 2 2600 4100", SustainabilityRating: 3.6, AveragePriceLevel: "low",
	},
}
