package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	Create(ctx context.Context, product *Product) (string, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	GetByCategory(ctx context.Context, category string, limit int) ([]Product, error)
	Search(ctx context.Context, search ProductSearch, limit int) ([]Product, error)
	GetAll(ctx context.Context, limit int) ([]Product, error)
	Update(ctx context.Context, id string, product *Product) error
}

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	Create(ctx context.Context, store *Store) (string, error)
	GetByID(ctx context.Context, id string) (*Store, error)
	GetAll(ctx context.Context) ([]Store, error)
	GetNearby(ctx context.Context, lat, lon, radiusKm float64) ([]Store, error)
}

// ShoppingListRepository defines the interface for shopping list persistence
type ShoppingListRepository interface {
	Create(ctx context.Context, list *ShoppingList) (string, error)
	GetByID(ctx context.Context, id string) (*ShoppingList, error)
	GetAll(ctx context.Context, limit int) ([]ShoppingList, error)
	Update(ctx context.Context, id string, list *ShoppingList) error
}

// ProductSource defines the interface for external product lookups
// (OpenFoodFacts in production)
type ProductSource interface {
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	Search(ctx context.Context, query, country, category string, page, pageSize int) ([]Product, error)
}

// Geocoder defines the interface for address <-> coordinate translation
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
