package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liquiverde/backend/internal/domain"
)

// ProductStore is a thread-safe in-memory ProductRepository. Listing order
// is insertion order, so seeded catalogs come back in a stable sequence.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

// NewProductStore creates an empty in-memory product repository
func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[string]domain.Product),
	}
}

// Create stores a product, assigning an id when it carries none
func (s *ProductStore) Create(_ context.Context, product *domain.Product) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, exists := s.products[product.ID]; !exists {
		s.order = append(s.order, product.ID)
	}
	s.products[product.ID] = *product

	return product.ID, nil
}

// GetByID returns the product with the given id
func (s *ProductStore) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

// GetByBarcode returns the first product carrying the given barcode
func (s *ProductStore) GetByBarcode(_ context.Context, barcode string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if product := s.products[id]; product.Barcode == barcode {
			return &product, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// GetByCategory returns products in the given category, case-insensitively,
// up to the limit. A limit of 0 means no limit.
func (s *ProductStore) GetByCategory(_ context.Context, category string, limit int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := strings.ToLower(category)
	out := []domain.Product{}

	for _, id := range s.order {
		product := s.products[id]
		if strings.ToLower(product.Category) != want {
			continue
		}
		out = append(out, product)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Search filters products against every populated criterion. The query
// matches name, brand, and description, case-insensitively.
func (s *ProductStore) Search(_ context.Context, search domain.ProductSearch, limit int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(search.Query)
	category := strings.ToLower(search.Category)
	store := strings.ToLower(search.Store)

	out := []domain.Product{}
	for _, id := range s.order {
		product := s.products[id]

		if query != "" && !matchesQuery(&product, query) {
			continue
		}
		if category != "" && strings.ToLower(product.Category) != category {
			continue
		}
		if search.MaxPrice > 0 && product.Price > search.MaxPrice {
			continue
		}
		if search.MinSustainability > 0 {
			if product.Sustainability == nil || product.Sustainability.OverallScore < search.MinSustainability {
				continue
			}
		}
		if store != "" && strings.ToLower(product.Store) != store {
			continue
		}

		out = append(out, product)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// GetAll returns products in insertion order, up to the limit
func (s *ProductStore) GetAll(_ context.Context, limit int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Product{}
	for _, id := range s.order {
		out = append(out, s.products[id])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Update replaces the product with the given id, preserving its creation
// timestamp.
func (s *ProductStore) Update(_ context.Context, id string, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}

	product.ID = id
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	s.products[id] = *product

	return nil
}

func matchesQuery(product *domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(product.Name), query) ||
		strings.Contains(strings.ToLower(product.Brand), query) ||
		strings.Contains(strings.ToLower(product.Description), query)
}
