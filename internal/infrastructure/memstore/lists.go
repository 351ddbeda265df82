package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liquiverde/backend/internal/domain"
)

// ListStore is a thread-safe in-memory ShoppingListRepository.
type ListStore struct {
	mu    sync.RWMutex
	lists map[string]domain.ShoppingList
	order []string
}

// NewListStore creates an empty in-memory shopping list repository
func NewListStore() *ListStore {
	return &ListStore{
		lists: make(map[string]domain.ShoppingList),
	}
}

// Create stores a shopping list, assigning an id when it carries none
func (s *ListStore) Create(_ context.Context, list *domain.ShoppingList) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list.ID == "" {
		list.ID = uuid.NewString()
	}

	now := time.Now()
	list.CreatedAt = now
	list.UpdatedAt = now

	if _, exists := s.lists[list.ID]; !exists {
		s.order = append(s.order, list.ID)
	}
	s.lists[list.ID] = *list

	return list.ID, nil
}

// GetByID returns the shopping list with the given id
func (s *ListStore) GetByID(_ context.Context, id string) (*domain.ShoppingList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.lists[id]
	if !ok {
		return nil, domain.ErrListNotFound
	}
	return &list, nil
}

// GetAll returns shopping lists in insertion order, up to the limit
func (s *ListStore) GetAll(_ context.Context, limit int) ([]domain.ShoppingList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.ShoppingList{}
	for _, id := range s.order {
		out = append(out, s.lists[id])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Update replaces the list with the given id, preserving its creation
// timestamp.
func (s *ListStore) Update(_ context.Context, id string, list *domain.ShoppingList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.lists[id]
	if !ok {
		return domain.ErrListNotFound
	}

	list.ID = id
	list.CreatedAt = existing.CreatedAt
	list.UpdatedAt = time.Now()
	s.lists[id] = *list

	return nil
}
