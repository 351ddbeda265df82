package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/liquiverde/backend/internal/domain"
)

// StoreStore is a thread-safe in-memory StoreRepository.
type StoreStore struct {
	mu     sync.RWMutex
	stores map[string]domain.Store
	order  []string
}

// NewStoreStore creates an empty in-memory store repository
func NewStoreStore() *StoreStore {
	return &StoreStore{
		stores: make(map[string]domain.Store),
	}
}

// Create stores a retail location, assigning an id when it carries none
func (s *StoreStore) Create(_ context.Context, store *domain.Store) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store.ID == "" {
		store.ID = uuid.NewString()
	}

	if _, exists := s.stores[store.ID]; !exists {
		s.order = append(s.order, store.ID)
	}
	s.stores[store.ID] = *store

	return store.ID, nil
}

// GetByID returns the store with the given id
func (s *StoreStore) GetByID(_ context.Context, id string) (*domain.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	store, ok := s.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	return &store, nil
}

// GetAll returns stores in insertion order
func (s *StoreStore) GetAll(_ context.Context) ([]domain.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Store, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.stores[id])
	}
	return out, nil
}

// GetNearby returns stores within radiusKm of the given point, closest
// first.
func (s *StoreStore) GetNearby(_ context.Context, lat, lon, radiusKm float64) ([]domain.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	origin := domain.Location{Latitude: lat, Longitude: lon}

	type nearbyStore struct {
		store    domain.Store
		distance float64
	}

	var nearby []nearbyStore
	for _, id := range s.order {
		store := s.stores[id]
		distance := origin.DistanceKm(store.Location)
		if distance <= radiusKm {
			nearby = append(nearby, nearbyStore{store, distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].distance < nearby[j].distance
	})

	out := make([]domain.Store, len(nearby))
	for i, n := range nearby {
		out[i] = n.store
	}
	return out, nil
}
