package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/liquiverde/backend/internal/domain"
)

// fakeListRepo is an in-memory ShoppingListRepository for service tests.
type fakeListRepo struct {
	lists map[string]domain.ShoppingList
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{lists: map[string]domain.ShoppingList{}}
}

func (r *fakeListRepo) Create(_ context.Context, list *domain.ShoppingList) (string, error) {
	id := fmt.Sprintf("list-%d", len(r.lists)+1)
	stored := *list
	stored.ID = id
	r.lists[id] = stored
	return id, nil
}

func (r *fakeListRepo) GetByID(_ context.Context, id string) (*domain.ShoppingList, error) {
	list, ok := r.lists[id]
	if !ok {
		return nil, domain.ErrListNotFound
	}
	return &list, nil
}

func (r *fakeListRepo) GetAll(_ context.Context, limit int) ([]domain.ShoppingList, error) {
	var out []domain.ShoppingList
	for _, list := range r.lists {
		out = append(out, list)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeListRepo) Update(_ context.Context, id string, list *domain.ShoppingList) error {
	if _, ok := r.lists[id]; !ok {
		return domain.ErrListNotFound
	}
	stored := *list
	stored.ID = id
	r.lists[id] = stored
	return nil
}

func newListService(products ...domain.Product) (*ListService, *fakeListRepo) {
	scorer := NewScoringService(ScoringConfig{})
	lists := newFakeListRepo()
	svc := NewListService(
		lists,
		newFakeProductRepo(products...),
		scorer,
		NewSubstitutionService(scorer, false),
	)
	return svc, lists
}

func mustCreateList(t *testing.T, svc *ListService, items ...domain.ShoppingListItem) string {
	t.Helper()
	list, err := svc.Create(context.Background(), &domain.ShoppingList{Name: "weekly", Items: items})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return list.ID
}

func TestListServiceCreateGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService()

	created, err := svc.Create(ctx, &domain.ShoppingList{Name: "weekly"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create did not assign an id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "weekly" {
		t.Errorf("Name = %q, want weekly", got.Name)
	}

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, domain.ErrListNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrListNotFound", err)
	}
}

func TestListServiceOptimize(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown list", func(t *testing.T) {
		svc, _ := newListService()
		_, err := svc.Optimize(ctx, "missing", &domain.OptimizationCriteria{MaxBudget: 1000})
		if !errors.Is(err, domain.ErrListNotFound) {
			t.Errorf("err = %v, want ErrListNotFound", err)
		}
	})

	t.Run("list with only unknown products", func(t *testing.T) {
		svc, _ := newListService()
		id := mustCreateList(t, svc, domain.ShoppingListItem{ProductID: "ghost", Quantity: 1})

		_, err := svc.Optimize(ctx, id, &domain.OptimizationCriteria{MaxBudget: 1000})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("err = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("ample budget keeps the full list", func(t *testing.T) {
		svc, _ := newListService(
			scoredProduct("milk", "Milk", "dairy", 1000, 60, 3.2),
			scoredProduct("bread", "Bread", "bakery", 500, 40, 0.8),
		)
		id := mustCreateList(t, svc,
			domain.ShoppingListItem{ProductID: "milk", Quantity: 1},
			domain.ShoppingListItem{ProductID: "bread", Quantity: 2},
		)

		result, err := svc.Optimize(ctx, id, &domain.OptimizationCriteria{MaxBudget: 10000})
		if err != nil {
			t.Fatalf("Optimize: %v", err)
		}

		if len(result.OptimizedItems) != 2 {
			t.Fatalf("len(OptimizedItems) = %v, want 2", len(result.OptimizedItems))
		}
		if result.TotalCost != 2000 {
			t.Errorf("TotalCost = %v, want 2000", result.TotalCost)
		}
		if result.EstimatedSavings != 0 {
			t.Errorf("EstimatedSavings = %v, want 0 (nothing dropped)", result.EstimatedSavings)
		}
		if result.TotalCarbonFootprint != 4.8 {
			t.Errorf("TotalCarbonFootprint = %v, want 4.8 (3.2 + 2x0.8)", result.TotalCarbonFootprint)
		}
		if result.Stats == nil || result.Stats.ItemsSelected != 2 {
			t.Errorf("Stats = %+v, want 2 items selected", result.Stats)
		}
	})

	t.Run("essential items survive a tight budget", func(t *testing.T) {
		svc, _ := newListService(
			scoredProduct("formula", "Baby Formula", "dairy", 3000, 55, 2),
			scoredProduct("cookies", "Cookies", "snacks", 500, 45, 1),
		)
		id := mustCreateList(t, svc,
			domain.ShoppingListItem{ProductID: "formula", Quantity: 1, IsEssential: true},
			domain.ShoppingListItem{ProductID: "cookies", Quantity: 1},
		)

		result, err := svc.Optimize(ctx, id, &domain.OptimizationCriteria{MaxBudget: 3200})
		if err != nil {
			t.Fatalf("Optimize: %v", err)
		}

		if len(result.OptimizedItems) != 1 || result.OptimizedItems[0].Product.ID != "formula" {
			t.Fatalf("OptimizedItems = %+v, want just the essential", result.OptimizedItems)
		}
		if result.Stats.EssentialsIncluded != 1 {
			t.Errorf("EssentialsIncluded = %v, want 1", result.Stats.EssentialsIncluded)
		}
		if result.EstimatedSavings != 500 {
			t.Errorf("EstimatedSavings = %v, want 500 (cookies dropped)", result.EstimatedSavings)
		}
	})

	t.Run("sustainability priority adds substitution suggestions", func(t *testing.T) {
		svc, _ := newListService(
			domain.Product{
				ID: "snack-imported", Name: "Imported Cookies",
				Category: "snacks", Price: 1000, OriginCountry: "China",
			},
			domain.Product{
				ID: "snack-local", Name: "Local Organic Cookies",
				Category: "snacks", Price: 800, OriginCountry: "Chile",
				Labels: []string{"organic"},
			},
		)
		id := mustCreateList(t, svc,
			domain.ShoppingListItem{ProductID: "snack-imported", Quantity: 1},
		)

		result, err := svc.Optimize(ctx, id, &domain.OptimizationCriteria{
			MaxBudget:                5000,
			PrioritizeSustainability: true,
		})
		if err != nil {
			t.Fatalf("Optimize: %v", err)
		}

		if len(result.SubstitutionsMade) != 1 {
			t.Fatalf("SubstitutionsMade = %+v, want 1 suggestion", result.SubstitutionsMade)
		}
		sub := result.SubstitutionsMade[0]
		if sub.Original != "Imported Cookies" || sub.Substitute != "Local Organic Cookies" {
			t.Errorf("suggestion = %+v", sub)
		}
		if sub.Savings != 200 {
			t.Errorf("Savings = %v, want 200", sub.Savings)
		}
	})

	t.Run("no substitutions without sustainability priority", func(t *testing.T) {
		svc, _ := newListService(
			domain.Product{
				ID: "snack-imported", Name: "Imported Cookies",
				Category: "snacks", Price: 1000, OriginCountry: "China",
			},
			domain.Product{
				ID: "snack-local", Name: "Local Organic Cookies",
				Category: "snacks", Price: 800, OriginCountry: "Chile",
				Labels: []string{"organic"},
			},
		)
		id := mustCreateList(t, svc,
			domain.ShoppingListItem{ProductID: "snack-imported", Quantity: 1},
		)

		result, err := svc.Optimize(ctx, id, &domain.OptimizationCriteria{MaxBudget: 5000})
		if err != nil {
			t.Fatalf("Optimize: %v", err)
		}
		if len(result.SubstitutionsMade) != 0 {
			t.Errorf("SubstitutionsMade = %+v, want none", result.SubstitutionsMade)
		}
	})
}

func TestQuickOptimize(t *testing.T) {
	ctx := context.Background()

	t.Run("all ids unknown", func(t *testing.T) {
		svc, _ := newListService()
		_, err := svc.QuickOptimize(ctx, []string{"ghost"}, 1000, false)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("err = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("ample budget takes one of each", func(t *testing.T) {
		svc, _ := newListService(
			scoredProduct("milk", "Milk", "dairy", 1000, 60, 3.2),
			scoredProduct("bread", "Bread", "bakery", 500, 40, 0.8),
		)

		result, err := svc.QuickOptimize(ctx, []string{"milk", "bread"}, 5000, false)
		if err != nil {
			t.Fatalf("QuickOptimize: %v", err)
		}

		if len(result.SelectedProducts) != 2 {
			t.Fatalf("SelectedProducts = %+v, want both", result.SelectedProducts)
		}
		for _, item := range result.SelectedProducts {
			if item.Quantity != 1 {
				t.Errorf("Quantity for %s = %v, want 1", item.Product.ID, item.Quantity)
			}
		}
		if result.Stats.TotalCost != 1500 {
			t.Errorf("TotalCost = %v, want 1500", result.Stats.TotalCost)
		}
	})

	t.Run("tight budget with sustainability priority keeps the greener product", func(t *testing.T) {
		svc, _ := newListService(
			scoredProduct("green", "Green", "vegetables", 1000, 80, 0.5),
			scoredProduct("gray", "Gray", "snacks", 2000, 50, 3),
		)

		result, err := svc.QuickOptimize(ctx, []string{"green", "gray"}, 2500, true)
		if err != nil {
			t.Fatalf("QuickOptimize: %v", err)
		}

		if len(result.SelectedProducts) != 1 || result.SelectedProducts[0].Product.ID != "green" {
			t.Fatalf("SelectedProducts = %+v, want just green", result.SelectedProducts)
		}
		if result.Stats.TotalCost != 1000 {
			t.Errorf("TotalCost = %v, want 1000", result.Stats.TotalCost)
		}
	})
}
