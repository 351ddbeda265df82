package usecase

import (
	"math"
	"testing"

	"github.com/liquiverde/backend/internal/domain"
)

// Santiago city center, the default route origin
const (
	testStartLat = -33.4489
	testStartLon = -70.6693
)

func santiagoStores() []domain.Store {
	return []domain.Store{
		{ID: "s1", Name: "Las Condes", Location: domain.Location{Latitude: -33.4172, Longitude: -70.6036}},
		{ID: "s2", Name: "Maipu", Location: domain.Location{Latitude: -33.5110, Longitude: -70.7580}},
		{ID: "s3", Name: "Providencia", Location: domain.Location{Latitude: -33.4314, Longitude: -70.6093}},
	}
}

func TestHaversine(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		if got := Haversine(testStartLat, testStartLon, testStartLat, testStartLon); got != 0 {
			t.Errorf("Haversine = %v, want 0", got)
		}
	})

	t.Run("is symmetric", func(t *testing.T) {
		a := Haversine(-33.45, -70.67, -33.42, -70.61)
		b := Haversine(-33.42, -70.61, -33.45, -70.67)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("asymmetric: %v vs %v", a, b)
		}
	})

	t.Run("santiago to valparaiso is roughly 100 km", func(t *testing.T) {
		got := Haversine(-33.4489, -70.6693, -33.0472, -71.6127)
		if got < 90 || got > 110 {
			t.Errorf("Haversine = %v, want ~100", got)
		}
	})
}

func TestOptimizeRoute(t *testing.T) {
	svc := NewRouteService(testStartLat, testStartLon, false)

	t.Run("no stores yields an empty route", func(t *testing.T) {
		route := svc.OptimizeRoute(nil)
		if len(route.Stores) != 0 || len(route.Order) != 0 {
			t.Errorf("route = %+v, want empty", route)
		}
		if route.TotalDistance != 0 || route.EstimatedTime != 0 {
			t.Errorf("distance/time = %v/%v, want 0/0", route.TotalDistance, route.EstimatedTime)
		}
	})

	t.Run("single store is a round trip", func(t *testing.T) {
		stores := santiagoStores()[:1]
		oneWay := Haversine(testStartLat, testStartLon,
			stores[0].Location.Latitude, stores[0].Location.Longitude)

		route := svc.OptimizeRoute(stores)
		if route.TotalDistance != round2(oneWay*2) {
			t.Errorf("TotalDistance = %v, want %v (there and back)", route.TotalDistance, round2(oneWay*2))
		}
		if len(route.Order) != 1 || route.Order[0] != 0 {
			t.Errorf("Order = %v, want [0]", route.Order)
		}
	})

	t.Run("multi-store route visits every store exactly once", func(t *testing.T) {
		stores := santiagoStores()
		route := svc.OptimizeRoute(stores)

		if len(route.Order) != len(stores) {
			t.Fatalf("Order length = %v, want %v", len(route.Order), len(stores))
		}
		seen := map[int]bool{}
		for _, idx := range route.Order {
			if idx < 0 || idx >= len(stores) || seen[idx] {
				t.Fatalf("Order = %v is not a permutation", route.Order)
			}
			seen[idx] = true
		}
	})

	t.Run("distance is bounded by pairwise legs", func(t *testing.T) {
		stores := santiagoStores()
		route := svc.OptimizeRoute(stores)

		longestLeg := 0.0
		for i := range stores {
			for j := i + 1; j < len(stores); j++ {
				d := Haversine(stores[i].Location.Latitude, stores[i].Location.Longitude,
					stores[j].Location.Latitude, stores[j].Location.Longitude)
				if d > longestLeg {
					longestLeg = d
				}
			}
		}

		if route.TotalDistance <= longestLeg {
			t.Errorf("TotalDistance = %v, want > longest leg %v", route.TotalDistance, longestLeg)
		}
	})

	t.Run("refined route is never worse than the natural order", func(t *testing.T) {
		stores := santiagoStores()
		route := svc.OptimizeRoute(stores)

		natural := svc.routeDistance([]int{0, 1, 2}, stores)
		if route.TotalDistance > round2(natural) {
			t.Errorf("TotalDistance = %v, want <= natural order %v", route.TotalDistance, round2(natural))
		}
	})

	t.Run("time estimate includes travel and shopping", func(t *testing.T) {
		stores := santiagoStores()
		route := svc.OptimizeRoute(stores)

		if route.ShoppingTime != 45 {
			t.Errorf("ShoppingTime = %v, want 45 (15 min per store)", route.ShoppingTime)
		}
		if route.EstimatedTime != math.Round(route.TravelTime+route.ShoppingTime) {
			t.Errorf("EstimatedTime = %v, want travel %v + shopping %v",
				route.EstimatedTime, route.TravelTime, route.ShoppingTime)
		}
	})
}

func TestTwoOpt(t *testing.T) {
	svc := NewRouteService(testStartLat, testStartLon, false)

	t.Run("untangles a crossing route", func(t *testing.T) {
		// Four stores on a rectangle; the crossed order 0,2,1,3 must not
		// survive refinement.
		stores := []domain.Store{
			{ID: "a", Location: domain.Location{Latitude: -33.40, Longitude: -70.70}},
			{ID: "b", Location: domain.Location{Latitude: -33.40, Longitude: -70.60}},
			{ID: "c", Location: domain.Location{Latitude: -33.50, Longitude: -70.60}},
			{ID: "d", Location: domain.Location{Latitude: -33.50, Longitude: -70.70}},
		}

		crossed := []int{0, 2, 1, 3}
		crossedDistance := svc.routeDistance(crossed, stores)

		refined, refinedDistance := svc.twoOpt(crossed, stores, crossedDistance)
		if refinedDistance >= crossedDistance {
			t.Errorf("refined distance = %v, want < %v", refinedDistance, crossedDistance)
		}
		if len(refined) != 4 {
			t.Errorf("refined order length = %v, want 4", len(refined))
		}
	})

	t.Run("keeps an already optimal order", func(t *testing.T) {
		stores := santiagoStores()
		route := svc.OptimizeRoute(stores)

		again, distance := svc.twoOpt(route.Order, stores, svc.routeDistance(route.Order, stores))
		if round2(distance) != route.TotalDistance {
			t.Errorf("re-refined distance = %v, want %v", round2(distance), route.TotalDistance)
		}
		if len(again) != len(route.Order) {
			t.Errorf("order length changed: %v -> %v", route.Order, again)
		}
	})
}

func TestCompareRoutes(t *testing.T) {
	svc := NewRouteService(testStartLat, testStartLon, false)
	stores := santiagoStores()

	t.Run("optimized route is evaluated first", func(t *testing.T) {
		result := svc.CompareRoutes(stores, [][]int{{2, 1, 0}})

		if len(result.Routes) != 2 {
			t.Fatalf("len(Routes) = %v, want 2", len(result.Routes))
		}
		if result.Routes[0].Name != "Optimized" {
			t.Errorf("Routes[0].Name = %q, want Optimized", result.Routes[0].Name)
		}
		if result.Routes[1].Name != "Alternative 1" {
			t.Errorf("Routes[1].Name = %q, want Alternative 1", result.Routes[1].Name)
		}
	})

	t.Run("best route has the minimum distance", func(t *testing.T) {
		result := svc.CompareRoutes(stores, [][]int{{0, 1, 2}, {2, 0, 1}})

		for _, option := range result.Routes {
			if option.Distance < result.BestRoute.Distance {
				t.Errorf("option %q distance %v beats best %v",
					option.Name, option.Distance, result.BestRoute.Distance)
			}
		}
		if result.SavingsVsWorst < 0 {
			t.Errorf("SavingsVsWorst = %v, want >= 0", result.SavingsVsWorst)
		}
	})
}
