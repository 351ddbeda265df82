package usecase

import (
	"fmt"
	"log"
	"math"

	"github.com/liquiverde/backend/internal/domain"
)

const (
	averageSpeedKmh         = 30.0 // urban driving assumption for time estimates
	shoppingMinutesPerStore = 15.0

	maxTwoOptPasses = 100
)

// RouteService sequences store visits starting and ending at a fixed
// origin. Construction is greedy nearest-neighbor, refined with 2-opt
// segment reversals. Safe for concurrent use.
type RouteService struct {
	startLat           float64
	startLon           float64
	enableDebugLogging bool
}

// NewRouteService creates a route service anchored at the given origin
func NewRouteService(startLat, startLon float64, enableDebugLogging bool) *RouteService {
	return &RouteService{
		startLat:           startLat,
		startLon:           startLon,
		enableDebugLogging: enableDebugLogging,
	}
}

// Haversine returns the great-circle distance in km between two
// latitude/longitude pairs given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	from := domain.Location{Latitude: lat1, Longitude: lon1}
	return from.DistanceKm(domain.Location{Latitude: lat2, Longitude: lon2})
}

// OptimizeRoute computes a visit order over the given stores. With no
// stores the route is empty; a single store yields the round-trip distance.
// Two or more stores get nearest-neighbor construction followed by 2-opt
// refinement, both closing the loop back at the origin.
func (s *RouteService) OptimizeRoute(stores []domain.Store) *domain.Route {
	if len(stores) == 0 {
		return &domain.Route{Stores: []domain.Store{}, Order: []int{}}
	}

	if len(stores) == 1 {
		store := stores[0]
		distance := Haversine(s.startLat, s.startLon,
			store.Location.Latitude, store.Location.Longitude) * 2 // there and back

		return &domain.Route{
			Stores:        []domain.Store{store},
			TotalDistance: round2(distance),
			EstimatedTime: math.Round(distance / averageSpeedKmh * 60),
			Order:         []int{0},
		}
	}

	// Nearest-neighbor construction
	unvisited := make(map[int]bool, len(stores))
	for i := range stores {
		unvisited[i] = true
	}

	order := make([]int, 0, len(stores))
	currentLat, currentLon := s.startLat, s.startLon
	totalDistance := 0.0

	for len(unvisited) > 0 {
		nearestIdx := -1
		nearestDistance := math.Inf(1)

		for idx := range stores {
			if !unvisited[idx] {
				continue
			}
			d := Haversine(currentLat, currentLon,
				stores[idx].Location.Latitude, stores[idx].Location.Longitude)
			if d < nearestDistance {
				nearestDistance = d
				nearestIdx = idx
			}
		}

		order = append(order, nearestIdx)
		delete(unvisited, nearestIdx)
		totalDistance += nearestDistance
		currentLat = stores[nearestIdx].Location.Latitude
		currentLon = stores[nearestIdx].Location.Longitude
	}

	totalDistance += Haversine(currentLat, currentLon, s.startLat, s.startLon)

	order, totalDistance = s.twoOpt(order, stores, totalDistance)

	optimized := make([]domain.Store, len(order))
	for i, idx := range order {
		optimized[i] = stores[idx]
	}

	travelTime := totalDistance / averageSpeedKmh * 60
	shoppingTime := float64(len(stores)) * shoppingMinutesPerStore

	if s.enableDebugLogging {
		log.Printf("[ROUTE] Optimized route for %d stores: %.2f km", len(stores), totalDistance)
	}

	return &domain.Route{
		Stores:        optimized,
		TotalDistance: round2(totalDistance),
		EstimatedTime: math.Round(travelTime + shoppingTime),
		Order:         order,
		TravelTime:    math.Round(travelTime),
		ShoppingTime:  shoppingTime,
	}
}

// twoOpt refines a route by reversing sub-segments while that strictly
// shortens the full recomputed distance, up to maxTwoOptPasses passes.
// Distance is deliberately recomputed from scratch per candidate rather
// than by incremental deltas.
func (s *RouteService) twoOpt(route []int, stores []domain.Store, initialDistance float64) ([]int, float64) {
	bestRoute := append([]int(nil), route...)
	bestDistance := initialDistance

	improved := true
	passes := 0

	for improved && passes < maxTwoOptPasses {
		improved = false
		passes++

		for i := 1; i < len(route)-1; i++ {
			for j := i + 1; j < len(route); j++ {
				candidate := reverseSegment(route, i, j)
				candidateDistance := s.routeDistance(candidate, stores)

				if candidateDistance < bestDistance {
					bestRoute = candidate
					bestDistance = candidateDistance
					improved = true
				}
			}
		}

		route = bestRoute
	}

	if s.enableDebugLogging {
		log.Printf("[ROUTE] 2-opt completed in %d passes", passes)
	}

	return bestRoute, bestDistance
}

// reverseSegment returns a copy of route with route[i..j] reversed
func reverseSegment(route []int, i, j int) []int {
	out := append([]int(nil), route...)
	for lo, hi := i, j; lo < hi; lo, hi = lo+1, hi-1 {
		out[lo], out[hi] = out[hi], out[lo]
	}
	return out
}

// routeDistance computes the full loop distance origin -> stores in order
// -> origin.
func (s *RouteService) routeDistance(order []int, stores []domain.Store) float64 {
	total := 0.0
	currentLat, currentLon := s.startLat, s.startLon

	for _, idx := range order {
		lat := stores[idx].Location.Latitude
		lon := stores[idx].Location.Longitude
		total += Haversine(currentLat, currentLon, lat, lon)
		currentLat, currentLon = lat, lon
	}

	total += Haversine(currentLat, currentLon, s.startLat, s.startLon)
	return total
}

// CompareRoutes evaluates the optimized route against caller-supplied
// alternative visit orders and reports the shortest along with the distance
// saved versus the worst evaluated option.
func (s *RouteService) CompareRoutes(stores []domain.Store, alternativeOrders [][]int) *domain.RouteComparison {
	optimized := s.OptimizeRoute(stores)

	options := []domain.RouteOption{{
		Name:     "Optimized",
		Order:    optimized.Order,
		Distance: optimized.TotalDistance,
		Time:     optimized.EstimatedTime,
	}}

	for i, order := range alternativeOrders {
		distance := s.routeDistance(order, stores)
		time := distance/averageSpeedKmh*60 + float64(len(stores))*shoppingMinutesPerStore

		options = append(options, domain.RouteOption{
			Name:     fmt.Sprintf("Alternative %d", i+1),
			Order:    order,
			Distance: round2(distance),
			Time:     math.Round(time),
		})
	}

	best := options[0]
	worst := options[0].Distance
	for _, opt := range options[1:] {
		if opt.Distance < best.Distance {
			best = opt
		}
		if opt.Distance > worst {
			worst = opt.Distance
		}
	}

	return &domain.RouteComparison{
		Routes:         options,
		BestRoute:      best,
		SavingsVsWorst: round2(worst - best.Distance),
	}
}
