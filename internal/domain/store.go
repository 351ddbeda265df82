package domain

import "math"

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Location is a WGS84 coordinate with an optional street address.
type Location struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	Address   string  `json:"address,omitempty"`
}

// DistanceKm returns the haversine great-circle distance to other, in km.
func (l Location) DistanceKm(other Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	deltaLat := (other.Latitude - l.Latitude) * math.Pi / 180
	deltaLon := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// StoreHours describes opening hours for one day of the week.
type StoreHours struct {
	Day       string `json:"day"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// Store is a physical retail location.
type Store struct {
	ID                   string       `json:"id,omitempty"`
	Name                 string       `json:"name" binding:"required"`
	Chain                string       `json:"chain,omitempty"`
	Location             Location     `json:"location"`
	Hours                []StoreHours `json:"hours,omitempty"`
	Phone                string       `json:"phone,omitempty"`
	SustainabilityRating float64      `json:"sustainability_rating,omitempty"` // 0-5
	AveragePriceLevel    string       `json:"average_price_level,omitempty"`
}

// Route is an optimized store visit sequence. Order holds indices into the
// input store slice; distances are km and times minutes.
type Route struct {
	Stores        []Store `json:"route"`
	TotalDistance float64 `json:"total_distance"`
	EstimatedTime float64 `json:"estimated_time"`
	Order         []int   `json:"order"`
	TravelTime    float64 `json:"travel_time"`
	ShoppingTime  float64 `json:"shopping_time"`
}

// RouteOption is one evaluated visit order in a route comparison.
type RouteOption struct {
	Name     string  `json:"name"`
	Order    []int   `json:"order"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
}

// RouteComparison reports the evaluated orders, the shortest one, and the
// distance saved versus the worst evaluated order.
type RouteComparison struct {
	Routes         []RouteOption `json:"routes"`
	BestRoute      RouteOption   `json:"best_route"`
	SavingsVsWorst float64       `json:"savings_vs_worst"`
}
