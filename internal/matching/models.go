package matching

import (
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/pkg/geo"
)

// Ride is an offered shared ride as stored by the booking system.
type Ride struct {
	ID               uuid.UUID `json:"id"`
	DriverID         uuid.UUID `json:"driver_id"`
	DriverName       string    `json:"driver_name"`
	DriverRating     float64   `json:"driver_rating"`
	FromAddress      string    `json:"from_address"`
	ToAddress        string    `json:"to_address"`
	FromProvince     string    `json:"from_province,omitempty"`
	ToProvince       string    `json:"to_province,omitempty"`
	FromLat          *float64  `json:"from_lat,omitempty"`
	FromLng          *float64  `json:"from_lng,omitempty"`
	ToLat            *float64  `json:"to_lat,omitempty"`
	ToLng            *float64  `json:"to_lng,omitempty"`
	DepartureDate    time.Time `json:"departure_date"`
	PricePerSeat     float64   `json:"price_per_seat"`
	AvailableSeats   int       `json:"available_seats"`
	MaxPassengers    int       `json:"max_passengers"`
	VehicleType      string    `json:"vehicle_type,omitempty"`
	VehicleMake      string    `json:"vehicle_make,omitempty"`
	VehicleModel     string    `json:"vehicle_model,omitempty"`
	VehiclePlate     string    `json:"vehicle_plate,omitempty"`
	VehicleColor     string    `json:"vehicle_color,omitempty"`
	AllowNegotiation bool      `json:"allow_negotiation"`
	Status           string    `json:"status"`

	DistanceFromCityKm *float64 `json:"distance_from_city_km,omitempty"`
	DistanceToCityKm   *float64 `json:"distance_to_city_km,omitempty"`
}

// RideStatusAvailable is the only status eligible for search.
const RideStatusAvailable = "available"

// MatchResult is a ride annotated for one search request.
type MatchResult struct {
	Ride
	Score              int       `json:"compatibility_score"`
	MatchType          MatchType `json:"match_type"`
	Description        string    `json:"match_description"`
	IsExactMatch       bool      `json:"is_exact_match"`
	CompatibilityRatio float64   `json:"compatibility_ratio"`
	Strategy           string    `json:"search_strategy"`
}

func newMatchResult(ride Ride, result ScoreResult, strategy string) MatchResult {
	return MatchResult{
		Ride:               ride,
		Score:              result.Score,
		MatchType:          result.MatchType,
		Description:        result.Description,
		IsExactMatch:       result.IsExactMatch,
		CompatibilityRatio: result.Ratio,
		Strategy:           strategy,
	}
}

// SearchParams is a passenger's search request.
type SearchParams struct {
	From       string
	To         string
	FromCoords *geo.Point
	ToCoords   *geo.Point
	RadiusKm   float64
	MaxResults int
}

// Query is a search request after address and province resolution. It is
// what every search strategy receives.
type Query struct {
	From         string
	To           string
	FromProvince geography.Province
	ToProvince   geography.Province
	RadiusKm     float64
	MaxResults   int
}

// SearchResponse is the payload of a search
type SearchResponse struct {
	Rides []MatchResult `json:"rides"`
	Total int           `json:"total"`
}
