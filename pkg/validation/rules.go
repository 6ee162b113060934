package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// SearchRequest holds the query parameters of a ride search
type SearchRequest struct {
	From             string   `form:"from" validate:"max=200"`
	To               string   `form:"to" validate:"max=200"`
	FromLat          *float64 `form:"fromLat" validate:"omitempty,latitude"`
	FromLng          *float64 `form:"fromLng" validate:"omitempty,longitude"`
	ToLat            *float64 `form:"toLat" validate:"omitempty,latitude"`
	ToLng            *float64 `form:"toLng" validate:"omitempty,longitude"`
	RadiusKm         float64  `form:"radiusKm" validate:"gte=0,lte=1000"`
	MaxResults       int      `form:"maxResults" validate:"gte=0,lte=200"`
	MinPrice         *float64 `form:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice         *float64 `form:"maxPrice" validate:"omitempty,gte=0"`
	Seats            int      `form:"seats" validate:"gte=0,lte=50"`
	VehicleType      string   `form:"vehicleType" validate:"max=50"`
	DriverID         string   `form:"driverId" validate:"omitempty,uuid"`
	AllowNegotiation *bool    `form:"allowNegotiation"`
	Smart            *bool    `form:"smart"`
}

// HasFromCoords reports whether both origin coordinates were supplied
func (r SearchRequest) HasFromCoords() bool {
	return r.FromLat != nil && r.FromLng != nil
}

// HasToCoords reports whether both destination coordinates were supplied
func (r SearchRequest) HasToCoords() bool {
	return r.ToLat != nil && r.ToLng != nil
}

// CompatibilityRequest asks for the score of one driver route against one passenger route
type CompatibilityRequest struct {
	DriverFrom    string `json:"driver_from" validate:"required,max=200"`
	DriverTo      string `json:"driver_to" validate:"required,max=200"`
	PassengerFrom string `json:"passenger_from" validate:"required,max=200"`
	PassengerTo   string `json:"passenger_to" validate:"required,max=200"`
}

// ProvinceDetectRequest holds the address to classify
type ProvinceDetectRequest struct {
	Address string `form:"address" validate:"required,max=200"`
}

// validateSearchRequest rejects searches with neither an origin nor a destination
// and inverted price ranges.
func validateSearchRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(SearchRequest)

	hasText := strings.TrimSpace(req.From) != "" || strings.TrimSpace(req.To) != ""
	if !hasText && !req.HasFromCoords() && !req.HasToCoords() {
		sl.ReportError(req.From, "from", "From", "endpoints", "")
	}

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		sl.ReportError(req.MinPrice, "minPrice", "MinPrice", "price_range", "")
	}
}
