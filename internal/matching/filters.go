package matching

import (
	"strings"

	"github.com/google/uuid"
)

// Filters narrow a ranked result list. Zero values disable a filter.
type Filters struct {
	MinPrice         *float64
	MaxPrice         *float64
	Seats            int
	VehicleType      string
	DriverID         *uuid.UUID
	AllowNegotiation *bool
}

// Apply returns the results that pass every filter, preserving order.
func (f Filters) Apply(results []MatchResult) []MatchResult {
	vehicleType := strings.ToLower(strings.TrimSpace(f.VehicleType))

	out := make([]MatchResult, 0, len(results))
	for _, r := range results {
		if f.MinPrice != nil && r.PricePerSeat < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && r.PricePerSeat > *f.MaxPrice {
			continue
		}
		if f.Seats > 0 && r.AvailableSeats < f.Seats {
			continue
		}
		if vehicleType != "" && !strings.Contains(strings.ToLower(r.VehicleType), vehicleType) {
			continue
		}
		if f.DriverID != nil && r.DriverID != *f.DriverID {
			continue
		}
		if f.AllowNegotiation != nil && r.AllowNegotiation != *f.AllowNegotiation {
			continue
		}
		out = append(out, r)
	}
	return out
}
