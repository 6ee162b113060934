package matching

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/pkg/database"
)

// SmartRideRow is one row of the get_rides_smart_final ranking function.
type SmartRideRow struct {
	Ride
	DirectionScore *int
	MatchType      string
}

// ScoredRideRow is one row of the province query with its inline score.
type ScoredRideRow struct {
	Ride
	Compatibility int
}

// RideRepository is the read side of the ride store used by the search tiers.
type RideRepository interface {
	SearchSmart(ctx context.Context, from, to string, radiusKm float64, limit int) ([]SmartRideRow, error)
	SearchByProvince(ctx context.Context, fromProvince, toProvince geography.Province, limit int) ([]ScoredRideRow, error)
	ListAvailableRides(ctx context.Context, limit int) ([]Ride, error)
}

// Repository handles ride search queries. Reads retry transient postgres
// failures within the caller's deadline.
type Repository struct {
	db database.Querier
}

// NewRepository creates a new ride search repository
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

const rideColumns = `
	id, driver_id, COALESCE(driver_name, ''), COALESCE(driver_rating, 0)::float8,
	from_address, to_address, COALESCE(from_province, ''), COALESCE(to_province, ''),
	from_lat, from_lng, to_lat, to_lng,
	departure_date, price_per_seat::float8, available_seats, max_passengers,
	COALESCE(vehicle_type, ''), COALESCE(vehicle_make, ''), COALESCE(vehicle_model, ''),
	COALESCE(vehicle_plate, ''), COALESCE(vehicle_color, ''),
	allow_negotiation, status`

func scanRide(rows pgx.Rows, ride *Ride, extra ...any) error {
	dest := []any{
		&ride.ID, &ride.DriverID, &ride.DriverName, &ride.DriverRating,
		&ride.FromAddress, &ride.ToAddress, &ride.FromProvince, &ride.ToProvince,
		&ride.FromLat, &ride.FromLng, &ride.ToLat, &ride.ToLng,
		&ride.DepartureDate, &ride.PricePerSeat, &ride.AvailableSeats, &ride.MaxPassengers,
		&ride.VehicleType, &ride.VehicleMake, &ride.VehicleModel,
		&ride.VehiclePlate, &ride.VehicleColor,
		&ride.AllowNegotiation, &ride.Status,
	}
	return rows.Scan(append(dest, extra...)...)
}

// SearchSmart calls the server-side ranking function
func (r *Repository) SearchSmart(ctx context.Context, from, to string, radiusKm float64, limit int) ([]SmartRideRow, error) {
	query := `
		SELECT
			ride_id, driver_id, COALESCE(driver_name, ''), COALESCE(driver_rating, 0)::float8,
			COALESCE(from_city, ''), COALESCE(to_city, ''), COALESCE(from_province, ''), COALESCE(to_province, ''),
			from_lat, from_lng, to_lat, to_lng,
			departuredate, priceperseat::float8, availableseats, COALESCE(max_passengers, 0),
			COALESCE(vehicle_type, ''), COALESCE(vehicle_make, ''), COALESCE(vehicle_model, ''),
			COALESCE(vehicle_plate, ''), COALESCE(vehicle_color, ''),
			COALESCE(allow_negotiation, false), 'available',
			distance_from_city_km::float8, distance_to_city_km::float8,
			direction_score, COALESCE(match_type, '')
		FROM get_rides_smart_final($1, $2, $3, $4)
	`

	out, err := database.QueryRows(ctx, r.db, "rides.search_smart", query,
		[]any{from, to, radiusKm, limit}, scanSmartRows)
	if err != nil {
		return nil, fmt.Errorf("failed to call get_rides_smart_final: %w", err)
	}
	return out, nil
}

func scanSmartRows(rows pgx.Rows) ([]SmartRideRow, error) {
	out := make([]SmartRideRow, 0)
	for rows.Next() {
		var row SmartRideRow
		if err := scanRide(rows, &row.Ride,
			&row.DistanceFromCityKm, &row.DistanceToCityKm,
			&row.DirectionScore, &row.MatchType,
		); err != nil {
			return nil, fmt.Errorf("scan smart ride: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SearchByProvince matches rides whose endpoint provinces equal the requested ones
func (r *Repository) SearchByProvince(ctx context.Context, fromProvince, toProvince geography.Province, limit int) ([]ScoredRideRow, error) {
	query := `
		SELECT ` + rideColumns + `,
			CASE
				WHEN lower(from_province) = $1 AND lower(to_province) = $2 THEN 100
				WHEN lower(from_province) = $1 THEN 80
				WHEN lower(to_province) = $2 THEN 75
				ELSE 50
			END AS compatibility
		FROM rides
		WHERE status = 'available'
			AND available_seats >= 1
			AND (
				lower(from_province) = $1 OR lower(to_province) = $2
				OR lower(from_province) = $2 OR lower(to_province) = $1
			)
		ORDER BY compatibility DESC, departure_date ASC
		LIMIT $3
	`

	out, err := database.QueryRows(ctx, r.db, "rides.search_by_province", query,
		[]any{provinceArg(fromProvince), provinceArg(toProvince), limit}, scanScoredRows)
	if err != nil {
		return nil, fmt.Errorf("failed to search rides by province: %w", err)
	}
	return out, nil
}

func scanScoredRows(rows pgx.Rows) ([]ScoredRideRow, error) {
	out := make([]ScoredRideRow, 0)
	for rows.Next() {
		var row ScoredRideRow
		if err := scanRide(rows, &row.Ride, &row.Compatibility); err != nil {
			return nil, fmt.Errorf("scan ride: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListAvailableRides returns available rides departing in the future, soonest first
func (r *Repository) ListAvailableRides(ctx context.Context, limit int) ([]Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE status = 'available' AND departure_date > NOW()
		ORDER BY departure_date ASC
		LIMIT $1
	`

	out, err := database.QueryRows(ctx, r.db, "rides.list_available", query, []any{limit}, scanRides)
	if err != nil {
		return nil, fmt.Errorf("failed to list available rides: %w", err)
	}
	return out, nil
}

func scanRides(rows pgx.Rows) ([]Ride, error) {
	out := make([]Ride, 0)
	for rows.Next() {
		var ride Ride
		if err := scanRide(rows, &ride); err != nil {
			return nil, fmt.Errorf("scan ride: %w", err)
		}
		out = append(out, ride)
	}
	return out, rows.Err()
}

// provinceArg binds unknown provinces as NULL so they never compare equal.
func provinceArg(p geography.Province) any {
	if !p.IsKnown() {
		return nil
	}
	return string(p)
}
