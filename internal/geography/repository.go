package geography

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/richxcame/ridematch/pkg/database"
)

// ProvinceStore is the persistent province lookup table.
type ProvinceStore interface {
	// LookupProvince returns the province whose name contains normalized,
	// or Unknown when no row matches.
	LookupProvince(ctx context.Context, normalized string) (Province, error)
}

// Repository reads the province_ordering table
type Repository struct {
	db database.Querier
}

// NewRepository creates a new province repository
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// LookupProvince performs a contains match of the normalized address against province names
func (r *Repository) LookupProvince(ctx context.Context, normalized string) (Province, error) {
	query := `
		SELECT province
		FROM province_ordering
		WHERE province ILIKE '%' || $1::text || '%'
		ORDER BY (province = $1) DESC, corridor_order, province
		LIMIT 1
	`

	name, err := database.QueryOne(ctx, r.db, "provinces.lookup", query, []any{normalized}, func(row pgx.Row) (string, error) {
		var name string
		err := row.Scan(&name)
		return name, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Unknown, nil
		}
		return Unknown, fmt.Errorf("failed to look up province: %w", err)
	}

	p, ok := ParseProvince(name)
	if !ok {
		return Unknown, nil
	}
	return p, nil
}

// ProvinceOrdering is one row of the corridor table
type ProvinceOrdering struct {
	Province      Province `json:"province"`
	CorridorOrder int      `json:"corridor_order"`
	Region        string   `json:"region"`
}

// ListProvinceOrdering returns the corridor table ordered south to north
func (r *Repository) ListProvinceOrdering(ctx context.Context) ([]ProvinceOrdering, error) {
	query := `
		SELECT province, corridor_order, region
		FROM province_ordering
		ORDER BY corridor_order, province
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list provinces: %w", err)
	}
	defer rows.Close()

	out := make([]ProvinceOrdering, 0, len(knownProvinces))
	for rows.Next() {
		var row ProvinceOrdering
		var name string
		if err := rows.Scan(&name, &row.CorridorOrder, &row.Region); err != nil {
			return nil, fmt.Errorf("failed to scan province: %w", err)
		}
		row.Province = Province(Normalize(name))
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate provinces: %w", err)
	}

	return out, nil
}
