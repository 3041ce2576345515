package repository

import (
	"context"
	"errors"
	"fmt"

	"drone-delivery-api/internal/models"

	"github.com/jackc/pgx/v5"
)

// ErrPlaceNotFound is returned when no gazetteer place lies near the coordinates.
var ErrPlaceNotFound = errors.New("repository: no place found near coordinates")

// DBPool matches the methods of *pgxpool.Pool the repository uses, so tests can
// swap in pgxmock.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository reads the PostGIS gazetteer.
type Repository struct {
	db DBPool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db DBPool) *Repository {
	return &Repository{db: db}
}

const searchPlacesSQL = `
		SELECT
			id,
			name,
			street,
			city,
			region,
			postcode,
			ST_Y(geom::geometry) AS latitude,
			ST_X(geom::geometry) AS longitude
		FROM places
		WHERE search_vector @@ plainto_tsquery('simple', $1)
		ORDER BY ts_rank(search_vector, plainto_tsquery('simple', $1)) DESC, id
		LIMIT 10
	`

// SearchPlacesByText performs a full-text search on the places table, best match first.
func (r *Repository) SearchPlacesByText(ctx context.Context, query string) ([]models.Place, error) {
	rows, err := r.db.Query(ctx, searchPlacesSQL, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		var p models.Place
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Street,
			&p.City,
			&p.Region,
			&p.Postcode,
			&p.Latitude,
			&p.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return places, nil
}

const nearestPlaceSQL = `
		SELECT
			id,
			name,
			street,
			city,
			region,
			postcode,
			ST_Y(geom::geometry) AS latitude,
			ST_X(geom::geometry) AS longitude
		FROM places
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, 10000) -- within 10km
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`

// FindNearestPlace performs a spatial query for the place closest to the coordinates.
func (r *Repository) FindNearestPlace(ctx context.Context, lat, lng float64) (*models.Place, error) {
	var p models.Place
	err := r.db.QueryRow(ctx, nearestPlaceSQL, lat, lng).Scan(
		&p.ID,
		&p.Name,
		&p.Street,
		&p.City,
		&p.Region,
		&p.Postcode,
		&p.Latitude,
		&p.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}

	return &p, nil
}
