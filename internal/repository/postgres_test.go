package repository

import (
	"context"
	"regexp"
	"testing"

	"drone-delivery-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeColumns = []string{"id", "name", "street", "city", "region", "postcode", "latitude", "longitude"}

func TestRepository_SearchPlacesByText(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	repo := NewRepository(pool)
	ctx := context.Background()

	t.Run("ranked rows", func(t *testing.T) {
		rows := pgxmock.NewRows(placeColumns).
			AddRow(int64(1), "", "1600 Amphitheatre Pkwy", "Mountain View", "CA", "94043", 37.422, -122.084)

		pool.ExpectQuery(regexp.QuoteMeta("FROM places")).
			WithArgs("1600 Amphitheatre Parkway").
			WillReturnRows(rows)

		places, err := repo.SearchPlacesByText(ctx, "1600 Amphitheatre Parkway")
		require.NoError(t, err)
		assert.Equal(t, []models.Place{{
			ID:        1,
			Street:    "1600 Amphitheatre Pkwy",
			City:      "Mountain View",
			Region:    "CA",
			Postcode:  "94043",
			Latitude:  37.422,
			Longitude: -122.084,
		}}, places)
	})

	t.Run("no rows", func(t *testing.T) {
		pool.ExpectQuery(regexp.QuoteMeta("FROM places")).
			WithArgs("nowhere").
			WillReturnRows(pgxmock.NewRows(placeColumns))

		places, err := repo.SearchPlacesByText(ctx, "nowhere")
		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("query error", func(t *testing.T) {
		pool.ExpectQuery(regexp.QuoteMeta("FROM places")).
			WithArgs("boom").
			WillReturnError(assert.AnError)

		_, err := repo.SearchPlacesByText(ctx, "boom")
		assert.ErrorIs(t, err, assert.AnError)
	})

	require.NoError(t, pool.ExpectationsWereMet())
}

func TestRepository_FindNearestPlace(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	repo := NewRepository(pool)
	ctx := context.Background()

	t.Run("nearest row", func(t *testing.T) {
		rows := pgxmock.NewRows(placeColumns).
			AddRow(int64(7), "Market Square", "1 Market St", "San Francisco", "CA", "94105", 37.7941, -122.3951)

		pool.ExpectQuery(regexp.QuoteMeta("ST_DWithin")).
			WithArgs(37.7941, -122.3951).
			WillReturnRows(rows)

		place, err := repo.FindNearestPlace(ctx, 37.7941, -122.3951)
		require.NoError(t, err)
		assert.Equal(t, int64(7), place.ID)
		assert.Equal(t, "Market Square, 1 Market St, San Francisco, CA 94105", place.FormattedAddress())
	})

	t.Run("nothing nearby", func(t *testing.T) {
		pool.ExpectQuery(regexp.QuoteMeta("ST_DWithin")).
			WithArgs(0.0, 0.0).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindNearestPlace(ctx, 0, 0)
		assert.ErrorIs(t, err, ErrPlaceNotFound)
	})

	t.Run("query error", func(t *testing.T) {
		pool.ExpectQuery(regexp.QuoteMeta("ST_DWithin")).
			WithArgs(1.0, 1.0).
			WillReturnError(assert.AnError)

		_, err := repo.FindNearestPlace(ctx, 1, 1)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, ErrPlaceNotFound)
	})

	require.NoError(t, pool.ExpectationsWereMet())
}
