package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehaus/storefront/pkg/database"
	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/catalog"
	"github.com/stylehaus/storefront/internal/domain"
)

func setupSource(t *testing.T) (*Source, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewSource(mock), mock
}

func productColumnNames() []string {
	return []string{
		"id", "name", "description", "selling_price", "discounted_price",
		"category", "sub_category", "sizes", "color", "best_seller_rank",
		"main_image", "images", "created_at", "updated_at",
	}
}

func sampleRow(rows *pgxmock.Rows) *pgxmock.Rows {
	discounted := int64(199)
	created := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)
	return rows.AddRow(
		"prod-a", "Classic Pinstripe Suit", "Two-piece pinstripe suit.",
		int64(500), &discounted,
		"Suits", "Two Piece", []byte(`["XS","S","M","L","XL"]`), "Navy", 45,
		"/images/products/classic-pinstripe-suit.jpg", []byte(`["/images/products/classic-pinstripe-suit.jpg"]`),
		created, created,
	)
}

func TestSourceFetchNoFilters(t *testing.T) {
	src, mock := setupSource(t)

	mock.ExpectQuery("ORDER BY best_seller_rank DESC, id ASC").
		WillReturnRows(sampleRow(pgxmock.NewRows(productColumnNames())))

	products, err := src.Fetch(context.Background(), catalog.Query{})
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "prod-a", p.ID)
	assert.Equal(t, int64(199), p.EffectivePrice())
	assert.Equal(t, []string{"XS", "S", "M", "L", "XL"}, p.Sizes)
	assert.Equal(t, "2025-01-12T09:00:00Z", p.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceFetchWithFiltersAndSort(t *testing.T) {
	src, mock := setupSource(t)

	minPrice := int64(100)
	maxPrice := int64(300)

	mock.ExpectQuery(`category = ANY\(\$1\) AND COALESCE\(discounted_price, selling_price\) >= \$2 AND COALESCE\(discounted_price, selling_price\) <= \$3`).
		WithArgs([]string{"Suits"}, minPrice, maxPrice).
		WillReturnRows(sampleRow(pgxmock.NewRows(productColumnNames())))

	products, err := src.Fetch(context.Background(), catalog.Query{
		Filters: domain.ProductFilters{
			Categories: []string{"Suits"},
			MinPrice:   &minPrice,
			MaxPrice:   &maxPrice,
		},
		Sort: &domain.ProductSort{Field: domain.SortByPrice, Direction: domain.SortAsc},
	})
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceFetchEmptyResult(t *testing.T) {
	src, mock := setupSource(t)

	mock.ExpectQuery("FROM products").
		WillReturnRows(pgxmock.NewRows(productColumnNames()))

	products, err := src.Fetch(context.Background(), catalog.Query{})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestSourceFetchQueryError(t *testing.T) {
	src, mock := setupSource(t)

	mock.ExpectQuery("FROM products").
		WillReturnError(errors.New("connection refused"))

	_, err := src.Fetch(context.Background(), catalog.Query{})
	assert.Error(t, err)
}

func TestSourceFetchByID(t *testing.T) {
	src, mock := setupSource(t)

	mock.ExpectQuery(`WHERE id = \$1`).
		WithArgs("prod-a").
		WillReturnRows(sampleRow(pgxmock.NewRows(productColumnNames())))

	p, err := src.FetchByID(context.Background(), "prod-a")
	require.NoError(t, err)
	assert.Equal(t, "Classic Pinstripe Suit", p.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceFetchByIDNotFound(t *testing.T) {
	src, mock := setupSource(t)

	mock.ExpectQuery(`WHERE id = \$1`).
		WithArgs("prod-zzz").
		WillReturnError(pgx.ErrNoRows)

	_, err := src.FetchByID(context.Background(), "prod-zzz")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
