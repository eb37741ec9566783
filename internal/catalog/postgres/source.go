// Package postgres implements the remote catalog source on PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/catalog"
	"github.com/stylehaus/storefront/internal/domain"
)

// DBTX is the query surface of pgxpool.Pool used by the source. pgxmock
// satisfies it in tests.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Source reads products from the products table. It pushes category and
// price constraints plus single-field ordering into SQL; size and color
// matching stays with the caller.
type Source struct {
	db DBTX
}

// NewSource creates a new PostgreSQL-backed catalog source.
func NewSource(db DBTX) *Source {
	return &Source{db: db}
}

// Name identifies the source in logs and metrics.
func (s *Source) Name() string { return "postgres" }

const productColumns = `id, name, description, selling_price, discounted_price,
	   category, sub_category, sizes, color, best_seller_rank,
	   main_image, images, created_at, updated_at`

// Fetch returns products matching the query's category and price constraints,
// ordered by the requested sort field.
func (s *Source) Fetch(ctx context.Context, q catalog.Query) ([]domain.Product, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if len(q.Filters.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", argIndex))
		args = append(args, q.Filters.Categories)
		argIndex++
	}

	if q.Filters.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("COALESCE(discounted_price, selling_price) >= $%d", argIndex))
		args = append(args, *q.Filters.MinPrice)
		argIndex++
	}

	if q.Filters.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("COALESCE(discounted_price, selling_price) <= $%d", argIndex))
		args = append(args, *q.Filters.MaxPrice)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY %s`,
		productColumns, whereClause, orderClause(q.Sort),
	)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// FetchByID returns a single product by id.
func (s *Source) FetchByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1`, productColumns)

	p, err := scanProduct(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, err
	}
	return p, nil
}

// orderClause maps a sort request to a SQL ORDER BY expression. The id
// tie-break keeps the order deterministic across fetches.
func orderClause(sort *domain.ProductSort) string {
	field := "best_seller_rank"
	dir := "DESC"

	if sort != nil {
		switch sort.Field {
		case domain.SortByPrice:
			field = "COALESCE(discounted_price, selling_price)"
		case domain.SortByPopularity:
			field = "best_seller_rank"
		case domain.SortByCreated:
			field = "created_at"
		case domain.SortByName:
			field = "name"
		}
		if sort.Direction == domain.SortAsc {
			dir = "ASC"
		}
	}

	return field + " " + dir + ", id ASC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p          domain.Product
		sizesJSON  []byte
		imagesJSON []byte
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.SellingPrice,
		&p.DiscountedPrice,
		&p.Category,
		&p.SubCategory,
		&sizesJSON,
		&p.Color,
		&p.BestSellerRank,
		&p.MainImage,
		&imagesJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan product row: %w", err)
	}

	if sizesJSON != nil {
		if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
			return nil, fmt.Errorf("unmarshal sizes: %w", err)
		}
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}

	if imagesJSON != nil {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images: %w", err)
		}
	}

	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	p.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)

	return &p, nil
}
