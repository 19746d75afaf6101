package readstore

import (
	"context"
	"strconv"

	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/infra/db"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(db db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: db}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id int64) (*queries.ProductView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, price, stock, category, description, image_url, is_active, created_at, updated_at
		 FROM products WHERE id = $1 AND is_active = TRUE`, id)

	v, err := scanProductView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return v, nil
}

func (r *ProductReadStore) List(ctx context.Context, filter queries.ProductFilter) ([]*queries.ProductView, int64, error) {
	where := ` WHERE is_active = TRUE`
	args := []any{}
	n := 0

	if filter.Category != nil {
		n++
		where += ` AND category = $` + strconv.Itoa(n)
		args = append(args, *filter.Category)
	}
	if filter.Search != nil {
		n++
		where += ` AND name ILIKE '%' || $` + strconv.Itoa(n) + ` || '%'`
		args = append(args, *filter.Search)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count products", err)
	}

	query := `SELECT id, name, price, stock, category, description, image_url, is_active, created_at, updated_at
		 FROM products` + where + ` ORDER BY name LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var result []*queries.ProductView
	for rows.Next() {
		v, err := scanProductView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan product", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate products", err)
	}

	return result, total, nil
}

func (r *ProductReadStore) ListLowStock(ctx context.Context, threshold int) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price, stock, category, description, image_url, is_active, created_at, updated_at
		 FROM products WHERE is_active = TRUE AND stock <= $1 ORDER BY stock, name`, threshold)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list low stock products", err)
	}
	defer rows.Close()

	var result []*queries.ProductView
	for rows.Next() {
		v, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}

	return result, nil
}

func (r *ProductReadStore) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM products WHERE is_active = TRUE ORDER BY category`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, infra.WrapRepoErr("failed to scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate categories", err)
	}

	return categories, nil
}

func scanProductView(row interface{ Scan(dest ...any) error }) (*queries.ProductView, error) {
	var v queries.ProductView
	if err := row.Scan(&v.ID, &v.Name, &v.Price, &v.Stock, &v.Category,
		&v.Description, &v.ImageURL, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
