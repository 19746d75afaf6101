package repository

import (
	"context"
	"time"

	"github.com/fawwazmw/cashier-app/internal/domain/product"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/infra/db"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(db db.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, price, stock, category, description, image_url, is_active, created_at, updated_at`

func (r *ProductRepository) scanProduct(row interface{ Scan(dest ...any) error }) (*product.Product, error) {
	var (
		id          int64
		name        string
		price       float64
		stock       int
		category    string
		description *string
		imageURL    *string
		isActive    bool
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &name, &price, &stock, &category, &description, &imageURL, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return product.ReconstructProduct(id, name, price, stock, category, description, imageURL, isActive, createdAt, updatedAt), nil
}

func (r *ProductRepository) FindActiveByID(ctx context.Context, id int64) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND is_active = TRUE`, id)
	p, err := r.scanProduct(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return p, nil
}

// FindActiveByIDForUpdate locks the product row for the duration of the
// surrounding transaction so concurrent stock reservations serialize.
func (r *ProductRepository) FindActiveByIDForUpdate(ctx context.Context, id int64) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND is_active = TRUE FOR UPDATE`, id)
	p, err := r.scanProduct(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock product", err)
	}
	return p, nil
}

func (r *ProductRepository) FindActiveByName(ctx context.Context, name string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE LOWER(name) = LOWER($1) AND is_active = TRUE`, name)
	p, err := r.scanProduct(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by name", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, price, stock, category, description, image_url, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.Name(), p.Price(), p.Stock(), p.Category(), p.Description(), p.ImageURL(), p.IsActive(),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create product", err)
	}
	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, patch shared.ProductPatch) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET
			name        = COALESCE($2, name),
			price       = COALESCE($3, price),
			stock       = COALESCE($4, stock),
			category    = COALESCE($5, category),
			description = COALESCE($6, description),
			image_url   = COALESCE($7, image_url),
			updated_at  = NOW()
		 WHERE id = $1 AND is_active = TRUE`,
		id, patch.Name, patch.Price, patch.Stock, patch.Category, patch.Description, patch.ImageURL)
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

// AdjustStock applies a relative stock delta. The stock >= 0 check constraint
// rejects adjustments that would drive stock negative. Inactive products are
// still adjustable so cancelled sales can restore their stock.
func (r *ProductRepository) AdjustStock(ctx context.Context, id int64, delta int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id = $1`,
		id, delta)
	if err != nil {
		return infra.WrapRepoErr("failed to adjust stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) SetStock(ctx context.Context, id int64, stock int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`,
		id, stock)
	if err != nil {
		return infra.WrapRepoErr("failed to set stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) IsReferencedByLines(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transaction_items WHERE product_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check product references", err)
	}
	return exists, nil
}
