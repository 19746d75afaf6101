package request

import (
	"strings"

	"github.com/fawwazmw/cashier-app/internal/domain/product"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"
)

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func (r CreateProductRequest) ToDomain() (*product.Product, error) {
	return product.NewProduct(
		strings.TrimSpace(r.Name),
		r.Price,
		r.Stock,
		strings.TrimSpace(r.Category),
		r.Description,
		r.ImageURL,
	)
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Stock       *int     `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

func (r UpdateProductRequest) ToPatch() shared.ProductPatch {
	return shared.ProductPatch{
		Name:        r.Name,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

// UpdateStockRequest sets an absolute stock level or applies a relative
// adjustment; exactly one of the two fields must be present.
type UpdateStockRequest struct {
	Stock      *int `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Adjustment *int `json:"adjustment,omitempty"`
}
