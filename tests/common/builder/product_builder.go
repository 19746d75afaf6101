//go:build unit || e2e

package builder

import (
	"time"

	domproduct "github.com/fawwazmw/cashier-app/internal/domain/product"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
)

type ProductBuilder struct {
	ID          int64
	Name        string
	Price       float64
	Stock       int
	Category    string
	Description *string
	ImageURL    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProductBuilder() *ProductBuilder {
	now := time.Now()
	return &ProductBuilder{
		ID:        1,
		Name:      "Americano",
		Price:     1000,
		Stock:     5,
		Category:  "coffee",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.Name = name
	return b
}

func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.Price = price
	return b
}

func (b *ProductBuilder) WithStock(stock int) *ProductBuilder {
	b.Stock = stock
	return b
}

// Build methods
func (b *ProductBuilder) BuildDomain() (*domproduct.Product, error) {
	return domproduct.NewProduct(b.Name, b.Price, b.Stock, b.Category, b.Description, b.ImageURL)
}

func (b *ProductBuilder) BuildReconstructed() *domproduct.Product {
	return domproduct.ReconstructProduct(
		b.ID, b.Name, b.Price, b.Stock, b.Category,
		b.Description, b.ImageURL, b.IsActive, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ProductBuilder) BuildReadModel() *queries.ProductView {
	return &queries.ProductView{
		ID:          b.ID,
		Name:        b.Name,
		Price:       b.Price,
		Stock:       b.Stock,
		Category:    b.Category,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *ProductBuilder) BuildCreateDTO() reqdto.CreateProductRequest {
	return reqdto.CreateProductRequest{
		Name:        b.Name,
		Price:       b.Price,
		Stock:       b.Stock,
		Category:    b.Category,
		Description: b.Description,
		ImageURL:    b.ImageURL,
	}
}
