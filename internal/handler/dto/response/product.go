package response

import (
	"time"

	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Products   []*ProductResponse `json:"products"`
	Pagination queries.Page       `json:"pagination"`
}

type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

type DeleteProductResponse struct {
	Deactivated bool   `json:"deactivated"`
	Message     string `json:"message"`
}

func FromProductView(view *queries.ProductView) *ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromProductViews(views []*queries.ProductView) []*ProductResponse {
	result := make([]*ProductResponse, len(views))
	for i, v := range views {
		result[i] = FromProductView(v)
	}
	return result
}
