package response

import (
	"time"

	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BusinessResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Owner       string    `json:"owner"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromBusinessView(view *queries.BusinessView) *BusinessResponse {
	var resp BusinessResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
