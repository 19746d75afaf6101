package request

import (
	"github.com/fawwazmw/cashier-app/internal/domain/business"
)

type UpsertBusinessRequest struct {
	Name        string  `json:"name" binding:"required"`
	Owner       string  `json:"owner" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

func (r UpsertBusinessRequest) ToDomain() (*business.Business, error) {
	return business.NewBusiness(r.Name, r.Owner, r.Address, r.Phone,
		r.Email, r.Description, r.Category, r.LogoURL)
}
