package request

import (
	"strings"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
)

type TransactionItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Qty       int   `json:"qty" binding:"required,gt=0"`
}

type CreateTransactionRequest struct {
	Items         []TransactionItemRequest `json:"items" binding:"required,min=1,dive"`
	Total         float64                  `json:"total" binding:"required,gte=0"`
	PaymentMethod string                   `json:"payment_method" binding:"required,oneof=cash gateway"`
	CustomerName  *string                  `json:"customer_name,omitempty"`
	CustomerPhone *string                  `json:"customer_phone,omitempty"`
	Notes         *string                  `json:"notes,omitempty"`
}

func (r CreateTransactionRequest) Customer() transaction.CustomerInfo {
	return transaction.CustomerInfo{
		Name:  trimPtr(r.CustomerName),
		Phone: trimPtr(r.CustomerPhone),
		Notes: trimPtr(r.Notes),
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid cancelled"`
}
