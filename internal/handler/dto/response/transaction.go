package response

import (
	"time"

	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TransactionItemResponse struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
	Subtotal    float64 `json:"subtotal"`
}

type TransactionResponse struct {
	ID            string                     `json:"id"`
	UserID        uuid.UUID                  `json:"user_id"`
	UserName      *string                    `json:"user_name,omitempty"`
	Total         float64                    `json:"total"`
	Status        string                     `json:"status"`
	PaymentMethod string                     `json:"payment_method"`
	CustomerName  *string                    `json:"customer_name,omitempty"`
	CustomerPhone *string                    `json:"customer_phone,omitempty"`
	Notes         *string                    `json:"notes,omitempty"`
	PaymentToken  *string                    `json:"payment_token,omitempty"`
	Items         []*TransactionItemResponse `json:"items"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

type TransactionListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Pagination   queries.Page           `json:"pagination"`
}

func FromTransactionView(view *queries.TransactionView) *TransactionResponse {
	var resp TransactionResponse
	_ = copier.Copy(&resp, view)

	resp.Items = make([]*TransactionItemResponse, len(view.Lines))
	for i, l := range view.Lines {
		item := &TransactionItemResponse{}
		_ = copier.Copy(item, &l)
		resp.Items[i] = item
	}
	return &resp
}

func FromTransactionViews(views []*queries.TransactionView) []*TransactionResponse {
	result := make([]*TransactionResponse, len(views))
	for i, v := range views {
		result[i] = FromTransactionView(v)
	}
	return result
}
