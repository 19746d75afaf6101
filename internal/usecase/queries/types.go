package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ProductView struct {
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

type TransactionLineView struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
	Subtotal    float64 `json:"subtotal"`
}

type TransactionView struct {
	ID            string                `json:"id"`
	UserID        uuid.UUID             `json:"user_id"`
	UserName      *string               `json:"user_name,omitempty"`
	Total         float64               `json:"total"`
	Status        string                `json:"status"`
	PaymentMethod string                `json:"payment_method"`
	CustomerName  *string               `json:"customer_name,omitempty"`
	CustomerPhone *string               `json:"customer_phone,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	PaymentToken  *string               `json:"payment_token,omitempty"`
	Lines         []TransactionLineView `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Email    *string   `json:"email,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type BusinessView struct {
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

// Page carries limit/offset pagination metadata alongside list results.
type Page struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

func NewPage(total int64, limit, offset int) Page {
	return Page{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	}
}

// Sales summary read models

type PaymentMethodSummary struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int64   `json:"count"`
	Sales         float64 `json:"sales"`
}

type TopProduct struct {
	ProductName      string  `json:"product_name"`
	TotalQty         int64   `json:"total_qty"`
	TotalRevenue     float64 `json:"total_revenue"`
	TransactionCount int64   `json:"transaction_count"`
}

type HourlySales struct {
	Hour         int     `json:"hour"`
	Transactions int64   `json:"transactions"`
	Sales        float64 `json:"sales"`
}

type SalesSummaryView struct {
	Date               string                 `json:"date"`
	TotalTransactions  int64                  `json:"total_transactions"`
	TotalSales         float64                `json:"total_sales"`
	AverageTransaction float64                `json:"average_transaction"`
	PaymentMethods     []PaymentMethodSummary `json:"payment_methods"`
	TopProducts        []TopProduct           `json:"top_products"`
	HourlySales        []HourlySales          `json:"hourly_sales"`
}
