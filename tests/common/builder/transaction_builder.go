//go:build unit || e2e

package builder

import (
	"time"

	domtransaction "github.com/fawwazmw/cashier-app/internal/domain/transaction"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/google/uuid"
)

type TransactionLineSpec struct {
	ProductID   int64
	ProductName string
	UnitPrice   float64
	Qty         int
}

type TransactionBuilder struct {
	ID            string
	UserID        uuid.UUID
	Total         float64
	Status        domtransaction.Status
	PaymentMethod domtransaction.PaymentMethod
	CustomerName  *string
	CustomerPhone *string
	Notes         *string
	Lines         []TransactionLineSpec
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewTransactionBuilder() *TransactionBuilder {
	now := time.Now()
	return &TransactionBuilder{
		ID:            domtransaction.NewID(now),
		UserID:        uuid.New(),
		Total:         3000,
		Status:        domtransaction.StatusPending,
		PaymentMethod: domtransaction.PaymentCash,
		Lines: []TransactionLineSpec{
			{ProductID: 1, ProductName: "Americano", UnitPrice: 1000, Qty: 3},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *TransactionBuilder) With(mutate func(*TransactionBuilder)) *TransactionBuilder {
	mutate(b)
	return b
}

func (b *TransactionBuilder) WithTotal(total float64) *TransactionBuilder {
	b.Total = total
	return b
}

func (b *TransactionBuilder) WithStatus(status domtransaction.Status) *TransactionBuilder {
	b.Status = status
	return b
}

func (b *TransactionBuilder) WithLines(lines ...TransactionLineSpec) *TransactionBuilder {
	b.Lines = lines
	return b
}

// Build methods
func (b *TransactionBuilder) BuildDomain() (*domtransaction.Transaction, error) {
	lines := make([]domtransaction.Line, 0, len(b.Lines))
	for _, spec := range b.Lines {
		line, err := domtransaction.NewLine(spec.ProductID, spec.ProductName, spec.UnitPrice, spec.Qty)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	customer := domtransaction.CustomerInfo{Name: b.CustomerName, Phone: b.CustomerPhone, Notes: b.Notes}
	return domtransaction.NewTransaction(b.ID, b.UserID, b.Total, b.PaymentMethod, customer, lines)
}

func (b *TransactionBuilder) BuildReconstructed() *domtransaction.Transaction {
	lines := make([]domtransaction.Line, 0, len(b.Lines))
	for _, spec := range b.Lines {
		subtotal := spec.UnitPrice * float64(spec.Qty)
		lines = append(lines, domtransaction.ReconstructLine(spec.ProductID, spec.ProductName, spec.UnitPrice, spec.Qty, subtotal))
	}
	customer := domtransaction.CustomerInfo{Name: b.CustomerName, Phone: b.CustomerPhone, Notes: b.Notes}
	return domtransaction.ReconstructTransaction(
		b.ID, b.UserID, b.Total, b.Status, b.PaymentMethod,
		customer, nil, lines, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *TransactionBuilder) BuildReadModel() *queries.TransactionView {
	lineViews := make([]queries.TransactionLineView, 0, len(b.Lines))
	for _, spec := range b.Lines {
		lineViews = append(lineViews, queries.TransactionLineView{
			ProductID:   spec.ProductID,
			ProductName: spec.ProductName,
			Price:       spec.UnitPrice,
			Qty:         spec.Qty,
			Subtotal:    spec.UnitPrice * float64(spec.Qty),
		})
	}
	return &queries.TransactionView{
		ID:            b.ID,
		UserID:        b.UserID,
		Total:         b.Total,
		Status:        b.Status.String(),
		PaymentMethod: b.PaymentMethod.String(),
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Notes:         b.Notes,
		Lines:         lineViews,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (b *TransactionBuilder) BuildCreateDTO() reqdto.CreateTransactionRequest {
	items := make([]reqdto.TransactionItemRequest, 0, len(b.Lines))
	for _, spec := range b.Lines {
		items = append(items, reqdto.TransactionItemRequest{ProductID: spec.ProductID, Qty: spec.Qty})
	}
	return reqdto.CreateTransactionRequest{
		Items:         items,
		Total:         b.Total,
		PaymentMethod: b.PaymentMethod.String(),
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Notes:         b.Notes,
	}
}
