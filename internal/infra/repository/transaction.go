package repository

import (
	"context"
	"time"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/infra/db"

	"github.com/google/uuid"
)

type TransactionRepository struct {
	db db.DBTX
}

func NewTransactionRepository(db db.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateWithLines inserts the transaction header and all its line snapshots.
// Callers run this inside a unit of work, so a failing line insert rolls the
// header back too.
func (r *TransactionRepository) CreateWithLines(ctx context.Context, t *transaction.Transaction) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO transactions (id, user_id, total, status, payment_method, customer_name, customer_phone, notes, payment_token)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID(), t.UserID(), t.Total(), string(t.Status()), string(t.PaymentMethod()),
		t.Customer().Name, t.Customer().Phone, t.Customer().Notes, t.PaymentToken())
	if err != nil {
		return infra.WrapRepoErr("failed to create transaction", err)
	}

	for _, l := range t.Lines() {
		_, err := r.db.Exec(ctx,
			`INSERT INTO transaction_items (transaction_id, product_id, product_name, price, qty, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			t.ID(), l.ProductID(), l.ProductName(), l.UnitPrice(), l.Quantity(), l.Subtotal())
		if err != nil {
			return infra.WrapRepoErr("failed to create transaction item", err)
		}
	}

	return nil
}

func (r *TransactionRepository) FindByIDForUpdate(ctx context.Context, id string) (*transaction.Transaction, error) {
	var (
		txID          string
		userID        uuid.UUID
		total         float64
		status        string
		paymentMethod string
		customerName  *string
		customerPhone *string
		notes         *string
		paymentToken  *string
		createdAt     time.Time
		updatedAt     time.Time
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, total, status, payment_method, customer_name, customer_phone, notes, payment_token, created_at, updated_at
		 FROM transactions WHERE id = $1 FOR UPDATE`, id).
		Scan(&txID, &userID, &total, &status, &paymentMethod, &customerName, &customerPhone, &notes, &paymentToken, &createdAt, &updatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock transaction", err)
	}

	lines, err := r.findLines(ctx, txID)
	if err != nil {
		return nil, err
	}

	return transaction.ReconstructTransaction(
		txID, userID, total,
		transaction.Status(status), transaction.PaymentMethod(paymentMethod),
		transaction.CustomerInfo{Name: customerName, Phone: customerPhone, Notes: notes},
		paymentToken, lines, createdAt, updatedAt,
	), nil
}

func (r *TransactionRepository) findLines(ctx context.Context, id string) ([]transaction.Line, error) {
	rows, err := r.db.Query(ctx,
		`SELECT product_id, product_name, price, qty, subtotal
		 FROM transaction_items WHERE transaction_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load transaction items", err)
	}
	defer rows.Close()

	var lines []transaction.Line
	for rows.Next() {
		var (
			productID   int64
			productName string
			price       float64
			qty         int
			subtotal    float64
		)
		if err := rows.Scan(&productID, &productName, &price, &qty, &subtotal); err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction item", err)
		}
		lines = append(lines, transaction.ReconstructLine(productID, productName, price, qty, subtotal))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transaction items", err)
	}

	return lines, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, status transaction.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update transaction status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *TransactionRepository) SetPaymentToken(ctx context.Context, id, token string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET payment_token = $2, updated_at = NOW() WHERE id = $1`,
		id, token)
	if err != nil {
		return infra.WrapRepoErr("failed to set payment token", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)
	}
	return nil
}
