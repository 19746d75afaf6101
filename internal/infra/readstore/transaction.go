package readstore

import (
	"context"
	"strconv"
	"time"

	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/infra/db"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/google/uuid"
)

type TransactionReadStore struct {
	db db.DBTX
}

func NewTransactionReadStore(db db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{db: db}
}

const transactionViewColumns = `t.id, t.user_id, u.name, t.total, t.status, t.payment_method,
		t.customer_name, t.customer_phone, t.notes, t.payment_token, t.created_at, t.updated_at`

func (r *TransactionReadStore) FindByID(ctx context.Context, id string) (*queries.TransactionView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+transactionViewColumns+`
		 FROM transactions t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1`, id)

	v, err := scanTransactionView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction by ID", err)
	}

	lines, err := r.linesFor(ctx, []string{v.ID})
	if err != nil {
		return nil, err
	}
	v.Lines = lines[v.ID]

	return v, nil
}

func (r *TransactionReadStore) List(ctx context.Context, filter queries.TransactionFilter) ([]*queries.TransactionView, int64, error) {
	where := ` WHERE TRUE`
	args := []any{}
	n := 0

	if filter.UserID != nil {
		n++
		where += ` AND t.user_id = $` + strconv.Itoa(n)
		args = append(args, *filter.UserID)
	}
	if filter.Status != nil {
		n++
		where += ` AND t.status = $` + strconv.Itoa(n)
		args = append(args, *filter.Status)
	}
	if filter.PaymentMethod != nil {
		n++
		where += ` AND t.payment_method = $` + strconv.Itoa(n)
		args = append(args, *filter.PaymentMethod)
	}
	if filter.Search != nil {
		n++
		p := `$` + strconv.Itoa(n)
		where += ` AND (t.id ILIKE ` + p + ` OR t.customer_name ILIKE ` + p + `)`
		args = append(args, "%"+*filter.Search+"%")
	}
	if filter.From != nil {
		n++
		where += ` AND t.created_at >= $` + strconv.Itoa(n)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		n++
		where += ` AND t.created_at < $` + strconv.Itoa(n)
		args = append(args, *filter.To)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions t`+where, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count transactions", err)
	}

	query := `SELECT ` + transactionViewColumns + `
		 FROM transactions t
		 JOIN users u ON u.id = t.user_id` + where +
		` ORDER BY t.created_at DESC, t.id DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list transactions", err)
	}
	defer rows.Close()

	var result []*queries.TransactionView
	var ids []string
	for rows.Next() {
		v, err := scanTransactionView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan transaction", err)
		}
		result = append(result, v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate transactions", err)
	}

	if len(ids) > 0 {
		lines, err := r.linesFor(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, v := range result {
			v.Lines = lines[v.ID]
		}
	}

	return result, total, nil
}

func (r *TransactionReadStore) linesFor(ctx context.Context, ids []string) (map[string][]queries.TransactionLineView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT transaction_id, product_id, product_name, price, qty, subtotal
		 FROM transaction_items WHERE transaction_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load transaction items", err)
	}
	defer rows.Close()

	result := make(map[string][]queries.TransactionLineView, len(ids))
	for rows.Next() {
		var txID string
		var l queries.TransactionLineView
		if err := rows.Scan(&txID, &l.ProductID, &l.ProductName, &l.Price, &l.Qty, &l.Subtotal); err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction item", err)
		}
		result[txID] = append(result[txID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transaction items", err)
	}

	return result, nil
}

func scanTransactionView(row interface{ Scan(dest ...any) error }) (*queries.TransactionView, error) {
	var v queries.TransactionView
	if err := row.Scan(&v.ID, &v.UserID, &v.UserName, &v.Total, &v.Status, &v.PaymentMethod,
		&v.CustomerName, &v.CustomerPhone, &v.Notes, &v.PaymentToken, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// OwnerOf returns the cashier that recorded a transaction without loading the
// whole aggregate. Used for ownership checks on the read path.
func (r *TransactionReadStore) OwnerOf(ctx context.Context, id string) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT user_id FROM transactions WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if infra.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find transaction owner", err)
	}
	return owner, nil
}

// SalesSummary aggregates paid transactions for one local calendar day.
// tz is the IANA zone name used to bucket hourly sales.
func (r *TransactionReadStore) SalesSummary(ctx context.Context, dayStart, dayEnd time.Time, tz string) (*queries.SalesSummaryView, error) {
	summary := &queries.SalesSummaryView{
		Date: dayStart.Format("2006-01-02"),
	}

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(AVG(total), 0)
		 FROM transactions
		 WHERE status = 'paid' AND created_at >= $1 AND created_at < $2`,
		dayStart, dayEnd).
		Scan(&summary.TotalTransactions, &summary.TotalSales, &summary.AverageTransaction)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate sales", err)
	}

	methodRows, err := r.db.Query(ctx,
		`SELECT payment_method, COUNT(*), COALESCE(SUM(total), 0)
		 FROM transactions
		 WHERE status = 'paid' AND created_at >= $1 AND created_at < $2
		 GROUP BY payment_method ORDER BY payment_method`,
		dayStart, dayEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate payment methods", err)
	}
	defer methodRows.Close()

	for methodRows.Next() {
		var m queries.PaymentMethodSummary
		if err := methodRows.Scan(&m.PaymentMethod, &m.Count, &m.Sales); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment method summary", err)
		}
		summary.PaymentMethods = append(summary.PaymentMethods, m)
	}
	if err := methodRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment method summaries", err)
	}

	productRows, err := r.db.Query(ctx,
		`SELECT i.product_name, SUM(i.qty), SUM(i.subtotal), COUNT(DISTINCT i.transaction_id)
		 FROM transaction_items i
		 JOIN transactions t ON t.id = i.transaction_id
		 WHERE t.status = 'paid' AND t.created_at >= $1 AND t.created_at < $2
		 GROUP BY i.product_name ORDER BY SUM(i.qty) DESC LIMIT 10`,
		dayStart, dayEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate top products", err)
	}
	defer productRows.Close()

	for productRows.Next() {
		var p queries.TopProduct
		if err := productRows.Scan(&p.ProductName, &p.TotalQty, &p.TotalRevenue, &p.TransactionCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan top product", err)
		}
		summary.TopProducts = append(summary.TopProducts, p)
	}
	if err := productRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate top products", err)
	}

	hourRows, err := r.db.Query(ctx,
		`SELECT EXTRACT(HOUR FROM created_at AT TIME ZONE $3)::int, COUNT(*), COALESCE(SUM(total), 0)
		 FROM transactions
		 WHERE status = 'paid' AND created_at >= $1 AND created_at < $2
		 GROUP BY 1 ORDER BY 1`,
		dayStart, dayEnd, tz)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate hourly sales", err)
	}
	defer hourRows.Close()

	for hourRows.Next() {
		var h queries.HourlySales
		if err := hourRows.Scan(&h.Hour, &h.Transactions, &h.Sales); err != nil {
			return nil, infra.WrapRepoErr("failed to scan hourly sales", err)
		}
		summary.HourlySales = append(summary.HourlySales, h)
	}
	if err := hourRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate hourly sales", err)
	}

	return summary, nil
}
