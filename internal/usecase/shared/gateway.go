package shared

import "context"

// SnapItem mirrors one transaction line in the gateway checkout payload.
type SnapItem struct {
	ID    string
	Name  string
	Price float64
	Qty   int
}

type SnapRequest struct {
	OrderID       string
	GrossAmount   float64
	CustomerName  *string
	CustomerPhone *string
	Items         []SnapItem
}

// SnapSession is the hosted checkout session returned by the gateway.
type SnapSession struct {
	Token       string
	RedirectURL string
}

// GatewayStatus is the raw settlement state reported by the gateway for one
// order. TransactionStatus and FraudStatus together determine the ledger
// status.
type GatewayStatus struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
	PaymentType       string
	GrossAmount       string
	TransactionTime   string
}

type PaymentGateway interface {
	CreateSnapSession(ctx context.Context, req SnapRequest) (*SnapSession, error)
	Status(ctx context.Context, orderID string) (*GatewayStatus, error)
	Cancel(ctx context.Context, orderID string) error
}
