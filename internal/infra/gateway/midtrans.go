package gateway

import (
	"context"
	"math"

	"github.com/fawwazmw/cashier-app/internal/pkg/config"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"

	"github.com/go-resty/resty/v2"
)

var (
	ErrGatewayRequest  = errs.New("payment gateway request failed")
	ErrGatewayRejected = errs.New("payment gateway rejected request")
)

// MidtransGateway talks to a Midtrans-compatible payment API. The Snap host
// issues hosted checkout sessions, the core API host serves status and
// cancellation.
type MidtransGateway struct {
	snap *resty.Client
	core *resty.Client
}

func NewMidtransGateway(cfg config.GatewayConfig) *MidtransGateway {
	snap := resty.New().
		SetBaseURL(cfg.SnapURL).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.ServerKey, "").
		SetHeader("Accept", "application/json")

	core := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.ServerKey, "").
		SetHeader("Accept", "application/json")

	return &MidtransGateway{snap: snap, core: core}
}

type snapTransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type snapItemDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type snapCustomerDetails struct {
	FirstName string `json:"first_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type snapCreateRequest struct {
	TransactionDetails snapTransactionDetails `json:"transaction_details"`
	ItemDetails        []snapItemDetail       `json:"item_details"`
	CustomerDetails    *snapCustomerDetails   `json:"customer_details,omitempty"`
}

type snapCreateResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

func (g *MidtransGateway) CreateSnapSession(ctx context.Context, req shared.SnapRequest) (*shared.SnapSession, error) {
	items := make([]snapItemDetail, len(req.Items))
	for i, it := range req.Items {
		items[i] = snapItemDetail{
			ID:       it.ID,
			Name:     it.Name,
			Price:    roundAmount(it.Price),
			Quantity: it.Qty,
		}
	}

	body := snapCreateRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     req.OrderID,
			GrossAmount: roundAmount(req.GrossAmount),
		},
		ItemDetails: items,
	}
	if req.CustomerName != nil || req.CustomerPhone != nil {
		body.CustomerDetails = &snapCustomerDetails{}
		if req.CustomerName != nil {
			body.CustomerDetails.FirstName = *req.CustomerName
		}
		if req.CustomerPhone != nil {
			body.CustomerDetails.Phone = *req.CustomerPhone
		}
	}

	var result snapCreateResponse
	resp, err := g.snap.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/transactions")
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayRequest)
	}
	if resp.IsError() {
		return nil, errs.Wrap(ErrGatewayRejected, "snap session creation returned "+resp.Status())
	}

	return &shared.SnapSession{Token: result.Token, RedirectURL: result.RedirectURL}, nil
}

type statusResponse struct {
	StatusCode        string `json:"status_code"`
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	GrossAmount       string `json:"gross_amount"`
	TransactionTime   string `json:"transaction_time"`
}

func (g *MidtransGateway) Status(ctx context.Context, orderID string) (*shared.GatewayStatus, error) {
	var result statusResponse
	resp, err := g.core.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/v2/" + orderID + "/status")
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayRequest)
	}
	if resp.IsError() {
		return nil, errs.Wrap(ErrGatewayRejected, "status lookup returned "+resp.Status())
	}

	return &shared.GatewayStatus{
		OrderID:           result.OrderID,
		TransactionStatus: result.TransactionStatus,
		FraudStatus:       result.FraudStatus,
		PaymentType:       result.PaymentType,
		GrossAmount:       result.GrossAmount,
		TransactionTime:   result.TransactionTime,
	}, nil
}

func (g *MidtransGateway) Cancel(ctx context.Context, orderID string) error {
	resp, err := g.core.R().
		SetContext(ctx).
		Post("/v2/" + orderID + "/cancel")
	if err != nil {
		return errs.Mark(err, ErrGatewayRequest)
	}
	// 404 means the gateway never saw the order; cancellation is then a no-op.
	if resp.IsError() && resp.StatusCode() != 404 {
		return errs.Wrap(ErrGatewayRejected, "cancel returned "+resp.Status())
	}
	return nil
}

// Midtrans requires integer amounts for IDR.
func roundAmount(v float64) int64 {
	return int64(math.Round(v))
}
