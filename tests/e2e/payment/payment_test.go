//go:build e2e

package payment_test

import (
	"net/http"
	"testing"

	"github.com/fawwazmw/cashier-app/internal/domain/user"
	resdto "github.com/fawwazmw/cashier-app/internal/handler/dto/response"
	"github.com/fawwazmw/cashier-app/tests/common/dbtest"
	"github.com/fawwazmw/cashier-app/tests/common/httptest"
	"github.com/fawwazmw/cashier-app/tests/e2e"
	jwtHelper "github.com/fawwazmw/cashier-app/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	transactionsURL = "/api/transactions"
	notificationURL = "/api/payment/notification"
)

type paymentSuite struct {
	e2e.SharedSuite
	jwtHelper *jwtHelper.JWTTestHelper

	cashierID    uuid.UUID
	cashierToken string
}

func TestPaymentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(paymentSuite))
}

func (s *paymentSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = jwtHelper.NewJWTTestHelper(s.Config.JWT)
}

func (s *paymentSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.cashierID = s.jwtHelper.CreateUser(s.T(), s.DB, "cashier1", "password123", user.RoleCashier)
	s.cashierToken = s.jwtHelper.TokenFor(s.T(), s.cashierID, user.RoleCashier)
}

// createGatewaySale records a pending gateway sale of qty units and returns it.
func (s *paymentSuite) createGatewaySale(productID int64, qty int, total float64) resdto.TransactionResponse {
	body := map[string]any{
		"items":          []map[string]any{{"product_id": productID, "qty": qty}},
		"total":          total,
		"payment_method": "gateway",
	}
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, transactionsURL, body, s.cashierToken)

	var created resdto.TransactionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
	return created
}

func settlementFor(orderID string) map[string]any {
	return map[string]any{
		"order_id":           orderID,
		"transaction_status": "settlement",
	}
}

func (s *paymentSuite) transactionStatus(id string) string {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
		transactionsURL+"/"+id, nil, s.cashierToken)

	var view resdto.TransactionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
	return view.Status
}

func (s *paymentSuite) TestNotification() {
	s.Run("settlement marks the sale paid", func() {
		productID, err := dbtest.CreateProduct(s.DB, "Americano", 1000, 5)
		require.NoError(s.T(), err)
		created := s.createGatewaySale(productID, 2, 2000)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, notificationURL,
			settlementFor(created.ID), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		s.Equal("paid", s.transactionStatus(created.ID))

		stock, err := dbtest.ProductStock(s.DB, productID)
		require.NoError(s.T(), err)
		s.Equal(3, stock)
	})

	s.Run("replayed settlement changes nothing", func() {
		productID, err := dbtest.CreateProduct(s.DB, "Americano", 1000, 5)
		require.NoError(s.T(), err)
		created := s.createGatewaySale(productID, 2, 2000)

		for range 2 {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, notificationURL,
				settlementFor(created.ID), "")
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}

		s.Equal("paid", s.transactionStatus(created.ID))

		stock, err := dbtest.ProductStock(s.DB, productID)
		require.NoError(s.T(), err)
		s.Equal(3, stock, "a replay must not touch stock again")
	})

	s.Run("cancellation after settlement is ignored", func() {
		productID, err := dbtest.CreateProduct(s.DB, "Americano", 1000, 5)
		require.NoError(s.T(), err)
		created := s.createGatewaySale(productID, 2, 2000)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, notificationURL,
			settlementFor(created.ID), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, notificationURL,
			map[string]any{"order_id": created.ID, "transaction_status": "cancel"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		s.Equal("paid", s.transactionStatus(created.ID), "a settled sale never regresses")

		stock, err := dbtest.ProductStock(s.DB, productID)
		require.NoError(s.T(), err)
		s.Equal(3, stock, "no stock is restored for an ignored verdict")
	})

	s.Run("expiry cancels a pending sale and restores stock", func() {
		productID, err := dbtest.CreateProduct(s.DB, "Americano", 1000, 5)
		require.NoError(s.T(), err)
		created := s.createGatewaySale(productID, 2, 2000)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, notificationURL,
			map[string]any{"order_id": created.ID, "transaction_status": "expire"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		s.Equal("cancelled", s.transactionStatus(created.ID))

		stock, err := dbtest.ProductStock(s.DB, productID)
		require.NoError(s.T(), err)
		s.Equal(5, stock)
	})

	s.Run("unknown order ids are acknowledged", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, notificationURL,
			settlementFor("TRX17012345671234"), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *paymentSuite) TestOwnership() {
	s.Run("cashiers cannot check another cashier's payment", func() {
		productID, err := dbtest.CreateProduct(s.DB, "Americano", 1000, 5)
		require.NoError(s.T(), err)
		created := s.createGatewaySale(productID, 1, 1000)

		otherID := s.jwtHelper.CreateUser(s.T(), s.DB, "cashier2", "password123", user.RoleCashier)
		otherToken := s.jwtHelper.TokenFor(s.T(), otherID, user.RoleCashier)

		for _, ep := range []struct {
			method string
			path   string
		}{
			{http.MethodPost, "/api/payment/" + created.ID + "/session"},
			{http.MethodGet, "/api/payment/" + created.ID + "/status"},
			{http.MethodPost, "/api/payment/" + created.ID + "/cancel"},
		} {
			rec := httptest.PerformRequest(s.T(), s.Router, ep.method, ep.path, nil, otherToken)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
		}
	})
}
