//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	"github.com/fawwazmw/cashier-app/internal/domain/user"
	"github.com/fawwazmw/cashier-app/internal/handler/api"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	resdto "github.com/fawwazmw/cashier-app/internal/handler/dto/response"
	"github.com/fawwazmw/cashier-app/internal/pkg/config"
	"github.com/fawwazmw/cashier-app/internal/usecase/commands"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"
	"github.com/fawwazmw/cashier-app/tests/common/builder"
	"github.com/fawwazmw/cashier-app/tests/common/httptest"
	commandsmock "github.com/fawwazmw/cashier-app/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	handler      *api.PaymentHandler
	actorID      uuid.UUID
	actorRole    user.Role
}

// injects the context the auth middleware would have set
func (s *PaymentHandlerTestSuite) asActor(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", s.actorRole)
		h(c)
	}
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)

	cfg := config.NewTestConfig()
	cfg.Gateway.ServerKey = "test-server-key"
	s.handler = api.NewPaymentHandler(s.mockCommands, cfg)
	s.actorID = uuid.New()
	s.actorRole = user.RoleCashier

	s.router.GET("/payment/methods", s.handler.Methods)
	s.router.POST("/payment/notification", s.handler.Notification)
	s.router.POST("/payment/:id/session", s.asActor(s.handler.CreateSession))
	s.router.GET("/payment/:id/status", s.asActor(s.handler.SyncStatus))
	s.router.POST("/payment/:id/cancel", s.asActor(s.handler.Cancel))
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestCreateSession() {
	view := builder.NewTransactionBuilder().BuildReadModel()
	url := "/payment/" + view.ID + "/session"

	s.Run("success: returns the hosted checkout session", func() {
		session := &shared.SnapSession{Token: "snap-token", RedirectURL: "https://checkout.example/snap-token"}
		s.mockCommands.EXPECT().CreateSession(gomock.Any(), view.ID, s.actorID, s.actorRole).
			Return(session, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var response resdto.PaymentSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("snap-token", response.Token)
	})

	s.Run("error: 400 on foreign id format", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payment/ORDER-1/session", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid transaction ID format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "not found",
				commandsError:  commands.ErrTransactionNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Transaction not found",
			},
			{
				name:           "owned by another cashier",
				commandsError:  commands.ErrAccessDenied,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Access denied",
			},
			{
				name:           "cash sale",
				commandsError:  commands.ErrNotGatewayPayment,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "not a gateway payment",
			},
			{
				name:           "already terminal",
				commandsError:  commands.ErrInvalidStateTransition,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "already settled",
			},
			{
				name:           "gateway down",
				commandsError:  commands.ErrGatewayUnavailable,
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Payment gateway unavailable",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateSession(gomock.Any(), view.ID, s.actorID, s.actorRole).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *PaymentHandlerTestSuite) TestNotification() {
	url := "/payment/notification"
	view := builder.NewTransactionBuilder().BuildReadModel()

	notification := reqdto.PaymentNotificationRequest{
		OrderID:           view.ID,
		TransactionStatus: "settlement",
	}

	s.Run("success: acknowledges a settlement verdict", func() {
		s.mockCommands.EXPECT().HandleNotification(gomock.Any(), notification).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, notification, "")

		var response resdto.WebhookAck
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("ok", response.Status)
	})

	s.Run("success: malformed payloads are acknowledged, not retried", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"order_id": ""}, "")

		var response resdto.WebhookAck
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("ok", response.Status)
	})

	s.Run("error: 500 on transient failure so the gateway retries", func() {
		s.mockCommands.EXPECT().HandleNotification(gomock.Any(), notification).
			Return(errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, notification, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *PaymentHandlerTestSuite) TestSyncStatus() {
	view := builder.NewTransactionBuilder().WithStatus(transaction.StatusPaid).BuildReadModel()
	url := "/payment/" + view.ID + "/status"

	s.Run("success: returns the reconciled transaction", func() {
		s.mockCommands.EXPECT().SyncStatus(gomock.Any(), view.ID, s.actorID, s.actorRole).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("paid", response.Status)
	})

	s.Run("error: 403 on another cashier's transaction", func() {
		s.mockCommands.EXPECT().SyncStatus(gomock.Any(), view.ID, s.actorID, s.actorRole).
			Return(nil, commands.ErrAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 404 on unknown transaction", func() {
		s.mockCommands.EXPECT().SyncStatus(gomock.Any(), view.ID, s.actorID, s.actorRole).
			Return(nil, commands.ErrTransactionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Transaction not found")
	})
}

func (s *PaymentHandlerTestSuite) TestCancel() {
	view := builder.NewTransactionBuilder().WithStatus(transaction.StatusCancelled).BuildReadModel()
	url := "/payment/" + view.ID + "/cancel"

	s.Run("success: cancels the sale", func() {
		s.mockCommands.EXPECT().CancelPayment(gomock.Any(), view.ID, s.actorID, s.actorRole).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var response resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
	})

	s.Run("error: 403 on another cashier's transaction", func() {
		s.mockCommands.EXPECT().CancelPayment(gomock.Any(), view.ID, s.actorID, s.actorRole).
			Return(nil, commands.ErrAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 422 on settled transaction", func() {
		s.mockCommands.EXPECT().CancelPayment(gomock.Any(), view.ID, s.actorID, s.actorRole).
			Return(nil, commands.ErrInvalidStateTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "already settled")
	})
}

func (s *PaymentHandlerTestSuite) TestMethods() {
	s.Run("lists cash and the configured gateway", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payment/methods", nil, "")

		var response resdto.PaymentMethodsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Methods, 2)
		s.Equal("cash", response.Methods[0].Code)
		s.True(response.Methods[0].Enabled)
		s.Equal("gateway", response.Methods[1].Code)
		s.True(response.Methods[1].Enabled, "gateway is enabled because a server key is configured")
	})
}
