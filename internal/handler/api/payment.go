package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	resdto "github.com/fawwazmw/cashier-app/internal/handler/dto/response"
	"github.com/fawwazmw/cashier-app/internal/pkg/config"
	"github.com/fawwazmw/cashier-app/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	gatewayEnabled  bool
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, cfg config.Config) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		gatewayEnabled:  cfg.Gateway.ServerKey != "",
	}
}

// @Summary List payment methods
// @Description List the payment methods the register accepts
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.PaymentMethodsResponse
// @Router /payment/methods [get]
func (h *PaymentHandler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.PaymentMethodList(h.gatewayEnabled))
}

// @Summary Create payment session
// @Description Open a hosted checkout session for a pending gateway sale
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.PaymentSessionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payment/{id}/session [post]
func (h *PaymentHandler) CreateSession(c *gin.Context) {
	id := c.Param("id")
	if !transaction.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	actorID, actorRole, ok := actor(c)
	if !ok {
		return
	}

	session, err := h.paymentCommands.CreateSession(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
		case errors.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, commands.ErrNotGatewayPayment):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Transaction is not a gateway payment",
			})
		case errors.Is(err, commands.ErrInvalidStateTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Transaction is already settled",
			})
		case errors.Is(err, commands.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSnapSession(session))
}

// @Summary Payment notification webhook
// @Description Receive a gateway settlement verdict; replays are idempotent
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentNotificationRequest true "Gateway notification"
// @Success 200 {object} resdto.WebhookAck
// @Router /payment/notification [post]
func (h *PaymentHandler) Notification(c *gin.Context) {
	var req reqdto.PaymentNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed payloads are acknowledged so the gateway stops retrying.
		slog.Warn("malformed payment notification", "error", err.Error())
		c.JSON(http.StatusOK, resdto.AckOK())
		return
	}

	if err := h.paymentCommands.HandleNotification(c.Request.Context(), req); err != nil {
		// The gateway retries on non-2xx; a transient failure here is the one
		// case a retry can help.
		slog.Error("payment notification failed", "order_id", req.OrderID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.AckOK())
}

// @Summary Sync payment status
// @Description Pull the gateway verdict and reconcile the local transaction
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payment/{id}/status [get]
func (h *PaymentHandler) SyncStatus(c *gin.Context) {
	id := c.Param("id")
	if !transaction.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	actorID, actorRole, ok := actor(c)
	if !ok {
		return
	}

	view, err := h.paymentCommands.SyncStatus(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
		case errors.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionView(view))
}

// @Summary Cancel payment
// @Description Void the gateway order and cancel the sale, restoring stock
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /payment/{id}/cancel [post]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !transaction.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	actorID, actorRole, ok := actor(c)
	if !ok {
		return
	}

	view, err := h.paymentCommands.CancelPayment(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
		case errors.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, commands.ErrNotGatewayPayment):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Transaction is not a gateway payment",
			})
		case errors.Is(err, commands.ErrInvalidStateTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Transaction is already settled",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionView(view))
}
