package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	"github.com/fawwazmw/cashier-app/internal/domain/user"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	resdto "github.com/fawwazmw/cashier-app/internal/handler/dto/response"
	"github.com/fawwazmw/cashier-app/internal/handler/middleware"
	"github.com/fawwazmw/cashier-app/internal/usecase/commands"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	transactionCommands commands.TransactionCommands
	transactionQueries  queries.TransactionQueries
}

func NewTransactionHandler(
	transactionCommands commands.TransactionCommands,
	transactionQueries queries.TransactionQueries,
) *TransactionHandler {
	return &TransactionHandler{
		transactionCommands: transactionCommands,
		transactionQueries:  transactionQueries,
	}
}

func actor(c *gin.Context) (uuid.UUID, user.Role, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, "", false
	}
	return userID, role, true
}

// @Summary Create transaction
// @Description Record a sale, reserving stock for every line atomically
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTransactionRequest true "Sale"
// @Success 201 {object} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, _, ok := actor(c)
	if !ok {
		return
	}

	var req reqdto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.transactionCommands.Create(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, commands.ErrInsufficientStock):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Insufficient stock",
			})
		case errors.Is(err, commands.ErrTotalMismatch):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Total does not match sum of line subtotals",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid transaction data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromTransactionView(view))
}

// @Summary List transactions
// @Description List transactions; cashiers only see their own
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param payment_method query string false "Filter by payment method"
// @Param search query string false "Match against transaction ID or customer name"
// @Param from query string false "RFC 3339 lower bound on creation time"
// @Param to query string false "RFC 3339 upper bound on creation time"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} resdto.TransactionListResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		return
	}

	filter := queries.TransactionFilter{}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("payment_method"); v != "" {
		filter.PaymentMethod = &v
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid from timestamp",
			})
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid to timestamp",
			})
			return
		}
		filter.To = &t
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	views, page, err := h.transactionQueries.List(c.Request.Context(), filter, userID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.TransactionListResponse{
		Transactions: resdto.FromTransactionViews(views),
		Pagination:   page,
	})
}

// @Summary Get transaction
// @Description Get a transaction with its lines; cashiers only see their own
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if !transaction.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	view, err := h.transactionQueries.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
		case errors.Is(err, queries.ErrTransactionAccess):
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

// @Summary Update transaction status
// @Description Settle or cancel a pending sale; cancellation restores stock
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body reqdto.UpdateTransactionStatusRequest true "Target status"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /transactions/{id}/status [patch]
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if !transaction.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	var req reqdto.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.transactionCommands.UpdateStatus(c.Request.Context(), id,
		transaction.Status(req.Status), userID, role)
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

// @Summary Daily sales summary
// @Description Aggregate paid sales for one local calendar day
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day in YYYY-MM-DD form (default today)"
// @Success 200 {object} queries.SalesSummaryView
// @Router /transactions/summary [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	var date *time.Time
	if v := c.Query("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		date = &t
	}

	summary, err := h.transactionQueries.SalesSummary(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
