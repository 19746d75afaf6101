package api

import (
	"errors"
	"net/http"

	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	resdto "github.com/fawwazmw/cashier-app/internal/handler/dto/response"
	"github.com/fawwazmw/cashier-app/internal/usecase/commands"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct {
	businessCommands commands.BusinessCommands
	businessQueries  queries.BusinessQueries
}

func NewBusinessHandler(businessCommands commands.BusinessCommands, businessQueries queries.BusinessQueries) *BusinessHandler {
	return &BusinessHandler{
		businessCommands: businessCommands,
		businessQueries:  businessQueries,
	}
}

// @Summary Get business profile
// @Description Get the store profile shown on receipts
// @Tags business
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BusinessResponse
// @Failure 404 {object} map[string]string
// @Router /business [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	view, err := h.businessQueries.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, queries.ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Business profile not configured",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBusinessView(view))
}

// @Summary Upsert business profile
// @Description Create or replace the store profile
// @Tags business
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpsertBusinessRequest true "Business profile"
// @Success 200 {object} resdto.BusinessResponse
// @Failure 400 {object} map[string]string
// @Router /business [put]
func (h *BusinessHandler) Upsert(c *gin.Context) {
	var req reqdto.UpsertBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.businessCommands.Upsert(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid business data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBusinessView(view))
}
