//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/fawwazmw/cashier-app/internal/handler/api"
	resdto "github.com/fawwazmw/cashier-app/internal/handler/dto/response"
	"github.com/fawwazmw/cashier-app/internal/usecase/commands"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/tests/common/builder"
	"github.com/fawwazmw/cashier-app/tests/common/httptest"
	"github.com/fawwazmw/cashier-app/tests/common/testutil"
	commandsmock "github.com/fawwazmw/cashier-app/tests/mock/commands"
	queriesmock "github.com/fawwazmw/cashier-app/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockProductCommands
	mockQueries  *queriesmock.MockProductQueries
	handler      *api.ProductHandler
}

func (s *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockProductCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockProductQueries(s.mockCtrl)
	s.handler = api.NewProductHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/products", s.handler.List)
	s.router.GET("/products/low-stock", s.handler.LowStock)
	s.router.GET("/products/categories", s.handler.Categories)
	s.router.GET("/products/:id", s.handler.Get)
	s.router.POST("/products", s.handler.Create)
	s.router.PUT("/products/:id", s.handler.Update)
	s.router.PATCH("/products/:id/stock", s.handler.UpdateStock)
	s.router.DELETE("/products/:id", s.handler.Delete)
}

func (s *ProductHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestProductHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}

func (s *ProductHandlerTestSuite) TestList() {
	url := "/products"
	returnView := builder.NewProductBuilder().BuildReadModel()

	s.Run("success: returns products with pagination", func() {
		page := queries.NewPage(1, 20, 0)
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return([]*queries.ProductView{returnView}, page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.ProductListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Products, 1)
		s.Equal(returnView.Name, response.Products[0].Name)
	})

	s.Run("success: category and search filters are forwarded", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.ProductFilter) ([]*queries.ProductView, queries.Page, error) {
				s.Require().NotNil(filter.Category)
				s.Require().NotNil(filter.Search)
				s.Equal("coffee", *filter.Category)
				s.Equal("ameri", *filter.Search)
				return nil, queries.NewPage(0, 20, 0), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?category=coffee&search=ameri", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *ProductHandlerTestSuite) TestGet() {
	returnView := builder.NewProductBuilder().BuildReadModel()

	s.Run("success: returns the product", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/1", nil, "")

		var response resdto.ProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.Name, response.Name)
	})

	s.Run("error: 400 on non-numeric id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product ID format")
	})

	s.Run("error: 404 when product is missing or inactive", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(nil, queries.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/1", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})
}

func (s *ProductHandlerTestSuite) TestLowStock() {
	returnView := builder.NewProductBuilder().WithStock(2).BuildReadModel()

	s.Run("success: threshold query param is forwarded", func() {
		s.mockQueries.EXPECT().ListLowStock(gomock.Any(), 3).
			Return([]*queries.ProductView{returnView}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/low-stock?threshold=3", nil, "")

		var response []*resdto.ProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}

func (s *ProductHandlerTestSuite) TestCategories() {
	s.Run("success: returns distinct categories", func() {
		s.mockQueries.EXPECT().ListCategories(gomock.Any()).
			Return([]string{"coffee", "tea"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/categories", nil, "")

		var response resdto.CategoryListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal([]string{"coffee", "tea"}, response.Categories)
	})
}

func (s *ProductHandlerTestSuite) TestCreate() {
	url := "/products"
	reqBody := builder.NewProductBuilder().BuildCreateDTO()
	returnView := builder.NewProductBuilder().BuildReadModel()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.ProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.Name, response.Name)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "negative price", mutate: testutil.Field("price", -1)},
			{name: "negative stock", mutate: testutil.Field("stock", -1)},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 409 Conflict on duplicate name", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody).
			Return(nil, commands.ErrDuplicateProductName).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Product name already exists")
	})
}

func (s *ProductHandlerTestSuite) TestUpdateStock() {
	url := "/products/1/stock"
	returnView := builder.NewProductBuilder().WithStock(10).BuildReadModel()

	s.Run("success: absolute stock set", func() {
		s.mockCommands.EXPECT().UpdateStock(gomock.Any(), int64(1), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"stock": 10}, "")

		var response resdto.ProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(10, response.Stock)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "both or neither of stock and adjustment",
				commandsError:  commands.ErrInvalidStockUpdate,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Exactly one of stock or adjustment",
			},
			{
				name:           "product missing",
				commandsError:  commands.ErrProductNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Product not found",
			},
			{
				name:           "adjustment below zero",
				commandsError:  commands.ErrInsufficientStock,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Adjustment would drive stock negative",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateStock(gomock.Any(), int64(1), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"adjustment": -3}, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *ProductHandlerTestSuite) TestDelete() {
	s.Run("success: hard delete when no sales reference the product", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), int64(1)).
			Return(&commands.DeleteProductResult{Deactivated: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/products/1", nil, "")

		var response resdto.DeleteProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Deactivated)
		s.Equal("Product deleted", response.Message)
	})

	s.Run("success: falls back to deactivation for referenced products", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), int64(1)).
			Return(&commands.DeleteProductResult{Deactivated: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/products/1", nil, "")

		var response resdto.DeleteProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Deactivated)
	})

	s.Run("error: 404 when product is missing", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), int64(1)).
			Return(nil, commands.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/products/1", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})
}
