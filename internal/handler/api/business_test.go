//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"github.com/fawwazmw/cashier-app/internal/handler/api"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	resdto "github.com/fawwazmw/cashier-app/internal/handler/dto/response"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/tests/common/httptest"
	"github.com/fawwazmw/cashier-app/tests/common/testutil"
	commandsmock "github.com/fawwazmw/cashier-app/tests/mock/commands"
	queriesmock "github.com/fawwazmw/cashier-app/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BusinessHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBusinessCommands
	mockQueries  *queriesmock.MockBusinessQueries
	handler      *api.BusinessHandler
}

func (s *BusinessHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBusinessCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBusinessQueries(s.mockCtrl)
	s.handler = api.NewBusinessHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/business", s.handler.Get)
	s.router.PUT("/business", s.handler.Upsert)
}

func (s *BusinessHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBusinessHandlerSuite(t *testing.T) {
	suite.Run(t, new(BusinessHandlerTestSuite))
}

func (s *BusinessHandlerTestSuite) TestGet() {
	s.Run("success: returns the store profile", func() {
		view := &queries.BusinessView{ID: uuid.New(), Name: "Corner Cafe", Owner: "Jo", Address: "1 Main St", Phone: "555"}
		s.mockQueries.EXPECT().Get(gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/business", nil, "")

		var response resdto.BusinessResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Corner Cafe", response.Name)
	})

	s.Run("error: 404 before the profile is configured", func() {
		s.mockQueries.EXPECT().Get(gomock.Any()).Return(nil, queries.ErrBusinessNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/business", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Business profile not configured")
	})
}

func (s *BusinessHandlerTestSuite) TestUpsert() {
	reqBody := reqdto.UpsertBusinessRequest{Name: "Corner Cafe", Owner: "Jo", Address: "1 Main St", Phone: "555"}

	s.Run("success: creates or replaces the profile", func() {
		view := &queries.BusinessView{ID: uuid.New(), Name: reqBody.Name, Owner: reqBody.Owner, Address: reqBody.Address, Phone: reqBody.Phone}
		s.mockCommands.EXPECT().Upsert(gomock.Any(), reqBody).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/business", reqBody, "")

		var response resdto.BusinessResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reqBody.Name, response.Name)
	})

	s.Run("error: 400 on missing required fields", func() {
		for _, field := range []string{"name", "owner", "address", "phone"} {
			s.Run("missing "+field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/business", requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}
