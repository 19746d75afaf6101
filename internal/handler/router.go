package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fawwazmw/cashier-app/internal/domain/user"
	"github.com/fawwazmw/cashier-app/internal/handler/api"
	"github.com/fawwazmw/cashier-app/internal/handler/middleware"
	"github.com/fawwazmw/cashier-app/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	productHandler *api.ProductHandler,
	transactionHandler *api.TransactionHandler,
	paymentHandler *api.PaymentHandler,
	businessHandler *api.BusinessHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, productHandler, transactionHandler, paymentHandler, businessHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	productHandler *api.ProductHandler,
	transactionHandler *api.TransactionHandler,
	paymentHandler *api.PaymentHandler,
	businessHandler *api.BusinessHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
				{Method: http.MethodPut, Path: "/profile", Handler: authHandler.UpdateProfile},
				{Method: http.MethodPut, Path: "/password", Handler: authHandler.ChangePassword},
			})
		}

		products := apiGroup.Group("/products")
		products.Use(authMiddleware.RequireAuth())
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: productHandler.List},
				{Method: http.MethodGet, Path: "/low-stock", Handler: productHandler.LowStock},
				{Method: http.MethodGet, Path: "/categories", Handler: productHandler.Categories},
				{Method: http.MethodGet, Path: "/:id", Handler: productHandler.Get},
				{Method: http.MethodPost, Path: "", Handler: productHandler.Create, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPut, Path: "/:id", Handler: productHandler.Update, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPatch, Path: "/:id/stock", Handler: productHandler.UpdateStock, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: productHandler.Delete, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		transactions := apiGroup.Group("/transactions")
		transactions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(transactions, []route{
				{Method: http.MethodPost, Path: "", Handler: transactionHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: transactionHandler.List},
				{Method: http.MethodGet, Path: "/summary", Handler: transactionHandler.Summary, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: transactionHandler.Get},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: transactionHandler.UpdateStatus},
			})
		}

		payment := apiGroup.Group("/payment")
		{
			// The gateway calls the webhook unauthenticated.
			addRoutes(payment, []route{
				{Method: http.MethodPost, Path: "/notification", Handler: paymentHandler.Notification},
			})

			paymentAuth := payment.Group("")
			paymentAuth.Use(authMiddleware.RequireAuth())
			addRoutes(paymentAuth, []route{
				{Method: http.MethodGet, Path: "/methods", Handler: paymentHandler.Methods},
				{Method: http.MethodPost, Path: "/:id/session", Handler: paymentHandler.CreateSession},
				{Method: http.MethodGet, Path: "/:id/status", Handler: paymentHandler.SyncStatus},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: paymentHandler.Cancel},
			})
		}

		business := apiGroup.Group("/business")
		business.Use(authMiddleware.RequireAuth())
		{
			addRoutes(business, []route{
				{Method: http.MethodGet, Path: "", Handler: businessHandler.Get},
				{Method: http.MethodPut, Path: "", Handler: businessHandler.Upsert, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
