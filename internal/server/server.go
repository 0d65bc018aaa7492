package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"storeapi/internal/config"
	"storeapi/internal/crypto"
	"storeapi/internal/handler"
	"storeapi/internal/middleware"
	"storeapi/internal/models"
	"storeapi/internal/notifier"
	"storeapi/internal/repository"
	"storeapi/internal/service"
	"storeapi/internal/token"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger, notify *notifier.TelegramNotifier) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes(notify)

	return s
}

func (s *Server) setupRoutes(notify *notifier.TelegramNotifier) {
	hasher := crypto.NewPasswordHasher(s.cfg.Hashing.MaxConcurrent)
	tokens := token.NewService(
		[]byte(s.cfg.JWT.AccessSecret),
		[]byte(s.cfg.JWT.RefreshSecret),
		s.cfg.AccessTTL(),
		s.cfg.RefreshTTL(),
	)

	userRepo := repository.NewUserRepository(s.db, s.logger)
	productRepo := repository.NewProductRepository(s.db, s.logger)

	authService := service.NewAuthService(userRepo, hasher, tokens, notify, s.logger)
	productService := service.NewProductService(productRepo, notify, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	productHandler := handler.NewProductHandler(productService, s.logger)

	// The deserialize stage runs on every request and never rejects;
	// protected routes add a role gate on top.
	s.router.Use(middleware.Deserialize(tokens, s.logger))

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	authGroup := s.router.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)

	productGroup := s.router.Group("/product")
	productGroup.GET("", productHandler.GetProducts)
	productGroup.GET("/:id", productHandler.GetProductByID)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	productGroup.POST("", adminOnly, productHandler.CreateProduct)
	productGroup.PUT("/:id", adminOnly, productHandler.UpdateProduct)
	productGroup.DELETE("/:id", adminOnly, productHandler.DeleteProduct)
}

// Handler exposes the router for the HTTP server and for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
