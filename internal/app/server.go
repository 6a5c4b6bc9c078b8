// internal/app/server.go
package app

import (
	"fmt"
	"log"

	"crm-service/internal/config"
	"crm-service/internal/db"
	customerHandler "crm-service/internal/handlers/customer"
	orderHandler "crm-service/internal/handlers/order"
	productHandler "crm-service/internal/handlers/product"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/lock"
	"crm-service/internal/repository/postgres"
	customersvc "crm-service/internal/service/customer"
	ordersvc "crm-service/internal/service/order"
	productsvc "crm-service/internal/service/product"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	store := postgres.NewStore(pool)

	// ----- Redis (restock lock) -----
	var restockLocker productsvc.Locker = productsvc.NopLocker{}
	if s.cfg.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       0,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		restockLocker = lock.NewRedisLock(redisClient)
	} else {
		logger.Warn("REDIS_ADDR not set, restock runs without a distributed lock")
	}

	// ----- Services -----
	customerService := customersvc.NewCustomerService(store, logger)
	productService := productsvc.NewProductService(store, restockLocker, logger)
	orderService := ordersvc.NewOrderService(store, logger)

	// ----- Handlers -----
	customerHandlerInst := customerHandler.NewCustomerHandler(customerService)
	productHandlerInst := productHandler.NewProductHandler(productService)
	orderHandlerInst := orderHandler.NewOrderHandler(orderService)

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		CustomerHandler: customerHandlerInst,
		ProductHandler:  productHandlerInst,
		OrderHandler:    orderHandlerInst,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
