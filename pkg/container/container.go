package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"pharmapos-backend/internal/config"
	infraCache "pharmapos-backend/internal/infrastructure/cache"
	"pharmapos-backend/internal/infrastructure/database"
	"pharmapos-backend/internal/shared"
	"pharmapos-backend/pkg/cache"
	"pharmapos-backend/pkg/jwt"

	cartHandler "pharmapos-backend/internal/domains/cart/handler"
	cartRepo "pharmapos-backend/internal/domains/cart/repository"
	cartService "pharmapos-backend/internal/domains/cart/service"
	catalogHandler "pharmapos-backend/internal/domains/catalog/handler"
	catalogRepo "pharmapos-backend/internal/domains/catalog/repository"
	catalogService "pharmapos-backend/internal/domains/catalog/service"
	couponHandler "pharmapos-backend/internal/domains/coupon/handler"
	couponRepo "pharmapos-backend/internal/domains/coupon/repository"
	couponService "pharmapos-backend/internal/domains/coupon/service"
	operatorHandler "pharmapos-backend/internal/domains/operator/handler"
	operatorRepo "pharmapos-backend/internal/domains/operator/repository"
	operatorService "pharmapos-backend/internal/domains/operator/service"
	saleHandler "pharmapos-backend/internal/domains/sale/handler"
	saleRepo "pharmapos-backend/internal/domains/sale/repository"
	saleService "pharmapos-backend/internal/domains/sale/service"
)

// Container holds every dependency of the application. It is the root of
// the dependency graph; fields are populated layer by layer, infrastructure
// first, handlers last.
type Container struct {
	// Infrastructure, singletons for the app lifetime
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Clock      shared.Clock

	redis *infraCache.RedisClient

	// Repositories
	ItemRepo     catalogRepo.RepositoryInterface
	CouponRepo   couponRepo.CouponRepository
	CartRepo     cartRepo.CartRepository
	SaleRepo     saleRepo.SaleRepository
	OperatorRepo operatorRepo.OperatorRepository

	// Services
	Gate           *couponService.Gate
	CatalogService catalogService.ServiceInterface
	CouponService  couponService.CouponService
	CartService    cartService.CartService
	SaleService    saleService.SaleService
	AuthService    operatorService.AuthService

	// HTTP handlers
	CatalogHandler *catalogHandler.CatalogHandler
	CouponHandler  *couponHandler.CouponHandler
	CartHandler    *cartHandler.CartHandler
	SaleHandler    *saleHandler.SaleHandler
	AuthHandler    *operatorHandler.AuthHandler
}

// NewContainer builds the whole dependency graph. Initialization order
// matters: config, then infrastructure, then repositories, services and
// handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("config loaded (environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	log.Println("database connected")

	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		// Carts live in redis, so this one is fatal.
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.redis = redisClient
	c.Cache = infraCache.NewCache(redisClient)
	log.Println("redis connected")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	c.Clock = shared.SystemClock{}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.ItemRepo = catalogRepo.NewPostgresRepository(pool)
	c.CouponRepo = couponRepo.NewPostgresCouponRepository(pool)
	c.SaleRepo = saleRepo.NewPostgresSaleRepository(pool)
	c.OperatorRepo = operatorRepo.NewPostgresOperatorRepository(pool)

	cartTTL := time.Duration(c.Config.POS.CartTTLMinutes) * time.Minute
	c.CartRepo = cartRepo.NewRedisCartRepository(c.Cache, cartTTL)
}

func (c *Container) initServices() {
	c.Gate = couponService.NewGate(c.Clock)

	c.CatalogService = catalogService.NewService(c.ItemRepo)
	c.CouponService = couponService.NewCouponService(c.CouponRepo)
	c.CartService = cartService.NewCartService(c.CartRepo, c.CatalogService, c.CouponRepo, c.Gate)
	c.SaleService = saleService.NewSaleService(
		c.DB.Pool,
		c.SaleRepo,
		c.CartRepo,
		c.ItemRepo,
		c.CouponRepo,
		c.Gate,
		c.Config.POS.BranchName,
	)
	c.AuthService = operatorService.NewAuthService(c.OperatorRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.CouponHandler = couponHandler.NewCouponHandler(c.CouponService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.SaleHandler = saleHandler.NewSaleHandler(c.SaleService)
	c.AuthHandler = operatorHandler.NewAuthHandler(c.AuthService)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Println("database connections closed")
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("failed to close redis: %v", err)
		} else {
			log.Println("redis connections closed")
		}
	}
}
