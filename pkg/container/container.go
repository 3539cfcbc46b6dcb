package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"photobook-backend/internal/config"
	infraCache "photobook-backend/internal/infrastructure/cache"
	"photobook-backend/internal/infrastructure/database"
	"photobook-backend/pkg/cache"
	"photobook-backend/pkg/jwt"
	"photobook-backend/pkg/logger"

	"photobook-backend/internal/domains/category"
	categoryHandler "photobook-backend/internal/domains/category/handler"
	categoryRepo "photobook-backend/internal/domains/category/repository"
	categoryService "photobook-backend/internal/domains/category/service"

	"photobook-backend/internal/domains/product"
	productHandler "photobook-backend/internal/domains/product/handler"
	productRepo "photobook-backend/internal/domains/product/repository"
	productService "photobook-backend/internal/domains/product/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache
	JWTManager *jwt.Manager

	CategoryRepo category.Repository
	ProductRepo  product.Repository

	CategoryService category.Service
	ProductService  product.Service

	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.ProductHandler
}

// NewContainer builds and wires the whole application.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = redisClient
	c.Cache = infraCache.NewRedisCache(redisClient)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Repositories
	c.CategoryRepo = categoryRepo.NewPostgresRepository(db.Pool)
	c.ProductRepo = productRepo.NewPostgresRepository(db.Pool)

	// Services. The product repository doubles as the category
	// deletion policy's product index.
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.ProductRepo, c.Cache)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.CategoryRepo)

	// Handlers
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)

	log.Println("[Container] Initialized")
	return c, nil
}

// HealthCheck pings the stateful dependencies.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Redis.HealthCheck(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Cleanup releases connections in reverse initialization order.
func (c *Container) Cleanup() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("[Container] Redis close failed: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("[Container] Cleaned up")
}
