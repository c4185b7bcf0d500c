package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv" // Loads .env files in local development
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/product-catalog/internal/config"
	"github.com/iliyamo/product-catalog/internal/database"
	"github.com/iliyamo/product-catalog/internal/handler"
	"github.com/iliyamo/product-catalog/internal/integrity"
	"github.com/iliyamo/product-catalog/internal/queue"
	"github.com/iliyamo/product-catalog/internal/repository"
	"github.com/iliyamo/product-catalog/internal/router"
	queue_publisher "github.com/iliyamo/product-catalog/internal/service"
)

func main() {
	// Load a .env file if one exists; in production the variables come
	// from the environment directly and the file is absent.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg) // Connect to MySQL and verify with a ping
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Repositories over the shared connection pool.
	users := repository.NewUserRepo(db)
	categories := repository.NewCategoryRepo(db)
	products := repository.NewProductRepo(db)
	images := repository.NewImageRepo(db)
	variants := repository.NewVariantRepo(db)

	// Referential integrity checks are shared by every handler that
	// accepts a foreign key.
	checker := integrity.NewChecker(categories, products)

	// Domain events go to RabbitMQ; the consumer below drains them into
	// the audit log. Both tolerate a missing broker.
	events := queue_publisher.New()
	go func() {
		if err := queue.StartCatalogConsumer(); err != nil {
			log.Printf("catalog consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.HideBanner = true

	router.Register(e, router.Deps{
		Auth:      handler.NewAuthHandler(cfg, users),
		Category:  handler.NewCategoryHandler(categories, checker, events),
		Product:   handler.NewProductHandler(products, checker, events),
		Image:     handler.NewImageHandler(images, checker, events),
		Variant:   handler.NewVariantHandler(variants, checker, events),
		JWTSecret: cfg.JWTSecret,
		Users:     users,
		CacheCfg:  config.LoadCacheConfig(),
		Redis:     config.NewRedisClient(), // nil when Redis is unreachable; caching is skipped
	})

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
