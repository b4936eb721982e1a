package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"result-portal/app/cloudinary"
	"result-portal/app/config"
	"result-portal/app/database"
	"result-portal/app/routes/auth"
	"result-portal/app/routes/results"
	"result-portal/app/services"
)

const (
	lookupRateLimit  = 20          // requests per client per window
	lookupRateWindow = time.Minute // fixed rate window
	lookupCacheTTL   = time.Minute // lookup snapshot lifetime
)

// customErrorHandler translates unhandled errors to JSON responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if code == fiber.StatusInternalServerError {
		log.Printf("Unhandled error on %s: %v", c.Path(), err)
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   "Internal Server Error",
			"code":    code,
		})
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize configuration and database
	config.Load()
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// External asset host
	assets, err := cloudinary.New(config.AppConfig.CloudinaryURL)
	if err != nil {
		log.Fatal("Failed to configure Cloudinary:", err)
	}

	// Stores and services
	adminStore := database.NewAdminStore(config.GetDB())
	resultStore := database.NewResultStore(config.GetDB())

	issuer := services.NewSessionIssuer(adminStore, config.AppConfig.JWTSecret, config.AppConfig.SessionExpiry)
	cache := services.NewResultCache(lookupCacheTTL)
	limiter := services.NewRateLimiter(lookupRateLimit, lookupRateWindow)
	lookupService := services.NewLookupService(resultStore, cache, limiter)
	mutationService := services.NewMutationService(resultStore, assets)

	authHandler := auth.NewHandler(issuer, config.AppConfig.JWTSecret, config.AppConfig.SessionExpiry, config.AppConfig.Production)
	resultsHandler := results.NewHandler(lookupService, mutationService)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    services.MaxImageSize + 1024*1024,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/sign-in")
	})

	auth.SetupAuthRoutes(app, authHandler)
	results.SetupResultsRoutes(app, resultsHandler, authHandler)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
