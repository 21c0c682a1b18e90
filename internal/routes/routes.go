package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/handlers"
	"github.com/example/bazaar/internal/middleware"
	"github.com/example/bazaar/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	otpService := services.NewOTPService(db, cfg.OTPExpires)

	authHandler := handlers.NewAuthHandler(db, cfg, otpService)
	productHandler := handlers.NewProductHandler(db)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "Server running"})
	})

	auth := app.Group("/auth")
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	products := app.Group("/products", middleware.OptionalAuth(cfg, db))
	products.Get("/", productHandler.ListProducts)

	admin := middleware.AdminOnly()
	products.Post("/", admin, productHandler.CreateProduct)
	products.Patch("/status/:id", admin, productHandler.UpdateProductStatus)
	products.Put("/:id", admin, productHandler.UpdateProduct)
	products.Delete("/:id", admin, productHandler.DeleteProduct)

	// Registered after /status/:id so the literal segment wins.
	products.Get("/:slug", productHandler.GetProductBySlug)
}
