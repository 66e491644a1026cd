package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"catalog-api/internal/container"
	"catalog-api/internal/handlers"
	"catalog-api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(gin.Recovery())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"service": "catalog-api",
		})
	})

	api := r.Group("/api")

	// public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register(container.AuthService))
		auth.POST("/login", handlers.Login(container.AuthService))
	}

	protected := api.Group("/")
	protected.Use(middleware.Auth(container.Config.JWTSecret, container.UserService, container.Logger))

	admin := middleware.AdminOnly()

	productRoutes := protected.Group("/products")
	{
		productRoutes.GET("", handlers.ListProducts(container.ProductService))
		productRoutes.GET("/search", handlers.SearchProducts(container.ProductService))
		productRoutes.GET("/:id", handlers.GetProduct(container.ProductService))
		productRoutes.POST("", admin, handlers.CreateProduct(container.ProductService))
		productRoutes.PUT("/:id", admin, handlers.UpdateProduct(container.ProductService))
		productRoutes.DELETE("/:id", admin, handlers.DeleteProduct(container.ProductService))
	}

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/profile", handlers.GetProfile(container.UserService))
		userRoutes.PUT("/profile", handlers.UpdateProfile(container.UserService))
		userRoutes.GET("", admin, handlers.ListUsers(container.UserService))
		userRoutes.PUT("/:id/status", admin, handlers.UpdateUserStatus(container.UserService))
		userRoutes.PUT("/:id", admin, handlers.UpdateUser(container.UserService))
	}

	return r
}
