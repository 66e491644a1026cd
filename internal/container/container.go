package container

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"catalog-api/internal/cache"
	"catalog-api/internal/config"
	"catalog-api/internal/models"
	"catalog-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config
	// Database clients
	MongoDBClient  *mongo.Client
	RedisClient    *redis.Client
	Repo           *models.MongodbRepo
	AuthService    *services.AuthService
	ProductService *services.ProductService
	UserService    *services.UserService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)
	listings := cache.NewListingCache(redisClient)

	authService := services.NewAuthService(repo, cfg.JWTSecret)
	productService := services.NewProductService(repo, listings)
	userService := services.NewUserService(repo)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		RedisClient:    redisClient,
		Repo:           repo,
		AuthService:    authService,
		ProductService: productService,
		UserService:    userService,
	}
}
