package main

import (
	"net/http"

	"gamevoyage/backend/internal/auth"
	"gamevoyage/backend/internal/catalog"
	"gamevoyage/backend/internal/config"
	"gamevoyage/backend/internal/database"
	"gamevoyage/backend/internal/handler"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	// Swagger imports
	_ "gamevoyage/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           GameVoyage API
// @version         1.0
// @description     This is the API for the GameVoyage service.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Catalog wiring: one client, one cache, one composer for the whole
	// process. The cache is passed explicitly, never looked up globally.
	client := catalog.NewClient(config.AppConfig.CatalogAPIURL, config.AppConfig.CatalogTimeout)
	cache := catalog.NewCache(client, config.AppConfig.CatalogCacheTTL)
	composer := catalog.NewComposer(cache, database.DB)
	catalogHandler := handler.NewCatalogHandler(cache, composer)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Composed catalog view; works for anonymous and authenticated sessions
	router.GET("/", auth.OptionalAuthMiddleware(), catalogHandler.GetHome)

	// Public catalog routes
	gameRoutes := router.Group("/games")
	{
		gameRoutes.GET("", catalogHandler.ListGames)
		gameRoutes.GET("/:id", catalogHandler.GetGameByID)
	}

	// Auth routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", handler.RegisterUser)
		authRoutes.POST("/login", handler.LoginUser)
	}

	// User routes (protected)
	userRoutes := router.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	{
		userRoutes.GET("/me", handler.GetMe)
	}

	// Favorite routes (protected)
	favoriteRoutes := router.Group("/favorites")
	favoriteRoutes.Use(auth.AuthMiddleware())
	{
		favoriteRoutes.POST("", handler.AddFavorite)
		favoriteRoutes.GET("", handler.ListFavorites)
		favoriteRoutes.DELETE("/:gameId", handler.RemoveFavorite)
	}

	// Note routes (protected)
	noteRoutes := router.Group("/notes")
	noteRoutes.Use(auth.AuthMiddleware())
	{
		noteRoutes.POST("", handler.UpsertNote)
		noteRoutes.DELETE("/:gameId", handler.DeleteNote)
	}

	// Admin routes (protected by auth and admin check)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
	{
		adminRoutes.POST("/cache/invalidate", catalogHandler.InvalidateCache)
	}

	log.Infof("Server is running on %s", config.AppConfig.Port)
	log.Info("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.Port))
}
