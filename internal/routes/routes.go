package routes

import (
	"log"
	"net/http"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/config"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/handlers"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/middleware"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/repository"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	tokenService := services.NewTokenService(cfg)
	mediaService, err := services.NewMediaService(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("media service init failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, tokenService)
	userHandler := handlers.NewUserHandler(userRepo, mediaService)
	postHandler := handlers.NewPostHandler(postRepo, userRepo, mediaService)

	// Uploaded files are served read-only.
	r.Static("/uploads", mediaService.Dir())

	authRequired := middleware.AuthMiddleware(tokenService)

	users := r.Group("/api/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.GET("", userHandler.GetAuthors)
		users.POST("/change-avatar", authRequired, userHandler.ChangeAvatar)
		users.PATCH("/edit-user", authRequired, userHandler.EditUser)
		users.GET("/:id", userHandler.GetUser)
	}

	posts := r.Group("/api/posts")
	{
		posts.POST("", authRequired, postHandler.CreatePost)
		posts.GET("", postHandler.GetPosts)
		posts.GET("/categories/:category", postHandler.GetPostsByCategory)
		posts.GET("/users/:id", postHandler.GetPostsByUser)
		posts.GET("/:id", postHandler.GetPost)
		posts.PATCH("/:id", authRequired, postHandler.EditPost)
		posts.DELETE("/:id", authRequired, postHandler.DeletePost)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found."})
	})

	return r
}
