package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/togethernow/internal/container"
	"github.com/joshua-takyi/togethernow/internal/handlers"
	"github.com/joshua-takyi/togethernow/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(gin.Recovery())

	// public routes
	r.GET("/", handlers.Home())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"service": "togethernow-api",
		})
	})
	r.GET("/events", handlers.ListEvents(container.EventService))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", handlers.CreateUser(container.UserService))
		auth.POST("/login", handlers.AuthenticateUser(container.UserService))
		auth.POST("/refresh", handlers.RefreshToken(container.UserService))
	}

	// protected routes; every request re-verifies the bearer token
	protected := r.Group("/")
	protected.Use(middleware.Auth(container.Verifier, container.Logger))
	{
		protected.POST("/events", handlers.CreateEvent(container.EventService))
		protected.POST("/join", handlers.ToggleMembership(container.EventService))
		protected.DELETE("/events/:event_id", handlers.DeleteEvent(container.EventService))
	}

	return r
}
