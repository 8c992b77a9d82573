package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/bestfoody-backend/config"
	"github.com/ikkim/bestfoody-backend/internal/app/controller"
	"github.com/ikkim/bestfoody-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	restaurantController *controller.RestaurantController
	reviewController     *controller.ReviewController
	imageController      *controller.ImageController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	restaurantController *controller.RestaurantController,
	reviewController *controller.ReviewController,
	imageController *controller.ImageController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		restaurantController: restaurantController,
		reviewController:     reviewController,
		imageController:      imageController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "BESTFOODY API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		restaurants := v1.Group("/restaurants")
		{
			// 조회는 공개
			restaurants.GET("", r.restaurantController.GetRestaurants)
			restaurants.GET("/:id", r.restaurantController.GetRestaurantByID)
			restaurants.GET("/:id/reviews", r.reviewController.GetRestaurantReviews)

			// 변경은 인증 필요
			restaurants.POST("", r.authMiddleware.Authenticate(), r.restaurantController.CreateRestaurant)
			restaurants.PUT("/:id", r.authMiddleware.Authenticate(), r.restaurantController.UpdateRestaurant)
			restaurants.DELETE("/:id", r.authMiddleware.Authenticate(), r.restaurantController.DeleteRestaurant)

			restaurants.POST("/upload-image", r.authMiddleware.Authenticate(), r.imageController.UploadImage)

			restaurants.POST("/:id/reviews", r.authMiddleware.Authenticate(), r.reviewController.CreateReview)
			restaurants.PUT("/:id/reviews/:reviewId", r.authMiddleware.Authenticate(), r.reviewController.UpdateReview)
			restaurants.DELETE("/:id/reviews/:reviewId", r.authMiddleware.Authenticate(), r.reviewController.DeleteReview)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
