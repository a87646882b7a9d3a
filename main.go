package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ihirwe-dev/gura-express-api/config"
	"github.com/ihirwe-dev/gura-express-api/controllers"
	"github.com/ihirwe-dev/gura-express-api/middleware"
	"github.com/ihirwe-dev/gura-express-api/models"
	"github.com/ihirwe-dev/gura-express-api/services"
)

func main() {
	log.Println("Starting Gura Express API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderStatusHistory{},
		&models.Message{},
		&models.HeroContent{},
		&models.AboutUs{},
		&models.Company{},
		&models.SocialMediaLink{},
		&models.TermsPolicy{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Media storage: S3 when a bucket is configured, local disk otherwise
	if cfg.UseS3() {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		services.InitS3MediaService(s3Service)
		log.Printf("Media storage: S3 bucket %s", cfg.AWSS3Bucket)
	} else {
		if _, err := services.InitLocalMediaService(cfg.UploadDir); err != nil {
			log.Fatalf("Failed to initialize upload directories: %v", err)
		}
		log.Printf("Media storage: local directory %s", cfg.UploadDir)
	}

	router := SetupRouter()

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// SetupRouter builds the Gin engine with all routes and middleware
func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Locally stored media; S3 deployments serve presigned URLs instead
	router.GET("/uploads/:kind/:filename", controllers.ServeUpload)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/logout", controllers.Logout)
			auth.GET("/user", middleware.EnsureAuthenticated(), controllers.GetCurrentUser)
		}

		// Public homepage content
		v1.GET("/hero", controllers.ListHeroContent)
		v1.GET("/about", controllers.GetAboutUs)
		v1.GET("/companies", controllers.ListCompanies)
		v1.GET("/social-links", controllers.ListSocialLinks)
		v1.GET("/terms/:type", controllers.GetTermsPolicy)

		// Photo compressor is open: customers use it before registering
		v1.POST("/compress-photo", controllers.CompressPhoto)

		authed := v1.Group("")
		authed.Use(middleware.EnsureAuthenticated())
		{
			authed.POST("/verification/upload", controllers.UploadVerificationDocuments)

			orders := authed.Group("/orders")
			{
				orders.POST("", middleware.RequireVerified(), controllers.CreateOrder)
				orders.GET("", controllers.ListMyOrders)
				orders.GET("/:id", controllers.GetOrder)
				orders.GET("/:id/history", controllers.GetOrderHistory)
			}

			staff := authed.Group("/employee")
			staff.Use(middleware.RequireRoles(models.RoleEmployee, models.RoleAdmin, models.RoleSuperAdmin))
			{
				staff.GET("/orders", controllers.ListStaffOrders)
				staff.POST("/orders/:id/approve", controllers.ApproveOrder)
				staff.POST("/orders/:id/decline", controllers.DeclineOrder)
				staff.PATCH("/orders/:id/stage", controllers.UpdateOrderStage)
				staff.PATCH("/orders/:id/notes", controllers.UpdateInternalNotes)
			}

			admin := authed.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
			{
				admin.GET("/users", controllers.ListUsers)
				admin.GET("/verification/pending", controllers.ListPendingVerifications)
				admin.POST("/users/:id/verify", controllers.UpdateVerification)
				admin.GET("/orders", controllers.ListAllOrders)
				admin.PATCH("/orders/:id/assign", controllers.AssignOrder)
			}

			superAdmin := authed.Group("/super-admin")
			superAdmin.Use(middleware.RequireRoles(models.RoleSuperAdmin))
			{
				superAdmin.PATCH("/users/:id/role", controllers.UpdateUserRole)
				superAdmin.POST("/hero", controllers.UpsertHeroContent)
				superAdmin.DELETE("/hero/:id", controllers.DeleteHeroContent)
				superAdmin.POST("/about", controllers.UpsertAboutUs)
				superAdmin.POST("/companies", controllers.UpsertCompany)
				superAdmin.DELETE("/companies/:id", controllers.DeleteCompany)
				superAdmin.POST("/social-links", controllers.UpsertSocialLink)
				superAdmin.DELETE("/social-links/:id", controllers.DeleteSocialLink)
				superAdmin.POST("/terms", controllers.UpsertTermsPolicy)
			}

			messages := authed.Group("/messages")
			{
				messages.POST("", controllers.SendMessage)
				messages.GET("/order/:orderId", controllers.ListOrderMessages)
				messages.POST("/read", controllers.MarkMessagesRead)
				messages.GET("/unread-count", controllers.GetUnreadCount)

				staffMsgs := messages.Group("/staff")
				staffMsgs.Use(middleware.RequireRoles(models.RoleEmployee, models.RoleAdmin, models.RoleSuperAdmin))
				{
					staffMsgs.GET("", controllers.ListStaffMessages)
					staffMsgs.GET("/:userId", controllers.ListStaffMessages)
				}
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Gura Express API is running",
	})
}
