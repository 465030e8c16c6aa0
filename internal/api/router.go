package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mertcaneren0/arkyatirim/internal/api/handlers"
	"github.com/mertcaneren0/arkyatirim/internal/api/middleware"
	"github.com/mertcaneren0/arkyatirim/internal/cache"
	"github.com/mertcaneren0/arkyatirim/internal/config"
	"github.com/mertcaneren0/arkyatirim/internal/services"
	"github.com/mertcaneren0/arkyatirim/internal/storage"
	"github.com/mertcaneren0/arkyatirim/internal/tasks"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, taskClient tasks.Enqueuer, uploader storage.Uploader) *gin.Engine {
	listingService := services.NewListingService(db)
	userService := services.NewUserService(db)
	formService := services.NewFormService(db)
	teamService := services.NewTeamService(db)

	ingestor := storage.NewIngestor(uploader, cfg.MaxImagesPerItem, cfg.ImageMaxSizeBytes())

	var listingCache *cache.ListingCache
	if rdb != nil {
		listingCache = cache.NewListingCache(rdb, cfg.GetCacheTTL)
	}

	r := gin.Default()

	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Global middleware first (order matters)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	listingHandler := handlers.NewListingHandler(listingService, ingestor, listingCache, taskClient)
	authHandler := handlers.NewAuthHandler(userService, cfg.JwtSecret, cfg.JwtTTL)
	formHandler := handlers.NewFormHandler(formService)
	teamHandler := handlers.NewTeamHandler(teamService, ingestor, taskClient)

	// Uploaded files are served straight from disk unless S3 is configured,
	// in which case public URLs point at the bucket instead.
	if disk, ok := uploader.(*storage.DiskStorage); ok {
		r.Static(cfg.UploadPathPrefix, disk.Root())
	}

	// Public routes
	r.GET("/listings", listingHandler.SearchListings)
	r.GET("/listings/:id", listingHandler.GetListingByID)
	r.GET("/team/active", teamHandler.ListActiveMembers)
	r.POST("/forms/listing", formHandler.SubmitListingInquiry)
	r.POST("/forms/career", formHandler.SubmitCareerApplication)
	r.POST("/auth/login", authHandler.Login)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// Listing mutations run behind the bearer gate on the public paths
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
	{
		authRequired.POST("/listings", listingHandler.CreateListing)
		authRequired.PUT("/listings/:id", listingHandler.UpdateListing)
		authRequired.DELETE("/listings/:id", listingHandler.DeleteListing)
	}

	// Admin-only surfaces
	adminRequired := r.Group("/admin")
	adminRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
	{
		adminRequired.GET("/forms/listing", formHandler.ListListingInquiries)
		adminRequired.DELETE("/forms/listing/:id", formHandler.DeleteListingInquiry)
		adminRequired.GET("/forms/career", formHandler.ListCareerApplications)
		adminRequired.DELETE("/forms/career/:id", formHandler.DeleteCareerApplication)

		adminRequired.GET("/team", teamHandler.ListMembers)
		adminRequired.POST("/team", teamHandler.CreateMember)
		adminRequired.PUT("/team/order", teamHandler.UpdateOrder)
		adminRequired.PUT("/team/:id", teamHandler.UpdateMember)
		adminRequired.DELETE("/team/:id", teamHandler.DeleteMember)

		adminRequired.POST("/update-password", authHandler.UpdatePassword)
	}

	return r
}
