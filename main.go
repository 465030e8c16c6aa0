package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mertcaneren0/arkyatirim/internal/api"
	"github.com/mertcaneren0/arkyatirim/internal/cache"
	"github.com/mertcaneren0/arkyatirim/internal/config"
	"github.com/mertcaneren0/arkyatirim/internal/db"
	"github.com/mertcaneren0/arkyatirim/internal/services"
	"github.com/mertcaneren0/arkyatirim/internal/storage"
	"github.com/mertcaneren0/arkyatirim/internal/tasks"
)

var runMode = flag.String("m", "all", "Run mode: 'api', 'worker' (background cleanup tasks), 'all' (default)")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	mongoClient, mongoDb, err := db.ConnectDB(cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.DisconnectDB(mongoClient); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	// Initialize Cache (Redis)
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() {
		if err := cache.DisconnectRedis(redisClient); err != nil {
			log.Printf("Error disconnecting from Redis: %v", err)
		}
	}()

	// Pick the upload backend. S3 when a bucket is configured, local disk
	// otherwise.
	var uploader storage.Uploader
	if cfg.UseS3() {
		s3Storage, err := storage.NewS3Storage(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		uploader = s3Storage
		log.Printf("Using S3 upload backend (bucket %s)", cfg.AwsS3Bucket)
	} else {
		uploader = storage.NewDiskStorage(cfg.UploadDir, cfg.UploadPathPrefix)
		log.Printf("Using local disk upload backend (%s)", cfg.UploadDir)
	}

	// Seed the administrator credential when one is configured.
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		userService := services.NewUserService(mongoDb)
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
		if err := userService.EnsureAdmin(seedCtx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			cancelSeed()
			log.Fatalf("Failed to seed admin account: %v", err)
		}
		cancelSeed()
	}

	// Initialize Task Client
	taskClient := tasks.NewClient(redisClient)
	defer taskClient.Close()

	// Initialize Task Processor
	taskProcessor := tasks.NewTaskProcessor(uploader)

	// WaitGroup for managing goroutines
	var wg sync.WaitGroup

	var mainApiSrv *http.Server
	var taskSrv *asynq.Server

	fmt.Printf("Starting application in '%s' mode...\n", cfg.RunMode)

	apiMode := func() {
		fmt.Println("Starting main API server...")
		mainApiRouter := api.SetupRouter(cfg, mongoDb, redisClient, taskClient, uploader)
		mainApiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: mainApiRouter,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Printf("Main API listening on :%s\n", cfg.ApiPort)
			if err := mainApiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Main API ListenAndServe error: %v", err)
			}
			fmt.Println("Main API server stopped.")
		}()
	}

	workerMode := func() {
		fmt.Println("Starting background worker...")
		srv, mux := tasks.SetupServer(redisClient, taskProcessor)
		taskSrv = srv
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Println("Background task server starting...")
			if err := taskSrv.Run(mux); err != nil {
				log.Fatalf("Background task server error: %v", err)
			}
			fmt.Println("Background task server stopped.")
		}()
	}

	switch cfg.RunMode {
	case "api":
		apiMode()
	case "worker":
		workerMode()
	case "all":
		apiMode()
		workerMode()
	default:
		log.Fatalf("Invalid run mode specified: %s.", cfg.RunMode)
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if mainApiSrv != nil {
		fmt.Println("Shutting down Main API server...")
		if err := mainApiSrv.Shutdown(ctxShutdown); err != nil {
			log.Printf("Main API server shutdown error: %v", err)
		}
	}

	if taskSrv != nil {
		fmt.Println("Shutting down Background Task server...")
		taskSrv.Shutdown()
	}

	fmt.Println("Waiting for servers to stop...")
	wg.Wait()

	fmt.Println("Server gracefully stopped")
}
