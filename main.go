package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pricing-backend/config"
	"pricing-backend/controllers"
	"pricing-backend/pricing"
	"pricing-backend/routes"
	"pricing-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	settings, err := config.LoadPricingSettings()
	if err != nil {
		log.Fatalf("❌ Invalid pricing configuration: %v", err)
	}
	log.Printf("✅ Pricing settings: %d columns, reference price %.2f %s", settings.ColumnCount, settings.ReferenceBasePrice, settings.Currency)

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	store := services.NewStoreService(db)
	catalog := services.NewCatalogService(db)

	var dispatcher pricing.Dispatcher = store
	var publisher *services.CommandPublisher
	var publishQueue *pricing.QueuedDispatcher
	if settings.PublishCommands {
		publisher = services.NewCommandPublisher(settings.AMQPURL, settings.CommandQueue)
		publishQueue = pricing.NewQueuedDispatcher(publisher, 256)
		dispatcher = pricing.MultiDispatcher{
			Primary:   store,
			Followers: []pricing.Dispatcher{publishQueue},
		}
		log.Printf("✅ Publishing pricing commands to queue %s", settings.CommandQueue)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelLoad()
	channels, err := store.LoadChannels(loadCtx)
	if err != nil {
		log.Fatalf("❌ Load channels failed: %v", err)
	}
	tabs, err := store.LoadTabs(loadCtx)
	if err != nil {
		log.Fatalf("❌ Load channel tabs failed: %v", err)
	}

	registry := pricing.NewRegistry(channels, tabs, dispatcher)
	pricingService := services.NewPricingService(catalog, registry, settings)
	log.Printf("✅ Channel registry loaded: %d channels, %d tabs", len(channels), len(registry.Tabs()))

	// Initialize controllers
	stayTypeController := controllers.NewStayTypeController(catalog, pricing.NewCatalogEditor(dispatcher))
	mealPlanController := controllers.NewMealPlanController(catalog)
	channelController := controllers.NewChannelController(registry)
	pricingController := controllers.NewPricingController(pricingService)

	router := routes.SetupRouter(stayTypeController, mealPlanController, channelController, pricingController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}
	if publishQueue != nil {
		if err := publishQueue.Close(ctx); err != nil {
			log.Printf("⚠️  Pending pricing commands not published: %v", err)
		}
		publisher.Close()
	}

	log.Println("✅ Server stopped gracefully")
}
