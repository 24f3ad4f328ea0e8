package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SyedAzeem24/blood-donation-system/src/config"
	"github.com/SyedAzeem24/blood-donation-system/src/controllers"
	"github.com/SyedAzeem24/blood-donation-system/src/database"
	"github.com/SyedAzeem24/blood-donation-system/src/lifecycle"
	"github.com/SyedAzeem24/blood-donation-system/src/middleware"
	"github.com/SyedAzeem24/blood-donation-system/src/routes"
	"github.com/SyedAzeem24/blood-donation-system/src/services"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

func main() {
	godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal("mongodb connection failed", zap.Error(err))
	}
	log.Info("connected to mongodb", zap.String("database", cfg.MongoDatabase))

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("index creation failed", zap.Error(err))
	}
	if err := database.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("admin seed failed", zap.Error(err))
	}

	users := store.NewUsers(db)
	donations := store.NewDonations(db)
	requests := store.NewRequests(db)
	history := store.NewHistory(db)
	notifications := store.NewNotifications(db)

	engine := lifecycle.NewEngine(donations, history)
	notifier := services.NewNotifier(notifications, users, log)
	auth := middleware.NewAuth(users, cfg.JWTSecret)

	app := fiber.New(fiber.Config{
		AppName: "Blood Donation System",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.Setup(app, routes.Router{
		Auth:          auth,
		AuthCtrl:      controllers.NewAuthController(users, cfg.JWTSecret, log),
		Users:         controllers.NewUserController(users, log),
		Donations:     controllers.NewDonationController(donations, history, users, notifications, engine, notifier, log),
		Requests:      controllers.NewRequestController(requests, users, notifications, notifier, log),
		Notifications: controllers.NewNotificationController(notifications, log),
		Admin:         controllers.NewAdminController(users, donations, requests, history, notifications, log),
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer disconnectCancel()
	if err := client.Disconnect(disconnectCtx); err != nil {
		log.Error("mongodb disconnect failed", zap.Error(err))
	}
}
