package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jocke0406/Back-MyM/internal/config"
	"github.com/jocke0406/Back-MyM/internal/handlers"
	"github.com/jocke0406/Back-MyM/internal/middleware"
	"github.com/jocke0406/Back-MyM/internal/repository"
	"github.com/jocke0406/Back-MyM/internal/services"
	"github.com/jocke0406/Back-MyM/internal/store/mongodb"
	"github.com/jocke0406/Back-MyM/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	cfg := config.Load()

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("could not reach MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	db := client.Database(cfg.MongoDatabase)
	usersStore := mongodb.NewUsers(db)
	cerclesStore := mongodb.NewCercles(db)
	locationsStore := mongodb.NewLocations(db)
	eventsStore := mongodb.NewEvents(db)

	usersRepo := repository.NewUsers(usersStore, cerclesStore, eventsStore, logger)
	cerclesRepo := repository.NewCercles(cerclesStore, usersStore, locationsStore, eventsStore, logger)
	locationsRepo := repository.NewLocations(locationsStore, eventsStore, usersStore, logger)
	eventsRepo := repository.NewEvents(eventsStore, locationsStore, usersStore, cerclesStore, logger)

	jwtm := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	resets := utils.NewResetTokens(cfg.ResetTokenTTL)

	var mailer services.Mailer
	if cfg.SMTPHost != "" {
		mailer = services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		mailer = &services.LogMailer{Log: logger}
	}

	h := handlers.NewHandler(usersRepo, cerclesRepo, locationsRepo, eventsRepo,
		jwtm, mailer, resets, cfg.AdminEmail, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow).Middleware())

	h.RegisterRoutes(r)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
