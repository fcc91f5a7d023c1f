package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// mail transport: log-only unless SMTP is configured
	var codeMailer mailer.Mailer = mailer.NewLogMailer(logger)
	if cfg.SMTPHost != "" {
		codeMailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}

	// services
	authService := service.NewAuthService(userRepo, codeMailer, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	r := gin.Default()

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth", middleware.RateLimit(rate.Limit(cfg.AuthRatePerSecond), cfg.AuthRateBurst))
	handler.NewAuthHandler(authService).RegisterRoutes(authGroup)

	// account surface requires a token on every route
	userGroup := api.Group("", middleware.AuthMiddleware(authService))
	handler.NewUserHandler(userService).RegisterRoutes(userGroup)

	// catalog and review surface: reads open, writes gated per route
	openGroup := api.Group("", middleware.OptionalAuth(authService))
	handler.NewCategoryHandler(categoryService).RegisterRoutes(openGroup)
	handler.NewGenreHandler(genreService).RegisterRoutes(openGroup)
	handler.NewTitleHandler(titleService).RegisterRoutes(openGroup)
	handler.NewReviewHandler(reviewService).RegisterRoutes(openGroup)
	handler.NewCommentHandler(commentService).RegisterRoutes(openGroup)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
