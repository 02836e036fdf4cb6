package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"stackit/internal/config"
	"stackit/internal/db"
	"stackit/internal/handlers"
	"stackit/internal/middleware"
	"stackit/internal/repository"
	"stackit/internal/router"
	"stackit/internal/services"
	"stackit/internal/utils"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Migrate the database, seed the default tags and serve HTTP.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	tags, err := db.LoadTagSeed(cfg.TagsFile)
	if err != nil {
		return err
	}
	if err := db.Bootstrap(conn, tags); err != nil {
		return err
	}

	r := newEngine(cfg, repository.New(conn))

	log.Printf("StackIt server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// newEngine wires services, sessions, templates and routes.
func newEngine(cfg *config.Config, repo repository.Repository) *gin.Engine {
	cache := utils.NewCache(cfg.CacheSize)

	authService := services.NewAuthService(repo)
	userService := services.NewUserService(repo)
	questionService := services.NewQuestionService(repo, cache, cfg.NotifyUserID)
	answerService := services.NewAnswerService(repo, cache)
	notificationService := services.NewNotificationService(repo)

	r := gin.New()
	r.Use(gin.Logger(), middleware.RequestID(), middleware.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.SessionName, store))

	r.HTMLRender = loadTemplates(cfg.TemplatesDir)

	// Static Assets
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		r.Static("/static", cfg.StaticDir)
	}

	r.Use(middleware.LoadUser(authService, notificationService))

	router.RegisterRoutes(r, router.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Questions:     handlers.NewQuestionHandler(questionService),
		Answers:       handlers.NewAnswerHandler(answerService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Admin:         handlers.NewAdminHandler(questionService, answerService, userService),
	})
	return r
}
