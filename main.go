package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"pixelforge/api"
	"pixelforge/config"
	"pixelforge/database"
	"pixelforge/middleware"
	"pixelforge/models"
	"pixelforge/repository"
	"pixelforge/services"

	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()

	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	runMigrations(db)

	if err := os.MkdirAll(config.AppConfig.Uploads.Dir, 0755); err != nil {
		log.Fatalf("FATAL: [Main] Failed to create uploads directory: %v", err)
	}

	// Repositories
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	viewRepo := repository.NewViewRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	contactRepo := repository.NewContactRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Outbound channels; nil when unconfigured, services degrade gracefully.
	var mailer services.Mailer
	if m := services.NewSMTPMailer(
		config.AppConfig.Mail.Host,
		config.AppConfig.Mail.Port,
		config.AppConfig.Mail.Username,
		config.AppConfig.Mail.Password,
		config.AppConfig.Mail.From,
	); m != nil {
		mailer = m
	}
	var chat services.ChatNotifier
	if n := services.NewSlackNotifier(config.AppConfig.Slack.WebhookURL); n != nil {
		chat = n
	}

	// Services
	postService := services.NewPostService(postRepo, commentRepo, ratingRepo, viewRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, config.AppConfig.Moderation.AutoApprove)
	ratingService := services.NewRatingService(ratingRepo, postRepo)
	contactService := services.NewContactService(contactRepo, mailer, chat, config.AppConfig.Mail.AdminEmail)
	socialService := services.NewSocialService(settingsRepo)
	log.Println("INFO: [Main] Services initialized.")

	seedMastodonSettings(settingsRepo, socialService)

	apiHandler := api.NewAPIHandler(
		postService,
		commentService,
		ratingService,
		contactService,
		socialService,
		categoryRepo,
		db,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	registerRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.Post{},
		&models.Comment{},
		&models.Rating{},
		&models.Category{},
		&models.PostView{},
		&models.ContactMessage{},
		&models.SiteSetting{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

// seedMastodonSettings copies environment-provided Mastodon credentials into
// the settings store on first start. Stored settings win afterwards, so admin
// edits survive restarts.
func seedMastodonSettings(settingsRepo repository.SettingsRepository, socialService services.SocialService) {
	instance := config.AppConfig.Mastodon.Instance
	token := config.AppConfig.Mastodon.AccessToken
	if instance == "" || token == "" {
		return
	}
	stored, err := settingsRepo.GetSetting(models.SettingMastodonInstance)
	if err != nil {
		log.Printf("WARN: [Main] Could not read stored Mastodon settings: %v", err)
		return
	}
	if stored != "" {
		return
	}
	if err := socialService.UpdateSettings(instance, token, true); err != nil {
		log.Printf("WARN: [Main] Failed to seed Mastodon settings from environment: %v", err)
		return
	}
	log.Printf("INFO: [Main] Seeded Mastodon settings from environment (instance '%s').", instance)
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	contactLimiter := middleware.NewMemoryCounterStore(
		config.AppConfig.RateLimit.MaxRequests,
		time.Duration(config.AppConfig.RateLimit.WindowMinutes)*time.Minute,
	)
	requireAdmin := middleware.RequireAdmin(config.AppConfig.Auth.JWTSecret)

	r.Static(config.AppConfig.Uploads.PublicURL, config.AppConfig.Uploads.Dir)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/auth/login", handler.LoginHandler)

		// Public blog surface
		apiGroup.GET("/posts", handler.ListPostsHandler)
		apiGroup.GET("/posts/:slug", handler.GetPostHandler)
		apiGroup.POST("/posts/:slug/view", handler.RecordViewHandler)
		apiGroup.GET("/posts/:slug/views", handler.GetViewCountHandler)
		apiGroup.GET("/posts/:slug/comments", handler.ListCommentsHandler)
		apiGroup.POST("/posts/:slug/comments", handler.CreateCommentHandler)
		apiGroup.GET("/posts/:slug/ratings", handler.ListRatingsHandler)
		apiGroup.POST("/posts/:slug/ratings", handler.UpsertRatingHandler)
		apiGroup.GET("/categories", handler.ListCategoriesHandler)

		apiGroup.POST("/contact",
			middleware.RateLimit(contactLimiter, config.AppConfig.RateLimit.MaxRequests),
			handler.ContactHandler)

		// Admin surface
		admin := apiGroup.Group("", requireAdmin)
		{
			admin.POST("/posts", handler.CreatePostHandler)
			admin.PUT("/posts/:slug", handler.UpdatePostHandler)
			admin.DELETE("/posts/:slug", handler.DeletePostHandler)
			admin.PUT("/comments/:id/approval", handler.SetCommentApprovalHandler)
			admin.DELETE("/comments/:id", handler.DeleteCommentHandler)
			admin.DELETE("/posts/:slug/ratings/:userID", handler.DeleteRatingHandler)
			admin.POST("/categories", handler.CreateCategoryHandler)
			admin.DELETE("/categories/:id", handler.DeleteCategoryHandler)
			admin.POST("/upload", handler.UploadHandler)
			admin.GET("/contact", handler.ListContactMessagesHandler)
			admin.GET("/settings/mastodon", handler.GetMastodonSettingsHandler)
			admin.PUT("/settings/mastodon", handler.UpdateMastodonSettingsHandler)
			admin.POST("/mastodon/post", handler.PostMastodonStatusHandler)
			admin.POST("/mastodon/test", handler.TestMastodonConnectionHandler)
		}
	}
}
