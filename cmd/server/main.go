// @title           Visual Library API
// @version         1.0.0
// @description     Backend API for the Visual Library portfolio: gallery browsing, project intake from links, archives and design tools, engagement (reviews, chat, inquiries) and owner administration.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"visual-library-backend/docs"
	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/config"
	"visual-library-backend/internal/database"
	"visual-library-backend/internal/figma"
	"visual-library-backend/internal/handlers"
	"visual-library-backend/internal/importer"
	"visual-library-backend/internal/intake"
	"visual-library-backend/internal/middleware"
	"visual-library-backend/internal/notify"
	"visual-library-backend/internal/objectstore"
	"visual-library-backend/internal/services"
	"visual-library-backend/internal/supabase"
	"visual-library-backend/internal/theme"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	configureLogging(cfg)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if baseURL, err := url.Parse(cfg.BaseURL); err == nil && baseURL.Host != "" {
		docs.SwaggerInfo.Host = baseURL.Host
		if baseURL.Scheme == "https" {
			docs.SwaggerInfo.Schemes = []string{"https", "http"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http", "https"}
		}
	}

	ctx := context.Background()

	// Database client and migrations. The server still starts without DATABASE_URL:
	// the gallery falls back to sample projects and other data routes answer 500.
	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, database features are disabled")
	} else {
		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize database client")
		} else {
			defer dbClient.Close()
			runMigrations(ctx, cfg.DatabaseURL)
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// Object storage
	objects, err := newObjectStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to initialize object storage")
	}

	// AI and connectors
	aiClient, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize AI client")
	}
	importFunction := importer.NewFunction(aiClient)
	importClient := importer.NewClient(cfg.ImportFunctionURL, nil)
	figmaClient := figma.NewClient(cfg.FigmaAPIBaseURL)
	mailer := notify.NewMailer(cfg.ResendAPIKey, cfg.ResendFromEmail)
	if !mailer.Enabled() {
		log.Info().Msg("RESEND_API_KEY not set, emails are disabled")
	}

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Supabase client")
	}
	authClient := supabaseClient.Profiles()
	realtimeClient := supabaseClient.Realtime(httpClient)

	// Services and the intake pipeline need the database; they stay nil without it
	// and their routes are guarded by handlers.RequireDatabase.
	var (
		pipeline   *intake.Pipeline
		admin      *services.AdminService
		chat       *services.ChatService
		proofing   *services.ProofingService
		engagement *services.EngagementService
		assets     *services.AssetService
		insights   *services.InsightService
		pressKit   *services.PressKitService
		projects   services.ProjectLister
	)
	if dbClient != nil {
		pipeline = intake.NewPipeline(intake.Dependencies{
			Generator: aiClient,
			Store:     objects,
			Projects:  dbClient,
			Importer:  importClient,
			Designs:   figmaClient,
			Tokens:    authClient,
			Publisher: realtimeClient,
		})
		admin = services.NewAdminService(dbClient, cfg.AdminUserIDs...)
		chat = services.NewChatService(dbClient, realtimeClient)
		proofing = services.NewProofingService(dbClient, mailer, cfg.OwnerEmail)
		engagement = services.NewEngagementService(dbClient, mailer)
		assets = services.NewAssetService(dbClient, objects, aiClient)
		insights = services.NewInsightService(dbClient, aiClient)
		pressKit = services.NewPressKitService(dbClient, "Visual Library")
		projects = dbClient
	}
	profiles := services.NewProfileService(authClient, projects, theme.NewDeriver(aiClient))

	// Initialize handlers
	var pinger handlers.Pinger
	if dbClient != nil {
		pinger = dbClient
	}
	healthHandler := handlers.NewHealthHandler(pinger)
	galleryHandler := handlers.NewGalleryHandler(dbClient)
	projectsHandler := handlers.NewProjectsHandler(dbClient, chat, assets)
	publicHandler := handlers.NewPublicHandler(handlers.PublicDependencies{
		DB:         dbClient,
		Engagement: engagement,
		Proofing:   proofing,
		PressKit:   pressKit,
		Insights:   insights,
		Import:     importFunction,
	})
	intakeHandler := handlers.NewIntakeHandler(pipeline)
	adminHandler := handlers.NewAdminHandler(handlers.AdminDependencies{
		DB:        dbClient,
		Admin:     admin,
		Chat:      chat,
		Insights:  insights,
		Assets:    assets,
		Publisher: realtimeClient,
	})
	profileHandler := handlers.NewProfileHandler(profiles)

	auth := middleware.NewAuth(cfg)
	requireDB := handlers.RequireDatabase(dbClient)

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AcceptedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", healthHandler.Check)

	api := router.Group("/api/v1")

	// Public routes; a valid token identifies the owner for private projects.
	public := api.Group("", auth.OptionalAuth())
	public.GET("/gallery", galleryHandler.List)
	public.GET("/connectors", publicHandler.ListConnectors)
	public.POST("/functions/import", publicHandler.Import)

	publicData := public.Group("", requireDB)
	publicData.GET("/gallery/projects/:project_id", galleryHandler.Get)
	publicData.POST("/projects/:project_id/views", galleryHandler.TrackView)
	publicData.PATCH("/views/:view_id", galleryHandler.UpdateView)
	publicData.POST("/projects/:project_id/clicks", galleryHandler.TrackClick)
	publicData.GET("/projects/:project_id/reviews", projectsHandler.ListReviews)
	publicData.GET("/projects/:project_id/audits", projectsHandler.ListAudits)
	publicData.GET("/projects/:project_id/milestones", projectsHandler.ListMilestones)
	publicData.GET("/projects/:project_id/visuals", projectsHandler.ListVisuals)
	publicData.GET("/projects/:project_id/messages", projectsHandler.ListMessages)
	publicData.GET("/testimonials", publicHandler.ListTestimonials)
	publicData.POST("/inquiries", publicHandler.CreateInquiry)
	publicData.POST("/newsletter", publicHandler.Subscribe)
	publicData.GET("/proofing/:project_id", publicHandler.GetProofing)
	publicData.POST("/proofing/:project_id/approve", publicHandler.Approve)
	publicData.GET("/press-kit", publicHandler.PressKit)
	publicData.POST("/assistant/chat", publicHandler.Ask)

	// Signed-in visitors
	member := api.Group("", auth.RequireAuth(), requireDB)
	member.POST("/projects/:project_id/reviews", projectsHandler.CreateReview)
	member.POST("/projects/:project_id/suggestions", projectsHandler.CreateSuggestion)
	member.POST("/projects/:project_id/messages", projectsHandler.CreateMessage)
	member.POST("/projects/:project_id/visuals", projectsHandler.CreateVisual)

	// Owner administration
	adminGroup := api.Group("/admin", auth.RequireAuth())
	adminGroup.GET("/profile", profileHandler.Get)
	adminGroup.PUT("/profile", profileHandler.Update)
	adminGroup.POST("/profile/theme", profileHandler.SyncTheme)

	adminData := adminGroup.Group("", requireDB)
	adminData.POST("/intake/generate", intakeHandler.Generate)
	adminData.POST("/intake/sync", intakeHandler.Sync)
	adminData.POST("/intake/upload", intakeHandler.Upload)
	adminData.POST("/intake/save", intakeHandler.Save)

	adminData.GET("/projects", adminHandler.ListProjects)
	adminData.PUT("/projects/:project_id", adminHandler.UpdateProject)
	adminData.PATCH("/projects/:project_id/visibility", adminHandler.SetVisibility)
	adminData.POST("/projects/:project_id/rewrite", adminHandler.Rewrite)
	adminData.DELETE("/projects/:project_id", adminHandler.DeleteProject)
	adminData.POST("/projects/:project_id/audits", adminHandler.CreateAudit)
	adminData.POST("/projects/:project_id/audits/generate", adminHandler.GenerateAudit)
	adminData.POST("/projects/:project_id/milestones", adminHandler.CreateMilestone)
	adminData.DELETE("/messages/projects/:project_id", adminHandler.ClearChat)

	adminData.POST("/testimonials", adminHandler.CreateTestimonial)
	adminData.PATCH("/reviews/:id/status", adminHandler.UpdateReviewStatus)
	adminData.PATCH("/suggestions/:id/status", adminHandler.UpdateSuggestionStatus)
	adminData.GET("/overview", adminHandler.Overview)
	adminData.GET("/analytics", adminHandler.Analytics)
	adminData.GET("/chats", adminHandler.Chats)
	adminData.POST("/recommendations", adminHandler.Recommendations)
	adminData.GET("/:collection", adminHandler.ListCollection)
	adminData.DELETE("/:collection/:id", adminHandler.DeleteFromCollection)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("environment", cfg.Environment).Msg("server starting")
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error shutting down the server")
		} else {
			log.Info().Msg("server gracefully shut down")
		}
	}
}

// configureLogging switches to JSON output in production and applies LOG_LEVEL.
func configureLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func runMigrations(ctx context.Context, dbURL string) {
	migrator, err := database.NewMigrator(dbURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize migrator")
		return
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		log.Warn().Err(err).Msg("migration failed")
	}
}

// newObjectStore picks the asset backend named by STORAGE_BACKEND.
func newObjectStore(ctx context.Context, cfg *config.Config) (services.ObjectStore, error) {
	if cfg.StorageBackend == config.StorageBackendS3 {
		return objectstore.NewS3Store(ctx, objectstore.Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}
	return supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
}
