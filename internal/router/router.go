package router

import (
	"database/sql"

	"membermgr_backend/internal/config"
	"membermgr_backend/internal/handlers"
	"membermgr_backend/internal/middleware"
	"membermgr_backend/internal/pdf"
	"membermgr_backend/internal/repositories"
	"membermgr_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config) {
	pricing := cfg.Pricing()

	// Repositories
	memberRepo := repositories.NewMemberRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	authRepo := repositories.NewAuthRepository(db)

	// Services
	memberService := services.NewMemberService(memberRepo, membershipRepo, db, pricing)
	membershipService := services.NewMembershipService(membershipRepo, memberRepo, db, pricing)
	letterRenderer := pdf.NewWelcomeLetterRenderer(cfg.LetterOutputDir)
	letterService := services.NewLetterService(memberRepo, membershipRepo, letterRenderer, pricing)
	authService := services.NewAuthService(authRepo, db)

	// Handlers
	memberHandler := handlers.NewMemberHandler(memberService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	letterHandler := handlers.NewLetterHandler(letterService)
	authHandler := handlers.NewAuthHandler(authService)

	// Public surface
	engine.GET("/", handlers.Root)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	SetupMiscRoutes(engine.Group("/misc"))

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupMemberRoutes(authenticated, memberHandler, membershipHandler, letterHandler)
		SetupRegistrationRoutes(authenticated, memberHandler)
		SetupMembershipRoutes(authenticated, membershipHandler)
	}
}
