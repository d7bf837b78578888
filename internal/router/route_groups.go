package router

import (
	"membermgr_backend/internal/handlers"
	"membermgr_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up the unauthenticated auth routes.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
	group.POST("/refresh-token", authHandler.RefreshToken)
}

// SetupAuthenticatedAuthRoutes sets up auth routes that require a valid token.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupMemberRoutes sets up the member CRUD, search, membership and letter routes.
func SetupMemberRoutes(
	authenticatedGroup *gin.RouterGroup,
	memberHandler *handlers.MemberHandler,
	membershipHandler *handlers.MembershipHandler,
	letterHandler *handlers.LetterHandler,
) {
	memberRoutes := authenticatedGroup.Group("/members")
	memberRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		memberRoutes.GET("", memberHandler.GetMembers)
		memberRoutes.POST("", memberHandler.CreateMember)
		memberRoutes.PUT("/:member_id", memberHandler.UpdateMember)
		memberRoutes.DELETE("/:member_id", memberHandler.DeleteMember)

		memberRoutes.GET("/search/reference/:reference_number", memberHandler.GetMemberByReference)
		memberRoutes.GET("/search/full_name/:name", memberHandler.SearchByFullName)
		memberRoutes.GET("/search/name/:name", memberHandler.SearchByName)
		memberRoutes.GET("/search/city/:city", memberHandler.SearchByCity)
		memberRoutes.GET("/search/postal/:postal_code", memberHandler.SearchByPostalCode)

		memberRoutes.POST("/:member_id/memberships", membershipHandler.CreateMembershipForMember)
		memberRoutes.POST("/:member_id/generate_welcome_letter", letterHandler.GenerateWelcomeLetter)
	}
}

// SetupRegistrationRoutes sets up the registration flow: member plus an
// unpaid current-year membership in a single transaction.
func SetupRegistrationRoutes(authenticatedGroup *gin.RouterGroup, memberHandler *handlers.MemberHandler) {
	registrationRoutes := authenticatedGroup.Group("/registrations")
	registrationRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		registrationRoutes.POST("", memberHandler.RegisterMember)
	}
}

// SetupMembershipRoutes sets up direct membership lookups.
func SetupMembershipRoutes(authenticatedGroup *gin.RouterGroup, membershipHandler *handlers.MembershipHandler) {
	membershipRoutes := authenticatedGroup.Group("/memberships")
	membershipRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		membershipRoutes.GET("/:membership_id", membershipHandler.GetMembershipByID)
	}
}

// SetupMiscRoutes sets up the miscellaneous status routes.
func SetupMiscRoutes(group *gin.RouterGroup) {
	group.GET("/", handlers.Root)
	group.GET("/health", handlers.HealthCheck)
	group.GET("/version", handlers.GetVersion)
	group.GET("/info", handlers.GetInfo)
}
