package main

import (
	"log"

	"membermgr_backend/internal/config"
	"membermgr_backend/internal/database"
	"membermgr_backend/internal/middleware"
	"membermgr_backend/internal/router"
	"membermgr_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()
	utils.LogInfo("Configuration loaded", map[string]interface{}{"env": cfg.AppEnv})

	database.InitDB(cfg.DatabaseURL(), cfg.DBSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"database": cfg.DBName})

	engine := gin.Default()
	engine.Use(utils.GinLogger())
	engine.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, database.GetDB(), cfg)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})
	if err := engine.Run(":" + cfg.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
