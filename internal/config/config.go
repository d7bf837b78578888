package config

import (
	"fmt"
	"strings"

	"membermgr_backend/internal/models"
	"membermgr_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config holds all environment-sourced settings for the service.
type Config struct {
	AppEnv string
	Port   string

	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBSchemaPath string

	// Business settings. Flags on a membership are derived from these values
	// at write time and are not re-derived if the settings change later.
	StandardMembershipFee  int
	UnpaidMembershipAmount int

	LetterOutputDir    string
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment. APP_ENV selects which .env
// file is loaded first (.env.development, .env.test, .env.production); OS-level
// variables always win over file values. A missing .env file is not an error.
func Load() *Config {
	appEnv := utils.Getenv("APP_ENV", EnvDevelopment)
	_ = godotenv.Load(".env." + appEnv)

	cfg := &Config{
		AppEnv: appEnv,
		Port:   utils.Getenv("PORT", "8080"),

		DBHost:       utils.Getenv("DB_HOST", "localhost"),
		DBPort:       utils.Getenv("DB_PORT", "5432"),
		DBUser:       utils.Getenv("DB_USER", "membermgr_user"),
		DBPassword:   utils.Getenv("DB_PASSWORD", "membermgr_password"),
		DBName:       utils.Getenv("DB_NAME", "members_db"),
		DBSSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
		DBSchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),

		StandardMembershipFee:  utils.GetenvInt("STANDARD_MEMBERSHIP_FEE", 25),
		UnpaidMembershipAmount: utils.GetenvInt("UNPAID_MEMBERSHIP_AMOUNT", 0),

		LetterOutputDir: utils.Getenv("LETTER_OUTPUT_DIR", "letters"),
	}

	corsOrigins := utils.Getenv("CORS_ALLOWED_ORIGINS", "")
	if corsOrigins != "" {
		cfg.CORSAllowedOrigins = strings.Split(corsOrigins, ",")
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	return cfg
}

// Pricing returns the fee settings as an explicit value passed into write
// paths, keeping flag derivation deterministic per call.
func (c *Config) Pricing() models.MembershipPricing {
	return models.MembershipPricing{
		StandardFee:     c.StandardMembershipFee,
		UnpaidThreshold: c.UnpaidMembershipAmount,
	}
}

// DatabaseURL formats the config into a PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
