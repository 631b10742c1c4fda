package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"mealplanner/domain"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Engine thresholds
	FavoritesThreshold    float64 `yaml:"FAVORITES_THRESHOLD"`
	FavoritesMinRaters    int     `yaml:"FAVORITES_MIN_RATERS"`
	RotationPeriodDays    int     `yaml:"ROTATION_PERIOD_DAYS"`
	ExpirationWarningDays int     `yaml:"EXPIRATION_WARNING_DAYS"`
	LowStockPercent       float64 `yaml:"LOW_STOCK_PERCENT"`
	QuickMealMaxMinutes   int     `yaml:"QUICK_MEAL_MAX_MINUTES"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	os.Setenv("JWT_SECRET", config.JWTSecret)
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	default:
		return ""
	}
}

// EngineSettings materializes the configured thresholds, falling back to the
// defaults for anything left unset in config.yaml.
func EngineSettings() domain.EngineSettings {
	settings := domain.DefaultEngineSettings()
	if config.FavoritesThreshold > 0 {
		settings.FavoritesThreshold = config.FavoritesThreshold
	}
	if config.FavoritesMinRaters > 0 {
		settings.FavoritesMinRaters = config.FavoritesMinRaters
	}
	if config.RotationPeriodDays > 0 {
		settings.RotationPeriodDays = config.RotationPeriodDays
	}
	if config.ExpirationWarningDays > 0 {
		settings.ExpirationWarningDays = config.ExpirationWarningDays
	}
	if config.LowStockPercent > 0 {
		settings.LowStockPercent = config.LowStockPercent
	}
	if config.QuickMealMaxMinutes > 0 {
		settings.QuickMealMaxMinutes = config.QuickMealMaxMinutes
	}
	return settings
}
