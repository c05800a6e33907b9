package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string

	// Location used to combine a plan's cutoff date and time into an instant.
	Location *time.Location

	// API Config (Optional for CLI, required for the API server)
	JWTSecret string
	Port      string

	// Telegram Config (Optional; notifications are disabled without a token)
	TelegramBotToken string

	// School menu scraping (Optional)
	SchoolMenuURL string

	// Shopping item translation (Optional; requires a Gemini key)
	GeminiAPIKey        string
	TranslationLanguage string

	// Probability that a lunch/dinner slot is built from components.
	ComponentMealProbability float64
}

// DefaultComponentMealProbability is the share of eligible slots resolved by
// the component composer instead of a recipe.
const DefaultComponentMealProbability = 0.3

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH environment variable not set")
	}

	location := time.Local
	if tz := os.Getenv("PLAN_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid PLAN_TIMEZONE %q: %w", tz, err)
		}
		location = loc
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	componentProbability := DefaultComponentMealProbability
	if raw := os.Getenv("COMPONENT_MEAL_PROBABILITY"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || p < 0 || p > 1 {
			return nil, fmt.Errorf("COMPONENT_MEAL_PROBABILITY must be a number between 0 and 1, got %q", raw)
		}
		componentProbability = p
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	translationLanguage := os.Getenv("TRANSLATION_LANGUAGE")
	if translationLanguage != "" && geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	return &Config{
		DatabasePath:             databasePath,
		Location:                 location,
		JWTSecret:                os.Getenv("JWT_SECRET"),
		Port:                     port,
		TelegramBotToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		SchoolMenuURL:            os.Getenv("SCHOOL_MENU_URL"),
		GeminiAPIKey:             geminiAPIKey,
		TranslationLanguage:      translationLanguage,
		ComponentMealProbability: componentProbability,
	}, nil
}
