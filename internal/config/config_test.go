package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Success", func(t *testing.T) {
		setEnv("DATABASE_PATH", "data/test.db")
		setEnv("PLAN_TIMEZONE", "Europe/Paris")
		setEnv("PORT", "")
		setEnv("COMPONENT_MEAL_PROBABILITY", "")
		setEnv("TRANSLATION_LANGUAGE", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/test.db" {
			t.Errorf("Expected DatabasePath to be 'data/test.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.Location.String() != "Europe/Paris" {
			t.Errorf("Expected Location 'Europe/Paris', got '%s'", cfg.Location)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
		}
		if cfg.ComponentMealProbability != DefaultComponentMealProbability {
			t.Errorf("Expected default component probability, got %v", cfg.ComponentMealProbability)
		}
	})

	t.Run("MissingDatabasePath", func(t *testing.T) {
		setEnv("DATABASE_PATH", "x")
		os.Unsetenv("DATABASE_PATH")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing DATABASE_PATH, got nil")
		}
		expectedError := "DATABASE_PATH environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidTimezone", func(t *testing.T) {
		setEnv("DATABASE_PATH", "data/test.db")
		setEnv("PLAN_TIMEZONE", "Mars/Olympus")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for an unknown timezone, got nil")
		}
	})

	t.Run("InvalidComponentProbability", func(t *testing.T) {
		setEnv("DATABASE_PATH", "data/test.db")
		setEnv("PLAN_TIMEZONE", "")
		setEnv("COMPONENT_MEAL_PROBABILITY", "1.5")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for an out-of-range probability, got nil")
		}
	})

	t.Run("TranslationWithoutGeminiKey", func(t *testing.T) {
		setEnv("DATABASE_PATH", "data/test.db")
		setEnv("PLAN_TIMEZONE", "")
		setEnv("COMPONENT_MEAL_PROBABILITY", "")
		setEnv("TRANSLATION_LANGUAGE", "fr")
		setEnv("GEMINI_API_KEY", "")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for translation without GEMINI_API_KEY, got nil")
		}
		expectedError := "GEMINI_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}
