// config.go - Configuration loaded from environment variables

package configs

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	// Telegram Configuration
	TELEGRAM_BOT_TOKEN string
	TELEGRAM_BASE_URL  string
	POLL_TIMEOUT       int // long-poll timeout for getUpdates in seconds
	DOWNLOAD_DIR       string
	MAX_DOWNLOAD_BYTES int64

	// LLM Configuration
	LLM_PROVIDER    string // "groq" or "gemini"
	GROQ_API_KEY    string
	GROQ_BASE_URL   string
	GROQ_MODEL_NAME string

	GEMINI_API_KEY    string
	GEMINI_MODEL_NAME string

	EXTRACT_TIMEOUT  int // AI field extraction timeout in seconds
	FOLLOWUP_TIMEOUT int // follow-up answering timeout in seconds

	// LLM rate limiting (token bucket)
	LLM_RATE_BURST          int
	LLM_RATE_REFILL_SECONDS int

	// OCR Configuration
	OCR_LANGUAGE string
	OCR_TIMEOUT  int // OCR timeout in seconds

	// Image preprocessing settings
	ENABLE_IMAGE_PREPROCESSING bool
	MAX_IMAGE_DIMENSION        int

	// Persistence Sink Configuration
	SINK_BACKEND              string // "sheets" or "mongo"
	GOOGLE_SHEET_ID           string
	SHEET_NAME                string
	SHEET_TIMEZONE            string
	GOOGLE_CREDENTIALS_FILE   string
	GOOGLE_CREDENTIALS_BASE64 string

	// MongoDB Configuration (alternative sink backend)
	MONGO_URI     string
	MONGO_DB_NAME string

	// Server Configuration
	PORT string
)

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Required: Telegram bot token
	TELEGRAM_BOT_TOKEN = getEnv("TELEGRAM_BOT_TOKEN", "")
	if TELEGRAM_BOT_TOKEN == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	TELEGRAM_BASE_URL = getEnv("TELEGRAM_BASE_URL", "https://api.telegram.org")
	POLL_TIMEOUT = getEnvInt("POLL_TIMEOUT", 30)
	DOWNLOAD_DIR = getEnv("DOWNLOAD_DIR", "/tmp/cardscan")
	MAX_DOWNLOAD_BYTES = int64(getEnvInt("MAX_DOWNLOAD_MB", 20)) * 1024 * 1024

	// LLM provider selection
	LLM_PROVIDER = getEnv("LLM_PROVIDER", "groq")

	GROQ_API_KEY = getEnv("GROQ_API_KEY", "")
	GROQ_BASE_URL = getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	GROQ_MODEL_NAME = getEnv("GROQ_MODEL_NAME", "llama3-70b-8192")

	GEMINI_API_KEY = getEnv("GEMINI_API_KEY", "")
	GEMINI_MODEL_NAME = getEnv("GEMINI_MODEL_NAME", "gemini-2.5-flash")

	if LLM_PROVIDER == "groq" && GROQ_API_KEY == "" {
		log.Fatal("GROQ_API_KEY environment variable is required when LLM_PROVIDER=groq")
	}
	if LLM_PROVIDER == "gemini" && GEMINI_API_KEY == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required when LLM_PROVIDER=gemini")
	}

	EXTRACT_TIMEOUT = getEnvInt("EXTRACT_TIMEOUT", 20)
	FOLLOWUP_TIMEOUT = getEnvInt("FOLLOWUP_TIMEOUT", 15)

	LLM_RATE_BURST = getEnvInt("LLM_RATE_BURST", 12)
	LLM_RATE_REFILL_SECONDS = getEnvInt("LLM_RATE_REFILL_SECONDS", 5)

	// OCR
	OCR_LANGUAGE = getEnv("OCR_LANGUAGE", "eng")
	OCR_TIMEOUT = getEnvInt("OCR_TIMEOUT", 30)

	// Image Processing
	ENABLE_IMAGE_PREPROCESSING = getEnvBool("ENABLE_IMAGE_PREPROCESSING", true)
	MAX_IMAGE_DIMENSION = getEnvInt("MAX_IMAGE_DIMENSION", 2000)

	// Persistence sink
	SINK_BACKEND = getEnv("SINK_BACKEND", "sheets")
	GOOGLE_SHEET_ID = getEnv("GOOGLE_SHEET_ID", "")
	SHEET_NAME = getEnv("SHEET_NAME", "Sheet1")
	SHEET_TIMEZONE = getEnv("SHEET_TIMEZONE", "Asia/Kolkata")
	GOOGLE_CREDENTIALS_FILE = getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	GOOGLE_CREDENTIALS_BASE64 = getEnv("GOOGLE_CREDENTIALS_BASE64", "")

	if SINK_BACKEND == "sheets" && GOOGLE_SHEET_ID == "" {
		log.Fatal("GOOGLE_SHEET_ID environment variable is required when SINK_BACKEND=sheets")
	}

	// MongoDB Configuration
	MONGO_URI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	MONGO_DB_NAME = getEnv("MONGO_DB_NAME", "cardscan")

	PORT = getEnv("PORT", "8080")

	log.Println("✓ Configuration loaded successfully")
}

// EnsureCredentialsFile materializes the Google service-account credentials
// file from GOOGLE_CREDENTIALS_BASE64 when it does not exist on disk yet.
func EnsureCredentialsFile() error {
	if _, err := os.Stat(GOOGLE_CREDENTIALS_FILE); err == nil {
		return nil
	}
	if GOOGLE_CREDENTIALS_BASE64 == "" {
		log.Fatal("GOOGLE_CREDENTIALS_BASE64 not found and no credentials file on disk")
	}
	decoded, err := base64.StdEncoding.DecodeString(GOOGLE_CREDENTIALS_BASE64)
	if err != nil {
		return err
	}
	return os.WriteFile(GOOGLE_CREDENTIALS_FILE, decoded, 0o600)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
