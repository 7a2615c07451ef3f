// main.go - The entry point: wiring, health server, poll loop, shutdown.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cardscanbot/cardscan/configs"
	"github.com/cardscanbot/cardscan/internal/bot"
	"github.com/cardscanbot/cardscan/internal/llm"
	"github.com/cardscanbot/cardscan/internal/ocr"
	"github.com/cardscanbot/cardscan/internal/ratelimit"
	"github.com/cardscanbot/cardscan/internal/sink"
	"github.com/cardscanbot/cardscan/internal/state"
)

func main() {
	// Step 0: Load configuration from environment variables
	configs.LoadConfig()

	// Step 0.5: Set production mode
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Step 1: Create the DOWNLOAD_DIR folder if it doesn't exist
	if err := os.MkdirAll(configs.DOWNLOAD_DIR, 0755); err != nil {
		log.Fatalf("Failed to create download directory: %v", err)
	}

	// Step 1.5: Materialize Google credentials when the Sheets sink is active
	if configs.SINK_BACKEND == "sheets" {
		if err := configs.EnsureCredentialsFile(); err != nil {
			log.Fatalf("Failed to prepare Google credentials: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Step 2: Build the LLM provider and its pipeline stages
	limiter := ratelimit.NewRateLimiter(
		configs.LLM_RATE_BURST,
		time.Duration(configs.LLM_RATE_REFILL_SECONDS)*time.Second,
	)
	provider, err := llm.NewProvider(llm.ProviderConfig{
		Provider:     configs.LLM_PROVIDER,
		GroqAPIKey:   configs.GROQ_API_KEY,
		GroqBaseURL:  configs.GROQ_BASE_URL,
		GroqModel:    configs.GROQ_MODEL_NAME,
		GeminiAPIKey: configs.GEMINI_API_KEY,
		GeminiModel:  configs.GEMINI_MODEL_NAME,
		Limiter:      limiter,
	})
	if err != nil {
		log.Fatalf("Failed to create LLM provider: %v", err)
	}
	extractor := llm.NewExtractor(provider, time.Duration(configs.EXTRACT_TIMEOUT)*time.Second)
	answerer := llm.NewAnswerer(provider, time.Duration(configs.FOLLOWUP_TIMEOUT)*time.Second)

	// Step 3: OCR engine, conversation state and the contact sink
	engine := ocr.NewTesseractEngine(
		configs.OCR_LANGUAGE,
		configs.ENABLE_IMAGE_PREPROCESSING,
		configs.MAX_IMAGE_DIMENSION,
		time.Duration(configs.OCR_TIMEOUT)*time.Second,
	)
	store := state.NewStore()
	contactSink, err := sink.New(ctx, sink.Config{
		Backend:         configs.SINK_BACKEND,
		CredentialsFile: configs.GOOGLE_CREDENTIALS_FILE,
		SpreadsheetID:   configs.GOOGLE_SHEET_ID,
		SheetName:       configs.SHEET_NAME,
		MongoURI:        configs.MONGO_URI,
		MongoDBName:     configs.MONGO_DB_NAME,
		Timezone:        configs.SHEET_TIMEZONE,
	})
	if err != nil {
		log.Fatalf("Failed to create contact sink: %v", err)
	}
	if closer, ok := contactSink.(interface{ Close() }); ok {
		defer closer.Close()
	}

	// Step 4: Telegram client and the event handlers
	client := bot.NewClient(nil, configs.TELEGRAM_BASE_URL, configs.TELEGRAM_BOT_TOKEN)
	me, err := client.GetMe(ctx)
	if err != nil {
		log.Fatalf("Failed to verify bot token: %v", err)
	}
	log.Printf("🤖 Authorized as @%s (id %d)", me.Username, me.ID)

	handlers := bot.NewHandlers(
		client, engine, extractor, answerer, store, contactSink,
		configs.DOWNLOAD_DIR, configs.MAX_DOWNLOAD_BYTES,
	)

	// Step 5: Health endpoints for the hosting platform
	router := gin.Default()
	router.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "ok",
			"service":  "cardscan-bot",
			"provider": provider.Name(),
			"sink":     contactSink.Name(),
		})
	})

	srv := &http.Server{
		Addr:           ":" + configs.PORT,
		Handler:        router,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		log.Printf("Starting health server on :%s", configs.PORT)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start health server: %v", err)
		}
	}()

	// Step 6: Long-poll until interrupted
	poller := bot.NewPoller(client, handlers, time.Duration(configs.POLL_TIMEOUT)*time.Second)
	log.Println("📡 Polling for updates...")
	if err := poller.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("Poller stopped: %v", err)
	}

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Health server forced to shutdown: %v", err)
	}

	log.Println("Bot exited")
}
