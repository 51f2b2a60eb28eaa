package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/acervolab/catalogagent/engine"
	"github.com/acervolab/catalogagent/genai"
	"github.com/acervolab/catalogagent/server"
	"github.com/acervolab/catalogagent/store"
	"github.com/acervolab/catalogagent/template"
)

func main() {
	_ = godotenv.Load()

	setupLogging()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	templatesPath := os.Getenv("TEMPLATES_PATH")
	if templatesPath == "" {
		templatesPath = "templates.json"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is not set")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	})
	if err != nil {
		log.Fatalf("chat model init error: %v", err)
	}
	gen, err := genai.NewGenerator(chatModel)
	if err != nil {
		log.Fatalf("generator init error: %v", err)
	}

	// --- Storage: postgres when configured, in-memory otherwise ---
	var recordStore engine.RecordStore = store.NewMemoryStore()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatalf("db open error: %v", err)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			cancel()
			log.Fatalf("db ping error: %v", err)
		}
		cancel()

		pg := store.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("db schema error: %v", err)
		}
		recordStore = pg
	} else {
		slog.Warn("DATABASE_URL not set, records are kept in memory only")
	}

	templates := template.NewCachedSource(template.NewFileSource(templatesPath), 10*time.Minute)

	eng := engine.New(templates, gen, recordStore)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	server.RegisterRoutes(r, server.NewHandler(eng))

	slog.Info("listening", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
