package main

import (
	"context"
	"log"
	"time"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
	"github.com/farxc/auditor-fiscal-contabil/internal/db"
	"github.com/farxc/auditor-fiscal-contabil/internal/env"
	"github.com/farxc/auditor-fiscal-contabil/internal/logger"
	"github.com/farxc/auditor-fiscal-contabil/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config{
		addr:        env.GetString("ADDR", ":8080"),
		maxUploadMB: env.GetInt("MAX_UPLOAD_MB", 50),
		logLevel:    env.GetString("LOG_LEVEL", "info"),
		db: dbConfig{
			addr:         env.GetString("DB_ADDR", ""),
			maxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 25),
			maxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 25),
			maxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
	}

	appLogger := logger.New(logger.ParseLevel(cfg.logLevel))

	var storage *store.Storage
	if cfg.db.addr != "" {
		conn, err := db.New(
			cfg.db.addr,
			cfg.db.maxOpenConns,
			cfg.db.maxIdleConns,
			cfg.db.maxIdleTime)
		if err != nil {
			log.Panic(err)
		}
		defer conn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := db.EnsureSchema(ctx, conn); err != nil {
			cancel()
			log.Panic(err)
		}
		cancel()

		log.Printf("Database connection pool established")
		storage = store.NewStorage(conn)
	} else {
		log.Printf("DB_ADDR not set, audit history disabled")
	}

	app := newApplication(cfg, storage, appLogger)
	mux := app.mount()

	log.Fatal(app.run(mux))
}

func newApplication(cfg config, storage *store.Storage, appLogger *logger.Logger) *application {
	cache := workbook.NewCachedLoader(workbook.NewFileLoader(appLogger))
	return &application{
		config:    cfg,
		store:     storage,
		cache:     cache,
		auditor:   audit.NewAuditor(cache, appLogger),
		appLogger: appLogger,
	}
}
