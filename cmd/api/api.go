package main

import (
	"log"
	"net/http"
	"time"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
	"github.com/farxc/auditor-fiscal-contabil/internal/logger"
	"github.com/farxc/auditor-fiscal-contabil/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config    config
	store     *store.Storage
	cache     *workbook.CachedLoader
	auditor   *audit.Auditor
	appLogger *logger.Logger
}

type config struct {
	addr        string
	maxUploadMB int
	logLevel    string
	db          dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/workbooks", func(r chi.Router) {
			r.Post("/sections", app.handleListSections)
		})
		r.Route("/audits", func(r chi.Router) {
			r.Post("/", app.handleCreateAudit)
			r.Get("/history", app.handleGetAuditHistory)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	log.Printf("Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
