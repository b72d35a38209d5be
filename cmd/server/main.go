// Package main initializes and starts the FloraSight admin API server,
// setting up configuration, logging, the database connection, the
// identity-provider client, the authorization gate, and HTTP routes.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/riefhanj02/florasight/internal/auth"
	"github.com/riefhanj02/florasight/internal/config"
	"github.com/riefhanj02/florasight/internal/db"
	"github.com/riefhanj02/florasight/internal/identity"
	"github.com/riefhanj02/florasight/internal/logger"
	"github.com/riefhanj02/florasight/internal/repository"
	"github.com/riefhanj02/florasight/internal/server/handler/http"
	"github.com/riefhanj02/florasight/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Record store adapter and catalog pipeline.
	sightingRepo := repository.NewPostgresSightingRepository(postgresDB)
	catalog := service.NewCatalogService(sightingRepo)

	// Identity provider client and the authorization gate.
	provider := identity.NewHTTPProvider(options.IdentityURL, nil)
	tokenStore, err := auth.NewTokenStore(options.TokenFile)
	if err != nil {
		zapLogger.Fatal("cannot open token store", zap.Error(err))
	}
	gate := auth.NewGate(provider, tokenStore, options.AdminGroup, zapLogger)

	// Create HTTP handlers for the session and catalog endpoints.
	sessionHandler := &http.SessionHandler{Gate: gate}
	sightingsHandler := &http.SightingsHandler{Catalog: catalog}

	// Build the router with middleware and routes.
	router := http.NewRouter(sessionHandler, sightingsHandler, gate, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
