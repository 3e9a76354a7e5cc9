package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/harentsoaR/clinic-api/internal/config"
	"github.com/harentsoaR/clinic-api/internal/graph"
	"github.com/harentsoaR/clinic-api/internal/handlers"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/store/memstore"
	"github.com/harentsoaR/clinic-api/internal/store/mongostore"
	"github.com/harentsoaR/clinic-api/internal/store/sqlstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("STORE_DRIVER: %s (%s)", cfg.Store.Driver, cfg.Redacted())
	log.Printf("API_PORT: %s", cfg.HTTP.Port)
	log.Printf("Unique email: doctors=%t patients=%t", cfg.Store.UniqueDoctorEmail, cfg.Store.UniquePatientEmail)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
	defer cancel()
	db, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.Store.Driver, err)
	}
	log.Printf("Successfully connected to %s!", cfg.Store.Driver)

	// --- GraphQL ---
	svc := services.New(db)
	schema, err := graph.NewSchema(svc)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}
	graphqlHandler, err := graph.NewHandler(schema, db, db, graph.HandlerOptions{
		MaxBodySize:        cfg.GraphQL.MaxBodySize,
		OperationCacheSize: cfg.GraphQL.OperationCacheSize,
	})
	if err != nil {
		log.Fatalf("Failed to build GraphQL handler: %v", err)
	}

	// --- Gin Router ---
	h := handlers.NewHandler(db, graphqlHandler)
	r := handlers.NewRouter(h, cfg.HTTP.StaticDir, middleware.CORS(cfg.CORS.AllowOrigins))

	srv := &http.Server{Addr: ":" + cfg.HTTP.Port, Handler: r}
	go func() {
		log.Printf("Starting server on port %s", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("Closing %s: %v", cfg.Store.Driver, err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	opts := store.Options{
		UniqueDoctorEmail:  cfg.Store.UniqueDoctorEmail,
		UniquePatientEmail: cfg.Store.UniquePatientEmail,
	}
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return sqlstore.Open(ctx, cfg.Postgres.DSN, opts)
	case config.DriverMemory:
		return memstore.New(opts), nil
	default:
		return mongostore.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database, opts)
	}
}
