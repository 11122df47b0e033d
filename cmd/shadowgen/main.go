package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/rpattn/shadowschema/internal/builder"
	"github.com/rpattn/shadowschema/internal/config"
	"github.com/rpattn/shadowschema/internal/db"
	"github.com/rpattn/shadowschema/internal/ddl"
	"github.com/rpattn/shadowschema/internal/domain"
	"github.com/rpattn/shadowschema/internal/export"
	"github.com/rpattn/shadowschema/internal/middleware"
	"github.com/rpattn/shadowschema/internal/model"
	"github.com/rpattn/shadowschema/internal/registry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional .env for local database credentials.
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	entities, err := model.Load(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load entity model: %v", err)
	}

	reg := registry.New(cfg.Options)
	for _, entity := range entities {
		reg.Register(entity)
	}

	b := builder.New(reg, builder.WithHooks(builder.Hooks{
		AfterShadowEntityBuilt: func(original, shadow *domain.EntityType) {
			log.Printf("[BUILDER] shadow entity %s built for %s", shadow.Name, original.Name)
		},
		AfterTransactionEntityBuilt: func(tx *domain.EntityType) {
			log.Printf("[BUILDER] transaction entity bound to table %s", tx.Table.QualifiedName())
		},
	}))
	if err := b.Configure(); err != nil {
		log.Fatalf("Failed to derive shadow schema: %v", err)
	}

	if cfg.InstallSchema {
		conn, err := db.NewConnection(ctx, cfg.DB)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer conn.Close()

		if err := db.RunMigrations("./migrations", cfg.DB.MigrateURL()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		if err := ddl.NewInstaller(conn.Pool).Install(ctx, reg); err != nil {
			log.Fatalf("Failed to install shadow schema: %v", err)
		}
	}

	if cfg.ReportPath != "" {
		if err := export.WriteReport(cfg.ReportPath, reg); err != nil {
			log.Fatalf("Failed to write schema report: %v", err)
		}
		log.Printf("[EXPORT] schema report written to %s", cfg.ReportPath)
	}

	// Read-only introspection endpoint over the derived schema.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	schemaHandler := corsHandler.Handler(middleware.LoggingMiddleware(export.NewHTTPHandler(reg)))
	http.Handle("/schema", schemaHandler)
	http.Handle("/schema/report", schemaHandler)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting schema introspection server on %s", cfg.HTTPAddr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
