package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"imovia.org/internal/auth"
	"imovia.org/internal/clients"
	"imovia.org/internal/estate"
	"imovia.org/internal/httpapi"
	"imovia.org/internal/obs"
)

var version = "0.3.0"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("IMOVIA_COMMIT"))

	secret := os.Getenv("IMOVIA_AUTH_SECRET")
	if secret == "" {
		log.Fatal("IMOVIA_AUTH_SECRET is required")
	}

	var tokenOpts []auth.TokenOption
	if raw := os.Getenv("IMOVIA_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("parse IMOVIA_TOKEN_TTL: %v", err)
		}
		tokenOpts = append(tokenOpts, auth.WithTokenTTL(ttl))
	}
	tokens, err := auth.NewTokens(secret, tokenOpts...)
	if err != nil {
		log.Fatalf("init tokens: %v", err)
	}

	// Postgres when a DSN is set, in-memory stores otherwise. The in-memory
	// mode keeps local development and smoke testing free of infrastructure.
	var (
		db        *sql.DB
		authStore auth.Store
		clientsSt clients.Store
		estateSt  estate.Store
	)
	if dsn := os.Getenv("IMOVIA_PG_DSN"); dsn != "" {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		authStore = auth.NewPGStore(db)
		clientsSt = clients.NewPGStore(db)
		estateSt = estate.NewPGStore(db)
	} else {
		authStore = auth.NewInMemory()
		clientsSt = clients.NewInMemory()
		estateSt = estate.NewInMemory()
	}

	api := httpapi.New(
		auth.NewService(authStore, tokens),
		clients.NewService(clientsSt),
		estate.NewService(estateSt),
		httpapi.ReadyProbe{DB: db},
		version,
	)

	addr := os.Getenv("IMOVIA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting imovia-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
