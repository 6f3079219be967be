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

	"faqhub.org/internal/auth"
	"faqhub.org/internal/chat"
	"faqhub.org/internal/config"
	"faqhub.org/internal/httpapi"
	"faqhub.org/internal/obs"
	"faqhub.org/internal/store/file"
	"faqhub.org/internal/store/pg"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	faqs, err := file.NewFAQStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("faq store: %v", err)
	}
	feedback, err := file.NewLogbook(cfg.DataDir, "feedback.txt")
	if err != nil {
		log.Fatalf("feedback log: %v", err)
	}
	unanswered, err := file.NewLogbook(cfg.DataDir, "unanswered.txt")
	if err != nil {
		log.Fatalf("unanswered log: %v", err)
	}

	// Credentials live in Postgres when a DSN is configured, otherwise in
	// admins.json next to the rest of the data files.
	var (
		creds auth.CredentialStore
		db    *sql.DB
	)
	if cfg.PostgresDSN != "" {
		store, err := pg.Open(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer store.Close()
		creds = store
		db = store.DB()
	} else {
		store, err := file.NewCredentialStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("credential store: %v", err)
		}
		creds = store
	}

	issuer, err := auth.NewIssuer(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		log.Fatalf("issuer: %v", err)
	}
	authSvc, err := auth.NewService(creds, issuer, auth.NewRegistry())
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	// The chat service degrades gracefully without a model: unmatched
	// questions are logged and answered with a canned reply.
	var model chat.Responder
	if cfg.OpenAIKey != "" {
		client, err := chat.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("openai: %v", err)
		}
		model = client
	}
	chatSvc, err := chat.NewService(faqs, unanswered, model)
	if err != nil {
		log.Fatalf("chat: %v", err)
	}

	api := httpapi.New(authSvc, faqs, chatSvc, feedback, unanswered, cfg.FrontendOrigin, httpapi.ReadyProbe{DB: db}, version)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting faqhub-api %s on %s", version, srv.Addr)

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
	log.Println("Stopped")
}
