package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	emailPkg "trainerdesk/internal/adapters/email"
	web "trainerdesk/internal/adapters/http"
	"trainerdesk/internal/adapters/restapi"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if os.Getenv("TRAINERDESK_LOG_DEBUG") != "" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Upstream training service. The demo API binary serves the same surface
	// locally; point TRAINERDESK_API_URL at it for offline development.
	apiURL := envOrDefault("TRAINERDESK_API_URL", "http://localhost:8081/api")
	httpClient := &http.Client{Timeout: 15 * time.Second}
	client := restapi.NewClient(apiURL, httpClient)

	// Configure email sender for booking notifications
	var sender emailPkg.Sender
	resendKey := os.Getenv("TRAINERDESK_RESEND_KEY")
	notifyTo := envOrDefault("TRAINERDESK_NOTIFY_TO", "")
	emailFrom := envOrDefault("TRAINERDESK_RESEND_FROM", "Trainerdesk <noreply@trainerdesk.example>")
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		log.Println("Email sender configured (noop — set TRAINERDESK_RESEND_KEY for real delivery)")
	}

	mux := web.NewMux("static", &web.Deps{
		API:      client,
		Email:    sender,
		NotifyTo: notifyTo,
	})

	addr := envOrDefault("TRAINERDESK_ADDR", ":8080")
	log.Printf("Trainerdesk %s starting on %s (api=%s, env=%s)", version, addr, apiURL, envOrDefault("TRAINERDESK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
