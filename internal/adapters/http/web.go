package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"trainerdesk/internal/adapters/email"
	"trainerdesk/internal/adapters/http/middleware"
	"trainerdesk/internal/adapters/restapi"
)

// Deps holds everything the handlers need: the upstream API client plus the
// optional booking notification channel.
type Deps struct {
	API      *restapi.Client
	Email    email.Sender
	NotifyTo string
}

// loadCSRFKey reads the CSRF secret from TRAINERDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("TRAINERDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("TRAINERDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("TRAINERDESK_ENV") == "production" {
		log.Fatal("TRAINERDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set TRAINERDESK_CSRF_KEY for production.")
	return key
}

// Global deps instance (set by NewMux)
var app *Deps

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, deps *Deps) http.Handler {
	app = deps

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	trustedOrigins := []string{"localhost:8080", "127.0.0.1:8080"}
	if origin := os.Getenv("TRAINERDESK_TRUSTED_ORIGIN"); origin != "" {
		trustedOrigins = append(trustedOrigins, origin)
	}

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Metrics -> RateLimit -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, trustedOrigins),
		middleware.RateLimit(limiter),
		middleware.Metrics(),
	)
}
