package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"trainerdesk/internal/demoapi"
)

func main() {
	dbPath := envOrDefault("TRAINERDESK_DEMO_DB", "demoapi.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := demoapi.InitSchema(db); err != nil {
		log.Fatalf("failed to init schema: %v", err)
	}
	if err := demoapi.Seed(context.Background(), db); err != nil {
		log.Fatalf("failed to seed demo data: %v", err)
	}

	addr := envOrDefault("TRAINERDESK_DEMO_ADDR", ":8081")
	log.Printf("Demo training API starting on %s (db=%s)", addr, dbPath)

	if err := http.ListenAndServe(addr, demoapi.New(db)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
