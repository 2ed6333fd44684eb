package demoapi

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Seed loads a handful of demo customers and trainings. Idempotent: it does
// nothing when any customer already exists.
// PRE: InitSchema has been applied
// POST: an empty database contains the demo data set
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customer").Scan(&count); err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	customers := []struct {
		firstname, lastname, street, postcode, city, email, phone string
	}{
		{"Liisa", "Virtanen", "Mannerheimintie 12", "00100", "Helsinki", "liisa.virtanen@example.com", "040-1234567"},
		{"Lasse", "Korhonen", "Hämeenkatu 5", "33100", "Tampere", "lasse.korhonen@example.com", "040-7654321"},
		{"Maija", "Nieminen", "Kauppakatu 8", "40100", "Jyväskylä", "maija.nieminen@example.com", "050-1112223"},
	}

	ids := make([]int64, 0, len(customers))
	for _, c := range customers {
		res, err := db.ExecContext(ctx,
			`INSERT INTO customer (firstname, lastname, streetaddress, postcode, city, email, phone)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.firstname, c.lastname, c.street, c.postcode, c.city, c.email, c.phone)
		if err != nil {
			return fmt.Errorf("failed to seed customer: %w", err)
		}
		id, _ := res.LastInsertId()
		ids = append(ids, id)
	}

	base := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	trainings := []struct {
		offset   time.Duration
		duration int
		activity string
		customer int64
	}{
		{0, 60, "Spinning", ids[0]},
		{26 * time.Hour, 45, "Zumba", ids[1]},
		{50 * time.Hour, 90, "Functional training", ids[2]},
		{74 * time.Hour, 30, "Stretching", ids[0]},
	}
	for _, t := range trainings {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO training (date, duration, activity, customer_id) VALUES (?, ?, ?, ?)",
			base.Add(t.offset).Format(time.RFC3339), t.duration, t.activity, t.customer); err != nil {
			return fmt.Errorf("failed to seed training: %w", err)
		}
	}

	slog.Info("demo_data_seeded", "customers", len(customers), "trainings", len(trainings))
	return nil
}
