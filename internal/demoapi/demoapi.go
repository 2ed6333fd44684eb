// Package demoapi implements a small hypermedia REST service with the same
// surface as the hosted training service: enveloped customer and training
// collections, link-addressed resources and a denormalized read endpoint.
// It backs local development and end-to-end tests.
package demoapi

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// Server serves the demo API from a sqlite database.
type Server struct {
	db     *sql.DB
	router *mux.Router
}

// InitSchema initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, foreign keys enabled
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS customer (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		firstname TEXT NOT NULL,
		lastname TEXT NOT NULL,
		streetaddress TEXT NOT NULL DEFAULT '',
		postcode TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS training (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		duration INTEGER NOT NULL,
		activity TEXT NOT NULL,
		customer_id INTEGER NOT NULL,
		FOREIGN KEY (customer_id) REFERENCES customer(id) ON DELETE CASCADE
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// New creates a demo API server on top of db.
// PRE: db is open; InitSchema has been applied
// POST: the returned server handles /api/* requests
func New(db *sql.DB) *Server {
	s := &Server{db: db, router: mux.NewRouter()}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/customers", s.listCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers", s.createCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id:[0-9]+}", s.getCustomer).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", s.updateCustomer).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id:[0-9]+}", s.deleteCustomer).Methods(http.MethodDelete)
	api.HandleFunc("/trainings", s.listTrainings).Methods(http.MethodGet)
	api.HandleFunc("/trainings", s.createTraining).Methods(http.MethodPost)
	api.HandleFunc("/trainings/{id:[0-9]+}", s.deleteTraining).Methods(http.MethodDelete)
	api.HandleFunc("/gettrainings", s.listTrainingsWithCustomers).Methods(http.MethodGet)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// baseURL reconstructs the externally visible origin of this request.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

type link struct {
	Href string `json:"href"`
}

type resourceLinks struct {
	Self     link `json:"self"`
	Customer link `json:"customer,omitempty"`
}

type customerResource struct {
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Streetaddress string `json:"streetaddress"`
	Postcode      string `json:"postcode"`
	City          string `json:"city"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Links         struct {
		Self link `json:"self"`
	} `json:"_links"`
}

type trainingResource struct {
	Date     string        `json:"date"`
	Duration int           `json:"duration"`
	Activity string        `json:"activity"`
	Links    resourceLinks `json:"_links"`
}

// denormalizedTraining is the /gettrainings row: numeric id plus the owning
// customer embedded in full.
type denormalizedTraining struct {
	ID       int64            `json:"id"`
	Date     string           `json:"date"`
	Duration int              `json:"duration"`
	Activity string           `json:"activity"`
	Customer customerResource `json:"customer"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("demoapi_encode_failed", "error", err.Error())
	}
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.queryCustomers(r, "")
	if err != nil {
		slog.Error("demoapi_list_customers_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"_embedded": map[string]any{"customers": customers},
		"_links":    map[string]any{"self": link{Href: baseURL(r) + "/api/customers"}},
	})
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	customers, err := s.queryCustomers(r, mux.Vars(r)["id"])
	if err != nil {
		slog.Error("demoapi_get_customer_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if len(customers) == 0 {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, customers[0])
}

type customerBody struct {
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Streetaddress string `json:"streetaddress"`
	Postcode      string `json:"postcode"`
	City          string `json:"city"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var body customerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Firstname == "" || body.Lastname == "" {
		http.Error(w, "firstname and lastname are required", http.StatusBadRequest)
		return
	}

	res, err := s.db.ExecContext(r.Context(),
		`INSERT INTO customer (firstname, lastname, streetaddress, postcode, city, email, phone)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		body.Firstname, body.Lastname, body.Streetaddress, body.Postcode, body.City, body.Email, body.Phone)
	if err != nil {
		slog.Error("demoapi_create_customer_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	id, _ := res.LastInsertId()
	w.Header().Set("Location", baseURL(r)+"/api/customers/"+strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var body customerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	res, err := s.db.ExecContext(r.Context(),
		`UPDATE customer SET firstname = ?, lastname = ?, streetaddress = ?, postcode = ?, city = ?, email = ?, phone = ?
		 WHERE id = ?`,
		body.Firstname, body.Lastname, body.Streetaddress, body.Postcode, body.City, body.Email, body.Phone,
		mux.Vars(r)["id"])
	if err != nil {
		slog.Error("demoapi_update_customer_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteCustomer removes the customer; the schema's ON DELETE CASCADE takes
// the customer's trainings with it.
func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	res, err := s.db.ExecContext(r.Context(), "DELETE FROM customer WHERE id = ?", mux.Vars(r)["id"])
	if err != nil {
		slog.Error("demoapi_delete_customer_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTrainings(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(),
		"SELECT id, date, duration, activity, customer_id FROM training ORDER BY id")
	if err != nil {
		slog.Error("demoapi_list_trainings_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	base := baseURL(r)
	trainings := make([]trainingResource, 0)
	for rows.Next() {
		var id, customerID int64
		var tr trainingResource
		if err := rows.Scan(&id, &tr.Date, &tr.Duration, &tr.Activity, &customerID); err != nil {
			slog.Error("demoapi_scan_training_failed", "error", err.Error())
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		tr.Links.Self = link{Href: base + "/api/trainings/" + strconv.FormatInt(id, 10)}
		tr.Links.Customer = link{Href: base + "/api/customers/" + strconv.FormatInt(customerID, 10)}
		trainings = append(trainings, tr)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"_embedded": map[string]any{"trainings": trainings},
		"_links":    map[string]any{"self": link{Href: base + "/api/trainings"}},
	})
}

type trainingBody struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Activity string `json:"activity"`
	Customer string `json:"customer"` // self href of the owning customer
}

func (s *Server) createTraining(w http.ResponseWriter, r *http.Request) {
	var body trainingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Date == "" || body.Duration <= 0 || body.Activity == "" {
		http.Error(w, "date, duration and activity are required", http.StatusBadRequest)
		return
	}

	customerID, err := idFromHref(body.Customer)
	if err != nil {
		http.Error(w, "customer must be a customer resource href", http.StatusBadRequest)
		return
	}
	var exists int
	if err := s.db.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM customer WHERE id = ?", customerID).Scan(&exists); err != nil || exists == 0 {
		http.Error(w, "customer not found", http.StatusBadRequest)
		return
	}

	res, err := s.db.ExecContext(r.Context(),
		"INSERT INTO training (date, duration, activity, customer_id) VALUES (?, ?, ?, ?)",
		body.Date, body.Duration, body.Activity, customerID)
	if err != nil {
		slog.Error("demoapi_create_training_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	id, _ := res.LastInsertId()
	w.Header().Set("Location", baseURL(r)+"/api/trainings/"+strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) deleteTraining(w http.ResponseWriter, r *http.Request) {
	res, err := s.db.ExecContext(r.Context(), "DELETE FROM training WHERE id = ?", mux.Vars(r)["id"])
	if err != nil {
		slog.Error("demoapi_delete_training_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "training not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listTrainingsWithCustomers serves the denormalized read model: a flat array
// with a numeric id and the owning customer embedded.
func (s *Server) listTrainingsWithCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT t.id, t.date, t.duration, t.activity,
		       c.id, c.firstname, c.lastname, c.streetaddress, c.postcode, c.city, c.email, c.phone
		FROM training t
		JOIN customer c ON c.id = t.customer_id
		ORDER BY t.id`)
	if err != nil {
		slog.Error("demoapi_gettrainings_failed", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	base := baseURL(r)
	trainings := make([]denormalizedTraining, 0)
	for rows.Next() {
		var tr denormalizedTraining
		var customerID int64
		if err := rows.Scan(&tr.ID, &tr.Date, &tr.Duration, &tr.Activity,
			&customerID, &tr.Customer.Firstname, &tr.Customer.Lastname,
			&tr.Customer.Streetaddress, &tr.Customer.Postcode, &tr.Customer.City,
			&tr.Customer.Email, &tr.Customer.Phone); err != nil {
			slog.Error("demoapi_scan_gettrainings_failed", "error", err.Error())
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		tr.Customer.Links.Self = link{Href: base + "/api/customers/" + strconv.FormatInt(customerID, 10)}
		trainings = append(trainings, tr)
	}
	writeJSON(w, http.StatusOK, trainings)
}

// queryCustomers loads all customers, or just one when id is non-empty.
func (s *Server) queryCustomers(r *http.Request, id string) ([]customerResource, error) {
	q := "SELECT id, firstname, lastname, streetaddress, postcode, city, email, phone FROM customer"
	args := []any{}
	if id != "" {
		q += " WHERE id = ?"
		args = append(args, id)
	}
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(r.Context(), q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	base := baseURL(r)
	customers := make([]customerResource, 0)
	for rows.Next() {
		var cid int64
		var c customerResource
		if err := rows.Scan(&cid, &c.Firstname, &c.Lastname, &c.Streetaddress,
			&c.Postcode, &c.City, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		c.Links.Self = link{Href: base + "/api/customers/" + strconv.FormatInt(cid, 10)}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// idFromHref extracts the trailing numeric id from a resource href.
func idFromHref(href string) (int64, error) {
	href = strings.TrimRight(strings.TrimSpace(href), "/")
	i := strings.LastIndex(href, "/")
	if i < 0 {
		return 0, fmt.Errorf("no id segment in %q", href)
	}
	return strconv.ParseInt(href[i+1:], 10, 64)
}
