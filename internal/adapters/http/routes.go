package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes wires every page and API endpoint onto the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/customers", http.StatusSeeOther)
	})

	mux.HandleFunc("/customers", handleCustomers)
	mux.HandleFunc("/customers/new", handleCustomerNewForm)
	mux.HandleFunc("/customers/edit", handleCustomerEdit)
	mux.HandleFunc("/customers/delete", handleCustomerDelete)

	mux.HandleFunc("/trainings", handleTrainings)
	mux.HandleFunc("/trainings/new", handleTrainingNewForm)
	mux.HandleFunc("/trainings/delete", handleTrainingDelete)

	mux.HandleFunc("/calendar", handleCalendar)
	mux.HandleFunc("/calendar.ics", handleCalendarICS)

	mux.HandleFunc("/help", handleHelp)
	mux.HandleFunc("/healthz", handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
}
