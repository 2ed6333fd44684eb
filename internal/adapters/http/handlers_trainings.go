package web

import (
	"net/http"
	"strconv"
	"strings"

	"trainerdesk/internal/application/listutil"
	"trainerdesk/internal/application/orchestrators"
	"trainerdesk/internal/application/projections"
)

// handleTrainings handles both GET (grid) and POST (create) for /trainings.
func handleTrainings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		lp := listutil.ParseListParams(r.URL.Query(), projections.TrainingSortColumns)
		result, err := projections.QueryGetTrainingList(ctx,
			projections.GetTrainingListQuery{List: lp},
			projections.GetTrainingListDeps{API: app.API})
		if err != nil {
			renderUpstreamError(w, r, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "get_training_list.html", map[string]any{
				"Trainings": result.Rows,
				"PageInfo":  result.PageInfo,
				"Sort":      lp.Sort,
				"Dir":       lp.Dir,
				"Search":    lp.Search,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"trainings": result.Rows,
			"page":      result.PageInfo,
		})

	case http.MethodPost:
		input, err := trainingInputFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows, err := orchestrators.ExecuteCreateTraining(ctx, input,
			orchestrators.CreateTrainingDeps{API: app.API, Email: app.Email, NotifyTo: app.NotifyTo})
		if err != nil {
			handleWriteError(w, r, err, "form_training.html", map[string]any{
				"Training": input,
			})
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/trainings", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"trainings": rows})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// customerOption is a select-box entry on the add-training form.
type customerOption struct {
	SelfHref string
	Name     string
}

// handleTrainingNewForm renders the add-training form. The customer select
// box is filled from a fresh customer fetch; an optional customer query param
// preselects the owning customer when the form is opened from the customer
// grid.
func handleTrainingNewForm(w http.ResponseWriter, r *http.Request) {
	customers, err := app.API.ListCustomers(r.Context())
	if err != nil {
		renderUpstreamError(w, r, err)
		return
	}

	options := make([]customerOption, 0, len(customers))
	for _, row := range projections.CustomerRows(customers) {
		options = append(options, customerOption{
			SelfHref: row.SelfHref,
			Name:     strings.TrimSpace(row.Firstname + " " + row.Lastname),
		})
	}

	selected := ""
	if id := r.URL.Query().Get("customer"); id != "" {
		for _, row := range projections.CustomerRows(customers) {
			if row.ID == id {
				selected = row.SelfHref
				break
			}
		}
	}

	renderTemplate(w, r, "form_training.html", map[string]any{
		"Customers": options,
		"Selected":  selected,
		"Training":  orchestrators.CreateTrainingInput{},
	})
}

// handleTrainingDelete renders the confirmation page (GET) and performs the
// delete (POST).
func handleTrainingDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		renderTemplate(w, r, "confirm_delete.html", map[string]any{
			"Title":   "Delete training",
			"Action":  "/trainings/delete",
			"ID":      id,
			"Warning": "This training session will be removed. This cannot be undone.",
		})

	case http.MethodPost:
		input := orchestrators.DeleteTrainingInput{}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var body struct {
				ID        string `json:"id"`
				Confirmed bool   `json:"confirmed"`
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "invalid JSON body", http.StatusBadRequest)
				return
			}
			input.TrainingID = body.ID
			input.Confirmed = body.Confirmed
		} else {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form", http.StatusBadRequest)
				return
			}
			input.TrainingID = r.FormValue("id")
			input.Confirmed = r.FormValue("confirmed") == "true"
		}

		rows, err := orchestrators.ExecuteDeleteTraining(ctx, input,
			orchestrators.DeleteTrainingDeps{API: app.API})
		if err != nil {
			renderUpstreamError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/trainings", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"trainings": rows})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// trainingInputFromRequest parses the add-training form (or JSON body).
func trainingInputFromRequest(r *http.Request) (orchestrators.CreateTrainingInput, error) {
	var input orchestrators.CreateTrainingInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Customer     string `json:"customer"`
			CustomerName string `json:"customerName"`
			Date         string `json:"date"`
			Duration     int    `json:"duration"`
			Activity     string `json:"activity"`
		}
		if err := strictDecode(r, &body); err != nil {
			return input, err
		}
		input.CustomerSelfHref = body.Customer
		input.CustomerName = body.CustomerName
		input.Date = body.Date
		input.Duration = body.Duration
		input.Activity = body.Activity
		return input, nil
	}
	if err := r.ParseForm(); err != nil {
		return input, err
	}
	duration, _ := strconv.Atoi(r.FormValue("duration"))
	input.CustomerSelfHref = r.FormValue("customer")
	input.CustomerName = r.FormValue("customer_name")
	input.Date = r.FormValue("date")
	input.Duration = duration
	input.Activity = strings.TrimSpace(r.FormValue("activity"))
	return input, nil
}
