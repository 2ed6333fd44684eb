package web

import (
	"net/http"
	"strings"

	"trainerdesk/internal/application/listutil"
	"trainerdesk/internal/application/orchestrators"
	"trainerdesk/internal/application/projections"
)

// handleCustomers handles both GET (grid) and POST (create) for /customers.
func handleCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		lp := listutil.ParseListParams(r.URL.Query(), projections.CustomerSortColumns)
		result, err := projections.QueryGetCustomerList(ctx,
			projections.GetCustomerListQuery{List: lp},
			projections.GetCustomerListDeps{API: app.API})
		if err != nil {
			renderUpstreamError(w, r, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "get_customer_list.html", map[string]any{
				"Customers": result.Rows,
				"PageInfo":  result.PageInfo,
				"Sort":      lp.Sort,
				"Dir":       lp.Dir,
				"Search":    lp.Search,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"customers": result.Rows,
			"page":      result.PageInfo,
		})

	case http.MethodPost:
		input, err := customerInputFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows, err := orchestrators.ExecuteCreateCustomer(ctx, input,
			orchestrators.CreateCustomerDeps{API: app.API})
		if err != nil {
			handleWriteError(w, r, err, "form_customer.html", map[string]any{
				"Title": "New customer", "Action": "/customers", "Customer": input,
			})
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/customers", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"customers": rows})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCustomerNewForm renders the empty create form.
func handleCustomerNewForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "form_customer.html", map[string]any{
		"Title":    "New customer",
		"Action":   "/customers",
		"Customer": orchestrators.CreateCustomerInput{},
	})
}

// handleCustomerEdit renders the edit form (GET) and applies the full
// replacement (POST). The customer is addressed by the id query param; the
// form carries the self href so the update can be PUT to the resource's own
// link.
func handleCustomerEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		row, err := findCustomerRow(r, id)
		if err != nil {
			renderUpstreamError(w, r, err)
			return
		}
		if row == nil {
			http.NotFound(w, r)
			return
		}
		renderTemplate(w, r, "form_customer.html", map[string]any{
			"Title":    "Edit customer",
			"Action":   "/customers/edit",
			"SelfHref": row.SelfHref,
			"Customer": orchestrators.CreateCustomerInput{
				Firstname:     row.Firstname,
				Lastname:      row.Lastname,
				Streetaddress: row.Streetaddress,
				Postcode:      row.Postcode,
				City:          row.City,
				Email:         row.Email,
				Phone:         row.Phone,
			},
		})

	case http.MethodPost:
		input, selfHref, err := updateInputFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows, err := orchestrators.ExecuteUpdateCustomer(ctx,
			orchestrators.UpdateCustomerInput{SelfHref: selfHref, Fields: input},
			orchestrators.UpdateCustomerDeps{API: app.API})
		if err != nil {
			handleWriteError(w, r, err, "form_customer.html", map[string]any{
				"Title": "Edit customer", "Action": "/customers/edit",
				"SelfHref": selfHref, "Customer": input,
			})
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/customers", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customers": rows})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCustomerDelete renders the confirmation page (GET) and performs the
// delete (POST). The confirmation page carries the cascade warning; the POST
// only proceeds when the confirmed field is present.
func handleCustomerDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		row, err := findCustomerRow(r, id)
		if err != nil {
			renderUpstreamError(w, r, err)
			return
		}
		if row == nil {
			http.NotFound(w, r)
			return
		}
		renderTemplate(w, r, "confirm_delete.html", map[string]any{
			"Title":   "Delete customer",
			"Action":  "/customers/delete",
			"ID":      row.ID,
			"Name":    strings.TrimSpace(row.Firstname + " " + row.Lastname),
			"Warning": orchestrators.CustomerDeleteWarning,
		})

	case http.MethodPost:
		input := orchestrators.DeleteCustomerInput{}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var body struct {
				ID        string `json:"id"`
				Confirmed bool   `json:"confirmed"`
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "invalid JSON body", http.StatusBadRequest)
				return
			}
			input.CustomerID = body.ID
			input.Confirmed = body.Confirmed
		} else {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form", http.StatusBadRequest)
				return
			}
			input.CustomerID = r.FormValue("id")
			input.Confirmed = r.FormValue("confirmed") == "true"
		}

		rows, err := orchestrators.ExecuteDeleteCustomer(ctx, input,
			orchestrators.DeleteCustomerDeps{API: app.API})
		if err != nil {
			renderUpstreamError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/customers", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customers": rows})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// findCustomerRow locates a customer row by grid id via a fresh collection
// fetch. Returns nil when no row matches.
func findCustomerRow(r *http.Request, id string) (*projections.CustomerRow, error) {
	customers, err := app.API.ListCustomers(r.Context())
	if err != nil {
		return nil, err
	}
	for _, row := range projections.CustomerRows(customers) {
		if row.ID == id {
			return &row, nil
		}
	}
	return nil, nil
}

// customerInputFromRequest parses the create form (or JSON body) into input.
func customerInputFromRequest(r *http.Request) (orchestrators.CreateCustomerInput, error) {
	var input orchestrators.CreateCustomerInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Firstname     string `json:"firstname"`
			Lastname      string `json:"lastname"`
			Streetaddress string `json:"streetaddress"`
			Postcode      string `json:"postcode"`
			City          string `json:"city"`
			Email         string `json:"email"`
			Phone         string `json:"phone"`
		}
		if err := strictDecode(r, &body); err != nil {
			return input, err
		}
		input = orchestrators.CreateCustomerInput(body)
		return input, nil
	}
	if err := r.ParseForm(); err != nil {
		return input, err
	}
	input.Firstname = strings.TrimSpace(r.FormValue("firstname"))
	input.Lastname = strings.TrimSpace(r.FormValue("lastname"))
	input.Streetaddress = strings.TrimSpace(r.FormValue("streetaddress"))
	input.Postcode = strings.TrimSpace(r.FormValue("postcode"))
	input.City = strings.TrimSpace(r.FormValue("city"))
	input.Email = strings.TrimSpace(r.FormValue("email"))
	input.Phone = strings.TrimSpace(r.FormValue("phone"))
	return input, nil
}

// updateInputFromRequest parses the edit form plus the self href field.
func updateInputFromRequest(r *http.Request) (orchestrators.CreateCustomerInput, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			SelfHref      string `json:"selfHref"`
			Firstname     string `json:"firstname"`
			Lastname      string `json:"lastname"`
			Streetaddress string `json:"streetaddress"`
			Postcode      string `json:"postcode"`
			City          string `json:"city"`
			Email         string `json:"email"`
			Phone         string `json:"phone"`
		}
		if err := strictDecode(r, &body); err != nil {
			return orchestrators.CreateCustomerInput{}, "", err
		}
		return orchestrators.CreateCustomerInput{
			Firstname:     body.Firstname,
			Lastname:      body.Lastname,
			Streetaddress: body.Streetaddress,
			Postcode:      body.Postcode,
			City:          body.City,
			Email:         body.Email,
			Phone:         body.Phone,
		}, body.SelfHref, nil
	}
	input, err := customerInputFromRequest(r)
	if err != nil {
		return input, "", err
	}
	return input, r.FormValue("self_href"), nil
}

// handleWriteError re-renders the form with the validation message for user
// errors, or the upstream error page for transport failures.
func handleWriteError(w http.ResponseWriter, r *http.Request, err error, formTemplate string, data map[string]any) {
	if isUpstreamError(err) {
		renderUpstreamError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		data["Error"] = err.Error()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderTemplate(w, r, formTemplate, data)
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
}
