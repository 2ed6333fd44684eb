package web

import "net/http"

// helpMarkdown is the in-app user guide, rendered through the markdown
// pipeline so it stays easy to edit.
const helpMarkdown = `
# Using Trainerdesk

## Customers

The **Customers** page lists everyone with a standing booking relationship.
Use the search box to filter by name, address, email or phone; click a column
header to sort. *New customer* opens the registration form.

Each row offers:

- **Edit** to change the customer's details
- **Add training** to book a session for that customer
- **Delete** to remove the customer

Deleting a customer also deletes all of their training sessions, so a
confirmation page is shown first.

## Trainings

The **Trainings** page lists all booked sessions with the date and time,
activity, duration in minutes and the customer's name. Sessions are deleted
from here; they are created from the customer list or with *New training*.

## Calendar

The **Calendar** page shows every session in a month, week or day layout.
Each entry runs from its start time to start plus duration. Use the
*Subscribe* link to add the feed to an external calendar client.

## When something fails

The pages talk to the training service over the network. If the service is
unreachable or misbehaves the page says so and nothing is changed locally;
reload to try again.
`

// handleHelp renders the user guide.
func handleHelp(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "help.html", map[string]any{
		"Content": helpMarkdown,
	})
}

// handleHealthz reports liveness for the process itself; it deliberately does
// not probe the upstream service.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
