package web

import (
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"trainerdesk/internal/application/loadstate"
	"trainerdesk/internal/application/projections"
)

// calendarLoader keeps the last successfully loaded event set so a failed
// refresh can still render yesterday's calendar instead of a bare error page.
var calendarLoader = loadstate.NewLoader[[]projections.CalendarEvent]()

// calendarDay is one cell of the rendered calendar grid.
type calendarDay struct {
	Date    time.Time
	InMonth bool
	Today   bool
	Events  []projections.CalendarEvent
}

// calendarWeek is one row of the month grid.
type calendarWeek struct {
	Days []calendarDay
}

// handleCalendar renders the calendar page in month, week or day view.
// Events come from the derived calendar projection; the view and anchor date
// are query params so the page is fully linkable.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	gen := calendarLoader.Begin()
	result, err := projections.QueryGetCalendar(r.Context(), projections.GetCalendarDeps{API: app.API})
	calendarLoader.Complete(gen, result.Events, err)

	events := result.Events
	stale := false
	if err != nil {
		snap := calendarLoader.Snapshot()
		if !isHTMLRequest(r) || len(snap.Data) == 0 {
			renderUpstreamError(w, r, err)
			return
		}
		events = snap.Data
		stale = true
	}

	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{"events": events})
		return
	}

	view := r.URL.Query().Get("view")
	if view != "week" && view != "day" {
		view = "month"
	}
	anchor := timeNow().UTC()
	if d := r.URL.Query().Get("date"); d != "" {
		if parsed, perr := time.Parse("2006-01-02", d); perr == nil {
			anchor = parsed
		}
	}

	var start, end time.Time
	switch view {
	case "day":
		start = anchor.Truncate(24 * time.Hour)
		end = start.AddDate(0, 0, 1)
	case "week":
		start = startOfWeek(anchor)
		end = start.AddDate(0, 0, 7)
	default:
		monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = startOfWeek(monthStart)
		end = startOfWeek(monthStart.AddDate(0, 1, 0)).AddDate(0, 0, 7)
	}

	weeks := buildWeeks(start, end, anchor, events)

	renderTemplate(w, r, "get_calendar.html", map[string]any{
		"View":     view,
		"Anchor":   anchor.Format("2006-01-02"),
		"Title":    anchor.Format("January 2006"),
		"Weeks":    weeks,
		"Prev":     shiftAnchor(anchor, view, -1).Format("2006-01-02"),
		"Next":     shiftAnchor(anchor, view, +1).Format("2006-01-02"),
		"EventSum": len(events),
		"Stale":    stale,
	})
}

// handleCalendarICS serves the trainings as an iCalendar feed so sessions can
// be subscribed to from an external calendar client.
func handleCalendarICS(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetCalendar(r.Context(), projections.GetCalendarDeps{API: app.API})
	if err != nil {
		renderUpstreamError(w, r, err)
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//trainerdesk//calendar//EN")
	now := timeNow().UTC()
	for _, ev := range result.Events {
		event := cal.AddEvent(ev.ID + "@trainerdesk")
		event.SetDtStampTime(now)
		event.SetStartAt(ev.Start)
		event.SetEndAt(ev.End)
		event.SetSummary(ev.Title)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trainings.ics"`)
	if _, err := w.Write([]byte(cal.Serialize())); err != nil {
		internalError(w, err)
	}
}

// startOfWeek returns the Monday 00:00 UTC of t's week.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// shiftAnchor moves the anchor date one view-sized step.
func shiftAnchor(anchor time.Time, view string, step int) time.Time {
	switch view {
	case "day":
		return anchor.AddDate(0, 0, step)
	case "week":
		return anchor.AddDate(0, 0, 7*step)
	}
	return anchor.AddDate(0, step, 0)
}

// buildWeeks lays events out on a Monday-first grid covering [start, end).
func buildWeeks(start, end, anchor time.Time, events []projections.CalendarEvent) []calendarWeek {
	byDay := make(map[string][]projections.CalendarEvent)
	for _, ev := range events {
		key := ev.Start.UTC().Format("2006-01-02")
		byDay[key] = append(byDay[key], ev)
	}

	today := timeNow().UTC().Format("2006-01-02")
	var weeks []calendarWeek
	for day := start; day.Before(end); {
		week := calendarWeek{Days: make([]calendarDay, 0, 7)}
		for i := 0; i < 7; i++ {
			key := day.Format("2006-01-02")
			week.Days = append(week.Days, calendarDay{
				Date:    day,
				InMonth: day.Month() == anchor.Month(),
				Today:   key == today,
				Events:  byDay[key],
			})
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
