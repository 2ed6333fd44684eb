package projections

import (
	"context"
	"log/slog"

	"trainerdesk/internal/application/enrichment"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

// GetCalendarDeps holds dependencies for GetCalendar.
type GetCalendarDeps struct {
	API CalendarAPI
}

// GetCalendarResult carries the derived calendar events.
type GetCalendarResult struct {
	Events []CalendarEvent
}

// QueryGetCalendar fetches trainings and derives calendar events.
// The denormalized read endpoint already embeds each customer; if that
// endpoint fails, the envelope endpoint plus the enrichment pipeline is used
// instead so the calendar still renders.
// PRE: deps.API is non-nil
// POST: one event per training with a parseable date; end = start + duration
// minutes; title is "activity" or "activity / Firstname Lastname";
// unparseable dates are logged and skipped, never rendered as broken events
func QueryGetCalendar(ctx context.Context, deps GetCalendarDeps) (GetCalendarResult, error) {
	trainings, err := deps.API.ListTrainingsWithCustomers(ctx)
	if err != nil {
		slog.Warn("calendar_denormalized_fetch_failed", "error", err)
		plain, ferr := deps.API.ListTrainings(ctx)
		if ferr != nil {
			return GetCalendarResult{}, ferr
		}
		enriched := enrichment.EnrichTrainings(ctx, plain, deps.API)
		trainings = make([]training.Training, len(enriched))
		for i, e := range enriched {
			trainings[i] = e.Training
		}
	}

	events := make([]CalendarEvent, 0, len(trainings))
	for _, tr := range trainings {
		start, end, err := tr.Span()
		if err != nil {
			slog.Warn("calendar_event_skipped", "activity", tr.Activity, "date", tr.Date, "error", err)
			continue
		}
		id, _ := hyperlink.ResourceID(tr.Links.Self)
		events = append(events, CalendarEvent{
			ID:    id,
			Title: tr.EventTitle(),
			Start: start,
			End:   end,
		})
	}
	return GetCalendarResult{Events: events}, nil
}
