package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"trainerdesk/internal/adapters/email"
	"trainerdesk/internal/adapters/restapi"
	"trainerdesk/internal/application/enrichment"
	"trainerdesk/internal/application/projections"
	"trainerdesk/internal/domain/training"
)

// CreateTrainingInput carries the add-training form: session fields plus the
// owning customer's self href, which the upstream service expects as the
// customer reference.
type CreateTrainingInput struct {
	CustomerSelfHref string
	CustomerName     string // display only, for the notification mail
	Date             string // ISO-8601 timestamp
	Duration         int    // minutes
	Activity         string
}

// CreateTrainingDeps holds dependencies for CreateTraining. Email is
// optional; a nil sender skips the booking notification.
type CreateTrainingDeps struct {
	API      TrainingWriteAPI
	Email    email.Sender
	NotifyTo string
}

// ExecuteCreateTraining validates the form, POSTs the new session, then
// re-fetches and re-enriches the collection. A configured email sender gets
// a best-effort booking notification; its failure never fails the create.
// PRE: input.CustomerSelfHref addresses an existing customer
// POST: on success, returns refreshed training rows containing the new
// session; *MutationError on write failure
func ExecuteCreateTraining(ctx context.Context, input CreateTrainingInput, deps CreateTrainingDeps) ([]projections.TrainingRow, error) {
	if input.CustomerSelfHref == "" {
		return nil, errors.New("a customer must be selected")
	}
	t := training.Training{
		Date:     input.Date,
		Duration: input.Duration,
		Activity: input.Activity,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	p := restapi.TrainingPayload{
		Date:     input.Date,
		Duration: input.Duration,
		Activity: input.Activity,
		Customer: input.CustomerSelfHref,
	}
	if err := deps.API.CreateTraining(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("training_created", "activity", input.Activity, "customer", input.CustomerSelfHref)

	if deps.Email != nil && deps.NotifyTo != "" {
		notifyBooking(ctx, input, deps)
	}

	trainings, err := deps.API.ListTrainings(ctx)
	if err != nil {
		return nil, err
	}
	enriched := enrichment.EnrichTrainings(ctx, trainings, deps.API)
	return projections.TrainingRows(enriched), nil
}

func notifyBooking(ctx context.Context, input CreateTrainingInput, deps CreateTrainingDeps) {
	who := input.CustomerName
	if who == "" {
		who = "a customer"
	}
	req := email.SendRequest{
		To:      []string{deps.NotifyTo},
		Subject: fmt.Sprintf("New booking: %s on %s", input.Activity, projections.FormatDate(input.Date)),
		HTML: fmt.Sprintf("<p>%s booked <strong>%s</strong> (%d min) on %s at %s.</p>",
			who, input.Activity, input.Duration,
			projections.FormatDate(input.Date), projections.FormatTime(input.Date)),
	}
	if _, err := deps.Email.Send(ctx, req); err != nil {
		slog.Warn("booking_notification_failed", "error", err)
	}
}
