package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"trainerdesk/internal/application/enrichment"
	"trainerdesk/internal/application/projections"
)

// DeleteTrainingInput carries the delete confirmation.
type DeleteTrainingInput struct {
	TrainingID string
	Confirmed  bool
}

// DeleteTrainingDeps holds dependencies for DeleteTraining.
type DeleteTrainingDeps struct {
	API TrainingWriteAPI
}

// ExecuteDeleteTraining DELETEs the training, then re-fetches and
// re-enriches the collection.
// PRE: input.Confirmed is true
// POST: on success, returns refreshed rows without the deleted training;
// *MutationError on write failure
func ExecuteDeleteTraining(ctx context.Context, input DeleteTrainingInput, deps DeleteTrainingDeps) ([]projections.TrainingRow, error) {
	if input.TrainingID == "" {
		return nil, errors.New("training id is missing")
	}
	if !input.Confirmed {
		return nil, errors.New("delete must be confirmed")
	}

	if err := deps.API.DeleteTraining(ctx, input.TrainingID); err != nil {
		return nil, err
	}
	slog.Info("training_deleted", "id", input.TrainingID)

	trainings, err := deps.API.ListTrainings(ctx)
	if err != nil {
		return nil, err
	}
	enriched := enrichment.EnrichTrainings(ctx, trainings, deps.API)
	return projections.TrainingRows(enriched), nil
}
