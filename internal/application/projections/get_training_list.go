package projections

import (
	"context"

	"trainerdesk/internal/application/enrichment"
	"trainerdesk/internal/application/listutil"
)

// TrainingSortColumns are the columns the trainings grid may sort on.
var TrainingSortColumns = []string{"date", "activity", "duration", "customerName"}

// GetTrainingListQuery carries query parameters for the trainings grid.
type GetTrainingListQuery struct {
	List listutil.ListParams
}

// GetTrainingListResult carries the page of training rows.
type GetTrainingListResult struct {
	Rows     []TrainingRow
	PageInfo listutil.PageInfo
}

// GetTrainingListDeps holds dependencies for GetTrainingList.
type GetTrainingListDeps struct {
	API TrainingAPI
}

// QueryGetTrainingList fetches the training collection, enriches each
// training with its customer's display name, and projects grid rows.
// PRE: deps.API is non-nil
// POST: rows preserve collection order unless a sort column is requested;
// per-training lookup failures yield "Unknown" names and never fail the
// query; fetch errors on the collection itself propagate for page-level
// handling
func QueryGetTrainingList(ctx context.Context, query GetTrainingListQuery, deps GetTrainingListDeps) (GetTrainingListResult, error) {
	trainings, err := deps.API.ListTrainings(ctx)
	if err != nil {
		return GetTrainingListResult{}, err
	}

	enriched := enrichment.EnrichTrainings(ctx, trainings, deps.API)

	// Sort the enriched records, not the rendered rows: dd.MM.yyyy strings
	// do not sort chronologically, the raw ISO timestamps do.
	listutil.SortRows(enriched, query.List.SortParams, func(e enrichment.Enriched, col string) string {
		switch col {
		case "date":
			return e.Date
		case "activity":
			return e.Activity
		case "duration":
			return listutil.NumericKey(e.Duration)
		case "customerName":
			return e.CustomerName
		}
		return ""
	})

	rows := TrainingRows(enriched)
	info := listutil.NewPageInfo(query.List.Page, query.List.PerPage, len(rows))
	return GetTrainingListResult{
		Rows:     listutil.ApplyPage(rows, info),
		PageInfo: info,
	}, nil
}
