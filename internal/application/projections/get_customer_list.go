package projections

import (
	"context"
	"strings"

	"trainerdesk/internal/application/listutil"
)

// CustomerSortColumns are the columns the customers grid may sort on.
var CustomerSortColumns = []string{"firstname", "lastname", "streetaddress", "postcode", "city", "email", "phone"}

// GetCustomerListQuery carries query parameters for the customers grid.
type GetCustomerListQuery struct {
	List listutil.ListParams
}

// GetCustomerListResult carries the page of customer rows.
type GetCustomerListResult struct {
	Rows     []CustomerRow
	PageInfo listutil.PageInfo
}

// GetCustomerListDeps holds dependencies for GetCustomerList.
type GetCustomerListDeps struct {
	API CustomerAPI
}

// QueryGetCustomerList fetches the customer collection and projects it into
// searchable, sortable, paged grid rows.
// PRE: deps.API is non-nil
// POST: rows reflect the upstream collection at fetch time; fetch errors
// (*NetworkError, *ShapeError) propagate for page-level handling
func QueryGetCustomerList(ctx context.Context, query GetCustomerListQuery, deps GetCustomerListDeps) (GetCustomerListResult, error) {
	customers, err := deps.API.ListCustomers(ctx)
	if err != nil {
		return GetCustomerListResult{}, err
	}

	rows := CustomerRows(customers)

	if q := strings.ToLower(strings.TrimSpace(query.List.Search)); q != "" {
		filtered := rows[:0:0]
		for _, r := range rows {
			haystack := strings.ToLower(strings.Join([]string{
				r.Firstname, r.Lastname, r.Streetaddress, r.City, r.Email, r.Phone,
			}, " "))
			if strings.Contains(haystack, q) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	listutil.SortRows(rows, query.List.SortParams, func(r CustomerRow, col string) string {
		switch col {
		case "firstname":
			return r.Firstname
		case "lastname":
			return r.Lastname
		case "streetaddress":
			return r.Streetaddress
		case "postcode":
			return r.Postcode
		case "city":
			return r.City
		case "email":
			return r.Email
		case "phone":
			return r.Phone
		}
		return ""
	})

	info := listutil.NewPageInfo(query.List.Page, query.List.PerPage, len(rows))
	return GetCustomerListResult{
		Rows:     listutil.ApplyPage(rows, info),
		PageInfo: info,
	}, nil
}
