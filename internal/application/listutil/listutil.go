package listutil

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// SortParams carries sorting parameters parsed from a request.
type SortParams struct {
	Sort string // column name
	Dir  string // "asc" or "desc"
}

// ListParams combines list view parameters.
type ListParams struct {
	PageParams
	SortParams
	Search string // free-text search query
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 10

// PerPageOptions are the allowed rows-per-page values, matching the grid's
// page-size selector.
var PerPageOptions = []int{5, 10, 25}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// ParseListParams parses page, per_page, sort, dir and q from URL query
// values.
// PRE: allowedSortCols lists the sortable column names
// POST: returns valid params with defaults applied; Dir is "asc" or "desc"
func ParseListParams(q url.Values, allowedSortCols []string) ListParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !isValidPerPage(perPage) {
		perPage = DefaultPerPage
	}

	sortCol := q.Get("sort")
	if !isAllowedColumn(sortCol, allowedSortCols) {
		sortCol = ""
	}
	dir := q.Get("dir")
	if dir != "asc" && dir != "desc" {
		dir = "asc"
	}

	return ListParams{
		PageParams: PageParams{Page: page, PerPage: perPage},
		SortParams: SortParams{Sort: sortCol, Dir: dir},
		Search:     q.Get("q"),
	}
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first row on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ShowPagination returns true if pagination controls should be displayed.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

// PageNumbers returns at most 5 page numbers centered on the current page.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// SortRows sorts rows in place by the requested column. The key function maps
// a row and column name to a comparable string; rows come from a remote API
// already materialized in memory, so sorting happens here rather than in SQL.
// PRE: key is non-nil
// POST: stable sort; no-op when params.Sort is empty
func SortRows[T any](rows []T, params SortParams, key func(row T, col string) string) {
	if params.Sort == "" {
		return
	}
	desc := params.Dir == "desc"
	sort.SliceStable(rows, func(i, j int) bool {
		a := strings.ToLower(key(rows[i], params.Sort))
		b := strings.ToLower(key(rows[j], params.Sort))
		if desc {
			return a > b
		}
		return a < b
	})
}

// ApplyPage slices rows down to the current page.
// PRE: info came from NewPageInfo for len(rows)
// POST: returns the rows visible on info.Page; empty slice past the end
func ApplyPage[T any](rows []T, info PageInfo) []T {
	start := info.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := start + info.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// NumericKey renders an int as a fixed-width string so numeric columns sort
// correctly under string comparison.
func NumericKey(n int) string {
	return fmt.Sprintf("%012d", n)
}

func isValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}

func isAllowedColumn(col string, allowed []string) bool {
	for _, a := range allowed {
		if col == a {
			return true
		}
	}
	return false
}
