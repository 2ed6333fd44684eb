package listutil

import (
	"net/url"
	"testing"
)

// TestParseListParams_DefaultsAndClamping verifies defaults for missing or
// out-of-range values.
func TestParseListParams_DefaultsAndClamping(t *testing.T) {
	p := ParseListParams(url.Values{}, []string{"lastname"})
	if p.Page != 1 || p.PerPage != DefaultPerPage {
		t.Fatalf("page=%d per_page=%d want 1/%d", p.Page, p.PerPage, DefaultPerPage)
	}
	if p.Sort != "" || p.Dir != "asc" {
		t.Fatalf("sort=%q dir=%q want empty/asc", p.Sort, p.Dir)
	}

	q := url.Values{"page": {"-3"}, "per_page": {"999"}, "sort": {"nosuchcol"}, "dir": {"sideways"}}
	p = ParseListParams(q, []string{"lastname"})
	if p.Page != 1 || p.PerPage != DefaultPerPage || p.Sort != "" || p.Dir != "asc" {
		t.Fatalf("unexpected params: %+v", p)
	}
}

// TestParseListParams_AllowedValues verifies recognised values pass through.
func TestParseListParams_AllowedValues(t *testing.T) {
	q := url.Values{"page": {"2"}, "per_page": {"25"}, "sort": {"lastname"}, "dir": {"desc"}, "q": {"virtanen"}}
	p := ParseListParams(q, []string{"firstname", "lastname"})
	if p.Page != 2 || p.PerPage != 25 || p.Sort != "lastname" || p.Dir != "desc" || p.Search != "virtanen" {
		t.Fatalf("unexpected params: %+v", p)
	}
}

// TestSortRows_AscDescAndStability verifies string sorting both directions.
func TestSortRows_AscDescAndStability(t *testing.T) {
	type row struct{ Name string }
	rows := []row{{"delta"}, {"Alpha"}, {"charlie"}, {"bravo"}}
	key := func(r row, col string) string { return r.Name }

	SortRows(rows, SortParams{Sort: "name", Dir: "asc"}, key)
	if rows[0].Name != "Alpha" || rows[3].Name != "delta" {
		t.Fatalf("asc sort wrong: %+v", rows)
	}

	SortRows(rows, SortParams{Sort: "name", Dir: "desc"}, key)
	if rows[0].Name != "delta" || rows[3].Name != "Alpha" {
		t.Fatalf("desc sort wrong: %+v", rows)
	}

	before := append([]row(nil), rows...)
	SortRows(rows, SortParams{}, key)
	for i := range rows {
		if rows[i] != before[i] {
			t.Fatal("empty sort column must be a no-op")
		}
	}
}

// TestNumericKey_SortsNumerically verifies fixed-width keys order ints.
func TestNumericKey_SortsNumerically(t *testing.T) {
	if !(NumericKey(9) < NumericKey(10)) {
		t.Fatal("9 must sort before 10")
	}
	if !(NumericKey(45) < NumericKey(120)) {
		t.Fatal("45 must sort before 120")
	}
}

// TestApplyPage_SlicesAndClamps verifies page slicing edge cases.
func TestApplyPage_SlicesAndClamps(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5, 6, 7}

	info := NewPageInfo(1, 5, len(rows))
	if got := ApplyPage(rows, info); len(got) != 5 || got[0] != 1 {
		t.Fatalf("page 1: %v", got)
	}

	info = NewPageInfo(2, 5, len(rows))
	if got := ApplyPage(rows, info); len(got) != 2 || got[0] != 6 {
		t.Fatalf("page 2: %v", got)
	}

	// Requesting past the end clamps to the last page.
	info = NewPageInfo(99, 5, len(rows))
	if info.Page != 2 {
		t.Fatalf("page=%d want 2", info.Page)
	}

	if got := ApplyPage([]int{}, NewPageInfo(1, 5, 0)); len(got) != 0 {
		t.Fatalf("empty rows: %v", got)
	}
}

// TestNewPageInfo_TotalPages verifies ceil division and minimums.
func TestNewPageInfo_TotalPages(t *testing.T) {
	if info := NewPageInfo(1, 10, 0); info.TotalPages != 1 {
		t.Fatalf("total pages=%d want 1", info.TotalPages)
	}
	if info := NewPageInfo(1, 10, 31); info.TotalPages != 4 {
		t.Fatalf("total pages=%d want 4", info.TotalPages)
	}
	if !NewPageInfo(1, 10, 31).ShowPagination() {
		t.Fatal("expected pagination for 31 rows")
	}
	if NewPageInfo(1, 10, 9).ShowPagination() {
		t.Fatal("no pagination for 9 rows")
	}
}
