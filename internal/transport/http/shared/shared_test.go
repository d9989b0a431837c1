package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidatorIssuesSorted(t *testing.T) {
	v := NewValidator()
	v.Required("lastName", " ", "is required")
	v.Amount("baseSalary", -1)
	v.Enum("status", "Sick", []string{"Present", "Absent"}, "is not a known status")
	v.Date("date", "15/01/2024")
	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 4 || issues[0].Field != "baseSalary" || issues[3].Field != "status" {
		t.Fatalf("unexpected issues %+v", issues)
	}

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req") || rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 rejection, got %d", rec.Code)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	cases := map[string]bool{
		`{"name":"a"}`:             true,
		`{"name":"a","extra":1}`:   false,
		`{"name":"a"}{"name":"b"}`: false,
		`not json`:                 false,
	}
	for body, want := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		if got := DecodeJSON(rec, req, &dst, "req"); got != want {
			t.Fatalf("%s: expected %v, got %v", body, want, got)
		}
	}
}

func TestDatesAndPeriods(t *testing.T) {
	got, err := NormalizeDate("2024-01-15T08:00:00Z")
	if err != nil || got != "2024-01-15" {
		t.Fatalf("expected 2024-01-15, got %q (%v)", got, err)
	}
	label, err := PeriodLabel("2024-03")
	if err != nil || label != "March 2024" {
		t.Fatalf("expected March 2024, got %q (%v)", label, err)
	}
	if _, err := PeriodLabel("2024-13"); err == nil {
		t.Fatal("expected invalid month error")
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := Page(items, Pagination{Limit: 2, Offset: 1}); len(got) != 2 || got[0] != 2 {
		t.Fatalf("unexpected page %v", got)
	}
	if got := Page(items, Pagination{Limit: 10, Offset: 9}); len(got) != 0 {
		t.Fatalf("expected empty page, got %v", got)
	}
	req := httptest.NewRequest(http.MethodGet, "/?limit=500&offset=-1", nil)
	if p := ParsePagination(req, 50, 200); p.Limit != 200 || p.Offset != 0 {
		t.Fatalf("unexpected pagination %+v", p)
	}
}
