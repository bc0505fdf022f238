// Package browse implements catalog browsing over the marketplace API: the
// filter records for the two catalogs and a controller that keeps a result
// snapshot consistent with the latest filter intent under concurrent,
// possibly out-of-order fetches.
package browse

import (
	"net/url"
	"strings"
)

// allSentinel is what the filter widgets submit for "no preference"; it is
// normalized to unset before a query is built.
const allSentinel = "all"

// JobFilters is the filter record of the Find Work catalog.
type JobFilters struct {
	Category   string
	Location   string
	JobType    string
	BudgetType string
}

// JobFiltersFromQuery builds the record from request query parameters.
func JobFiltersFromQuery(q url.Values) JobFilters {
	return JobFilters{
		Category:   normalize(q.Get("category")),
		Location:   normalize(q.Get("location")),
		JobType:    normalize(q.Get("job_type")),
		BudgetType: normalize(q.Get("budget_type")),
	}
}

// Values renders the record as backend query parameters. Unset fields are
// omitted entirely, never sent as empty values.
func (f JobFilters) Values() url.Values {
	v := url.Values{}
	setIfPresent(v, "category", f.Category)
	setIfPresent(v, "location", f.Location)
	setIfPresent(v, "job_type", f.JobType)
	setIfPresent(v, "budget_type", f.BudgetType)
	return v
}

// WorkerFilters is the filter record of the Hire Talent catalog.
type WorkerFilters struct {
	Category string
	Skills   string
	Location string
}

// WorkerFiltersFromQuery builds the record from request query parameters.
func WorkerFiltersFromQuery(q url.Values) WorkerFilters {
	return WorkerFilters{
		Category: normalize(q.Get("category")),
		Skills:   normalize(q.Get("skills")),
		Location: normalize(q.Get("location")),
	}
}

// Values renders the record as backend query parameters, omitting unset
// fields.
func (f WorkerFilters) Values() url.Values {
	v := url.Values{}
	setIfPresent(v, "category", f.Category)
	setIfPresent(v, "skills", f.Skills)
	setIfPresent(v, "location", f.Location)
	return v
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == allSentinel {
		return ""
	}
	return s
}

func setIfPresent(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// SplitCSV splits a comma-separated input field into trimmed entries. An
// empty or whitespace-only input yields an empty list, not a list holding
// one empty string.
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
