package models

// CategoryCount is a per-category staff tally.
type CategoryCount struct {
	Category StaffCategory `db:"category" json:"category"`
	Count    int           `db:"count" json:"count"`
}

// PGYearCount is a per-year tally of postgraduate staff.
type PGYearCount struct {
	PGYear *string `db:"pg_year" json:"pgYear"`
	Count  int     `db:"count" json:"count"`
}

// DashboardSummary aggregates the overview figures shown on the landing page.
type DashboardSummary struct {
	TotalStaff       int            `json:"totalStaff"`
	CategoryCounts   map[string]int `json:"categoryCounts"`
	PGsByYear        map[string]int `json:"pgsByYear"`
	TotalCamps       int            `json:"totalCamps"`
	TotalAssignments int            `json:"totalAssignments"`
}
