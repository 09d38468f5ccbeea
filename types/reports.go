package types

import "time"

// UrgentWindowDays bounds the "urgent" classification for due
// assignments: due today through due in three days.
const UrgentWindowDays = 3

// DashboardCounts holds the headline totals shown on the dashboard.
type DashboardCounts struct {
	Users           int `json:"utenti"`
	Locations       int `json:"locations"`
	Items           int `json:"oggetti"`
	OpenAssignments int `json:"attivita_pendenti"`
}

// UserActivitySummary is one row of the per-user assignment breakdown.
type UserActivitySummary struct {
	UserName   string `json:"nome"`
	Total      int    `json:"totale_attivita"`
	Completed  int    `json:"completate"`
	InProgress int    `json:"in_corso"`
}

// StatusCount is one bucket of the item status distribution.
type StatusCount struct {
	Status string `json:"stato"`
	Count  int    `json:"count"`
}

// DueAssignment is one row of the upcoming/overdue assignment report.
type DueAssignment struct {
	ItemName      string    `json:"oggetto"`
	ActivityName  string    `json:"attivita"`
	AssigneeName  string    `json:"assegnato_a"`
	PlannedDate   time.Time `json:"data_prevista"`
	DaysRemaining int       `json:"giorni_rimanenti"`
}

// Overdue reports whether the planned date has passed.
func (d DueAssignment) Overdue() bool {
	return d.DaysRemaining < 0
}

// Urgent reports whether the assignment is due within the urgent window.
func (d DueAssignment) Urgent() bool {
	return d.DaysRemaining >= 0 && d.DaysRemaining <= UrgentWindowDays
}

// LocationItemCount is one row of the items-per-location report.
type LocationItemCount struct {
	LocationName string `json:"location"`
	Total        int    `json:"totale_oggetti"`
	Containers   int    `json:"contenitori"`
	PlainItems   int    `json:"oggetti_semplici"`
}

// MonthlyCount is one bucket of a month-by-month time series.
// Month is formatted YYYY-MM.
type MonthlyCount struct {
	Month string `json:"mese"`
	Count int    `json:"count"`
}

// UserPerformance is one row of the user performance report. Users with
// zero assignments are excluded.
type UserPerformance struct {
	UserName string `json:"nome"`

	Assigned  int `json:"attivita_assegnate"`
	Completed int `json:"completate"`

	// CompletionPercent is completed/assigned x 100, rounded to two decimals.
	CompletionPercent float64 `json:"percentuale_completamento"`

	// AvgDelayDays is the mean of (completion date - planned date) over
	// completed assignments, nil when no completed assignment carries
	// both dates.
	AvgDelayDays *float64 `json:"ritardo_medio_giorni"`
}

// ContainerUsage is one row of the top-containers report.
type ContainerUsage struct {
	ContainerName string `json:"contenitore"`
	ItemCount     int    `json:"oggetti_contenuti"`
}
