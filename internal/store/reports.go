package store

import (
	"context"
	"database/sql"

	"github.com/boxboard/apiserver/types"
)

// ReportRepository runs the read-only aggregate queries behind the
// dashboard and statistics views.
type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// DashboardCounts returns the headline totals: users, locations, items
// and open assignments.
func (r *ReportRepository) DashboardCounts(ctx context.Context) (types.DashboardCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM utenti),
			(SELECT COUNT(*) FROM locations),
			(SELECT COUNT(*) FROM oggetti),
			(SELECT COUNT(*) FROM oggetto_attivita WHERE completata = FALSE)`
	var counts types.DashboardCounts
	err := r.db.QueryRowContext(ctx, query).Scan(
		&counts.Users,
		&counts.Locations,
		&counts.Items,
		&counts.OpenAssignments,
	)
	if err != nil {
		return types.DashboardCounts{}, err
	}
	return counts, nil
}

// UserActivitySummaries returns per-user assignment totals split into
// completed and in-progress. Users without assignments are included
// with zero counts.
func (r *ReportRepository) UserActivitySummaries(ctx context.Context) ([]types.UserActivitySummary, error) {
	const query = `
		SELECT u.nome,
			COUNT(oa.id) AS totale_attivita,
			COALESCE(SUM(CASE WHEN oa.completata THEN 1 ELSE 0 END), 0) AS completate,
			COALESCE(SUM(CASE WHEN NOT oa.completata THEN 1 ELSE 0 END), 0) AS in_corso
		FROM utenti u
		LEFT JOIN oggetto_attivita oa ON u.id = oa.assegnato_a
		GROUP BY u.id, u.nome
		ORDER BY totale_attivita DESC, u.nome`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]types.UserActivitySummary, 0)
	for rows.Next() {
		var summary types.UserActivitySummary
		if err := rows.Scan(
			&summary.UserName,
			&summary.Total,
			&summary.Completed,
			&summary.InProgress,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// StatusDistribution returns item counts grouped by status, most
// populous first.
func (r *ReportRepository) StatusDistribution(ctx context.Context) ([]types.StatusCount, error) {
	const query = `
		SELECT stato, COUNT(*) AS count
		FROM oggetti
		GROUP BY stato
		ORDER BY count DESC, stato`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]types.StatusCount, 0)
	for rows.Next() {
		var count types.StatusCount
		if err := rows.Scan(&count.Status, &count.Count); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// DueAssignments returns open assignments with a planned date, soonest
// first, bounded by limit. DaysRemaining is planned date minus today.
func (r *ReportRepository) DueAssignments(ctx context.Context, limit int) ([]types.DueAssignment, error) {
	if limit < 1 {
		limit = 10
	}

	const query = `
		SELECT o.nome AS oggetto,
			a.nome AS attivita,
			COALESCE(u.nome, '') AS assegnato_a,
			oa.data_prevista,
			(oa.data_prevista - CURRENT_DATE) AS giorni_rimanenti
		FROM oggetto_attivita oa
		JOIN oggetti o ON oa.oggetto_id = o.id
		JOIN attivita a ON oa.attivita_id = a.id
		LEFT JOIN utenti u ON oa.assegnato_a = u.id
		WHERE oa.completata = FALSE AND oa.data_prevista IS NOT NULL
		ORDER BY oa.data_prevista ASC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	due := make([]types.DueAssignment, 0)
	for rows.Next() {
		var assignment types.DueAssignment
		if err := rows.Scan(
			&assignment.ItemName,
			&assignment.ActivityName,
			&assignment.AssigneeName,
			&assignment.PlannedDate,
			&assignment.DaysRemaining,
		); err != nil {
			return nil, err
		}
		due = append(due, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return due, nil
}

// ItemsPerLocation returns per-location item totals split into
// containers and plain items.
func (r *ReportRepository) ItemsPerLocation(ctx context.Context) ([]types.LocationItemCount, error) {
	const query = `
		SELECT l.nome AS location,
			COUNT(o.id) AS totale_oggetti,
			COALESCE(SUM(CASE WHEN o.tipo = 'contenitore' THEN 1 ELSE 0 END), 0) AS contenitori,
			COALESCE(SUM(CASE WHEN o.tipo = 'oggetto' THEN 1 ELSE 0 END), 0) AS oggetti_semplici
		FROM locations l
		LEFT JOIN oggetti o ON l.id = o.location_id
		GROUP BY l.id, l.nome
		ORDER BY totale_oggetti DESC, l.nome`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]types.LocationItemCount, 0)
	for rows.Next() {
		var count types.LocationItemCount
		if err := rows.Scan(
			&count.LocationName,
			&count.Total,
			&count.Containers,
			&count.PlainItems,
		); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// ItemsDetectedByMonth returns YYYY-MM buckets of items detected over
// the last twelve months.
func (r *ReportRepository) ItemsDetectedByMonth(ctx context.Context) ([]types.MonthlyCount, error) {
	const query = `
		SELECT to_char(data_rilevamento, 'YYYY-MM') AS mese, COUNT(*) AS count
		FROM oggetti
		WHERE data_rilevamento >= CURRENT_DATE - INTERVAL '12 months'
		GROUP BY to_char(data_rilevamento, 'YYYY-MM')
		ORDER BY mese`
	return r.monthlyCounts(ctx, query)
}

// CompletionsByMonth returns YYYY-MM buckets of assignments completed
// over the last twelve months.
func (r *ReportRepository) CompletionsByMonth(ctx context.Context) ([]types.MonthlyCount, error) {
	const query = `
		SELECT to_char(data_completamento, 'YYYY-MM') AS mese, COUNT(*) AS count
		FROM oggetto_attivita
		WHERE completata = TRUE AND data_completamento >= CURRENT_DATE - INTERVAL '12 months'
		GROUP BY to_char(data_completamento, 'YYYY-MM')
		ORDER BY mese`
	return r.monthlyCounts(ctx, query)
}

func (r *ReportRepository) monthlyCounts(ctx context.Context, query string) ([]types.MonthlyCount, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]types.MonthlyCount, 0)
	for rows.Next() {
		var count types.MonthlyCount
		if err := rows.Scan(&count.Month, &count.Count); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// UserPerformances returns, for each user with at least one assignment,
// the completion percentage (two decimals) and the average lateness in
// days over completed assignments.
func (r *ReportRepository) UserPerformances(ctx context.Context) ([]types.UserPerformance, error) {
	const query = `
		SELECT u.nome,
			COUNT(oa.id) AS attivita_assegnate,
			COALESCE(SUM(CASE WHEN oa.completata THEN 1 ELSE 0 END), 0) AS completate,
			COALESCE(ROUND(SUM(CASE WHEN oa.completata THEN 1 ELSE 0 END) * 100.0 /
				NULLIF(COUNT(oa.id), 0), 2), 0) AS percentuale_completamento,
			AVG(oa.data_completamento - oa.data_prevista) AS ritardo_medio_giorni
		FROM utenti u
		LEFT JOIN oggetto_attivita oa ON u.id = oa.assegnato_a
		GROUP BY u.id, u.nome
		HAVING COUNT(oa.id) > 0
		ORDER BY percentuale_completamento DESC, u.nome`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	performances := make([]types.UserPerformance, 0)
	for rows.Next() {
		var performance types.UserPerformance
		if err := rows.Scan(
			&performance.UserName,
			&performance.Assigned,
			&performance.Completed,
			&performance.CompletionPercent,
			&performance.AvgDelayDays,
		); err != nil {
			return nil, err
		}
		performances = append(performances, performance)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return performances, nil
}

// TopContainers returns the containers holding the most items,
// descending, bounded by limit.
func (r *ReportRepository) TopContainers(ctx context.Context, limit int) ([]types.ContainerUsage, error) {
	if limit < 1 {
		limit = 10
	}

	const query = `
		SELECT c.nome AS contenitore, COUNT(o.id) AS oggetti_contenuti
		FROM oggetti c
		JOIN oggetti o ON c.id = o.contenitore_id
		WHERE c.tipo = 'contenitore'
		GROUP BY c.id, c.nome
		ORDER BY oggetti_contenuti DESC, c.nome
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	containers := make([]types.ContainerUsage, 0)
	for rows.Next() {
		var usage types.ContainerUsage
		if err := rows.Scan(&usage.ContainerName, &usage.ItemCount); err != nil {
			return nil, err
		}
		containers = append(containers, usage)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return containers, nil
}
