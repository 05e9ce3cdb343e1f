package store

import (
	"database/sql"
	"time"
)

// UpsertRun inserts or updates a run's raw fields. Derived metric columns
// are untouched so a re-sync never clobbers computed values.
func (db *DB) UpsertRun(r *Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (id, athlete_id, start_time, distance_m, duration_s, avg_hr, avg_cadence)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			start_time = excluded.start_time,
			distance_m = excluded.distance_m,
			duration_s = excluded.duration_s,
			avg_hr = excluded.avg_hr,
			avg_cadence = excluded.avg_cadence,
			updated_at = CURRENT_TIMESTAMP
	`, r.ID, r.AthleteID, r.StartTime.UTC().Format(time.RFC3339), r.DistanceM, r.DurationS, r.AvgHR, r.AvgCadence)
	return err
}

// SaveRunMetrics writes derived metrics for a run once. Runs that already
// have metrics are skipped, preserving the write-once invariant.
func (db *DB) SaveRunMetrics(r *Run) error {
	_, err := db.Exec(`
		UPDATE runs SET
			tss = ?, intensity_factor = ?, normalized_pace = ?,
			decoupling_pct = ?, vdot = ?, metrics_computed = 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND metrics_computed = 0
	`, r.TSS, r.IntensityFactor, r.NormalizedPace, r.DecouplingPct, r.VDOT, r.ID)
	return err
}

// GetRun retrieves a run by ID.
func (db *DB) GetRun(id int64) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, athlete_id, start_time, distance_m, duration_s, avg_hr, avg_cadence,
			tss, intensity_factor, normalized_pace, decoupling_pct, vdot, metrics_computed
		FROM runs WHERE id = ?
	`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	return r, err
}

// ListRunsSince returns an athlete's runs starting at or after the given
// time, ordered oldest first.
func (db *DB) ListRunsSince(athleteID int64, since time.Time) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, start_time, distance_m, duration_s, avg_hr, avg_cadence,
			tss, intensity_factor, normalized_pace, decoupling_pct, vdot, metrics_computed
		FROM runs
		WHERE athlete_id = ? AND start_time >= ?
		ORDER BY start_time ASC
	`, athleteID, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRuns(rows)
}

// ListRunsBetween returns an athlete's runs in [from, to), ordered oldest first.
func (db *DB) ListRunsBetween(athleteID int64, from, to time.Time) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, start_time, distance_m, duration_s, avg_hr, avg_cadence,
			tss, intensity_factor, normalized_pace, decoupling_pct, vdot, metrics_computed
		FROM runs
		WHERE athlete_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time ASC
	`, athleteID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRuns(rows)
}

// ListAthleteIDs returns the distinct athletes that have at least one run.
func (db *DB) ListAthleteIDs() ([]int64, error) {
	rows, err := db.Query(`SELECT DISTINCT athlete_id FROM runs ORDER BY athlete_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var start string
	var computed int
	err := row.Scan(
		&r.ID, &r.AthleteID, &start, &r.DistanceM, &r.DurationS, &r.AvgHR, &r.AvgCadence,
		&r.TSS, &r.IntensityFactor, &r.NormalizedPace, &r.DecouplingPct, &r.VDOT, &computed,
	)
	if err != nil {
		return nil, err
	}
	r.StartTime, err = time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, err
	}
	r.MetricsComputed = computed == 1
	return &r, nil
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}
