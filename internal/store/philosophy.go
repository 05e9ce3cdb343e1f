package store

import (
	"database/sql"
	"fmt"
	"time"
)

// TransitionPeriod closes the athlete's open philosophy period (if any) and
// opens the given one in a single transaction, so the at-most-one-open
// invariant holds even against a concurrent duplicate trigger: the partial
// unique index on (athlete_id) WHERE ended_at IS NULL makes the second
// writer fail rather than leave two open periods.
func (db *DB) TransitionPeriod(p *PhilosophyPeriod) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := p.StartedAt.UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`
		UPDATE philosophy_periods SET ended_at = ?
		WHERE athlete_id = ? AND ended_at IS NULL
	`, now, p.AthleteID); err != nil {
		return fmt.Errorf("closing open period: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO philosophy_periods (
			id, athlete_id, limiter, mode, volume_target_km,
			easy_pct, moderate_pct, hard_pct,
			allowed_workouts, forbidden_workouts,
			progression_pct, duration_weeks, success_metric, started_at, ended_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`, p.ID, p.AthleteID, p.Limiter, p.Mode, p.VolumeTargetKm,
		p.EasyPct, p.ModeratePct, p.HardPct,
		p.AllowedWorkouts, p.ForbiddenWorkouts,
		p.ProgressionPct, p.DurationWeeks, p.SuccessMetric, now); err != nil {
		return fmt.Errorf("opening period: %w", err)
	}

	return tx.Commit()
}

// GetOpenPeriod returns the athlete's open period, or ErrNoOpenPeriod.
func (db *DB) GetOpenPeriod(athleteID int64) (*PhilosophyPeriod, error) {
	row := db.QueryRow(`
		SELECT id, athlete_id, limiter, mode, volume_target_km,
			easy_pct, moderate_pct, hard_pct,
			allowed_workouts, forbidden_workouts,
			progression_pct, duration_weeks, success_metric, started_at, ended_at
		FROM philosophy_periods
		WHERE athlete_id = ? AND ended_at IS NULL
	`, athleteID)
	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, ErrNoOpenPeriod
	}
	return p, err
}

// ListPeriods returns the athlete's periods, newest first.
func (db *DB) ListPeriods(athleteID int64, limit int) ([]PhilosophyPeriod, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, limiter, mode, volume_target_km,
			easy_pct, moderate_pct, hard_pct,
			allowed_workouts, forbidden_workouts,
			progression_pct, duration_weeks, success_metric, started_at, ended_at
		FROM philosophy_periods
		WHERE athlete_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`, athleteID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []PhilosophyPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *p)
	}
	return periods, rows.Err()
}

func scanPeriod(row rowScanner) (*PhilosophyPeriod, error) {
	var p PhilosophyPeriod
	var started string
	var ended sql.NullString
	err := row.Scan(
		&p.ID, &p.AthleteID, &p.Limiter, &p.Mode, &p.VolumeTargetKm,
		&p.EasyPct, &p.ModeratePct, &p.HardPct,
		&p.AllowedWorkouts, &p.ForbiddenWorkouts,
		&p.ProgressionPct, &p.DurationWeeks, &p.SuccessMetric, &started, &ended,
	)
	if err != nil {
		return nil, err
	}
	p.StartedAt, err = time.Parse(time.RFC3339, started)
	if err != nil {
		return nil, err
	}
	if ended.Valid {
		t, err := time.Parse(time.RFC3339, ended.String)
		if err != nil {
			return nil, err
		}
		p.EndedAt = &t
	}
	return &p, nil
}
