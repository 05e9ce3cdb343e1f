package store

import (
	"database/sql"
	"time"
)

// InsertAnalysis appends a bottleneck analysis to the detection log.
// Rows are never updated or deleted.
func (db *DB) InsertAnalysis(a *BottleneckAnalysis) error {
	_, err := db.Exec(`
		INSERT INTO bottleneck_analyses (
			id, athlete_id, primary_limiter, strength, score, evidence, directive,
			secondary_signals, confidence, limiter_changed, state_snapshot, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.AthleteID, a.PrimaryLimiter, a.Strength, a.Score, a.Evidence, a.Directive,
		a.Secondary, a.Confidence, boolToInt(a.LimiterChanged), a.StateSnapshot,
		a.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// LatestAnalysis returns the most recent analysis for an athlete, or nil
// if none has been recorded.
func (db *DB) LatestAnalysis(athleteID int64) (*BottleneckAnalysis, error) {
	row := db.QueryRow(`
		SELECT id, athlete_id, primary_limiter, strength, score, evidence, directive,
			secondary_signals, confidence, limiter_changed, state_snapshot, created_at
		FROM bottleneck_analyses
		WHERE athlete_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, athleteID)
	a, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// ListAnalyses returns the athlete's analyses, newest first.
func (db *DB) ListAnalyses(athleteID int64, limit int) ([]BottleneckAnalysis, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, primary_limiter, strength, score, evidence, directive,
			secondary_signals, confidence, limiter_changed, state_snapshot, created_at
		FROM bottleneck_analyses
		WHERE athlete_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, athleteID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []BottleneckAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}

func scanAnalysis(row rowScanner) (*BottleneckAnalysis, error) {
	var a BottleneckAnalysis
	var changed int
	var created string
	err := row.Scan(
		&a.ID, &a.AthleteID, &a.PrimaryLimiter, &a.Strength, &a.Score, &a.Evidence,
		&a.Directive, &a.Secondary, &a.Confidence, &changed, &a.StateSnapshot, &created,
	)
	if err != nil {
		return nil, err
	}
	a.LimiterChanged = changed == 1
	a.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
