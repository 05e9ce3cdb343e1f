package store

import "database/sql"

// InsertSession creates a planned session and returns its ID.
func (db *DB) InsertSession(s *Session) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO sessions (
			athlete_id, date, type, target_distance_km, target_pace,
			target_hr_zone, status, completing_run_id, adjustment_note
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.AthleteID, s.Date, s.Type, s.TargetDistanceKm, s.TargetPace,
		s.TargetHRZone, s.Status, s.CompletingRunID, s.AdjustmentNote)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessionsBetween returns sessions dated in [from, to] (YYYY-MM-DD,
// inclusive), ordered by date.
func (db *DB) ListSessionsBetween(athleteID int64, from, to string) ([]Session, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, date, type, target_distance_km, target_pace,
			target_hr_zone, status, completing_run_id, adjustment_note
		FROM sessions
		WHERE athlete_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, id ASC
	`, athleteID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.AthleteID, &s.Date, &s.Type, &s.TargetDistanceKm, &s.TargetPace,
			&s.TargetHRZone, &s.Status, &s.CompletingRunID, &s.AdjustmentNote,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// UpdateSessionPlan rewrites a planned session's prescription. Completed or
// missed sessions are left alone.
func (db *DB) UpdateSessionPlan(id int64, sessionType string, targetDistanceKm float64, note *string) error {
	_, err := db.Exec(`
		UPDATE sessions SET type = ?, target_distance_km = ?, adjustment_note = ?
		WHERE id = ? AND status = ?
	`, sessionType, targetDistanceKm, note, id, SessionPlanned)
	return err
}

// CountPlannedCompleted returns planned and completed session counts for an
// athlete in a date range (inclusive). Rest days are prescriptions, not
// workouts, and never count.
func (db *DB) CountPlannedCompleted(athleteID int64, from, to string) (planned, completed int, err error) {
	row := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM sessions
		WHERE athlete_id = ? AND date >= ? AND date <= ? AND type != 'rest'
	`, SessionCompleted, athleteID, from, to)
	err = row.Scan(&planned, &completed)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	return planned, completed, err
}
