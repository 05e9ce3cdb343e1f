package store

import "database/sql"

// UpsertWellness stores or replaces the wellness record for one athlete-day.
func (db *DB) UpsertWellness(w *WellnessRecord) error {
	_, err := db.Exec(`
		INSERT INTO wellness_records (athlete_id, day, hrv, resting_hr, sleep_score, sleep_hours)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(athlete_id, day) DO UPDATE SET
			hrv = excluded.hrv,
			resting_hr = excluded.resting_hr,
			sleep_score = excluded.sleep_score,
			sleep_hours = excluded.sleep_hours,
			updated_at = CURRENT_TIMESTAMP
	`, w.AthleteID, w.Day, w.HRV, w.RestingHR, w.SleepScore, w.SleepHours)
	return err
}

// ListWellnessSince returns wellness records for an athlete on or after the
// given day (YYYY-MM-DD), ordered oldest first.
func (db *DB) ListWellnessSince(athleteID int64, day string) ([]WellnessRecord, error) {
	rows, err := db.Query(`
		SELECT athlete_id, day, hrv, resting_hr, sleep_score, sleep_hours
		FROM wellness_records
		WHERE athlete_id = ? AND day >= ?
		ORDER BY day ASC
	`, athleteID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []WellnessRecord
	for rows.Next() {
		var w WellnessRecord
		if err := rows.Scan(&w.AthleteID, &w.Day, &w.HRV, &w.RestingHR, &w.SleepScore, &w.SleepHours); err != nil {
			return nil, err
		}
		records = append(records, w)
	}
	return records, rows.Err()
}

// GetWellness returns the record for one athlete-day, or nil if absent.
func (db *DB) GetWellness(athleteID int64, day string) (*WellnessRecord, error) {
	row := db.QueryRow(`
		SELECT athlete_id, day, hrv, resting_hr, sleep_score, sleep_hours
		FROM wellness_records WHERE athlete_id = ? AND day = ?
	`, athleteID, day)

	var w WellnessRecord
	err := row.Scan(&w.AthleteID, &w.Day, &w.HRV, &w.RestingHR, &w.SleepScore, &w.SleepHours)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
