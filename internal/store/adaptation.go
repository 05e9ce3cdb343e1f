package store

import (
	"database/sql"
	"time"
)

// UpsertAdaptationRecord stores the weekly result. The (athlete, ISO week)
// key means re-running a week replaces the earlier row entirely.
func (db *DB) UpsertAdaptationRecord(r *AdaptationRecord) error {
	_, err := db.Exec(`
		INSERT INTO adaptation_records (
			athlete_id, iso_year, iso_week,
			planned_km, actual_km, planned_sessions, completed_sessions, completion_rate,
			expected_ctl_delta, actual_ctl_delta, adaptation_ratio,
			classification, action, volume_adj_pct, intensity_adj_pct, needs_replan,
			week_end_ctl, hrv_avg, threshold_pace, decoupling_pct, explanation, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(athlete_id, iso_year, iso_week) DO UPDATE SET
			planned_km = excluded.planned_km,
			actual_km = excluded.actual_km,
			planned_sessions = excluded.planned_sessions,
			completed_sessions = excluded.completed_sessions,
			completion_rate = excluded.completion_rate,
			expected_ctl_delta = excluded.expected_ctl_delta,
			actual_ctl_delta = excluded.actual_ctl_delta,
			adaptation_ratio = excluded.adaptation_ratio,
			classification = excluded.classification,
			action = excluded.action,
			volume_adj_pct = excluded.volume_adj_pct,
			intensity_adj_pct = excluded.intensity_adj_pct,
			needs_replan = excluded.needs_replan,
			week_end_ctl = excluded.week_end_ctl,
			hrv_avg = excluded.hrv_avg,
			threshold_pace = excluded.threshold_pace,
			decoupling_pct = excluded.decoupling_pct,
			explanation = excluded.explanation,
			created_at = excluded.created_at
	`, r.AthleteID, r.ISOYear, r.ISOWeek,
		r.PlannedKm, r.ActualKm, r.PlannedSessions, r.CompletedSessions, r.CompletionRate,
		r.ExpectedCTLDelta, r.ActualCTLDelta, r.AdaptationRatio,
		r.Classification, r.Action, r.VolumeAdjPct, r.IntensityAdjPct, boolToInt(r.NeedsReplan),
		r.WeekEndCTL, r.HRVAvg, r.ThresholdPace, r.DecouplingPct, r.Explanation,
		r.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// GetAdaptationRecord returns the record for one athlete-week, or nil.
func (db *DB) GetAdaptationRecord(athleteID int64, isoYear, isoWeek int) (*AdaptationRecord, error) {
	row := db.QueryRow(`
		SELECT athlete_id, iso_year, iso_week,
			planned_km, actual_km, planned_sessions, completed_sessions, completion_rate,
			expected_ctl_delta, actual_ctl_delta, adaptation_ratio,
			classification, action, volume_adj_pct, intensity_adj_pct, needs_replan,
			week_end_ctl, hrv_avg, threshold_pace, decoupling_pct, explanation, created_at
		FROM adaptation_records
		WHERE athlete_id = ? AND iso_year = ? AND iso_week = ?
	`, athleteID, isoYear, isoWeek)
	r, err := scanAdaptationRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// LatestAdaptationRecordBefore returns the most recent record strictly
// before the given ISO week, or nil if the athlete has none.
func (db *DB) LatestAdaptationRecordBefore(athleteID int64, isoYear, isoWeek int) (*AdaptationRecord, error) {
	row := db.QueryRow(`
		SELECT athlete_id, iso_year, iso_week,
			planned_km, actual_km, planned_sessions, completed_sessions, completion_rate,
			expected_ctl_delta, actual_ctl_delta, adaptation_ratio,
			classification, action, volume_adj_pct, intensity_adj_pct, needs_replan,
			week_end_ctl, hrv_avg, threshold_pace, decoupling_pct, explanation, created_at
		FROM adaptation_records
		WHERE athlete_id = ? AND (iso_year < ? OR (iso_year = ? AND iso_week < ?))
		ORDER BY iso_year DESC, iso_week DESC
		LIMIT 1
	`, athleteID, isoYear, isoYear, isoWeek)
	r, err := scanAdaptationRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

func scanAdaptationRecord(row rowScanner) (*AdaptationRecord, error) {
	var r AdaptationRecord
	var replan int
	var created string
	err := row.Scan(
		&r.AthleteID, &r.ISOYear, &r.ISOWeek,
		&r.PlannedKm, &r.ActualKm, &r.PlannedSessions, &r.CompletedSessions, &r.CompletionRate,
		&r.ExpectedCTLDelta, &r.ActualCTLDelta, &r.AdaptationRatio,
		&r.Classification, &r.Action, &r.VolumeAdjPct, &r.IntensityAdjPct, &replan,
		&r.WeekEndCTL, &r.HRVAvg, &r.ThresholdPace, &r.DecouplingPct, &r.Explanation, &created,
	)
	if err != nil {
		return nil, err
	}
	r.NeedsReplan = replan == 1
	r.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
