package store

import (
	"database/sql"
	"time"
)

// UpsertAthleteState fully replaces the athlete's live snapshot.
func (db *DB) UpsertAthleteState(s *AthleteState) error {
	var raceDate any
	if s.RaceDate != nil {
		raceDate = s.RaceDate.UTC().Format("2006-01-02")
	}
	_, err := db.Exec(`
		INSERT INTO athlete_states (
			athlete_id, state_day,
			ctl, atl, tsb, form_description,
			vdot, vdot_label, vdot_confidence, goal_race_prediction_s,
			threshold_pace, threshold_hr, threshold_estimated, threshold_last_changed,
			easy_pace, marathon_pace, interval_pace, recent_decoupling_pct,
			weekly_km, weekly_4wk_avg_km, weekly_8wk_avg_km, volume_trend,
			load_increase_7d_pct, load_increase_28d_pct,
			easy_pct, moderate_pct, hard_pct, longest_run_km, quality_sessions_14d,
			consecutive_run_days, days_since_rest, days_since_hard,
			hrv, hrv_baseline, hrv_deviation_pct,
			resting_hr, rhr_baseline, rhr_deviation,
			sleep_score, sleep_baseline, sleep_deviation_pct,
			readiness_score, readiness_status, hrv_suppressed_days, poor_sleep_days,
			injury_risk_score,
			race_distance_m, race_date, weeks_to_race, plan_phase, plan_week,
			fitness_trajectory, adaptation_rate, consistency_score,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(athlete_id) DO UPDATE SET
			state_day = excluded.state_day,
			ctl = excluded.ctl, atl = excluded.atl, tsb = excluded.tsb,
			form_description = excluded.form_description,
			vdot = excluded.vdot, vdot_label = excluded.vdot_label,
			vdot_confidence = excluded.vdot_confidence,
			goal_race_prediction_s = excluded.goal_race_prediction_s,
			threshold_pace = excluded.threshold_pace, threshold_hr = excluded.threshold_hr,
			threshold_estimated = excluded.threshold_estimated,
			threshold_last_changed = excluded.threshold_last_changed,
			easy_pace = excluded.easy_pace, marathon_pace = excluded.marathon_pace,
			interval_pace = excluded.interval_pace,
			recent_decoupling_pct = excluded.recent_decoupling_pct,
			weekly_km = excluded.weekly_km,
			weekly_4wk_avg_km = excluded.weekly_4wk_avg_km,
			weekly_8wk_avg_km = excluded.weekly_8wk_avg_km,
			volume_trend = excluded.volume_trend,
			load_increase_7d_pct = excluded.load_increase_7d_pct,
			load_increase_28d_pct = excluded.load_increase_28d_pct,
			easy_pct = excluded.easy_pct, moderate_pct = excluded.moderate_pct,
			hard_pct = excluded.hard_pct, longest_run_km = excluded.longest_run_km,
			quality_sessions_14d = excluded.quality_sessions_14d,
			consecutive_run_days = excluded.consecutive_run_days,
			days_since_rest = excluded.days_since_rest,
			days_since_hard = excluded.days_since_hard,
			hrv = excluded.hrv, hrv_baseline = excluded.hrv_baseline,
			hrv_deviation_pct = excluded.hrv_deviation_pct,
			resting_hr = excluded.resting_hr, rhr_baseline = excluded.rhr_baseline,
			rhr_deviation = excluded.rhr_deviation,
			sleep_score = excluded.sleep_score, sleep_baseline = excluded.sleep_baseline,
			sleep_deviation_pct = excluded.sleep_deviation_pct,
			readiness_score = excluded.readiness_score,
			readiness_status = excluded.readiness_status,
			hrv_suppressed_days = excluded.hrv_suppressed_days,
			poor_sleep_days = excluded.poor_sleep_days,
			injury_risk_score = excluded.injury_risk_score,
			race_distance_m = excluded.race_distance_m, race_date = excluded.race_date,
			weeks_to_race = excluded.weeks_to_race, plan_phase = excluded.plan_phase,
			plan_week = excluded.plan_week,
			fitness_trajectory = excluded.fitness_trajectory,
			adaptation_rate = excluded.adaptation_rate,
			consistency_score = excluded.consistency_score,
			updated_at = excluded.updated_at
	`,
		s.AthleteID, s.StateDay,
		s.CTL, s.ATL, s.TSB, s.FormDescription,
		s.VDOT, s.VDOTLabel, s.VDOTConfidence, s.GoalRacePredictionS,
		s.ThresholdPace, s.ThresholdHR, boolToInt(s.ThresholdEstimated), s.ThresholdLastChanged,
		s.EasyPace, s.MarathonPace, s.IntervalPace, s.RecentDecouplingPct,
		s.WeeklyKm, s.Weekly4wkAvgKm, s.Weekly8wkAvgKm, s.VolumeTrend,
		s.LoadIncrease7dPct, s.LoadIncrease28dPct,
		s.EasyPct, s.ModeratePct, s.HardPct, s.LongestRunKm, s.QualitySessions14d,
		s.ConsecutiveRunDays, s.DaysSinceRest, s.DaysSinceHard,
		s.HRV, s.HRVBaseline, s.HRVDeviationPct,
		s.RestingHR, s.RHRBaseline, s.RHRDeviation,
		s.SleepScore, s.SleepBaseline, s.SleepDeviationPct,
		s.ReadinessScore, s.ReadinessStatus, s.HRVSuppressedDays, s.PoorSleepDays,
		s.InjuryRiskScore,
		s.RaceDistanceM, raceDate, s.WeeksToRace, s.PlanPhase, s.PlanWeek,
		s.FitnessTrajectory, s.AdaptationRate, s.ConsistencyScore,
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetAthleteState returns the athlete's current snapshot, or ErrNoState.
func (db *DB) GetAthleteState(athleteID int64) (*AthleteState, error) {
	row := db.QueryRow(`
		SELECT athlete_id, state_day,
			ctl, atl, tsb, form_description,
			vdot, vdot_label, vdot_confidence, goal_race_prediction_s,
			threshold_pace, threshold_hr, threshold_estimated, threshold_last_changed,
			easy_pace, marathon_pace, interval_pace, recent_decoupling_pct,
			weekly_km, weekly_4wk_avg_km, weekly_8wk_avg_km, volume_trend,
			load_increase_7d_pct, load_increase_28d_pct,
			easy_pct, moderate_pct, hard_pct, longest_run_km, quality_sessions_14d,
			consecutive_run_days, days_since_rest, days_since_hard,
			hrv, hrv_baseline, hrv_deviation_pct,
			resting_hr, rhr_baseline, rhr_deviation,
			sleep_score, sleep_baseline, sleep_deviation_pct,
			readiness_score, readiness_status, hrv_suppressed_days, poor_sleep_days,
			injury_risk_score,
			race_distance_m, race_date, weeks_to_race, plan_phase, plan_week,
			fitness_trajectory, adaptation_rate, consistency_score,
			updated_at
		FROM athlete_states WHERE athlete_id = ?
	`, athleteID)

	var s AthleteState
	var thresholdEstimated int
	var thresholdLastChanged, formDesc, vdotLabel, vdotConf sql.NullString
	var raceDate sql.NullString
	var updatedAt string
	err := row.Scan(
		&s.AthleteID, &s.StateDay,
		&s.CTL, &s.ATL, &s.TSB, &formDesc,
		&s.VDOT, &vdotLabel, &vdotConf, &s.GoalRacePredictionS,
		&s.ThresholdPace, &s.ThresholdHR, &thresholdEstimated, &thresholdLastChanged,
		&s.EasyPace, &s.MarathonPace, &s.IntervalPace, &s.RecentDecouplingPct,
		&s.WeeklyKm, &s.Weekly4wkAvgKm, &s.Weekly8wkAvgKm, &s.VolumeTrend,
		&s.LoadIncrease7dPct, &s.LoadIncrease28dPct,
		&s.EasyPct, &s.ModeratePct, &s.HardPct, &s.LongestRunKm, &s.QualitySessions14d,
		&s.ConsecutiveRunDays, &s.DaysSinceRest, &s.DaysSinceHard,
		&s.HRV, &s.HRVBaseline, &s.HRVDeviationPct,
		&s.RestingHR, &s.RHRBaseline, &s.RHRDeviation,
		&s.SleepScore, &s.SleepBaseline, &s.SleepDeviationPct,
		&s.ReadinessScore, &s.ReadinessStatus, &s.HRVSuppressedDays, &s.PoorSleepDays,
		&s.InjuryRiskScore,
		&s.RaceDistanceM, &raceDate, &s.WeeksToRace, &s.PlanPhase, &s.PlanWeek,
		&s.FitnessTrajectory, &s.AdaptationRate, &s.ConsistencyScore,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, err
	}
	s.FormDescription = formDesc.String
	s.VDOTLabel = vdotLabel.String
	s.VDOTConfidence = vdotConf.String
	s.ThresholdEstimated = thresholdEstimated == 1
	s.ThresholdLastChanged = thresholdLastChanged.String
	if raceDate.Valid {
		d, err := time.Parse("2006-01-02", raceDate.String)
		if err != nil {
			return nil, err
		}
		s.RaceDate = &d
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
