package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Runs (normalized activity rows from ingestion connectors)
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			distance_m REAL NOT NULL,
			duration_s INTEGER NOT NULL,
			avg_hr REAL,
			avg_cadence REAL,
			tss REAL,
			intensity_factor REAL,
			normalized_pace REAL,
			decoupling_pct REAL,
			vdot REAL,
			metrics_computed INTEGER DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_athlete_start ON runs(athlete_id, start_time)`,

		// Wellness (one row per athlete per day, upserted by external sync)
		`CREATE TABLE IF NOT EXISTS wellness_records (
			athlete_id INTEGER NOT NULL,
			day TEXT NOT NULL,
			hrv REAL,
			resting_hr REAL,
			sleep_score REAL,
			sleep_hours REAL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (athlete_id, day)
		)`,

		// Goals (race target and plan context, one per athlete)
		`CREATE TABLE IF NOT EXISTS goals (
			athlete_id INTEGER PRIMARY KEY,
			race_distance_m REAL NOT NULL,
			race_date TEXT,
			plan_phase TEXT NOT NULL DEFAULT 'base',
			plan_weeks INTEGER NOT NULL DEFAULT 0
		)`,

		// Athlete state (one live row per athlete, fully overwritten)
		`CREATE TABLE IF NOT EXISTS athlete_states (
			athlete_id INTEGER PRIMARY KEY,
			state_day TEXT NOT NULL,
			ctl REAL NOT NULL,
			atl REAL NOT NULL,
			tsb REAL NOT NULL,
			form_description TEXT,
			vdot REAL,
			vdot_label TEXT,
			vdot_confidence TEXT,
			goal_race_prediction_s INTEGER,
			threshold_pace REAL NOT NULL,
			threshold_hr REAL,
			threshold_estimated INTEGER NOT NULL DEFAULT 0,
			threshold_last_changed TEXT,
			easy_pace REAL,
			marathon_pace REAL,
			interval_pace REAL,
			recent_decoupling_pct REAL,
			weekly_km REAL,
			weekly_4wk_avg_km REAL,
			weekly_8wk_avg_km REAL,
			volume_trend TEXT,
			load_increase_7d_pct REAL,
			load_increase_28d_pct REAL,
			easy_pct REAL,
			moderate_pct REAL,
			hard_pct REAL,
			longest_run_km REAL,
			quality_sessions_14d INTEGER,
			consecutive_run_days INTEGER,
			days_since_rest INTEGER,
			days_since_hard INTEGER,
			hrv REAL,
			hrv_baseline REAL,
			hrv_deviation_pct REAL,
			resting_hr REAL,
			rhr_baseline REAL,
			rhr_deviation REAL,
			sleep_score REAL,
			sleep_baseline REAL,
			sleep_deviation_pct REAL,
			readiness_score INTEGER,
			readiness_status TEXT,
			hrv_suppressed_days INTEGER,
			poor_sleep_days INTEGER,
			injury_risk_score INTEGER,
			race_distance_m REAL,
			race_date TEXT,
			weeks_to_race INTEGER,
			plan_phase TEXT,
			plan_week INTEGER,
			fitness_trajectory TEXT,
			adaptation_rate TEXT,
			consistency_score REAL,
			updated_at TEXT NOT NULL
		)`,

		// Bottleneck analyses (append-only detection log)
		`CREATE TABLE IF NOT EXISTS bottleneck_analyses (
			id TEXT PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			primary_limiter TEXT NOT NULL,
			strength TEXT NOT NULL,
			score REAL NOT NULL,
			evidence TEXT,
			directive TEXT,
			secondary_signals TEXT,
			confidence TEXT NOT NULL,
			limiter_changed INTEGER NOT NULL DEFAULT 0,
			state_snapshot TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_analyses_athlete_created ON bottleneck_analyses(athlete_id, created_at)`,

		// Philosophy periods (interval-valued, at most one open per athlete)
		`CREATE TABLE IF NOT EXISTS philosophy_periods (
			id TEXT PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			limiter TEXT NOT NULL,
			mode TEXT NOT NULL,
			volume_target_km REAL NOT NULL,
			easy_pct REAL NOT NULL,
			moderate_pct REAL NOT NULL,
			hard_pct REAL NOT NULL,
			allowed_workouts TEXT,
			forbidden_workouts TEXT,
			progression_pct REAL NOT NULL,
			duration_weeks INTEGER NOT NULL,
			success_metric TEXT,
			started_at TEXT NOT NULL,
			ended_at TEXT
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_period
			ON philosophy_periods(athlete_id) WHERE ended_at IS NULL`,

		// Adaptation records (one per athlete per ISO week, upsert replaces)
		`CREATE TABLE IF NOT EXISTS adaptation_records (
			athlete_id INTEGER NOT NULL,
			iso_year INTEGER NOT NULL,
			iso_week INTEGER NOT NULL,
			planned_km REAL,
			actual_km REAL,
			planned_sessions INTEGER,
			completed_sessions INTEGER,
			completion_rate REAL,
			expected_ctl_delta REAL,
			actual_ctl_delta REAL,
			adaptation_ratio REAL,
			classification TEXT NOT NULL,
			action TEXT NOT NULL,
			volume_adj_pct REAL,
			intensity_adj_pct REAL,
			needs_replan INTEGER DEFAULT 0,
			week_end_ctl REAL,
			hrv_avg REAL,
			threshold_pace REAL,
			decoupling_pct REAL,
			explanation TEXT,
			created_at TEXT NOT NULL,
			PRIMARY KEY (athlete_id, iso_year, iso_week)
		)`,

		// Sessions (planned workout prescriptions)
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			athlete_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			type TEXT NOT NULL,
			target_distance_km REAL NOT NULL,
			target_pace REAL,
			target_hr_zone TEXT,
			status TEXT NOT NULL DEFAULT 'planned',
			completing_run_id INTEGER,
			adjustment_note TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_athlete_date ON sessions(athlete_id, date)`,

		// Engine bookkeeping (key-value store)
		`CREATE TABLE IF NOT EXISTS engine_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
