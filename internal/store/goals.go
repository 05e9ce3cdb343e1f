package store

import (
	"database/sql"
	"time"
)

// UpsertGoal stores or replaces the athlete's race goal.
func (db *DB) UpsertGoal(g *Goal) error {
	var raceDate any
	if g.RaceDate != nil {
		raceDate = g.RaceDate.UTC().Format("2006-01-02")
	}
	_, err := db.Exec(`
		INSERT INTO goals (athlete_id, race_distance_m, race_date, plan_phase, plan_weeks)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(athlete_id) DO UPDATE SET
			race_distance_m = excluded.race_distance_m,
			race_date = excluded.race_date,
			plan_phase = excluded.plan_phase,
			plan_weeks = excluded.plan_weeks
	`, g.AthleteID, g.RaceDistanceM, raceDate, g.PlanPhase, g.PlanWeeks)
	return err
}

// GetGoal returns the athlete's goal, or ErrNoGoal.
func (db *DB) GetGoal(athleteID int64) (*Goal, error) {
	row := db.QueryRow(`
		SELECT athlete_id, race_distance_m, race_date, plan_phase, plan_weeks
		FROM goals WHERE athlete_id = ?
	`, athleteID)

	var g Goal
	var raceDate sql.NullString
	err := row.Scan(&g.AthleteID, &g.RaceDistanceM, &raceDate, &g.PlanPhase, &g.PlanWeeks)
	if err == sql.ErrNoRows {
		return nil, ErrNoGoal
	}
	if err != nil {
		return nil, err
	}
	if raceDate.Valid {
		d, err := time.Parse("2006-01-02", raceDate.String)
		if err != nil {
			return nil, err
		}
		g.RaceDate = &d
	}
	return &g, nil
}
