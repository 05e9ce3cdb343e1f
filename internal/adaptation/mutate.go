package adaptation

import (
	"fmt"
	"time"

	"runcoach/internal/store"
)

const minSessionKm = 2.0

var intensityTypes = map[string]bool{
	"tempo":     true,
	"interval":  true,
	"threshold": true,
}

// ApplyAdjustments rewrites the still-planned sessions of the current
// and next week. Volume scaling never pushes a session below the
// minimum useful distance; an intensity cut converts quality sessions
// to easy running instead of shrinking them.
func ApplyAdjustments(db *store.DB, athleteID int64, out Outcome, now time.Time) (int, error) {
	if out.VolumeAdjPct == 0 && out.IntensityAdjPct >= 0 {
		return 0, nil
	}

	from := CurrentWeekStart(now).Format("2006-01-02")
	to := CurrentWeekStart(now).AddDate(0, 0, 13).Format("2006-01-02")
	sessions, err := db.ListSessionsBetween(athleteID, from, to)
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	scale := 1 + out.VolumeAdjPct/100
	adjusted := 0
	for _, s := range sessions {
		if s.Status != store.SessionPlanned {
			continue
		}
		newType := s.Type
		var note *string
		if out.IntensityAdjPct < 0 && intensityTypes[s.Type] {
			newType = "easy"
			n := fmt.Sprintf("converted from %s: recovery takes priority this block", s.Type)
			note = &n
		}
		newKm := s.TargetDistanceKm * scale
		if newKm < minSessionKm && s.TargetDistanceKm > 0 {
			newKm = minSessionKm
		}
		if newType == s.Type && newKm == s.TargetDistanceKm {
			continue
		}
		if err := db.UpdateSessionPlan(s.ID, newType, newKm, note); err != nil {
			return adjusted, fmt.Errorf("update session %d: %w", s.ID, err)
		}
		adjusted++
	}
	return adjusted, nil
}
