package adaptation

import "time"

// ISO week handling. The review always covers the most recently
// completed Monday-to-Sunday week relative to the reference time.

// Week identifies one ISO week.
type Week struct {
	Year int
	Week int
}

// WeekOf returns the ISO week containing t.
func WeekOf(t time.Time) Week {
	y, w := t.UTC().ISOWeek()
	return Week{Year: y, Week: w}
}

// PriorWeek returns the completed ISO week before t, with its Monday
// start and the Monday after its end.
func PriorWeek(t time.Time) (Week, time.Time, time.Time) {
	start := mondayOf(t.UTC()).AddDate(0, 0, -7)
	end := start.AddDate(0, 0, 7)
	return WeekOf(start), start, end
}

// CurrentWeekStart returns the Monday of the week containing t.
func CurrentWeekStart(t time.Time) time.Time {
	return mondayOf(t.UTC())
}

func mondayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
