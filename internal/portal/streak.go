package portal

import "time"

// CurrentStreak counts consecutive days with at least one check-in,
// walking back from today. A streak survives if the latest check-in was
// yesterday (today's visit may still be ahead); any older gap breaks it.
// Days must be distinct dates sorted newest first.
func CurrentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := truncateDay(now)
	latest := truncateDay(days[0])

	if latest.Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	prev := latest
	for _, d := range days[1:] {
		day := truncateDay(d)
		if day.Equal(prev.AddDate(0, 0, -1)) {
			streak++
			prev = day
			continue
		}
		break
	}

	return streak
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
