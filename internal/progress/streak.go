package progress

import "time"

// nextStreak advances a daily streak. Activity on the same UTC day keeps the
// streak, activity on the following day extends it and any gap restarts it.
func nextStreak(current int, lastActive, now time.Time) int {
	if current <= 0 || lastActive.IsZero() {
		return 1
	}

	last := truncateDay(lastActive)
	today := truncateDay(now)
	switch {
	case today.Equal(last):
		return current
	case today.Equal(last.AddDate(0, 0, 1)):
		return current + 1
	default:
		return 1
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
