package utils

import "time"

// AddBusinessDays returns the date n business days after from,
// skipping Saturdays and Sundays. Holidays are not considered.
func AddBusinessDays(from time.Time, n int) time.Time {
	d := from
	for added := 0; added < n; {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			added++
		}
	}
	return d
}

// BusinessDaysUntil counts the business days strictly between from and to.
func BusinessDaysUntil(from, to time.Time) int {
	from = truncateDay(from)
	to = truncateDay(to)

	days := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days++
		}
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
