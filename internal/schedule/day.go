package schedule

import "time"

// DayBucket groups the appointments whose Day falls on one calendar day.
// It is derived per snapshot and never persisted.
type DayBucket struct {
	Date         time.Time
	Appointments []*Appointment
}

// BucketByDay distributes a snapshot of appointments into numDays buckets
// starting at first (midnight). Appointments outside the range are dropped.
// Within a bucket, appointments keep chronological start order.
func BucketByDay(appointments []*Appointment, first time.Time, numDays int) []DayBucket {
	first = TruncateToDay(first)
	buckets := make([]DayBucket, numDays)
	for i := range buckets {
		buckets[i].Date = first.AddDate(0, 0, i)
	}

	for _, a := range appointments {
		idx := DayIndex(first, a.Day)
		if idx < 0 || idx >= numDays {
			continue
		}
		buckets[idx].Appointments = append(buckets[idx].Appointments, a)
	}

	for i := range buckets {
		sortByStart(buckets[i].Appointments)
	}
	return buckets
}

// DayIndex returns the number of whole days from first to day, comparing
// calendar dates only. The inputs may carry different locations; a parsed
// "2026-09-01" in UTC and a local midnight for the same date land on the
// same index. Returns a negative value if day is before first.
func DayIndex(first, day time.Time) int {
	f := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(f).Hours() / 24)
}

// sortByStart performs an insertion sort on start time; buckets are small.
func sortByStart(appts []*Appointment) {
	for i := 1; i < len(appts); i++ {
		for j := i; j > 0 && appts[j].Start < appts[j-1].Start; j-- {
			appts[j], appts[j-1] = appts[j-1], appts[j]
		}
	}
}
