package eventlog

import (
	"sort"
	"time"
)

// DaySummary holds run totals for one calendar day.
type DaySummary struct {
	Date   time.Time
	Runs   int
	Failed int
	DryRun int
	Files  int // files written by successful and failed runs
}

// DayCutoff returns midnight N days ago (inclusive) in the local timezone.
// For days=1 it returns today at midnight, for days=7 it returns 6 days ago, etc.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// SummarizeByDay groups runs by local calendar day, newest day first.
// Pass days=0 to include all runs.
func SummarizeByDay(runs []Run, days int) []DaySummary {
	var cutoff time.Time
	if days > 0 {
		cutoff = DayCutoff(days)
	}
	loc := time.Now().Location()

	byDay := map[time.Time]*DaySummary{}
	for _, r := range runs {
		local := r.Time.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		if days > 0 && day.Before(cutoff) {
			continue
		}
		ds, ok := byDay[day]
		if !ok {
			ds = &DaySummary{Date: day}
			byDay[day] = ds
		}
		ds.Runs++
		switch r.Status {
		case StatusFailed:
			ds.Failed++
		case StatusDryRun:
			ds.DryRun++
			continue
		}
		ds.Files += r.FileCount
	}

	out := make([]DaySummary, 0, len(byDay))
	for _, ds := range byDay {
		out = append(out, *ds)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
