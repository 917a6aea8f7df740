package ledger

import (
	"sort"
	"time"
)

// Flow is the slice of an expense record the chart aggregation needs.
type Flow struct {
	Amount   float64
	Date     time.Time
	IsIncome bool
}

// DailyTotal is one chart point: sums of income and expense on a calendar day.
type DailyTotal struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// AggregateByDay groups flows inside the trailing windowDays (day
// granularity, inclusive) by calendar date and sums amounts into income or
// expense buckets. Output is ascending by date. Days without any flow are
// omitted rather than zero-filled; the chart renders gaps.
func AggregateByDay(flows []Flow, windowDays int, now time.Time) []DailyTotal {
	today := truncateDay(now)
	byDate := make(map[string]*DailyTotal)
	for _, f := range flows {
		day := truncateDay(f.Date)
		diff := int(today.Sub(day).Hours() / 24)
		if diff < 0 {
			diff = -diff
		}
		if diff > windowDays {
			continue
		}
		key := day.Format("2006-01-02")
		dt, ok := byDate[key]
		if !ok {
			dt = &DailyTotal{Date: key}
			byDate[key] = dt
		}
		if f.IsIncome {
			dt.Income += f.Amount
		} else {
			dt.Expense += f.Amount
		}
	}
	out := make([]DailyTotal, 0, len(byDate))
	for _, dt := range byDate {
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
