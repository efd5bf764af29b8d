package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/careerforward/career-quest/internal/types"
)

type precision int

const (
	precisionDay precision = iota
	precisionMonth
	precisionYear
)

// dateFamily groups layouts that a writer perceives as one format: "1/2015" and "12/2018"
// are both month/year, "May 2019" and "September 2020" are both month-name dates.
type dateFamily string

const (
	familyISO       dateFamily = "iso"
	familyYearSlash dateFamily = "year/month"
	familyNumeric   dateFamily = "month/year"
	familyMonthName dateFamily = "month-name year"
	familyYear      dateFamily = "year"
)

type dateLayout struct {
	layout    string
	precision precision
	family    dateFamily
}

var dateLayouts = []dateLayout{
	{"2006-01-02", precisionDay, familyISO},
	{"2006-01", precisionMonth, familyISO},
	{"2006/01", precisionMonth, familyYearSlash},
	{"01/2006", precisionMonth, familyNumeric},
	{"1/2006", precisionMonth, familyNumeric},
	{"Jan 2006", precisionMonth, familyMonthName},
	{"January 2006", precisionMonth, familyMonthName},
	{"Jan. 2006", precisionMonth, familyMonthName},
	{"2006", precisionYear, familyYear},
}

var ongoingSentinels = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
	"ongoing": true,
}

const daysPerMonth = 30.436875

func isOngoing(s string) bool {
	return ongoingSentinels[strings.ToLower(strings.TrimSpace(s))]
}

// parseDate parses an ISO-like resume date. The returned layout's family identifies the
// written format so callers can check consistency across entries.
func parseDate(s string) (time.Time, dateLayout, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, dateLayout{}, false
	}
	for _, dl := range dateLayouts {
		if t, err := time.Parse(dl.layout, s); err == nil {
			return t, dl, true
		}
	}
	return time.Time{}, dateLayout{}, false
}

// endOfPeriod converts a written end date into the exclusive end of the period it names,
// so "2019-12" followed by "2020-01" leaves no gap.
func endOfPeriod(t time.Time, p precision) time.Time {
	switch p {
	case precisionYear:
		return t.AddDate(1, 0, 0)
	case precisionMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t
	}
}

// period is a dated experience interval with an exclusive end. An inferred end was not
// readable and was taken from the start of the next role.
type period struct {
	start    time.Time
	end      time.Time
	ongoing  bool
	inferred bool
}

func (p period) months() float64 {
	return monthsBetween(p.start, p.end)
}

func monthsBetween(from, to time.Time) float64 {
	if !to.After(from) {
		return 0
	}
	return to.Sub(from).Hours() / 24 / daysPerMonth
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// experiencePeriods returns the intervals of every experience entry with a parsable start.
// Current roles and roles with an empty end date run to now. A role whose end date cannot be
// read ends where the next later-starting role begins, or at its own start when none follows.
// Entries whose end precedes the start are skipped.
func experiencePeriods(entries []types.Experience, now time.Time) []period {
	today := truncateToDay(now)
	periods := make([]period, 0, len(entries))
	for _, exp := range entries {
		start, _, ok := parseDate(exp.StartDate)
		if !ok {
			continue
		}

		p := period{start: start}
		switch {
		case exp.Current || exp.EndDate == "" || isOngoing(exp.EndDate):
			p.end = today
			p.ongoing = true
		default:
			end, layout, ok := parseDate(exp.EndDate)
			if !ok {
				p.inferred = true
				break
			}
			p.end = endOfPeriod(end, layout.precision)
		}

		if !p.inferred && p.end.Before(p.start) {
			continue
		}
		periods = append(periods, p)
	}

	for i := range periods {
		if periods[i].inferred {
			periods[i].end = nextStart(periods, periods[i].start)
		}
	}
	return periods
}

// nextStart returns the earliest start strictly after from, or from itself when there is none.
func nextStart(periods []period, from time.Time) time.Time {
	next := from
	for _, p := range periods {
		if p.start.After(from) && (next.Equal(from) || p.start.Before(next)) {
			next = p.start
		}
	}
	return next
}

// sortedByStart returns a copy of the periods ordered by start date.
func sortedByStart(periods []period) []period {
	out := append([]period(nil), periods...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].start.Before(out[j].start)
	})
	return out
}
