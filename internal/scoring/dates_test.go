package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforward/career-quest/internal/types"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Time
		layout string
		family dateFamily
		ok     bool
	}{
		{"2021-03-15", time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), "2006-01-02", familyISO, true},
		{"2021-03", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "2006-01", familyISO, true},
		{"03/2021", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "01/2006", familyNumeric, true},
		{"3/2021", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "1/2006", familyNumeric, true},
		{"Mar 2021", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "Jan 2006", familyMonthName, true},
		{"march 2021", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "January 2006", familyMonthName, true},
		{"2021", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "2006", familyYear, true},
		{" 2021-03 ", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "2006-01", familyISO, true},
		{"present", time.Time{}, "", "", false},
		{"", time.Time{}, "", "", false},
		{"sometime", time.Time{}, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, layout, ok := parseDate(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
				assert.Equal(t, tt.layout, layout.layout)
				assert.Equal(t, tt.family, layout.family)
			}
		})
	}
}

func TestIsOngoing(t *testing.T) {
	for _, s := range []string{"present", "Present", " CURRENT ", "now", "Ongoing"} {
		assert.True(t, isOngoing(s), s)
	}
	assert.False(t, isOngoing("2020-01"))
	assert.False(t, isOngoing(""))
}

func TestExperiencePeriods(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)
	entries := []types.Experience{
		{StartDate: "2020-01", Current: true},
		{StartDate: "2018-01", EndDate: "2019-12"},
		{StartDate: "2016", EndDate: "2017"},
		{StartDate: "2015-01", EndDate: "Present"},
		{StartDate: "2014-01"},
		{StartDate: "2013-01", EndDate: "unknown"},
		{StartDate: "2012-06", EndDate: "2011-01"},
		{StartDate: "", EndDate: "2010-01"},
	}

	periods := experiencePeriods(entries, now)
	require.Len(t, periods, 6)

	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, periods[0].ongoing)
	assert.True(t, periods[0].end.Equal(today))
	assert.True(t, periods[1].end.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.InDelta(t, 24.0, periods[2].months(), 0.1)
	assert.True(t, periods[3].ongoing)
	assert.True(t, periods[4].ongoing)
	assert.True(t, periods[5].inferred)
	assert.True(t, periods[5].end.Equal(time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestEmploymentGaps(t *testing.T) {
	d := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		periods []period
		want    []float64
	}{
		{name: "single period", periods: []period{{start: d(2020, 1), end: d(2021, 1)}}},
		{name: "contiguous", periods: []period{{start: d(2020, 1), end: d(2021, 1)}, {start: d(2021, 1), end: d(2022, 1)}}},
		{
			name:    "overlap is not a gap",
			periods: []period{{start: d(2018, 1), end: d(2022, 1)}, {start: d(2019, 1), end: d(2020, 1)}, {start: d(2022, 1), end: d(2023, 1)}},
		},
		{
			name:    "unsorted input with one gap",
			periods: []period{{start: d(2022, 1), end: d(2023, 1)}, {start: d(2020, 1), end: d(2021, 1)}},
			want:    []float64{12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := employmentGaps(tt.periods)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 0.1)
			}
		})
	}
}
