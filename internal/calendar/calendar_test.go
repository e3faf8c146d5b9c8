package calendar

import (
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/discorsi-cli/internal/model"
)

var testNow = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

func date(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func TestNew_EighteenIntervals(t *testing.T) {
	c := New(testNow)
	ivs := c.Intervals()
	require.Len(t, ivs, 18)
	for i, iv := range ivs {
		assert.Equal(t, i+1, iv.Number)
		assert.False(t, iv.End.Before(iv.Start), "legislature %d ends before it starts", iv.Number)
	}
	assert.Equal(t, model.Day(testNow), ivs[17].End)
}

func TestNew_ContiguousNonOverlapping(t *testing.T) {
	ivs := New(testNow).Intervals()
	for i := 1; i < len(ivs); i++ {
		assert.Equal(t, ivs[i-1].End.AddDate(0, 0, 1), ivs[i].Start,
			"gap or overlap between legislature %d and %d", i, i+1)
	}
}

func TestResolve_Boundaries(t *testing.T) {
	c := New(testNow)
	tests := []struct {
		date string
		want int
	}{
		{"1948-05-08", 1},
		{"1953-06-24", 1},
		{"1953-06-25", 2},
		{"1994-04-14", 11},
		{"1994-04-15", 12},
		{"2008-04-28", 15},
		{"2010-01-01", 16},
		{"2018-03-22", 17},
		{"2018-03-23", 18},
		{"2026-10-19", 18},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := c.Resolve(date(tt.date))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_IgnoresTimeOfDay(t *testing.T) {
	c := New(testNow)
	got, err := c.Resolve(time.Date(1953, 6, 24, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestResolve_OutOfRange(t *testing.T) {
	c := New(testNow)

	_, err := c.Resolve(date("1948-05-07"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoLegislature))

	_, err = c.Resolve(date("2026-10-20"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoLegislature))
}

func TestResolve_EveryDayHasExactlyOneLegislature(t *testing.T) {
	c := New(testNow)
	ivs := c.Intervals()
	for d := date("1948-05-08"); !d.After(model.Day(testNow)); d = d.AddDate(0, 0, 17) {
		n := 0
		for _, iv := range ivs {
			if iv.Contains(d) {
				n++
			}
		}
		require.Equal(t, 1, n, "date %s", d.Format(time.DateOnly))
		got, err := c.Resolve(d)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, 18)
	}
}

func TestIntervals_ReturnsCopy(t *testing.T) {
	c := New(testNow)
	ivs := c.Intervals()
	ivs[0].Number = 99
	assert.Equal(t, 1, c.Intervals()[0].Number)
}
