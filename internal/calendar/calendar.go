// Package calendar maps dates to Italian Republic legislature numbers.
package calendar

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/discorsi-cli/internal/model"
)

// ErrNoLegislature is returned when no legislature interval contains a date.
var ErrNoLegislature = eris.New("calendar: no legislature for date")

// bounds lists the start and end date of legislatures 1 through 17. The 18th
// legislature starts the day after the 17th ends and is open.
var bounds = [][2]string{
	{"1948-05-08", "1953-06-24"},
	{"1953-06-25", "1958-06-11"},
	{"1958-06-12", "1963-05-15"},
	{"1963-05-16", "1968-06-04"},
	{"1968-06-05", "1972-05-24"},
	{"1972-05-25", "1976-07-04"},
	{"1976-07-05", "1979-06-19"},
	{"1979-06-20", "1983-07-11"},
	{"1983-07-12", "1987-07-01"},
	{"1987-07-02", "1992-04-22"},
	{"1992-04-23", "1994-04-14"},
	{"1994-04-15", "1996-05-08"},
	{"1996-05-09", "2001-05-29"},
	{"2001-05-30", "2006-04-27"},
	{"2006-04-28", "2008-04-28"},
	{"2008-04-29", "2013-03-14"},
	{"2013-03-15", "2018-03-22"},
}

const lastStart = "2018-03-23"

// Calendar resolves dates against the fixed list of legislature intervals.
// It is read-only after construction.
type Calendar struct {
	intervals []model.LegislatureInterval
}

// New builds the calendar; the last legislature ends on now's calendar date.
func New(now time.Time) *Calendar {
	intervals := make([]model.LegislatureInterval, 0, len(bounds)+1)
	for i, b := range bounds {
		intervals = append(intervals, model.LegislatureInterval{
			Number: i + 1,
			Start:  mustDate(b[0]),
			End:    mustDate(b[1]),
		})
	}
	intervals = append(intervals, model.LegislatureInterval{
		Number: len(bounds) + 1,
		Start:  mustDate(lastStart),
		End:    model.Day(now),
	})
	return &Calendar{intervals: intervals}
}

// Resolve returns the number of the first interval containing date.
func (c *Calendar) Resolve(date time.Time) (int, error) {
	for _, iv := range c.intervals {
		if iv.Contains(date) {
			return iv.Number, nil
		}
	}
	return 0, eris.Wrapf(ErrNoLegislature, "date %s", date.Format(time.DateOnly))
}

// Intervals returns a copy of the calendar's intervals in ascending order.
func (c *Calendar) Intervals() []model.LegislatureInterval {
	out := make([]model.LegislatureInterval, len(c.intervals))
	copy(out, c.intervals)
	return out
}

func mustDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
