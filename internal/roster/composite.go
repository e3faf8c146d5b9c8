// Package roster builds the deputy reference tables used for speaker attribution.
package roster

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrMalformedComposite is returned when a group field cannot be decomposed.
var ErrMalformedComposite = eris.New("roster: malformed group field")

const (
	// DateLayout is the roster's day.month.year date format.
	DateLayout  = "02.01.2006"
	parseLayout = "2.1.2006"
)

// Composite is a decomposed "group (acronym, start-end)" field.
type Composite struct {
	Party    string
	Acronym  string
	StartRaw string
	EndRaw   string
}

// ParseComposite decomposes a parliamentary group field. Both shapes found in the
// open data are accepted:
//
//	PARTITO ALFA (PA, 01.01.2010-31.12.2012)
//	PARTITO ALFA (PA) (01.01.2010-31.12.2012)
//
// An open membership has no dash; its end is today's date.
func ParseComposite(field string, today time.Time) (Composite, error) {
	open := strings.Index(field, "(")
	if open == -1 {
		return Composite{}, eris.Wrapf(ErrMalformedComposite, "no parenthesis in %q", field)
	}

	party := strings.TrimSpace(field[:open])
	if party == "" {
		return Composite{}, eris.Wrapf(ErrMalformedComposite, "empty group name in %q", field)
	}

	var acronym, dates string
	parts := strings.Split(field[open+1:], "(")
	if len(parts) == 1 {
		inner := strings.ReplaceAll(parts[0], ")", "")
		comma := strings.LastIndex(inner, ",")
		if comma == -1 {
			return Composite{}, eris.Wrapf(ErrMalformedComposite, "no date range in %q", field)
		}
		acronym, dates = inner[:comma], inner[comma+1:]
	} else {
		acronym, dates = strings.ReplaceAll(parts[0], ")", ""), parts[1]
	}

	acronym = strings.TrimSpace(acronym)
	dates = strings.TrimSpace(strings.ReplaceAll(dates, ")", ""))
	if dates == "" {
		return Composite{}, eris.Wrapf(ErrMalformedComposite, "empty date range in %q", field)
	}

	c := Composite{Party: party, Acronym: acronym}
	if start, end, ok := strings.Cut(dates, "-"); ok {
		c.StartRaw = strings.TrimSpace(start)
		c.EndRaw = strings.TrimSpace(end)
	} else {
		c.StartRaw = dates
		c.EndRaw = today.Format(DateLayout)
	}
	return c, nil
}

// ParseDate parses a roster date. Single-digit days and months are accepted.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(parseLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "roster: parse date %q", s)
	}
	return t, nil
}
