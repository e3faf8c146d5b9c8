package model

import "time"

// RosterRow is one raw roster record for a single legislature as published by the
// Chamber's open data endpoint.
type RosterRow struct {
	PersonURI      string `json:"person_uri"`
	Surname        string `json:"surname"`
	GivenName      string `json:"given_name"`
	Gender         string `json:"gender"`
	GroupComposite string `json:"group_composite"`
	MandateStart   string `json:"mandate_start"`
	MandateEnd     string `json:"mandate_end"`
	District       string `json:"district"`
	MandateCount   string `json:"mandate_count"`
	Legislature    int    `json:"legislature"`
}

// NameSurname returns "<given name> <surname>".
func (r RosterRow) NameSurname() string {
	return r.GivenName + " " + r.Surname
}

// SurnameName returns "<surname> <given name>".
func (r RosterRow) SurnameName() string {
	return r.Surname + " " + r.GivenName
}

// LegislatorRecord is a deputy with the name variants used to match speaker labels.
type LegislatorRecord struct {
	Surname     string `json:"surname"`
	GivenName   string `json:"given_name"`
	Gender      string `json:"gender"`
	NameSurname string `json:"name_surname"`
	SurnameName string `json:"surname_name"`
	Legislature int    `json:"legislature"`
}

// PartyMembership is a time-bounded membership of a deputy in a parliamentary group.
// StartRaw and EndRaw keep the decomposed strings; Start and End are zero when the
// raw value does not parse.
type PartyMembership struct {
	NameSurname string    `json:"name_surname"`
	SurnameName string    `json:"surname_name"`
	Surname     string    `json:"surname"`
	Party       string    `json:"party"`
	Acronym     string    `json:"acronym"`
	StartRaw    string    `json:"start_raw"`
	EndRaw      string    `json:"end_raw"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Legislature int       `json:"legislature"`
}

// Contains reports whether date falls within [Start, End], inclusive at day granularity.
func (m PartyMembership) Contains(date time.Time) bool {
	if m.Start.IsZero() || m.End.IsZero() {
		return false
	}
	d := Day(date)
	return !d.Before(Day(m.Start)) && !d.After(Day(m.End))
}

// LegislatureInterval maps a legislature number to its date range.
type LegislatureInterval struct {
	Number int       `json:"number"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Contains reports whether date falls within the interval, inclusive at day granularity.
func (l LegislatureInterval) Contains(date time.Time) bool {
	d := Day(date)
	return !d.Before(Day(l.Start)) && !d.After(Day(l.End))
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
