package attribution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/discorsi-cli/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func membership(given, surname, party string, start, end time.Time) model.PartyMembership {
	return model.PartyMembership{
		NameSurname: given + " " + surname,
		SurnameName: surname + " " + given,
		Surname:     surname,
		Party:       party,
		Start:       start,
		End:         end,
	}
}

func TestGenderResolver(t *testing.T) {
	g := NewGenderResolver([]model.LegislatorRecord{
		{Surname: "ROSSI", GivenName: "MARIO", Gender: "male", NameSurname: "MARIO ROSSI", SurnameName: "ROSSI MARIO"},
		{Surname: "ROSSI", GivenName: "ANNA", Gender: "female", NameSurname: "ANNA ROSSI", SurnameName: "ROSSI ANNA"},
		{Surname: "BIANCHI", GivenName: "LUCA", Gender: "male", NameSurname: "LUCA BIANCHI", SurnameName: "BIANCHI LUCA"},
	})

	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"ANNA ROSSI", "female", true},
		{"ROSSI ANNA", "female", true},
		{"ROSSI", "male", true},
		{"BIANCHI", "male", true},
		{"VERDI", "", false},
		{"rossi", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := g.Resolve(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartyResolver_SingleMatchIgnoresDate(t *testing.T) {
	p := NewPartyResolver([]model.PartyMembership{
		membership("Mario", "Rossi", "Partito Alfa", day(2010, 1, 1), day(2012, 12, 31)),
	})
	got, ok := p.Resolve("Rossi Mario", day(1990, 1, 1))
	assert.True(t, ok)
	assert.Equal(t, "Partito Alfa", got)
}

func TestPartyResolver_DisambiguatesByDate(t *testing.T) {
	p := NewPartyResolver([]model.PartyMembership{
		membership("Mario", "Rossi", "Partito Alfa", day(2008, 4, 29), day(2009, 12, 31)),
		membership("Mario", "Rossi", "Partito Beta", day(2010, 1, 1), day(2013, 3, 14)),
	})

	got, ok := p.Resolve("Rossi Mario", day(2010, 1, 1))
	assert.True(t, ok)
	assert.Equal(t, "Partito Beta", got)

	got, ok = p.Resolve("Mario Rossi", day(2009, 12, 31))
	assert.True(t, ok)
	assert.Equal(t, "Partito Alfa", got)
}

func TestPartyResolver_FallsThroughToSurname(t *testing.T) {
	p := NewPartyResolver([]model.PartyMembership{
		membership("Mario", "Rossi", "Partito Alfa", day(2001, 1, 1), day(2004, 12, 31)),
		membership("Mario", "Rossi", "Partito Beta", day(2013, 1, 1), day(2017, 12, 31)),
		membership("Luigi", "Rossi", "Partito Gamma", day(2008, 4, 29), day(2013, 3, 14)),
	})

	got, ok := p.Resolve("Rossi Mario", day(2010, 1, 1))
	assert.True(t, ok)
	assert.Equal(t, "Partito Gamma", got)
}

func TestPartyResolver_Unresolved(t *testing.T) {
	p := NewPartyResolver([]model.PartyMembership{
		membership("Mario", "Rossi", "Partito Alfa", day(2001, 1, 1), day(2004, 12, 31)),
		membership("Mario", "Rossi", "Partito Beta", day(2013, 1, 1), day(2017, 12, 31)),
	})

	_, ok := p.Resolve("Rossi Mario", day(2010, 1, 1))
	assert.False(t, ok)

	_, ok = p.Resolve("Verdi", day(2010, 1, 1))
	assert.False(t, ok)
}

func TestActiveOn_InclusiveBounds(t *testing.T) {
	pick := ActiveOn(day(2012, 12, 31).Add(18 * time.Hour))
	got, ok := pick([]model.PartyMembership{
		membership("A", "B", "Uno", day(2008, 1, 1), day(2009, 1, 1)),
		membership("A", "B", "Due", day(2010, 1, 1), day(2012, 12, 31)),
	})
	assert.True(t, ok)
	assert.Equal(t, "Due", got.Party)
}
