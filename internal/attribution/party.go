package attribution

import (
	"time"

	"github.com/sells-group/discorsi-cli/internal/model"
)

// MembershipKeys is the tier order for the party membership table.
var MembershipKeys = []KeyFunc[model.PartyMembership]{
	func(m model.PartyMembership) string { return m.NameSurname },
	func(m model.PartyMembership) string { return m.SurnameName },
	func(m model.PartyMembership) string { return m.Surname },
}

// PartyResolver maps a speaker label and a session date to a party.
type PartyResolver struct {
	idx *Index[model.PartyMembership]
}

// NewPartyResolver indexes the membership table.
func NewPartyResolver(memberships []model.PartyMembership) *PartyResolver {
	return &PartyResolver{idx: NewIndex(memberships, MembershipKeys)}
}

// Resolve returns the party for label on date. A single match in a tier is returned
// without looking at dates; several matches are narrowed to the first whose interval
// contains date, falling through to the next tier when none does.
func (p *PartyResolver) Resolve(label string, date time.Time) (string, bool) {
	m, ok := p.idx.Resolve(label, ActiveOn(date))
	if !ok {
		return "", false
	}
	return m.Party, true
}

// ActiveOn picks the only match, or the first membership containing date.
func ActiveOn(date time.Time) Picker[model.PartyMembership] {
	return func(matches []model.PartyMembership) (model.PartyMembership, bool) {
		if len(matches) == 1 {
			return matches[0], true
		}
		for _, m := range matches {
			if m.Contains(date) {
				return m, true
			}
		}
		return model.PartyMembership{}, false
	}
}
