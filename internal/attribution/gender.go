package attribution

import "github.com/sells-group/discorsi-cli/internal/model"

// LegislatorKeys is the tier order for the gender table.
var LegislatorKeys = []KeyFunc[model.LegislatorRecord]{
	func(r model.LegislatorRecord) string { return r.NameSurname },
	func(r model.LegislatorRecord) string { return r.SurnameName },
	func(r model.LegislatorRecord) string { return r.Surname },
}

// GenderResolver maps a speaker label to a gender.
type GenderResolver struct {
	idx *Index[model.LegislatorRecord]
}

// NewGenderResolver indexes the deduplicated legislator table.
func NewGenderResolver(legislators []model.LegislatorRecord) *GenderResolver {
	return &GenderResolver{idx: NewIndex(legislators, LegislatorKeys)}
}

// Resolve returns the gender of the first legislator matching label.
func (g *GenderResolver) Resolve(label string) (string, bool) {
	r, ok := g.idx.Resolve(label, First[model.LegislatorRecord])
	if !ok {
		return "", false
	}
	return r.Gender, true
}
