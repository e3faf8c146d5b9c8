package roster

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/model"
)

// StartDatePolicy decides which memberships are kept based on whether their start
// date parses.
type StartDatePolicy string

const (
	// DropUnparsable drops memberships whose start is not a valid date.
	DropUnparsable StartDatePolicy = "drop_unparsable"
	// DropParsable drops memberships whose start IS a valid date. This mirrors the
	// inverted check of the first version of the roster importer and is kept for
	// reproducing older corpora.
	DropParsable StartDatePolicy = "drop_parsable"
)

// ParseStartDatePolicy validates a policy name. Empty means DropUnparsable, not the
// importer's literal DropParsable check: under DropParsable every well-formed
// membership is discarded and party resolution can only succeed through malformed
// rows, so a decomposed date range would never round-trip into a membership.
func ParseStartDatePolicy(s string) (StartDatePolicy, error) {
	switch p := StartDatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DropUnparsable, nil
	case DropUnparsable, DropParsable:
		return p, nil
	default:
		return "", eris.Errorf("roster: unknown start date policy %q (valid: drop_unparsable, drop_parsable)", s)
	}
}

// Stats counts membership rows by outcome.
type Stats struct {
	Rows          int `json:"rows" yaml:"rows"`
	Kept          int `json:"kept" yaml:"kept"`
	Malformed     int `json:"malformed" yaml:"malformed"`
	PolicyDropped int `json:"policy_dropped" yaml:"policy_dropped"`
	Legislators   int `json:"legislators" yaml:"legislators"`
}

// Roster holds the read-only reference tables.
type Roster struct {
	Legislators []model.LegislatorRecord
	Memberships []model.PartyMembership
	Stats       Stats
}

// Build produces both reference tables from raw roster rows.
func Build(rows []model.RosterRow, policy StartDatePolicy, today time.Time) (*Roster, error) {
	if len(rows) == 0 {
		return nil, eris.New("roster: no rows")
	}
	memberships, stats := BuildMemberships(rows, policy, today)
	legislators := BuildLegislators(rows)
	stats.Legislators = len(legislators)

	zap.L().Info("roster: built",
		zap.Int("rows", stats.Rows),
		zap.Int("legislators", stats.Legislators),
		zap.Int("memberships", stats.Kept),
		zap.Int("malformed", stats.Malformed),
		zap.Int("policy_dropped", stats.PolicyDropped),
		zap.String("start_date_policy", string(policy)),
	)

	return &Roster{Legislators: legislators, Memberships: memberships, Stats: stats}, nil
}

// BuildLegislators returns one record per (surname, given name, gender), keeping the
// first occurrence and input order.
func BuildLegislators(rows []model.RosterRow) []model.LegislatorRecord {
	type key struct{ surname, given, gender string }
	seen := make(map[key]struct{}, len(rows))

	out := make([]model.LegislatorRecord, 0, len(rows))
	for _, r := range rows {
		k := key{r.Surname, r.GivenName, r.Gender}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, model.LegislatorRecord{
			Surname:     r.Surname,
			GivenName:   r.GivenName,
			Gender:      r.Gender,
			NameSurname: r.NameSurname(),
			SurnameName: r.SurnameName(),
			Legislature: r.Legislature,
		})
	}
	return out
}

// BuildMemberships decomposes every row's group field into a party membership.
// Rows are not deduplicated: a deputy may belong to different groups per term.
func BuildMemberships(rows []model.RosterRow, policy StartDatePolicy, today time.Time) ([]model.PartyMembership, Stats) {
	stats := Stats{Rows: len(rows)}
	out := make([]model.PartyMembership, 0, len(rows))

	for _, r := range rows {
		c, err := ParseComposite(r.GroupComposite, today)
		if err != nil {
			stats.Malformed++
			zap.L().Debug("roster: skipping group field",
				zap.String("surname", r.Surname),
				zap.Int("legislature", r.Legislature),
				zap.Error(err),
			)
			continue
		}

		start, startErr := ParseDate(c.StartRaw)
		if !keepStart(policy, startErr == nil) {
			stats.PolicyDropped++
			continue
		}
		end, _ := ParseDate(c.EndRaw)

		out = append(out, model.PartyMembership{
			NameSurname: r.NameSurname(),
			SurnameName: r.SurnameName(),
			Surname:     r.Surname,
			Party:       c.Party,
			Acronym:     c.Acronym,
			StartRaw:    c.StartRaw,
			EndRaw:      c.EndRaw,
			Start:       start,
			End:         end,
			Legislature: r.Legislature,
		})
		stats.Kept++
	}
	return out, stats
}

func keepStart(policy StartDatePolicy, parsed bool) bool {
	if policy == DropParsable {
		return !parsed
	}
	return parsed
}
