// Package pipeline turns session transcripts into the attributed speech corpus.
//
// A run has two phases. The read-only reference tables (roster resolvers and the
// legislature calendar) are built first; sessions are then segmented and normalized
// concurrently and attributed against those tables.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/attribution"
	"github.com/sells-group/discorsi-cli/internal/calendar"
	"github.com/sells-group/discorsi-cli/internal/model"
	"github.com/sells-group/discorsi-cli/internal/roster"
	"github.com/sells-group/discorsi-cli/internal/segment"
	"github.com/sells-group/discorsi-cli/internal/textnorm"
)

// DefaultWorkers is the session concurrency when none is configured.
const DefaultWorkers = 4

// MetadataLookup maps a convocation id to its session date.
type MetadataLookup interface {
	Lookup(convocationID string) (time.Time, bool)
}

// Options configures a Pipeline.
type Options struct {
	Workers         int
	PresidentPolicy segment.PresidentPolicy
}

// Pipeline holds the read-only tables shared by every session.
type Pipeline struct {
	opts       Options
	normalizer *textnorm.Normalizer
	calendar   *calendar.Calendar
	gender     *attribution.GenderResolver
	party      *attribution.PartyResolver
}

// New creates a Pipeline from a built roster. The roster may be nil for
// segmentation-only runs; Attribute then fails.
func New(opts Options, normalizer *textnorm.Normalizer, cal *calendar.Calendar, r *roster.Roster) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.PresidentPolicy == "" {
		opts.PresidentPolicy = segment.PresidentLiteral
	}
	p := &Pipeline{
		opts:       opts,
		normalizer: normalizer,
		calendar:   cal,
	}
	if r != nil {
		p.gender = attribution.NewGenderResolver(r.Legislators)
		p.party = attribution.NewPartyResolver(r.Memberships)
	}
	return p
}

// Result is the outcome of a full run.
type Result struct {
	Records  []model.CorpusRecord
	Sessions int
	Drops    Drops
}

// Run extracts and attributes every session. A date outside every legislature
// aborts the run.
func (p *Pipeline) Run(ctx context.Context, sessions []model.SessionRecord, meta MetadataLookup) (*Result, error) {
	start := time.Now()

	ext, err := p.Extract(ctx, sessions)
	if err != nil {
		return nil, err
	}

	records, drops, err := p.Attribute(ext.Utterances, meta)
	if err != nil {
		return nil, err
	}
	drops.Merge(ext.Drops)

	zap.L().Info("pipeline: run complete",
		zap.Int("sessions", len(sessions)),
		zap.Int("utterances", len(ext.Utterances)),
		zap.Int("records", len(records)),
		zap.Any("drops", drops),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{Records: records, Sessions: len(sessions), Drops: drops}, nil
}

// Drops counts excluded items per reason.
type Drops map[model.DropReason]int

// Add increments a reason by n.
func (d Drops) Add(reason model.DropReason, n int) {
	if n > 0 {
		d[reason] += n
	}
}

// Merge adds every count of other.
func (d Drops) Merge(other Drops) {
	for k, v := range other {
		d.Add(k, v)
	}
}

// Total is the sum over all reasons.
func (d Drops) Total() int {
	total := 0
	for _, v := range d {
		total += v
	}
	return total
}

func (p *Pipeline) checkAttribution() error {
	if p.gender == nil || p.party == nil {
		return eris.New("pipeline: attribution requires a roster")
	}
	if p.calendar == nil {
		return eris.New("pipeline: attribution requires a legislature calendar")
	}
	return nil
}
