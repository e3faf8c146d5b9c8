package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/discorsi-cli/internal/model"
	"github.com/sells-group/discorsi-cli/internal/segment"
)

// Extraction holds the normalized utterances of all sessions in input order.
type Extraction struct {
	Utterances []model.Utterance
	Segmented  int
	Drops      Drops
}

type sessionResult struct {
	utterances    []model.Utterance
	unsegmentable bool
	president     int
	empty         int
}

// Extract segments and normalizes sessions on a bounded worker pool. Results are
// collected by index so utterances stay in document order within a session and in
// input order across sessions.
func (p *Pipeline) Extract(ctx context.Context, sessions []model.SessionRecord) (*Extraction, error) {
	results := make([]sessionResult, len(sessions))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, rec := range sessions {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "pipeline: extract cancelled")
			}
			results[i] = p.extractSession(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ext := &Extraction{Drops: Drops{}}
	for i, r := range results {
		if r.unsegmentable {
			ext.Drops.Add(model.DropUnsegmentable, 1)
			zap.L().Debug("pipeline: session not segmentable",
				zap.String("convocation_id", sessions[i].ConvocationID),
			)
			continue
		}
		ext.Segmented++
		ext.Drops.Add(model.DropPresident, r.president)
		ext.Drops.Add(model.DropEmptyText, r.empty)
		ext.Utterances = append(ext.Utterances, r.utterances...)
	}

	zap.L().Info("pipeline: extraction complete",
		zap.Int("sessions", len(sessions)),
		zap.Int("segmented", ext.Segmented),
		zap.Int("utterances", len(ext.Utterances)),
	)
	return ext, nil
}

func (p *Pipeline) extractSession(rec model.SessionRecord) sessionResult {
	s := segment.Segment(rec)
	if !s.Cleaned {
		return sessionResult{unsegmentable: true}
	}

	raw, president := segment.Utterances(s, p.opts.PresidentPolicy)
	res := sessionResult{president: president}
	for _, u := range raw {
		u.Text = p.normalizer.Normalize(u.Text)
		if u.Text == "" {
			res.empty++
			continue
		}
		res.utterances = append(res.utterances, u)
	}
	return res
}
