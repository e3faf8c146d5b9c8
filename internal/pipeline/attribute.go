package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/discorsi-cli/internal/model"
)

// Attribute resolves gender, date, legislature and party for each utterance in order.
// Records failing gender, metadata or party resolution are dropped and counted; a
// date no legislature covers is returned as an error.
func (p *Pipeline) Attribute(utterances []model.Utterance, meta MetadataLookup) ([]model.CorpusRecord, Drops, error) {
	if err := p.checkAttribution(); err != nil {
		return nil, nil, err
	}

	drops := Drops{}
	records := make([]model.CorpusRecord, 0, len(utterances))
	for _, u := range utterances {
		gender, ok := p.gender.Resolve(u.Speaker)
		if !ok {
			drops.Add(model.DropNoGender, 1)
			continue
		}

		date, ok := meta.Lookup(u.ConvocationID)
		if !ok {
			drops.Add(model.DropNoMetadata, 1)
			continue
		}

		legislature, err := p.calendar.Resolve(date)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "pipeline: convocation %s", u.ConvocationID)
		}

		party, ok := p.party.Resolve(u.Speaker, date)
		if !ok {
			drops.Add(model.DropNoParty, 1)
			continue
		}

		records = append(records, model.CorpusRecord{
			ConvocationID: u.ConvocationID,
			Speaker:       u.Speaker,
			Text:          u.Text,
			Gender:        gender,
			Date:          model.Day(date),
			Legislature:   legislature,
			Party:         party,
		})
	}
	return records, drops, nil
}
