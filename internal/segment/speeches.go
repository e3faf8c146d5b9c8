package segment

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/discorsi-cli/internal/model"
)

// PresidentLabel is the literal label used in transcripts for the presiding officer.
const PresidentLabel = "PRESIDENTE"

// PresidentPolicy controls what happens to utterances labelled PresidentLabel.
type PresidentPolicy string

const (
	// PresidentLiteral keeps PRESIDENTE as the speaker label.
	PresidentLiteral PresidentPolicy = "literal"
	// PresidentSubstitute replaces PRESIDENTE with the extracted surname when known.
	PresidentSubstitute PresidentPolicy = "substitute"
	// PresidentDrop discards utterances labelled PRESIDENTE.
	PresidentDrop PresidentPolicy = "drop"
)

// ParsePresidentPolicy validates a policy name. Empty means PresidentLiteral.
func ParsePresidentPolicy(s string) (PresidentPolicy, error) {
	switch p := PresidentPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PresidentLiteral, nil
	case PresidentLiteral, PresidentSubstitute, PresidentDrop:
		return p, nil
	default:
		return "", eris.Errorf("segment: unknown president policy %q (valid: literal, substitute, drop)", s)
	}
}

// Spans slices body into one utterance per candidate. Each utterance runs from the
// end of its label to the start of the next label, or to the end of body.
func Spans(convocationID, body string, spans []model.SpeakerSpan) []model.Utterance {
	out := make([]model.Utterance, 0, len(spans))
	for i, s := range spans {
		var text string
		if i+1 < len(spans) {
			text = body[s.End:spans[i+1].Start]
		} else {
			text = body[s.End:]
		}
		out = append(out, model.Utterance{
			ConvocationID: convocationID,
			Speaker:       s.Label,
			Text:          strings.TrimSpace(text),
		})
	}
	return out
}

// Utterances segments a session into utterances in document order, applying the
// president policy. Sessions that were not cleanly segmented yield nothing.
// The second return value counts utterances removed by PresidentDrop.
func Utterances(s model.Session, policy PresidentPolicy) ([]model.Utterance, int) {
	if !s.Cleaned {
		return nil, 0
	}

	all := Spans(s.Record.ConvocationID, s.Body, FindCandidates(s.Body))

	out := all[:0]
	dropped := 0
	for _, u := range all {
		if u.Speaker == PresidentLabel {
			switch policy {
			case PresidentDrop:
				dropped++
				continue
			case PresidentSubstitute:
				if s.President != "" {
					u.Speaker = s.President
				}
			}
		}
		out = append(out, u)
	}
	return out, dropped
}
