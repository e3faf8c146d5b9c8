package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sells-group/discorsi-cli/internal/model"
)

var (
	// labelPattern matches an uppercase run at the start of a line. The run is
	// cut back to a Unicode word boundary by labelEnd.
	labelPattern = regexp.MustCompile(`\n+[A-Z][A-Z ]*`)

	// romanPattern matches Roman numerals 1-3999. The empty string also matches
	// and is rejected separately.
	romanPattern = regexp.MustCompile(`^M{0,3}(C[MD]|D?C{0,3})(X[CL]|L?X{0,3})(I[XV]|V?I{0,3})$`)
)

// boilerplate lists transcript header tokens that are never speaker labels.
var boilerplate = []string{
	"LEGISLATURA",
	"PAGINA BIANCA",
	"STENOGRAFICO",
	"STENOGRAFIA",
	"TIPOGRAFIA",
	"DISCUSSIONI",
	"SEDUTA",
	"VOTAZIONI",
	"DISCUS",
}

// FindCandidates returns the speaker label candidates of body in document order,
// after filtering and adjacent-duplicate collapsing.
func FindCandidates(body string) []model.SpeakerSpan {
	var spans []model.SpeakerSpan
	for _, loc := range labelPattern.FindAllStringIndex(body, -1) {
		end, ok := labelEnd(body, loc[0], loc[1])
		if !ok {
			continue
		}
		label := strings.TrimSpace(body[loc[0]:end])
		if !IsLabel(label) {
			continue
		}
		spans = append(spans, model.SpeakerSpan{Label: label, Start: loc[0], End: end})
	}
	return collapseAdjacent(spans)
}

// labelEnd shortens the match body[start:end] to the longest prefix that ends on a
// word boundary, where letters and digits of any script count as word runes. An
// uppercase run followed by an accented letter ("PERCHÉ") has no such boundary
// and is rejected.
func labelEnd(body string, start, end int) (int, bool) {
	first := start
	for first < end && body[first] == '\n' {
		first++
	}
	for p := end; p > first; p-- {
		before := body[p-1] != ' '
		after := false
		if p < len(body) {
			r, _ := utf8.DecodeRuneInString(body[p:])
			after = isWordRune(r)
		}
		if before != after {
			return p, true
		}
	}
	return 0, false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// IsLabel reports whether a trimmed match can be a speaker label.
func IsLabel(label string) bool {
	if label == `\n` || len(label) <= 1 {
		return false
	}
	for _, w := range boilerplate {
		if strings.Contains(label, w) {
			return false
		}
	}
	return !IsRomanNumeral(label)
}

// IsRomanNumeral reports whether s is an uppercase Roman numeral between 1 and 3999.
func IsRomanNumeral(s string) bool {
	return s != "" && romanPattern.MatchString(s)
}

// collapseAdjacent drops both members of every pair of candidates with no text
// between them, which happens on stacked header lines.
func collapseAdjacent(spans []model.SpeakerSpan) []model.SpeakerSpan {
	out := make([]model.SpeakerSpan, 0, len(spans))
	for i, s := range spans {
		touchesNext := i+1 < len(spans) && s.End == spans[i+1].Start
		touchesPrev := i > 0 && spans[i-1].End == s.Start
		if touchesNext || touchesPrev {
			continue
		}
		out = append(out, s)
	}
	return out
}
