package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/discorsi-cli/internal/model"
)

func labels(spans []model.SpeakerSpan) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Label
	}
	return out
}

func TestFindCandidates_Offsets(t *testing.T) {
	body := "\nALFA testo uno\nBETA testo due"
	spans := FindCandidates(body)
	require.Len(t, spans, 2)

	assert.Equal(t, model.SpeakerSpan{Label: "ALFA", Start: 0, End: 6}, spans[0])
	assert.Equal(t, "BETA", spans[1].Label)
	assert.Equal(t, 15, spans[1].Start)
	assert.Equal(t, "testo due", body[spans[1].End:])
}

func TestFindCandidates_MultiWordLabel(t *testing.T) {
	spans := FindCandidates("\nMARIO ROSSI Grazie.")
	require.Len(t, spans, 1)
	assert.Equal(t, "MARIO ROSSI", spans[0].Label)
}

func TestFindCandidates_RepeatedLineBreaks(t *testing.T) {
	spans := FindCandidates("testo\n\n\nALFA parla")
	require.Len(t, spans, 1)
	assert.Equal(t, "ALFA", spans[0].Label)
	assert.Equal(t, 5, spans[0].Start)
}

func TestFindCandidates_Boilerplate(t *testing.T) {
	body := "\nXVI LEGISLATURA testo\nRESOCONTO STENOGRAFICO testo\nALFA parla"
	assert.Equal(t, []string{"ALFA"}, labels(FindCandidates(body)))
}

func TestFindCandidates_RomanNumeralNeverLabel(t *testing.T) {
	assert.Empty(t, FindCandidates("\nXVI seguito"))
	assert.Equal(t, []string{"ALFA"}, labels(FindCandidates("\nXVI\nALFA testo")))
}

func TestFindCandidates_SingleLetterDropped(t *testing.T) {
	assert.Empty(t, FindCandidates("\nA parte questo"))
}

func TestFindCandidates_AdjacentPairDropped(t *testing.T) {
	assert.Empty(t, FindCandidates("\nALFA\nBETA testo"))
}

func TestFindCandidates_AdjacentChain(t *testing.T) {
	body := "\nALFA\nBETA\nGAMMA testo\nDELTA parla"
	assert.Equal(t, []string{"DELTA"}, labels(FindCandidates(body)))
}

func TestFindCandidates_AccentedCapitals(t *testing.T) {
	body := "\nROSSI testo uno\nCIÒ che dico\nPERCHÉ no"
	spans := FindCandidates(body)
	assert.Equal(t, []string{"ROSSI"}, labels(spans))

	got := Spans("c1", body, spans)
	require.Len(t, got, 1)
	assert.Equal(t, "testo uno\nCIÒ che dico\nPERCHÉ no", got[0].Text)
}

func TestFindCandidates_AccentedWordInsideLabelLine(t *testing.T) {
	for _, body := range []string{"\nCITTÀ METROPOLITANA", "\nNICOLÒ ROSSI parla", "\nATTIVITÀ produttive"} {
		assert.Empty(t, FindCandidates(body), body)
	}
}

func TestFindCandidates_AccentAfterSpace(t *testing.T) {
	body := "\nROSSI È qui"
	spans := FindCandidates(body)
	require.Len(t, spans, 1)
	assert.Equal(t, "ROSSI", spans[0].Label)
	assert.Equal(t, "È qui", body[spans[0].End:])
}

func TestFindCandidates_DigitAfterRun(t *testing.T) {
	// "ART1" has no boundary inside the uppercase run; "ROSSI 3" ends after the space.
	assert.Empty(t, FindCandidates("\nART1 comma"))
	assert.Equal(t, []string{"ROSSI"}, labels(FindCandidates("\nROSSI 3 volte")))
}

func TestIsLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"PRESIDENTE", true},
		{"MARIO ROSSI", true},
		{`\n`, false},
		{"A", false},
		{"", false},
		{"SEDUTA DEL", false},
		{"VOTAZIONI", false},
		{"DISCUSSIONE", false},
		{"XIV", false},
		{"MMXX", false},
		{"MIX", false},
		{"LIV", false},
		{"IIII", true},
		{"VV", true},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLabel(tt.label))
		})
	}
}

func TestIsRomanNumeral(t *testing.T) {
	for _, s := range []string{"I", "IV", "IX", "XL", "XC", "CD", "CM", "MMMCMXCIX", "XVIII"} {
		assert.True(t, IsRomanNumeral(s), s)
	}
	for _, s := range []string{"", "xvi", "IIII", "VX", "MMMM", "ROSSI", "XVI "} {
		assert.False(t, IsRomanNumeral(s), s)
	}
}

func TestCollapseAdjacent_KeepsSeparated(t *testing.T) {
	in := []model.SpeakerSpan{
		{Label: "A1", Start: 0, End: 4},
		{Label: "B1", Start: 10, End: 14},
		{Label: "C1", Start: 14, End: 18},
		{Label: "D1", Start: 30, End: 34},
	}
	assert.Equal(t, []string{"A1", "D1"}, labels(collapseAdjacent(in)))
	assert.Empty(t, collapseAdjacent(nil))
}
