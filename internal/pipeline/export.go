package pipeline

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/discorsi-cli/internal/model"
)

// WriteCorpus writes records as CSV with the corpus header.
func WriteCorpus(w io.Writer, records []model.CorpusRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.CorpusColumns); err != nil {
		return eris.Wrap(err, "corpus export: write header")
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return eris.Wrap(err, "corpus export: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "corpus export: flush")
}

// ExportCorpusCSV writes records to outputPath.
func ExportCorpusCSV(records []model.CorpusRecord, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "corpus export: create file")
	}
	defer f.Close() //nolint:errcheck

	return WriteCorpus(f, records)
}

// UtteranceColumns is the header of a segmentation-only export.
var UtteranceColumns = []string{"convocation_id", "speaker_label", "cleaned_text"}

// ExportUtterancesCSV writes normalized utterances without attribution.
func ExportUtterancesCSV(utterances []model.Utterance, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "utterance export: create file")
	}
	defer f.Close() //nolint:errcheck

	cw := csv.NewWriter(f)
	if err := cw.Write(UtteranceColumns); err != nil {
		return eris.Wrap(err, "utterance export: write header")
	}
	for _, u := range utterances {
		if err := cw.Write([]string{u.ConvocationID, u.Speaker, u.Text}); err != nil {
			return eris.Wrap(err, "utterance export: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "utterance export: flush")
}
