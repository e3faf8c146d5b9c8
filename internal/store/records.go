package store

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/discorsi-cli/internal/model"
)

type scannable interface {
	Scan(dest ...any) error
}

// recordArgs returns the insert values for one record in corpusColumns order.
// Dates are stored as YYYY-MM-DD text in both backends.
func recordArgs(runID string, seq int, r model.CorpusRecord) []any {
	return []any{
		runID,
		seq,
		r.ConvocationID,
		r.Speaker,
		r.Text,
		r.Gender,
		r.Date.Format(time.DateOnly),
		r.Legislature,
		r.Party,
	}
}

func scanRecord(row scannable) (model.CorpusRecord, error) {
	var (
		r    model.CorpusRecord
		date string
	)
	if err := row.Scan(&r.ConvocationID, &r.Speaker, &r.Text, &r.Gender, &date, &r.Legislature, &r.Party); err != nil {
		return r, eris.Wrap(err, "store: scan corpus row")
	}
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return r, eris.Wrapf(err, "store: parse corpus date %q", date)
	}
	r.Date = d
	return r, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
