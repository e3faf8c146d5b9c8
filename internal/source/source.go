// Package source loads session transcripts and session metadata from CSV or XLSX files.
package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/discorsi-cli/internal/fetcher"
)

// DefaultSeparator is the field separator of the session exports.
const DefaultSeparator = ';'

// Options configures tabular reads.
type Options struct {
	Separator rune // CSV only; default ';'
	Sheet     string
}

// readTable returns header and data rows from a CSV or, by extension, XLSX file.
func readTable(ctx context.Context, path string, opts Options) ([]string, [][]string, error) {
	var rows [][]string
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		var err error
		rows, err = fetcher.ReadXLSX(path, opts.Sheet)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "source: read %s", path)
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "source: open %s", path)
		}
		defer f.Close() //nolint:errcheck

		sep := opts.Separator
		if sep == 0 {
			sep = DefaultSeparator
		}
		rows, err = fetcher.ReadCSV(ctx, f, fetcher.CSVOptions{Delimiter: sep, LazyQuotes: true})
		if err != nil {
			return nil, nil, eris.Wrapf(err, "source: read %s", path)
		}
	}

	if len(rows) == 0 {
		return nil, nil, eris.Errorf("source: %s is empty", path)
	}
	return rows[0], rows[1:], nil
}
