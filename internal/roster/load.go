package roster

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/fetcher"
	"github.com/sells-group/discorsi-cli/internal/model"
)

// FilePattern matches the per-legislature roster files written by Downloader.
const FilePattern = "legi*.csv"

var legislatureFileRe = regexp.MustCompile(`legi(\d{2})\.csv$`)

// columns lists accepted header names per field: the SPARQL variable name first,
// then English aliases.
var columns = struct {
	uri, surname, given, gender, group, start, end, district, count, legislature []string
}{
	uri:         []string{"persona", "person_uri"},
	surname:     []string{"cognome", "surname"},
	given:       []string{"nome", "given_name", "name"},
	gender:      []string{"genere", "gender"},
	group:       []string{"nomegruppo", "group"},
	start:       []string{"iniziomandato", "mandate_start"},
	end:         []string{"finemandato", "mandate_end"},
	district:    []string{"collegio", "district"},
	count:       []string{"numeromandati", "mandate_count"},
	legislature: []string{"legislatura", "legislature"},
}

// LoadDir reads every roster file in dir in lexical order, which is legislature order
// for zero-padded names.
func LoadDir(ctx context.Context, dir string) ([]model.RosterRow, error) {
	files, err := filepath.Glob(filepath.Join(dir, FilePattern))
	if err != nil {
		return nil, eris.Wrap(err, "roster: glob files")
	}
	if len(files) == 0 {
		return nil, eris.Errorf("roster: no %s files in %s", FilePattern, dir)
	}
	sort.Strings(files)

	var rows []model.RosterRow
	for _, path := range files {
		fileRows, err := LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		zap.L().Debug("roster: loaded file", zap.String("path", path), zap.Int("rows", len(fileRows)))
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

// LoadFile reads one roster CSV. The legislature comes from the legislatura column
// or, when absent, from the legiNN file name.
func LoadFile(ctx context.Context, path string) ([]model.RosterRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "roster: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	records, err := fetcher.ReadCSV(ctx, f, fetcher.CSVOptions{LazyQuotes: true})
	if err != nil {
		return nil, eris.Wrapf(err, "roster: read %s", path)
	}
	if len(records) == 0 {
		return nil, nil
	}

	fileLeg := 0
	if m := legislatureFileRe.FindStringSubmatch(filepath.Base(path)); m != nil {
		fileLeg, _ = strconv.Atoi(m[1])
	}

	return ParseRows(records[0], records[1:], fileLeg)
}

// ParseRows maps raw records onto RosterRow using the header. defaultLegislature is
// used when the legislature column is missing or empty.
func ParseRows(header []string, records [][]string, defaultLegislature int) ([]model.RosterRow, error) {
	h := fetcher.NewHeader(header)

	idx := struct {
		uri, surname, given, gender, group, start, end, district, count, legislature int
	}{
		uri:         h.Index(columns.uri...),
		surname:     h.Index(columns.surname...),
		given:       h.Index(columns.given...),
		gender:      h.Index(columns.gender...),
		group:       h.Index(columns.group...),
		start:       h.Index(columns.start...),
		end:         h.Index(columns.end...),
		district:    h.Index(columns.district...),
		count:       h.Index(columns.count...),
		legislature: h.Index(columns.legislature...),
	}
	if idx.surname == -1 || idx.given == -1 || idx.gender == -1 || idx.group == -1 {
		return nil, eris.Errorf("roster: header missing required columns (have %v)", header)
	}

	rows := make([]model.RosterRow, 0, len(records))
	for i, rec := range records {
		leg := defaultLegislature
		if raw := strings.TrimSpace(fetcher.Field(rec, idx.legislature)); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, eris.Wrapf(err, "roster: row %d: legislature %q", i+1, raw)
			}
			leg = n
		}
		rows = append(rows, model.RosterRow{
			PersonURI:      fetcher.Field(rec, idx.uri),
			Surname:        strings.TrimSpace(fetcher.Field(rec, idx.surname)),
			GivenName:      strings.TrimSpace(fetcher.Field(rec, idx.given)),
			Gender:         strings.TrimSpace(fetcher.Field(rec, idx.gender)),
			GroupComposite: fetcher.Field(rec, idx.group),
			MandateStart:   fetcher.Field(rec, idx.start),
			MandateEnd:     fetcher.Field(rec, idx.end),
			District:       fetcher.Field(rec, idx.district),
			MandateCount:   fetcher.Field(rec, idx.count),
			Legislature:    leg,
		})
	}
	return rows, nil
}
