package source

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/fetcher"
	"github.com/sells-group/discorsi-cli/internal/model"
)

// DateLayouts are tried in order when parsing metadata dates.
var DateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"02/01/2006",
}

// ParseDate parses a metadata date with the first matching layout.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("source: unrecognized date %q", s)
}

// Metadata maps a convocation id to its session date.
type Metadata map[string]time.Time

// Lookup returns the date for a convocation id.
func (m Metadata) Lookup(convocationID string) (time.Time, bool) {
	t, ok := m[convocationID]
	return t, ok
}

// LoadMetadata reads id/date pairs. The first row for an id wins; rows with an
// unparsable date are skipped.
func LoadMetadata(ctx context.Context, path string, opts Options) (Metadata, error) {
	header, rows, err := readTable(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	h := fetcher.NewHeader(header)
	idIdx := h.Index("id", "convocationid", "convocation_id")
	dateIdx := h.Index("date", "data")
	if idIdx == -1 || dateIdx == -1 {
		return nil, eris.Errorf("source: %s: missing id or date column (have %v)", path, header)
	}

	metas := make([]model.SessionMeta, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		d, err := ParseDate(fetcher.Field(row, dateIdx))
		if err != nil {
			skipped++
			zap.L().Debug("source: skipping metadata row", zap.Error(err))
			continue
		}
		metas = append(metas, model.SessionMeta{ID: strings.TrimSpace(fetcher.Field(row, idIdx)), Date: d})
	}

	m := NewMetadata(metas)
	zap.L().Info("source: loaded metadata",
		zap.String("path", path),
		zap.Int("sessions", len(m)),
		zap.Int("skipped", skipped),
	)
	return m, nil
}

// NewMetadata indexes metadata rows by id, keeping the first date per id.
func NewMetadata(metas []model.SessionMeta) Metadata {
	m := make(Metadata, len(metas))
	for _, meta := range metas {
		if _, dup := m[meta.ID]; !dup {
			m[meta.ID] = meta.Date
		}
	}
	return m
}
