package source

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/fetcher"
	"github.com/sells-group/discorsi-cli/internal/model"
)

// LoadSessions reads session records. Required columns are convocationid and text;
// id and downloadtime are carried when present. Ids are trimmed to match the
// metadata keys.
func LoadSessions(ctx context.Context, path string, opts Options) ([]model.SessionRecord, error) {
	header, rows, err := readTable(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	h := fetcher.NewHeader(header)
	idIdx := h.Index("id")
	convIdx := h.Index("convocationid", "convocation_id")
	timeIdx := h.Index("downloadtime", "download_time")
	textIdx := h.Index("text", "testo")
	if convIdx == -1 || textIdx == -1 {
		return nil, eris.Errorf("source: %s: missing convocationid or text column (have %v)", path, header)
	}

	records := make([]model.SessionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.SessionRecord{
			ID:            strings.TrimSpace(fetcher.Field(row, idIdx)),
			ConvocationID: strings.TrimSpace(fetcher.Field(row, convIdx)),
			DownloadTime:  fetcher.Field(row, timeIdx),
			RawText:       fetcher.Field(row, textIdx),
		})
	}

	zap.L().Info("source: loaded sessions", zap.String("path", path), zap.Int("sessions", len(records)))
	return records, nil
}
