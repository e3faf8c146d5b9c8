// Package store persists corpus build runs and their records.
package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/discorsi-cli/internal/model"
)

// Store defines the persistence interface for corpus builds.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, sessions int) (*model.Run, error)
	CompleteRun(ctx context.Context, run *model.Run) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// Corpus
	SaveRecords(ctx context.Context, runID string, records []model.CorpusRecord) (int64, error)
	ListRecords(ctx context.Context, runID string) ([]model.CorpusRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the store for a driver name and migrates it.
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	var (
		st  Store
		err error
	)
	switch strings.ToLower(driver) {
	case "sqlite":
		if databaseURL == "" {
			databaseURL = "discorsi.db"
		}
		st, err = NewSQLite(databaseURL)
	case "postgres":
		st, err = NewPostgres(ctx, databaseURL, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// corpusColumns are the persisted corpus columns, in insert order.
var corpusColumns = []string{
	"run_id",
	"seq",
	"convocation_id",
	"speaker_label",
	"cleaned_text",
	"gender",
	"date",
	"legislature_number",
	"party",
}

// runColumns is the run projection shared by GetRun and ListRuns.
const runColumns = "id, status, sessions, records, drops, error, started_at, ended_at"

// DefaultRunLimit caps ListRuns when no positive limit is given.
const DefaultRunLimit = 50

func runLimit(limit int) int {
	if limit <= 0 {
		return DefaultRunLimit
	}
	return limit
}

func marshalDrops(drops map[model.DropReason]int) (string, error) {
	if drops == nil {
		drops = map[model.DropReason]int{}
	}
	b, err := json.Marshal(drops)
	if err != nil {
		return "", eris.Wrap(err, "store: marshal drops")
	}
	return string(b), nil
}

func unmarshalDrops(s string) (map[model.DropReason]int, error) {
	drops := map[model.DropReason]int{}
	if s == "" {
		return drops, nil
	}
	if err := json.Unmarshal([]byte(s), &drops); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal drops")
	}
	return drops, nil
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
