package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/discorsi-cli/internal/db"
	"github.com/sells-group/discorsi-cli/internal/model"
)

// copyBatchSize bounds the rows sent per COPY.
const copyBatchSize = 5000

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	status     TEXT NOT NULL DEFAULT 'running',
	sessions   INTEGER NOT NULL DEFAULT 0,
	records    INTEGER NOT NULL DEFAULT 0,
	drops      JSONB NOT NULL DEFAULT '{}',
	error      TEXT NOT NULL DEFAULT '',
	started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	ended_at   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS corpus (
	run_id             TEXT NOT NULL REFERENCES runs(id),
	seq                INTEGER NOT NULL,
	convocation_id     TEXT NOT NULL,
	speaker_label      TEXT NOT NULL,
	cleaned_text       TEXT NOT NULL,
	gender             TEXT NOT NULL,
	date               DATE NOT NULL,
	legislature_number INTEGER NOT NULL,
	party              TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_corpus_convocation ON corpus(convocation_id);
CREATE INDEX IF NOT EXISTS idx_corpus_party_date ON corpus(party, date);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, sessions int) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, status, sessions, started_at) VALUES ($1, $2, $3, $4)`,
		id, string(model.RunStatusRunning), sessions, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &model.Run{
		ID:        id,
		Status:    model.RunStatusRunning,
		Sessions:  sessions,
		Drops:     map[model.DropReason]int{},
		StartedAt: now,
	}, nil
}

func (s *PostgresStore) CompleteRun(ctx context.Context, run *model.Run) error {
	drops, err := marshalDrops(run.Drops)
	if err != nil {
		return err
	}
	if run.EndedAt.IsZero() {
		run.EndedAt = time.Now().UTC()
	}
	run.Status = model.RunStatusComplete

	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, records = $2, drops = $3, ended_at = $4 WHERE id = $5`,
		string(run.Status), run.Records, drops, run.EndedAt, run.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete run %s", run.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("run not found: %s", run.ID)
	}
	return nil
}

func (s *PostgresStore) FailRun(ctx context.Context, runID string, cause error) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, error = $2, ended_at = $3 WHERE id = $4`,
		string(model.RunStatusFailed), errorText(cause), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: fail run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("run not found: %s", runID)
	}
	return nil
}

const postgresRunColumns = `id, status, sessions, records, drops::text, error, started_at, ended_at`

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+postgresRunColumns+` FROM runs WHERE id = $1`, runID)
	run, err := scanPostgresRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("postgres: get run: not found: %s", runID)
		}
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return run, nil
}

// ListRuns returns the most recent runs first.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+postgresRunColumns+` FROM runs ORDER BY started_at DESC LIMIT $1`,
		runLimit(limit),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var out []model.Run
	for rows.Next() {
		run, err := scanPostgresRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		out = append(out, *run)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func scanPostgresRun(row scannable) (*model.Run, error) {
	var (
		run    model.Run
		status string
		drops  string
		ended  *time.Time
	)
	if err := row.Scan(&run.ID, &status, &run.Sessions, &run.Records, &drops, &run.Error, &run.StartedAt, &ended); err != nil {
		return nil, err
	}

	run.Status = model.RunStatus(status)
	if ended != nil {
		run.EndedAt = *ended
	}
	var err error
	if run.Drops, err = unmarshalDrops(drops); err != nil {
		return nil, err
	}
	return &run, nil
}

// SaveRecords bulk-loads records with COPY, numbering them in slice order.
func (s *PostgresStore) SaveRecords(ctx context.Context, runID string, records []model.CorpusRecord) (int64, error) {
	rows := make([][]any, len(records))
	for i, r := range records {
		args := recordArgs(runID, i, r)
		args[6] = model.Day(r.Date)
		rows[i] = args
	}

	n, err := db.CopyInBatches(ctx, s.pool, "corpus", corpusColumns, rows, copyBatchSize)
	if err != nil {
		return n, eris.Wrapf(err, "postgres: save corpus %s", runID)
	}
	return n, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, runID string) ([]model.CorpusRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT convocation_id, speaker_label, cleaned_text, gender, date::text, legislature_number, party
		FROM corpus WHERE run_id = $1 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list corpus %s", runID)
	}
	defer rows.Close()

	var out []model.CorpusRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate corpus")
}
