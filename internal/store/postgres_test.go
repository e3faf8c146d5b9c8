package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/discorsi-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS runs`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(pgxmock.AnyArg(), "running", 7, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, 7, run.Sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET status = \$1, records = \$2, drops = \$3, ended_at = \$4 WHERE id = \$5`).
		WithArgs("complete", 2, `{"no_party":1}`, pgxmock.AnyArg(), "r1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	run := &model.Run{ID: "r1", Records: 2, Drops: map[model.DropReason]int{model.DropNoParty: 1}}
	require.NoError(t, s.CompleteRun(context.Background(), run))
	assert.Equal(t, model.RunStatusComplete, run.Status)
	assert.False(t, run.EndedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.CompleteRun(context.Background(), &model.Run{ID: "gone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FailRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET status = \$1, error = \$2`).
		WithArgs("failed", "boom", pgxmock.AnyArg(), "r1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.FailRun(context.Background(), "r1", fmt.Errorf("boom")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	started := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	ended := started.Add(time.Minute)
	mock.ExpectQuery(`SELECT id, status, sessions, records, drops::text, error, started_at, ended_at FROM runs WHERE id = \$1`).
		WithArgs("r1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "status", "sessions", "records", "drops", "error", "started_at", "ended_at"}).
			AddRow("r1", "complete", 3, 2, `{"no_gender":5}`, "", started, &ended))

	run, err := s.GetRun(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	assert.Equal(t, 3, run.Sessions)
	assert.Equal(t, 5, run.Drops[model.DropNoGender])
	assert.Equal(t, ended, run.EndedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, status`).
		WithArgs("nonexistent-run").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetRun(context.Background(), "nonexistent-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRecords(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"corpus"}, corpusColumns).WillReturnResult(2)

	n, err := s.SaveRecords(context.Background(), "r1", sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRecords_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"corpus"}, corpusColumns).WillReturnError(fmt.Errorf("copy failed"))

	_, err := s.SaveRecords(context.Background(), "r1", sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save corpus r1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRecords(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM corpus WHERE run_id = \$1 ORDER BY seq`).
		WithArgs("r1").
		WillReturnRows(pgxmock.NewRows([]string{"convocation_id", "speaker_label", "cleaned_text", "gender", "date", "legislature_number", "party"}).
			AddRow("c1", "MARIO ROSSI", "grazie presidente", "male", "2010-06-15", 16, "Partito Alfa").
			AddRow("c1", "ANNA BIANCHI", "governo sbaglia", "female", "2010-06-15", 16, "Partito Beta"))

	got, err := s.ListRecords(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	started := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	ended := started.Add(time.Minute)
	var open *time.Time
	mock.ExpectQuery(`FROM runs ORDER BY started_at DESC LIMIT \$1`).
		WithArgs(DefaultRunLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status", "sessions", "records", "drops", "error", "started_at", "ended_at"}).
			AddRow("r2", "running", 1, 0, `{}`, "", started.Add(time.Hour), open).
			AddRow("r1", "failed", 3, 0, `{"no_party":2}`, "boom", started, &ended))

	runs, err := s.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].ID)
	assert.True(t, runs[0].EndedAt.IsZero())
	assert.Equal(t, model.RunStatusFailed, runs[1].Status)
	assert.Equal(t, "boom", runs[1].Error)
	assert.Equal(t, 2, runs[1].Drops[model.DropNoParty])
	assert.Equal(t, ended, runs[1].EndedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM runs ORDER BY`).
		WithArgs(5).
		WillReturnError(fmt.Errorf("connection reset"))

	_, err := s.ListRuns(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: list runs")
	assert.NoError(t, mock.ExpectationsWereMet())
}
