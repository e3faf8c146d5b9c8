package roster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "legi17.csv", "persona,cognome,nome,genere,nomeGruppo,legislatura\n"+
		"p2,ROSSI,MARIO,male,\"Partito Beta (PB, 01.01.2013-31.12.2017)\",17\n")
	writeFile(t, dir, "legi16.csv", "persona,cognome,nome,genere,nomeGruppo\n"+
		"p1,ROSSI,MARIO,male,\"Partito Alfa (PA, 01.01.2010-31.12.2012)\"\n"+
		"p3, BIANCHI ,ANNA,female,\"Gruppo Misto (MISTO) (01.01.2010-31.12.2012)\"\n")
	writeFile(t, dir, "notes.txt", "ignored")

	rows, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "p1", rows[0].PersonURI)
	assert.Equal(t, 16, rows[0].Legislature)
	assert.Equal(t, "Partito Alfa (PA, 01.01.2010-31.12.2012)", rows[0].GroupComposite)
	assert.Equal(t, "BIANCHI", rows[1].Surname)
	assert.Equal(t, 16, rows[1].Legislature)
	assert.Equal(t, 17, rows[2].Legislature)
}

func TestLoadDir_Empty(t *testing.T) {
	_, err := LoadDir(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestParseRows_MissingColumns(t *testing.T) {
	_, err := ParseRows([]string{"cognome", "nome"}, nil, 1)
	assert.Error(t, err)
}

func TestParseRows_EnglishHeader(t *testing.T) {
	rows, err := ParseRows(
		[]string{"\ufeffSurname", "Given_Name", "Gender", "Group", "Legislature"},
		[][]string{{"ROSSI", "MARIO", "male", "Partito Alfa (PA, 01.01.2010-31.12.2012)", ""}},
		9,
	)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ROSSI", rows[0].Surname)
	assert.Equal(t, 9, rows[0].Legislature)
}

func TestParseRows_BadLegislature(t *testing.T) {
	_, err := ParseRows(
		[]string{"cognome", "nome", "genere", "nomegruppo", "legislatura"},
		[][]string{{"ROSSI", "MARIO", "male", "x (y, z)", "XVI"}},
		0,
	)
	assert.Error(t, err)
}
