package roster

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/fetcher"
)

// Legislatures is the number of republican legislatures covered by the roster.
const Legislatures = 18

// DefaultEndpoint is the Chamber of Deputies open data SPARQL endpoint.
const DefaultEndpoint = "http://dati.camera.it/sparql"

// deputiesQuery selects every deputy of one legislature with name, gender, group
// membership and mandate bounds. The %02d verb is the legislature number.
const deputiesQuery = `SELECT DISTINCT ?persona ?cognome ?nome ?info
?dataNascita ?luogoNascita ?genere ?nomeGruppo ?inizioMandato ?fineMandato
?collegio COUNT(DISTINCT ?madatoCamera) as ?numeroMandati ?aggiornamento
WHERE {
?persona ocd:rif_mandatoCamera ?mandato; a foaf:Person.
?d a ocd:deputato; ocd:aderisce ?aderisce;
ocd:rif_leg <http://dati.camera.it/ocd/legislatura.rdf/repubblica_%02d>;
ocd:rif_mandatoCamera ?mandato.
OPTIONAL{?d dc:description ?info}
?d foaf:surname ?cognome; foaf:gender ?genere;foaf:firstName ?nome.
OPTIONAL{
?persona <http://purl.org/vocab/bio/0.1/Birth> ?nascita.
?nascita <http://purl.org/vocab/bio/0.1/date> ?dataNascita;
rdfs:label ?nato; ocd:rif_luogo ?luogoNascitaUri.
?luogoNascitaUri dc:title ?luogoNascita.
}
OPTIONAL{?d <http://lod.xdams.org/ontologies/ods/modified> ?aggiornamento.}
?mandato ocd:rif_elezione ?elezione.
OPTIONAL{?mandato ocd:endDate ?fineMandato.}
OPTIONAL{?mandato ocd:startDate ?inizioMandato.}
?persona ocd:rif_mandatoCamera ?madatoCamera.
?elezione dc:coverage ?collegio.
OPTIONAL{
  ?aderisce ocd:rif_gruppoParlamentare ?gruppo.
  ?gruppo <http://purl.org/dc/terms/alternative> ?sigla.
  ?gruppo dc:title ?nomeGruppo.
}
}`

// Downloader fetches per-legislature roster CSVs from the SPARQL endpoint.
type Downloader struct {
	fetcher  fetcher.Fetcher
	endpoint string
	dir      string
}

// NewDownloader creates a Downloader writing into dir.
func NewDownloader(f fetcher.Fetcher, endpoint, dir string) *Downloader {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Downloader{fetcher: f, endpoint: endpoint, dir: dir}
}

// QueryURL returns the CSV export URL for one legislature.
func (d *Downloader) QueryURL(legislature int) string {
	q := url.Values{}
	q.Set("query", fmt.Sprintf(deputiesQuery, legislature))
	q.Set("debug", "on")
	q.Set("default-graph-uri", "")
	q.Set("format", "text/csv")
	return d.endpoint + "?" + q.Encode()
}

// FileName returns the roster file name for a legislature.
func FileName(legislature int) string {
	return fmt.Sprintf("legi%02d.csv", legislature)
}

// Download fetches one legislature and writes it with an extra legislatura column.
// Returns the written path.
func (d *Downloader) Download(ctx context.Context, legislature int) (string, error) {
	if legislature < 1 || legislature > Legislatures {
		return "", eris.Errorf("roster: legislature %d out of range 1-%d", legislature, Legislatures)
	}

	body, err := d.fetcher.Download(ctx, d.QueryURL(legislature))
	if err != nil {
		return "", eris.Wrapf(err, "roster: download legislature %d", legislature)
	}
	defer body.Close() //nolint:errcheck

	records, err := fetcher.ReadCSV(ctx, body, fetcher.CSVOptions{LazyQuotes: true})
	if err != nil {
		return "", eris.Wrapf(err, "roster: parse legislature %d", legislature)
	}
	if len(records) == 0 {
		return "", eris.Errorf("roster: empty response for legislature %d", legislature)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", eris.Wrap(err, "roster: create dir")
	}
	path := filepath.Join(d.dir, FileName(legislature))
	if err := writeWithLegislature(path, records, legislature); err != nil {
		return "", err
	}

	zap.L().Info("roster: downloaded legislature",
		zap.Int("legislature", legislature),
		zap.Int("rows", len(records)-1),
		zap.String("path", path),
	)
	return path, nil
}

// DownloadAll fetches legislatures 1 through Legislatures sequentially.
func (d *Downloader) DownloadAll(ctx context.Context) ([]string, error) {
	paths := make([]string, 0, Legislatures)
	for leg := 1; leg <= Legislatures; leg++ {
		path, err := d.Download(ctx, leg)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeWithLegislature(path string, records [][]string, legislature int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "roster: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = eris.Wrapf(cerr, "roster: close %s", path)
		}
	}()

	w := csv.NewWriter(f)
	leg := strconv.Itoa(legislature)
	for i, rec := range records {
		extra := leg
		if i == 0 {
			extra = "legislatura"
		}
		if err := w.Write(append(rec, extra)); err != nil {
			return eris.Wrapf(err, "roster: write %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "roster: flush %s", path)
	}
	return nil
}
