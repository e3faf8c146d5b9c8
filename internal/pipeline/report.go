package pipeline

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/discorsi-cli/internal/model"
	"github.com/sells-group/discorsi-cli/internal/roster"
)

// Report is the YAML run summary.
type Report struct {
	Run    model.Run    `yaml:"run"`
	Roster roster.Stats `yaml:"roster"`
	Output string       `yaml:"output,omitempty"`
}

// NewReport summarizes a finished run.
func NewReport(runID string, res *Result, stats roster.Stats, startedAt, endedAt time.Time) Report {
	return Report{
		Run: model.Run{
			ID:        runID,
			Status:    model.RunStatusComplete,
			Sessions:  res.Sessions,
			Records:   len(res.Records),
			Drops:     res.Drops,
			StartedAt: startedAt,
			EndedAt:   endedAt,
		},
		Roster: stats,
	}
}

// WriteReport marshals the report to path.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "report: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "report: write file")
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, eris.Wrap(err, "report: read file")
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, eris.Wrap(err, "report: unmarshal")
	}
	return r, nil
}
