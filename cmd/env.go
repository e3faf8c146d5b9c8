package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/config"
	"github.com/sells-group/discorsi-cli/internal/fetcher"
	"github.com/sells-group/discorsi-cli/internal/pipeline"
	"github.com/sells-group/discorsi-cli/internal/roster"
	"github.com/sells-group/discorsi-cli/internal/segment"
	"github.com/sells-group/discorsi-cli/internal/source"
	"github.com/sells-group/discorsi-cli/internal/textnorm"
)

func newFetcher(c *config.Config) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.Fetch.UserAgent,
		Accept:     "text/csv",
		Timeout:    c.Fetch.Timeout(),
		MaxRetries: c.Fetch.Retries,
		RatePerSec: c.Fetch.RatePerSec,
	})
}

func newDownloader(c *config.Config) *roster.Downloader {
	return roster.NewDownloader(newFetcher(c), c.Roster.Endpoint, c.Roster.Dir)
}

// loadRoster downloads the roster files when configured, then builds the tables.
func loadRoster(ctx context.Context, c *config.Config, today time.Time) (*roster.Roster, error) {
	policy, err := roster.ParseStartDatePolicy(c.Roster.StartDatePolicy)
	if err != nil {
		return nil, err
	}

	if c.Roster.Download {
		if _, err := newDownloader(c).DownloadAll(ctx); err != nil {
			return nil, eris.Wrap(err, "download roster")
		}
	}

	rows, err := roster.LoadDir(ctx, c.Roster.Dir)
	if err != nil {
		return nil, eris.Wrap(err, "load roster")
	}
	return roster.Build(rows, policy, today)
}

func newNormalizer(c *config.Config) (*textnorm.Normalizer, error) {
	words := textnorm.Italian()
	if p := c.Normalize.ExtraStopwordsPath; p != "" {
		extra, err := textnorm.LoadStopwords(p)
		if err != nil {
			return nil, err
		}
		zap.L().Info("loaded extra stopwords", zap.String("path", p), zap.Int("words", len(extra)))
		words = append(words, extra...)
	}
	return textnorm.New(words), nil
}

func pipelineOptions(c *config.Config) (pipeline.Options, error) {
	policy, err := segment.ParsePresidentPolicy(c.Segment.PresidentPolicy)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Workers: c.Pipeline.Workers, PresidentPolicy: policy}, nil
}

func sourceOptions(c *config.Config) source.Options {
	return source.Options{Separator: c.Input.SeparatorRune(), Sheet: c.Input.Sheet}
}
