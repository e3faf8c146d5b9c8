package model

import (
	"strconv"
	"time"
)

// CorpusColumns is the output column order of the final corpus.
var CorpusColumns = []string{
	"convocation_id",
	"speaker_label",
	"cleaned_text",
	"gender",
	"date",
	"legislature_number",
	"party",
}

// CorpusRecord is one attributed, cleaned speech.
type CorpusRecord struct {
	ConvocationID string    `json:"convocation_id" yaml:"convocation_id"`
	Speaker       string    `json:"speaker_label" yaml:"speaker_label"`
	Text          string    `json:"cleaned_text" yaml:"cleaned_text"`
	Gender        string    `json:"gender" yaml:"gender"`
	Date          time.Time `json:"date" yaml:"date"`
	Legislature   int       `json:"legislature_number" yaml:"legislature_number"`
	Party         string    `json:"party" yaml:"party"`
}

// Row projects the record onto CorpusColumns.
func (c CorpusRecord) Row() []string {
	return []string{
		c.ConvocationID,
		c.Speaker,
		c.Text,
		c.Gender,
		c.Date.Format(time.DateOnly),
		strconv.Itoa(c.Legislature),
		c.Party,
	}
}

// DropReason names why a record was excluded from the corpus.
type DropReason string

const (
	DropUnsegmentable DropReason = "unsegmentable"
	DropPresident     DropReason = "president"
	DropEmptyText     DropReason = "empty_text"
	DropNoGender      DropReason = "no_gender"
	DropNoMetadata    DropReason = "no_metadata"
	DropNoParty       DropReason = "no_party"
)

// RunStatus represents the state of a corpus build run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run summarizes one corpus build.
type Run struct {
	ID        string             `json:"id" yaml:"id"`
	Status    RunStatus          `json:"status" yaml:"status"`
	Sessions  int                `json:"sessions" yaml:"sessions"`
	Records   int                `json:"records" yaml:"records"`
	Drops     map[DropReason]int `json:"drops" yaml:"drops"`
	Error     string             `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt time.Time          `json:"started_at" yaml:"started_at"`
	EndedAt   time.Time          `json:"ended_at" yaml:"ended_at"`
}
