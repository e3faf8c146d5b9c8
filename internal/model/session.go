package model

import "time"

// SessionRecord is one row of session source data: a single convocation transcript.
type SessionRecord struct {
	ID            string `json:"id"`
	ConvocationID string `json:"convocation_id"`
	DownloadTime  string `json:"download_time"`
	RawText       string `json:"raw_text"`
	Cleaned       bool   `json:"cleaned"`
}

// Session is a SessionRecord after boundary extraction.
type Session struct {
	Record    SessionRecord `json:"record"`
	Body      string        `json:"body"`
	President string        `json:"president"`
	Cleaned   bool          `json:"cleaned"`
}

// SpeakerSpan is a candidate speaker label match inside a session body.
// End is where the label ends and the utterance begins.
type SpeakerSpan struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Utterance is one speech attributed to a speaker label.
type Utterance struct {
	ConvocationID string `json:"convocation_id"`
	Speaker       string `json:"speaker"`
	Text          string `json:"text"`
}

// SessionMeta joins a convocation id to its calendar date.
type SessionMeta struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
}
