// Package segment splits raw session transcripts into speaker-attributed utterances.
package segment

import (
	"strings"

	"github.com/sells-group/discorsi-cli/internal/model"
)

const (
	sessionStartMarker = "La seduta comincia"
	blankPageMarker    = "PAGINA BIANCA"
	presidencyMarker   = "PRESIDENZ"

	// presidencySkip is the length of "PRESIDENZA ", the marker word plus one separator.
	presidencySkip = 11
)

// ExtractSession returns the session body of a raw transcript. When the start marker
// occurs exactly once the body starts on the line after it and stops at the blank
// page boilerplate, if any. Otherwise the raw text is returned with cleaned=false.
func ExtractSession(raw string) (body string, cleaned bool) {
	parts := strings.Split(raw, sessionStartMarker)
	if len(parts) != 2 {
		return raw, false
	}

	text := parts[1]
	start := strings.Index(text, "\n") + 1

	end := len(text)
	if idx := strings.Index(text, blankPageMarker); idx != -1 {
		end = idx
	}
	if end < start {
		return "", true
	}
	return text[start:end], true
}

// ExtractPresident returns the surname of the presiding officer, taken as the last
// token on the line that follows the presidency marker. Returns "" when not found.
func ExtractPresident(raw string) string {
	idx := strings.Index(raw, presidencyMarker)
	if idx == -1 {
		return ""
	}

	start := idx + presidencySkip
	if start > len(raw) {
		return ""
	}
	line := raw[start:]
	if nl := strings.Index(line, "\n"); nl != -1 {
		line = line[:nl]
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Segment performs boundary and president extraction for one session record.
func Segment(rec model.SessionRecord) model.Session {
	body, cleaned := ExtractSession(rec.RawText)
	rec.Cleaned = cleaned
	return model.Session{
		Record:    rec,
		Body:      body,
		President: ExtractPresident(rec.RawText),
		Cleaned:   cleaned,
	}
}
