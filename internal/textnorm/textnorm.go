// Package textnorm lowercases, tokenizes and filters utterance text.
package textnorm

import (
	"bufio"
	_ "embed"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

//go:embed italian.txt
var italianList string

// Punctuation is the ASCII punctuation set stripped from tokens and treated as stopwords.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var multiSpaceRe = regexp.MustCompile(` {2,}`)

// Italian returns the built-in Italian stopword list.
func Italian() []string {
	return strings.Fields(italianList)
}

// LoadStopwords reads a newline-delimited stopword file. Blank lines and lines
// starting with # are skipped.
func LoadStopwords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "textnorm: open stopwords")
	}
	defer f.Close() //nolint:errcheck

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "textnorm: read stopwords")
	}
	return words, nil
}

// Normalizer strips stopwords and non-alphabetic tokens from text. It is safe for
// concurrent use.
type Normalizer struct {
	stopwords map[string]struct{}
}

// New creates a Normalizer with the given stopwords plus every ASCII punctuation
// character.
func New(stopwords []string) *Normalizer {
	set := make(map[string]struct{}, len(stopwords)+len(Punctuation))
	for _, w := range stopwords {
		set[strings.ToLower(norm.NFC.String(w))] = struct{}{}
	}
	for _, r := range Punctuation {
		set[string(r)] = struct{}{}
	}
	return &Normalizer{stopwords: set}
}

// IsStopword reports whether w is in the stopword set.
func (n *Normalizer) IsStopword(w string) bool {
	_, ok := n.stopwords[w]
	return ok
}

// Normalize returns the lowercase, alphabetic, non-stopword tokens of text in
// original order, joined by single spaces.
func (n *Normalizer) Normalize(text string) string {
	// Casers keep state and are created per call.
	lower := cases.Lower(language.Italian).String(norm.NFC.String(text))

	var words []string
	for _, tok := range Tokenize(lower) {
		w := stripPunctuation(tok)
		if w == "" || !isAlpha(w) || n.IsStopword(w) {
			continue
		}
		words = append(words, w)
	}

	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(strings.Join(words, " "), " "))
}

// Tokenize splits text into word-like units: runs of letters, digits, marks,
// underscores, ASCII apostrophes and hyphens. Any other rune separates tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) ||
		r == '\'' || r == '-' || r == '_'
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, s)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
