package textproc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/clipperhouse/uax29/v2/words"
	"github.com/kljensen/snowball/english"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode selects the token reduction strategy applied at the end of the
// normalization pipeline.
type Mode int

const (
	// ModeStem truncates each token to a root form with the Snowball
	// (Porter2) English stemmer.
	ModeStem Mode = iota

	// ModeLemmatize maps each token to its dictionary base form using an
	// English lemma dictionary.
	ModeLemmatize
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeStem:
		return "stem"
	case ModeLemmatize:
		return "lemmatize"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Normalizer converts raw README text into its normalized form.
// The pipeline is strictly ordered: lowercase, strip markup, tokenize,
// remove stopwords, reduce tokens, join with single spaces. Given the
// same input and mode the output is identical; the normalizer holds no
// per-call state and is safe for concurrent use.
type Normalizer struct {
	// mode selects stemming or lemmatization for token reduction.
	mode Mode

	// lemmatizer is the English lemma dictionary.
	// Only populated for ModeLemmatize; golem's lookup is read-only
	// after construction so sharing across workers is safe.
	lemmatizer *golem.Lemmatizer
}

// NewNormalizer creates a Normalizer for the given mode.
// ModeLemmatize loads the English lemma dictionary, which takes a moment
// and can fail; construct the normalizer once at startup and share it.
func NewNormalizer(mode Mode) (*Normalizer, error) {
	n := &Normalizer{mode: mode}

	if mode == ModeLemmatize {
		lemmatizer, err := golem.New(en.New())
		if err != nil {
			return nil, fmt.Errorf("failed to load English lemma dictionary: %w", err)
		}
		n.lemmatizer = lemmatizer
	}

	return n, nil
}

// Mode returns the configured reduction mode.
func (n *Normalizer) Mode() Mode {
	return n.mode
}

// Normalize runs the full pipeline over the raw text and returns the
// space-joined reduced tokens.
func (n *Normalizer) Normalize(text string) string {
	// (a) Lowercase the entire text before any parsing so markup and
	// visible text are treated uniformly.
	// A cases.Caser is stateful and must not be shared between
	// goroutines, so one is created per call.
	lowered := cases.Lower(language.English).String(text)

	// (b) Strip markup, keeping only visible text.
	visible := stripMarkup(lowered)

	// (c) Tokenize into words, (d) drop stopwords, (e) reduce.
	reduced := make([]string, 0, 64)
	tokens := words.FromString(visible)
	for tokens.Next() {
		token := tokens.Value()
		if !wordlike(token) {
			continue
		}
		if IsStopword(token) {
			continue
		}
		reduced = append(reduced, n.reduce(token))
	}

	// (f) Join with single spaces.
	return strings.Join(reduced, " ")
}

// reduce applies the configured token reduction strategy.
func (n *Normalizer) reduce(token string) string {
	if n.mode == ModeLemmatize {
		return n.lemmatizer.Lemma(token)
	}
	return english.Stem(token, false)
}

// stripMarkup parses the text as HTML and returns only the visible text.
// Script and style subtrees carry no visible text and are skipped.
// Plain text without any markup passes through unchanged apart from
// whitespace, which the tokenizer discards anyway.
func stripMarkup(text string) string {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		// html.Parse is tolerant of arbitrary input; a failure here means
		// the reader itself failed, which cannot happen with a string.
		return text
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.ElementNode:
			if node.Data == "script" || node.Data == "style" {
				return
			}
		case html.TextNode:
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return sb.String()
}

// wordlike reports whether the token contains at least one letter or digit.
// UAX#29 segmentation emits whitespace and punctuation runs as tokens too;
// those carry no content worth recording.
func wordlike(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
