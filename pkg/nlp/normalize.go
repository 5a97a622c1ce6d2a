package nlp

import (
	_ "embed"
	"strings"

	"github.com/kljensen/snowball"
)

//go:embed stopwords.txt
var stopwordsFile string

//go:embed skills.txt
var skillsFile string

// Sentence is one sentence of the source text with its content lemmas.
type Sentence struct {
	Text   string
	Lemmas []string
}

// NormalizedText is the linguistic view of a document: sentence segmentation
// plus the stop-word-filtered, stemmed token stream. TokenCount counts raw
// word tokens before any filtering; it is the confidence signal for short
// inputs.
type NormalizedText struct {
	Sentences  []Sentence
	Lemmas     []string
	TokenCount int
}

// Normalizer holds the stop-word list and the skill lexicon. Built once at
// startup from embedded assets and shared read-only between requests.
type Normalizer struct {
	stop      map[string]struct{}
	lexicon   map[string]string   // folded phrase -> display form
	lexTokens map[string]struct{} // individual tokens of lexicon phrases
	roles     map[string]struct{}
	minTokens int
}

// roleNouns are job-title heads that may terminate a skill phrase
// ("python developer", "data engineer") without being skills themselves.
var roleNouns = []string{
	"developer", "engineer", "analyst", "scientist", "architect",
	"administrator", "manager", "designer", "consultant", "specialist",
	"lead", "tester",
}

// aliasOf maps folded alias spellings onto the canonical lexicon entry.
var aliasOf = map[string]string{
	"postgres": "postgresql",
	"k8s":      "kubernetes",
	"js":       "javascript",
	"ts":       "typescript",
	"reactjs":  "react",
	"nodejs":   "node js",
}

// NewNormalizer builds a Normalizer. minTokens is the raw-token threshold
// below which extracted keyword sets are flagged low-confidence.
func NewNormalizer(minTokens int) *Normalizer {
	n := &Normalizer{
		stop:      make(map[string]struct{}),
		lexicon:   make(map[string]string),
		lexTokens: make(map[string]struct{}),
		roles:     make(map[string]struct{}),
		minTokens: minTokens,
	}
	for _, line := range strings.Split(stopwordsFile, "\n") {
		w := strings.TrimSpace(line)
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		n.stop[w] = struct{}{}
	}
	for _, line := range strings.Split(skillsFile, "\n") {
		display := strings.TrimSpace(line)
		if display == "" || strings.HasPrefix(display, "#") {
			continue
		}
		norm := Fold(display)
		if norm == "" {
			continue
		}
		n.lexicon[norm] = display
		for _, tok := range FoldTokens(norm) {
			n.lexTokens[tok] = struct{}{}
		}
	}
	// Alias spellings resolve to the canonical display form.
	for alias, canonical := range aliasOf {
		if display, ok := n.lexicon[canonical]; ok {
			n.lexicon[alias] = display
			for _, tok := range FoldTokens(alias) {
				n.lexTokens[tok] = struct{}{}
			}
		}
	}
	for _, r := range roleNouns {
		n.roles[r] = struct{}{}
	}
	return n
}

// Normalize segments text into sentences and reduces each to content lemmas:
// fold, drop stop words, stem. Empty input yields empty containers, no error.
func (n *Normalizer) Normalize(text string) NormalizedText {
	doc := NormalizedText{Sentences: []Sentence{}, Lemmas: []string{}}
	for _, raw := range Sentences(text) {
		toks := WordTokens(raw)
		doc.TokenCount += len(toks)

		lemmas := make([]string, 0, len(toks))
		for _, t := range toks {
			folded := Fold(t)
			if folded == "" {
				continue
			}
			if _, stop := n.stop[folded]; stop {
				continue
			}
			lemmas = append(lemmas, stemToken(folded))
		}
		doc.Sentences = append(doc.Sentences, Sentence{Text: raw, Lemmas: lemmas})
		doc.Lemmas = append(doc.Lemmas, lemmas...)
	}
	return doc
}

// stemToken reduces one folded token to its snowball stem. Tokens the
// stemmer rejects (digits, c++, c#) pass through unchanged.
func stemToken(folded string) string {
	stemmed, err := snowball.Stem(folded, "english", false)
	if err != nil || stemmed == "" {
		return folded
	}
	return stemmed
}
