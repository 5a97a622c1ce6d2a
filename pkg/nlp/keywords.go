package nlp

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// clauseSplit breaks a sentence at punctuation that separates list items;
// a skill phrase never spans a comma.
var clauseSplit = regexp.MustCompile(`[,;:()/|]+`)

// maxPhraseTokens bounds the length of a composite skill phrase.
const maxPhraseTokens = 4

// Phrase is one canonical keyword. Norm is the folded form used for set
// membership; Display keeps the casing of the lexicon entry or of the first
// occurrence in the text.
type Phrase struct {
	Norm    string `json:"norm"`
	Display string `json:"display"`
}

// KeywordSet is the deduplicated set of skill phrases extracted from one
// document, ordered by Norm for deterministic output.
type KeywordSet struct {
	Phrases       []Phrase
	TokenCount    int
	LowConfidence bool
}

// Norms returns the folded phrase forms in order.
func (k KeywordSet) Norms() []string {
	out := make([]string, len(k.Phrases))
	for i, p := range k.Phrases {
		out[i] = p.Norm
	}
	return out
}

// Empty reports whether no keywords were extracted.
func (k KeywordSet) Empty() bool {
	return len(k.Phrases) == 0
}

// Extractor is the capability the scoring pipeline depends on. The concrete
// linguistic toolkit stays swappable behind it.
type Extractor interface {
	Keywords(text string) KeywordSet
}

// Keywords extracts the skill phrases of a document. Two passes: known
// lexicon entries matched as whole-word phrases, then contiguous chunks of
// skill/role/capitalized tokens that compose skills the lexicon does not
// list verbatim ("python developer"). Case is folded away; plural forms of
// single-token skills are accepted.
func (n *Normalizer) Keywords(text string) KeywordSet {
	doc := n.Normalize(text)
	folded := Fold(text)

	found := make(map[string]string)
	for norm, display := range n.lexicon {
		if ContainsPhrase(folded, norm) {
			n.addKeyword(found, norm, display)
		}
	}
	n.addPluralMatches(found, folded)
	for _, sentence := range doc.Sentences {
		for _, clause := range clauseSplit.Split(sentence.Text, -1) {
			n.collectChunks(found, WordTokens(clause))
		}
	}

	phrases := make([]Phrase, 0, len(found))
	for norm, display := range found {
		phrases = append(phrases, Phrase{Norm: norm, Display: display})
	}
	sort.Slice(phrases, func(i, j int) bool { return phrases[i].Norm < phrases[j].Norm })

	return KeywordSet{
		Phrases:       phrases,
		TokenCount:    doc.TokenCount,
		LowConfidence: doc.TokenCount < n.minTokens,
	}
}

// addKeyword stores a found phrase under its canonical norm. First display
// form wins.
func (n *Normalizer) addKeyword(found map[string]string, norm, display string) {
	if canonical, ok := aliasOf[norm]; ok {
		norm = canonical
		if d, ok := n.lexicon[canonical]; ok {
			display = d
		}
	}
	if _, ok := found[norm]; !ok {
		found[norm] = display
	}
}

// addPluralMatches accepts naive plural forms of single-token lexicon
// entries ("apis" counts as "api"). Full stemming is deliberately not used
// here: it folds "excellent" into "excel".
func (n *Normalizer) addPluralMatches(found map[string]string, folded string) {
	for norm, display := range n.lexicon {
		if strings.Contains(norm, " ") {
			continue
		}
		if _, ok := found[norm]; ok {
			continue
		}
		if ContainsPhrase(folded, norm+"s") || ContainsPhrase(folded, norm+"es") {
			n.addKeyword(found, norm, display)
		}
	}
}

// collectChunks walks one sentence's raw tokens and emits composite skill
// phrases from contiguous runs of chunkable tokens. A run breaks on stop
// words and on tokens that are neither lexicon tokens, role nouns, nor
// capitalized. Emitted spans start at a lexicon token and end at a lexicon
// or role token.
func (n *Normalizer) collectChunks(found map[string]string, raws []string) {
	type tok struct {
		raw    string
		folded string
	}
	run := make([]tok, 0, 8)

	flush := func() {
		for s := 0; s < len(run); s++ {
			if _, ok := n.lexTokens[run[s].folded]; !ok {
				continue
			}
			for e := s + 1; e < len(run) && e-s < maxPhraseTokens; e++ {
				_, lex := n.lexTokens[run[e].folded]
				_, role := n.roles[run[e].folded]
				if !lex && !role {
					continue
				}
				normParts := make([]string, 0, e-s+1)
				rawParts := make([]string, 0, e-s+1)
				for _, t := range run[s : e+1] {
					normParts = append(normParts, t.folded)
					rawParts = append(rawParts, t.raw)
				}
				n.addKeyword(found, strings.Join(normParts, " "), strings.Join(rawParts, " "))
			}
		}
		run = run[:0]
	}

	for _, raw := range raws {
		folded := Fold(raw)
		if folded == "" {
			flush()
			continue
		}
		if _, stop := n.stop[folded]; stop {
			flush()
			continue
		}
		if !n.chunkable(raw, folded) {
			flush()
			continue
		}
		run = append(run, tok{raw: raw, folded: folded})
	}
	flush()
}

func (n *Normalizer) chunkable(raw, folded string) bool {
	if _, ok := n.lexTokens[folded]; ok {
		return true
	}
	if _, ok := n.roles[folded]; ok {
		return true
	}
	r, _ := utf8.DecodeRuneInString(raw)
	return unicode.IsUpper(r)
}
