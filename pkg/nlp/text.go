package nlp

import (
	"regexp"
	"strings"
)

// Алфавит токена: a-z, 0-9, плюс "+" и "#", чтобы не терять c++/c#.
var nonWord = regexp.MustCompile(`[^a-z0-9+#]+`)
var multiSpace = regexp.MustCompile(`\s+`)
var wordToken = regexp.MustCompile(`[A-Za-z0-9+#]+`)
var sentenceEnd = regexp.MustCompile(`[.!?\n]+`)

// Fold приводит строку к нижнему регистру и заменяет все "не-слова" на пробелы.
func Fold(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FoldTokens возвращает токены свёрнутой строки по порядку.
func FoldTokens(folded string) []string {
	if folded == "" {
		return []string{}
	}
	return strings.Split(folded, " ")
}

// WordTokens возвращает сырые словесные токены текста с исходным регистром.
func WordTokens(s string) []string {
	return wordToken.FindAllString(s, -1)
}

// Sentences режет текст на предложения по терминальной пунктуации и переносам строк.
func Sentences(s string) []string {
	parts := sentenceEnd.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContainsPhrase проверяет наличие фразы (уже свёрнутой) как целых слов.
// Пример: "rest api" найдётся в " ... rest api ..." но не в " ... rest apis ..."
func ContainsPhrase(foldedText, foldedPhrase string) bool {
	if foldedPhrase == "" {
		return false
	}
	// ensure word boundaries by padding with spaces
	hay := " " + foldedText + " "
	needle := " " + foldedPhrase + " "
	return strings.Contains(hay, needle)
}
