package scoring

// Component источники итоговой оценки.
const (
	SourceLexical = "lexical"
	SourceAI      = "ai"
)

// Component — один сигнал оценки со значением на шкале 0..100.
type Component struct {
	Source string  `json:"source"`
	Value  float64 `json:"value"`
	Detail string  `json:"detail"`
}

// Report — итоговый артефакт одного запроса оценки. Собирается один раз
// и после этого не изменяется; история оценок нигде не хранится.
type Report struct {
	FinalScore      float64     `json:"finalScore"`
	Components      []Component `json:"components"`
	MatchedKeywords []string    `json:"matchedKeywords"`
	MissingKeywords []string    `json:"missingKeywords"`
	Narrative       string      `json:"narrative"`
	Caveats         []string    `json:"caveats"`
}
