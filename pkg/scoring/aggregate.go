package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/mkrivosheev/resume-scorer/pkg/llm"
)

// Weights controls the blend between the deterministic and AI scores.
type Weights struct {
	Lexical float64
	AI      float64
}

// Validate rejects weight pairs that do not form a convex blend.
func (w Weights) Validate() error {
	if w.Lexical < 0 || w.AI < 0 {
		return fmt.Errorf("score weights must be non-negative: lexical=%v ai=%v", w.Lexical, w.AI)
	}
	if math.Abs(w.Lexical+w.AI-1.0) > 1e-6 {
		return fmt.Errorf("score weights must sum to 1.0: lexical=%v ai=%v", w.Lexical, w.AI)
	}
	return nil
}

// lowConfidenceCap bounds the final score when the input was too short for
// the keyword signal to mean much.
const lowConfidenceCap = 50.0

const (
	caveatAIUnavailable = "AI assessment unavailable, score reflects keyword overlap only"
	caveatLowConfidence = "input text is too short for a reliable score"
)

// Aggregate merges the lexical component and the (possibly unavailable) AI
// result into the final report. The AI sentinel degrades the blend to the
// lexical value alone; it never fails the request.
func Aggregate(lexical Component, matched, missing []string, ai llm.Result, w Weights, lowConfidence bool) Report {
	components := []Component{lexical}
	caveats := []string{}

	var final float64
	var narrative string

	if ai.Available {
		aiComponent := Component{
			Source: SourceAI,
			Value:  ai.Assessment.Score,
			Detail: assessmentDetail(ai.Assessment),
		}
		components = append(components, aiComponent)
		final = w.Lexical*lexical.Value + w.AI*ai.Assessment.Score
		narrative = ai.Assessment.Summary
	} else {
		final = lexical.Value
		narrative = "Score is based on keyword overlap between the resume and the job description."
		caveat := caveatAIUnavailable
		if ai.Reason != "" {
			caveat = fmt.Sprintf("%s (%s)", caveatAIUnavailable, ai.Reason)
		}
		caveats = append(caveats, caveat)
	}

	if lowConfidence {
		caveats = append(caveats, caveatLowConfidence)
		if final > lowConfidenceCap {
			final = lowConfidenceCap
		}
	}

	return Report{
		FinalScore:      round1(final),
		Components:      components,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		Narrative:       narrative,
		Caveats:         caveats,
	}
}

func assessmentDetail(a llm.Assessment) string {
	var parts []string
	if len(a.Strengths) > 0 {
		parts = append(parts, "strengths: "+strings.Join(a.Strengths, ", "))
	}
	if len(a.Gaps) > 0 {
		parts = append(parts, "gaps: "+strings.Join(a.Gaps, ", "))
	}
	return strings.Join(parts, "; ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
