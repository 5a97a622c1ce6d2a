package scoring

import (
	"fmt"

	"github.com/mkrivosheev/resume-scorer/pkg/nlp"
)

// LexicalMatch computes the deterministic overlap between resume and job
// keyword sets: 100 * |intersection| / |job keywords|. A job with no
// extractable requirements cannot disqualify anyone and scores 100.
func LexicalMatch(resume, job nlp.KeywordSet) (Component, []string, []string) {
	matched := []string{}
	missing := []string{}

	if job.Empty() {
		return Component{
			Source: SourceLexical,
			Value:  100,
			Detail: "job description has no extractable requirements",
		}, matched, missing
	}

	resumeSet := make(map[string]struct{}, len(resume.Phrases))
	for _, p := range resume.Phrases {
		resumeSet[p.Norm] = struct{}{}
	}

	for _, p := range job.Phrases {
		if _, ok := resumeSet[p.Norm]; ok {
			matched = append(matched, p.Norm)
		} else {
			missing = append(missing, p.Norm)
		}
	}

	// Rounded here so the component never disagrees with a final score
	// that falls back to it.
	value := round1(100 * float64(len(matched)) / float64(len(job.Phrases)))
	detail := fmt.Sprintf("%d of %d job requirements found in resume", len(matched), len(job.Phrases))

	return Component{Source: SourceLexical, Value: value, Detail: detail}, matched, missing
}
