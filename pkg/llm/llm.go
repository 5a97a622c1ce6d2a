package llm

import "context"

// Assessment is the structured judgement a generative model produces for a
// resume/job pair. Score is on the 0..100 scale shared with the lexical
// signal.
type Assessment struct {
	Score     float64  `json:"score"`
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// Result wraps an Assessment with availability. When the model cannot be
// reached or returns garbage the result is marked unavailable and the caller
// degrades to the deterministic signal; model failures never surface as
// request errors.
type Result struct {
	Assessment Assessment
	Available  bool
	Reason     string
}

// Unavailable builds the degraded sentinel with a human-readable reason.
func Unavailable(reason string) Result {
	return Result{Available: false, Reason: reason}
}

// Assessor is a minimal abstraction over assessment-capable LLMs used by the
// scoring pipeline. It intentionally hides concrete providers to preserve
// dependency direction.
type Assessor interface {
	Assess(ctx context.Context, resumeText, jobText string) Result
}
