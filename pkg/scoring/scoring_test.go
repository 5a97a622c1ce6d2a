package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkrivosheev/resume-scorer/pkg/llm"
	"github.com/mkrivosheev/resume-scorer/pkg/nlp"
)

const (
	resumeFixture = "I am an experienced Python developer, skilled in building Flask " +
		"services with PostgreSQL and Docker over the last five years."
	jobFixture = "We are looking for a senior Python developer with strong Flask " +
		"experience and solid PostgreSQL knowledge for our platform team."
)

type stubAssessor struct {
	result     llm.Result
	calls      int
	lastResume string
	lastJob    string
}

func (s *stubAssessor) Assess(_ context.Context, resumeText, jobText string) llm.Result {
	s.calls++
	s.lastResume = resumeText
	s.lastJob = jobText
	return s.result
}

func newTestPipeline(t *testing.T, assessor llm.Assessor) *Pipeline {
	t.Helper()
	p, err := NewPipeline(nlp.NewNormalizer(10), assessor, Weights{Lexical: 0.4, AI: 0.6}, zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, Weights{Lexical: 0.4, AI: 0.6}.Validate())
	require.NoError(t, Weights{Lexical: 1, AI: 0}.Validate())
	require.Error(t, Weights{Lexical: 0.5, AI: 0.6}.Validate())
	require.Error(t, Weights{Lexical: -0.2, AI: 1.2}.Validate())
}

func TestNewPipelineRejectsBadWeights(t *testing.T) {
	_, err := NewPipeline(nlp.NewNormalizer(10), nil, Weights{Lexical: 0.7, AI: 0.7}, zap.NewNop())
	require.Error(t, err)
}

func TestLexicalMatchEmptyJob(t *testing.T) {
	n := nlp.NewNormalizer(10)
	component, matched, missing := LexicalMatch(n.Keywords(resumeFixture), n.Keywords(""))

	require.Equal(t, 100.0, component.Value)
	require.Empty(t, matched)
	require.Empty(t, missing)
}

func TestLexicalMatchEmptyResume(t *testing.T) {
	n := nlp.NewNormalizer(10)
	component, matched, missing := LexicalMatch(n.Keywords(""), n.Keywords(jobFixture))

	require.Equal(t, 0.0, component.Value)
	require.Empty(t, matched)
	require.NotEmpty(t, missing)
}

func TestLexicalMatchDeterministic(t *testing.T) {
	n := nlp.NewNormalizer(10)
	first, firstMatched, firstMissing := LexicalMatch(n.Keywords(resumeFixture), n.Keywords(jobFixture))
	for i := 0; i < 5; i++ {
		component, matched, missing := LexicalMatch(n.Keywords(resumeFixture), n.Keywords(jobFixture))
		require.Equal(t, first, component)
		require.Equal(t, firstMatched, matched)
		require.Equal(t, firstMissing, missing)
	}
}

func TestLexicalMatchMonotonic(t *testing.T) {
	n := nlp.NewNormalizer(10)
	job := n.Keywords(jobFixture + " Kubernetes and Docker deployments are part of the role.")

	base, _, _ := LexicalMatch(n.Keywords(resumeFixture), job)
	extended, _, _ := LexicalMatch(n.Keywords(resumeFixture+" I also run Kubernetes clusters."), job)

	require.GreaterOrEqual(t, extended.Value, base.Value)
}

func TestAggregateBlend(t *testing.T) {
	lexical := Component{Source: SourceLexical, Value: 100}
	ai := llm.Result{Available: true, Assessment: llm.Assessment{Score: 50, Summary: "Half fit."}}

	report := Aggregate(lexical, []string{"python"}, nil, ai, Weights{Lexical: 0.4, AI: 0.6}, false)

	require.Equal(t, 70.0, report.FinalScore)
	require.Len(t, report.Components, 2)
	require.Equal(t, "Half fit.", report.Narrative)
	require.Empty(t, report.Caveats)
}

func TestAggregateAIUnavailable(t *testing.T) {
	lexical := Component{Source: SourceLexical, Value: 75}

	report := Aggregate(lexical, nil, nil, llm.Unavailable("model call failed: quota"), Weights{Lexical: 0.4, AI: 0.6}, false)

	require.Equal(t, 75.0, report.FinalScore, "degraded final score equals the lexical value")
	require.Len(t, report.Components, 1)
	require.Len(t, report.Caveats, 1)
	require.Contains(t, report.Caveats[0], "AI assessment unavailable")
	require.Contains(t, report.Caveats[0], "quota")
}

func TestAggregateOutageKeepsComponentExact(t *testing.T) {
	resume := nlp.KeywordSet{Phrases: []nlp.Phrase{
		{Norm: "python", Display: "Python"},
		{Norm: "flask", Display: "Flask"},
	}, TokenCount: 20}
	job := nlp.KeywordSet{Phrases: []nlp.Phrase{
		{Norm: "python", Display: "Python"},
		{Norm: "flask", Display: "Flask"},
		{Norm: "docker", Display: "Docker"},
	}, TokenCount: 20}

	lexical, matched, missing := LexicalMatch(resume, job)
	report := Aggregate(lexical, matched, missing, llm.Unavailable("down"), Weights{Lexical: 0.4, AI: 0.6}, false)

	// 2 of 3 is not representable in binary; the report must still agree
	// with itself.
	require.Equal(t, 66.7, lexical.Value)
	require.Equal(t, report.Components[0].Value, report.FinalScore)
}

func TestAggregateLowConfidenceCap(t *testing.T) {
	lexical := Component{Source: SourceLexical, Value: 100}
	ai := llm.Result{Available: true, Assessment: llm.Assessment{Score: 90, Summary: "Great."}}

	report := Aggregate(lexical, nil, nil, ai, Weights{Lexical: 0.4, AI: 0.6}, true)

	require.Equal(t, lowConfidenceCap, report.FinalScore)
	require.Contains(t, report.Caveats, caveatLowConfidence)
	// The lexical component keeps its true value so the signal stays inspectable.
	require.Equal(t, 100.0, report.Components[0].Value)
}

func TestAggregateLowConfidenceBelowCap(t *testing.T) {
	lexical := Component{Source: SourceLexical, Value: 20}

	report := Aggregate(lexical, nil, nil, llm.Unavailable("off"), Weights{Lexical: 0.4, AI: 0.6}, true)

	require.Equal(t, 20.0, report.FinalScore, "cap never raises a score")
	require.Contains(t, report.Caveats, caveatLowConfidence)
}

func TestPipelineFullMatch(t *testing.T) {
	stub := &stubAssessor{result: llm.Result{
		Available:  true,
		Assessment: llm.Assessment{Score: 90, Summary: "Strong backend candidate.", Strengths: []string{"Flask"}},
	}}
	p := newTestPipeline(t, stub)

	report := p.ScoreText(context.Background(), resumeFixture, jobFixture)

	require.Equal(t, 1, stub.calls)
	require.Equal(t, resumeFixture, stub.lastResume)
	require.Equal(t, jobFixture, stub.lastJob)

	require.GreaterOrEqual(t, report.Components[0].Value, 80.0)
	require.Contains(t, report.MatchedKeywords, "python developer")
	require.Contains(t, report.MatchedKeywords, "flask")
	require.Empty(t, report.MissingKeywords)
	require.Equal(t, "Strong backend candidate.", report.Narrative)
	// 0.4*100 + 0.6*90
	require.Equal(t, 94.0, report.FinalScore)
}

func TestPipelineShortTexts(t *testing.T) {
	stub := &stubAssessor{result: llm.Result{
		Available:  true,
		Assessment: llm.Assessment{Score: 95, Summary: "Looks great."},
	}}
	p := newTestPipeline(t, stub)

	report := p.ScoreText(context.Background(),
		"Experienced Python developer skilled in Flask and REST APIs.",
		"Looking for a Python developer with Flask experience.")

	require.GreaterOrEqual(t, report.Components[0].Value, 80.0)
	require.Contains(t, report.MatchedKeywords, "python developer")
	require.Contains(t, report.MatchedKeywords, "flask")
	require.LessOrEqual(t, report.FinalScore, lowConfidenceCap)
	require.Contains(t, report.Caveats, caveatLowConfidence)
}

func TestPipelineNoAssessor(t *testing.T) {
	p := newTestPipeline(t, nil)

	report := p.ScoreText(context.Background(), resumeFixture, jobFixture)

	require.Len(t, report.Components, 1)
	require.Equal(t, report.Components[0].Value, report.FinalScore)
	require.NotEmpty(t, report.Caveats)
}

func TestPipelineAIOutage(t *testing.T) {
	stub := &stubAssessor{result: llm.Unavailable("model call failed: connection refused")}
	p := newTestPipeline(t, stub)

	report := p.ScoreText(context.Background(), resumeFixture, jobFixture)

	require.Equal(t, report.Components[0].Value, report.FinalScore)
	require.Len(t, report.Components, 1)
	require.Contains(t, report.Caveats[0], "AI assessment unavailable")
}

func TestPipelineEmptyJobText(t *testing.T) {
	p := newTestPipeline(t, nil)

	report := p.ScoreText(context.Background(), resumeFixture, "")

	require.Equal(t, 100.0, report.Components[0].Value)
	require.Empty(t, report.MissingKeywords)
}

func TestScoreDocumentUnsupportedFormat(t *testing.T) {
	p := newTestPipeline(t, nil)

	_, err := p.ScoreDocument(context.Background(), "resume.odt", []byte("x"), jobFixture)
	require.Error(t, err)
}

func TestScoreDocumentPlainText(t *testing.T) {
	p := newTestPipeline(t, nil)

	report, err := p.ScoreDocument(context.Background(), "resume.txt", []byte(resumeFixture), jobFixture)
	require.NoError(t, err)
	require.Contains(t, report.MatchedKeywords, "python")
}
