package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type stubGenerator struct {
	responses  []string
	errs       []error
	calls      int
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	s.lastPrompt = prompt
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("stub exhausted")
}

func TestAssessorParsesResponse(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		`{"score": 78, "summary": "Solid backend match.", "strengths": ["Python", "Flask"], "gaps": ["Kubernetes"]}`,
	}}
	assessor := NewAssessor(stub, time.Second, zap.NewNop())

	res := assessor.Assess(context.Background(), "resume text", "job text")

	require.True(t, res.Available)
	require.Equal(t, 78.0, res.Assessment.Score)
	require.Equal(t, "Solid backend match.", res.Assessment.Summary)
	require.Equal(t, []string{"Python", "Flask"}, res.Assessment.Strengths)
	require.Equal(t, []string{"Kubernetes"}, res.Assessment.Gaps)
	require.Contains(t, stub.lastPrompt, "resume text")
	require.Contains(t, stub.lastPrompt, "job text")
}

func TestAssessorAcceptsFencedJSON(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		"```json\n{\"score\": \"64\", \"summary\": \"ok\"}\n```",
	}}
	assessor := NewAssessor(stub, time.Second, zap.NewNop())

	res := assessor.Assess(context.Background(), "r", "j")

	require.True(t, res.Available)
	require.Equal(t, 64.0, res.Assessment.Score)
}

func TestAssessorGeneratorFailure(t *testing.T) {
	stub := &stubGenerator{errs: []error{errors.New("connection refused")}}
	assessor := NewAssessor(stub, time.Second, zap.NewNop())

	res := assessor.Assess(context.Background(), "r", "j")

	require.False(t, res.Available)
	require.Contains(t, res.Reason, "model call failed")
	require.Equal(t, 1, stub.calls, "non-rate-limit errors must not be retried")
}

func TestAssessorMalformedJSON(t *testing.T) {
	stub := &stubGenerator{responses: []string{"the candidate looks fine to me"}}
	assessor := NewAssessor(stub, time.Second, zap.NewNop())

	res := assessor.Assess(context.Background(), "r", "j")

	require.False(t, res.Available)
	require.Contains(t, res.Reason, "parse gemini response")
}

func TestAssessorScoreOutOfRange(t *testing.T) {
	for _, response := range []string{
		`{"score": 146, "summary": "suspiciously good"}`,
		`{"score": -3, "summary": "negative"}`,
		`{"summary": "no score at all"}`,
	} {
		stub := &stubGenerator{responses: []string{response}}
		assessor := NewAssessor(stub, time.Second, zap.NewNop())

		res := assessor.Assess(context.Background(), "r", "j")
		require.False(t, res.Available, response)
	}
}

func TestAssessorRetriesRateLimitOnce(t *testing.T) {
	rateLimited := genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}

	stub := &stubGenerator{
		errs:      []error{rateLimited, nil},
		responses: []string{"", `{"score": 51, "summary": "after retry"}`},
	}
	assessor := NewAssessor(stub, time.Second, zap.NewNop())
	assessor.backoff = time.Millisecond

	res := assessor.Assess(context.Background(), "r", "j")

	require.True(t, res.Available)
	require.Equal(t, 51.0, res.Assessment.Score)
	require.Equal(t, 2, stub.calls)
}

func TestAssessorRateLimitExhausted(t *testing.T) {
	rateLimited := genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}

	stub := &stubGenerator{errs: []error{rateLimited, rateLimited, rateLimited}}
	assessor := NewAssessor(stub, time.Second, zap.NewNop())
	assessor.backoff = time.Millisecond

	res := assessor.Assess(context.Background(), "r", "j")

	require.False(t, res.Available)
	require.Equal(t, 2, stub.calls, "rate limit is retried exactly once")
}

func TestAssessorContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubGenerator{responses: []string{`{"score": 50, "summary": "never used"}`}}
	assessor := NewAssessor(stub, time.Second, zap.NewNop())

	res := assessor.Assess(ctx, "r", "j")
	require.False(t, res.Available)
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n{\"a\":1}\n```":            `{"a":1}`,
		"  `{\"a\":1}`  ":                `{"a":1}`,
		"```json\n{\"a\":1}\n```\ntext?": `{"a":1}`,
	}
	for in, want := range cases {
		require.Equal(t, want, extractJSON(in), in)
	}
}
