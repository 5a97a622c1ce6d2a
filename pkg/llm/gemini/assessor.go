package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mkrivosheev/resume-scorer/pkg/llm"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Assessor asks Gemini for a structured resume/job suitability assessment.
// Every failure mode collapses into the unavailable sentinel: the scoring
// pipeline must keep serving when the model does not.
type Assessor struct {
	generator contentGenerator
	timeout   time.Duration
	backoff   time.Duration
	logger    *zap.Logger
	maxChars  int
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultTimeout      = 8 * time.Second
	defaultBackoff      = 500 * time.Millisecond
	defaultMaxChars     = 12000
	defaultMaxLogLength = 200
)

func NewAssessor(generator contentGenerator, timeout time.Duration, logger *zap.Logger) *Assessor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Assessor{
		generator: generator,
		timeout:   timeout,
		backoff:   defaultBackoff,
		logger:    logger,
		maxChars:  defaultMaxChars,
		maxLogLen: defaultMaxLogLength,
	}
}

// Assess runs one model call within the timeout budget. Rate-limit responses
// are retried exactly once; any other failure degrades immediately.
func (a *Assessor) Assess(ctx context.Context, resumeText, jobText string) llm.Result {
	prompt := buildPrompt(truncateRunes(resumeText, a.maxChars), truncateRunes(jobText, a.maxChars))

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.logger.Debug("gemini assessment request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", truncateRunes(prompt, a.maxLogLen)),
	)

	var raw string
	backoff := retry.WithMaxRetries(1, retry.NewExponential(a.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, err := a.generator.GenerateContent(ctx, prompt)
		if err != nil {
			var apiErr genai.APIError
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
				return retry.RetryableError(err)
			}
			return err
		}
		raw = out
		return nil
	})
	if err != nil {
		a.logger.Warn("ai assessment unavailable", zap.Error(err))
		return llm.Unavailable(fmt.Sprintf("model call failed: %v", err))
	}

	a.logger.Debug("gemini assessment response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", truncateRunes(raw, a.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		a.logger.Warn("ai assessment response rejected",
			zap.Error(err),
			zap.String("response_preview", truncateRunes(raw, a.maxLogLen)),
		)
		return llm.Unavailable(err.Error())
	}

	return llm.Result{Assessment: assessment, Available: true}
}

func buildPrompt(resumeText, jobText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME}}\n\nJob description:\n{{JOB}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{RESUME}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{JOB}}", jobText)
	return prompt
}

func parseResponse(raw string) (llm.Assessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return llm.Assessment{}, fmt.Errorf("parse gemini response: %w", err)
	}

	assessment := llm.Assessment{
		Score:     coerceFloat(data["score"]),
		Summary:   coerceString(data["summary"]),
		Strengths: coerceStrings(data["strengths"]),
		Gaps:      coerceStrings(data["gaps"]),
	}

	if math.IsNaN(assessment.Score) {
		return llm.Assessment{}, errors.New("gemini response has no numeric score")
	}
	if assessment.Score < 0 || assessment.Score > 100 {
		return llm.Assessment{}, fmt.Errorf("gemini score out of range: %v", assessment.Score)
	}

	return assessment, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
