package scoring

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mkrivosheev/resume-scorer/pkg/extract"
	"github.com/mkrivosheev/resume-scorer/pkg/llm"
	"github.com/mkrivosheev/resume-scorer/pkg/nlp"
)

// Pipeline scores one resume against one job description. It owns no
// per-request state; the keyword extractor and assessor are shared
// read-only between requests.
type Pipeline struct {
	keywords nlp.Extractor
	assessor llm.Assessor // nil when no model is configured
	weights  Weights
	logger   *zap.Logger
}

func NewPipeline(keywords nlp.Extractor, assessor llm.Assessor, w Weights, logger *zap.Logger) (*Pipeline, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		keywords: keywords,
		assessor: assessor,
		weights:  w,
		logger:   logger,
	}, nil
}

// ScoreText runs the pipeline over already-extracted texts. It always
// returns a report: every failure past extraction degrades into caveats.
// The lexical and AI signals run concurrently.
func (p *Pipeline) ScoreText(ctx context.Context, resumeText, jobText string) Report {
	resumeKeywords := p.keywords.Keywords(resumeText)
	jobKeywords := p.keywords.Keywords(jobText)

	var (
		lexical          Component
		matched, missing []string
		aiResult         = llm.Unavailable("no model configured")
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lexical, matched, missing = LexicalMatch(resumeKeywords, jobKeywords)
		return nil
	})
	if p.assessor != nil {
		g.Go(func() error {
			aiResult = p.assessor.Assess(gctx, resumeText, jobText)
			return nil
		})
	}
	_ = g.Wait()

	lowConfidence := resumeKeywords.LowConfidence || jobKeywords.LowConfidence
	report := Aggregate(lexical, matched, missing, aiResult, p.weights, lowConfidence)

	p.logger.Info("score computed",
		zap.Float64("final", report.FinalScore),
		zap.Float64("lexical", lexical.Value),
		zap.Bool("ai_available", aiResult.Available),
		zap.Bool("low_confidence", lowConfidence),
		zap.Int("matched", len(report.MatchedKeywords)),
		zap.Int("missing", len(report.MissingKeywords)),
	)
	return report
}

// ScoreDocument extracts the resume text from an uploaded document first.
// Extraction is the only stage that can fail the request outright.
func (p *Pipeline) ScoreDocument(ctx context.Context, filename string, data []byte, jobText string) (Report, error) {
	text, err := extract.FromFile(filename, data)
	if err != nil {
		return Report{}, err
	}
	return p.ScoreText(ctx, text, jobText), nil
}
