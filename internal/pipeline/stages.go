package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"designstudio/internal/infra"
	"designstudio/internal/metrics"
	"designstudio/internal/providers/genai"
)

// Backend is the gateway contract the stages call through. *genai.Client
// satisfies it; tests substitute a double. A nil Backend models the
// backend-unavailable state: every stage fails immediately without a network
// call.
type Backend interface {
	GenerateContent(ctx context.Context, model string, contents []genai.Content, cfg *genai.GenerationConfig) (*genai.GenerateContentResponse, error)
}

// Options configures a Pipeline.
type Options struct {
	Backend    Backend
	TextModel  string
	ImageModel string
	Logger     *infra.Logger
}

// Pipeline sequences the three generation stages. It is stateless between
// runs: every invocation of Run owns a fresh single-use Run record.
type Pipeline struct {
	backend    Backend
	textModel  string
	imageModel string
	logger     *infra.Logger
}

// New constructs a Pipeline. Leave Options.Backend nil when gateway
// construction failed; the pipeline then reports every stage as failed with
// ErrBackendUnavailable instead of crashing.
func New(opts Options) *Pipeline {
	textModel := strings.TrimSpace(opts.TextModel)
	if textModel == "" {
		textModel = "gemini-2.0-flash-lite"
	}
	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = "gemini-2.5-flash-image"
	}

	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Pipeline{
		backend:    opts.Backend,
		textModel:  textModel,
		imageModel: imageModel,
		logger:     logger,
	}
}

// Available reports whether a usable gateway handle exists.
func (p *Pipeline) Available() bool { return p.backend != nil }

// EnhanceBrief expands the brief into a short natural-language description.
// The brief text is truncated to MaxPromptChars before embedding; output
// length is bounded by the requested 50-token budget, not locally.
func (p *Pipeline) EnhanceBrief(ctx context.Context, brief DesignBrief) Outcome[string] {
	if p.backend == nil {
		return failOutcome[string](p, StageEnhance, ErrBackendUnavailable)
	}

	resp, err := p.backend.GenerateContent(ctx, p.textModel,
		genai.TextContent(enhancePrompt(brief.Prompt())),
		&genai.GenerationConfig{
			MaxOutputTokens: 50,
			Temperature:     genai.Float(0.7),
		},
	)
	if err != nil {
		return failOutcome[string](p, StageEnhance, err)
	}

	text := strings.TrimSpace(firstText(resp))
	if text == "" {
		return failOutcome[string](p, StageEnhance, ErrEmptyResult)
	}

	metrics.StageCompleted.WithLabelValues(StageEnhance.String()).Inc()
	return Success(text)
}

// GenerateSketch turns the enhanced description into a monochrome line
// sketch. Backend-default decoding; the first part carrying inline image
// data wins.
func (p *Pipeline) GenerateSketch(ctx context.Context, enhanced string) Outcome[[]byte] {
	if p.backend == nil {
		return failOutcome[[]byte](p, StageSketch, ErrBackendUnavailable)
	}

	resp, err := p.backend.GenerateContent(ctx, p.imageModel,
		genai.TextContent(sketchPrompt(enhanced)), nil)
	if err != nil {
		return failOutcome[[]byte](p, StageSketch, err)
	}

	image, ok := firstInlineImage(resp)
	if !ok {
		return failOutcome[[]byte](p, StageSketch, ErrNoImageProduced)
	}

	metrics.StageCompleted.WithLabelValues(StageSketch.String()).Inc()
	return Success(image)
}

// GenerateRender turns the sketch into a photorealistic render: a two-part
// multimodal request (instruction text plus the sketch declared as PNG) with
// deterministic-leaning sampling. Extraction policy is identical to
// GenerateSketch.
func (p *Pipeline) GenerateRender(ctx context.Context, sketch []byte) Outcome[[]byte] {
	if p.backend == nil {
		return failOutcome[[]byte](p, StageRender, ErrBackendUnavailable)
	}

	resp, err := p.backend.GenerateContent(ctx, p.imageModel,
		genai.TextWithPNG(renderInstruction, sketch),
		&genai.GenerationConfig{
			Temperature: genai.Float(0.0),
			TopP:        genai.Float(1.0),
			TopK:        genai.Int(40),
		},
	)
	if err != nil {
		return failOutcome[[]byte](p, StageRender, err)
	}

	image, ok := firstInlineImage(resp)
	if !ok {
		return failOutcome[[]byte](p, StageRender, ErrNoImageProduced)
	}

	metrics.StageCompleted.WithLabelValues(StageRender.String()).Inc()
	return Success(image)
}

func failOutcome[T any](p *Pipeline, stage Stage, cause error) Outcome[T] {
	tagged := failStage(stage, cause)
	metrics.StageFailed.WithLabelValues(stage.String(), failureReason(cause)).Inc()
	p.logger.Warn().
		Int("stage", int(stage)).
		Str("reason", failureReason(cause)).
		Err(cause).
		Msg("pipeline: stage failed")
	return Failure[T](tagged)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrBackendUnavailable):
		return "backend_unavailable"
	case errors.Is(err, ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, ErrNoImageProduced):
		return "no_image"
	default:
		var svcErr *genai.ServiceError
		if errors.As(err, &svcErr) {
			return "service_error"
		}
		return "other"
	}
}

// firstText returns the first non-blank text part in candidate order.
func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

// firstInlineImage scans parts in list order and returns the first inline
// binary payload. Zero candidates or zero parts yield no match.
func firstInlineImage(resp *genai.GenerateContentResponse) ([]byte, bool) {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if data, ok := part.InlineBytes(); ok {
				return data, true
			}
		}
	}
	return nil, false
}
