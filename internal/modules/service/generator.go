package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quokkabay/quokkabay/internal/infra/llm"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/quokkabay/quokkabay/internal/pkg/suggestion"
	"github.com/quokkabay/quokkabay/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TokenCounter measures prompt size; *tokenizer.Counter satisfies it.
type TokenCounter interface {
	Count(texts ...string) (int, error)
}

type Generation struct {
	Activities   []model.Activity
	Model        string
	Provider     string
	PromptTokens int
}

// ActivityGenerator asks the language model for activity suggestions. Coordinates are
// left as the model returned them.
type ActivityGenerator interface {
	Generate(ctx context.Context, hobbies []string, zipCode string) (*Generation, error)
}

type GeneratorOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

type activityGenerator struct {
	llm    llm.Completer
	tokens TokenCounter
	opts   GeneratorOptions
	tracer trace.Tracer
	log    *zap.Logger
}

func NewActivityGenerator(c llm.Completer, tokens TokenCounter, opts GeneratorOptions, log *zap.Logger) ActivityGenerator {
	return &activityGenerator{
		llm:    c,
		tokens: tokens,
		opts:   opts,
		tracer: otel.Tracer("quokkabay.generator"),
		log:    log,
	}
}

func (g *activityGenerator) Generate(ctx context.Context, hobbies []string, zipCode string) (*Generation, error) {
	prompt := suggestion.BuildPrompt(hobbies, zipCode)
	provider := g.llm.Provider()

	ctx, span := g.tracer.Start(ctx, "activities.generate",
		trace.WithAttributes(
			attribute.String("llm.provider", provider),
			attribute.String("llm.model", g.opts.Model),
			attribute.Int("survey.hobbies", len(hobbies)),
		))
	defer span.End()

	promptTokens := 0
	if g.tokens != nil {
		n, err := g.tokens.Count(suggestion.SystemInstruction, prompt)
		if err != nil {
			g.log.Debug("count prompt tokens", zap.Error(err))
		}
		promptTokens = n
		span.SetAttributes(attribute.Int("llm.prompt_tokens", n))
	}

	start := time.Now()
	text, err := g.llm.Complete(ctx, llm.Request{
		Model:       g.opts.Model,
		System:      suggestion.SystemInstruction,
		Prompt:      prompt,
		Temperature: g.opts.Temperature,
		MaxTokens:   g.opts.MaxTokens,
	})
	elapsed := time.Since(start)
	if err != nil {
		g.fail(span, provider, telemetry.GenerationError, elapsed, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	if strings.TrimSpace(text) == "" {
		g.fail(span, provider, telemetry.GenerationEmpty, elapsed, ErrGenerationEmptyResponse)
		return nil, ErrGenerationEmptyResponse
	}

	activities, err := suggestion.ParseActivities(text)
	if err != nil {
		if errors.Is(err, suggestion.ErrEmptyResponse) {
			g.fail(span, provider, telemetry.GenerationEmpty, elapsed, err)
			return nil, ErrGenerationEmptyResponse
		}
		g.fail(span, provider, telemetry.GenerationParse, elapsed, err)
		g.log.Warn("unparsable model output", zap.String("provider", provider), zap.Int("length", len(text)))
		return nil, fmt.Errorf("%w: %v", ErrGenerationParse, err)
	}
	activities = suggestion.Normalize(activities)

	telemetry.RecordGeneration(provider, telemetry.GenerationOK, elapsed)
	span.SetAttributes(attribute.Int("activities.count", len(activities)))

	return &Generation{
		Activities:   activities,
		Model:        g.opts.Model,
		Provider:     provider,
		PromptTokens: promptTokens,
	}, nil
}

func (g *activityGenerator) fail(span trace.Span, provider, outcome string, elapsed time.Duration, err error) {
	telemetry.RecordGeneration(provider, outcome, elapsed)
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
}
