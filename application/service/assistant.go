package service

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codevault/codevault/domain/assistant"
	"github.com/codevault/codevault/domain/snippet"
	"github.com/codevault/codevault/infrastructure/provider"
	"github.com/codevault/codevault/internal/config"
	"github.com/codevault/codevault/internal/log"
)

// Apologetic fallbacks returned to the user when completion fails. The
// assistant never surfaces raw provider errors.
const (
	FallbackRequestFailed  = "I'm sorry, I encountered an issue while processing your request. Please try again later."
	FallbackResponseFailed = "I'm sorry, I encountered an issue while processing the response. Please try again later."
	FallbackUnexpected     = "I'm sorry, an unexpected error occurred. Please try again later."
	FallbackEmpty          = "I'm sorry, but I couldn't generate a response. Please try again."
)

// Assistant orchestrates retrieval-augmented completions: it classifies the
// prompt, retrieves matching snippets, enriches the context per detected
// intent and calls the completion provider.
type Assistant struct {
	snippets  *Snippet
	analysis  *Analysis
	generator provider.TextGenerator
	limit     int
	logger    *log.Logger
}

// NewAssistant creates a new Assistant service.
func NewAssistant(
	snippets *Snippet,
	analysis *Analysis,
	generator provider.TextGenerator,
	limit int,
	logger *log.Logger,
) *Assistant {
	if limit <= 0 {
		limit = config.DefaultSearchLimit
	}
	return &Assistant{
		snippets:  snippets,
		analysis:  analysis,
		generator: generator,
		limit:     limit,
		logger:    logger,
	}
}

// Complete answers a user prompt. Code-related prompts are grounded in
// retrieved snippets and intent-specific analysis; general prompts pass
// through with a conversational persona. Failures map to apologetic
// fallback messages rather than errors.
func (s *Assistant) Complete(ctx context.Context, prompt string) string {
	codeRelated := assistant.IsCodeRelated(prompt)
	s.logger.InfoContext(ctx, "classified prompt", "code_related", codeRelated)

	var relevant []snippet.Snippet
	if codeRelated {
		found, err := s.snippets.SearchSemantic(ctx, prompt, "", s.limit)
		if err != nil {
			s.logger.WarnContext(ctx, "snippet retrieval failed", "error", err)
		} else {
			relevant = found
		}
	}

	builder := assistant.NewContext(relevant)
	if len(relevant) > 0 {
		s.enrich(ctx, builder, relevant, assistant.DetectIntents(prompt))
	}

	persona := assistant.PersonaFor(codeRelated)
	messages := []provider.Message{
		provider.SystemMessage(persona.SystemPrompt()),
		provider.UserMessage(assistant.UserPrompt(prompt, builder.String(), codeRelated)),
	}

	temperature := config.DefaultGeneralTemperature
	if codeRelated {
		temperature = config.DefaultCodeTemperature
	}

	resp, err := s.generator.ChatCompletion(ctx,
		provider.NewChatCompletionRequest(messages).WithTemperature(temperature))
	if err != nil {
		return s.fallbackFor(ctx, err)
	}

	// The provider answered, so the retrieved snippets were shown to the
	// model; count their views now. Failed calls must not inflate counts.
	for _, sn := range relevant {
		if err := s.snippets.MarkViewed(ctx, sn.ID()); err != nil {
			s.logger.WarnContext(ctx, "failed to count snippet view", "snippet_id", sn.ID(), "error", err)
		}
	}

	content := resp.Content()
	if strings.TrimSpace(content) == "" {
		return FallbackEmpty
	}
	return content
}

// enrich appends intent-specific analysis sections to the prompt context.
// Sections are computed concurrently; each engine degrades to an
// explanatory text on failure, so enrichment itself never fails.
func (s *Assistant) enrich(ctx context.Context, builder *assistant.ContextBuilder, relevant []snippet.Snippet, intents assistant.Intents) {
	analyses := make([]string, len(relevant))
	optimizations := make([]string, len(relevant))
	security := make([]string, len(relevant))
	var comparison string

	g, gctx := errgroup.WithContext(ctx)
	for i, sn := range relevant {
		i, sn := i, sn
		g.Go(func() error {
			if intents.Explanation {
				analyses[i] = s.analysis.ComplexityText(gctx, sn)
			}
			if intents.Optimization {
				optimizations[i] = s.analysis.OptimizationText(gctx, sn)
			}
			if intents.Security {
				security[i] = s.analysis.SecurityText(gctx, sn)
			}
			return nil
		})
	}
	if intents.Comparison && len(relevant) > 1 {
		g.Go(func() error {
			report, err := s.analysis.Compare(gctx, relevant[0].ID(), relevant[1].ID())
			if err == nil {
				comparison = report
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, sn := range relevant {
		if analyses[i] != "" {
			builder.AddAnalysis(sn.ID(), analyses[i])
		}
	}
	builder.AddComparison(comparison)
	for i, sn := range relevant {
		if optimizations[i] != "" {
			builder.AddOptimization(sn.ID(), optimizations[i])
		}
	}
	for i, sn := range relevant {
		if security[i] != "" {
			builder.AddSecurity(sn.ID(), security[i])
		}
	}
}

// fallbackFor maps a completion failure to its user-facing message.
func (s *Assistant) fallbackFor(ctx context.Context, err error) string {
	s.logger.ErrorContext(ctx, "completion failed", "error", err)

	var provErr *provider.ProviderError
	var netErr net.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return FallbackResponseFailed
	case errors.As(err, &provErr), errors.As(err, &netErr):
		return FallbackRequestFailed
	default:
		return FallbackUnexpected
	}
}
