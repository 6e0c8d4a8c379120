package enrich

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/akozlenkov/resumatch/internal/logger"
	"github.com/akozlenkov/resumatch/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

const (
	maxSuggestions = 6
	maxExcerptLen  = 1500
	maxAttempts    = 2

	defaultTimeout      = 25 * time.Second
	defaultMaxLogLength = 200
)

var retryBackoff = 2 * time.Second

// contentGenerator abstracts the LLM call; tests substitute a stub.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Store is the persisted-analysis surface the enricher appends to. Append
// must be idempotent: lines already present are skipped by exact content.
type Store interface {
	AppendSuggestions(ctx context.Context, analysisID string, lines []string) (int, error)
}

// Input carries the already-computed scoring context into the prompt.
type Input struct {
	ResumeText      string
	JobDescription  string
	MissingSkills   []string
	ATSScore        float64
	ExperienceScore float64
	MatchScore      float64
}

// Enricher runs the optional LLM suggestion augmentation. All failures are
// terminal for the enrichment only: logged, swallowed, never surfaced to the
// scoring caller.
type Enricher struct {
	generator contentGenerator
	store     Store
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

// New creates an Enricher. A zero timeout falls back to the default bound.
func New(generator contentGenerator, store Store, timeout time.Duration, maxLogLength int, log *zap.Logger) *Enricher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Enricher{
		generator: generator,
		store:     store,
		timeout:   timeout,
		maxLogLen: maxLogLength,
		logger:    log,
	}
}

// Enrich requests suggestions for the persisted analysis and appends the
// deduplicated lines. At most two attempts are made, each under its own
// timeout. Errors never escape.
func (e *Enricher) Enrich(ctx context.Context, analysisID string, in Input) {
	prompt := buildPrompt(in)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := utils.WaitFor(ctx, retryBackoff); err != nil {
				lastErr = err
				break
			}
		}

		suggestions, err := e.attempt(ctx, prompt)
		if err != nil {
			lastErr = err
			e.logger.Debug("enrichment attempt failed",
				zap.String("analysis_id", analysisID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			continue
		}

		appended, err := e.store.AppendSuggestions(ctx, analysisID, suggestions)
		if err != nil {
			lastErr = err
			break
		}

		e.logger.Info("analysis enriched",
			zap.String("analysis_id", analysisID),
			zap.Int("suggested", len(suggestions)),
			zap.Int("appended", appended),
		)
		return
	}

	e.logger.Warn("enrichment skipped",
		zap.String("analysis_id", analysisID),
		zap.Error(lastErr),
	)
}

func (e *Enricher) attempt(ctx context.Context, prompt string) ([]string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.generator.GenerateContent(attemptCtx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("enrichment response",
		zap.String("preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	suggestions := parseSuggestions(raw)
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("llm returned no usable suggestions")
	}

	return suggestions, nil
}

func buildPrompt(in Input) string {
	missing := "none"
	if len(in.MissingSkills) > 0 {
		missing = strings.Join(in.MissingSkills, ", ")
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME}}", logger.TruncateForLog(in.ResumeText, maxExcerptLen))
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", logger.TruncateForLog(in.JobDescription, maxExcerptLen))
	prompt = strings.ReplaceAll(prompt, "{{MISSING_SKILLS}}", missing)
	prompt = strings.ReplaceAll(prompt, "{{ATS_SCORE}}", fmt.Sprintf("%.2f", in.ATSScore))
	prompt = strings.ReplaceAll(prompt, "{{EXPERIENCE_SCORE}}", fmt.Sprintf("%.2f", in.ExperienceScore))
	prompt = strings.ReplaceAll(prompt, "{{MATCH_SCORE}}", fmt.Sprintf("%.2f", in.MatchScore))

	return prompt
}

type suggestionsPayload struct {
	Suggestions []string `mapstructure:"suggestions"`
}

// parseSuggestions accepts a JSON object with a "suggestions" array, a bare
// JSON array, or plain lines (with optional bullet dashes). The result is
// trimmed, de-blanked and capped at six items.
func parseSuggestions(raw string) []string {
	cleaned := extractJSON(raw)

	var decoded any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err == nil {
		switch value := decoded.(type) {
		case map[string]any:
			var payload suggestionsPayload
			if err := mapstructure.Decode(value, &payload); err == nil {
				return sanitize(payload.Suggestions)
			}
		case []any:
			items := make([]string, 0, len(value))
			for _, item := range value {
				items = append(items, fmt.Sprintf("%v", item))
			}
			return sanitize(items)
		}
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-* "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return sanitize(lines)
}

func sanitize(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// extractJSON strips markdown fences the model may wrap around the payload.
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
	return strings.TrimSpace(strings.Trim(raw, "`"))
}
