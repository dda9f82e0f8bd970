// Package classifier provides command parsing for user requests.
//
// Parsing flow:
// 1. Model-backed structured extraction (when a backend is configured)
// 2. Scored intent classification over the pattern catalogue
// 3. Regex multi-pattern fallback (always runs last, never fails)
package classifier

import (
	"context"

	"github.com/relay-ai/relay/internal/model"
	"github.com/relay-ai/relay/internal/schemas"
)

// Command is the parser's output: a tool and its extracted parameters.
type Command struct {
	Tool   Tool
	Params map[string]any
}

// IsUnknown reports whether parsing produced no usable tool.
func (c Command) IsUnknown() bool {
	return c.Tool == ToolUnknown
}

// unknownCommand is the well-formed miss value every tier returns.
func unknownCommand() Command {
	return Command{Tool: ToolUnknown, Params: map[string]any{}}
}

// Strategy is one tier in the ordered parsing chain. A strategy reports
// ok=false when it has no confident result; it must never fail outright.
type Strategy interface {
	// Name identifies the strategy for diagnostics.
	Name() string

	// Parse attempts to classify the utterance and extract parameters.
	Parse(ctx context.Context, utterance string) (Command, bool)
}

// Parser runs the strategy chain in order, accepting the first result.
type Parser struct {
	strategies []Strategy
}

// Config configures the parser.
type Config struct {
	// Model is the language model backend; nil disables the model tier.
	Model model.Model

	// Schemas documents the tools for the model prompt; nil uses defaults.
	Schemas *schemas.Registry

	// ConfidenceFloor is the minimum score for the pattern tier
	// (DefaultConfidenceFloor when <= 0).
	ConfidenceFloor int

	// UseLLM enables the model tier.
	UseLLM bool

	// UsePatterns enables the scored pattern tier.
	UsePatterns bool
}

// NewParser creates a command parser with the standard three-tier chain.
// The regex tier is always present so Parse is total.
func NewParser(cfg *Config) *Parser {
	if cfg == nil {
		cfg = &Config{UsePatterns: true}
	}

	reg := cfg.Schemas
	if reg == nil {
		reg = schemas.DefaultRegistry()
	}

	floor := cfg.ConfidenceFloor
	if floor <= 0 {
		floor = DefaultConfidenceFloor
	}

	catalog := DefaultCatalog()

	var chain []Strategy
	if cfg.UseLLM && cfg.Model != nil {
		chain = append(chain, newModelStrategy(cfg.Model, reg))
	}
	if cfg.UsePatterns {
		chain = append(chain, newIntentStrategy(catalog, floor))
	}
	chain = append(chain, newPatternStrategy())

	return &Parser{strategies: chain}
}

// Parse maps an utterance onto a tool invocation. It never fails: when
// every strategy misses it returns the unknown command.
func (p *Parser) Parse(ctx context.Context, utterance string) Command {
	for _, s := range p.strategies {
		if cmd, ok := s.Parse(ctx, utterance); ok && !cmd.IsUnknown() {
			return cmd
		}
	}
	return unknownCommand()
}

// Strategies returns the names of the active tiers in order.
func (p *Parser) Strategies() []string {
	names := make([]string, 0, len(p.strategies))
	for _, s := range p.strategies {
		names = append(names, s.Name())
	}
	return names
}

// intentStrategy scores every catalogue entry against the utterance and
// extracts parameters for the best one.
type intentStrategy struct {
	catalog []ToolSpec
	floor   int
}

func newIntentStrategy(catalog []ToolSpec, floor int) *intentStrategy {
	return &intentStrategy{catalog: catalog, floor: floor}
}

func (s *intentStrategy) Name() string { return "intent" }

func (s *intentStrategy) Parse(_ context.Context, utterance string) (Command, bool) {
	tool, score := s.classify(utterance)
	if tool == ToolUnknown || score < s.floor {
		return unknownCommand(), false
	}
	return ExtractParams(utterance, tool), true
}

// classify returns the best-scoring tool and its score. Ties resolve to
// the entry declared earlier in the catalogue.
func (s *intentStrategy) classify(utterance string) (Tool, int) {
	ui := normalize(utterance)

	best := ToolUnknown
	bestScore := -1

	for _, spec := range s.catalog {
		score := scoreSpec(ui, spec)
		if score > bestScore {
			best = spec.Tool
			bestScore = score
		}
	}

	return best, bestScore
}

// scoreSpec computes the weighted signal score for one catalogue entry.
// All checks are substring containment against the lowercased utterance,
// so "notepad" also matches inside "notepads".
func scoreSpec(ui string, spec ToolSpec) int {
	score := 0

	for _, kw := range spec.Keywords {
		if contains(ui, kw) {
			score += keywordWeight
		}
	}
	for _, obj := range spec.Objects {
		if contains(ui, obj) {
			score += objectWeight
		}
	}
	for _, ind := range spec.Indicators {
		if contains(ui, ind) {
			score += indicatorWeight
		}
	}
	for _, ext := range spec.Extensions {
		if contains(ui, ext) {
			score += strongWeight
		}
	}
	for _, app := range spec.AppNames {
		if contains(ui, app) {
			score += strongWeight
		}
	}

	return score
}
