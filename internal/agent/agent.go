// Package agent routes user queries between the knowledge path (model
// answers directly) and the action path (parse to a tool call, execute
// remotely), with a hybrid path running both.
package agent

import (
	"context"
	"strings"
	"time"

	"github.com/relay-ai/relay/internal/classifier"
	apperrors "github.com/relay-ai/relay/internal/errors"
	"github.com/relay-ai/relay/internal/model"
	"github.com/relay-ai/relay/internal/stats"
)

// Invoker executes named tools on the remote server. Ping is a cheap
// liveness probe.
type Invoker interface {
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
	Ping(ctx context.Context) error
}

// Recorder persists one processed query for later inspection.
type Recorder interface {
	Record(ctx context.Context, sessionID, utterance, route, tool, outcome string)
}

// Agent is the workflow router: classify, then dispatch.
type Agent struct {
	model      model.Model
	parser     *classifier.Parser
	classifier *QueryClassifier
	invoker    Invoker
	session    *Session
	stats      *stats.Collector
	recorder   Recorder
}

// Config configures the agent. Model, Invoker, Stats, and Recorder are
// all optional; missing pieces degrade to the documented fallbacks.
type Config struct {
	Model    model.Model
	Parser   *classifier.Parser
	Session  *Session
	Invoker  Invoker
	Stats    *stats.Collector
	Recorder Recorder
}

// New creates the workflow router.
func New(cfg *Config) *Agent {
	session := cfg.Session
	if session == nil {
		session = NewSession(".")
	}

	parser := cfg.Parser
	if parser == nil {
		parser = classifier.NewParser(&classifier.Config{Model: cfg.Model, UseLLM: cfg.Model != nil, UsePatterns: true})
	}

	return &Agent{
		model:      cfg.Model,
		parser:     parser,
		classifier: NewQueryClassifier(cfg.Model),
		invoker:    cfg.Invoker,
		session:    session,
		stats:      cfg.Stats,
		recorder:   cfg.Recorder,
	}
}

// Session returns the agent's mutable session state.
func (a *Agent) Session() *Session {
	return a.session
}

// Connect probes the remote tool server and records the result in the
// session.
func (a *Agent) Connect(ctx context.Context) error {
	if a.invoker == nil {
		return apperrors.New(apperrors.CodeServerUnavailable, "no tool server configured", apperrors.CategorySystem)
	}
	if err := a.invoker.Ping(ctx); err != nil {
		a.session.SetConnected(false)
		return apperrors.NewBuilder(apperrors.CodeServerUnavailable, "tool server probe failed").
			Wrap(err).
			Temporary().
			WithSuggestion("Check that the tool server binary is on PATH").
			Build()
	}
	a.session.SetConnected(true)
	return nil
}

// ProcessQuery classifies one utterance and runs the matching workflow.
// It always returns user-facing text, never an error.
func (a *Agent) ProcessQuery(ctx context.Context, utterance string) string {
	start := time.Now()
	label := a.classifier.Classify(ctx, utterance)
	a.stats.RecordRoute(string(label))

	var out, tool string
	var tokens int
	switch label {
	case LabelKnowledge:
		out, tokens = a.knowledge(ctx, utterance)
	case LabelAction:
		out, tool = a.action(ctx, utterance)
	default:
		out, tool, tokens = a.hybrid(ctx, utterance)
	}

	a.stats.RecordRequest(tokens, time.Since(start))
	if a.recorder != nil {
		a.recorder.Record(ctx, a.session.ID, utterance, string(label), tool, out)
	}

	return out
}

func (a *Agent) knowledge(ctx context.Context, utterance string) (string, int) {
	if a.model == nil || !a.model.IsAvailable() {
		return "Knowledge queries need a configured model backend.", 0
	}

	resp, err := a.model.Generate(ctx, &model.Request{
		System: knowledgeSystemPrompt,
		Prompt: utterance,
	})
	if err != nil {
		a.stats.RecordError()
		return "Knowledge processing failed: " + apperrors.FormatUserMessage(err), 0
	}

	return "Knowledge Response:\n" + resp.Text, resp.TokensUsed
}

const couldNotUnderstand = "I couldn't understand that request. Could you rephrase it?\n" +
	"Examples: 'create a file called test.txt', 'make a folder named project', 'list files'"

func (a *Agent) action(ctx context.Context, utterance string) (string, string) {
	if a.invoker == nil || !a.session.Connected() {
		return "Not connected to the tool server.", ""
	}

	// Re-probe before executing; a dead server should fail fast here,
	// not mid-invocation.
	if err := a.invoker.Ping(ctx); err != nil {
		a.session.SetConnected(false)
		return "Tool server connection lost.", ""
	}

	cmd := a.parser.Parse(ctx, utterance)
	if cmd.IsUnknown() {
		return couldNotUnderstand, "unknown"
	}

	params := cmd.Params
	if _, ok := params["working_directory"]; !ok && cmd.Tool.AcceptsWorkingDirectory() {
		params["working_directory"] = a.session.WorkingDir()
	}

	a.stats.RecordToolCall(cmd.Tool.String())
	result, err := a.invoker.CallTool(ctx, cmd.Tool.String(), params)
	if err != nil {
		a.stats.RecordError()
		if strings.Contains(strings.ToLower(err.Error()), "connection") {
			a.session.SetConnected(false)
			return "Lost connection to the tool server. Reconnect and try again.", cmd.Tool.String()
		}
		return "Error: " + apperrors.FormatUserMessage(err), cmd.Tool.String()
	}

	return "Action Result:\n" + result, cmd.Tool.String()
}

// hybrid runs the knowledge and action paths concurrently and joins
// the results, knowledge first. The action path stays on this
// goroutine so session state is mutated from one place only.
func (a *Agent) hybrid(ctx context.Context, utterance string) (string, string, int) {
	type knowledgeResult struct {
		text   string
		tokens int
	}

	knowledgeCh := make(chan knowledgeResult, 1)
	go func() {
		text, tokens := a.knowledge(ctx, utterance)
		knowledgeCh <- knowledgeResult{text: text, tokens: tokens}
	}()

	actionText, tool := a.action(ctx, utterance)
	k := <-knowledgeCh

	return k.text + "\n\n" + actionText, tool, k.tokens
}
