package agent

import (
	"context"
	"strings"

	"github.com/relay-ai/relay/internal/model"
)

// Label routes an utterance to the knowledge path, the action path, or
// both.
type Label string

const (
	LabelKnowledge Label = "knowledge"
	LabelAction    Label = "action"
	LabelHybrid    Label = "hybrid"
)

// actionKeywords and knowledgeKeywords drive the deterministic fallback
// when no model is available. Matching is substring containment over
// the lowercased utterance, same as the intent classifier.
var (
	actionKeywords = []string{
		"create", "make", "run", "execute", "launch",
		"open", "list", "show", "zip", "compress",
	}
	knowledgeKeywords = []string{
		"what", "how", "why", "explain", "tell me",
		"define", "describe", "who", "when", "where",
	}
)

// QueryClassifier labels utterances. The model path is preferred; any
// backend failure or invalid label degrades to keyword scoring.
type QueryClassifier struct {
	model model.Model
}

// NewQueryClassifier creates a classifier. A nil model means
// keyword-only operation.
func NewQueryClassifier(m model.Model) *QueryClassifier {
	return &QueryClassifier{model: m}
}

// Classify labels one utterance. It never fails.
func (c *QueryClassifier) Classify(ctx context.Context, utterance string) Label {
	if c.model != nil && c.model.IsAvailable() {
		resp, err := c.model.Generate(ctx, &model.Request{
			System:    classifySystemPrompt,
			Prompt:    utterance,
			MaxTokens: 10,
		})
		if err == nil {
			label := Label(strings.ToLower(strings.TrimSpace(resp.Text)))
			switch label {
			case LabelKnowledge, LabelAction, LabelHybrid:
				return label
			}
		}
	}

	return keywordClassify(utterance)
}

// keywordClassify scores both keyword sets; both positive means hybrid,
// neither means action.
func keywordClassify(utterance string) Label {
	ui := strings.ToLower(utterance)

	actionScore := 0
	for _, kw := range actionKeywords {
		if strings.Contains(ui, kw) {
			actionScore++
		}
	}

	knowledgeScore := 0
	for _, kw := range knowledgeKeywords {
		if strings.Contains(ui, kw) {
			knowledgeScore++
		}
	}

	switch {
	case actionScore > 0 && knowledgeScore > 0:
		return LabelHybrid
	case knowledgeScore > 0:
		return LabelKnowledge
	default:
		return LabelAction
	}
}

const classifySystemPrompt = `You are a query classifier. Classify the user's query into exactly one category:

CATEGORIES:
- "knowledge": User is asking for information, explanations, definitions, concepts, or general knowledge
- "action": User wants to perform a specific task, operation, or action (like creating files, running commands)
- "hybrid": User wants both information AND to perform an action

KNOWLEDGE Examples:
"What is machine learning?"
"Explain how Python works"
"Tell me about climate change"
"Define artificial intelligence"

ACTION Examples:
"Create a file called report.txt"
"Run the dir command"
"Launch notepad"
"Make a folder called project"
"Show me files in Documents"
"List all processes"

HYBRID Examples:
"Explain machine learning and create a demo script"
"Tell me about Python and then create a hello.py file"
"Describe file compression and zip my folder"

Respond with ONLY the category name: knowledge, action, or hybrid`

const knowledgeSystemPrompt = `You are a knowledgeable AI assistant. Provide comprehensive, accurate, and helpful information on any topic the user asks about.

Guidelines:
- Give detailed explanations with clear examples
- Break down complex concepts into understandable parts
- Provide practical context and real-world applications
- Be conversational and engaging
- If uncertain about specific details, acknowledge limitations`
