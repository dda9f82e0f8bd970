package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/relay-ai/relay/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeModel delegates to a response function so one fake can answer
// classification, knowledge, and parsing prompts differently.
type fakeModel struct {
	generate func(req *model.Request) (*model.Response, error)
}

func (f *fakeModel) Generate(_ context.Context, req *model.Request) (*model.Response, error) {
	return f.generate(req)
}

func (f *fakeModel) IsAvailable() bool { return true }
func (f *fakeModel) Name() string      { return "fake" }

func staticModel(text string) *fakeModel {
	return &fakeModel{generate: func(_ *model.Request) (*model.Response, error) {
		return &model.Response{Text: text, Model: "fake"}, nil
	}}
}

func failingModel(err error) *fakeModel {
	return &fakeModel{generate: func(_ *model.Request) (*model.Response, error) {
		return nil, err
	}}
}

func TestKeywordClassify_KnowledgeOnly(t *testing.T) {
	assert.Equal(t, LabelKnowledge, keywordClassify("What is machine learning?"))
	assert.Equal(t, LabelKnowledge, keywordClassify("tell me about Go"))
}

func TestKeywordClassify_ActionOnly(t *testing.T) {
	assert.Equal(t, LabelAction, keywordClassify("create a folder called my_project"))
	assert.Equal(t, LabelAction, keywordClassify("zip my documents"))
}

func TestKeywordClassify_BothIsHybrid(t *testing.T) {
	assert.Equal(t, LabelHybrid, keywordClassify("Explain Python and create hello.py"))
}

func TestKeywordClassify_NeitherDefaultsToAction(t *testing.T) {
	assert.Equal(t, LabelAction, keywordClassify("blue skies today"))
}

func TestClassify_ModelLabelNormalized(t *testing.T) {
	c := NewQueryClassifier(staticModel("  Knowledge\n"))

	assert.Equal(t, LabelKnowledge, c.Classify(context.Background(), "What is Go?"))
}

func TestClassify_InvalidModelLabelFallsBack(t *testing.T) {
	c := NewQueryClassifier(staticModel("philosophy"))

	assert.Equal(t, LabelAction, c.Classify(context.Background(), "create a folder"))
}

func TestClassify_ModelErrorFallsBack(t *testing.T) {
	c := NewQueryClassifier(failingModel(errors.New("backend down")))

	assert.Equal(t, LabelKnowledge, c.Classify(context.Background(), "explain generics"))
}

func TestClassify_NilModelUsesKeywords(t *testing.T) {
	c := NewQueryClassifier(nil)

	assert.Equal(t, LabelHybrid, c.Classify(context.Background(), "what is zip and compress my folder"))
}
