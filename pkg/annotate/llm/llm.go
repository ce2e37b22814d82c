package llm

import (
	"context"
	"strings"

	"github.com/cartograph-ai/cartograph/pkg/ai"
	"github.com/cartograph-ai/cartograph/pkg/annotate"
)

type annotationToken struct {
	Text string `json:"text" jsonschema_description:"Exact surface text of the token"`
	POS  string `json:"pos" jsonschema_description:"Part-of-speech tag, e.g. VERB, NOUN, ADJ"`
	Dep  string `json:"dep" jsonschema_description:"Dependency label, e.g. nsubj, dobj, det"`
	Head int    `json:"head" jsonschema_description:"Index of the syntactic head token within the same sentence; the root points at itself"`
}

type annotationSentence struct {
	Tokens []annotationToken `json:"tokens" jsonschema_description:"Tokens of the sentence in order"`
}

type annotationEntity struct {
	Text  string `json:"text" jsonschema_description:"Exact surface text of the entity mention"`
	Label string `json:"label" jsonschema_description:"Entity category label, e.g. PER, LOC, ORG, MISC"`
}

type annotationResponse struct {
	Entities  []annotationEntity   `json:"entities" jsonschema_description:"Named-entity mentions in document order, duplicates kept"`
	Sentences []annotationSentence `json:"sentences" jsonschema_description:"Segmented sentences with dependency-parsed tokens"`
}

// LLMAnnotator implements annotate.Annotator by asking a generation
// model for the annotation structure via JSON-schema constrained
// output. It is the fallback provider when no annotation server is
// configured.
type LLMAnnotator struct {
	client ai.GenerationClient
}

// NewLLMAnnotator creates an annotator backed by the given generation client.
func NewLLMAnnotator(client ai.GenerationClient) *LLMAnnotator {
	return &LLMAnnotator{client: client}
}

// Annotate asks the generation model to segment, tag and parse the text.
// Empty text yields an empty annotation without a model call.
func (a *LLMAnnotator) Annotate(ctx context.Context, text string) (*annotate.Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return &annotate.Annotation{}, nil
	}

	var res annotationResponse
	err := a.client.GenerateCompletionWithFormat(
		ctx,
		"linguistic_annotation",
		"Named entities and dependency analysis of a text.",
		text,
		&res,
		ai.WithSystemPrompts(ai.AnnotatePrompt),
	)
	if err != nil {
		return nil, err
	}

	annotation := &annotate.Annotation{
		Entities:  make([]annotate.EntityMention, 0, len(res.Entities)),
		Sentences: make([]annotate.Sentence, 0, len(res.Sentences)),
	}
	for _, e := range res.Entities {
		annotation.Entities = append(annotation.Entities, annotate.EntityMention{
			Text:  e.Text,
			Label: e.Label,
		})
	}
	for _, s := range res.Sentences {
		tokens := make([]annotate.Token, 0, len(s.Tokens))
		for _, t := range s.Tokens {
			tokens = append(tokens, annotate.Token{
				Text: t.Text,
				POS:  t.POS,
				Dep:  t.Dep,
				Head: t.Head,
			})
		}
		annotation.Sentences = append(annotation.Sentences, annotate.Sentence{Tokens: tokens})
	}

	return annotation, nil
}
