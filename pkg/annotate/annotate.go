package annotate

import (
	"context"
)

// Token is a single token of an annotated sentence. Head is the index
// of the token's syntactic head within the same sentence; a token that
// is its own head (the sentence root) points at itself.
type Token struct {
	Text string `json:"text"`
	POS  string `json:"pos"`
	Dep  string `json:"dep"`
	Head int    `json:"head"`
}

// Sentence is one segmented sentence with its dependency-parsed tokens.
type Sentence struct {
	Tokens []Token `json:"tokens"`
}

// EntityMention is a named-entity span recognized in the text. Label is
// the recognizer's category (e.g. PER, LOC, MISC) and may be empty.
type EntityMention struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Annotation is the full linguistic analysis of one piece of text:
// the recognized entity mentions in document order, and the segmented
// sentences with part-of-speech and dependency information per token.
type Annotation struct {
	Entities  []EntityMention `json:"entities"`
	Sentences []Sentence      `json:"sentences"`
}

// Annotator defines the interface for linguistic annotation providers.
// Implementations may call an annotation server, a local model, or a
// generation model with structured output.
//
// Annotate blocks until the full annotation is available. Empty text
// must yield an empty Annotation, not an error.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}
