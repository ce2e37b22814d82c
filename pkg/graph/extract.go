package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cartograph-ai/cartograph/pkg/annotate"
	"github.com/cartograph-ai/cartograph/pkg/common"
)

const (
	depSubject = "nsubj"
	depObject  = "dobj"
	posVerb    = "VERB"
)

// DocumentExtraction holds the ordered entities and relations extracted
// from one document. Duplicate entity mentions are retained.
type DocumentExtraction struct {
	DocID     string
	Entities  []common.Entity
	Relations []common.Relation
}

// ExtractDocument turns one document's text into entities and
// relations using the configured annotation provider.
//
// Entities are the provider's named-entity mentions, in document order.
// A relation is emitted for every token whose dependency role is
// subject (nsubj) or direct object (dobj) and whose syntactic head is a
// verb: the token is the subject, the head verb the predicate, and the
// dependency role is preserved.
//
// Long documents are chunked into token-budgeted units before
// annotation; per-unit results are concatenated in unit order, so
// chunking never reorders the output. Empty text yields an empty
// extraction, not an error.
func (g *GraphClient) ExtractDocument(
	ctx context.Context,
	docID string,
	text string,
) (*DocumentExtraction, error) {
	extraction := &DocumentExtraction{
		DocID:     docID,
		Entities:  []common.Entity{},
		Relations: []common.Relation{},
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return extraction, nil
	}

	units, err := transformIntoUnits(text, docID, g.tokenEncoder, g.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk document %s: %w", docID, err)
	}

	for _, unit := range units {
		annotation, err := g.annotator.Annotate(ctx, unit.text)
		if err != nil {
			return nil, fmt.Errorf("annotation failed for %s: %w", docID, err)
		}

		extraction.Entities = append(extraction.Entities, entitiesFromAnnotation(annotation)...)
		extraction.Relations = append(extraction.Relations, relationsFromAnnotation(annotation)...)
	}

	return extraction, nil
}

func entitiesFromAnnotation(annotation *annotate.Annotation) []common.Entity {
	entities := make([]common.Entity, 0, len(annotation.Entities))
	for _, mention := range annotation.Entities {
		entities = append(entities, common.Entity{
			Text: mention.Text,
			Type: mention.Label,
		})
	}
	return entities
}

func relationsFromAnnotation(annotation *annotate.Annotation) []common.Relation {
	var relations []common.Relation
	for _, sentence := range annotation.Sentences {
		for _, token := range sentence.Tokens {
			if token.Dep != depSubject && token.Dep != depObject {
				continue
			}
			if token.Head < 0 || token.Head >= len(sentence.Tokens) {
				continue
			}
			head := sentence.Tokens[token.Head]
			if head.POS != posVerb {
				continue
			}
			relations = append(relations, common.Relation{
				Subject:   token.Text,
				Predicate: head.Text,
				Role:      token.Dep,
			})
		}
	}
	return relations
}
