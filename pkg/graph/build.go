package graph

import (
	"github.com/cartograph-ai/cartograph/pkg/common"
)

// BuildGraph folds a batch of per-document extractions, in document
// order, into one knowledge graph.
//
// Nodes are keyed by entity text and edges by (subject, predicate);
// colliding keys are last-write-wins, so document order only matters as
// the tie-break for attribute values.
func BuildGraph(extractions []*DocumentExtraction) *common.KnowledgeGraph {
	g := common.NewKnowledgeGraph()

	for _, extraction := range extractions {
		for _, entity := range extraction.Entities {
			g.AddNode(entity.Text, entity.Type)
		}
		for _, relation := range extraction.Relations {
			g.AddEdge(relation.Subject, relation.Predicate, relation.Role)
		}
	}

	return g
}
