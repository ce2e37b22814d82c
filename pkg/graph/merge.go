package graph

import (
	"github.com/cartograph-ai/cartograph/pkg/common"
)

// Merge folds incoming into existing as an append-only union and
// returns existing.
//
// Node keys and (subject, predicate) edge keys of incoming that are
// absent from existing are copied over with their attributes. Keys
// already present in existing are left untouched even if incoming
// carries different attribute values, so merging the same batch twice
// yields the same graph.
func Merge(existing *common.KnowledgeGraph, incoming *common.KnowledgeGraph) *common.KnowledgeGraph {
	for _, node := range incoming.Nodes() {
		if !existing.HasNode(node.Name) {
			existing.AddNode(node.Name, node.Type)
		}
	}

	for _, node := range incoming.Nodes() {
		for _, edge := range node.Edges {
			if !existing.HasEdge(edge.Subject, edge.Predicate) {
				existing.AddEdge(edge.Subject, edge.Predicate, edge.Relation)
			}
		}
	}

	return existing
}
