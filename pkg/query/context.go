package query

import (
	"fmt"
	"strings"

	"github.com/cartograph-ai/cartograph/pkg/common"
)

// BuildContext renders the relevant subgraph as flat text for the
// generation collaborator.
//
// For each node, in the given order: a `Concept:` line; a `Type:` line
// when the node carries a type attribute; and one `Relation:` line per
// outgoing edge carrying a relation attribute, in adjacency order.
// Lines are newline-joined. There is no cross-node deduplication, so
// assembly is byte-deterministic for a given graph and node list.
func BuildContext(g *common.KnowledgeGraph, nodes []*common.Node) string {
	var lines []string

	for _, node := range nodes {
		lines = append(lines, fmt.Sprintf("Concept: %s", node.Name))
		if node.Type != "" {
			lines = append(lines, fmt.Sprintf("Type: %s", node.Type))
		}
		for _, edge := range node.Edges {
			if edge.Relation == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("Relation: %s %s %s", node.Name, edge.Relation, edge.Predicate))
		}
	}

	return strings.Join(lines, "\n")
}
