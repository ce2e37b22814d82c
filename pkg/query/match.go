package query

import (
	"strings"

	"github.com/cartograph-ai/cartograph/pkg/common"
)

// RelevantNodes selects the graph nodes relevant to a free-text query.
//
// The query is tokenized on whitespace and lowercased; a node is
// relevant iff its lowercased name contains at least one query token as
// a substring. Results come back in the graph's insertion order: no
// ranking, no deduplication, no match-strength sorting. Zero matches is
// a valid outcome.
func RelevantNodes(g *common.KnowledgeGraph, query string) []*common.Node {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	var relevant []*common.Node
	for _, node := range g.Nodes() {
		name := strings.ToLower(node.Name)
		for _, term := range terms {
			if strings.Contains(name, term) {
				relevant = append(relevant, node)
				break
			}
		}
	}

	return relevant
}
