package common

// Entity represents a single entity mention recognized in a document.
// Identity is the raw surface text, case-sensitive and unnormalized:
// two mentions with different spelling or casing are distinct entities.
//
// Type carries the recognizer's category label (e.g. PER, LOC, MISC).
// An empty Type means the mention carried no label.
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Relation represents a directed link from a subject token to its
// governing verb token. Role preserves the grammatical dependency that
// produced the relation (e.g. nsubj, dobj). An empty Role means the
// dependency label was absent.
type Relation struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Role      string `json:"role"`
}

// Node is a node of a KnowledgeGraph. Type is the entity category
// attribute; it is empty for nodes that were only ever created as edge
// endpoints. Edges holds the outgoing edges in insertion order.
type Node struct {
	Name  string
	Type  string
	Edges []*Edge
}

// Edge is a directed edge of a KnowledgeGraph from Subject to
// Predicate, keyed by that pair. Relation is the edge attribute; it is
// empty when the edge carries no relation label.
type Edge struct {
	Subject   string
	Predicate string
	Relation  string
}

// KnowledgeGraph is a directed graph of entities and relations.
// Nodes are keyed by entity text and iterated in insertion order;
// edges are keyed by (subject, predicate) and kept in insertion order
// on their subject node's adjacency list.
//
// Within one construction pass node and edge attributes are
// last-write-wins; the append-only union used for the persisted store
// lives in pkg/graph.
type KnowledgeGraph struct {
	nodes map[string]*Node
	order []string
}

// NewKnowledgeGraph creates an empty knowledge graph.
func NewKnowledgeGraph() *KnowledgeGraph {
	return &KnowledgeGraph{
		nodes: make(map[string]*Node),
	}
}

// AddNode upserts a node keyed by name and sets its Type attribute.
// If the node already exists its Type is overwritten (last-write-wins).
func (g *KnowledgeGraph) AddNode(name string, nodeType string) *Node {
	node := g.ensureNode(name)
	node.Type = nodeType
	return node
}

// AddEdge upserts a directed edge keyed by (subject, predicate) and
// sets its Relation attribute (last-write-wins). Both endpoint nodes
// are created if absent, without touching an existing node's Type.
func (g *KnowledgeGraph) AddEdge(subject string, predicate string, relation string) *Edge {
	from := g.ensureNode(subject)
	g.ensureNode(predicate)

	for _, edge := range from.Edges {
		if edge.Predicate == predicate {
			edge.Relation = relation
			return edge
		}
	}

	edge := &Edge{
		Subject:   subject,
		Predicate: predicate,
		Relation:  relation,
	}
	from.Edges = append(from.Edges, edge)
	return edge
}

func (g *KnowledgeGraph) ensureNode(name string) *Node {
	if node, ok := g.nodes[name]; ok {
		return node
	}
	node := &Node{Name: name}
	g.nodes[name] = node
	g.order = append(g.order, name)
	return node
}

// Node returns the node with the given name, or nil if absent.
func (g *KnowledgeGraph) Node(name string) *Node {
	return g.nodes[name]
}

// HasNode reports whether a node with the given name exists.
func (g *KnowledgeGraph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// HasEdge reports whether an edge keyed (subject, predicate) exists.
func (g *KnowledgeGraph) HasEdge(subject string, predicate string) bool {
	node, ok := g.nodes[subject]
	if !ok {
		return false
	}
	for _, edge := range node.Edges {
		if edge.Predicate == predicate {
			return true
		}
	}
	return false
}

// Nodes returns all nodes in insertion order.
func (g *KnowledgeGraph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		nodes = append(nodes, g.nodes[name])
	}
	return nodes
}

// NodeCount returns the number of nodes in the graph.
func (g *KnowledgeGraph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges in the graph.
func (g *KnowledgeGraph) EdgeCount() int {
	count := 0
	for _, name := range g.order {
		count += len(g.nodes[name].Edges)
	}
	return count
}
