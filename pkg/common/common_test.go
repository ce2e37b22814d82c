package common

import (
	"reflect"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := NewKnowledgeGraph()

	g.AddNode("Freud", "PER")

	node := g.Node("Freud")
	if node == nil {
		t.Fatal("Node() = nil, want node")
	}
	if node.Type != "PER" {
		t.Errorf("node.Type = %q, want %q", node.Type, "PER")
	}

	// same key overwrites the attribute
	g.AddNode("Freud", "MISC")
	if got := g.Node("Freud").Type; got != "MISC" {
		t.Errorf("node.Type after overwrite = %q, want %q", got, "MISC")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestNodeIdentityIsRawText(t *testing.T) {
	g := NewKnowledgeGraph()

	g.AddNode("Freud", "PER")
	g.AddNode("freud", "PER")
	g.AddNode("Sigmund Freud", "PER")

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
}

func TestAddEdge(t *testing.T) {
	g := NewKnowledgeGraph()

	g.AddEdge("Freud", "fonder", "nsubj")

	if !g.HasEdge("Freud", "fonder") {
		t.Error("HasEdge(Freud, fonder) = false, want true")
	}
	if !g.HasNode("Freud") || !g.HasNode("fonder") {
		t.Error("AddEdge should create both endpoint nodes")
	}
	if got := g.Node("fonder").Type; got != "" {
		t.Errorf("endpoint node Type = %q, want empty", got)
	}

	// same (subject, predicate) key overwrites the attribute
	g.AddEdge("Freud", "fonder", "dobj")
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if got := g.Node("Freud").Edges[0].Relation; got != "dobj" {
		t.Errorf("edge.Relation after overwrite = %q, want %q", got, "dobj")
	}
}

func TestAddEdgeKeepsExistingNodeType(t *testing.T) {
	g := NewKnowledgeGraph()

	g.AddNode("Freud", "PER")
	g.AddEdge("Freud", "fonder", "nsubj")

	if got := g.Node("Freud").Type; got != "PER" {
		t.Errorf("node.Type after AddEdge = %q, want %q", got, "PER")
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := NewKnowledgeGraph()

	g.AddNode("c", "")
	g.AddNode("a", "")
	g.AddEdge("b", "a", "nsubj")
	g.AddNode("a", "MISC")

	var names []string
	for _, node := range g.Nodes() {
		names = append(names, node.Name)
	}

	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Nodes() order = %v, want %v", names, want)
	}
}

func TestEdgeCount(t *testing.T) {
	g := NewKnowledgeGraph()

	g.AddEdge("a", "b", "nsubj")
	g.AddEdge("a", "c", "dobj")
	g.AddEdge("b", "c", "nsubj")

	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
}
