package query

import (
	"reflect"
	"testing"

	"github.com/cartograph-ai/cartograph/pkg/common"
)

func testGraph() *common.KnowledgeGraph {
	g := common.NewKnowledgeGraph()
	g.AddNode("Sigmund Freud", "PER")
	g.AddNode("psychanalyse", "MISC")
	g.AddNode("Vienne", "LOC")
	g.AddNode("rêve", "")
	return g
}

func TestRelevantNodes(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "case-insensitive substring match",
			query: "Qui est freud ?",
			want:  []string{"Sigmund Freud"},
		},
		{
			name:  "multiple terms multiple matches",
			query: "freud et la psychanalyse",
			want:  []string{"Sigmund Freud", "psychanalyse"},
		},
		{
			name:  "insertion order regardless of term order",
			query: "vienne freud",
			want:  []string{"Sigmund Freud", "Vienne"},
		},
		{
			name:  "node matched once even with several matching terms",
			query: "sigmund freud",
			want:  []string{"Sigmund Freud"},
		},
		{
			name:  "no match",
			query: "jung",
			want:  nil,
		},
		{
			name:  "empty query",
			query: "   ",
			want:  nil,
		},
	}

	g := testGraph()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, node := range RelevantNodes(g, tt.query) {
				got = append(got, node.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RelevantNodes(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestBuildContext(t *testing.T) {
	g := common.NewKnowledgeGraph()
	g.AddNode("Freud", "PER")
	g.AddEdge("Freud", "fonder", "subject-of")

	got := BuildContext(g, []*common.Node{g.Node("Freud")})

	want := "Concept: Freud\nType: PER\nRelation: Freud subject-of fonder"
	if got != want {
		t.Errorf("BuildContext() = %q, want %q", got, want)
	}
}

func TestBuildContextOmitsAbsentAttributes(t *testing.T) {
	g := common.NewKnowledgeGraph()
	g.AddEdge("rêve", "signifier", "")

	got := BuildContext(g, []*common.Node{g.Node("rêve")})

	// no type line for an untyped node, no relation line for an
	// unlabeled edge
	want := "Concept: rêve"
	if got != want {
		t.Errorf("BuildContext() = %q, want %q", got, want)
	}
}

func TestBuildContextIsDeterministic(t *testing.T) {
	g := testGraph()
	g.AddEdge("Sigmund Freud", "fonder", "nsubj")
	g.AddEdge("Sigmund Freud", "analyser", "nsubj")
	nodes := RelevantNodes(g, "freud psychanalyse vienne")

	first := BuildContext(g, nodes)
	second := BuildContext(g, nodes)
	if first != second {
		t.Error("two context assemblies over the same graph differ")
	}
}
