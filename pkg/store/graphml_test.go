package store

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cartograph-ai/cartograph/pkg/common"
)

func TestMarshalGraphML(t *testing.T) {
	g := common.NewKnowledgeGraph()
	g.AddNode("Freud", "PER")
	g.AddNode("psychanalyse", "")
	g.AddEdge("Freud", "fonder", "nsubj")

	data, err := MarshalGraphML(g)
	if err != nil {
		t.Fatalf("MarshalGraphML() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`<graphml xmlns="http://graphml.graphdrawing.org/xmlns">`,
		`<key id="d0" for="node" attr.name="type" attr.type="string">`,
		`<key id="d1" for="edge" attr.name="relation" attr.type="string">`,
		`edgedefault="directed"`,
		`<node id="Freud">`,
		`<data key="d0">PER</data>`,
		`<edge source="Freud" target="fonder">`,
		`<data key="d1">nsubj</data>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// untyped nodes carry no data element
	if !strings.Contains(out, `<node id="psychanalyse"></node>`) {
		t.Errorf("untyped node should have no data element:\n%s", out)
	}
}

func TestGraphMLRoundTrip(t *testing.T) {
	g := common.NewKnowledgeGraph()
	g.AddNode("Freud", "PER")
	g.AddNode("Vienne", "LOC")
	g.AddEdge("Freud", "fonder", "nsubj")
	g.AddEdge("psychanalyse", "fonder", "dobj")
	g.AddEdge("Vienne", "accueillir", "")

	data, err := MarshalGraphML(g)
	if err != nil {
		t.Fatalf("MarshalGraphML() error = %v", err)
	}

	loaded, err := UnmarshalGraphML(data)
	if err != nil {
		t.Fatalf("UnmarshalGraphML() error = %v", err)
	}

	if loaded.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount() = %d, want %d", loaded.NodeCount(), g.NodeCount())
	}
	if loaded.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount() = %d, want %d", loaded.EdgeCount(), g.EdgeCount())
	}

	var wantOrder, gotOrder []string
	for _, node := range g.Nodes() {
		wantOrder = append(wantOrder, node.Name)
	}
	for _, node := range loaded.Nodes() {
		gotOrder = append(gotOrder, node.Name)
	}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("node order = %v, want %v", gotOrder, wantOrder)
	}

	if got := loaded.Node("Freud").Type; got != "PER" {
		t.Errorf("Freud.Type = %q, want %q", got, "PER")
	}
	if got := loaded.Node("Freud").Edges[0].Relation; got != "nsubj" {
		t.Errorf("edge.Relation = %q, want %q", got, "nsubj")
	}
	if got := loaded.Node("Vienne").Edges[0].Relation; got != "" {
		t.Errorf("unlabeled edge.Relation = %q, want empty", got)
	}
}

func TestMarshalGraphMLIsDeterministic(t *testing.T) {
	g := common.NewKnowledgeGraph()
	g.AddNode("b", "LOC")
	g.AddNode("a", "PER")
	g.AddEdge("b", "a", "nsubj")

	first, err := MarshalGraphML(g)
	if err != nil {
		t.Fatalf("MarshalGraphML() error = %v", err)
	}
	second, err := MarshalGraphML(g)
	if err != nil {
		t.Fatalf("MarshalGraphML() error = %v", err)
	}

	if string(first) != string(second) {
		t.Error("two serializations of the same graph differ")
	}
}

func TestUnmarshalGraphMLForeignKeyIDs(t *testing.T) {
	// key ids as another writer might assign them
	doc := `<?xml version="1.0" encoding="utf-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="k7" for="node" attr.name="type" attr.type="string"></key>
  <key id="k9" for="edge" attr.name="relation" attr.type="string"></key>
  <graph edgedefault="directed">
    <node id="Freud">
      <data key="k7">PER</data>
    </node>
    <node id="fonder"></node>
    <edge source="Freud" target="fonder">
      <data key="k9">nsubj</data>
    </edge>
  </graph>
</graphml>
`

	g, err := UnmarshalGraphML([]byte(doc))
	if err != nil {
		t.Fatalf("UnmarshalGraphML() error = %v", err)
	}

	if got := g.Node("Freud").Type; got != "PER" {
		t.Errorf("Freud.Type = %q, want %q", got, "PER")
	}
	if got := g.Node("Freud").Edges[0].Relation; got != "nsubj" {
		t.Errorf("edge.Relation = %q, want %q", got, "nsubj")
	}
}

func TestUnmarshalGraphMLInvalid(t *testing.T) {
	if _, err := UnmarshalGraphML([]byte("not xml at all")); err == nil {
		t.Fatal("UnmarshalGraphML() error = nil, want error")
	}
}
