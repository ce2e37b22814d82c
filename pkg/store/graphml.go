package store

import (
	"encoding/xml"
	"fmt"

	"github.com/cartograph-ai/cartograph/pkg/common"
)

// GraphML attribute keys, matching the networkx conventions so stores
// written by other tooling remain readable.
const (
	graphmlNS        = "http://graphml.graphdrawing.org/xmlns"
	nodeTypeKey      = "d0"
	edgeRelationKey  = "d1"
	nodeTypeAttr     = "type"
	edgeRelationAttr = "relation"
)

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type xmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlGraph struct {
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlGraphML struct {
	XMLName xml.Name `xml:"graphml"`
	Xmlns   string   `xml:"xmlns,attr"`
	Keys    []xmlKey `xml:"key"`
	Graph   xmlGraph `xml:"graph"`
}

// MarshalGraphML serializes the graph as a directed GraphML document.
// Nodes and edges appear in insertion order; the type and relation
// attributes are omitted when absent.
func MarshalGraphML(g *common.KnowledgeGraph) ([]byte, error) {
	doc := xmlGraphML{
		Xmlns: graphmlNS,
		Keys: []xmlKey{
			{ID: nodeTypeKey, For: "node", AttrName: nodeTypeAttr, AttrType: "string"},
			{ID: edgeRelationKey, For: "edge", AttrName: edgeRelationAttr, AttrType: "string"},
		},
		Graph: xmlGraph{
			EdgeDefault: "directed",
		},
	}

	for _, node := range g.Nodes() {
		xn := xmlNode{ID: node.Name}
		if node.Type != "" {
			xn.Data = append(xn.Data, xmlData{Key: nodeTypeKey, Value: node.Type})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, xn)
	}

	for _, node := range g.Nodes() {
		for _, edge := range node.Edges {
			xe := xmlEdge{Source: edge.Subject, Target: edge.Predicate}
			if edge.Relation != "" {
				xe.Data = append(xe.Data, xmlData{Key: edgeRelationKey, Value: edge.Relation})
			}
			doc.Graph.Edges = append(doc.Graph.Edges, xe)
		}
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode graphml: %w", err)
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// UnmarshalGraphML parses a GraphML document into a knowledge graph.
// Document order becomes insertion order. Attribute keys are resolved
// through the key declarations, so stores written with different key
// ids (e.g. by networkx) load correctly.
func UnmarshalGraphML(data []byte) (*common.KnowledgeGraph, error) {
	var doc xmlGraphML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode graphml: %w", err)
	}

	nodeKey := nodeTypeKey
	edgeKey := edgeRelationKey
	for _, key := range doc.Keys {
		switch {
		case key.For == "node" && key.AttrName == nodeTypeAttr:
			nodeKey = key.ID
		case key.For == "edge" && key.AttrName == edgeRelationAttr:
			edgeKey = key.ID
		}
	}

	g := common.NewKnowledgeGraph()

	for _, xn := range doc.Graph.Nodes {
		nodeType := ""
		for _, d := range xn.Data {
			if d.Key == nodeKey {
				nodeType = d.Value
			}
		}
		g.AddNode(xn.ID, nodeType)
	}

	for _, xe := range doc.Graph.Edges {
		relation := ""
		for _, d := range xe.Data {
			if d.Key == edgeKey {
				relation = d.Value
			}
		}
		g.AddEdge(xe.Source, xe.Target, relation)
	}

	return g, nil
}
