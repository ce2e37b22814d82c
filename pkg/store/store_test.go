package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cartograph-ai/cartograph/pkg/common"
)

func TestFileGraphStoreLoadMissing(t *testing.T) {
	s := NewFileGraphStore()

	g, err := s.Load(context.Background(), filepath.Join(t.TempDir(), "nope.graphml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if g != nil {
		t.Errorf("Load() = %+v, want nil for missing file", g)
	}
}

func TestFileGraphStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.graphml")
	if err := os.WriteFile(path, []byte("<graphml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileGraphStore().Load(context.Background(), path); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestFileGraphStoreSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.graphml")
	s := NewFileGraphStore()

	g := common.NewKnowledgeGraph()
	g.AddNode("Freud", "PER")
	g.AddEdge("Freud", "fonder", "nsubj")

	if err := s.Save(context.Background(), g, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() = nil, want graph")
	}
	if !loaded.HasNode("Freud") || !loaded.HasEdge("Freud", "fonder") {
		t.Error("loaded graph is missing persisted content")
	}
}

func TestFileGraphStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.graphml")
	s := NewFileGraphStore()

	first := common.NewKnowledgeGraph()
	first.AddNode("Freud", "PER")
	first.AddNode("Jung", "PER")
	if err := s.Save(context.Background(), first, path); err != nil {
		t.Fatal(err)
	}

	second := common.NewKnowledgeGraph()
	second.AddNode("Freud", "PER")
	if err := s.Save(context.Background(), second, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1 (save is a full rewrite)", loaded.NodeCount())
	}
}
