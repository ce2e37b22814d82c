package graph

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cartograph-ai/cartograph/pkg/annotate"
	"github.com/cartograph-ai/cartograph/pkg/common"
	"github.com/cartograph-ai/cartograph/pkg/loader"
)

// mockConverter returns canned text keyed by file name and fails for
// names listed in failures.
type mockConverter struct {
	texts    map[string]string
	failures map[string]bool
	calls    []string
}

func (m *mockConverter) Convert(ctx context.Context, path string) (string, error) {
	name := filepath.Base(path)
	m.calls = append(m.calls, name)
	if m.failures[name] {
		return "", errors.New("conversion blew up")
	}
	return m.texts[name], nil
}

// memoryGraphStore keeps the persisted graph in memory.
type memoryGraphStore struct {
	graph *common.KnowledgeGraph
	saves int
}

func (s *memoryGraphStore) Load(ctx context.Context, path string) (*common.KnowledgeGraph, error) {
	return s.graph, nil
}

func (s *memoryGraphStore) Save(ctx context.Context, graph *common.KnowledgeGraph, path string) error {
	s.graph = graph
	s.saves++
	return nil
}

func writeTestDoc(t *testing.T, dir string, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("raw bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestClient(converter loader.Converter, annotation *annotate.Annotation) (*GraphClient, *mockAnnotator) {
	annotator := &mockAnnotator{annotation: annotation}
	client := NewGraphClient(NewGraphClientParams{
		Annotator:  annotator,
		Converters: loader.Registry{".txt": converter},
	})
	return client, annotator
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, "a.txt")
	writeTestDoc(t, dir, "b.txt")

	converter := &mockConverter{texts: map[string]string{
		"a.txt": "Freud fonda la psychanalyse.",
		"b.txt": "Jung répondit.",
	}}
	annotation := &annotate.Annotation{
		Entities: []annotate.EntityMention{{Text: "Freud", Label: "PER"}},
		Sentences: []annotate.Sentence{{
			Tokens: []annotate.Token{
				{Text: "Freud", POS: "PROPN", Dep: "nsubj", Head: 1},
				{Text: "fonda", POS: "VERB", Dep: "ROOT", Head: 1},
			},
		}},
	}
	client, _ := newTestClient(converter, annotation)
	storeClient := &memoryGraphStore{}

	result, err := client.ProcessDirectory(context.Background(), dir, "graph.graphml", storeClient)
	if err != nil {
		t.Fatalf("ProcessDirectory() error = %v", err)
	}

	if len(result.Documents) != 2 {
		t.Fatalf("got %d document results, want 2", len(result.Documents))
	}
	for _, doc := range result.Documents {
		if doc.Skipped || doc.Err != nil {
			t.Errorf("document %s: skipped=%v err=%v, want converted", doc.Path, doc.Skipped, doc.Err)
		}
		if _, err := os.Stat(doc.MarkdownPath); err != nil {
			t.Errorf("markdown cache %s not written: %v", doc.MarkdownPath, err)
		}
	}

	if storeClient.saves != 1 {
		t.Errorf("store saved %d times, want 1", storeClient.saves)
	}
	if !result.Graph.HasNode("Freud") || !result.Graph.HasEdge("Freud", "fonda") {
		t.Error("persisted graph is missing the extracted node or edge")
	}
}

func TestProcessDirectorySkipsCachedDocuments(t *testing.T) {
	dir := t.TempDir()
	path := writeTestDoc(t, dir, "a.txt")
	if err := loader.WriteMarkdownCache(path, "cached text"); err != nil {
		t.Fatal(err)
	}

	converter := &mockConverter{texts: map[string]string{"a.txt": "fresh text."}}
	client, annotator := newTestClient(converter, &annotate.Annotation{})
	storeClient := &memoryGraphStore{}

	result, err := client.ProcessDirectory(context.Background(), dir, "graph.graphml", storeClient)
	if err != nil {
		t.Fatalf("ProcessDirectory() error = %v", err)
	}

	if len(result.Documents) != 1 || !result.Documents[0].Skipped {
		t.Fatalf("document results = %+v, want one skipped", result.Documents)
	}
	if len(converter.calls) != 0 {
		t.Errorf("converter called for cached document: %v", converter.calls)
	}
	if annotator.calls != 0 {
		t.Errorf("annotator called %d times for cached document, want 0", annotator.calls)
	}

	// a second run over the same directory stays a no-op
	if _, err := client.ProcessDirectory(context.Background(), dir, "graph.graphml", storeClient); err != nil {
		t.Fatalf("second ProcessDirectory() error = %v", err)
	}
	if len(converter.calls) != 0 {
		t.Errorf("converter called on re-run: %v", converter.calls)
	}
}

func TestProcessDirectoryConversionFailureDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, "bad.txt")
	writeTestDoc(t, dir, "good.txt")

	converter := &mockConverter{
		texts:    map[string]string{"good.txt": "Freud fonda la psychanalyse."},
		failures: map[string]bool{"bad.txt": true},
	}
	annotation := &annotate.Annotation{
		Entities: []annotate.EntityMention{{Text: "Freud", Label: "PER"}},
	}
	client, _ := newTestClient(converter, annotation)
	storeClient := &memoryGraphStore{}

	result, err := client.ProcessDirectory(context.Background(), dir, "graph.graphml", storeClient)
	if err != nil {
		t.Fatalf("ProcessDirectory() error = %v", err)
	}

	var failed, converted int
	for _, doc := range result.Documents {
		switch {
		case doc.Err != nil:
			failed++
			if _, statErr := os.Stat(doc.MarkdownPath); statErr == nil {
				t.Errorf("markdown cache written for failed document %s", doc.Path)
			}
		case !doc.Skipped:
			converted++
		}
	}

	if failed != 1 || converted != 1 {
		t.Errorf("failed=%d converted=%d, want 1 and 1", failed, converted)
	}
	if !result.Graph.HasNode("Freud") {
		t.Error("surviving document was not merged into the graph")
	}
}

func TestProcessDirectoryIgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, "notes.docx")

	converter := &mockConverter{}
	client, _ := newTestClient(converter, &annotate.Annotation{})

	result, err := client.ProcessDirectory(context.Background(), dir, "graph.graphml", &memoryGraphStore{})
	if err != nil {
		t.Fatalf("ProcessDirectory() error = %v", err)
	}

	if len(result.Documents) != 0 {
		t.Errorf("got %d document results, want 0", len(result.Documents))
	}
	if len(converter.calls) != 0 {
		t.Errorf("converter called for unsupported file: %v", converter.calls)
	}
}
