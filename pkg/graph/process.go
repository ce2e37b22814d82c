package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cartograph-ai/cartograph/pkg/common"
	"github.com/cartograph-ai/cartograph/pkg/loader"
	"github.com/cartograph-ai/cartograph/pkg/logger"
	"github.com/cartograph-ai/cartograph/pkg/store"
)

// DocumentResult records the outcome of one document in a conversion
// batch. Exactly one of Skipped, Err or neither is meaningful: a
// skipped document had an up-to-date markdown cache; a failed document
// was excluded from the batch but did not stop it.
type DocumentResult struct {
	Path         string
	MarkdownPath string
	Skipped      bool
	Err          error
}

// ProcessResult summarizes one conversion run: the per-document
// outcomes and the persisted graph after merging.
type ProcessResult struct {
	Documents []DocumentResult
	Graph     *common.KnowledgeGraph
}

// ProcessDirectory runs the conversion pipeline over every supported
// document in docsDir, strictly one document at a time.
//
// Documents whose markdown cache already exists are skipped entirely:
// no conversion and no extraction. New documents are converted, their
// markdown cache written, and their text extracted. A conversion or
// annotation failure for one document is logged and recorded; the
// batch continues, and caches already written stay written.
//
// The freshly extracted batch is folded into one graph and merged
// append-only into the persisted store at storePath (a missing store
// initializes empty). Any store I/O failure aborts the run.
func (g *GraphClient) ProcessDirectory(
	ctx context.Context,
	docsDir string,
	storePath string,
	storeClient store.GraphStorage,
) (*ProcessResult, error) {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	result := &ProcessResult{}
	var extractions []*DocumentExtraction

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(docsDir, entry.Name())
		converter := g.converters.For(path)
		if converter == nil {
			continue
		}

		docResult := DocumentResult{
			Path:         path,
			MarkdownPath: loader.MarkdownPath(path),
		}

		if loader.HasMarkdownCache(path) {
			logger.Info("[Graph] Markdown cache found, skipping", "document", entry.Name())
			docResult.Skipped = true
			result.Documents = append(result.Documents, docResult)
			continue
		}

		logger.Info("[Graph] Converting", "document", entry.Name())

		text, err := converter.Convert(ctx, path)
		if err != nil {
			logger.Error("[Graph] Conversion failed, skipping document", "document", entry.Name(), "err", err)
			docResult.Err = fmt.Errorf("conversion failed: %w", err)
			result.Documents = append(result.Documents, docResult)
			continue
		}

		if err := loader.WriteMarkdownCache(path, text); err != nil {
			logger.Error("[Graph] Failed to write markdown cache, skipping document", "document", entry.Name(), "err", err)
			docResult.Err = fmt.Errorf("failed to write markdown cache: %w", err)
			result.Documents = append(result.Documents, docResult)
			continue
		}

		extraction, err := g.ExtractDocument(ctx, entry.Name(), text)
		if err != nil {
			// The markdown cache stays written: conversion and
			// graph-merge are independent failure domains.
			logger.Error("[Graph] Extraction failed, skipping document", "document", entry.Name(), "err", err)
			docResult.Err = err
			result.Documents = append(result.Documents, docResult)
			continue
		}

		logger.Info(
			"[Graph] Extracted",
			"document", entry.Name(),
			"entities", len(extraction.Entities),
			"relations", len(extraction.Relations),
		)

		extractions = append(extractions, extraction)
		result.Documents = append(result.Documents, docResult)
	}

	batch := BuildGraph(extractions)

	existing, err := storeClient.Load(ctx, storePath)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = common.NewKnowledgeGraph()
	}

	merged := Merge(existing, batch)
	if err := storeClient.Save(ctx, merged, storePath); err != nil {
		return nil, err
	}

	logger.Info(
		"[Graph] Store updated",
		"store", storePath,
		"nodes", merged.NodeCount(),
		"edges", merged.EdgeCount(),
	)

	result.Graph = merged
	return result, nil
}
