package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cartograph-ai/cartograph/internal/util"
	"github.com/cartograph-ai/cartograph/pkg/ai"
	oai "github.com/cartograph-ai/cartograph/pkg/ai/ollama"
	gai "github.com/cartograph-ai/cartograph/pkg/ai/openai"
	"github.com/cartograph-ai/cartograph/pkg/annotate"
	ahttp "github.com/cartograph-ai/cartograph/pkg/annotate/http"
	allm "github.com/cartograph-ai/cartograph/pkg/annotate/llm"
	"github.com/cartograph-ai/cartograph/pkg/graph"
	"github.com/cartograph-ai/cartograph/pkg/loader"
	"github.com/cartograph-ai/cartograph/pkg/loader/pdf"
	"github.com/cartograph-ai/cartograph/pkg/loader/web"
	"github.com/cartograph-ai/cartograph/pkg/logger"
	"github.com/cartograph-ai/cartograph/pkg/logger/console"
	"github.com/cartograph-ai/cartograph/pkg/query"
	"github.com/cartograph-ai/cartograph/pkg/store"
)

const keyPlaceholder = "VOTRE_CLE_API_ICI"

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "convert":
		runConvert(ctx, os.Args[2:])
	case "query":
		runQuery(ctx, os.Args[2:])
	case "list-models":
		runListModels(ctx, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: cartograph <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  convert      convert new documents to markdown and update the knowledge graph")
	fmt.Fprintln(os.Stderr, "  query        answer a question grounded in the graph or the markdown corpus")
	fmt.Fprintln(os.Stderr, "  list-models  list the models available at the generation provider")
}

// newGenerationClient builds the configured generation provider. The
// api-key flag takes precedence over the AI_CHAT_KEY environment value;
// a placeholder key halts before any work begins.
func newGenerationClient(flagKey string) ai.GenerationClient {
	apiKey := flagKey
	if apiKey == "" {
		apiKey = util.GetEnv("AI_CHAT_KEY")
	}
	if apiKey == keyPlaceholder {
		logger.Fatal("API key is still the placeholder value, set a real key in .env or pass -api-key")
	}

	adapter := util.GetEnv("AI_ADAPTER")
	switch adapter {
	case "ollama":
		client, err := oai.NewGenerationOllamaClient(oai.NewGenerationOllamaClientParams{
			Model:   util.GetEnv("AI_CHAT_MODEL"),
			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  apiKey,
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		return client
	default:
		if apiKey == "" {
			logger.Fatal("No API key configured, set AI_CHAT_KEY in .env or pass -api-key")
		}
		return gai.NewGenerationOpenAIClient(gai.NewGenerationOpenAIClientParams{
			Model:   util.GetEnv("AI_CHAT_MODEL"),
			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  apiKey,
		})
	}
}

// newAnnotator selects the annotation provider: the annotation server
// when ANNOTATE_URL is set, otherwise schema-constrained generation.
func newAnnotator(apiKey string) annotate.Annotator {
	annotateURL := util.GetEnv("ANNOTATE_URL")
	if annotateURL != "" {
		annotator, err := ahttp.NewHTTPAnnotator(ahttp.NewHTTPAnnotatorParams{
			BaseURL: annotateURL,
			ApiKey:  util.GetEnv("ANNOTATE_KEY"),
		})
		if err != nil {
			logger.Fatal("Could not create annotation client", "err", err)
		}
		return annotator
	}

	return allm.NewLLMAnnotator(newGenerationClient(apiKey))
}

func runConvert(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	docsDir := fs.String("docs", "documents", "directory containing the source documents")
	storePath := fs.String("store", "graph.graphml", "path of the persisted GraphML store")
	apiKey := fs.String("api-key", "", "generation API key (overrides AI_CHAT_KEY)")
	fs.Parse(args)

	if _, err := os.Stat(*docsDir); err != nil {
		logger.Fatal("Document directory not found", "docs", *docsDir, "err", err)
	}

	client := graph.NewGraphClient(graph.NewGraphClientParams{
		Annotator: newAnnotator(*apiKey),
		Converters: loader.Registry{
			".pdf":  pdf.NewPDFConverter(),
			".html": web.NewHTMLConverter(),
		},
	})

	result, err := client.ProcessDirectory(ctx, *docsDir, *storePath, store.NewFileGraphStore())
	if err != nil {
		logger.Fatal("Conversion run failed", "err", err)
	}

	var converted, skipped, failed int
	for _, doc := range result.Documents {
		switch {
		case doc.Skipped:
			skipped++
		case doc.Err != nil:
			failed++
		default:
			converted++
		}
	}

	logger.Info(
		"Conversion run finished",
		"converted", converted,
		"skipped", skipped,
		"failed", failed,
		"nodes", result.Graph.NodeCount(),
		"edges", result.Graph.EdgeCount(),
	)
}

func runQuery(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	question := fs.String("q", "", "question to answer")
	graphPath := fs.String("graph", "graph.graphml", "path of the persisted GraphML store")
	useMarkdown := fs.Bool("md", false, "use the concatenated markdown corpus instead of the graph")
	docsDir := fs.String("docs", "documents", "markdown corpus directory (with -md)")
	model := fs.String("model", "", "generation model (overrides AI_CHAT_MODEL)")
	apiKey := fs.String("api-key", "", "generation API key (overrides AI_CHAT_KEY)")
	fs.Parse(args)

	if strings.TrimSpace(*question) == "" {
		logger.Fatal("No question given, pass -q")
	}

	queryClient := query.NewQueryClient(query.NewQueryClientParams{
		AIClient: newGenerationClient(*apiKey),
		Model:    *model,
	})

	var (
		result *query.QueryResult
		err    error
	)

	if *useMarkdown {
		result, err = queryClient.QueryMarkdown(ctx, *docsDir, *question)
	} else {
		storeClient := store.NewFileGraphStore()
		g, loadErr := storeClient.Load(ctx, *graphPath)
		if loadErr != nil {
			logger.Fatal("Could not load graph store", "graph", *graphPath, "err", loadErr)
		}
		if g == nil {
			logger.Fatal("Graph store not found, run convert first", "graph", *graphPath)
		}
		result, err = queryClient.Query(ctx, g, *question)
	}

	if errors.Is(err, query.ErrNoContext) {
		fmt.Println("Aucune information pertinente trouvée.")
		return
	}
	if err != nil {
		logger.Fatal("Query failed", "err", err)
	}

	rule := strings.Repeat("=", 80)
	thinRule := strings.Repeat("-", 80)

	fmt.Println("\n" + rule)
	fmt.Println("RÉPONSE:")
	fmt.Println(rule)
	fmt.Println(result.Answer)
	fmt.Println(rule)

	fmt.Println("\nContexte utilisé:")
	fmt.Println(thinRule)
	fmt.Println(result.Context)
	fmt.Println(thinRule)
}

func runListModels(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list-models", flag.ExitOnError)
	apiKey := fs.String("api-key", "", "generation API key (overrides AI_CHAT_KEY)")
	fs.Parse(args)

	client := newGenerationClient(*apiKey)

	models, err := client.ListModels(ctx)
	if err != nil {
		logger.Fatal("Could not list models", "err", err)
	}

	for _, model := range models {
		fmt.Println(model)
	}
}
