package server

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/eventlens/internal/bus"
	"github.com/agenthands/eventlens/internal/config"
	"github.com/agenthands/eventlens/internal/core"
	"github.com/agenthands/eventlens/internal/core/community"
	"github.com/agenthands/eventlens/internal/core/dedupe"
	"github.com/agenthands/eventlens/internal/core/extraction"
	"github.com/agenthands/eventlens/internal/core/stats"
	"github.com/agenthands/eventlens/internal/core/summary"
	"github.com/agenthands/eventlens/internal/driver"
	"github.com/agenthands/eventlens/internal/llm"
	"github.com/agenthands/eventlens/internal/store"
)

// OpenStore opens the configured event store. JSON stores that watch their
// file announce external edits on b.
func OpenStore(ctx context.Context, cfg *config.Config, b *bus.Bus) (store.EventStore, error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case "", "json":
		st, err := store.NewJSONFileStore(cfg.Store.JSONPath)
		if err != nil {
			return nil, err
		}
		if cfg.Store.Watch {
			st.OnExternalChange = func() { b.Refresh("file") }
			if err := st.Watch(); err != nil {
				log.Printf("store: file watch disabled: %v", err)
			}
		}
		return st, nil

	case "memgraph":
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, cfg.Memgraph.Database)
		if err != nil {
			return nil, err
		}
		st, err := store.NewMemgraphStore(ctx, d)
		if err != nil {
			d.Close(ctx)
			return nil, err
		}
		return st, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// New wires the whole service from cfg. The returned cleanup closes the
// store and the bus.
func New(ctx context.Context, cfg *config.Config) (*Server, *bus.Bus, func(), error) {
	b := bus.New()

	st, err := OpenStore(ctx, cfg, b)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	gen, emb, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	var (
		classifier *extraction.Classifier
		extractor  *extraction.Extractor
		summarizer *summary.Summarizer
		reranker   llm.RerankerClient
		matcher    *dedupe.Matcher
	)
	if gen != nil {
		classifier = extraction.NewClassifier(gen, cfg.Extraction)
		extractor = extraction.NewExtractor(gen, cfg.Extraction)
		summarizer = summary.NewSummarizer(gen, cfg.Summary)
		reranker = llm.NewSimpleLLMReranker(gen)
	} else {
		log.Println("server: no llm provider configured, tweet submission disabled")
	}
	if emb != nil {
		matcher = dedupe.NewMatcher(emb, cfg.Dedupe.SimilarityThreshold)
	}

	pipeline := core.NewPipeline(st, classifier, extractor, matcher, summarizer, b)
	if err := pipeline.Warm(ctx); err != nil {
		log.Printf("server: similarity index not warmed: %v", err)
	}

	auth, err := NewAuth(cfg.Admin, cfg.TokenTTL())
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}

	layout := cfg.ProjectionLayout()
	calc := stats.NewCalculator(community.NewDetector(cfg.Viewport.ClusterAlgorithm), layout)

	srv := NewServer(st, pipeline, calc, auth, layout, cfg.ViewportOptions())
	srv.Reranker = reranker
	srv.CORSOrigin = SplitOrigins(cfg.Server.CORSOrigins)

	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Printf("server: failed to close store: %v", err)
		}
		b.Close()
	}
	return srv, b, cleanup, nil
}
