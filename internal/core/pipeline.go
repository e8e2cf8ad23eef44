package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/agenthands/eventlens/internal/core/dedupe"
	"github.com/agenthands/eventlens/internal/core/extraction"
	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/summary"
	"github.com/agenthands/eventlens/internal/store"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable means ingestion is not configured (no LLM).
	ErrUnavailable = errors.New("ingestion unavailable")
)

const NonInformativeMessage = "This tweet doesn't contain any disaster related information."

// Publisher is told about every successful mutation.
type Publisher interface {
	Refresh(source string) int
}

// SubmitOutcome is the result of one tweet submission. Result is nil when
// the tweet was not informative.
type SubmitOutcome struct {
	Informative bool                `json:"informative"`
	Message     string              `json:"message"`
	Category    string              `json:"category,omitempty"`
	Result      *model.SubmitResult `json:"result,omitempty"`
	Event       *model.EventRecord  `json:"event,omitempty"`
}

// Pipeline turns tweets into stored events and applies admin mutations.
// Mutations are serialized so a match followed by an update cannot race
// another write.
type Pipeline struct {
	Store      store.EventStore
	Classifier *extraction.Classifier
	Extractor  *extraction.Extractor
	Matcher    *dedupe.Matcher
	Summarizer *summary.Summarizer
	Bus        Publisher

	NewID func() string
	Now   func() time.Time

	mu sync.Mutex
}

func NewPipeline(st store.EventStore, classifier *extraction.Classifier, extractor *extraction.Extractor, matcher *dedupe.Matcher, summarizer *summary.Summarizer, bus Publisher) *Pipeline {
	return &Pipeline{
		Store:      st,
		Classifier: classifier,
		Extractor:  extractor,
		Matcher:    matcher,
		Summarizer: summarizer,
		Bus:        bus,
		NewID:      func() string { return uuid.New().String() },
		Now:        time.Now,
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (p *Pipeline) refresh(source string) {
	if p.Bus != nil {
		p.Bus.Refresh(source)
	}
}

// Warm indexes the summaries of stored events for similarity matching.
func (p *Pipeline) Warm(ctx context.Context) error {
	if !p.Matcher.Enabled() {
		return nil
	}
	events, err := p.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	n := p.Matcher.Warm(ctx, events)
	log.Printf("pipeline: indexed %d of %d event summaries", n, len(events))
	return nil
}

// SubmitTweet classifies the tweet, extracts an event from it and either
// updates the most similar stored event or adds a new one.
func (p *Pipeline) SubmitTweet(ctx context.Context, text string) (*SubmitOutcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("tweet text is required")
	}
	if p.Classifier == nil || p.Extractor == nil {
		return nil, ErrUnavailable
	}

	informative, err := p.Classifier.IsInformative(ctx, text)
	if err != nil {
		return nil, err
	}
	if !informative {
		return &SubmitOutcome{Message: NonInformativeMessage}, nil
	}

	category, err := p.Classifier.Humanitarian(ctx, text)
	if err != nil {
		return nil, err
	}

	ev, err := p.Extractor.Extract(ctx, model.ExtractionContext{
		Tweet: extraction.WithCategory(text, category),
	})
	if err != nil {
		return nil, err
	}
	if ev.Category == "" {
		ev.Set(model.FieldCategory, model.String(category))
	}
	if ev.Timestamp == "" {
		ev.Set(model.FieldTimestamp, model.String(p.Now().UTC().Format(time.RFC3339)))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	match, vec, err := p.Matcher.FindSimilar(ctx, ev.Summary)
	if err != nil {
		// matching is best effort; the event is still stored
		log.Printf("pipeline: similarity search failed: %v", err)
	}

	result := &model.SubmitResult{}
	if match != nil {
		ev.SetID(match.ID)
		err = p.Store.Replace(ctx, ev)
		if errors.Is(err, store.ErrNotFound) {
			// index is stale, the match was deleted meanwhile
			p.Matcher.Remove(match.ID)
			match = nil
		} else if err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		} else {
			d := match.Distance
			result.Action = model.ActionUpdated
			result.ID = match.ID
			result.Distance = &d
		}
	}
	if match == nil {
		ev.SetID(p.NewID())
		if err := p.Store.Add(ctx, ev); err != nil {
			return nil, fmt.Errorf("failed to add event: %w", err)
		}
		result.Action = model.ActionAdded
		result.ID = ev.ID
	}
	p.Matcher.Index(ev.ID, vec)

	log.Printf("pipeline: tweet %s event %s (category %s)", result.Action, result.ID, category)
	p.refresh("submitTweet")

	return &SubmitOutcome{
		Informative: true,
		Message:     fmt.Sprintf("Event %s successfully", result.Action),
		Category:    category,
		Result:      result,
		Event:       ev,
	}, nil
}

// Update merges the fields of patch over the stored event. The id never
// changes.
func (p *Pipeline) Update(ctx context.Context, id string, patch *model.EventRecord) (*model.EventRecord, error) {
	if id == "" {
		return nil, invalid("event id is required")
	}
	if patch == nil {
		return nil, invalid("update data is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ev, err := p.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := ev.Summary
	ev.Apply(patch)
	if err := p.Store.Replace(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if ev.Summary != before {
		p.reindex(ctx, ev)
	}

	p.refresh("update")
	return ev, nil
}

func (p *Pipeline) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalid("event id is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.Store.Delete(ctx, id); err != nil {
		return err
	}
	p.Matcher.Remove(id)

	p.refresh("delete")
	return nil
}

// Merge folds the listed events into the first one. Locations are united,
// the summary comes from mergeData or is merged from all summaries, and
// the other events are deleted.
func (p *Pipeline) Merge(ctx context.Context, ids []string, mergeData *model.EventRecord) (*model.EventRecord, error) {
	ids = uniqueIDs(ids)
	if len(ids) < 2 {
		return nil, invalid("at least two event ids are required to merge")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	events, err := p.getAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	merged := events[0].Clone()
	var locations, summaries []string
	for _, ev := range events {
		locations = append(locations, ev.LocationList()...)
		summaries = append(summaries, ev.Summary)
		for _, f := range ev.Fields() {
			if _, ok := merged.Get(f.Key); !ok {
				merged.Set(f.Key, f.Value)
			}
		}
	}
	if union := model.SplitLocations(strings.Join(locations, ",")); len(union) > 0 {
		merged.Set(model.FieldLocations, model.String(strings.Join(union, ", ")))
	}

	var mergedSummary string
	if mergeData != nil && strings.TrimSpace(mergeData.Summary) != "" {
		mergedSummary = mergeData.Summary
	} else {
		mergedSummary = p.mergeSummaries(ctx, summaries)
	}
	if mergeData != nil {
		merged.Apply(mergeData)
	}
	merged.Set(model.FieldSummary, model.String(mergedSummary))

	if err := p.Store.Replace(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to save merged event: %w", err)
	}
	if err := p.Store.Delete(ctx, ids[1:]...); err != nil {
		return nil, fmt.Errorf("failed to remove merged events: %w", err)
	}
	p.Matcher.Remove(ids[1:]...)
	p.reindex(ctx, merged)

	log.Printf("pipeline: merged %d events into %s", len(ids), merged.ID)
	p.refresh("merge")
	return merged, nil
}

// BulkDelete removes every listed event. Nothing is deleted unless all ids
// exist.
func (p *Pipeline) BulkDelete(ctx context.Context, ids []string) (int, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, invalid("no event ids given")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.getAll(ctx, ids); err != nil {
		return 0, err
	}
	if err := p.Store.Delete(ctx, ids...); err != nil {
		return 0, err
	}
	p.Matcher.Remove(ids...)

	p.refresh("bulkDelete")
	return len(ids), nil
}

// getAll fetches every id, collecting all lookup failures.
func (p *Pipeline) getAll(ctx context.Context, ids []string) ([]*model.EventRecord, error) {
	var result *multierror.Error
	events := make([]*model.EventRecord, 0, len(ids))
	for _, id := range ids {
		ev, err := p.Store.Get(ctx, id)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		events = append(events, ev)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return events, nil
}

func (p *Pipeline) mergeSummaries(ctx context.Context, summaries []string) string {
	if p.Summarizer == nil {
		return summary.JoinSummaries(summaries)
	}
	merged, err := p.Summarizer.MergeSummaries(ctx, summaries)
	if err != nil || merged == "" {
		log.Printf("pipeline: summary merge failed, joining instead: %v", err)
		return summary.JoinSummaries(summaries)
	}
	return merged
}

func (p *Pipeline) reindex(ctx context.Context, ev *model.EventRecord) {
	if !p.Matcher.Enabled() {
		return
	}
	vec, err := p.Matcher.Embed(ctx, ev.Summary)
	if err != nil {
		log.Printf("pipeline: failed to reindex event %s: %v", ev.ID, err)
		p.Matcher.Remove(ev.ID)
		return
	}
	p.Matcher.Index(ev.ID, vec)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
