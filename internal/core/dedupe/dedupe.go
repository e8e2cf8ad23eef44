package dedupe

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/llm"
)

const DefaultThreshold = 0.6

// Matcher finds the stored event closest to a new summary. Summaries are
// embedded once and kept in memory keyed by event id.
type Matcher struct {
	Embedder  llm.EmbedderClient
	Threshold float64

	mu      sync.RWMutex
	vectors map[string][]float32
}

func NewMatcher(embedder llm.EmbedderClient, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{
		Embedder:  embedder,
		Threshold: threshold,
		vectors:   make(map[string][]float32),
	}
}

// Enabled reports whether an embedder is configured. A disabled matcher
// never finds a match.
func (m *Matcher) Enabled() bool {
	return m != nil && m.Embedder != nil
}

func (m *Matcher) Embed(ctx context.Context, summary string) ([]float32, error) {
	if !m.Enabled() {
		return nil, nil
	}
	vec, err := m.Embedder.Embed(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to embed summary: %w", err)
	}
	return vec, nil
}

// Nearest returns the closest indexed event to vec, whatever its distance.
func (m *Matcher) Nearest(vec []float32) (*model.Match, bool) {
	if m == nil || len(vec) == 0 {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.vectors))
	for id := range m.vectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var best *model.Match
	for _, id := range ids {
		d := CosineDistance(vec, m.vectors[id])
		if best == nil || d < best.Distance {
			best = &model.Match{ID: id, Distance: d}
		}
	}
	return best, best != nil
}

// FindSimilar embeds summary and returns the nearest event when it is
// closer than the threshold. The embedding is returned so the caller can
// index the event it ends up storing.
func (m *Matcher) FindSimilar(ctx context.Context, summary string) (*model.Match, []float32, error) {
	vec, err := m.Embed(ctx, summary)
	if err != nil || vec == nil {
		return nil, nil, err
	}
	match, ok := m.Nearest(vec)
	if !ok || match.Distance >= m.Threshold {
		return nil, vec, nil
	}
	return match, vec, nil
}

func (m *Matcher) Index(id string, vec []float32) {
	if m == nil || len(vec) == 0 {
		return
	}
	m.mu.Lock()
	m.vectors[id] = vec
	m.mu.Unlock()
}

func (m *Matcher) Remove(ids ...string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	for _, id := range ids {
		delete(m.vectors, id)
	}
	m.mu.Unlock()
}

func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vectors)
}

// Warm embeds the summaries of already stored events. Events that fail to
// embed are logged and skipped.
func (m *Matcher) Warm(ctx context.Context, events []*model.EventRecord) int {
	if !m.Enabled() {
		return 0
	}
	n := 0
	for _, ev := range events {
		if ev.Summary == "" {
			continue
		}
		vec, err := m.Embed(ctx, ev.Summary)
		if err != nil {
			log.Printf("dedupe: skipping event %s: %v", ev.ID, err)
			continue
		}
		m.Index(ev.ID, vec)
		n++
	}
	return n
}

// CosineDistance is 1 - cos(a, b). Mismatched or zero vectors are as far
// apart as possible.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 2
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 2
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
