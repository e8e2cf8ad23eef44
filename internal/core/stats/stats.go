package stats

import (
	"math"
	"time"

	"github.com/agenthands/eventlens/internal/core/community"
	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/projection"
)

const RecentWindow = 7 * 24 * time.Hour

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the layouts extractors tend to produce.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type Calculator struct {
	Detector community.Detector
	Layout   projection.Layout
	Now      func() time.Time
}

func NewCalculator(detector community.Detector, layout projection.Layout) *Calculator {
	return &Calculator{
		Detector: detector,
		Layout:   layout,
		Now:      time.Now,
	}
}

// Compute aggregates the dashboard counters. Events without a usable
// timestamp count as recent.
func (c *Calculator) Compute(events []*model.EventRecord) (*model.Stats, error) {
	types := make(map[string]bool)
	locs := make(map[string]bool)
	cats := make(map[string]bool)
	cutoff := c.Now().Add(-RecentWindow)

	s := &model.Stats{TotalEvents: len(events)}
	for _, e := range events {
		types[e.EventType] = true
		cats[e.Category] = true
		for _, l := range e.LocationList() {
			locs[l] = true
		}

		ts, ok := ParseTimestamp(e.Timestamp)
		if !ok || ts.After(cutoff) {
			s.Recent++
		}

		switch Severity(e) {
		case model.SeverityHigh:
			s.Severity.High++
		case model.SeverityMedium:
			s.Severity.Medium++
		default:
			s.Severity.Low++
		}
	}
	s.EventTypes = len(types)
	s.Categories = len(cats)
	s.Locations = len(locs)
	s.AvgPerDay = int(math.Round(float64(s.Recent) / 7))

	if c.Detector != nil {
		clusters, err := community.EventClusters(c.Detector, projection.Global(events, c.Layout))
		if err != nil {
			return nil, err
		}
		s.Clusters = clusters
	}
	return s, nil
}
