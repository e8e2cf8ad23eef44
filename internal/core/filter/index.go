package filter

import (
	"sort"
	"strings"

	"github.com/agenthands/eventlens/internal/core/model"
)

type Facet string

const (
	FacetEventTypes Facet = "eventTypes"
	FacetLocations  Facet = "locations"
	FacetCategories Facet = "categories"
)

var Facets = []Facet{FacetEventTypes, FacetLocations, FacetCategories}

// Index holds the facet values present in one event set.
type Index struct {
	EventTypes []string `json:"eventTypes"`
	Locations  []string `json:"locations"`
	Categories []string `json:"categories"`
}

func NewIndex(events []*model.EventRecord) *Index {
	types := make(map[string]bool)
	locs := make(map[string]bool)
	cats := make(map[string]bool)
	for _, e := range events {
		if e.EventType != "" {
			types[e.EventType] = true
		}
		for _, l := range e.LocationList() {
			locs[l] = true
		}
		if e.Category != "" {
			cats[e.Category] = true
		}
	}
	return &Index{
		EventTypes: sortedKeys(types),
		Locations:  sortedKeys(locs),
		Categories: sortedKeys(cats),
	}
}

func (i *Index) Values(f Facet) []string {
	switch f {
	case FacetEventTypes:
		return i.EventTypes
	case FacetLocations:
		return i.Locations
	case FacetCategories:
		return i.Categories
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Selection is the mutable filter state. An empty set leaves its facet
// inactive.
type Selection struct {
	sets  map[Facet]map[string]bool
	Query string
}

func NewSelection() *Selection {
	s := &Selection{}
	s.ClearAll()
	return s
}

// Toggle adds value to the facet's set, or removes it when already chosen.
func (s *Selection) Toggle(f Facet, value string) {
	set := s.set(f)
	if set[value] {
		delete(set, value)
		return
	}
	set[value] = true
}

// Select adds values to the facet's set.
func (s *Selection) Select(f Facet, values ...string) {
	set := s.set(f)
	for _, v := range values {
		set[v] = true
	}
}

func (s *Selection) set(f Facet) map[string]bool {
	if s.sets == nil {
		s.sets = make(map[Facet]map[string]bool)
	}
	set, ok := s.sets[f]
	if !ok {
		set = make(map[string]bool)
		s.sets[f] = set
	}
	return set
}

func (s *Selection) Selected(f Facet) []string {
	return sortedKeys(s.sets[f])
}

func (s *Selection) Has(f Facet, value string) bool {
	return s.sets[f][value]
}

// ClearAll empties every facet and the query.
func (s *Selection) ClearAll() {
	s.sets = map[Facet]map[string]bool{
		FacetEventTypes: {},
		FacetLocations:  {},
		FacetCategories: {},
	}
	s.Query = ""
}

// ActiveCount is the number of chosen facet values, plus one for a query.
func (s *Selection) ActiveCount() int {
	n := 0
	for _, set := range s.sets {
		n += len(set)
	}
	if s.Query != "" {
		n++
	}
	return n
}

// Matches reports whether e passes every active facet and, when a query is
// set, contains it in event_type, locations or category.
func (s *Selection) Matches(e *model.EventRecord) bool {
	if types := s.sets[FacetEventTypes]; len(types) > 0 && !types[e.EventType] {
		return false
	}
	if locs := s.sets[FacetLocations]; len(locs) > 0 {
		hit := false
		for _, l := range e.LocationList() {
			if locs[l] {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if cats := s.sets[FacetCategories]; len(cats) > 0 && !cats[e.Category] {
		return false
	}
	if s.Query != "" {
		q := strings.ToLower(s.Query)
		if !strings.Contains(strings.ToLower(e.EventType), q) &&
			!strings.Contains(strings.ToLower(e.Locations), q) &&
			!strings.Contains(strings.ToLower(e.Category), q) {
			return false
		}
	}
	return true
}

// Apply returns the matching events in their original order.
func (s *Selection) Apply(events []*model.EventRecord) []*model.EventRecord {
	out := make([]*model.EventRecord, 0, len(events))
	for _, e := range events {
		if s.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
