package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	FieldID           = "id"
	FieldEventType    = "event_type"
	FieldLocations    = "locations"
	FieldCategory     = "category"
	FieldPeopleKilled = "people_killed"
	FieldSummary      = "summary"
	FieldTimestamp    = "timestamp"
)

var knownFields = []string{
	FieldID, FieldEventType, FieldLocations, FieldCategory,
	FieldPeopleKilled, FieldSummary, FieldTimestamp,
}

type Field struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// EventRecord is one extracted event. Known fields are typed; anything else
// lands in Extra. The JSON codec keeps the document key order.
type EventRecord struct {
	ID           string
	EventType    string
	Locations    string
	Category     string
	PeopleKilled Value
	Summary      string
	Timestamp    string
	Extra        []Field

	order []string
}

func isKnown(key string) bool {
	for _, k := range knownFields {
		if k == key {
			return true
		}
	}
	return false
}

// LocationList splits Locations on commas, trims, drops empty entries and
// removes case-insensitive duplicates keeping the first spelling.
func (e *EventRecord) LocationList() []string {
	return SplitLocations(e.Locations)
}

func SplitLocations(raw string) []string {
	if raw == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		loc := strings.TrimSpace(part)
		if loc == "" {
			continue
		}
		key := strings.ToLower(loc)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, loc)
	}
	return out
}

func (e *EventRecord) hasOrder(key string) bool {
	for _, k := range e.order {
		if k == key {
			return true
		}
	}
	return false
}

func (e *EventRecord) knownValue(key string) (Value, bool) {
	present := e.order != nil && e.hasOrder(key)
	str := func(s string) (Value, bool) {
		if present || (e.order == nil && s != "") {
			return String(s), true
		}
		return Value{}, false
	}
	switch key {
	case FieldID:
		return str(e.ID)
	case FieldEventType:
		return str(e.EventType)
	case FieldLocations:
		return str(e.Locations)
	case FieldCategory:
		return str(e.Category)
	case FieldSummary:
		return str(e.Summary)
	case FieldTimestamp:
		return str(e.Timestamp)
	case FieldPeopleKilled:
		if e.PeopleKilled.IsAbsent() {
			return Value{}, false
		}
		return e.PeopleKilled, true
	}
	return Value{}, false
}

// Get returns the value stored under key.
func (e *EventRecord) Get(key string) (Value, bool) {
	if isKnown(key) {
		return e.knownValue(key)
	}
	for _, f := range e.Extra {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set stores a value under key, converting it for typed fields.
func (e *EventRecord) Set(key string, v Value) {
	switch key {
	case FieldID:
		e.ID = scalarText(v)
	case FieldEventType:
		e.EventType = scalarText(v)
	case FieldLocations:
		e.Locations = locationsText(v)
	case FieldCategory:
		e.Category = scalarText(v)
	case FieldSummary:
		e.Summary = scalarText(v)
	case FieldTimestamp:
		e.Timestamp = scalarText(v)
	case FieldPeopleKilled:
		e.PeopleKilled = v
	default:
		replaced := false
		for i := range e.Extra {
			if e.Extra[i].Key == key {
				e.Extra[i].Value = v
				replaced = true
				break
			}
		}
		if !replaced {
			e.Extra = append(e.Extra, Field{Key: key, Value: v})
		}
	}
	if e.order != nil && !e.hasOrder(key) {
		e.order = append(e.order, key)
	}
}

// SetID assigns the record id and makes sure it is the first key emitted.
func (e *EventRecord) SetID(id string) {
	e.ID = id
	if e.order != nil && !e.hasOrder(FieldID) {
		e.order = append([]string{FieldID}, e.order...)
	}
}

func scalarText(v Value) string {
	if v.Kind == KindNull || v.Kind == KindAbsent {
		return ""
	}
	return v.Text()
}

// locationsText accepts the comma-separated form and, since extractors
// sometimes answer with a list, a JSON array of names.
func locationsText(v Value) string {
	if v.Kind != KindArray {
		return scalarText(v)
	}
	var items []interface{}
	if err := json.Unmarshal(v.Raw, &items); err != nil {
		return string(v.Raw)
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		iv, err := ValueOf(it)
		if err != nil {
			continue
		}
		parts = append(parts, iv.Text())
	}
	return strings.Join(parts, ", ")
}

// Fields lists every present field in document order. Records built in code
// list known non-empty fields first, then Extra.
func (e *EventRecord) Fields() []Field {
	var fields []Field
	if e.order != nil {
		for _, key := range e.order {
			if v, ok := e.Get(key); ok {
				fields = append(fields, Field{Key: key, Value: v})
			}
		}
		return fields
	}
	for _, key := range knownFields {
		if v, ok := e.knownValue(key); ok {
			fields = append(fields, Field{Key: key, Value: v})
		}
	}
	return append(fields, e.Extra...)
}

// Apply copies every field of patch except id over the record.
func (e *EventRecord) Apply(patch *EventRecord) {
	for _, f := range patch.Fields() {
		if f.Key == FieldID {
			continue
		}
		e.Set(f.Key, f.Value)
	}
}

func (e *EventRecord) Clone() *EventRecord {
	c := *e
	c.Extra = append([]Field(nil), e.Extra...)
	if e.order != nil {
		c.order = append([]string{}, e.order...)
	}
	return &c
}

func (e EventRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	fields := e.Fields()
	if e.ID != "" && (e.order == nil || !e.hasOrder(FieldID)) {
		fields = append([]Field{{Key: FieldID, Value: String(e.ID)}}, fields...)
	}
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *EventRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("event record must be a JSON object")
	}

	rec := EventRecord{order: []string{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", key, err)
		}
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", key, err)
		}
		rec.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*e = rec
	return nil
}

// NewEvent builds a record from loosely typed fields, sorted the way the
// caller listed them in keys. Keys missing from values are skipped.
func NewEvent(keys []string, values map[string]interface{}) (*EventRecord, error) {
	rec := &EventRecord{order: []string{}}
	for _, k := range keys {
		x, ok := values[k]
		if !ok {
			continue
		}
		v, err := ValueOf(x)
		if err != nil {
			return nil, fmt.Errorf("failed to convert field %q: %w", k, err)
		}
		rec.Set(k, v)
	}
	return rec, nil
}
