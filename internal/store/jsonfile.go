package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-multierror"

	"github.com/agenthands/eventlens/internal/core/model"
)

// JSONFileStore keeps events in a single JSON array on disk, the
// events.json layout. The whole file is rewritten on every mutation.
type JSONFileStore struct {
	Path string
	// OnExternalChange runs after the file was changed by another process
	// and reloaded.
	OnExternalChange func()

	mu        sync.RWMutex
	events    []*model.EventRecord
	lastWrite []byte

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewJSONFileStore loads path, creating it with an empty array when it does
// not exist.
func NewJSONFileStore(path string) (*JSONFileStore, error) {
	s := &JSONFileStore{Path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.save(nil); err != nil {
			return nil, err
		}
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONFileStore) read() ([]*model.EventRecord, []byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read events file '%s': %w", s.Path, err)
	}
	var events []*model.EventRecord
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, nil, fmt.Errorf("failed to parse events file '%s': %w", s.Path, err)
		}
	}
	return events, data, nil
}

func (s *JSONFileStore) reload() error {
	events, data, err := s.read()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.events = events
	s.lastWrite = data
	s.mu.Unlock()
	return nil
}

// save writes events through a temp file and rename. Callers hold mu.
func (s *JSONFileStore) save(events []*model.EventRecord) error {
	if events == nil {
		events = []*model.EventRecord{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write events: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write events: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace events file: %w", err)
	}
	s.lastWrite = data
	return nil
}

func (s *JSONFileStore) indexOf(id string) int {
	for i, ev := range s.events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONFileStore) List(ctx context.Context) ([]*model.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.events), nil
}

func (s *JSONFileStore) Get(ctx context.Context, id string) (*model.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.events[i].Clone(), nil
	}
	return nil, notFound(id)
}

func (s *JSONFileStore) Add(ctx context.Context, ev *model.EventRecord) error {
	if ev.ID == "" {
		return errors.New("event id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(ev.ID) >= 0 {
		return fmt.Errorf("event %s already exists", ev.ID)
	}
	next := append(append([]*model.EventRecord(nil), s.events...), ev.Clone())
	if err := s.save(next); err != nil {
		return err
	}
	s.events = next
	return nil
}

func (s *JSONFileStore) Replace(ctx context.Context, ev *model.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(ev.ID)
	if i < 0 {
		return notFound(ev.ID)
	}
	next := append([]*model.EventRecord(nil), s.events...)
	next[i] = ev.Clone()
	if err := s.save(next); err != nil {
		return err
	}
	s.events = next
	return nil
}

func (s *JSONFileStore) Delete(ctx context.Context, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	next := make([]*model.EventRecord, 0, len(s.events))
	for _, ev := range s.events {
		if drop[ev.ID] {
			delete(drop, ev.ID)
			continue
		}
		next = append(next, ev)
	}

	var result *multierror.Error
	if len(next) != len(s.events) {
		if err := s.save(next); err != nil {
			return err
		}
		s.events = next
	}
	for _, id := range ids {
		if drop[id] {
			result = multierror.Append(result, notFound(id))
			delete(drop, id)
		}
	}
	return result.ErrorOrNil()
}

// Watch reloads the store when the file is changed by someone else. It
// returns once the watcher is registered.
func (s *JSONFileStore) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// the directory is watched since saves replace the file by rename
	if err := watcher.Add(filepath.Dir(s.Path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch '%s': %w", s.Path, err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.watchLoop()
	log.Printf("store: watching %s", s.Path)
	return nil
}

func (s *JSONFileStore) watchLoop() {
	defer s.wg.Done()
	target := filepath.Clean(s.Path)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			s.handleChange()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("store: watch error: %v", err)
		case <-s.done:
			return
		}
	}
}

func (s *JSONFileStore) handleChange() {
	events, data, err := s.read()
	if err != nil {
		// partial writes show up as parse errors; the next event retries
		log.Printf("store: reload skipped: %v", err)
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return
	}

	s.mu.Lock()
	if bytes.Equal(data, s.lastWrite) {
		s.mu.Unlock()
		return
	}
	s.events = events
	s.lastWrite = data
	s.mu.Unlock()

	log.Printf("store: %s changed on disk, %d events loaded", s.Path, len(events))
	if s.OnExternalChange != nil {
		s.OnExternalChange()
	}
}

func (s *JSONFileStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.wg.Wait()
	s.watcher = nil
	return err
}
