// Package file provides the persona registry. Built-in personas are
// compiled into the binary; an optional TOML file layers user-defined
// personas on top and can be hot-reloaded when edited.
package file

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driven"
	"github.com/scenechat/scenechat/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.PersonaStore = (*Store)(nil)

// personaFile is the on-disk TOML shape:
//
//	[[personas]]
//	name = "Sherlock Holmes"
//	instruction = "You are Sherlock Holmes..."
type personaFile struct {
	Personas []struct {
		Name        string `toml:"name"`
		Instruction string `toml:"instruction"`
	} `toml:"personas"`
}

// Store is the persona registry backed by built-in defaults plus an
// optional user file. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	path    string // empty means defaults only
	table   map[string]string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore creates the registry. path may be empty (built-in personas
// only); a named but missing file is not an error, since the table
// always has the defaults to fall back on.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Resolve returns the instruction for the named persona, or a
// synthesised generic instruction when the name is unknown.
func (s *Store) Resolve(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if instruction, ok := s.table[name]; ok {
		return instruction
	}
	return domain.GenericInstruction(name)
}

// Personas lists all registered personas, sorted by name.
func (s *Store) Personas() []domain.Persona {
	s.mu.RLock()
	defer s.mu.RUnlock()

	personas := make([]domain.Persona, 0, len(s.table))
	for name, instruction := range s.table {
		personas = append(personas, domain.Persona{Name: name, Instruction: instruction})
	}
	sort.Slice(personas, func(i, j int) bool {
		return personas[i].Name < personas[j].Name
	})
	return personas
}

// Reload rebuilds the table from the defaults and the user file.
func (s *Store) Reload() error {
	table := make(map[string]string, len(defaultPersonas))
	for _, p := range defaultPersonas {
		table[p.Name] = p.Instruction
	}

	if s.path != "" {
		data, err := os.ReadFile(s.path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults only until the file appears.
		case err != nil:
			return fmt.Errorf("reading persona file: %w", err)
		default:
			var pf personaFile
			if err := toml.Unmarshal(data, &pf); err != nil {
				return fmt.Errorf("parsing persona file: %w", err)
			}
			for _, p := range pf.Personas {
				if p.Name == "" {
					continue
				}
				table[p.Name] = p.Instruction
			}
		}
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
	return nil
}

// Watch reloads the persona file whenever it changes on disk. No-op
// when the store has no backing file. Stop with Close.
func (s *Store) Watch() error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", s.path, err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					if err := s.Reload(); err != nil {
						logger.Warn("Persona reload failed: %v", err)
					} else {
						logger.Info("Reloaded personas from %s", s.path)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Persona watcher error: %v", err)
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the file watcher, if running.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}
