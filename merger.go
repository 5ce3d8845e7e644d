package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Nananas/chordle/internal/entry"
)

// Duplicate records an entry dropped because an earlier source already
// claimed its key.
type Duplicate struct {
	Key      string
	Source   string
	Previous string
	New      json.RawMessage
	Old      json.RawMessage
}

// claim is the first registration of a key.
type claim struct {
	source  string
	payload json.RawMessage
}

// Document is the merged output file.
type Document struct {
	Structure []Group                  `json:"structure"`
	Parts     map[string][]entry.Entry `json:"parts"`
}

// Encode writes the document as a single JSON object, leaving non-ASCII and
// HTML characters unescaped.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode dictionaries: %w", err)
	}
	return nil
}

// Merger accumulates sources for a single run. Keys are unique across every
// source loaded through the same Merger; the first source to load a key keeps
// it.
type Merger struct {
	store Store
	dir   string
	log   zerolog.Logger

	index      map[string]claim
	parts      map[string][]entry.Entry
	duplicates []Duplicate
}

// NewMerger returns a Merger reading <dir>/<name>.json through store.
func NewMerger(store Store, dir string, log zerolog.Logger) *Merger {
	return &Merger{
		store: store,
		dir:   dir,
		log:   log,
		index: make(map[string]claim),
		parts: make(map[string][]entry.Entry),
	}
}

// LoadSource reads the named source, drops entries whose key is already
// claimed, sorts the rest by their sort field and stores them under name.
// It returns name so callers can record it in the structure.
func (m *Merger) LoadSource(ctx context.Context, name string) (string, error) {
	m.log.Info().Msgf("-- Processing %s", name)

	data, err := m.store.Download(ctx, filepath.Join(m.dir, name+".json"))
	if err != nil {
		return "", err
	}
	entries, err := entry.ReadAll(name, bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	words := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		key := e.Key()
		prev, exists := m.index[e.ID()]
		if !exists {
			m.index[e.ID()] = claim{source: name, payload: e.Payload()}
			words = append(words, e)
			continue
		}
		m.duplicates = append(m.duplicates, Duplicate{
			Key:      key,
			Source:   name,
			Previous: prev.source,
			New:      e.Payload(),
			Old:      prev.payload,
		})
		m.log.Warn().
			Str("key", key).
			Str("source", name).
			Str("previous", prev.source).
			RawJSON("new", e.Payload()).
			RawJSON("old", prev.payload).
			Msg("Duplicate")
	}

	entry.SortStable(words)
	m.parts[name] = words
	return name, nil
}

// Merge loads every source of layout in declaration order and returns the
// combined document. It stops at the first source that fails to load. Parts
// holds exactly the sources of layout.
func (m *Merger) Merge(ctx context.Context, layout *Layout) (*Document, error) {
	structure := make([]Group, 0, len(layout.Groups))
	parts := make(map[string][]entry.Entry)
	for _, g := range layout.Groups {
		group := Group{Label: g.Label, Parts: make([]Part, 0, len(g.Parts))}
		for _, p := range g.Parts {
			name, err := m.LoadSource(ctx, p.Source)
			if err != nil {
				return nil, err
			}
			group.Parts = append(group.Parts, Part{Label: p.Label, Source: name})
			parts[name] = m.parts[name]
		}
		structure = append(structure, group)
	}
	return &Document{Structure: structure, Parts: parts}, nil
}

// Duplicates returns the entries dropped so far, in the order they were seen.
func (m *Merger) Duplicates() []Duplicate {
	return m.duplicates
}
