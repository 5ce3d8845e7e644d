package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayout []byte

// Part is one labelled source inside a group, e.g. "Book" backed by clt1.json.
type Part struct {
	Label  string `yaml:"label"`
	Source string `yaml:"source"`
}

// MarshalJSON writes a part as a [label, source] pair.
func (p Part) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Label, p.Source})
}

// Group is a labelled list of parts, e.g. one course year.
type Group struct {
	Label string `yaml:"label"`
	Parts []Part `yaml:"parts"`
}

// MarshalJSON writes a group as a [label, [[label, source], ...]] pair.
func (g Group) MarshalJSON() ([]byte, error) {
	parts := g.Parts
	if parts == nil {
		parts = []Part{}
	}
	return json.Marshal([]any{g.Label, parts})
}

// Layout represents the structure of the layout file. Groups and parts are
// processed in the order they are declared, so earlier sources win when a key
// appears more than once.
type Layout struct {
	Groups []Group `yaml:"groups"`
}

// Sources returns every source name in declaration order.
func (l *Layout) Sources() []string {
	var names []string
	for _, g := range l.Groups {
		for _, p := range g.Parts {
			names = append(names, p.Source)
		}
	}
	return names
}

// LoadLayout loads and validates the layout file at path through store. An
// empty path selects the built-in NPCR course layout.
func LoadLayout(ctx context.Context, store Store, path string) (*Layout, error) {
	if path == "" {
		return ParseLayout(defaultLayout)
	}
	data, err := store.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout parses and validates layout YAML.
func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout yaml: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Validate checks that every group and part is labelled and that no source
// is listed twice.
func (l *Layout) Validate() error {
	if len(l.Groups) == 0 {
		return fmt.Errorf("invalid layout: no groups defined")
	}
	seen := make(map[string]string)
	for i, g := range l.Groups {
		if g.Label == "" {
			return fmt.Errorf("invalid layout: group %d has no label", i+1)
		}
		if len(g.Parts) == 0 {
			return fmt.Errorf("invalid layout: group %q has no parts", g.Label)
		}
		for _, p := range g.Parts {
			if p.Label == "" || p.Source == "" {
				return fmt.Errorf("invalid layout: group %q has a part without label or source", g.Label)
			}
			if prev, exists := seen[p.Source]; exists {
				return fmt.Errorf("invalid layout: source %s listed in both %q and %q", p.Source, prev, g.Label)
			}
			seen[p.Source] = g.Label
		}
	}
	return nil
}
