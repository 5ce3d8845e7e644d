package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// Helper function to create a temporary layout file
func createTempLayoutFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write layout file: %v", err)
	}
	return path
}

func TestLoadLayout(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		want        *Layout
		wantErr     bool
		errContains string
	}{
		{
			name: "valid YAML content",
			yamlContent: `
groups:
  - label: "Year 1"
    parts:
      - label: "Book"
        source: "a"
      - label: "Extra"
        source: "b"
  - label: "Year 2"
    parts:
      - {label: Book, source: c}
`,
			want: &Layout{Groups: []Group{
				{Label: "Year 1", Parts: []Part{{"Book", "a"}, {"Extra", "b"}}},
				{Label: "Year 2", Parts: []Part{{"Book", "c"}}},
			}},
		},
		{
			name: "invalid YAML syntax",
			yamlContent: `
groups:
  - label: "Year 1
`,
			wantErr:     true,
			errContains: "failed to parse layout yaml",
		},
		{
			name:        "no groups",
			yamlContent: "groups: []\n",
			wantErr:     true,
			errContains: "no groups defined",
		},
		{
			name: "group without parts",
			yamlContent: `
groups:
  - label: "Year 1"
`,
			wantErr:     true,
			errContains: `group "Year 1" has no parts`,
		},
		{
			name: "part without source",
			yamlContent: `
groups:
  - label: "Year 1"
    parts:
      - label: "Book"
`,
			wantErr:     true,
			errContains: "part without label or source",
		},
		{
			name: "duplicate source",
			yamlContent: `
groups:
  - label: "Year 1"
    parts:
      - {label: Book, source: a}
  - label: "Year 2"
    parts:
      - {label: Book, source: a}
`,
			wantErr:     true,
			errContains: "source a listed in both",
		},
		{
			name:        "non-existent file",
			wantErr:     true,
			errContains: "failed to read layout file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.name != "non-existent file" {
				filePath = createTempLayoutFile(t, tt.yamlContent)
			}

			got, err := LoadLayout(context.Background(), NewFileStore(), filePath)

			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLayout() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("LoadLayout() error message = %q, want error message containing %q", err.Error(), tt.errContains)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadLayout() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadLayout_Default(t *testing.T) {
	layout, err := LoadLayout(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("LoadLayout(\"\") failed: %v", err)
	}
	if len(layout.Groups) != 5 {
		t.Errorf("expected 5 course years, got %d", len(layout.Groups))
	}
	sources := layout.Sources()
	if len(sources) != 16 {
		t.Errorf("expected 16 sources, got %d", len(sources))
	}
	if sources[0] != "clt1" || sources[len(sources)-1] != "extra-clt5-semester2" {
		t.Errorf("unexpected source order: %v", sources)
	}
}

func TestGroupMarshalJSON(t *testing.T) {
	structure := []Group{
		{Label: "NPCR CLT year 1", Parts: []Part{{"Book", "clt1"}, {"Extra", "extra-clt1"}}},
	}
	got, err := json.Marshal(structure)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	want := `[["NPCR CLT year 1",[["Book","clt1"],["Extra","extra-clt1"]]]]`
	if string(got) != want {
		t.Errorf("json.Marshal() got = %s, want %s", got, want)
	}
}

func TestLoadLayout_ReadsThroughStore(t *testing.T) {
	store := &memStore{files: map[string][]byte{
		"layouts/custom.yaml": []byte("groups:\n  - label: Year 1\n    parts:\n      - {label: Book, source: a}\n"),
	}}

	layout, err := LoadLayout(context.Background(), store, "layouts/custom.yaml")
	if err != nil {
		t.Fatalf("LoadLayout() failed: %v", err)
	}
	if got := layout.Sources(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("LoadLayout() sources = %v, want [a]", got)
	}
}
