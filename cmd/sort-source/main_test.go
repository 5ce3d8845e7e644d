package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/viant/afs"

	"github.com/Nananas/chordle/internal/entry"
)

// Helper to create a source file in a temporary directory
func createTempSource(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "clt1.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
	return path
}

func TestSortSourceFile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "sorts by sort field",
			input: "[\"水\",\"shui3\",\"water\"]\n[\"你\",\"ni3\",\"you\"]\n[\"好\",\"hao3\",\"good\"]\n",
			want:  "[\"好\",\"hao3\",\"good\"]\n[\"你\",\"ni3\",\"you\"]\n[\"水\",\"shui3\",\"water\"]\n",
		},
		{
			name:  "equal sort fields keep their order",
			input: "[\"是\",\"shi4\",\"be\"]\n[\"十\",\"shi2\",\"ten\"]\n[\"事\",\"shi4\",\"matter\"]\n",
			want:  "[\"十\",\"shi2\",\"ten\"]\n[\"是\",\"shi4\",\"be\"]\n[\"事\",\"shi4\",\"matter\"]\n",
		},
		{
			name:  "empty file",
			input: "",
			want:  "",
		},
		{
			name:    "malformed line",
			input:   "[\"水\",\"shui3\",\"water\"]\n[oops\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createTempSource(t, tt.input)
			output := filepath.Join(filepath.Dir(input), "sorted.json")

			err := sortSourceFile(context.Background(), afs.New(), input, output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("sortSourceFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var pe *entry.ParseError
				if !errors.As(err, &pe) || pe.Source != "clt1" || pe.Line != 2 {
					t.Errorf("expected parse error at clt1 line 2, got %v", err)
				}
				if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
					t.Errorf("output should not be written after a parse error")
				}
				return
			}

			got, err := os.ReadFile(output)
			if err != nil {
				t.Fatalf("failed to read output: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("sortSourceFile() got = %q, want %q", got, tt.want)
			}
		})
	}
}
