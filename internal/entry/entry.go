// Package entry reads and writes line-delimited vocabulary sources.
//
// A source file holds one JSON array per line. The first element is the
// headword key, the second is the field entries are ordered by and the third
// is shown when two sources claim the same key. Any further elements are
// carried through untouched.
package entry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

const (
	keyIndex     = 0
	sortIndex    = 1
	payloadIndex = 2

	// MinArity is the smallest number of elements a valid entry carries.
	MinArity = 3

	maxLineSize = 16 * 1024 * 1024
)

// Entry is a single vocabulary record. Elements keep their original JSON
// encoding so that writing an entry back out does not reformat its values.
type Entry []json.RawMessage

// Key returns the headword for display.
func (e Entry) Key() string { return text(e[keyIndex]) }

// ID identifies the headword for deduplication. Unlike Key it keeps the JSON
// type, so the number 1 and the string "1" are different headwords.
func (e Entry) ID() string {
	raw := e[keyIndex]
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return "s:" + s
	}
	var b bytes.Buffer
	if err := json.Compact(&b, raw); err != nil {
		return "j:" + string(raw)
	}
	return "j:" + b.String()
}

// SortField returns the value entries of one source are ordered by.
func (e Entry) SortField() string { return text(e[sortIndex]) }

// Payload returns the raw element printed alongside duplicate warnings.
func (e Entry) Payload() json.RawMessage { return e[payloadIndex] }

// text decodes a JSON string element, falling back to its raw encoding
// for numbers and other non-string values.
func text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ParseError reports a source line that could not be decoded into an Entry.
type ParseError struct {
	Source string
	Line   int
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not load json in %s line %d: %q: %v", e.Source, e.Line, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes a single line into an Entry.
func Parse(line []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(line, &e); err != nil {
		return nil, err
	}
	if len(e) < MinArity {
		return nil, fmt.Errorf("entry has %d elements, want at least %d", len(e), MinArity)
	}
	return e, nil
}

// ReadAll decodes every line of r. It stops at the first line that fails to
// parse and returns a *ParseError naming source. An empty input yields an
// empty, non-nil slice.
func ReadAll(source string, r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	entries := []Entry{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSuffix(scanner.Bytes(), []byte("\r"))
		e, err := Parse(line)
		if err != nil {
			return nil, &ParseError{Source: source, Line: lineNo, Raw: string(line), Err: err}
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return entries, nil
}

// number decodes a JSON number element.
func number(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// less compares sort fields numerically when both are numbers and by text
// otherwise.
func less(a, b Entry) bool {
	x, xok := number(a[sortIndex])
	y, yok := number(b[sortIndex])
	if xok && yok {
		return x < y
	}
	return a.SortField() < b.SortField()
}

// SortStable orders entries by their sort field, keeping the input order of
// entries whose sort fields are equal.
func SortStable(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})
}

// Write emits entries one per line in the format ReadAll accepts.
// Non-ASCII and HTML characters are written literally.
func Write(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("failed to encode entry %q: %w", e.Key(), err)
		}
	}
	return nil
}
