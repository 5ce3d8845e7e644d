package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"\n", " ",
)

// DuplicateMarkdown lists dropped entries as a Markdown table.
func DuplicateMarkdown(dups []Duplicate) []byte {
	var b bytes.Buffer
	b.WriteString("# Duplicate entries\n\n")
	if len(dups) == 0 {
		b.WriteString("No duplicate keys found.\n")
		return b.Bytes()
	}
	fmt.Fprintf(&b, "%d entries were dropped because an earlier source already claimed their key.\n\n", len(dups))
	b.WriteString("| Key | Source | Previous | New | Old |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, d := range dups {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			markdownEscaper.Replace(d.Key),
			markdownEscaper.Replace(d.Source),
			markdownEscaper.Replace(d.Previous),
			markdownEscaper.Replace(string(d.New)),
			markdownEscaper.Replace(string(d.Old)),
		)
	}
	return b.Bytes()
}

// RenderReport converts the duplicate table to an HTML fragment.
func RenderReport(dups []Duplicate) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var out bytes.Buffer
	if err := md.Convert(DuplicateMarkdown(dups), &out); err != nil {
		return nil, fmt.Errorf("error during report rendering: %w", err)
	}
	return out.Bytes(), nil
}
