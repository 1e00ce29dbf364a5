package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// EntryMarkdown renders one entry as a Markdown section.
func EntryMarkdown(entry Entry) (string, error) {
	body, err := Markdown(entry.State)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### #%d `%s`\n\n", entry.Seq, entry.ID)
	b.WriteString(body)
	b.WriteString("\n")
	return b.String(), nil
}

// Markdown renders a value. Maps with string keys become a table with one
// row per key in sorted order; anything else becomes a JSON code block.
func Markdown(value any) (string, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString("| slice | value |\n|---|---|\n")
		for _, k := range keys {
			v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
			raw, err := json.Marshal(v)
			if err != nil {
				return "", fmt.Errorf("encode slice %q: %w", k, err)
			}
			fmt.Fprintf(&b, "| %s | `%s` |\n", escapeCell(k), escapeCell(string(raw)))
		}
		return b.String(), nil
	}

	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return "```json\n" + string(raw) + "\n```\n", nil
}

// RenderHTML converts Markdown to HTML with GitHub-flavoured tables.
func RenderHTML(w io.Writer, markdown []byte) error {
	if err := renderer.Convert(markdown, w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
