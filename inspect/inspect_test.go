package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/store"
)

func newStore() *store.Store[reducer.State] {
	return store.New(reducer.MustCombine(reducer.SliceOf("count", 0, func(prev int, action any) int {
		if reducer.IsType(action, "INC") {
			return prev + 1
		}
		return prev
	})), reducer.State{"count": 0})
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestInspector_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	in := New[reducer.State](Config{Writer: &buf, Now: fixedNow})
	s := newStore()

	unsub := Attach[reducer.State](s, in)
	Attach[reducer.State](s, in)
	s.Dispatch(reducer.Action{Type: "INC"})
	unsub()
	s.Dispatch(reducer.Action{Type: "INC"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected replay and one update, got %d lines: %q", len(lines), buf.String())
	}
	var entry struct {
		ID    string         `json:"id"`
		Seq   int            `json:"seq"`
		State map[string]int `json:"state"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("decode line: %v", err)
	}
	if entry.Seq != 2 || entry.State["count"] != 1 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if _, err := ulid.Parse(entry.ID); err != nil {
		t.Fatalf("expected ULID id, got %q: %v", entry.ID, err)
	}
	if in.Err() != nil {
		t.Fatalf("unexpected error: %v", in.Err())
	}
	if got := len(in.Entries()); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}

func TestInspector_ColorJSON(t *testing.T) {
	var buf bytes.Buffer
	in := New[int](Config{Writer: &buf, Color: true})
	in.Update(42)

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI escapes in colour output, got %q", out)
	}
	if !strings.Contains(out, "42") {
		t.Fatalf("expected value in output, got %q", out)
	}
}

func TestInspector_Markdown(t *testing.T) {
	var buf bytes.Buffer
	in := New[reducer.State](Config{Writer: &buf, Format: FormatMarkdown})
	in.Update(reducer.State{"count": 2, "label": "a|b"})

	out := buf.String()
	if !strings.Contains(out, "### #1 `") {
		t.Fatalf("expected entry heading, got %q", out)
	}
	if !strings.Contains(out, "| count | `2` |") {
		t.Fatalf("expected count row, got %q", out)
	}
	if !strings.Contains(out, `| label | `+"`"+`"a\|b"`+"`"+` |`) {
		t.Fatalf("expected escaped label row, got %q", out)
	}
	if strings.Index(out, "count") > strings.Index(out, "label") {
		t.Fatalf("expected sorted rows, got %q", out)
	}
}

func TestInspector_HTML(t *testing.T) {
	var buf bytes.Buffer
	in := New[reducer.State](Config{Writer: &buf, Format: FormatHTML})
	in.Update(reducer.State{"count": 3})

	out := buf.String()
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<td>count</td>") {
		t.Fatalf("expected an HTML table, got %q", out)
	}
}

func TestMarkdown_NonMap(t *testing.T) {
	md, err := Markdown([]int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(md, "```json\n") {
		t.Fatalf("expected a JSON code block, got %q", md)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestInspector_KeepsFirstError(t *testing.T) {
	in := New[int](Config{Writer: failingWriter{}})
	in.Update(1)
	in.Update(2)

	if in.Err() == nil || !strings.Contains(in.Err().Error(), "disk full") {
		t.Fatalf("expected write error, got %v", in.Err())
	}
	if len(in.Entries()) != 2 {
		t.Fatalf("expected entries recorded despite errors")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("Markdown"); err != nil || f != FormatMarkdown {
		t.Fatalf("expected markdown, got %q (%v)", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
