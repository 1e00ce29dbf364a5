// Package inspect writes store notifications to a writer as JSON lines,
// Markdown or HTML, for debugging and replay reports.
package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-store/state"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown inspect format")

// Format selects how entries are written.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatMarkdown, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Entry is one observed value.
type Entry struct {
	ID    ulid.ULID `json:"id"`
	Seq   int       `json:"seq"`
	Time  time.Time `json:"time"`
	State any       `json:"state"`
}

// Config configures an Inspector.
type Config struct {
	// Writer receives the output. Default: io.Discard.
	Writer io.Writer

	// Format selects the output format. Default: FormatJSON.
	Format Format

	// Color highlights JSON output for a 256-colour terminal.
	Color bool

	// Style is the chroma style used when Color is set (default "monokai").
	Style string

	// Now supplies entry timestamps. Default: time.Now.
	Now func() time.Time
}

// Inspector records every value it is handed. It is an Observer, so
// attaching the same inspector to a store twice has no effect.
type Inspector[S any] struct {
	mu      sync.Mutex
	config  Config
	entries []Entry
	err     error
}

var _ state.Observer[int] = (*Inspector[int])(nil)

// New creates an inspector.
func New[S any](config Config) *Inspector[S] {
	if config.Writer == nil {
		config.Writer = io.Discard
	}
	if config.Format == "" {
		config.Format = FormatJSON
	}
	if config.Style == "" {
		config.Style = "monokai"
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Inspector[S]{config: config}
}

// Attach observes src with the inspector and returns the unsubscribe.
func Attach[S any](src interface {
	Observe(state.Observer[S]) func()
}, in *Inspector[S]) func() {
	if src == nil || in == nil {
		return func() {}
	}
	return src.Observe(in)
}

// Update records value and writes it. Write errors are kept for Err rather
// than interrupting the notification pass.
func (in *Inspector[S]) Update(value S) {
	if in == nil {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()

	entry := Entry{
		ID:    ulid.Make(),
		Seq:   len(in.entries) + 1,
		Time:  in.config.Now(),
		State: value,
	}
	in.entries = append(in.entries, entry)
	if in.err != nil {
		return
	}
	in.err = in.write(entry)
}

// Entries returns a copy of the recorded entries.
func (in *Inspector[S]) Entries() []Entry {
	if in == nil {
		return nil
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]Entry, len(in.entries))
	copy(out, in.entries)
	return out
}

// Err returns the first write error, if any.
func (in *Inspector[S]) Err() error {
	if in == nil {
		return nil
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.err
}

func (in *Inspector[S]) write(entry Entry) error {
	w := in.config.Writer
	switch in.config.Format {
	case FormatJSON:
		line, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode entry %d: %w", entry.Seq, err)
		}
		line = append(line, '\n')
		if in.config.Color {
			return quick.Highlight(w, string(line), "json", "terminal256", in.config.Style)
		}
		_, err = w.Write(line)
		return err
	case FormatMarkdown:
		md, err := EntryMarkdown(entry)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		return err
	case FormatHTML:
		md, err := EntryMarkdown(entry)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := RenderHTML(&buf, []byte(md)); err != nil {
			return err
		}
		_, err = w.Write(buf.Bytes())
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, in.config.Format)
}
