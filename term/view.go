package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-store/bind"
)

// Rect is a screen area.
type Rect struct {
	X, Y, Width, Height int
}

// View draws itself into an area and follows the mount lifecycle.
type View interface {
	bind.Lifecycle
	Draw(screen tcell.Screen, area Rect)
}

// Alignment controls horizontal text placement.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Label draws one line of text taken from a binding.
type Label[T any] struct {
	binding   *bind.Binding[T]
	format    func(T) string
	style     tcell.Style
	alignment Alignment
}

// NewLabel creates a label that renders binding values with format.
func NewLabel[T any](binding *bind.Binding[T], format func(T) string) *Label[T] {
	return &Label[T]{
		binding: binding,
		format:  format,
		style:   tcell.StyleDefault,
	}
}

// SetStyle sets the label style.
func (l *Label[T]) SetStyle(style tcell.Style) {
	l.style = style
}

// SetAlignment sets text alignment.
func (l *Label[T]) SetAlignment(align Alignment) {
	l.alignment = align
}

// Text returns the text the label would draw.
func (l *Label[T]) Text() string {
	if l.format == nil {
		return ""
	}
	return l.format(l.binding.Value())
}

// Mount subscribes the binding.
func (l *Label[T]) Mount() { l.binding.Mount() }

// Unmount releases the binding.
func (l *Label[T]) Unmount() { l.binding.Unmount() }

// Draw renders the label on the first row of area.
func (l *Label[T]) Draw(screen tcell.Screen, area Rect) {
	drawLine(screen, area, l.Text(), l.style, l.alignment)
}

// Text is a static line.
type Text struct {
	Content string
	Style   tcell.Style
}

// Mount is a no-op; static text has nothing to subscribe to.
func (t *Text) Mount() {}

// Unmount is a no-op.
func (t *Text) Unmount() {}

// Draw renders the text on the first row of area.
func (t *Text) Draw(screen tcell.Screen, area Rect) {
	drawLine(screen, area, t.Content, t.Style, AlignLeft)
}

// Column stacks views one row each.
type Column []View

// Mount is a no-op; bind.MountTree mounts the rows through Children.
func (c Column) Mount() {}

// Unmount is a no-op; bind.UnmountTree unmounts the rows.
func (c Column) Unmount() {}

// Children exposes the rows to bind.MountTree.
func (c Column) Children() []bind.Lifecycle {
	out := make([]bind.Lifecycle, len(c))
	for i, v := range c {
		out[i] = v
	}
	return out
}

// Draw gives each row a one-line slice of area.
func (c Column) Draw(screen tcell.Screen, area Rect) {
	for i, v := range c {
		if i >= area.Height {
			return
		}
		v.Draw(screen, Rect{X: area.X, Y: area.Y + i, Width: area.Width, Height: 1})
	}
}

func drawLine(screen tcell.Screen, area Rect, text string, style tcell.Style, align Alignment) {
	if screen == nil || area.Width <= 0 || area.Height <= 0 {
		return
	}
	text = truncate(text, area.Width)
	width := runewidth.StringWidth(text)

	x := area.X
	switch align {
	case AlignCenter:
		x = area.X + (area.Width-width)/2
	case AlignRight:
		x = area.X + area.Width - width
	}
	for _, r := range text {
		screen.SetContent(x, area.Y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// truncate shortens s to fit maxWidth cells, ending in "..." when cut.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
