// Package deck serializes an assembled core into solver input text.
package deck

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pebblebed/kugel/pkg/core"
)

const delimiter = "%%%%%%%%%%%%%%%%%%%%%"

// Writer serializes a core.
type Writer interface {
	WriteCore(c *core.Core) error
}

// Header renders the comment line that precedes every deck section.
func Header(labels ...string) string {
	return "\n\n" + delimiter + " " + strings.Join(labels, " ") + " " + delimiter + "\n\n"
}

// TextWriter writes blocks then regions, each in build order, with a
// header before every section. Per block, each kind gets a header
// followed by one section per subregion that has text of that kind.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter returns a TextWriter writing to w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// WriteCore writes the whole deck and flushes.
func (t *TextWriter) WriteCore(c *core.Core) error {
	// bufio.Writer keeps the first error; Flush reports it.
	for _, b := range c.Blocks {
		id := strconv.Itoa(b.ID)
		for _, k := range core.Kinds {
			t.w.WriteString(Header("Block", id, string(k)))
			for _, s := range b.Subregions {
				text := s.Text(k)
				if text == "" {
					continue
				}
				t.w.WriteString(Header("Block", id, string(k), s.Name))
				t.w.WriteString(text)
			}
		}
	}
	for _, r := range c.Regions {
		for _, k := range core.Kinds {
			text := r.Text(k)
			if text == "" {
				continue
			}
			t.w.WriteString(Header(r.Name, string(k)))
			t.w.WriteString(text)
		}
	}
	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}
	return nil
}

// Render returns the deck as a string.
func Render(c *core.Core) string {
	var b strings.Builder
	// strings.Builder never fails.
	_ = NewTextWriter(&b).WriteCore(c)
	return b.String()
}
