package ingest

import (
	"strconv"
	"strings"
)

// Columns maps header names to their position in a data row. It is built
// once per file from that file's own header row.
type Columns struct {
	index map[string]int
	names []string
}

// NewColumns indexes a header row. Names are trimmed and a leading UTF-8 BOM
// is dropped; on duplicate names the first occurrence wins.
func NewColumns(header []string) *Columns {
	c := &Columns{index: make(map[string]int, len(header)), names: make([]string, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		c.names[i] = h
		if _, dup := c.index[h]; !dup {
			c.index[h] = i
		}
	}
	return c
}

// Index returns the position of name.
func (c *Columns) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Has reports whether the header names the column.
func (c *Columns) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Cell returns the trimmed cell for name, or "" when the column is missing
// from the header or the row is short.
func (c *Columns) Cell(cells []string, name string) string {
	i, ok := c.index[name]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// Len is the header width.
func (c *Columns) Len() int { return len(c.names) }

// cylinderColumns expands a header template containing {n} into one name per
// cylinder, 1-based.
func cylinderColumns(template string, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = strings.ReplaceAll(template, "{n}", strconv.Itoa(i+1))
	}
	return out
}
