package linebuffer

import "strings"

const newline = "\n"

// Buffer accumulates completed lines and the not yet terminated tail of a
// chunked stream.
type Buffer struct {
	lines   []string
	pending string
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// AddChunk appends a chunk of stream text. Every newline-terminated line
// formed by the pending tail plus the chunk becomes available through Lines;
// whatever follows the last newline is kept as the new pending tail.
func (b *Buffer) AddChunk(chunk string) {
	combined := b.pending + chunk

	if strings.HasSuffix(chunk, newline) {
		b.lines = append(b.lines, strings.Split(strings.TrimSuffix(combined, newline), newline)...)
		b.pending = ""
		return
	}

	pieces := strings.Split(combined, newline)
	last := len(pieces) - 1
	b.lines = append(b.lines, pieces[:last]...)
	b.pending = pieces[last]
}

// Lines returns the completed lines buffered since the previous call, in the
// order they arrived, and forgets them. The pending tail is left untouched.
func (b *Buffer) Lines() []string {
	lines := b.lines
	b.lines = nil
	if lines == nil {
		return []string{}
	}
	return lines
}

// Pending returns the text received after the last newline.
func (b *Buffer) Pending() string {
	return b.pending
}

// Len reports how many completed lines are waiting to be drained.
func (b *Buffer) Len() int {
	return len(b.lines)
}
