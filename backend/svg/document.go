// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package svg

import (
	"bytes"
	"fmt"
	"io"
)

// Document is the SVG backend's target: an in-memory SVG image.
type Document struct {
	width, height int
	body          bytes.Buffer
}

// NewDocument creates an empty document of the given size.
func NewDocument(width, height int) *Document {
	return &Document{width: width, height: height}
}

// Width returns the document width.
func (d *Document) Width() int { return d.width }

// Height returns the document height.
func (d *Document) Height() int { return d.height }

// Reset removes all content.
func (d *Document) Reset() { d.body.Reset() }

// Body returns the markup between the opening and closing svg tags.
func (d *Document) Body() string { return d.body.String() }

// Bytes returns the complete SVG markup.
func (d *Document) Bytes() []byte {
	var b bytes.Buffer
	_, _ = d.WriteTo(&b)
	return b.Bytes()
}

// String returns the complete SVG markup.
func (d *Document) String() string { return string(d.Bytes()) }

// WriteTo writes the complete SVG markup to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var n int64
	k, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		d.width, d.height, d.width, d.height)
	n += int64(k)
	if err != nil {
		return n, err
	}
	m, err := w.Write(d.body.Bytes())
	n += int64(m)
	if err != nil {
		return n, err
	}
	k, err = io.WriteString(w, "</svg>")
	n += int64(k)
	return n, err
}
