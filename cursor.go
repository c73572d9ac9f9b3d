// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import "encoding/binary"

// cursor is a bounds-checked forward reader over an immutable buffer.
// All multi-byte reads are big-endian. A failed read leaves the
// position unchanged and reports the offset it failed at.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

func (c *cursor) readUint8() (uint8, error) {
	if c.remaining() < 1 {
		return 0, &ParseError{Offset: c.off, Err: ErrTruncated}
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *cursor) readUint16() (uint16, error) {
	if c.remaining() < 2 {
		return 0, &ParseError{Offset: c.off, Err: ErrTruncated}
	}
	v := binary.BigEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v, nil
}

func (c *cursor) readUint32() (uint32, error) {
	if c.remaining() < 4 {
		return 0, &ParseError{Offset: c.off, Err: ErrTruncated}
	}
	v := binary.BigEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v, nil
}

// readBytes consumes exactly n bytes. The returned slice aliases the
// input buffer: callers that retain the data must copy it.
func (c *cursor) readBytes(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, &ParseError{Offset: c.off, Err: ErrTruncated}
	}
	v := c.buf[c.off : c.off+n]
	c.off += n
	return v, nil
}

// seek repositions the cursor at an absolute offset. Only the name
// decoder uses it, to follow compression pointers.
func (c *cursor) seek(off int) error {
	if off < 0 || off > len(c.buf) {
		return &ParseError{Offset: c.off, Err: ErrInvalidPointer}
	}
	c.off = off
	return nil
}
