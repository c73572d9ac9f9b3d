// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorReads(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0xAA, 0xBB})

	v8, err := c.readUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x01), v8)

	v16, err := c.readUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0203), v16)

	v32, err := c.readUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x04050607), v32)

	b, err := c.readBytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xBB}, b)

	require.Equal(t, 0, c.remaining())
}

func TestCursorTruncated(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		read func(c *cursor) error
	}{
		{"Uint8", nil, func(c *cursor) error { _, err := c.readUint8(); return err }},
		{"Uint16", []byte{0x01}, func(c *cursor) error { _, err := c.readUint16(); return err }},
		{"Uint32", []byte{0x01, 0x02, 0x03}, func(c *cursor) error { _, err := c.readUint32(); return err }},
		{"Bytes", []byte{0x01, 0x02}, func(c *cursor) error { _, err := c.readBytes(3); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(tt.buf)
			err := tt.read(c)
			require.ErrorIs(t, err, ErrTruncated)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, 0, pe.Offset)
			require.Equal(t, 0, c.off) // failed reads do not advance
		})
	}
}

func TestCursorSeek(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02, 0x03})

	require.NoError(t, c.seek(2))
	require.Equal(t, 2, c.off)

	require.ErrorIs(t, c.seek(-1), ErrInvalidPointer)
	require.ErrorIs(t, c.seek(4), ErrInvalidPointer)
	require.Equal(t, 2, c.off) // failed seeks do not move
}
