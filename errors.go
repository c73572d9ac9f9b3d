// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"errors"
	"fmt"
)

// Error kinds returned while decoding a message. Match them with
// [errors.Is]; the failing byte offset is available via [*ParseError].
var (
	// ErrTruncated means the buffer ended before a required field or
	// section could be read.
	ErrTruncated = errors.New("truncated message")

	// ErrInvalidLabel means a name label length octet used one of the
	// reserved bit patterns (0x40 or 0x80).
	ErrInvalidLabel = errors.New("reserved label length octet")

	// ErrLabelTooLong means a label exceeds 63 octets.
	ErrLabelTooLong = errors.New("label exceeds 63 octets")

	// ErrNameTooLong means a name exceeds 255 octets in wire form.
	ErrNameTooLong = errors.New("name exceeds 255 octets")

	// ErrInvalidPointer means a compression pointer referenced an
	// out-of-range offset or one that does not move strictly backward.
	ErrInvalidPointer = errors.New("invalid compression pointer")

	// ErrBadRecordLength means a record's RDATA did not match its
	// declared RDLENGTH or the size fixed by its type.
	ErrBadRecordLength = errors.New("bad record data length")

	// ErrTrailingBytes is returned by [ParseStrict] when unconsumed
	// bytes remain after the declared sections.
	ErrTrailingBytes = errors.New("trailing bytes after message")
)

// Packing errors. Encoding a well-formed [*Msg] never fails; these guard
// against hand-built messages that exceed wire-format limits.
var (
	errNilRData       = errors.New("nil resource record payload")
	errEmptyLabel     = errors.New("empty label")
	errAddrFamily     = errors.New("address family does not match record type")
	errStringTooLong  = errors.New("character string exceeds 255 octets")
	errRDataTooLong   = errors.New("record data exceeds 65535 octets")
	errSectionTooLong = errors.New("too many entries in section (>65535)")
	errBadWireName    = errors.New("malformed wire-form name")
)

// ParseError locates a decode failure within the input buffer.
type ParseError struct {
	// Offset is the byte offset at which decoding failed.
	Offset int

	// Err is the error kind, one of the sentinels above.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Err.Error())
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error { return e.Err }

// sectionErr labels an error with the message section it occurred in.
func sectionErr(section string, err error) error {
	return fmt.Errorf("%s: %w", section, err)
}
