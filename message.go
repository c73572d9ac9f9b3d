// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"encoding/binary"
	"slices"
)

// Msg is a complete DNS message: header plus the four sections.
//
// A Msg is a plain value tree. Parsing builds it wholly from the input
// buffer without retaining the buffer; packing reads it without
// mutating it. Distinct messages never share mutable state, so
// independent parses and packs may run concurrently.
type Msg struct {
	Header
	Questions   []Question
	Answers     []Resource
	Authorities []Resource
	Additionals []Resource
}

// Parse decodes a wire-format message. Trailing bytes after the
// declared sections are tolerated, since some transports pad
// datagrams; use [ParseStrict] to reject them.
//
// Errors carry the failing byte offset via [*ParseError] and match the
// package sentinels with [errors.Is].
func Parse(buf []byte) (*Msg, error) {
	return parse(buf, false)
}

// ParseStrict is like [Parse] but fails with [ErrTrailingBytes] when
// unconsumed bytes remain after the declared sections.
func ParseStrict(buf []byte) (*Msg, error) {
	return parse(buf, true)
}

func parse(buf []byte, strict bool) (*Msg, error) {
	c := newCursor(buf)

	var wh wireHeader
	if err := wh.decode(c); err != nil {
		return nil, sectionErr("header", err)
	}
	m := &Msg{Header: wh.header()}

	for i := 0; i < int(wh.questions); i++ {
		q, err := decodeQuestion(c)
		if err != nil {
			return nil, sectionErr("questions", err)
		}
		m.Questions = append(m.Questions, q)
	}

	var err error
	if m.Answers, err = decodeSection(c, "answers", int(wh.answers)); err != nil {
		return nil, err
	}
	if m.Authorities, err = decodeSection(c, "authorities", int(wh.authorities)); err != nil {
		return nil, err
	}
	if m.Additionals, err = decodeSection(c, "additionals", int(wh.additionals)); err != nil {
		return nil, err
	}

	if strict && c.remaining() > 0 {
		return nil, &ParseError{Offset: c.off, Err: ErrTrailingBytes}
	}
	return m, nil
}

func decodeSection(c *cursor, section string, count int) ([]Resource, error) {
	var rs []Resource
	for i := 0; i < count; i++ {
		r, err := decodeResource(c)
		if err != nil {
			return nil, sectionErr(section, err)
		}
		rs = append(rs, r)
	}
	return rs, nil
}

// Pack encodes the message without name compression. Section counts
// are derived from the actual section lengths, never from caller-set
// header counts.
func (m *Msg) Pack() ([]byte, error) {
	return m.AppendPack(nil)
}

// AppendPack appends the wire encoding of the message to dst and
// returns the extended slice. Names are written in full.
func (m *Msg) AppendPack(dst []byte) ([]byte, error) {
	return m.appendPack(dst, nil)
}

// AppendPackCompressed is like [*Msg.AppendPack] but compresses
// repeated name suffixes into backward pointers.
func (m *Msg) AppendPackCompressed(dst []byte) ([]byte, error) {
	return m.appendPack(dst, make(map[string]uint16))
}

func (m *Msg) appendPack(dst []byte, compression map[string]uint16) ([]byte, error) {
	p := &packer{msgStart: len(dst), compression: compression}

	id, bits := m.Header.pack()
	dst = appendUint16(dst, id)
	dst = appendUint16(dst, bits)
	for _, s := range [...]struct {
		name  string
		count int
	}{
		{"questions", len(m.Questions)},
		{"answers", len(m.Answers)},
		{"authorities", len(m.Authorities)},
		{"additionals", len(m.Additionals)},
	} {
		if s.count > 0xFFFF {
			return dst, sectionErr(s.name, errSectionTooLong)
		}
		dst = appendUint16(dst, uint16(s.count))
	}

	var err error
	for _, q := range m.Questions {
		if dst, err = p.appendQuestion(dst, q); err != nil {
			return dst, sectionErr("questions", err)
		}
	}
	for _, s := range [...]struct {
		name string
		rs   []Resource
	}{
		{"answers", m.Answers},
		{"authorities", m.Authorities},
		{"additionals", m.Additionals},
	} {
		for _, r := range s.rs {
			if dst, err = p.appendResource(dst, r); err != nil {
				return dst, sectionErr(s.name, err)
			}
		}
	}
	return dst, nil
}

// Len returns the uncompressed wire-format size of the message.
// Packing with compression may produce fewer bytes.
func (m *Msg) Len() int {
	if m == nil {
		return 0
	}
	l := headerLen
	for _, q := range m.Questions {
		l += q.EncodedLen()
	}
	for _, rs := range [...][]Resource{m.Answers, m.Authorities, m.Additionals} {
		for _, r := range rs {
			l += r.EncodedLen()
		}
	}
	return l
}

// SetReply resets m to a response skeleton for the given query: same
// ID, opcode and recursion-desired flag, the question section copied,
// all answer sections empty. It returns m for chaining.
func (m *Msg) SetReply(query *Msg) *Msg {
	m.Header = Header{
		ID:               query.ID,
		Response:         true,
		OpCode:           query.OpCode,
		RecursionDesired: query.RecursionDesired,
		RCode:            RCodeSuccess,
	}
	m.Questions = slices.Clone(query.Questions)
	m.Answers = nil
	m.Authorities = nil
	m.Additionals = nil
	return m
}

// packer tracks the state shared by one encoding pass. A nil
// compression map disables compression.
type packer struct {
	msgStart    int
	compression map[string]uint16
}

func appendUint16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

func appendUint32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}
