// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"encoding/binary"
	"net/netip"
)

// RData is the typed payload of a resource record. The set of
// implementations is closed: payload parsing dispatches on the type
// code, with [RawData] as the fallback for every code not given
// first-class handling.
type RData interface {
	// Type returns the record type code the payload encodes as.
	Type() Type

	// encodedLen returns the uncompressed wire length of the payload.
	encodedLen() int

	// appendData appends the wire encoding of the payload.
	appendData(p *packer, dst []byte) ([]byte, error)
}

// Resource is a single resource record of the answer, authority or
// additional section.
type Resource struct {
	Name  Name
	Class Class

	// TTL is the time to live in seconds. Semantically non-negative;
	// the wire carries it as 32 bits either way.
	TTL int32

	// Data is the typed payload. Its dynamic type fixes the record
	// type written on the wire.
	Data RData
}

// Type returns the record type code, or 0 when Data is unset.
func (r Resource) Type() Type {
	if r.Data == nil {
		return 0
	}
	return r.Data.Type()
}

// EncodedLen returns the uncompressed wire-form length of the record.
func (r Resource) EncodedLen() int {
	l := r.Name.EncodedLen() + 10 // type, class, ttl, rdlength
	if r.Data != nil {
		l += r.Data.encodedLen()
	}
	return l
}

// AData is an IPv4 host address payload (A, type 1).
type AData struct {
	Addr netip.Addr
}

func (AData) Type() Type      { return TypeA }
func (AData) encodedLen() int { return 4 }

func (d AData) appendData(_ *packer, dst []byte) ([]byte, error) {
	if !d.Addr.Is4() && !d.Addr.Is4In6() {
		return dst, errAddrFamily
	}
	a := d.Addr.As4()
	return append(dst, a[:]...), nil
}

// AAAAData is an IPv6 host address payload (AAAA, type 28).
type AAAAData struct {
	Addr netip.Addr
}

func (AAAAData) Type() Type      { return TypeAAAA }
func (AAAAData) encodedLen() int { return 16 }

func (d AAAAData) appendData(_ *packer, dst []byte) ([]byte, error) {
	if !d.Addr.Is6() {
		return dst, errAddrFamily
	}
	a := d.Addr.As16()
	return append(dst, a[:]...), nil
}

// CNAMEData holds the canonical name for an alias (CNAME, type 5).
type CNAMEData struct {
	Target Name
}

func (CNAMEData) Type() Type        { return TypeCNAME }
func (d CNAMEData) encodedLen() int { return d.Target.EncodedLen() }

func (d CNAMEData) appendData(p *packer, dst []byte) ([]byte, error) {
	return p.appendName(dst, d.Target)
}

// NSData holds an authoritative name server (NS, type 2).
type NSData struct {
	NS Name
}

func (NSData) Type() Type        { return TypeNS }
func (d NSData) encodedLen() int { return d.NS.EncodedLen() }

func (d NSData) appendData(p *packer, dst []byte) ([]byte, error) {
	return p.appendName(dst, d.NS)
}

// PTRData points to a canonical name (PTR, type 12).
type PTRData struct {
	Target Name
}

func (PTRData) Type() Type        { return TypePTR }
func (d PTRData) encodedLen() int { return d.Target.EncodedLen() }

func (d PTRData) appendData(p *packer, dst []byte) ([]byte, error) {
	return p.appendName(dst, d.Target)
}

// MXData holds mail exchange information (MX, type 15).
type MXData struct {
	// Preference orders MX records; lower values are preferred.
	Preference uint16

	// Exchange is a host willing to act as mail exchange.
	Exchange Name
}

func (MXData) Type() Type        { return TypeMX }
func (d MXData) encodedLen() int { return 2 + d.Exchange.EncodedLen() }

func (d MXData) appendData(p *packer, dst []byte) ([]byte, error) {
	dst = appendUint16(dst, d.Preference)
	return p.appendName(dst, d.Exchange)
}

// SOAData marks the start of a zone of authority (SOA, type 6).
type SOAData struct {
	// MName is the primary source of data for the zone.
	MName Name

	// RName is the mailbox of the person responsible for the zone.
	RName Name

	// Serial is the version number of the zone; compare using
	// sequence space arithmetic.
	Serial uint32

	// Refresh is the interval before the zone should be refreshed.
	Refresh uint32

	// Retry is the interval before a failed refresh is retried.
	Retry uint32

	// Expire bounds how long the zone stays authoritative without a
	// successful refresh.
	Expire uint32

	// Minimum is the minimum TTL for records exported from the zone.
	Minimum uint32
}

func (SOAData) Type() Type { return TypeSOA }

func (d SOAData) encodedLen() int {
	return d.MName.EncodedLen() + d.RName.EncodedLen() + 20
}

func (d SOAData) appendData(p *packer, dst []byte) ([]byte, error) {
	dst, err := p.appendName(dst, d.MName)
	if err != nil {
		return dst, err
	}
	dst, err = p.appendName(dst, d.RName)
	if err != nil {
		return dst, err
	}
	for _, v := range [...]uint32{d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum} {
		dst = appendUint32(dst, v)
	}
	return dst, nil
}

// TXTData holds text strings (TXT, type 16). Each string is at most
// 255 octets and carries arbitrary bytes.
type TXTData struct {
	Strings []string
}

func (TXTData) Type() Type { return TypeTXT }

func (d TXTData) encodedLen() int {
	l := 0
	for _, s := range d.Strings {
		l += 1 + len(s)
	}
	return l
}

func (d TXTData) appendData(_ *packer, dst []byte) ([]byte, error) {
	for _, s := range d.Strings {
		if len(s) > 0xFF {
			return dst, errStringTooLong
		}
		dst = append(dst, byte(len(s)))
		dst = append(dst, s...)
	}
	return dst, nil
}

// RawData carries the RDATA of any record type not given first-class
// handling, uninterpreted. This includes OPT, whose option list passes
// through byte-exact.
type RawData struct {
	RRType Type
	Data   []byte
}

func (d RawData) Type() Type      { return d.RRType }
func (d RawData) encodedLen() int { return len(d.Data) }

func (d RawData) appendData(_ *packer, dst []byte) ([]byte, error) {
	return append(dst, d.Data...), nil
}

func decodeResource(c *cursor) (Resource, error) {
	name, err := decodeName(c)
	if err != nil {
		return Resource{}, err
	}
	typ, err := c.readUint16()
	if err != nil {
		return Resource{}, err
	}
	class, err := c.readUint16()
	if err != nil {
		return Resource{}, err
	}
	ttl, err := c.readUint32()
	if err != nil {
		return Resource{}, err
	}
	rdlen, err := c.readUint16()
	if err != nil {
		return Resource{}, err
	}
	end := c.off + int(rdlen)
	if end > len(c.buf) {
		return Resource{}, &ParseError{Offset: c.off, Err: ErrTruncated}
	}

	// The record cursor sees the message only up to the end of the
	// RDATA: typed payloads cannot read past their declared length
	// while compression pointers still reach earlier offsets.
	rc := &cursor{buf: c.buf[:end], off: c.off}
	data, err := decodeRData(rc, Type(typ), int(rdlen))
	if err != nil {
		return Resource{}, err
	}
	if rc.off != end {
		return Resource{}, &ParseError{Offset: rc.off, Err: ErrBadRecordLength}
	}
	c.off = end

	return Resource{
		Name:  name,
		Class: Class(class),
		TTL:   int32(ttl),
		Data:  data,
	}, nil
}

func decodeRData(c *cursor, typ Type, rdlen int) (RData, error) {
	switch typ {
	case TypeA:
		if rdlen != 4 {
			return nil, &ParseError{Offset: c.off, Err: ErrBadRecordLength}
		}
		b, err := c.readBytes(4)
		if err != nil {
			return nil, err
		}
		return AData{Addr: netip.AddrFrom4([4]byte(b))}, nil

	case TypeAAAA:
		if rdlen != 16 {
			return nil, &ParseError{Offset: c.off, Err: ErrBadRecordLength}
		}
		b, err := c.readBytes(16)
		if err != nil {
			return nil, err
		}
		return AAAAData{Addr: netip.AddrFrom16([16]byte(b))}, nil

	case TypeCNAME:
		target, err := decodeName(c)
		if err != nil {
			return nil, err
		}
		return CNAMEData{Target: target}, nil

	case TypeNS:
		ns, err := decodeName(c)
		if err != nil {
			return nil, err
		}
		return NSData{NS: ns}, nil

	case TypePTR:
		target, err := decodeName(c)
		if err != nil {
			return nil, err
		}
		return PTRData{Target: target}, nil

	case TypeMX:
		pref, err := c.readUint16()
		if err != nil {
			return nil, err
		}
		exchange, err := decodeName(c)
		if err != nil {
			return nil, err
		}
		return MXData{Preference: pref, Exchange: exchange}, nil

	case TypeSOA:
		var d SOAData
		var err error
		if d.MName, err = decodeName(c); err != nil {
			return nil, err
		}
		if d.RName, err = decodeName(c); err != nil {
			return nil, err
		}
		for _, v := range [...]*uint32{&d.Serial, &d.Refresh, &d.Retry, &d.Expire, &d.Minimum} {
			if *v, err = c.readUint32(); err != nil {
				return nil, err
			}
		}
		return d, nil

	case TypeTXT:
		var ss []string
		for c.remaining() > 0 {
			l, err := c.readUint8()
			if err != nil {
				return nil, err
			}
			s, err := c.readBytes(int(l))
			if err != nil {
				// The character string runs past RDLENGTH.
				return nil, &ParseError{Offset: c.off, Err: ErrBadRecordLength}
			}
			ss = append(ss, string(s))
		}
		return TXTData{Strings: ss}, nil

	default:
		b, err := c.readBytes(rdlen)
		if err != nil {
			return nil, err
		}
		return RawData{RRType: typ, Data: append([]byte(nil), b...)}, nil
	}
}

func (p *packer) appendResource(dst []byte, r Resource) ([]byte, error) {
	if r.Data == nil {
		return dst, errNilRData
	}
	dst, err := p.appendName(dst, r.Name)
	if err != nil {
		return dst, err
	}
	dst = appendUint16(dst, uint16(r.Data.Type()))
	dst = appendUint16(dst, uint16(r.Class))
	dst = appendUint32(dst, uint32(r.TTL))

	// RDLENGTH is backfilled once the payload size is known, which is
	// what lets name-bearing payloads compress.
	lenOff := len(dst)
	dst = append(dst, 0, 0)
	dst, err = r.Data.appendData(p, dst)
	if err != nil {
		return dst, err
	}
	rdlen := len(dst) - lenOff - 2
	if rdlen > 0xFFFF {
		return dst, errRDataTooLong
	}
	binary.BigEndian.PutUint16(dst[lenOff:], uint16(rdlen))
	return dst, nil
}
