// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

const (
	headerLen = 12

	headerBitQR = 1 << 15 // query/response (response=1)
	headerBitAA = 1 << 10 // authoritative
	headerBitTC = 1 << 9  // truncated
	headerBitRD = 1 << 8  // recursion desired
	headerBitRA = 1 << 7  // recursion available
	headerBitZ  = 1 << 6  // reserved, round-trips as given
	headerBitAD = 1 << 5  // authentic data
	headerBitCD = 1 << 4  // checking disabled
)

// Header is the representation of a DNS message header. Section counts
// are not part of the model: the decoder checks them against the
// sections it reads and the encoder derives them from the actual
// section lengths.
type Header struct {
	// ID is an opaque token echoed between query and response.
	ID uint16

	// Response is false for queries and true for responses.
	Response bool

	// OpCode is the kind of query.
	OpCode OpCode

	// Authoritative reports whether the responder is authoritative
	// for the queried zone.
	Authoritative bool

	// Truncated reports whether the message was cut by the transport.
	Truncated bool

	// RecursionDesired asks the server to resolve recursively.
	RecursionDesired bool

	// RecursionAvailable reports whether the server offers recursion.
	RecursionAvailable bool

	// Zero is the reserved bit 6. It must round-trip unchanged.
	Zero bool

	// AuthenticData reports that the server validated the response
	// per DNSSEC.
	AuthenticData bool

	// CheckingDisabled reports that the requester accepts
	// non-authenticated data (RFC 4035: "checking disabled").
	CheckingDisabled bool

	// RCode is the response status.
	RCode RCode
}

// pack returns the ID and the flags word of the header.
func (h *Header) pack() (id uint16, bits uint16) {
	id = h.ID
	bits = (uint16(h.OpCode)&0xF)<<11 | uint16(h.RCode)&0xF
	if h.Response {
		bits |= headerBitQR
	}
	if h.Authoritative {
		bits |= headerBitAA
	}
	if h.Truncated {
		bits |= headerBitTC
	}
	if h.RecursionDesired {
		bits |= headerBitRD
	}
	if h.RecursionAvailable {
		bits |= headerBitRA
	}
	if h.Zero {
		bits |= headerBitZ
	}
	if h.AuthenticData {
		bits |= headerBitAD
	}
	if h.CheckingDisabled {
		bits |= headerBitCD
	}
	return id, bits
}

// wireHeader is the 12-byte header as it appears on the wire, with the
// four section counts still attached.
type wireHeader struct {
	id          uint16
	bits        uint16
	questions   uint16
	answers     uint16
	authorities uint16
	additionals uint16
}

func (h *wireHeader) decode(c *cursor) error {
	var err error
	if h.id, err = c.readUint16(); err != nil {
		return err
	}
	if h.bits, err = c.readUint16(); err != nil {
		return err
	}
	if h.questions, err = c.readUint16(); err != nil {
		return err
	}
	if h.answers, err = c.readUint16(); err != nil {
		return err
	}
	if h.authorities, err = c.readUint16(); err != nil {
		return err
	}
	h.additionals, err = c.readUint16()
	return err
}

func (h *wireHeader) header() Header {
	return Header{
		ID:                 h.id,
		Response:           h.bits&headerBitQR != 0,
		OpCode:             OpCode(h.bits>>11) & 0xF,
		Authoritative:      h.bits&headerBitAA != 0,
		Truncated:          h.bits&headerBitTC != 0,
		RecursionDesired:   h.bits&headerBitRD != 0,
		RecursionAvailable: h.bits&headerBitRA != 0,
		Zero:               h.bits&headerBitZ != 0,
		AuthenticData:      h.bits&headerBitAD != 0,
		CheckingDisabled:   h.bits&headerBitCD != 0,
		RCode:              RCode(h.bits & 0xF),
	}
}
