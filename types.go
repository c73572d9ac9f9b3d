// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import "strconv"

// A Type identifies the structure and content of a resource record.
// Values outside the named constants pass through the codec numerically.
type Type uint16

const (
	TypeA     Type = 1
	TypeNS    Type = 2
	TypeCNAME Type = 5
	TypeSOA   Type = 6
	TypePTR   Type = 12
	TypeMX    Type = 15
	TypeTXT   Type = 16
	TypeAAAA  Type = 28
	TypeSRV   Type = 33
	TypeOPT   Type = 41
	TypeANY   Type = 255
)

// String formats unknown types as TYPE1234, per RFC 3597.
func (t Type) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeNS:
		return "NS"
	case TypeCNAME:
		return "CNAME"
	case TypeSOA:
		return "SOA"
	case TypePTR:
		return "PTR"
	case TypeMX:
		return "MX"
	case TypeTXT:
		return "TXT"
	case TypeAAAA:
		return "AAAA"
	case TypeSRV:
		return "SRV"
	case TypeOPT:
		return "OPT"
	case TypeANY:
		return "ANY"
	default:
		return "TYPE" + strconv.FormatUint(uint64(t), 10)
	}
}

// A Class identifies the protocol family of a record or question.
type Class uint16

const (
	ClassINET   Class = 1
	ClassCSNET  Class = 2
	ClassCHAOS  Class = 3
	ClassHESIOD Class = 4
	ClassANY    Class = 255
)

// String formats unknown classes as CLASS1234, per RFC 3597.
func (c Class) String() string {
	switch c {
	case ClassINET:
		return "IN"
	case ClassCSNET:
		return "CS"
	case ClassCHAOS:
		return "CH"
	case ClassHESIOD:
		return "HS"
	case ClassANY:
		return "ANY"
	default:
		return "CLASS" + strconv.FormatUint(uint64(c), 10)
	}
}

// An OpCode denotes the kind of query in a message header.
type OpCode uint16

const (
	OpCodeQuery        OpCode = 0
	OpCodeInverseQuery OpCode = 1
	OpCodeStatus       OpCode = 2
	OpCodeNotify       OpCode = 4
	OpCodeUpdate       OpCode = 5
)

func (o OpCode) String() string {
	switch o {
	case OpCodeQuery:
		return "QUERY"
	case OpCodeInverseQuery:
		return "IQUERY"
	case OpCodeStatus:
		return "STATUS"
	case OpCodeNotify:
		return "NOTIFY"
	case OpCodeUpdate:
		return "UPDATE"
	default:
		return "OPCODE" + strconv.FormatUint(uint64(o), 10)
	}
}

// An RCode is a DNS response status code.
type RCode uint16

const (
	RCodeSuccess        RCode = 0 // NoError
	RCodeFormatError    RCode = 1 // FormErr
	RCodeServerFailure  RCode = 2 // ServFail
	RCodeNameError      RCode = 3 // NXDomain
	RCodeNotImplemented RCode = 4 // NotImp
	RCodeRefused        RCode = 5 // Refused
)

func (r RCode) String() string {
	switch r {
	case RCodeSuccess:
		return "NOERROR"
	case RCodeFormatError:
		return "FORMERR"
	case RCodeServerFailure:
		return "SERVFAIL"
	case RCodeNameError:
		return "NXDOMAIN"
	case RCodeNotImplemented:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return "RCODE" + strconv.FormatUint(uint64(r), 10)
	}
}
