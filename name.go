// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import "strings"

const (
	// maxLabelLen is the longest label the wire format can express.
	maxLabelLen = 63

	// maxNameLen bounds the wire form of a name, including the
	// terminating zero octet.
	maxNameLen = 255

	// maxPointerTarget is the largest offset a 14-bit compression
	// pointer can reference.
	maxPointerTarget = 0x3FFF
)

// Name is a domain name held in uncompressed wire form: a sequence of
// length-prefixed labels without the terminating zero octet. The zero
// value is the root name. Names are immutable and comparable with ==;
// use [Name.Equal] for the case-insensitive comparison DNS requires.
type Name struct {
	data string
}

// NewName parses a readable domain name such as "www.example.com".
// Both fully-qualified and relative forms are accepted; "" and "."
// denote the root. Label bytes are taken verbatim.
//
// TODO: honor the \DDD, \. and \\ escapes emitted by [Name.String].
func NewName(s string) (Name, error) {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return Name{}, nil
	}
	var b nameBuilder
	for len(s) > 0 {
		label := s
		if i := strings.IndexByte(s, '.'); i >= 0 {
			label = s[:i]
			s = s[i+1:]
		} else {
			s = ""
		}
		if err := b.appendLabel([]byte(label)); err != nil {
			return Name{}, err
		}
	}
	return b.name(), nil
}

// MustNewName is like [NewName] but panics on error. Intended for
// tests and static initializers.
func MustNewName(s string) Name {
	n, err := NewName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// IsRoot reports whether n is the root name.
func (n Name) IsRoot() bool { return len(n.data) == 0 }

// EncodedLen returns the uncompressed wire-form length of the name,
// including the terminating zero octet. Always in 1..255.
func (n Name) EncodedLen() int { return len(n.data) + 1 }

// NumLabels returns the number of labels in the name; the root has zero.
func (n Name) NumLabels() int {
	count := 0
	_ = n.walk(func(int, string) error {
		count++
		return nil
	})
	return count
}

// Labels returns the labels in order. The root name yields nil.
func (n Name) Labels() []string {
	var labels []string
	_ = n.walk(func(_ int, label string) error {
		labels = append(labels, label)
		return nil
	})
	return labels
}

// String renders the name in readable form without a trailing dot; the
// root name is ".". Bytes outside the printable ASCII range escape as
// \DDD, and '.' and '\' within a label as \. and \\ .
func (n Name) String() string {
	if n.IsRoot() {
		return "."
	}
	var out []byte
	first := true
	_ = n.walk(func(_ int, label string) error {
		if !first {
			out = append(out, '.')
		}
		first = false
		out = appendEscapedLabel(out, label)
		return nil
	})
	return string(out)
}

// Equal reports whether two names are equal under ASCII case folding.
func (n Name) Equal(other Name) bool {
	if len(n.data) != len(other.data) {
		return false
	}
	for i := 0; i < len(n.data); i++ {
		a := n.data[i]
		b := other.data[i]
		if 'A' <= a && a <= 'Z' {
			a += 0x20
		}
		if 'A' <= b && b <= 'Z' {
			b += 0x20
		}
		if a != b {
			return false
		}
	}
	return true
}

// walk visits each label with its offset into the wire data. Name
// values built through this package are always well formed; the error
// return guards the packer against corrupt data regardless.
func (n Name) walk(fn func(off int, label string) error) error {
	data := n.data
	for off := 0; off < len(data); {
		l := int(data[off])
		if l == 0 || l > maxLabelLen || off+1+l > len(data) {
			return errBadWireName
		}
		if err := fn(off, data[off+1:off+1+l]); err != nil {
			return err
		}
		off += 1 + l
	}
	return nil
}

func appendEscapedLabel(dst []byte, label string) []byte {
	for i := 0; i < len(label); i++ {
		switch b := label[i]; {
		case b == '.':
			dst = append(dst, '\\', '.')
		case b == '\\':
			dst = append(dst, '\\', '\\')
		case b < '!' || b > '~':
			dst = append(dst, '\\', '0'+b/100, '0'+b/10%10, '0'+b%10)
		default:
			dst = append(dst, b)
		}
	}
	return dst
}

// nameBuilder accumulates wire-form labels, enforcing the label and
// name size limits as it goes.
type nameBuilder struct {
	buf [maxNameLen - 1]byte
	l   int
}

func (b *nameBuilder) appendLabel(label []byte) error {
	if len(label) == 0 {
		return errEmptyLabel
	}
	if len(label) > maxLabelLen {
		return ErrLabelTooLong
	}
	end := b.l + 1 + len(label)
	if end+1 > maxNameLen {
		return ErrNameTooLong
	}
	b.buf[b.l] = byte(len(label))
	copy(b.buf[b.l+1:], label)
	b.l = end
	return nil
}

func (b *nameBuilder) name() Name {
	return Name{data: string(b.buf[:b.l])}
}

// decodeName reads a possibly-compressed name. The cursor resumes
// immediately after the first compression pointer, no matter how many
// bytes the pointer chain visits.
func decodeName(c *cursor) (Name, error) {
	var b nameBuilder
	// Every pointer target must land strictly below the lowest pointer
	// position followed so far, which bounds the walk without keeping a
	// visited set.
	limit := -1
	resume := -1
	for {
		off := c.off
		length, err := c.readUint8()
		if err != nil {
			return Name{}, err
		}
		switch {
		case length == 0:
			if resume >= 0 {
				c.off = resume
			}
			return b.name(), nil
		case length&0xC0 == 0xC0:
			low, err := c.readUint8()
			if err != nil {
				return Name{}, err
			}
			if resume < 0 {
				resume = c.off
			}
			if limit < 0 {
				limit = off
			}
			target := int(length&0x3F)<<8 | int(low)
			if target >= limit {
				return Name{}, &ParseError{Offset: off, Err: ErrInvalidPointer}
			}
			limit = target
			if err := c.seek(target); err != nil {
				return Name{}, err
			}
		case length&0xC0 != 0:
			// Prefixes 0x40 and 0x80 are reserved.
			return Name{}, &ParseError{Offset: off, Err: ErrInvalidLabel}
		default:
			label, err := c.readBytes(int(length))
			if err != nil {
				return Name{}, err
			}
			if err := b.appendLabel(label); err != nil {
				return Name{}, &ParseError{Offset: off, Err: err}
			}
		}
	}
}

// appendName appends the wire encoding of n. With compression enabled
// on the packer it emits a pointer to an identical suffix written
// earlier and records new suffixes as pointer targets.
func (p *packer) appendName(dst []byte, n Name) ([]byte, error) {
	data := n.data
	if len(data)+1 > maxNameLen {
		return dst, ErrNameTooLong
	}
	for off := 0; off < len(data); {
		l := int(data[off])
		if l == 0 || off+1+l > len(data) {
			return dst, errBadWireName
		}
		if l > maxLabelLen {
			return dst, ErrLabelTooLong
		}
		if p.compression != nil {
			if ptr, ok := p.compression[data[off:]]; ok {
				return append(dst, byte(ptr>>8)|0xC0, byte(ptr)), nil
			}
			if pos := len(dst) - p.msgStart; pos <= maxPointerTarget {
				p.compression[data[off:]] = uint16(pos)
			}
		}
		dst = append(dst, data[off:off+1+l]...)
		off += 1 + l
	}
	return append(dst, 0), nil
}
