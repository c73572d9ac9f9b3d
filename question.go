// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

// Question is a single entry of the question section.
type Question struct {
	Name  Name
	Type  Type
	Class Class
}

// EncodedLen returns the uncompressed wire-form length of the question.
func (q Question) EncodedLen() int {
	return q.Name.EncodedLen() + 4 // type and class
}

func decodeQuestion(c *cursor) (Question, error) {
	name, err := decodeName(c)
	if err != nil {
		return Question{}, err
	}
	typ, err := c.readUint16()
	if err != nil {
		return Question{}, err
	}
	class, err := c.readUint16()
	if err != nil {
		return Question{}, err
	}
	return Question{Name: name, Type: Type(typ), Class: Class(class)}, nil
}

func (p *packer) appendQuestion(dst []byte, q Question) ([]byte, error) {
	dst, err := p.appendName(dst, q.Name)
	if err != nil {
		return dst, err
	}
	dst = appendUint16(dst, uint16(q.Type))
	dst = appendUint16(dst, uint16(q.Class))
	return dst, nil
}
