//
// SPDX-License-Identifier: BSD-3-Clause
//
// Adapted from: https://github.com/ooni/probe-engine/blob/v0.23.0/netx/resolver/encoder.go
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/dns/dnscore/query.go
//

package dnswire

import (
	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// Query describes a DNS query to construct.
//
// Construct using [NewQuery] or set the MANDATORY fields.
type Query struct {
	// ID is the OPTIONAL query ID.
	ID uint16

	// Name is the MANDATORY domain name to query.
	Name string

	// Type is the query type.
	Type Type

	// Class is the OPTIONAL query class; zero means [ClassINET].
	Class Class
}

// NewQuery constructs a new [*Query] with safe defaults.
//
// By default, the query uses a randomized ID and the Internet class,
// and the packed message requests recursion.
func NewQuery(name string, qtype Type) *Query {
	return &Query{
		ID:    dns.Id(),
		Name:  name,
		Type:  qtype,
		Class: ClassINET,
	}
}

// Clone returns a deep copy of the query.
func (q *Query) Clone() *Query {
	return &Query{
		ID:    q.ID,
		Name:  q.Name,
		Type:  q.Type,
		Class: q.Class,
	}
}

// NewMsg creates a new [*Msg] from the [*Query].
func (q *Query) NewMsg() (*Msg, error) {
	// IDNA encode the domain name.
	punyName, err := idna.Lookup.ToASCII(q.Name)
	if err != nil {
		return nil, err
	}

	name, err := NewName(punyName)
	if err != nil {
		return nil, err
	}

	class := q.Class
	if class == 0 {
		class = ClassINET
	}

	return &Msg{
		Header: Header{
			ID:               q.ID,
			OpCode:           OpCodeQuery,
			RecursionDesired: true,
		},
		Questions: []Question{{Name: name, Type: q.Type, Class: class}},
	}, nil
}
