// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire_test

import (
	"net/netip"
	"testing"

	"github.com/bassosimone/dnswire"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

// Cross-validate our encoder against the miekg/dns decoder.
func TestInteropPackThenMiekgUnpack(t *testing.T) {
	m := &dnswire.Msg{
		Header: dnswire.Header{
			ID:                 0x0102,
			Response:           true,
			RecursionDesired:   true,
			RecursionAvailable: true,
		},
		Questions: []dnswire.Question{{
			Name:  dnswire.MustNewName("example.com"),
			Type:  dnswire.TypeA,
			Class: dnswire.ClassINET,
		}},
		Answers: []dnswire.Resource{
			{
				Name:  dnswire.MustNewName("example.com"),
				Class: dnswire.ClassINET,
				TTL:   300,
				Data:  dnswire.AData{Addr: netip.MustParseAddr("192.0.2.1")},
			},
			{
				Name:  dnswire.MustNewName("example.com"),
				Class: dnswire.ClassINET,
				TTL:   300,
				Data:  dnswire.AAAAData{Addr: netip.MustParseAddr("2001:db8::1")},
			},
			{
				Name:  dnswire.MustNewName("example.com"),
				Class: dnswire.ClassINET,
				TTL:   600,
				Data:  dnswire.TXTData{Strings: []string{"hello"}},
			},
			{
				Name:  dnswire.MustNewName("example.com"),
				Class: dnswire.ClassINET,
				TTL:   900,
				Data: dnswire.MXData{
					Preference: 10,
					Exchange:   dnswire.MustNewName("mail.example.com"),
				},
			},
		},
	}

	for _, pack := range []struct {
		name string
		fn   func() ([]byte, error)
	}{
		{"Plain", m.Pack},
		{"Compressed", func() ([]byte, error) { return m.AppendPackCompressed(nil) }},
	} {
		t.Run(pack.name, func(t *testing.T) {
			raw, err := pack.fn()
			require.NoError(t, err)

			var mm dns.Msg
			require.NoError(t, mm.Unpack(raw))

			require.Equal(t, uint16(0x0102), mm.Id)
			require.True(t, mm.Response)
			require.True(t, mm.RecursionDesired)
			require.True(t, mm.RecursionAvailable)

			require.Len(t, mm.Question, 1)
			require.Equal(t, "example.com.", mm.Question[0].Name)
			require.Equal(t, dns.TypeA, mm.Question[0].Qtype)
			require.Equal(t, uint16(dns.ClassINET), mm.Question[0].Qclass)

			require.Len(t, mm.Answer, 4)
			a := mm.Answer[0].(*dns.A)
			require.Equal(t, "192.0.2.1", a.A.String())
			require.Equal(t, uint32(300), a.Hdr.Ttl)
			aaaa := mm.Answer[1].(*dns.AAAA)
			require.Equal(t, "2001:db8::1", aaaa.AAAA.String())
			txt := mm.Answer[2].(*dns.TXT)
			require.Equal(t, []string{"hello"}, txt.Txt)
			mx := mm.Answer[3].(*dns.MX)
			require.Equal(t, uint16(10), mx.Preference)
			require.Equal(t, "mail.example.com.", mx.Mx)
		})
	}
}

// Cross-validate our decoder against the miekg/dns encoder, with its
// name compression turned on.
func TestInteropMiekgPackThenParse(t *testing.T) {
	query := new(dns.Msg)
	query.SetQuestion("www.example.com.", dns.TypeA)
	query.Id = 4242

	reply := new(dns.Msg)
	reply.SetReply(query)
	reply.RecursionAvailable = true

	cname, err := dns.NewRR("www.example.com. 120 IN CNAME example.com.")
	require.NoError(t, err)
	a, err := dns.NewRR("example.com. 300 IN A 192.0.2.7")
	require.NoError(t, err)
	reply.Answer = append(reply.Answer, cname, a)

	ns, err := dns.NewRR("example.com. 3600 IN NS ns1.example.com.")
	require.NoError(t, err)
	reply.Ns = append(reply.Ns, ns)

	reply.Compress = true
	raw, err := reply.Pack()
	require.NoError(t, err)

	m, err := dnswire.ParseStrict(raw)
	require.NoError(t, err)

	require.Equal(t, uint16(4242), m.ID)
	require.True(t, m.Response)
	require.True(t, m.RecursionDesired)
	require.True(t, m.RecursionAvailable)

	require.Len(t, m.Questions, 1)
	require.Equal(t, dnswire.MustNewName("www.example.com"), m.Questions[0].Name)
	require.Equal(t, dnswire.TypeA, m.Questions[0].Type)

	require.Len(t, m.Answers, 2)
	require.Equal(t, dnswire.CNAMEData{
		Target: dnswire.MustNewName("example.com"),
	}, m.Answers[0].Data)
	require.Equal(t, int32(120), m.Answers[0].TTL)
	require.Equal(t, dnswire.AData{
		Addr: netip.MustParseAddr("192.0.2.7"),
	}, m.Answers[1].Data)

	require.Len(t, m.Authorities, 1)
	require.Equal(t, dnswire.NSData{
		NS: dnswire.MustNewName("ns1.example.com"),
	}, m.Authorities[0].Data)
}
