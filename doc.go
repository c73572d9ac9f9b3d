// SPDX-License-Identifier: GPL-3.0-or-later

// Package dnswire parses and serializes DNS messages in wire format.
//
// [Parse] decodes a raw message buffer into a [*Msg]; [*Msg.Pack] performs
// the reverse transformation. The decoder follows name compression pointers
// and rejects pointer chains that do not move strictly backward. Record
// types without first-class handling decode into [RawData], so the parser
// never fails solely because it does not know a given type code.
//
// This package performs no I/O and keeps no state between calls: transports
// hand it byte buffers and receive structured messages, or vice versa.
// Resolution policy, sockets, and caching belong to the caller.
package dnswire
