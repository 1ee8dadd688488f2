// Package status implements the status subprotocol (spec.md §4.I): a single
// MOTD JSON response and a ping echo. Grounded in the teacher's
// java_protocol/packets/c2s_status.go and s2c_status.go field shapes (a
// Request with no body, a Response wrapping one String; a Ping/Pong pair
// wrapping one Long), now generalized to build the response from a
// configurable MOTD rather than a fixed literal.
package status

import ns "github.com/go-mclib/mcserver/net_structures"

const (
	// Serverbound and clientbound share these ids in the status state.
	IDStatusRequestResponse ns.VarInt = 0x00
	IDPingPong              ns.VarInt = 0x01
)

// StatusResponseData wraps the MOTD JSON document as a length-prefixed
// string, the way the teacher's S2CStatusResponsePacketData does.
type StatusResponseData struct {
	JSON ns.String
}

// PingPongData carries the opaque payload both directions of 0x01 share.
type PingPongData struct {
	Payload ns.Long
}
