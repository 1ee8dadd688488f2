package session

import (
	jp "github.com/go-mclib/mcserver/java_protocol"
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/protoerr"
)

// Intent is the requested next_state carried by the handshake frame.
type Intent ns.VarInt

const (
	IntentStatus Intent = iota + 1
	IntentLogin
	IntentTransfer
)

// HandshakeData is the serverbound Intention packet (0x00, state
// handshake): spec.md §4.C.
type HandshakeData struct {
	ProtocolVersion ns.VarInt
	ServerAddress   ns.String
	ServerPort      ns.UnsignedShort
	NextState       ns.VarInt
}

// ReadHandshake reads and validates the first frame of a connection. Any id
// other than 0x00 here is fatal per spec.md §4.C.
func ReadHandshake(c *Connection) (*HandshakeData, error) {
	frame, err := c.ReadFrame()
	if err != nil {
		return nil, err
	}
	if frame.ID != 0x00 {
		return nil, protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"expected Intention (0x00) in handshake, got 0x%02X", frame.ID)
	}

	var hs HandshakeData
	if err := jp.BytesToPacketData(frame.Payload, &hs); err != nil {
		return nil, protoerr.NewProtocolError(protoerr.KindMalformedPayload, "%v", err)
	}
	return &hs, nil
}
