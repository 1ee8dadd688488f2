// Package login implements the login subprotocol (spec.md §4.D): offline
// and online mode, the RSA encryption handshake, Mojang hasJoined
// verification, and compression enablement. Grounded on the teacher's
// crypto package (kept near-verbatim) and
// java_protocol/session_server.SessionServerClient (adapted: request-only,
// no client-auth Join path, since this server never logs in as a client).
package login

import ns "github.com/go-mclib/mcserver/net_structures"

const (
	// Serverbound (client -> server), state login.
	IDLoginStart         ns.VarInt = 0x00
	IDEncryptionResponse ns.VarInt = 0x01
	IDLoginAcknowledged  ns.VarInt = 0x03
	IDCookieResponse     ns.VarInt = 0x04

	// Clientbound (server -> client), state login.
	IDDisconnect        ns.VarInt = 0x00
	IDEncryptionRequest ns.VarInt = 0x01
	IDLoginSuccess      ns.VarInt = 0x02
	IDSetCompression    ns.VarInt = 0x03
)

// LoginStartData is "Login Start" (serverbound).
type LoginStartData struct {
	Name       ns.String
	PlayerUUID ns.UUID
}

// EncryptionRequestData is "Encryption Request" (clientbound). ServerID is
// always the empty string for a vanilla-compatible handshake.
type EncryptionRequestData struct {
	ServerID    ns.String
	PublicKey   ns.PrefixedByteArray
	VerifyToken ns.PrefixedByteArray
	Authenticate ns.Boolean
}

// EncryptionResponseData is "Encryption Response" (serverbound).
type EncryptionResponseData struct {
	SharedSecret ns.PrefixedByteArray
	VerifyToken  ns.PrefixedByteArray
}

// SetCompressionData is "Set Compression" (clientbound).
type SetCompressionData struct {
	Threshold ns.VarInt
}

// Property is one entry of Login Success's profile property array.
type Property struct {
	Name      ns.String
	Value     ns.String
	IsSigned  ns.Boolean
	Signature ns.Optional[ns.String] `mc:"if:IsSigned,value:true"`
}

// LoginSuccessData is "Login Success" (clientbound).
type LoginSuccessData struct {
	UUID       ns.UUID
	Username   ns.String
	Properties []Property
}

// DisconnectData is "Disconnect (login)" (clientbound): a JSON text
// component, per spec.md §7's disconnect-framing-by-state rule.
type DisconnectData struct {
	Reason ns.JSONTextComponent
}
