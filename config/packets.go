// Package config implements the configuration subprotocol (spec.md §4.E):
// client-info collection, brand/feature-flag/known-pack negotiation, the
// registry/tag push, and the finish-configuration handshake. Declared fresh
// in the teacher's struct+`mc:"..."` tag/ToBytes/FromBytes idiom
// (`java_protocol/packet_codec.go`'s reflection codec), the way
// login/packets.go already does — the teacher's own
// java_protocol/packets/c2s_configuration.go and s2c_configuration.go were
// surveyed for field shape before being found part of the non-functional
// packets/ subsystem (see DESIGN.md) and are not carried forward directly.
package config

import ns "github.com/go-mclib/mcserver/net_structures"

const (
	// Serverbound (client -> server), state configuration.
	IDClientInformation    ns.VarInt = 0x00
	IDCookieResponse       ns.VarInt = 0x01
	IDPluginMessageServer  ns.VarInt = 0x02
	IDAcknowledgeFinish    ns.VarInt = 0x03
	IDKeepAliveServer      ns.VarInt = 0x04
	IDPong                 ns.VarInt = 0x05
	IDResourcePackResponse ns.VarInt = 0x06
	IDKnownPacks           ns.VarInt = 0x07

	// Clientbound (server -> client), state configuration.
	IDCookieRequest      ns.VarInt = 0x00
	IDPluginMessageClient ns.VarInt = 0x01
	IDDisconnect         ns.VarInt = 0x02
	IDFinishConfiguration ns.VarInt = 0x03
	IDKeepAliveClient    ns.VarInt = 0x04
	IDPing               ns.VarInt = 0x05
	IDFeatureFlags       ns.VarInt = 0x0C
	IDSelectKnownPacks   ns.VarInt = 0x0E
)

// BrandChannel is the plugin-message channel carrying the client/server mod
// brand string, per spec.md §4.E.
const BrandChannel = "minecraft:brand"

// ClientInformationData is "Client Information" (serverbound). Every field
// of the packet is decoded explicitly, including the ones this server never
// inspects; there is no trailing raw-bytes field.
type ClientInformationData struct {
	Locale              ns.String
	ViewDistance         ns.Byte
	ChatMode             ns.VarInt
	ChatColors           ns.Boolean
	DisplayedSkinParts   ns.UnsignedByte
	MainHand             ns.VarInt
	EnableTextFiltering  ns.Boolean
	AllowServerListings  ns.Boolean
	ParticleStatus       ns.VarInt
}

// PluginMessageData is a plugin message in either direction: channel plus
// the remainder of the packet as opaque payload.
type PluginMessageData struct {
	Channel ns.Identifier
	Data    ns.ByteArray
}

// KnownPack is one entry of the known-packs negotiation (clientbound Select
// Known Packs and the serverbound reply share this shape). Explicit
// ToBytes/FromBytes rather than the generic reflection path, matching the
// convention net_structures.BlockEntity sets for PrefixedArray[T] elements.
type KnownPack struct {
	Namespace ns.String
	ID        ns.String
	Version   ns.String
}

func (k KnownPack) ToBytes() (ns.ByteArray, error) {
	nsBytes, err := k.Namespace.ToBytes()
	if err != nil {
		return nil, err
	}
	idBytes, err := k.ID.ToBytes()
	if err != nil {
		return nil, err
	}
	verBytes, err := k.Version.ToBytes()
	if err != nil {
		return nil, err
	}
	result := append(nsBytes, idBytes...)
	return append(result, verBytes...), nil
}

func (k *KnownPack) FromBytes(data ns.ByteArray) (int, error) {
	offset, err := k.Namespace.FromBytes(data)
	if err != nil {
		return 0, err
	}
	idBytes, err := k.ID.FromBytes(data[offset:])
	if err != nil {
		return 0, err
	}
	offset += idBytes
	verBytes, err := k.Version.FromBytes(data[offset:])
	if err != nil {
		return 0, err
	}
	offset += verBytes
	return offset, nil
}

// KnownPacksData wraps a known-pack list.
type KnownPacksData struct {
	Packs ns.PrefixedArray[KnownPack]
}

// FeatureFlagsData is "Feature Flags" (clientbound).
type FeatureFlagsData struct {
	Flags ns.PrefixedArray[ns.Identifier]
}

// DisconnectData is "Disconnect" (clientbound, configuration): an NBT text
// component, per spec.md §7's disconnect-framing-by-state rule.
type DisconnectData struct {
	Reason ns.NBT
}
