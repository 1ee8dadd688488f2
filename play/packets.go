// Package play implements the play-state entry sequence and per-tick world
// loop (spec.md §4.F/§4.G). Packet bodies extend the teacher's
// struct-plus-`mc:"..."` reflection idiom (`java_protocol/packet_codec.go`,
// unchanged) the way `java_protocol/packets/s2c_play.go` already does for
// the one play packet the teacher covered (Keep Alive) — this package adds
// every other body the spec's entry sequence and world loop need.
package play

import ns "github.com/go-mclib/mcserver/net_structures"

const (
	// Clientbound, state play.
	IDBlockUpdate         ns.VarInt = 0x08
	IDChunkBatchFinished  ns.VarInt = 0x0B
	IDChunkBatchStart     ns.VarInt = 0x0C
	IDDisconnect          ns.VarInt = 0x1C
	IDChunkDataAndLight   ns.VarInt = 0x27
	IDGameEvent           ns.VarInt = 0x22
	IDLoginPlay           ns.VarInt = 0x2B
	IDKeepAliveClient     ns.VarInt = 0x26
	IDSynchronizePosition ns.VarInt = 0x41
	IDSetCenterChunk      ns.VarInt = 0x57

	// Serverbound, state play.
	IDKeepAliveServer         ns.VarInt = 0x1A
	IDPlayerPosition          ns.VarInt = 0x1C
	IDPlayerPositionRotation  ns.VarInt = 0x1D
)

// GameEventStartWaitingForChunks is event id 13, emitted once during entry.
const GameEventStartWaitingForChunks ns.UnsignedByte = 13

// LoginPlayData is "Login (Play)" with fields in the exact order
// spec.md §4.F fixes.
type LoginPlayData struct {
	EntityID             ns.Int
	IsHardcore           ns.Boolean
	DimensionNames       ns.PrefixedArray[ns.Identifier]
	MaxPlayers           ns.VarInt
	ViewDistance         ns.VarInt
	SimulationDistance   ns.VarInt
	ReducedDebugInfo     ns.Boolean
	EnableRespawnScreen  ns.Boolean
	DoLimitedCrafting    ns.Boolean
	DimensionType        ns.VarInt
	DimensionName        ns.Identifier
	HashedSeed           ns.Long
	Gamemode             ns.UnsignedByte
	PreviousGamemode     ns.Byte
	IsDebug              ns.Boolean
	IsFlat               ns.Boolean
	HasDeathLocation     ns.Boolean
	PortalCooldown       ns.VarInt
	SeaLevel             ns.VarInt
	EnforcesSecureChat   ns.Boolean
}

// SynchronizePlayerPositionData is "Synchronize Player Position" (0x41).
type SynchronizePlayerPositionData struct {
	TeleportID              ns.VarInt
	X, Y, Z                 ns.Double
	VelocityX, VelocityY, VelocityZ ns.Double
	Yaw, Pitch              ns.Float
	Flags                   ns.TeleportFlags
}

// SetCenterChunkData is "Set Center Chunk" (0x57).
type SetCenterChunkData struct {
	ChunkX, ChunkZ ns.VarInt
}

// GameEventData is "Game Event" (0x22).
type GameEventData struct {
	Event ns.UnsignedByte
	Value ns.Float
}

// ChunkDataAndLightData is "Chunk Data and Update Light" (0x27). Section
// payload generation is the world/chunk generator's job — an explicit
// external collaborator per spec.md §1 — so this server only ever streams
// the empty/void chunk shape the entry sequence needs to satisfy the
// client's chunk-batch bookkeeping.
type ChunkDataAndLightData struct {
	ChunkX, ChunkZ ns.Int
	Data           ns.ChunkData
	Light          ns.LightData
}

// ChunkBatchFinishedData is "Chunk Batch Finished" (0x0B).
type ChunkBatchFinishedData struct {
	BatchSize ns.VarInt
}

// KeepAliveData carries a single opaque 64-bit id in both directions.
type KeepAliveData struct {
	ID ns.Long
}

// BlockUpdateData is "Block Update" (0x08): a packed position and the new
// block state id.
type BlockUpdateData struct {
	Location ns.Position
	BlockID  ns.VarInt
}

// DisconnectData is "Disconnect" (clientbound, play): an NBT text
// component, per spec.md §7's disconnect-framing-by-state rule.
type DisconnectData struct {
	Reason ns.NBT
}

// PlayerPositionData is "Set Player Position" (serverbound, 0x1C): only the
// fields the world loop's paint demo consumes are decoded precisely.
type PlayerPositionData struct {
	X, Y, Z ns.Double
	Flags   ns.Byte
}

// PlayerPositionRotationData is "Set Player Position and Rotation"
// (serverbound, 0x1D).
type PlayerPositionRotationData struct {
	X, Y, Z    ns.Double
	Yaw, Pitch ns.Float
	Flags      ns.Byte
}
