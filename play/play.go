// Package play implements the play-state entry sequence (spec.md §4.F) and
// per-connection world tick loop (§4.G): keep-alive pacing, position
// tracking, and the checkerboard block-update demo. Grounded in
// ChickenIQ-VibeShitCraft's per-connection handler loop shape, generalized
// to use `golang.org/x/time/rate` for the 20Hz pacing the way
// `BX-D-mini-RPC` paces its own request loop with the same package.
package play

import (
	"context"
	"errors"
	"time"

	"github.com/go-mclib/mcserver/command"
	jp "github.com/go-mclib/mcserver/java_protocol"
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/protoerr"
	"github.com/go-mclib/mcserver/registry"
	"github.com/go-mclib/mcserver/session"
	"github.com/go-mclib/mcserver/world"
	"golang.org/x/time/rate"
)

// tickInterval is spec.md §4.G's "20 Hz nominal, 0.05s target".
const tickInterval = 50 * time.Millisecond

// keepAliveSendInterval and keepAliveTimeout are §4.G/§5's keep-alive
// cadence and receive-deadline constants.
const (
	keepAliveSendInterval = 1 * time.Second
	keepAliveTimeout      = 5 * time.Second
)

// groundY is the fixed y-level the demo paints at. It is a constant, not
// derived from Config.SeaLevel.
const groundY = 63

// Config names the entry-sequence constants a running server supplies.
type Config struct {
	DimensionType      int32
	DimensionName      string
	HashedSeed         int64
	Gamemode           byte
	SeaLevel           int32
	ViewDistance       int32
	SimulationDistance int32
	ChunkRadius        int32 // radius (in chunks) of the Chunk Data & Light block streamed at entry
}

// Handler drives one connection through the play entry sequence and its
// subsequent tick loop.
type Handler struct {
	Config  Config
	World   *world.Set
	Palette *registry.Palette

	// Commands, if set, is sent once right after Login Play, advertising
	// the command-node graph a freshly joined client should render for
	// tab completion (spec.md §4.J). Left nil, no Commands packet is sent
	// — useful for tests that only exercise the entry sequence/tick loop.
	Commands *command.Graph
}

// NewHandler builds a Handler from cfg.
func NewHandler(cfg Config, w *world.Set, palette *registry.Palette) *Handler {
	return &Handler{Config: cfg, World: w, Palette: palette}
}

// Handle runs spec.md §4.F's entry sequence and then blocks in the tick
// loop until the connection faults or the peer disconnects.
func (h *Handler) Handle(c *session.Connection) error {
	p := &world.Player{
		Y: 5,
	}
	if c.Identity != nil {
		p.Username = c.Identity.Username
		p.UUID = c.Identity.UUID
	}
	p.Protocol = c.ProtocolVersion

	entityID := h.World.Join(p)
	c.EntityID = entityID
	defer h.World.Leave(entityID)

	if err := h.sendEntrySequence(c, entityID); err != nil {
		return err
	}

	return h.runTickLoop(c, p)
}

func (h *Handler) sendEntrySequence(c *session.Connection, entityID int32) error {
	login := &LoginPlayData{
		EntityID:            ns.Int(entityID),
		IsHardcore:          false,
		DimensionNames:      ns.PrefixedArray[ns.Identifier]{"minecraft:overworld"},
		MaxPlayers:          0,
		ViewDistance:        ns.VarInt(h.Config.ViewDistance),
		SimulationDistance:  ns.VarInt(h.Config.SimulationDistance),
		ReducedDebugInfo:    false,
		EnableRespawnScreen: true,
		DoLimitedCrafting:   false,
		DimensionType:       ns.VarInt(h.Config.DimensionType),
		DimensionName:       ns.Identifier(h.Config.DimensionName),
		HashedSeed:          ns.Long(h.Config.HashedSeed),
		Gamemode:            ns.UnsignedByte(h.Config.Gamemode),
		PreviousGamemode:    -1,
		IsDebug:             false,
		IsFlat:              true,
		HasDeathLocation:    false,
		PortalCooldown:      0,
		SeaLevel:            ns.VarInt(h.Config.SeaLevel),
		EnforcesSecureChat:  false,
	}
	if err := c.Send(IDLoginPlay, login); err != nil {
		return err
	}

	if h.Commands != nil {
		if err := h.Commands.Send(c); err != nil {
			return err
		}
	}

	if err := c.Send(IDSynchronizePosition, &SynchronizePlayerPositionData{}); err != nil {
		return err
	}
	if err := c.Send(IDSetCenterChunk, &SetCenterChunkData{}); err != nil {
		return err
	}
	if err := c.Send(IDGameEvent, &GameEventData{Event: GameEventStartWaitingForChunks}); err != nil {
		return err
	}
	if err := c.Send(IDChunkBatchStart, &struct{}{}); err != nil {
		return err
	}

	count, err := h.streamChunks(c)
	if err != nil {
		return err
	}

	if err := c.Send(IDChunkBatchFinished, &ChunkBatchFinishedData{BatchSize: ns.VarInt(count)}); err != nil {
		return err
	}
	return c.Send(IDSynchronizePosition, &SynchronizePlayerPositionData{})
}

// streamChunks emits a square block of void Chunk Data & Light frames
// covering h.Config.ChunkRadius around the origin chunk, per §4.F. Section
// content is the world/chunk generator's job (an external collaborator per
// §1); this server only streams the empty shape the client's chunk batch
// bookkeeping requires.
func (h *Handler) streamChunks(c *session.Connection) (int, error) {
	r := h.Config.ChunkRadius
	count := 0
	for cx := -r; cx <= r; cx++ {
		for cz := -r; cz <= r; cz++ {
			frame := &ChunkDataAndLightData{
				ChunkX: ns.Int(cx),
				ChunkZ: ns.Int(cz),
				Data: ns.ChunkData{
					Heightmaps: ns.PrefixedArray[ns.ByteArray]{},
				},
				Light: ns.LightData{},
			}
			if err := c.Send(IDChunkDataAndLight, frame); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// runTickLoop reads serverbound frames from a dedicated goroutine and
// paces the keep-alive/paint-demo tick against `rate.Limiter` in this one,
// so a frame can never land "inside" a tick the way an interleaved blocking
// read would allow.
func (h *Handler) runTickLoop(c *session.Connection, p *world.Player) error {
	frames := make(chan *session.Frame)
	readErr := make(chan error, 1)
	go func() {
		for {
			f, err := c.ReadFrame()
			if err != nil {
				readErr <- err
				return
			}
			frames <- f
		}
	}()

	limiter := rate.NewLimiter(rate.Every(tickInterval), 1)
	c.LastKeepAliveSent = time.Now()
	c.LastKeepAliveRecv = time.Now()

	for {
	drain:
		for {
			select {
			case f := <-frames:
				if err := h.handleFrame(c, p, f); err != nil {
					return err
				}
			case err := <-readErr:
				var eof protoerr.CleanEOF
				if errors.As(err, &eof) {
					return nil
				}
				return err
			default:
				break drain
			}
		}

		if err := limiter.Wait(context.Background()); err != nil {
			return err
		}

		if err := h.tick(c, p); err != nil {
			return err
		}
	}
}

func (h *Handler) handleFrame(c *session.Connection, p *world.Player, f *session.Frame) error {
	switch f.ID {
	case IDKeepAliveServer:
		c.LastKeepAliveRecv = time.Now()

	case IDPlayerPosition:
		var pos PlayerPositionData
		if err := jp.BytesToPacketData(f.Payload, &pos); err == nil {
			p.X, p.Y, p.Z = float64(pos.X), float64(pos.Y), float64(pos.Z)
		}

	case IDPlayerPositionRotation:
		var pos PlayerPositionRotationData
		if err := jp.BytesToPacketData(f.Payload, &pos); err == nil {
			p.X, p.Y, p.Z = float64(pos.X), float64(pos.Y), float64(pos.Z)
		}

	default:
		// Container clicks, chat, swing/use-item, and anything else here are
		// gameplay mechanics this demo doesn't model (spec.md's non-goals);
		// the frame is simply not this loop's concern.
	}
	return nil
}

func (h *Handler) tick(c *session.Connection, p *world.Player) error {
	now := time.Now()

	if now.Sub(c.LastKeepAliveSent) >= keepAliveSendInterval {
		if err := c.Send(IDKeepAliveClient, &KeepAliveData{ID: 0}); err != nil {
			return err
		}
		c.LastKeepAliveSent = now
	}

	if now.Sub(c.LastKeepAliveRecv) >= keepAliveTimeout {
		_ = c.Send(IDDisconnect, &DisconnectData{Reason: ns.NewNBT(map[string]any{"text": "Timed out"})})
		return protoerr.NewProtocolError(protoerr.KindUnexpectedPacket, "keep-alive timeout")
	}

	return h.stepPaint(c, p)
}

func (h *Handler) stepPaint(c *session.Connection, p *world.Player) error {
	restore, hasRestore, paint, moved := p.Paint.Step(p.X, p.Z)
	if !moved {
		return nil
	}

	if hasRestore {
		if err := h.sendBlockUpdate(c, restore.X, groundY, restore.Z, restore.Block); err != nil {
			return err
		}
	}
	return h.sendBlockUpdate(c, paint.X, groundY, paint.Z, paint.Block)
}

func (h *Handler) sendBlockUpdate(c *session.Connection, x, y, z int32, block string) error {
	stateID, ok := h.Palette.StateID(block)
	if !ok {
		return nil
	}
	return c.Send(IDBlockUpdate, &BlockUpdateData{
		Location: ns.Position{X: x, Y: int16(y), Z: z},
		BlockID:  ns.VarInt(stateID),
	})
}
