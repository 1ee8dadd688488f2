package config

import (
	"errors"
	"net"
	"time"

	jp "github.com/go-mclib/mcserver/java_protocol"
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/protoerr"
	"github.com/go-mclib/mcserver/registry"
	"github.com/go-mclib/mcserver/session"
)

// clientInfoWindow is the soft timeout spec.md §4.E and §5 both name for
// collecting Client Information / the client's brand before the server
// pushes its own negotiation frames — exceeding it is normal, not an error.
const clientInfoWindow = 1 * time.Second

// Config names the handshake content this server advertises to every
// client entering configuration.
type Config struct {
	Brand          string
	FeatureFlags   []string
	ServerVersion  string
	Registry       *registry.Push
}

// Handler runs the configuration subprotocol against a Connection whose
// login already succeeded.
type Handler struct {
	Config Config

	// Next continues the connection's lifetime into the play subprotocol
	// once Finish Configuration is acknowledged. Left nil, Handle returns
	// as soon as the handshake completes — useful for tests that only
	// exercise configuration.
	Next func(c *session.Connection) error
}

// NewHandler builds a Handler from cfg.
func NewHandler(cfg Config) *Handler {
	return &Handler{Config: cfg}
}

// Handle implements spec.md §4.E end to end: collect, negotiate, push
// registries/tags, finish.
func (h *Handler) Handle(c *session.Connection) error {
	if err := h.collectClientInfo(c); err != nil {
		return err
	}

	if err := h.sendNegotiation(c); err != nil {
		return err
	}

	if err := h.awaitKnownPacks(c); err != nil {
		return err
	}

	if err := h.pushRegistries(c); err != nil {
		return err
	}

	if err := c.Send(IDFinishConfiguration, &struct{}{}); err != nil {
		return err
	}

	if err := h.awaitAcknowledge(c); err != nil {
		return err
	}

	c.State = session.StatePlay

	if h.Next != nil {
		return h.Next(c)
	}
	return nil
}

// collectClientInfo reads frames for up to clientInfoWindow, recording the
// client's brand when it arrives. A deadline expiry is not propagated as an
// error — it's the normal way this phase ends when the client never sends
// Client Information (spec.md §4.E, §5's "one-second soft timeout that does
// not fault").
func (h *Handler) collectClientInfo(c *session.Connection) error {
	nc := c.NetConn()
	if err := nc.SetReadDeadline(time.Now().Add(clientInfoWindow)); err != nil {
		return err
	}
	defer nc.SetReadDeadline(time.Time{})

	for {
		frame, err := c.ReadFrame()
		if err != nil {
			if isReadTimeout(err) {
				return nil
			}
			return err
		}

		switch frame.ID {
		case IDClientInformation:
			var ci ClientInformationData
			_ = jp.BytesToPacketData(frame.Payload, &ci)

		case IDPluginMessageServer:
			var pm PluginMessageData
			if err := jp.BytesToPacketData(frame.Payload, &pm); err == nil && string(pm.Channel) == BrandChannel {
				c.Brand = decodeBrandString(pm.Data)
			}

		default:
			// Anything else during the soft window is simply not this
			// phase's concern; it'll be re-read by a later phase if the
			// client resends it, otherwise it's silently dropped.
		}
	}
}

func isReadTimeout(err error) bool {
	var terr *protoerr.TransportError
	if !errors.As(err, &terr) {
		return false
	}
	var nerr net.Error
	return errors.As(terr.Err, &nerr) && nerr.Timeout()
}

// decodeBrandString strips the brand plugin message's own length-prefixed
// String encoding; some clients send the brand as a bare UTF-8 string
// instead, so fall back to treating the payload as raw text if the prefix
// doesn't parse as a valid String.
func decodeBrandString(data ns.ByteArray) string {
	var s ns.String
	if _, err := s.FromBytes(data); err == nil {
		return string(s)
	}
	return string(data)
}

// sendNegotiation emits brand, feature flags, and the known-packs offer, in
// the order spec.md §4.E fixes.
func (h *Handler) sendNegotiation(c *session.Connection) error {
	brand := h.Config.Brand
	if brand == "" {
		brand = "minecraft:mcords"
	}
	brandBytes, err := ns.String(brand).ToBytes()
	if err != nil {
		return err
	}
	if err := c.Send(IDPluginMessageClient, &PluginMessageData{
		Channel: BrandChannel,
		Data:    ns.ByteArray(brandBytes),
	}); err != nil {
		return err
	}

	flags := h.Config.FeatureFlags
	if len(flags) == 0 {
		flags = []string{"minecraft:vanilla"}
	}
	flagIDs := make(ns.PrefixedArray[ns.Identifier], len(flags))
	for i, f := range flags {
		flagIDs[i] = ns.Identifier(f)
	}
	if err := c.Send(IDFeatureFlags, &FeatureFlagsData{Flags: flagIDs}); err != nil {
		return err
	}

	version := h.Config.ServerVersion
	if version == "" {
		version = "1.21.8"
	}
	return c.Send(IDSelectKnownPacks, &KnownPacksData{
		Packs: ns.PrefixedArray[KnownPack]{
			{Namespace: "minecraft", ID: "core", Version: ns.String(version)},
		},
	})
}

// awaitKnownPacks waits for the client's reply to the known-packs offer;
// any other id here is fatal per spec.md §4.E.
func (h *Handler) awaitKnownPacks(c *session.Connection) error {
	frame, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if frame.ID != IDKnownPacks {
		return protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"expected Known Packs (0x07) in configuration, got 0x%02X", frame.ID)
	}
	return nil
}

// pushRegistries streams the pre-built registry frames followed by the tag
// frame, per spec.md §4.E — both are static blobs this process loads once
// at startup (registry package), not recomputed per connection.
func (h *Handler) pushRegistries(c *session.Connection) error {
	if h.Config.Registry == nil {
		return nil
	}
	for _, f := range h.Config.Registry.Frames {
		if err := c.WriteFrame(&session.Frame{ID: f.ID, Payload: f.Payload}); err != nil {
			return err
		}
	}
	return c.WriteFrame(&session.Frame{ID: h.Config.Registry.Tags.ID, Payload: h.Config.Registry.Tags.Payload})
}

// awaitAcknowledge waits for the client's Acknowledge Finish Configuration.
func (h *Handler) awaitAcknowledge(c *session.Connection) error {
	frame, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if frame.ID != IDAcknowledgeFinish {
		return protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"expected Acknowledge Finish Configuration (0x03), got 0x%02X", frame.ID)
	}
	return nil
}
