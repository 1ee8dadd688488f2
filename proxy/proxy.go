// Package proxy implements the Transfer proxy (spec.md §4.H): a thin relay
// that terminates the client's handshake+login itself, connects onward to a
// configured target, and then forwards frames bidirectionally, capturing
// the upstream Set Compression and Login Success along the way. Grounded
// on original_source/server/proxy/__init__.py's selector-driven tick loop
// (here a goroutine per direction, the idiomatic Go analogue of polling two
// sockets) and process_packet.py's exact compression/login-success capture
// sequence; SRV resolution reuses java_protocol/base_tcp.go's logic via
// proxy.ResolveAddress.
package proxy

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	jp "github.com/go-mclib/mcserver/java_protocol"
	"github.com/go-mclib/mcserver/login"
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/protoerr"
	"github.com/go-mclib/mcserver/session"
)

// Config names the single upstream target a proxy instance forwards to.
type Config struct {
	Target string // "host" or "host:port"; resolved per connection
}

// Handler terminates one client's handshake+login and relays everything
// after it to Config.Target.
type Handler struct {
	Config Config
}

// NewHandler builds a Handler from cfg.
func NewHandler(cfg Config) *Handler {
	return &Handler{Config: cfg}
}

// Handle reads the client's Login Start, dials the configured target,
// synthesizes an upstream handshake and Login Start of its own, and then
// relays frames until either side closes. It never returns the relay's own
// per-frame errors as fatal beyond logging — a reset on either leg just
// ends the session, per spec.md §4.H's failure semantics.
func (h *Handler) Handle(c *session.Connection) error {
	frame, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if frame.ID != login.IDLoginStart {
		return protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"proxy: expected Login Start (0x00), got 0x%02X", frame.ID)
	}
	var start login.LoginStartData
	if err := jp.BytesToPacketData(frame.Payload, &start); err != nil {
		return protoerr.NewProtocolError(protoerr.KindMalformedPayload, "proxy: login start: %v", err)
	}
	username := string(start.Name)

	addr, err := ResolveAddress(h.Config.Target)
	if err != nil {
		h.disconnect(c, fmt.Sprintf("failed to resolve target: %v", err))
		return &protoerr.TransportError{Err: err}
	}

	upstream, err := net.Dial("tcp", addr)
	if err != nil {
		h.disconnect(c, fmt.Sprintf("failed to connect to the target server: %v", err))
		return &protoerr.TransportError{Err: err}
	}
	server := session.NewConnection(upstream, c.Log)
	defer server.Close()

	host, portStr, _ := net.SplitHostPort(addr)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return &protoerr.TransportError{Err: err}
	}

	if err := server.Send(0x00, &session.HandshakeData{
		ProtocolVersion: ns.VarInt(c.ProtocolVersion),
		ServerAddress:   ns.String(host),
		ServerPort:      ns.UnsignedShort(port),
		NextState:       ns.VarInt(session.IntentLogin),
	}); err != nil {
		return &protoerr.TransportError{Err: err}
	}
	if err := server.Send(login.IDLoginStart, &login.LoginStartData{
		Name:       ns.String(username),
		PlayerUUID: login.OfflineUUID(username),
	}); err != nil {
		return &protoerr.TransportError{Err: err}
	}

	done := make(chan error, 2)

	go func() { done <- relay(c, server) }()        // client -> server, unmodified
	go func() { done <- h.relayLogin(c, server) }() // server -> client, inspected during login

	err = <-done
	_ = c.Close()
	_ = server.Close()
	<-done
	return err
}

// relay forwards every frame from src to dst verbatim.
func relay(src, dst *session.Connection) error {
	for {
		f, err := src.ReadFrame()
		if err != nil {
			var eof protoerr.CleanEOF
			if errors.As(err, &eof) {
				return nil
			}
			return err
		}
		if err := dst.WriteFrame(f); err != nil {
			return err
		}
	}
}

// relayLogin forwards frames from server to client, capturing the Set
// Compression threshold and the Login Success identity along the way
// (spec.md §4.H steps 2-3), then falls back to a plain relay for the rest
// of the connection's life.
func (h *Handler) relayLogin(c, server *session.Connection) error {
	loggingIn := true
	for {
		f, err := server.ReadFrame()
		if err != nil {
			var eof protoerr.CleanEOF
			if errors.As(err, &eof) {
				return nil
			}
			return err
		}

		// A compression threshold takes effect on the frame *after* Set
		// Compression, on both legs alike (spec.md §4.H step 3) — so the
		// frame in hand is still forwarded at the old threshold, and the
		// new one is only applied once that write is on the wire.
		newThreshold, hasNewThreshold := -1, false
		if loggingIn && f.ID == login.IDSetCompression {
			var sc login.SetCompressionData
			if err := jp.BytesToPacketData(f.Payload, &sc); err == nil {
				newThreshold, hasNewThreshold = int(sc.Threshold), true
			}
		}

		if loggingIn && f.ID == login.IDLoginSuccess {
			var success login.LoginSuccessData
			if err := jp.BytesToPacketData(f.Payload, &success); err == nil {
				c.Identity = &session.PlayerIdentity{
					Username: string(success.Username),
					UUID:     success.UUID,
				}
			}
			loggingIn = false
			c.State = session.StateConfiguration
		}

		if err := c.WriteFrame(f); err != nil {
			return err
		}

		if hasNewThreshold {
			server.EnableCompression(newThreshold)
			c.EnableCompression(newThreshold)
		}
	}
}

func (h *Handler) disconnect(c *session.Connection, reason string) {
	_ = c.Send(login.IDDisconnect, &login.DisconnectData{Reason: ns.JSONTextComponent{"text": reason}})
}
