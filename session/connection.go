package session

import (
	"fmt"
	"net"
	"sync"
	"time"

	jp "github.com/go-mclib/mcserver/java_protocol"
	ns "github.com/go-mclib/mcserver/net_structures"
	"go.uber.org/zap"
)

// State is the phase of the four-state session machine (spec.md §4.C).
type State uint8

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StateConfiguration
	StatePlay
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "handshake"
	case StateStatus:
		return "status"
	case StateLogin:
		return "login"
	case StateConfiguration:
		return "configuration"
	case StatePlay:
		return "play"
	default:
		return "unknown"
	}
}

// PlayerIdentity is the optional player identity carried by a Connection
// once login succeeds (spec.md §3's Connection data model).
type PlayerIdentity struct {
	Username   string
	UUID       ns.UUID
	Properties []Property
}

// Property is a login-success profile property (textures, etc).
type Property struct {
	Name      string
	Value     string
	Signature string
}

// Connection owns one full-duplex byte transport and one frame codec, per
// spec.md §3. The cipher pair, once present, is never removed; the
// compression threshold, once set non-negative, is never reset — both
// invariants are enforced by EnableEncryption/EnableCompression below,
// which only move state forward.
type Connection struct {
	mu sync.Mutex

	conn  *jp.Conn
	codec *Codec

	RemoteAddr net.Addr

	State           State
	ProtocolVersion int32

	compressionSet bool
	cipherEnabled  bool

	Identity *PlayerIdentity
	EntityID int32

	// Brand is the client's reported mod/launcher brand (minecraft:brand
	// plugin message, configuration state), empty until negotiated — an
	// explicit optional field per spec.md §9 rather than a dynamic bag.
	Brand string

	LastKeepAliveSent time.Time
	LastKeepAliveRecv time.Time

	Log *zap.Logger
}

// NewConnection wraps an accepted net.Conn.
func NewConnection(nc net.Conn, log *zap.Logger) *Connection {
	if log == nil {
		log = zap.NewNop()
	}
	return &Connection{
		conn:       jp.NewConn(nc),
		codec:      NewCodec(),
		RemoteAddr: nc.RemoteAddr(),
		State:      StateHandshake,
		Log:        log.With(zap.String("remote", nc.RemoteAddr().String())),
	}
}

// ReadFrame blocks until the next frame arrives.
func (c *Connection) ReadFrame() (*Frame, error) {
	return c.codec.ReadFrame(c.conn)
}

// WriteFrame sends f downstream.
func (c *Connection) WriteFrame(f *Frame) error {
	return c.codec.WriteFrame(c.conn, f)
}

// Send marshals a packet body (via the reflection codec's ToBytes path)
// and writes it under the given packet id.
func (c *Connection) Send(id ns.VarInt, body any) error {
	data, err := jp.PacketDataToBytes(body)
	if err != nil {
		return fmt.Errorf("marshal packet 0x%02X: %w", id, err)
	}
	return c.WriteFrame(&Frame{ID: id, Payload: data})
}

// EnableCompression sets the threshold. Once set non-negative it is never
// reset — a second call with a different non-negative value is a logic
// error in the caller, not something this type silently allows.
func (c *Connection) EnableCompression(threshold int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.compressionSet {
		return
	}
	c.codec.Threshold = threshold
	c.compressionSet = true
}

// EnableEncryption turns on the AES-128/CFB-8 cipher pair using sharedSecret
// as both key and IV, in both directions. Irreversible.
func (c *Connection) EnableEncryption(sharedSecret []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cipherEnabled {
		return nil
	}
	enc := c.conn.Encryption()
	enc.SetSharedSecret(sharedSecret)
	if err := enc.EnableEncryption(); err != nil {
		return err
	}
	c.cipherEnabled = true
	return nil
}

// Close closes the underlying transport.
func (c *Connection) Close() error {
	return c.conn.Close()
}

// NetConn exposes the raw transport for components (e.g. proxy) that need
// to read/write bytes without the Frame abstraction.
func (c *Connection) NetConn() net.Conn {
	return c.conn.NetConn()
}
