package session

import (
	"errors"

	"github.com/go-mclib/mcserver/protoerr"
	"go.uber.org/zap"
)

// Handlers is the set of per-state subprotocol entry points the accept loop
// dispatches into once the handshake has selected a next_state. Injected by
// the caller (server package) rather than imported directly, since login/
// config/play/status all depend on this package for Connection/Frame and an
// import back here would cycle — grounded in the same accept-loop/
// per-state-switch shape as other_examples' ChickenIQ-VibeShitCraft
// server.go, generalized to pluggable handlers instead of inline methods.
type Handlers struct {
	Status func(c *Connection) error
	Login  func(c *Connection) error
}

// Handle runs one connection's lifetime: read the handshake, then dispatch
// to the subprotocol matching its requested next_state, until the
// subprotocol handler returns (normally on transport close or a fatal
// protocol error).
func Handle(c *Connection, h Handlers) error {
	hs, err := ReadHandshake(c)
	if err != nil {
		return logOutcome(c, err)
	}
	c.ProtocolVersion = int32(hs.ProtocolVersion)

	switch Intent(hs.NextState) {
	case IntentStatus:
		c.State = StateStatus
		if h.Status == nil {
			return errors.New("session: no status handler registered")
		}
		return logOutcome(c, h.Status(c))

	case IntentLogin, IntentTransfer:
		c.State = StateLogin
		if h.Login == nil {
			return errors.New("session: no login handler registered")
		}
		return logOutcome(c, h.Login(c))

	default:
		err := protoerr.NewProtocolError(protoerr.KindUnexpectedPacket, "unknown next_state %d", hs.NextState)
		return logOutcome(c, err)
	}
}

// logOutcome classifies err for logging: clean EOF and peer resets close
// silently, protocol/auth errors are logged at warn, anything else at error.
func logOutcome(c *Connection, err error) error {
	if err == nil {
		return nil
	}

	var clean protoerr.CleanEOF
	if errors.As(err, &clean) {
		c.Log.Debug("connection closed")
		return nil
	}

	var transport *protoerr.TransportError
	if errors.As(err, &transport) {
		c.Log.Debug("peer reset", zap.Error(err))
		return nil
	}

	var perr *protoerr.ProtocolError
	var aerr *protoerr.AuthError
	if errors.As(err, &perr) || errors.As(err, &aerr) {
		c.Log.Warn("session fault", zap.Error(err), zap.Stringer("state", c.State))
		return err
	}

	c.Log.Error("unexpected session error", zap.Error(err))
	return err
}
