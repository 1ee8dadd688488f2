package login

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"io"

	jp "github.com/go-mclib/mcserver/java_protocol"
	"github.com/go-mclib/mcserver/java_protocol/session_server"
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/protoerr"
	"github.com/go-mclib/mcserver/session"
)

// Config selects offline vs online mode and the post-login compression
// threshold (negative disables), per spec.md §6's server.properties keys.
type Config struct {
	OnlineMode           bool
	CompressionThreshold int
}

// Handler runs the login subprotocol against c. On success Handle records
// the resolved player identity in c.Identity and, once "Login Acknowledged"
// has been read, moves c.State to StateConfiguration, since the next frame
// belongs to the configuration subprotocol.
type Handler struct {
	Config Config
	Client *session_server.SessionServerClient

	// Next is invoked with the same Connection once login succeeds and
	// Login Acknowledged has been read, continuing the connection's
	// lifetime into the configuration subprotocol. Left nil, a successful
	// login simply returns — useful for tests that only exercise login.
	Next func(c *session.Connection) error
}

// NewHandler returns a Handler with a default Mojang session-server client.
func NewHandler(cfg Config) *Handler {
	return &Handler{Config: cfg, Client: session_server.NewSessionServerClient()}
}

// Handle implements spec.md §4.D's offline and online modes.
func (h *Handler) Handle(c *session.Connection) error {
	frame, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if frame.ID != IDLoginStart {
		return protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"expected Login Start (0x00) in login, got 0x%02X", frame.ID)
	}

	var start LoginStartData
	if err := unmarshalInto(frame.Payload, &start); err != nil {
		return protoerr.NewProtocolError(protoerr.KindMalformedPayload, "%v", err)
	}

	var identity *session.PlayerIdentity
	if h.Config.OnlineMode {
		identity, err = h.handleOnline(c, string(start.Name))
	} else {
		identity, err = h.handleOffline(c, string(start.Name))
	}
	if err != nil {
		_ = h.disconnect(c, err.Error())
		return err
	}

	c.Identity = identity

	if err := h.awaitAcknowledged(c); err != nil {
		return err
	}
	c.State = session.StateConfiguration

	if h.Next != nil {
		return h.Next(c)
	}
	return nil
}

func (h *Handler) handleOffline(c *session.Connection, username string) (*session.PlayerIdentity, error) {
	uuid := OfflineUUID(username)

	if h.Config.CompressionThreshold >= 0 {
		if err := h.sendSetCompression(c); err != nil {
			return nil, err
		}
	}
	if err := c.Send(IDLoginSuccess, &LoginSuccessData{UUID: uuid, Username: ns.String(username)}); err != nil {
		return nil, err
	}

	return &session.PlayerIdentity{Username: username, UUID: uuid}, nil
}

func (h *Handler) handleOnline(c *session.Connection, username string) (*session.PlayerIdentity, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		return nil, fmt.Errorf("generate RSA keypair: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}

	verifyToken := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, verifyToken); err != nil {
		return nil, fmt.Errorf("generate verify token: %w", err)
	}

	err = c.Send(IDEncryptionRequest, &EncryptionRequestData{
		ServerID:     "",
		PublicKey:    ns.PrefixedByteArray(pubDER),
		VerifyToken:  ns.PrefixedByteArray(verifyToken),
		Authenticate: true,
	})
	if err != nil {
		return nil, err
	}

	frame, err := c.ReadFrame()
	if err != nil {
		return nil, err
	}
	if frame.ID != IDEncryptionResponse {
		return nil, protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"expected Encryption Response (0x01), got 0x%02X", frame.ID)
	}

	var resp EncryptionResponseData
	if err := unmarshalInto(frame.Payload, &resp); err != nil {
		return nil, protoerr.NewProtocolError(protoerr.KindMalformedPayload, "%v", err)
	}

	sharedSecret, err := rsa.DecryptPKCS1v15(rand.Reader, priv, resp.SharedSecret)
	if err != nil {
		return nil, &protoerr.AuthError{Detail: fmt.Sprintf("failed to decrypt shared secret: %v", err)}
	}
	decryptedToken, err := rsa.DecryptPKCS1v15(rand.Reader, priv, resp.VerifyToken)
	if err != nil {
		return nil, &protoerr.AuthError{Detail: fmt.Sprintf("failed to decrypt verify token: %v", err)}
	}
	if !constantTimeEqual(decryptedToken, verifyToken) {
		return nil, &protoerr.AuthError{Detail: "verify token mismatch"}
	}

	serverHash := session_server.ComputeServerHash("", sharedSecret, pubDER)

	hasJoined, err := h.Client.HasJoined(username, serverHash)
	if err != nil {
		return nil, &protoerr.AuthError{Detail: fmt.Sprintf("mojang session server request failed: %v", err)}
	}
	if hasJoined == nil {
		return nil, &protoerr.AuthError{Detail: "mojang session server rejected the join"}
	}

	if err := c.EnableEncryption(sharedSecret); err != nil {
		return nil, fmt.Errorf("enable encryption: %w", err)
	}

	if h.Config.CompressionThreshold >= 0 {
		if err := h.sendSetCompression(c); err != nil {
			return nil, err
		}
	}

	uuid, err := ns.NewUUID(hasJoined.ID)
	if err != nil {
		return nil, fmt.Errorf("parse mojang uuid: %w", err)
	}

	properties := make([]Property, 0, len(hasJoined.Properties))
	for _, p := range hasJoined.Properties {
		prop := Property{Name: ns.String(p.Name), Value: ns.String(p.Value)}
		if p.Signature != "" {
			prop.IsSigned = true
			prop.Signature = ns.Optional[ns.String]{Present: true, Value: ns.String(p.Signature)}
		}
		properties = append(properties, prop)
	}

	if err := c.Send(IDLoginSuccess, &LoginSuccessData{
		UUID:       uuid,
		Username:   ns.String(hasJoined.Name),
		Properties: properties,
	}); err != nil {
		return nil, err
	}

	return &session.PlayerIdentity{Username: hasJoined.Name, UUID: uuid}, nil
}

func (h *Handler) sendSetCompression(c *session.Connection) error {
	if err := c.Send(IDSetCompression, &SetCompressionData{Threshold: ns.VarInt(h.Config.CompressionThreshold)}); err != nil {
		return err
	}
	c.EnableCompression(h.Config.CompressionThreshold)
	return nil
}

func (h *Handler) awaitAcknowledged(c *session.Connection) error {
	frame, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if frame.ID != IDLoginAcknowledged {
		return protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"expected Login Acknowledged (0x03), got 0x%02X", frame.ID)
	}
	return nil
}

func (h *Handler) disconnect(c *session.Connection, reason string) error {
	return c.Send(IDDisconnect, &DisconnectData{
		Reason: ns.JSONTextComponent{"text": reason},
	})
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

func unmarshalInto(data ns.ByteArray, v any) error {
	return jp.BytesToPacketData(data, v)
}
