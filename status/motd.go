package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jp "github.com/go-mclib/mcserver/java_protocol"
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/protoerr"
	"github.com/go-mclib/mcserver/session"
)

// Sample is one entry in the MOTD's player-hover sample list.
type Sample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Players is the MOTD's "players" object.
type Players struct {
	Max    int      `json:"max"`
	Online int      `json:"online"`
	Sample []Sample `json:"sample,omitempty"`
}

// VersionInfo is the MOTD's "version" object.
type VersionInfo struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

// Description is the MOTD's "description" object — a single chat component
// with a literal text field, the way the reference MOTD server builds it.
type Description struct {
	Text string `json:"text"`
}

// MOTD is the JSON document spec.md §4.I serialises for a status request.
type MOTD struct {
	Version            VersionInfo `json:"version"`
	Players            Players     `json:"players"`
	Description        Description `json:"description"`
	Favicon            string      `json:"favicon,omitempty"`
	EnforcesSecureChat bool        `json:"enforcesSecureChat"`
	PreviewsChat       bool        `json:"previewsChat"`
}

// InterpretMOTDText converts the literal `\n` escape server.properties
// stores for the motd key (spec.md §6) into a real newline. server.New calls
// this once when it builds the status Config (LoadProperties keeps the text
// literal); status itself only ever sees already-interpreted text.
func InterpretMOTDText(raw string) string {
	return strings.ReplaceAll(raw, `\n`, "\n")
}

// Config names the fields a running server supplies for its MOTD and ping
// handling. Protocol of -1 means "echo whatever the client handshook with",
// per spec.md §4.I's passthrough rule.
type Config struct {
	VersionName        string
	Protocol           int32
	MaxPlayers         int
	MOTD               string
	Favicon            string
	EnforcesSecureChat bool
	PreviewsChat       bool
	Sample             []Sample

	// OnlineCount reports the live player count; nil reports zero.
	OnlineCount func() int
}

// Handler answers one status-state connection: a single MOTD response,
// followed by an optional ping echo.
type Handler struct {
	Config Config
}

// NewHandler builds a Handler from cfg.
func NewHandler(cfg Config) *Handler {
	return &Handler{Config: cfg}
}

// Handle reads the status request, answers with the MOTD, then waits for an
// optional ping to echo. A client that disconnects without pinging is not
// an error — status is a one-shot query, not a held session.
func (h *Handler) Handle(c *session.Connection) error {
	frame, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if frame.ID != IDStatusRequestResponse {
		return protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"status: expected status request (0x00), got 0x%02X", frame.ID)
	}

	body, err := json.Marshal(h.buildMOTD(c.ProtocolVersion))
	if err != nil {
		return fmt.Errorf("status: marshal motd: %w", err)
	}
	if err := c.Send(IDStatusRequestResponse, &StatusResponseData{JSON: ns.String(body)}); err != nil {
		return err
	}

	frame, err = c.ReadFrame()
	if err != nil {
		var eof protoerr.CleanEOF
		if errors.As(err, &eof) {
			return nil
		}
		return err
	}
	if frame.ID != IDPingPong {
		return protoerr.NewProtocolError(protoerr.KindUnexpectedPacket,
			"status: expected ping (0x01), got 0x%02X", frame.ID)
	}
	var ping PingPongData
	if err := jp.BytesToPacketData(frame.Payload, &ping); err != nil {
		return fmt.Errorf("status: unmarshal ping: %w", err)
	}
	return c.Send(IDPingPong, &PingPongData{Payload: ping.Payload})
}

func (h *Handler) buildMOTD(clientProtocol int32) MOTD {
	protocol := h.Config.Protocol
	if protocol == -1 {
		protocol = clientProtocol
	}

	online := 0
	if h.Config.OnlineCount != nil {
		online = h.Config.OnlineCount()
	}

	return MOTD{
		Version: VersionInfo{Name: h.Config.VersionName, Protocol: protocol},
		Players: Players{
			Max:    h.Config.MaxPlayers,
			Online: online,
			Sample: h.Config.Sample,
		},
		Description:        Description{Text: h.Config.MOTD},
		Favicon:             h.Config.Favicon,
		EnforcesSecureChat: h.Config.EnforcesSecureChat,
		PreviewsChat:       h.Config.PreviewsChat,
	}
}
