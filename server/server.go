// Package server wires the subprotocol handlers together into a running
// listener, the accept-loop shape ChickenIQ-VibeShitCraft's pkg/server
// establishes (net.Listen, a goroutine-per-connection accept loop, a
// stopCh closed by Stop) generalized from that single-file server onto
// this module's session/login/config/play/status/proxy packages.
package server

import (
	"fmt"
	"net"
	"sync"

	"github.com/go-mclib/mcserver/audit"
	"github.com/go-mclib/mcserver/command"
	"github.com/go-mclib/mcserver/config"
	"github.com/go-mclib/mcserver/login"
	"github.com/go-mclib/mcserver/play"
	"github.com/go-mclib/mcserver/registry"
	"github.com/go-mclib/mcserver/session"
	"github.com/go-mclib/mcserver/status"
	"github.com/go-mclib/mcserver/world"
	"go.uber.org/zap"
)

// Server owns the listener, the shared player set, and the handler chain
// every accepted connection is dispatched into.
type Server struct {
	props Properties
	log   *zap.Logger
	audit *audit.Sink

	listener net.Listener
	stopCh   chan struct{}
	wg       sync.WaitGroup

	world    *world.Set
	palette  *registry.Palette
	handlers session.Handlers
}

// New builds a Server from props, wiring status/login/config/play into a
// single session.Handlers chain and loading the static palette/registry
// assets once. auditSink may be nil (audit logging disabled).
func New(props Properties, log *zap.Logger, auditSink *audit.Sink) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	palette, err := registry.LoadPalette()
	if err != nil {
		return nil, fmt.Errorf("server: load palette: %w", err)
	}
	push, err := registry.LoadPush()
	if err != nil {
		return nil, fmt.Errorf("server: load registry push: %w", err)
	}

	s := &Server{
		props:   props,
		log:     log,
		audit:   auditSink,
		stopCh:  make(chan struct{}),
		world:   world.NewSet(),
		palette: palette,
	}

	statusHandler := status.NewHandler(status.Config{
		VersionName: props.Version,
		Protocol:    -1,
		MaxPlayers:  props.MaxPlayers,
		MOTD:        status.InterpretMOTDText(props.MOTD),
		OnlineCount: s.world.Len,
	})

	playHandler := play.NewHandler(play.Config{
		DimensionType:      0,
		DimensionName:      "minecraft:overworld",
		HashedSeed:         0,
		Gamemode:           0,
		SeaLevel:           63,
		ViewDistance:       10,
		SimulationDistance: 10,
		ChunkRadius:        3,
	}, s.world, palette)
	playHandler.Commands = demoCommandGraph()

	configHandler := config.NewHandler(config.Config{
		Brand:         "minecraft:mcords",
		FeatureFlags:  []string{"minecraft:vanilla"},
		ServerVersion: props.Version,
		Registry:      push,
	})
	configHandler.Next = s.wrapAudit(playHandler.Handle)

	loginHandler := login.NewHandler(login.Config{
		OnlineMode:           props.OnlineMode,
		CompressionThreshold: props.NetworkCompressionThreshold,
	})
	loginHandler.Next = configHandler.Handle

	s.handlers = session.Handlers{
		Status: statusHandler.Handle,
		Login:  loginHandler.Handle,
	}

	return s, nil
}

// wrapAudit records a join event (and, on return, a kick event) around
// next, the way a middleware wraps a handler — kept outside play itself
// since audit logging is an operator-facing concern, not a protocol one.
func (s *Server) wrapAudit(next func(c *session.Connection) error) func(c *session.Connection) error {
	return func(c *session.Connection) error {
		username, uuid := "", ""
		if c.Identity != nil {
			username = c.Identity.Username
			uuid = c.Identity.UUID.String()
		}
		if err := s.audit.LogJoin(username, uuid, c.RemoteAddr.String()); err != nil {
			s.log.Warn("audit: failed to record join", zap.Error(err))
		}

		err := next(c)

		reason := ""
		if err != nil {
			reason = err.Error()
		}
		if auditErr := s.audit.LogKick(username, uuid, reason); auditErr != nil {
			s.log.Warn("audit: failed to record kick", zap.Error(auditErr))
		}
		return err
	}
}

// Start begins listening on props.Addr() and accepting connections in the
// background; it returns once the listener is bound.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.props.Addr())
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.props.Addr(), err)
	}
	s.listener = ln
	s.log.Info("listening", zap.String("addr", s.props.Addr()))

	go s.acceptLoop()
	return nil
}

// Addr reports the listener's bound address. Only meaningful after Start
// has returned successfully — chiefly useful in tests that bind to ":0"
// and need the OS-assigned port.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Stop closes the listener, then waits for every connection's handler
// goroutine to return. Live connections are not closed by Stop, so it
// returns only once each of their peers has disconnected.
func (s *Server) Stop() {
	close(s.stopCh)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	s.log.Info("stopped")
}

func (s *Server) acceptLoop() {
	for {
		nc, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
				s.log.Warn("accept error", zap.Error(err))
				continue
			}
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(nc)
		}()
	}
}

func (s *Server) handleConnection(nc net.Conn) {
	defer nc.Close()
	c := session.NewConnection(nc, s.log)
	_ = session.Handle(c, s.handlers)
}

// demoCommandGraph builds the small command tree this server advertises
// on entry: a no-argument "list" command and a "tp <target>" command
// that asks the client for entity-name suggestions, matching spec.md
// §4.J's worked example.
func demoCommandGraph() *command.Graph {
	g := command.NewGraph()
	list := g.AddLiteral(g.Root, "list")
	g.SetExecutable(list)

	tp := g.AddLiteral(g.Root, "tp")
	target := g.AddArgument(tp, "target", "minecraft:entity", nil)
	g.SetSuggestions(target, "minecraft:ask_server")
	g.SetExecutable(target)

	return g
}
