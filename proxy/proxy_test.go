package proxy_test

import (
	"net"
	"testing"
	"time"

	jp "github.com/go-mclib/mcserver/java_protocol"
	"github.com/go-mclib/mcserver/login"
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/proxy"
	"github.com/go-mclib/mcserver/session"
	"go.uber.org/zap"
)

func mustMarshal(t *testing.T, v any) ns.ByteArray {
	t.Helper()
	data, err := jp.PacketDataToBytes(v)
	if err != nil {
		t.Fatalf("marshal %T: %v", v, err)
	}
	return data
}

// TestTransferProxyRelaysLoginAndCapturesIdentity drives a fake upstream
// server through a real net.Listen socket, and a fake client through a
// net.Pipe, checking spec.md §4.H's capture sequence end to end: the
// upstream receives a synthesized Login Start carrying the client's
// username, Set Compression and
// Login Success come back through the proxy with the threshold applied in
// step, and the proxy's own Connection records the captured identity.
func TestTransferProxyRelaysLoginAndCapturesIdentity(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	upstreamDone := make(chan error, 1)
	go func() {
		upstreamDone <- func() error {
			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			defer conn.Close()
			codec := session.NewCodec()

			hsFrame, err := codec.ReadFrame(conn)
			if err != nil {
				return err
			}
			if hsFrame.ID != 0x00 {
				t.Errorf("handshake id = 0x%02X, want 0x00", hsFrame.ID)
			}

			loginFrame, err := codec.ReadFrame(conn)
			if err != nil {
				return err
			}
			if loginFrame.ID != login.IDLoginStart {
				t.Errorf("login start id = 0x%02X, want 0x%02X", loginFrame.ID, login.IDLoginStart)
			}
			var start login.LoginStartData
			if err := jp.BytesToPacketData(loginFrame.Payload, &start); err != nil {
				return err
			}
			if string(start.Name) != "Alex" {
				t.Errorf("username = %q, want Alex", start.Name)
			}

			scPayload, err := jp.PacketDataToBytes(&login.SetCompressionData{Threshold: 64})
			if err != nil {
				return err
			}
			if err := codec.WriteFrame(conn, &session.Frame{ID: login.IDSetCompression, Payload: scPayload}); err != nil {
				return err
			}
			codec.Threshold = 64

			upstreamUUID, err := ns.NewUUID("11111111-1111-1111-1111-111111111111")
			if err != nil {
				return err
			}
			successPayload, err := jp.PacketDataToBytes(&login.LoginSuccessData{UUID: upstreamUUID, Username: "Alex"})
			if err != nil {
				return err
			}
			return codec.WriteFrame(conn, &session.Frame{ID: login.IDLoginSuccess, Payload: successPayload})
		}()
	}()

	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	c := session.NewConnection(serverConn, zap.NewNop())
	c.State = session.StateLogin
	c.ProtocolVersion = 772

	h := proxy.NewHandler(proxy.Config{Target: ln.Addr().String()})

	done := make(chan error, 1)
	go func() { done <- h.Handle(c) }()

	clientCodec := session.NewCodec()
	clientUUID, err := ns.NewUUID("00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("NewUUID: %v", err)
	}
	startPayload := mustMarshal(t, &login.LoginStartData{Name: "Alex", PlayerUUID: clientUUID})
	if err := clientCodec.WriteFrame(clientConn, &session.Frame{ID: login.IDLoginStart, Payload: startPayload}); err != nil {
		t.Fatalf("send login start: %v", err)
	}

	frame, err := clientCodec.ReadFrame(clientConn)
	if err != nil {
		t.Fatalf("recv set compression: %v", err)
	}
	if frame.ID != login.IDSetCompression {
		t.Fatalf("frame id = 0x%02X, want set compression", frame.ID)
	}
	clientCodec.Threshold = 64

	frame, err = clientCodec.ReadFrame(clientConn)
	if err != nil {
		t.Fatalf("recv login success: %v", err)
	}
	if frame.ID != login.IDLoginSuccess {
		t.Fatalf("frame id = 0x%02X, want login success", frame.ID)
	}
	var success login.LoginSuccessData
	if err := jp.BytesToPacketData(frame.Payload, &success); err != nil {
		t.Fatalf("unmarshal login success: %v", err)
	}
	if string(success.Username) != "Alex" {
		t.Errorf("username = %q, want Alex", success.Username)
	}

	clientConn.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Handle did not return after client closed")
	}

	if c.Identity == nil || c.Identity.Username != "Alex" {
		t.Errorf("identity not captured on the Connection: %+v", c.Identity)
	}
	if c.State != session.StateConfiguration {
		t.Errorf("state = %v, want configuration", c.State)
	}

	select {
	case err := <-upstreamDone:
		if err != nil {
			t.Errorf("upstream goroutine: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("upstream goroutine did not finish")
	}
}

func TestResolveAddressKeepsExplicitPort(t *testing.T) {
	addr, err := proxy.ResolveAddress("example.invalid:12345")
	if err != nil {
		t.Fatalf("ResolveAddress: %v", err)
	}
	if addr != "example.invalid:12345" {
		t.Errorf("addr = %q, want example.invalid:12345", addr)
	}
}
