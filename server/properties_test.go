package server_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-mclib/mcserver/server"
)

func TestLoadPropertiesOverridesRecognizedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.properties")
	content := "# a comment\n" +
		"server-port=25577\n" +
		"online-mode=false\n" +
		"network-compression-threshold=128\n" +
		"max-players=5\n" +
		"motd=Welcome\\nto the server\n" +
		"unknown-key=ignored\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write properties: %v", err)
	}

	props, err := server.LoadProperties(path)
	if err != nil {
		t.Fatalf("LoadProperties: %v", err)
	}

	if props.ServerPort != 25577 {
		t.Errorf("ServerPort = %d, want 25577", props.ServerPort)
	}
	if props.OnlineMode {
		t.Errorf("OnlineMode = true, want false")
	}
	if props.NetworkCompressionThreshold != 128 {
		t.Errorf("NetworkCompressionThreshold = %d, want 128", props.NetworkCompressionThreshold)
	}
	if props.MaxPlayers != 5 {
		t.Errorf("MaxPlayers = %d, want 5", props.MaxPlayers)
	}
	if props.MOTD != `Welcome\nto the server` {
		t.Errorf("MOTD = %q, want literal backslash-n preserved", props.MOTD)
	}
}

func TestLoadPropertiesMissingFileReturnsDefaults(t *testing.T) {
	props, err := server.LoadProperties(filepath.Join(t.TempDir(), "missing.properties"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if props != server.DefaultProperties() {
		t.Errorf("props on error = %+v, want DefaultProperties()", props)
	}
}

func TestPropertiesAddrDefaultsHostToAllInterfaces(t *testing.T) {
	props := server.DefaultProperties()
	props.ServerPort = 25565
	if got, want := props.Addr(), ":25565"; got != want {
		t.Errorf("Addr() = %q, want %q", got, want)
	}
}
