package server

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Properties holds the server.properties keys spec.md §6 names as
// recognized external configuration: the listen address, offline/online
// mode, the login-phase compression threshold, the player cap, and the
// MOTD text (stored with literal "\n" escapes, per §6's formatting rule).
type Properties struct {
	ServerIP                    string
	ServerPort                  int
	OnlineMode                  bool
	NetworkCompressionThreshold int
	MaxPlayers                  int
	MOTD                        string
	Version                     string
}

// DefaultProperties mirrors vanilla's own server.properties defaults for
// the keys this server recognizes.
func DefaultProperties() Properties {
	return Properties{
		ServerIP:                    "",
		ServerPort:                  25565,
		OnlineMode:                  true,
		NetworkCompressionThreshold: 256,
		MaxPlayers:                  20,
		MOTD:                        "A Minecraft Server",
		Version:                     "1.21.8",
	}
}

// LoadProperties reads a server.properties file (standard key=value text,
// '#' comment lines) at path, overriding DefaultProperties' fields for
// every recognized key present. No properties library appears anywhere in
// the retrieved pack for a plain key=value format this small — the closest
// precedent (meesudzu-jx2-paysys/internal/config) parses its own INI text
// by hand for the same reason, so this follows that idiom directly rather
// than reaching for a general-purpose parser.
func LoadProperties(path string) (Properties, error) {
	props := DefaultProperties()

	f, err := os.Open(path)
	if err != nil {
		return props, fmt.Errorf("server: open properties file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "server-ip":
			props.ServerIP = value
		case "server-port":
			if n, err := strconv.Atoi(value); err == nil {
				props.ServerPort = n
			}
		case "online-mode":
			props.OnlineMode = value == "true"
		case "network-compression-threshold":
			if n, err := strconv.Atoi(value); err == nil {
				props.NetworkCompressionThreshold = n
			}
		case "max-players":
			if n, err := strconv.Atoi(value); err == nil {
				props.MaxPlayers = n
			}
		case "motd":
			props.MOTD = value
		case "version":
			props.Version = value
		}
	}
	if err := scanner.Err(); err != nil {
		return props, fmt.Errorf("server: scan properties file: %w", err)
	}

	return props, nil
}

// Addr returns the listen address ServerIP:ServerPort derives, defaulting
// the host to all interfaces when ServerIP is empty.
func (p Properties) Addr() string {
	return fmt.Sprintf("%s:%d", p.ServerIP, p.ServerPort)
}
