package proxy

import (
	"net"
	"strconv"
	"strings"
)

// ResolveAddress turns a "host" or "host:port" target into a dialable
// "host:port" pair, per spec.md §4.H's SRV resolution rule: an explicit
// port is used as-is; otherwise `_minecraft._tcp.<host>` is looked up and
// its target/port substituted, falling back to the default Minecraft port.
// Grounded on (and kept near-identical to) the teacher's unexported
// resolveMinecraftAddress in java_protocol/base_tcp.go.
func ResolveAddress(address string) (string, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		host = address
		port = ""
	}

	if port != "" {
		return net.JoinHostPort(host, port), nil
	}

	_, srvRecords, err := net.LookupSRV("minecraft", "tcp", host)
	if err == nil && len(srvRecords) > 0 {
		srv := srvRecords[0]
		target := strings.TrimSuffix(srv.Target, ".")
		return net.JoinHostPort(target, strconv.Itoa(int(srv.Port))), nil
	}

	return net.JoinHostPort(host, "25565"), nil
}
