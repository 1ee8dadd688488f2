package login

import (
	"crypto/md5"

	ns "github.com/go-mclib/mcserver/net_structures"
)

// dnsNamespace is the well-known UUIDv3/v5 DNS namespace
// (6ba7b810-9dad-11d1-80b4-00c04fd430c8), per RFC 4122 appendix C.
var dnsNamespace = [16]byte{
	0x6b, 0xa7, 0xb8, 0x10,
	0x9d, 0xad,
	0x11, 0xd1,
	0x80, 0xb4,
	0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8,
}

// OfflineUUID derives the name-based UUIDv3 (MD5, DNS namespace) used for
// offline-mode players: the name hashed is "OfflinePlayer:" + username, per
// spec.md §4.A.
func OfflineUUID(username string) ns.UUID {
	h := md5.New()
	h.Write(dnsNamespace[:])
	h.Write([]byte("OfflinePlayer:" + username))
	sum := h.Sum(nil)

	sum[6] = (sum[6] & 0x0F) | 0x30 // version 3
	sum[8] = (sum[8] & 0x3F) | 0x80 // RFC 4122 variant

	var u ns.UUID
	copy(u[:], sum)
	return u
}
