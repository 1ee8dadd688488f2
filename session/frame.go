// Package session implements the frame codec and the four-state session
// state machine: the connection-level plumbing described in
// spec.md §4.B/§4.C, built on the flat net_structures primitives and the
// teacher's cipher-transparent java_protocol.Conn.
package session

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"

	jp "github.com/go-mclib/mcserver/java_protocol"
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/protoerr"
)

// MaxFrameLength is the largest outer length, and the largest permitted
// uncompressed payload length, per spec.md §4.B ("reject outer length
// outside [0, 2^21]").
const MaxFrameLength = 1 << 21

// Frame is a decoded (packet_id, payload) pair: the atomic unit dispatched
// by the state machine.
type Frame struct {
	ID      ns.VarInt
	Payload ns.ByteArray
}

// Codec owns the compression threshold for one direction of a connection
// and reads/writes Frames against an underlying cipher-transparent stream.
//
// Threshold semantics: negative disables compression. Once set
// non-negative it is never reset (spec.md §3's Connection invariant) — that
// invariant is enforced by the caller (session.Connection), not here.
type Codec struct {
	Threshold int
}

// NewCodec returns a Codec with compression disabled.
func NewCodec() *Codec {
	return &Codec{Threshold: -1}
}

// ReadFrame reads one frame from r, following spec.md §4.B's receive path.
func (c *Codec) ReadFrame(r io.Reader) (*Frame, error) {
	length, err := decodeVarIntFrom(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, protoerr.CleanEOF{}
		}
		if errors.Is(err, errVarIntTooBig) {
			return nil, protoerr.NewProtocolError(protoerr.KindMalformedLength, "%v", err)
		}
		// Anything else here (a timeout, a reset) is a transport failure,
		// not a malformed encoding — preserve it via TransportError.Unwrap
		// so callers imposing a soft read deadline (config's client-info
		// collection window) can tell a timeout apart from a protocol fault.
		return nil, &protoerr.TransportError{Err: err}
	}
	if length < 0 || length > MaxFrameLength {
		return nil, protoerr.NewProtocolError(protoerr.KindOutOfBoundsFrame, "length %d", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, protoerr.NewProtocolError(protoerr.KindMalformedPayload, "short read: %v", err)
		}
		return nil, &protoerr.TransportError{Err: err}
	}

	sub := bytes.NewReader(body)

	var idAndPayload []byte
	if c.Threshold >= 0 {
		uncompLen, err := decodeVarIntFrom(sub)
		if err != nil {
			return nil, protoerr.NewProtocolError(protoerr.KindMalformedLength, "data length: %v", err)
		}
		if uncompLen < 0 || uncompLen > MaxFrameLength {
			return nil, protoerr.NewProtocolError(protoerr.KindOutOfBoundsFrame, "uncompressed length %d", uncompLen)
		}

		rest, err := io.ReadAll(sub)
		if err != nil {
			return nil, &protoerr.TransportError{Err: err}
		}

		if uncompLen == 0 {
			// declared uncompressed despite compression being enabled; only
			// legal if it wouldn't have needed compressing anyway.
			if len(rest) > c.Threshold {
				return nil, protoerr.NewProtocolError(protoerr.KindNotCompressed,
					"frame of %d bytes arrived uncompressed above threshold %d", len(rest), c.Threshold)
			}
			idAndPayload = rest
		} else {
			zr, err := zlib.NewReader(bytes.NewReader(rest))
			if err != nil {
				return nil, protoerr.NewProtocolError(protoerr.KindDecompression, "%v", err)
			}
			defer zr.Close()

			decoded, err := io.ReadAll(io.LimitReader(zr, int64(uncompLen)+1))
			if err != nil {
				return nil, protoerr.NewProtocolError(protoerr.KindDecompression, "%v", err)
			}
			if len(decoded) != int(uncompLen) {
				return nil, protoerr.NewProtocolError(protoerr.KindDecompression,
					"declared %d bytes, got %d", uncompLen, len(decoded))
			}
			idAndPayload = decoded
		}
	} else {
		rest, err := io.ReadAll(sub)
		if err != nil {
			return nil, &protoerr.TransportError{Err: err}
		}
		idAndPayload = rest
	}

	idReader := bytes.NewReader(idAndPayload)
	id, err := decodeVarIntFrom(idReader)
	if err != nil {
		return nil, protoerr.NewProtocolError(protoerr.KindDecodeID, "%v", err)
	}
	payload, _ := io.ReadAll(idReader)

	return &Frame{ID: ns.VarInt(id), Payload: payload}, nil
}

// WriteFrame writes one frame to w, following spec.md §4.B's send path.
func (c *Codec) WriteFrame(w io.Writer, f *Frame) error {
	idBytes, err := f.ID.ToBytes()
	if err != nil {
		return err
	}
	idAndPayload := append(append(ns.ByteArray{}, idBytes...), f.Payload...)

	var packetContent []byte
	if c.Threshold >= 0 {
		if len(idAndPayload) >= c.Threshold {
			compressed := compressZlib(idAndPayload)
			dataLenBytes, err := ns.VarInt(len(idAndPayload)).ToBytes()
			if err != nil {
				return err
			}
			packetContent = append(dataLenBytes, compressed...)
		} else {
			zero, _ := ns.VarInt(0).ToBytes()
			packetContent = append(zero, idAndPayload...)
		}
	} else {
		packetContent = idAndPayload
	}

	if len(packetContent) > MaxFrameLength {
		return protoerr.NewProtocolError(protoerr.KindOutOfBoundsFrame, "outgoing frame %d bytes", len(packetContent))
	}

	lengthBytes, err := ns.VarInt(len(packetContent)).ToBytes()
	if err != nil {
		return err
	}

	full := append(lengthBytes, packetContent...)
	if _, err := w.Write(full); err != nil {
		return &protoerr.TransportError{Err: err}
	}
	return nil
}

func decodeVarIntFrom(r io.Reader) (int32, error) {
	var value uint32
	var position uint
	buf := make([]byte, 1)

	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, err
		}
		b := buf[0]
		value |= uint32(b&0x7F) << position

		if b&0x80 == 0 {
			return int32(value), nil
		}

		position += 7
		if position >= 32 {
			return 0, errVarIntTooBig
		}
	}
}

var errVarIntTooBig = errors.New("VarInt too big")

func compressZlib(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

// ensure java_protocol.Conn satisfies io.ReadWriter for Codec's use.
var _ io.ReadWriter = (*jp.Conn)(nil)
