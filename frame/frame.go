// Package frame implements the length-prefixed frame codec: the
// <VarInt Length><Payload> envelope every packet travels in, the legacy
// 1.6 server-list-ping escape hatch that precedes it, and the optional
// compression envelope nested inside the payload.
package frame

import (
	"fmt"
	"io"
	"log"

	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/wire"
)

// legacyPingMarker is the VarInt frame length a pre-1.7 client's server-list
// ping decodes to; it is never a real packet length at the handshake phase.
const legacyPingMarker = 254

// legacyPingPluginChannel is the first byte of the legacy ping payload.
const legacyPingPluginChannel = 0xFA

// Result is the decoded form of one frame read off the wire.
type Result struct {
	// Data is the packet's decompressed <VarInt PacketID><Body>, ready to
	// be wrapped in a packet.Packet. Nil when LegacyPing is true.
	Data []byte
	// LegacyPing is true when the frame was a pre-1.7 server-list ping;
	// no packet is emitted for it.
	LegacyPing bool
}

// ReadFrame reads one frame from r. compressionEnabled must match the
// session's current compression state at the time of the read.
func ReadFrame(r io.Reader, phase proto.Phase, direction proto.Direction, compressionEnabled bool, logger *log.Logger) (Result, error) {
	length, err := readVarIntFromReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("frame: read length: %w", err)
	}

	if phase == proto.PhaseHandshake && direction == proto.ClientToServer && int(length) == legacyPingMarker {
		if err := discardLegacyPing(r); err != nil {
			return Result{}, fmt.Errorf("frame: legacy ping: %w", err)
		}
		return Result{LegacyPing: true}, nil
	}

	if length < 0 {
		return Result{}, fmt.Errorf("frame: negative length %d", length)
	}
	payload := make([]byte, int(length))
	if _, err := io.ReadFull(r, payload); err != nil {
		return Result{}, fmt.Errorf("frame: read payload: %w", err)
	}

	if !compressionEnabled {
		return Result{Data: payload}, nil
	}

	buf := wire.NewBuffer(payload)
	uncompressedLen, err := wire.DecodeVarInt(buf)
	if err != nil {
		return Result{}, fmt.Errorf("frame: read uncompressed length: %w", err)
	}
	if uncompressedLen == 0 {
		return Result{Data: buf.Bytes()}, nil
	}

	decompressed, err := decompressZlib(buf.Bytes())
	if err != nil {
		if logger != nil {
			logger.Printf("frame: decompression failed, treating as uncompressed: %v", err)
		}
		return Result{Data: buf.Bytes()}, nil
	}
	return Result{Data: decompressed}, nil
}

// EncodeFrame renders data (a packet's <VarInt PacketID><Body>) as one
// complete, self-contained frame: the compression envelope when enabled,
// preceded by the outer VarInt length. The result is ready to be
// concatenated with other encoded frames and written to the socket as a
// single batch, or written on its own.
func EncodeFrame(data []byte, compressionEnabled bool, threshold int) ([]byte, error) {
	var body []byte
	if !compressionEnabled {
		body = data
	} else if len(data) >= threshold {
		compressed, err := compressZlib(data)
		if err != nil {
			return nil, fmt.Errorf("frame: encode: %w", err)
		}
		lenBuf := &wire.Buffer{}
		if err := wire.VarInt(len(data)).Encode(lenBuf); err != nil {
			return nil, err
		}
		body = append(lenBuf.Bytes(), compressed...)
	} else {
		lenBuf := &wire.Buffer{}
		if err := wire.VarInt(0).Encode(lenBuf); err != nil {
			return nil, err
		}
		body = append(lenBuf.Bytes(), data...)
	}

	frameBuf := &wire.Buffer{}
	if err := wire.VarInt(len(body)).Encode(frameBuf); err != nil {
		return nil, fmt.Errorf("frame: encode: %w", err)
	}
	frameBuf.AddBytes(body)
	return frameBuf.Bytes(), nil
}

// WriteFrame encodes data as one frame and writes it to w.
func WriteFrame(w io.Writer, data []byte, compressionEnabled bool, threshold int) error {
	frame, err := EncodeFrame(data, compressionEnabled, threshold)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("frame: write: %w", err)
	}
	return nil
}

func readVarIntFromReader(r io.Reader) (wire.VarInt, error) {
	var value uint32
	var position uint
	single := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, single); err != nil {
			return 0, err
		}
		value |= uint32(single[0]&0x7F) << position
		if single[0]&0x80 == 0 {
			return wire.VarInt(value), nil
		}
		position += 7
		if position >= 35 {
			return 0, fmt.Errorf("%w", wire.ErrVarIntTooBig)
		}
	}
}

func discardLegacyPing(r io.Reader) error {
	header := make([]byte, 1)
	if _, err := io.ReadFull(r, header); err != nil {
		return err
	}
	if header[0] != legacyPingPluginChannel {
		return fmt.Errorf("unexpected legacy ping header byte %#x", header[0])
	}
	n, err := readUint16(r)
	if err != nil {
		return err
	}
	if _, err := io.CopyN(io.Discard, r, int64(n)+2); err != nil {
		return err
	}
	restLen, err := readUint16(r)
	if err != nil {
		return err
	}
	if _, err := io.CopyN(io.Discard, r, int64(restLen)); err != nil {
		return err
	}
	return nil
}

func readUint16(r io.Reader) (uint16, error) {
	buf := make([]byte, 2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}
