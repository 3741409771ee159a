// Package rcon implements the client side of the Source RCON protocol as
// spoken by Minecraft servers.
package rcon

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Packet types. Exec command and auth response share a value; direction
// tells them apart.
const (
	TypeResponseValue int32 = 0
	TypeExecCommand   int32 = 2
	TypeAuthResponse  int32 = 2
	TypeAuth          int32 = 3
)

const (
	// headerSize counts the id, type and the two trailing NUL bytes.
	headerSize = 10

	// MaxCommandLength is the longest command body a server accepts.
	MaxCommandLength = 1446

	// maxPacketSize bounds the size field of an incoming packet.
	maxPacketSize = 4096 + headerSize
)

var (
	// ErrMalformedPacket is returned for packets with an impossible size.
	ErrMalformedPacket = errors.New("malformed rcon packet")
	// ErrCommandTooLong is returned for commands over MaxCommandLength bytes.
	ErrCommandTooLong = errors.New("rcon command too long")
)

// Packet is a single RCON frame.
type Packet struct {
	ID   int32
	Type int32
	Body string
}

// MarshalBinary encodes the packet with its little-endian size prefix.
func (p Packet) MarshalBinary() ([]byte, error) {
	size := headerSize + len(p.Body)
	buf := make([]byte, 4+size)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(size))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.ID))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(p.Type))
	copy(buf[12:], p.Body)
	return buf, nil
}

// WritePacket encodes p to w in a single write.
func WritePacket(w io.Writer, p Packet) error {
	buf, _ := p.MarshalBinary()
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write packet: %w", err)
	}
	return nil
}

// ReadPacket reads one packet from r.
func ReadPacket(r io.Reader) (Packet, error) {
	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return Packet{}, err
	}
	size := int32(binary.LittleEndian.Uint32(sizeBuf[:]))
	if size < headerSize || size > maxPacketSize {
		return Packet{}, fmt.Errorf("%w: size %d", ErrMalformedPacket, size)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Packet{}, fmt.Errorf("failed to read packet body: %w", err)
	}

	return Packet{
		ID:   int32(binary.LittleEndian.Uint32(buf[0:4])),
		Type: int32(binary.LittleEndian.Uint32(buf[4:8])),
		Body: string(buf[8 : size-2]),
	}, nil
}
