package rcon

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"testing"
	"time"
)

// fakeServer answers RCON requests on conn until it is closed.
type fakeServer struct {
	password    string
	sourceStyle bool
	silent      bool
	respond     func(cmd string) []string
}

func (s *fakeServer) serve(conn net.Conn) {
	defer conn.Close()

	// Read on a separate goroutine so writes never block the client's
	// pipelined request.
	packets := make(chan Packet, 16)
	go func() {
		defer close(packets)
		for {
			p, err := ReadPacket(conn)
			if err != nil {
				return
			}
			packets <- p
		}
	}()

	for p := range packets {
		if s.silent {
			continue
		}
		switch p.Type {
		case TypeAuth:
			if s.sourceStyle {
				WritePacket(conn, Packet{ID: p.ID, Type: TypeResponseValue})
			}
			id := p.ID
			if p.Body != s.password {
				id = -1
			}
			WritePacket(conn, Packet{ID: id, Type: TypeAuthResponse})
		case TypeExecCommand:
			frags := s.respond(p.Body)
			if len(frags) == 0 {
				frags = []string{""}
			}
			for _, frag := range frags {
				WritePacket(conn, Packet{ID: p.ID, Type: TypeResponseValue, Body: frag})
			}
		case TypeResponseValue:
			WritePacket(conn, Packet{ID: p.ID, Type: TypeResponseValue, Body: "Unknown request 0"})
		}
	}
}

// vanillaReadSize is the buffer a vanilla Minecraft server reads each
// request into.
const vanillaReadSize = 1460

// vanillaServer mimics the vanilla Minecraft RCON listener: one Read per
// request, and the connection is closed when that read does not hold
// exactly one packet. Responses are split into 4096 byte chunks, and an
// empty response is still sent as one empty packet.
type vanillaServer struct {
	password string
	respond  func(cmd string) []string
}

func (s *vanillaServer) serve(conn net.Conn) {
	defer conn.Close()

	authenticated := false
	buf := make([]byte, vanillaReadSize)
	for {
		n, err := conn.Read(buf)
		if err != nil || n < 4+headerSize {
			return
		}
		if size := int(binary.LittleEndian.Uint32(buf[:4])); n != size+4 {
			return
		}
		id := int32(binary.LittleEndian.Uint32(buf[4:8]))
		typ := int32(binary.LittleEndian.Uint32(buf[8:12]))
		body := string(buf[12 : n-2])

		switch typ {
		case TypeAuth:
			authenticated = body == s.password
			if !authenticated {
				id = -1
			}
			WritePacket(conn, Packet{ID: id, Type: TypeAuthResponse})
		case TypeExecCommand:
			if !authenticated {
				WritePacket(conn, Packet{ID: -1, Type: TypeAuthResponse})
				continue
			}
			resp := strings.Join(s.respond(body), "")
			for {
				k := min(4096, len(resp))
				WritePacket(conn, Packet{ID: id, Type: TypeResponseValue, Body: resp[:k]})
				resp = resp[k:]
				if resp == "" {
					break
				}
			}
		default:
			WritePacket(conn, Packet{ID: id, Type: TypeResponseValue, Body: fmt.Sprintf("Unknown request %x", typ)})
		}
	}
}

func newTestClient(t *testing.T, srv *fakeServer) *Client {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	go srv.serve(serverConn)
	c := NewClient(clientConn, 2*time.Second)
	t.Cleanup(func() { c.Close() })
	return c
}

// listenVanilla starts srv on a loopback TCP listener and returns its
// address.
func listenVanilla(t *testing.T, srv *vanillaServer) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.serve(conn)
		}
	}()
	return ln.Addr().String()
}

func newVanillaClient(t *testing.T, srv *vanillaServer) *Client {
	t.Helper()
	c, err := Dial(context.Background(), listenVanilla(t, srv), 2*time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// servers lists the fake servers every request/response test runs against.
var servers = []struct {
	name    string
	connect func(t *testing.T, password string, respond func(string) []string) *Client
}{
	{"pipelined", func(t *testing.T, password string, respond func(string) []string) *Client {
		return newTestClient(t, &fakeServer{password: password, respond: respond})
	}},
	{"vanilla", func(t *testing.T, password string, respond func(string) []string) *Client {
		return newVanillaClient(t, &vanillaServer{password: password, respond: respond})
	}},
}

func echo(cmd string) []string { return []string{"echo: " + cmd} }

func TestPacket_RoundTrip(t *testing.T) {
	p := Packet{ID: 7, Type: TypeExecCommand, Body: "/list"}
	buf, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if size := binary.LittleEndian.Uint32(buf[:4]); size != uint32(headerSize+len(p.Body)) {
		t.Errorf("size field = %d", size)
	}
	if !bytes.HasSuffix(buf, []byte{0, 0}) {
		t.Error("packet does not end with two NUL bytes")
	}

	got, err := ReadPacket(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if got != p {
		t.Errorf("ReadPacket = %+v, want %+v", got, p)
	}
}

func TestReadPacket_Malformed(t *testing.T) {
	for _, size := range []uint32{0, 9, maxPacketSize + 1} {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], size)
		if _, err := ReadPacket(bytes.NewReader(buf[:])); !errors.Is(err, ErrMalformedPacket) {
			t.Errorf("size %d: err = %v, want ErrMalformedPacket", size, err)
		}
	}
}

func TestClient_AuthenticateAndCommand(t *testing.T) {
	for _, srv := range servers {
		t.Run(srv.name, func(t *testing.T) {
			c := srv.connect(t, "secret", echo)
			ctx := context.Background()

			if err := c.Authenticate(ctx, "secret"); err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			for _, cmd := range []string{"/list", "/time set day", "/seed"} {
				got, err := c.Command(ctx, cmd)
				if err != nil {
					t.Fatalf("Command(%q): %v", cmd, err)
				}
				if got != "echo: "+cmd {
					t.Errorf("Command(%q) = %q", cmd, got)
				}
			}
		})
	}
}

func TestClient_SourceStyleAuth(t *testing.T) {
	srv := &fakeServer{password: "pw", sourceStyle: true, respond: echo}
	c := newTestClient(t, srv)
	if err := c.Authenticate(context.Background(), "pw"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
}

func TestClient_AuthFailed(t *testing.T) {
	for _, srv := range servers {
		t.Run(srv.name, func(t *testing.T) {
			c := srv.connect(t, "right", echo)
			err := c.Authenticate(context.Background(), "wrong")
			if !errors.Is(err, ErrAuthFailed) {
				t.Fatalf("err = %v, want ErrAuthFailed", err)
			}
		})
	}
}

func TestClient_FragmentedResponse(t *testing.T) {
	long := strings.Repeat("x", 4096)
	respond := func(string) []string {
		return []string{long, "/help <command>", "/list"}
	}

	for _, srv := range servers {
		t.Run(srv.name, func(t *testing.T) {
			c := srv.connect(t, "pw", respond)
			ctx := context.Background()
			if err := c.Authenticate(ctx, "pw"); err != nil {
				t.Fatalf("Authenticate: %v", err)
			}

			// Twice, so leftovers from the first exchange would corrupt the second.
			for i := 0; i < 2; i++ {
				got, err := c.Command(ctx, "/help")
				if err != nil {
					t.Fatalf("Command: %v", err)
				}
				if want := long + "/help <command>/list"; got != want {
					t.Errorf("response length %d, want %d", len(got), len(want))
				}
			}
		})
	}
}

func TestClient_EmptyResponse(t *testing.T) {
	for _, srv := range servers {
		t.Run(srv.name, func(t *testing.T) {
			c := srv.connect(t, "pw", func(string) []string { return nil })
			ctx := context.Background()
			if err := c.Authenticate(ctx, "pw"); err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			got, err := c.Command(ctx, "/save-all")
			if err != nil {
				t.Fatalf("Command: %v", err)
			}
			if got != "" {
				t.Errorf("Command = %q, want empty", got)
			}
		})
	}
}

func TestVanillaServer_DropsCoalescedPackets(t *testing.T) {
	addr := listenVanilla(t, &vanillaServer{password: "pw", respond: echo})
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * time.Second))

	var out bytes.Buffer
	for _, p := range []Packet{
		{ID: 1, Type: TypeAuth, Body: "pw"},
		{ID: 2, Type: TypeResponseValue},
	} {
		buf, _ := p.MarshalBinary()
		out.Write(buf)
	}
	if _, err := conn.Write(out.Bytes()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadPacket(conn); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadPacket err = %v, want EOF after two packets in one write", err)
	}
}

func TestClient_CommandTooLong(t *testing.T) {
	srv := &fakeServer{password: "pw", respond: echo}
	c := newTestClient(t, srv)
	_, err := c.Command(context.Background(), strings.Repeat("a", MaxCommandLength+1))
	if !errors.Is(err, ErrCommandTooLong) {
		t.Fatalf("err = %v, want ErrCommandTooLong", err)
	}
}

func TestClient_ContextDeadline(t *testing.T) {
	srv := &fakeServer{silent: true}
	c := newTestClient(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Command(ctx, "/list")
	if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, os.ErrDeadlineExceeded) {
		t.Fatalf("err = %v, want a deadline error", err)
	}
}

func TestDial(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	defer ln.Close()

	srv := &fakeServer{password: "pw", respond: echo}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		srv.serve(conn)
	}()

	ctx := context.Background()
	c, err := Dial(ctx, ln.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if err := c.Authenticate(ctx, "pw"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got, err := c.Command(ctx, "/seed"); err != nil || got != "echo: /seed" {
		t.Errorf("Command = %q, %v", got, err)
	}
}
