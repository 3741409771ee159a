package rcon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAuthFailed is returned when the server rejects the password or a
// command is sent before authenticating.
var ErrAuthFailed = errors.New("rcon authentication failed")

// Client is a connection to an RCON server. Methods may be called from
// several goroutines; requests are serialized.
type Client struct {
	conn    net.Conn
	timeout time.Duration

	mu     sync.Mutex
	nextID int32
}

// Dial connects to addr. timeout bounds the dial and, when ctx carries no
// deadline, every later request.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return NewClient(conn, timeout), nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, timeout time.Duration) *Client {
	return &Client{conn: conn, timeout: timeout}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Authenticate logs in with password.
func (c *Client) Authenticate(ctx context.Context, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.withDeadline(ctx, func() error {
		id := c.id()
		if err := WritePacket(c.conn, Packet{ID: id, Type: TypeAuth, Body: password}); err != nil {
			return err
		}
		for {
			p, err := ReadPacket(c.conn)
			if err != nil {
				return fmt.Errorf("failed to read auth response: %w", err)
			}
			// Some servers send an empty response value before the auth response.
			if p.Type != TypeAuthResponse {
				continue
			}
			if p.ID == -1 {
				return ErrAuthFailed
			}
			if p.ID != id {
				return fmt.Errorf("%w: auth response id %d, want %d", ErrMalformedPacket, p.ID, id)
			}
			return nil
		}
	})
}

// Command runs cmd and returns the response body. Responses split across
// several packets are joined: once the first reply arrives a terminator
// request is sent, and its reply marks the end of the response. Each
// packet goes out in its own write, since vanilla servers drop the
// connection when one read holds more than a single packet.
func (c *Client) Command(ctx context.Context, cmd string) (string, error) {
	if len(cmd) > MaxCommandLength {
		return "", fmt.Errorf("%w: %d bytes, max %d", ErrCommandTooLong, len(cmd), MaxCommandLength)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var body strings.Builder
	err := c.withDeadline(ctx, func() error {
		id := c.id()
		if err := WritePacket(c.conn, Packet{ID: id, Type: TypeExecCommand, Body: cmd}); err != nil {
			return fmt.Errorf("failed to send command: %w", err)
		}

		term := int32(0)
		for {
			p, err := ReadPacket(c.conn)
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}
			switch {
			case p.ID == -1:
				return ErrAuthFailed
			case term != 0 && p.ID == term:
				return nil
			case p.ID == id:
				body.WriteString(p.Body)
				if term == 0 {
					term = c.id()
					if err := WritePacket(c.conn, Packet{ID: term, Type: TypeResponseValue}); err != nil {
						return fmt.Errorf("failed to send terminator: %w", err)
					}
				}
			}
		}
	})
	if err != nil {
		return "", err
	}
	return body.String(), nil
}

func (c *Client) id() int32 {
	c.nextID++
	if c.nextID <= 0 {
		c.nextID = 1
	}
	return c.nextID
}

// withDeadline runs fn with the connection deadline taken from ctx or the
// client timeout, and aborts blocked I/O when ctx is cancelled.
func (c *Client) withDeadline(ctx context.Context, fn func() error) error {
	deadline, ok := ctx.Deadline()
	if !ok && c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	err := fn()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
