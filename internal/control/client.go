package control

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/google/uuid"
)

// Client is a single connection to a Server, used by wpmctl to send one
// request and decode its reply (or, for Log, to stream lines).
type Client struct {
	conn net.Conn
}

// Dial connects to endpoint (a named pipe path on Windows, a socket path
// elsewhere).
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	conn, err := dial(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", endpoint, err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Call sends req and returns its decoded Reply. Do not use for CmdLog; use
// StreamLog instead.
func (c *Client) Call(req Request) (Reply, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := writeJSON(c.conn, req); err != nil {
		return Reply{}, fmt.Errorf("sending request: %w", err)
	}
	var reply Reply
	if err := readJSON(c.conn, &reply); err != nil {
		return Reply{}, fmt.Errorf("reading reply: %w", err)
	}
	return reply, nil
}

// decodePayload unmarshals a successful Reply's Payload into v.
func decodePayload(reply Reply, v interface{}) error {
	if !reply.OK {
		return fmt.Errorf("%s", reply.Error)
	}
	if len(reply.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(reply.Payload, v)
}

// Start sends a Start request for names and returns the per-unit result map.
func (c *Client) Start(names []string) (map[string]string, error) {
	return c.batch(CmdStart, names)
}

// Stop sends a Stop request for names and returns the per-unit result map.
func (c *Client) Stop(names []string) (map[string]string, error) {
	return c.batch(CmdStop, names)
}

// Restart sends a Restart request for names and returns the per-unit result map.
func (c *Client) Restart(names []string) (map[string]string, error) {
	return c.batch(CmdRestart, names)
}

// Reset sends a Reset request for names and returns the per-unit result map.
func (c *Client) Reset(names []string) (map[string]string, error) {
	return c.batch(CmdReset, names)
}

func (c *Client) batch(cmd Command, names []string) (map[string]string, error) {
	reply, err := c.Call(Request{Cmd: cmd, Names: names})
	if err != nil {
		return nil, err
	}
	var result BatchResult
	if err := decodePayload(reply, &result); err != nil {
		return nil, err
	}
	return result.Errors, nil
}

// Reload sends a Reload request.
func (c *Client) Reload() error {
	reply, err := c.Call(Request{Cmd: CmdReload})
	if err != nil {
		return err
	}
	return decodePayload(reply, nil)
}

// State sends a State request.
func (c *Client) State() (StatePayload, error) {
	reply, err := c.Call(Request{Cmd: CmdState})
	if err != nil {
		return StatePayload{}, err
	}
	var payload StatePayload
	err = decodePayload(reply, &payload)
	return payload, err
}

// Status sends a Status request for name.
func (c *Client) Status(name string) (StatusPayload, error) {
	reply, err := c.Call(Request{Cmd: CmdStatus, Name: name})
	if err != nil {
		return StatusPayload{}, err
	}
	var payload StatusPayload
	err = decodePayload(reply, &payload)
	return payload, err
}

// Rebuild sends a Rebuild request for name.
func (c *Client) Rebuild(name string) error {
	reply, err := c.Call(Request{Cmd: CmdRebuild, Name: name})
	if err != nil {
		return err
	}
	return decodePayload(reply, nil)
}

// ExampleGen sends an ExampleGen request for dir.
func (c *Client) ExampleGen(dir string) error {
	reply, err := c.Call(Request{Cmd: CmdExampleGen, Dir: dir})
	if err != nil {
		return err
	}
	return decodePayload(reply, nil)
}

// Units sends a Units request.
func (c *Client) Units() (UnitsPayload, error) {
	reply, err := c.Call(Request{Cmd: CmdUnits})
	if err != nil {
		return UnitsPayload{}, err
	}
	var payload UnitsPayload
	err = decodePayload(reply, &payload)
	return payload, err
}

// Shutdown sends a Shutdown request.
func (c *Client) Shutdown() error {
	reply, err := c.Call(Request{Cmd: CmdShutdown})
	if err != nil {
		return err
	}
	return decodePayload(reply, nil)
}

// StreamLog sends a Log request for name and invokes onLine for every line
// received until the server closes the connection, ctx is cancelled, or
// onLine returns a non-nil error (which is then returned to the caller).
func (c *Client) StreamLog(ctx context.Context, name string, onLine func(line string) error) error {
	req := Request{Cmd: CmdLog, Name: name}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := writeJSON(c.conn, req); err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	var ack Reply
	if err := readJSON(c.conn, &ack); err != nil {
		return fmt.Errorf("reading ack: %w", err)
	}
	if !ack.OK {
		return fmt.Errorf("%s", ack.Error)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = c.conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	for {
		var line LogLine
		if err := readJSON(c.conn, &line); err != nil {
			return nil // server closed the stream or ctx cancelled it
		}
		if err := onLine(line.Line); err != nil {
			return err
		}
	}
}
