package control

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// Command identifies one entry in the control message catalog. Every
// wpmctl subcommand maps to exactly one Command.
type Command string

const (
	CmdStart      Command = "start"
	CmdStop       Command = "stop"
	CmdRestart    Command = "restart"
	CmdReset      Command = "reset"
	CmdReload     Command = "reload"
	CmdState      Command = "state"
	CmdStatus     Command = "status"
	CmdLog        Command = "log"
	CmdRebuild    Command = "rebuild"
	CmdExampleGen Command = "examplegen"
	CmdUnits      Command = "units"
	CmdShutdown   Command = "shutdown"
)

// Request is one length-framed client message. Names carries the unit list
// for the batch commands (Start/Stop/Restart/Reset); Name carries the single
// unit target for Status/Log/Rebuild; Dir carries the destination directory
// for ExampleGen.
type Request struct {
	ID    string   `json:"id"`
	Cmd   Command  `json:"cmd"`
	Names []string `json:"names,omitempty"`
	Name  string   `json:"name,omitempty"`
	Dir   string   `json:"dir,omitempty"`
}

// Reply carries a command's outcome: OK plus a command-specific Payload on
// success, or a non-empty Error on failure. Every Reply echoes the Request's
// ID so a client pipelining several requests on one connection could match
// them up, though the current Client only ever has one in flight.
type Reply struct {
	ID      string          `json:"id"`
	OK      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// UnitSnapshot is the per-unit projection returned by State and Status.
type UnitSnapshot struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	State       string `json:"state"`
	Health      string `json:"health"`
	PID         int    `json:"pid,omitempty"`
	HasPID      bool   `json:"has_pid"`
	LastError   string `json:"last_error,omitempty"`
}

// StatusPayload is Status's reply payload: the unit's snapshot plus the
// current tail of its log file.
type StatusPayload struct {
	Unit    UnitSnapshot `json:"unit"`
	LogTail []string     `json:"log_tail,omitempty"`
}

// StatePayload is State's reply payload.
type StatePayload struct {
	Units []UnitSnapshot `json:"units"`
}

// BatchResult is the reply payload for Start/Stop/Restart/Reset: one entry
// per unit touched, empty string on success.
type BatchResult struct {
	Errors map[string]string `json:"errors"`
}

// UnitsPayload is Units's reply payload: the directory the daemon loads unit
// files from.
type UnitsPayload struct {
	Dir string `json:"dir"`
}

// LogLine is a single streamed line sent as its own frame, following the
// initial Reply to a Log request, until the client disconnects.
type LogLine struct {
	Line string `json:"line"`
}

const maxFrameSize = 16 * 1024 * 1024

// writeFrame writes a uint32-big-endian length prefix followed by data.
func writeFrame(w io.Writer, data []byte) error {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(data)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// readFrame reads one length-prefixed frame.
func readFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds maximum %d", n, maxFrameSize)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeFrame(w, data)
}

func readJSON(r io.Reader, v interface{}) error {
	data, err := readFrame(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
