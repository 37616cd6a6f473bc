package control

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"wpm/internal/config"
	"wpm/internal/resourcestore"
	"wpm/internal/scheduler"
	"wpm/internal/unit"
	"wpm/pkg/logging"
)

// Evictor removes a unit's cached executable/resources, so Server's Rebuild
// handler can force a fresh resolve without depending on the concrete
// *resourcestore.Store type.
type Evictor interface {
	Evict(e config.Executable) error
	Resolve(ctx context.Context, e config.Executable) (string, error)
}

// Reloader re-reads the unit directory and swaps in the result. Implemented
// by *app.Services.
type Reloader interface {
	Reload() error
	UnitDir() string
}

// Shutter drives the daemon's ordered shutdown sequence. It is invoked on a
// background goroutine when a Shutdown request is dispatched, without
// waiting for the reply to be written.
type Shutter interface {
	Shutdown(ctx context.Context)
}

// Server binds a control endpoint and dispatches incoming requests against
// a registry and scheduler shared with the rest of the daemon. One
// connection is served at a time per accepted client, but the listener
// accepts multiple concurrent client connections; ordering is guaranteed
// only within a single connection.
type Server struct {
	registry unit.Registry
	sched    *scheduler.Scheduler
	store    Evictor
	reloader Reloader
	shutter  Shutter

	endpoint string
	ln       net.Listener

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewServer builds a Server. Call ListenAndServe to start accepting
// connections.
func NewServer(endpoint string, registry unit.Registry, sched *scheduler.Scheduler, store Evictor, reloader Reloader, shutter Shutter) *Server {
	return &Server{
		endpoint:   endpoint,
		registry:   registry,
		sched:      sched,
		store:      store,
		reloader:   reloader,
		shutter:    shutter,
		shutdownCh: make(chan struct{}),
	}
}

// ListenAndServe binds the endpoint and serves connections until ctx is
// cancelled or Shutdown is dispatched by a client.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := listen(s.endpoint)
	if err != nil {
		return fmt.Errorf("binding control endpoint %s: %w", s.endpoint, err)
	}
	s.ln = ln
	logging.Info("control", "listening on %s", s.endpoint)

	go func() {
		select {
		case <-ctx.Done():
		case <-s.shutdownCh:
		}
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-s.shutdownCh:
				return nil
			default:
				return err
			}
		}
		go s.serveConn(ctx, conn)
	}
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)

	for {
		var req Request
		if err := readJSON(r, &req); err != nil {
			return
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}

		if req.Cmd == CmdLog {
			s.handleLog(ctx, conn, req)
			return
		}

		reply := s.dispatch(ctx, req)
		if err := writeJSON(conn, reply); err != nil {
			return
		}
		if req.Cmd == CmdShutdown {
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, req Request) Reply {
	switch req.Cmd {
	case CmdStart:
		return batchReply(req, s.sched.Start(ctx, req.Names))
	case CmdStop:
		return batchReply(req, s.sched.Stop(ctx, req.Names))
	case CmdRestart:
		return batchReply(req, s.sched.Restart(ctx, req.Names))
	case CmdReset:
		return batchReply(req, s.sched.Reset(req.Names))
	case CmdReload:
		if err := s.reloader.Reload(); err != nil {
			return errReply(req, err)
		}
		return okReply(req, nil)
	case CmdState:
		return s.handleState(req)
	case CmdStatus:
		return s.handleStatus(req)
	case CmdRebuild:
		return s.handleRebuild(ctx, req)
	case CmdExampleGen:
		if err := config.ExampleGen(req.Dir); err != nil {
			return errReply(req, err)
		}
		return payloadReply(req, UnitsPayload{Dir: req.Dir})
	case CmdUnits:
		return payloadReply(req, UnitsPayload{Dir: s.reloader.UnitDir()})
	case CmdShutdown:
		s.shutdownOnce.Do(func() {
			go func() {
				s.shutter.Shutdown(context.Background())
				close(s.shutdownCh)
			}()
		})
		return okReply(req, nil)
	default:
		return errReply(req, fmt.Errorf("unknown command %q", req.Cmd))
	}
}

func (s *Server) handleState(req Request) Reply {
	all := s.registry.GetAll()
	snaps := make([]UnitSnapshot, 0, len(all))
	for _, u := range all {
		snaps = append(snaps, snapshot(u))
	}
	return payloadReply(req, StatePayload{Units: snaps})
}

func (s *Server) handleStatus(req Request) Reply {
	u, ok := s.registry.Get(req.Name)
	if !ok {
		return errReply(req, fmt.Errorf("unknown unit %q", req.Name))
	}
	return payloadReply(req, StatusPayload{Unit: snapshot(u), LogTail: tailLines(u.LogPath(), 20)})
}

func (s *Server) handleRebuild(ctx context.Context, req Request) Reply {
	u, ok := s.registry.Get(req.Name)
	if !ok {
		return errReply(req, fmt.Errorf("unknown unit %q", req.Name))
	}
	cfg := u.Config()

	if err := s.store.Evict(cfg.Service.Executable); err != nil {
		return errReply(req, err)
	}
	for _, ref := range cfg.Service.Resources {
		ref := ref
		if err := s.store.Evict(config.Executable{Resource: &ref}); err != nil {
			return errReply(req, err)
		}
	}

	if cfg.Service.Executable.IsResource() {
		if _, err := s.store.Resolve(ctx, cfg.Service.Executable); err != nil {
			return errReply(req, err)
		}
	}
	for _, ref := range cfg.Service.Resources {
		ref := ref
		if _, err := s.store.Resolve(ctx, config.Executable{Resource: &ref}); err != nil {
			return errReply(req, err)
		}
	}
	return okReply(req, nil)
}

// handleLog replies with an initial ack, then streams the log file's
// existing lines followed by new lines as they are appended, until the
// client disconnects or ctx is cancelled.
func (s *Server) handleLog(ctx context.Context, conn net.Conn, req Request) {
	u, ok := s.registry.Get(req.Name)
	if !ok {
		_ = writeJSON(conn, errReply(req, fmt.Errorf("unknown unit %q", req.Name)))
		return
	}
	path := u.LogPath()
	if path == "" {
		_ = writeJSON(conn, errReply(req, fmt.Errorf("unit %q has no log file configured", req.Name)))
		return
	}
	if err := writeJSON(conn, okReply(req, nil)); err != nil {
		return
	}

	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		buf := make([]byte, 1)
		_, _ = conn.Read(buf)
	}()

	var offset int64
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-disconnected:
			return
		case <-ticker.C:
			lines, newOffset, err := readNewLines(path, offset)
			if err != nil {
				continue
			}
			offset = newOffset
			for _, line := range lines {
				if err := writeJSON(conn, LogLine{Line: line}); err != nil {
					return
				}
			}
		}
	}
}

func snapshot(u unit.Unit) UnitSnapshot {
	cfg := u.Config()
	pid, hasPID := u.PID()
	lastErr := ""
	if err := u.LastError(); err != nil {
		lastErr = err.Error()
	}
	return UnitSnapshot{
		Name:        u.Name(),
		Description: cfg.Description,
		Kind:        string(cfg.Service.Kind),
		State:       string(u.State()),
		Health:      string(u.Health()),
		PID:         pid,
		HasPID:      hasPID,
		LastError:   lastErr,
	}
}

func batchReply(req Request, results map[string]error) Reply {
	errs := make(map[string]string, len(results))
	for name, err := range results {
		if err != nil {
			errs[name] = err.Error()
		} else {
			errs[name] = ""
		}
	}
	return payloadReply(req, BatchResult{Errors: errs})
}

func okReply(req Request, payload interface{}) Reply {
	return payloadReply(req, payload)
}

func payloadReply(req Request, payload interface{}) Reply {
	r := Reply{ID: req.ID, OK: true}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errReply(req, err)
		}
		r.Payload = data
	}
	return r
}

func errReply(req Request, err error) Reply {
	return Reply{ID: req.ID, OK: false, Error: err.Error()}
}

func readNewLines(path string, offset int64) ([]string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, offset, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, offset, err
	}
	if info.Size() < offset {
		offset = 0 // file was rotated/truncated out from under us
	}
	if info.Size() == offset {
		return nil, offset, nil
	}
	if _, err := f.Seek(offset, 0); err != nil {
		return nil, offset, err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, info.Size(), nil
}

// tailLines returns up to the last n lines of path, or nil if it does not
// exist or n <= 0.
func tailLines(path string, n int) []string {
	if path == "" || n <= 0 {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
