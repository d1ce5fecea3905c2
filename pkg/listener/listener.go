// Package listener implements the TCP ingest server for embedded
// greenhouse controllers. Devices push newline-terminated ASCII readings
// over long-lived connections; there is no handshake, no framing beyond
// the newline, and no server-to-client traffic.
package listener

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"greenhouse/logger"
	ingestservice "greenhouse/pkg/ingest/service"
)

type Server struct {
	addr string
	svc  ingestservice.IngestService

	ln   net.Listener
	quit chan struct{}
	wg   sync.WaitGroup
}

func New(port int, svc ingestservice.IngestService) *Server {
	return &Server{
		addr: fmt.Sprintf(":%d", port),
		svc:  svc,
		quit: make(chan struct{}),
	}
}

// Start binds the listener and launches the accept loop. It returns once
// the server is accepting.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.ln = ln
	logger.Infof("TCP ingest server listening on %s", ln.Addr())

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Addr reports the bound address (useful when started on port 0).
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Errorf("accept: %v", err)
			continue
		}
		logger.Infof("client connected from %s", conn.RemoteAddr())
		s.wg.Add(1)
		go s.handle(conn)
	}
}

// handle reads one connection line by line until EOF or error. Lines are
// processed strictly in arrival order. A panic out of the pipeline kills
// only this connection; the socket is closed exactly once on every path.
func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("handler panic on %s: %v", conn.RemoteAddr(), r)
		}
		conn.Close()
		logger.Infof("client disconnected: %s", conn.RemoteAddr())
	}()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		s.svc.Process(line)
	}
	if err := sc.Err(); err != nil {
		logger.Errorf("connection error on %s: %v", conn.RemoteAddr(), err)
	}
}

// Shutdown closes the listener and waits for outstanding handlers until
// the context expires. Handlers blocked on a stalled connection are left
// to observe closure via their read error.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.quit)
	if s.ln != nil {
		s.ln.Close()
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
