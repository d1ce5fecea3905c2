package listener

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects processed lines and can be told to panic on a
// specific line to exercise handler isolation.
type recorder struct {
	mu      sync.Mutex
	lines   []string
	panicOn string
}

func (r *recorder) Process(line string) {
	if line == r.panicOn && r.panicOn != "" {
		panic("pipeline blew up")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *recorder) waitFor(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if lines := r.snapshot(); len(lines) >= n {
			return lines
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d lines, got %v", n, r.snapshot())
	return nil
}

func startServer(t *testing.T, rec *recorder) *Server {
	t.Helper()
	s := New(0, rec)
	require.NoError(t, s.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})
	return s
}

func dial(t *testing.T, s *Server) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	return conn
}

func TestLinesProcessedInOrder(t *testing.T) {
	rec := &recorder{}
	s := startServer(t, rec)

	conn := dial(t, s)
	_, err := conn.Write([]byte("Temp: 20\nTemp: 21\nTemp: 22\n"))
	require.NoError(t, err)
	conn.Close()

	lines := rec.waitFor(t, 3)
	assert.Equal(t, []string{"Temp: 20", "Temp: 21", "Temp: 22"}, lines)
}

func TestBlankLinesSkipped(t *testing.T) {
	rec := &recorder{}
	s := startServer(t, rec)

	conn := dial(t, s)
	_, err := conn.Write([]byte("\n  \nTemp: 20\n\t\nTemp: 21\n"))
	require.NoError(t, err)
	conn.Close()

	lines := rec.waitFor(t, 2)
	assert.Equal(t, []string{"Temp: 20", "Temp: 21"}, lines)
}

func TestWhitespaceTrimmed(t *testing.T) {
	rec := &recorder{}
	s := startServer(t, rec)

	conn := dial(t, s)
	_, err := conn.Write([]byte("  Temp: 20 \r\n"))
	require.NoError(t, err)
	conn.Close()

	lines := rec.waitFor(t, 1)
	assert.Equal(t, []string{"Temp: 20"}, lines)
}

func TestConcurrentConnections(t *testing.T) {
	rec := &recorder{}
	s := startServer(t, rec)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn := dial(t, s)
			defer conn.Close()
			conn.Write([]byte("Temp: 20\nTemp: 21\n"))
		}()
	}
	wg.Wait()

	lines := rec.waitFor(t, 10)
	assert.Len(t, lines, 10)
}

func TestHandlerPanicIsolatedToConnection(t *testing.T) {
	rec := &recorder{panicOn: "boom"}
	s := startServer(t, rec)

	bad := dial(t, s)
	bad.Write([]byte("boom\n"))
	bad.Close()

	// The server still accepts and serves a second connection.
	good := dial(t, s)
	_, err := good.Write([]byte("Temp: 20\n"))
	require.NoError(t, err)
	good.Close()

	lines := rec.waitFor(t, 1)
	assert.Contains(t, lines, "Temp: 20")
	assert.NotContains(t, lines, "boom")
}

func TestShutdownStopsAccepting(t *testing.T) {
	rec := &recorder{}
	s := New(0, rec)
	require.NoError(t, s.Start())
	addr := s.Addr().String()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	_, err := net.Dial("tcp", addr)
	assert.Error(t, err)
}
