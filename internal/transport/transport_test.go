package transport

import (
	"context"
	"net"
	"testing"
	"time"

	lerrors "lineack/internal/errors"
)

func listen(t *testing.T, idle time.Duration) *TCPListener {
	t.Helper()
	ln, err := ListenTCP(context.Background(), "127.0.0.1:0", idle)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })
	return ln
}

// TestTCPListener_Accept verifies a client connection is handed out.
func TestTCPListener_Accept(t *testing.T) {
	ln := listen(t, 2*time.Second)

	go func() {
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err == nil {
			conn.Close()
		}
	}()

	conn, err := ln.Accept()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	conn.Close()
}

// TestTCPListener_IdleTimeout verifies an empty idle window yields
// ErrIdleTimeout instead of a transport error.
func TestTCPListener_IdleTimeout(t *testing.T) {
	ln := listen(t, 50*time.Millisecond)

	start := time.Now()
	_, err := ln.Accept()
	if !lerrors.Is(err, lerrors.ErrIdleTimeout) {
		t.Fatalf("expected ErrIdleTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("returned after %v, before the idle window", elapsed)
	}
}

// TestTCPListener_DeadlineRearmed verifies each Accept gets a fresh
// idle window.
func TestTCPListener_DeadlineRearmed(t *testing.T) {
	ln := listen(t, 300*time.Millisecond)

	for i := 0; i < 2; i++ {
		go func() {
			time.Sleep(200 * time.Millisecond)
			conn, err := net.Dial("tcp", ln.Addr().String())
			if err == nil {
				conn.Close()
			}
		}()
		conn, err := ln.Accept()
		if err != nil {
			t.Fatalf("accept %d: %v", i, err)
		}
		conn.Close()
	}
}

// TestTCPListener_Closed verifies Close maps to ErrListenerClosed.
func TestTCPListener_Closed(t *testing.T) {
	ln := listen(t, 0)

	go func() {
		time.Sleep(50 * time.Millisecond)
		ln.Close()
	}()

	_, err := ln.Accept()
	if !lerrors.Is(err, lerrors.ErrListenerClosed) {
		t.Fatalf("expected ErrListenerClosed, got %v", err)
	}
}

// TestListenTCP_AddressInUse verifies a bind failure is a listen error.
func TestListenTCP_AddressInUse(t *testing.T) {
	ln := listen(t, 0)

	_, err := ListenTCP(context.Background(), ln.Addr().String(), 0)
	if err == nil {
		t.Fatal("expected bind error")
	}
	var ne *lerrors.NetworkError
	if !lerrors.As(err, &ne) || ne.Op != "listen" {
		t.Errorf("expected listen NetworkError, got %v", err)
	}
}

func TestTCPListener_Port(t *testing.T) {
	ln := listen(t, 0)
	if ln.Port() != ln.Addr().(*net.TCPAddr).Port || ln.Port() == 0 {
		t.Errorf("Port() = %d", ln.Port())
	}
}
