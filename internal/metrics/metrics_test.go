package metrics

import (
	"encoding/json"
	"testing"
)

func TestCollector_Sessions(t *testing.T) {
	c := New()

	c.SessionOpened()
	if c.ActiveSessions() != 1 {
		t.Errorf("active = %d, want 1", c.ActiveSessions())
	}
	c.SessionClosed()
	c.SessionOpened()
	c.SessionClosed()

	if c.ActiveSessions() != 0 {
		t.Errorf("active = %d, want 0", c.ActiveSessions())
	}
	if c.TotalSessions() != 2 {
		t.Errorf("total = %d, want 2", c.TotalSessions())
	}
}

func TestCollector_Bytes(t *testing.T) {
	c := New()

	c.BytesReceived(6)
	c.BytesSent(40)
	c.BytesReceived(4)

	if c.TotalBytesIn() != 10 {
		t.Errorf("bytes in = %d, want 10", c.TotalBytesIn())
	}
	if c.TotalBytesOut() != 40 {
		t.Errorf("bytes out = %d, want 40", c.TotalBytesOut())
	}
}

func TestCollector_AcceptRetries(t *testing.T) {
	c := New()
	c.AcceptRetry()
	c.AcceptRetry()
	if c.AcceptRetries() != 2 {
		t.Errorf("retries = %d, want 2", c.AcceptRetries())
	}
}

func TestCollector_Snapshot(t *testing.T) {
	c := New()
	c.SessionOpened()
	c.BytesReceived(100)
	c.RecordError("read: reset")

	snap := c.Snapshot()
	if snap.SessionsActive != 1 {
		t.Errorf("snap active = %d", snap.SessionsActive)
	}
	if snap.BytesIn != 100 {
		t.Errorf("snap bytes in = %d", snap.BytesIn)
	}
	if snap.ErrorsTotal != 1 {
		t.Errorf("snap errors = %d", snap.ErrorsTotal)
	}
	if snap.LastErrorMessage != "read: reset" {
		t.Errorf("snap error msg = %q", snap.LastErrorMessage)
	}
}

func TestCollector_JSON(t *testing.T) {
	c := New()
	c.SessionOpened()
	c.BytesSent(42)

	var snap Snapshot
	if err := json.Unmarshal([]byte(c.JSON()), &snap); err != nil {
		t.Fatalf("JSON parse error: %v", err)
	}
	if snap.SessionsTotal != 1 {
		t.Errorf("JSON total = %d", snap.SessionsTotal)
	}
	if snap.BytesOut != 42 {
		t.Errorf("JSON bytes out = %d", snap.BytesOut)
	}
}

func TestNilCollector_NoOps(t *testing.T) {
	var c *Collector

	// None of these should panic.
	c.SessionOpened()
	c.SessionClosed()
	c.BytesReceived(100)
	c.BytesSent(100)
	c.AcceptRetry()
	c.RecordError("test")

	if c.TotalSessions() != 0 || c.ErrorCount() != 0 || c.AcceptRetries() != 0 {
		t.Error("nil collector should return 0")
	}
	if snap := c.Snapshot(); snap.SessionsTotal != 0 {
		t.Error("nil snapshot should be zero")
	}
	if c.JSON() == "" {
		t.Error("nil JSON should return valid JSON")
	}
}
