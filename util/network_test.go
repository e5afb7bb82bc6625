package util

import (
	"strings"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"1.2.3.4", 22, "1.2.3.4:22"},
		{"::1", 443, "[::1]:443"},
		{"", 5000, ":5000"},
	}
	for _, tt := range tests {
		if got := FormatAddr(tt.host, tt.port); got != tt.want {
			t.Errorf("FormatAddr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if port < 1 || port > 65535 {
		t.Errorf("port %d out of range", port)
	}
}

func TestReaderPool_RoundTrip(t *testing.T) {
	br := GetReader(strings.NewReader("first\n"))
	line, err := br.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if line != "first\n" {
		t.Errorf("line = %q", line)
	}
	if br.Size() != DefaultBufSize {
		t.Errorf("buffer size = %d, want %d", br.Size(), DefaultBufSize)
	}
	PutReader(br)

	br2 := GetReader(strings.NewReader("second\n"))
	defer PutReader(br2)
	line, err = br2.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if line != "second\n" {
		t.Errorf("reused reader leaked state: %q", line)
	}
}

func TestPutReader_Nil(t *testing.T) {
	// Should not panic.
	PutReader(nil)
}

