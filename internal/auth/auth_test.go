package auth

import "testing"

func TestFromToken(t *testing.T) {
	// no configured token: open dev mode, everything writable
	if !FromToken("", "").CanWrite() {
		t.Fatal("empty configured token should grant write")
	}
	if !FromToken("anything", "").CanWrite() {
		t.Fatal("empty configured token should ignore presented token")
	}

	// configured token gates writes
	if FromToken("", "secret").CanWrite() {
		t.Fatal("missing token should be read-only")
	}
	if FromToken("wrong", "secret").CanWrite() {
		t.Fatal("wrong token should be read-only")
	}
	if !FromToken("secret", "secret").CanWrite() {
		t.Fatal("matching token should grant write")
	}
}

func TestCapabilities(t *testing.T) {
	if !Admin().CanWrite() {
		t.Fatal("admin must write")
	}
	if ReadOnly().CanWrite() {
		t.Fatal("read-only must not write")
	}
}
