package core

import (
	"encoding/binary"
	"encoding/hex"
	"testing"
)

func hashString(t *testing.T, hashType string, input string) string {
	h, err := GetHashImpl(hashType)
	if err != nil {
		t.Fatalf("no implementation for %s: %v", hashType, err)
	}
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

func TestSha1(t *testing.T) {
	got := hashString(t, "sha1", "rinth")
	want := "f7ab635e3e8328083ec050661ea7cc8a865af212"
	if got != want {
		t.Errorf("sha1 mismatch: got %s, want %s", got, want)
	}
}

func TestHashTypeCaseInsensitive(t *testing.T) {
	if hashString(t, "SHA256", "x") != hashString(t, "sha256", "x") {
		t.Error("hash type should be case-insensitive")
	}
}

func TestUnknownHashType(t *testing.T) {
	if _, err := GetHashImpl("crc32"); err == nil {
		t.Error("expected an error for an unimplemented hash type")
	}
}

func TestMurmur2SumAppends(t *testing.T) {
	h := NewMurmur2()
	h.Write([]byte("abcde"))

	prefix := []byte{1, 2}
	sum := h.Sum(prefix)
	if len(sum) != 6 || sum[0] != 1 || sum[1] != 2 {
		t.Fatalf("Sum must append to the given slice, got %v", sum)
	}
	if binary.BigEndian.Uint32(sum[2:]) != h.Sum32() {
		t.Error("appended digest disagrees with Sum32")
	}
}

func TestMurmur2StripsWhitespace(t *testing.T) {
	// The fingerprint variant ignores whitespace bytes entirely
	if hashString(t, "murmur2", "a b\tc\nd\re") != hashString(t, "murmur2", "abcde") {
		t.Error("murmur2 should ignore whitespace characters")
	}
	if hashString(t, "murmur2", "abcde") == hashString(t, "murmur2", "edcba") {
		t.Error("murmur2 should depend on content")
	}
}
