package core

import (
	"encoding/binary"
	"hash"

	"github.com/aviddiviner/go-murmur"
)

// NewMurmur2 returns the whitespace-stripping MurmurHash2 variant some mod
// hosts fingerprint files with.
func NewMurmur2() hash.Hash32 {
	return &murmur2{buf: make([]byte, 0)}
}

type murmur2 struct {
	// MurmurHash2 seeds on the input length, so the whole (stripped) input
	// has to be buffered before hashing.
	buf []byte
}

func (m *murmur2) Write(p []byte) (n int, err error) {
	for _, b := range p {
		if !isWhitespaceCharacter(b) {
			m.buf = append(m.buf, b)
		}
	}
	return len(p), nil
}

func isWhitespaceCharacter(b byte) bool {
	return b == 9 || b == 10 || b == 13 || b == 32
}

func (m *murmur2) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, murmur.MurmurHash2(m.buf, 1))
}

func (m *murmur2) Reset() {
	m.buf = make([]byte, 0)
}

func (m *murmur2) Size() int {
	return 4
}

func (m *murmur2) BlockSize() int {
	return 4
}

func (m *murmur2) Sum32() uint32 {
	return binary.BigEndian.Uint32(m.Sum(nil))
}
