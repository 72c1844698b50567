package core

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"
	"strings"
)

// GetHashImpl returns a hash.Hash for the named algorithm. Names are matched
// case-insensitively; these are the formats Modrinth and the manifest use.
func GetHashImpl(hashType string) (hash.Hash, error) {
	switch strings.ToLower(hashType) {
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "md5":
		return md5.New(), nil
	case "murmur2":
		return NewMurmur2(), nil
	}
	return nil, errors.New("hash implementation not found: " + hashType)
}
