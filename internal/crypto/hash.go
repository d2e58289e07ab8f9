package crypto

import (
	"crypto/sha256"
	"math/big"
	"strings"
)

// DeriveKey returns the AES-256 page key: SHA-256 of "part1:part2".
func DeriveKey(part1, part2 string) [32]byte {
	return sha256.Sum256([]byte(part1 + ":" + part2))
}

// DeriveSeed hashes the colon-joined parts and reads the first 8 bytes of
// the digest as a big-endian unsigned integer.
func DeriveSeed(parts ...string) *big.Int {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return new(big.Int).SetBytes(sum[:8])
}

// ChallengeKeyID returns the 16-byte key id sent in the DRM challenge for a
// chapter.
func ChallengeKeyID(seriesID, chapterID string) []byte {
	sum := DeriveKey(seriesID, chapterID)
	id := make([]byte, 16)
	copy(id, sum[:16])
	return id
}
