package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

// Encrypted page layout:
//
//	[0:128)    opaque header
//	[128:140)  GCM nonce
//	[140:)     ciphertext with 16-byte tag
const (
	HeaderSize     = 128
	NonceSize      = 12
	TagSize        = 16
	MinPayloadSize = HeaderSize + NonceSize
)

var (
	// ErrPayloadTooShort is returned for payloads without room for the
	// header and nonce.
	ErrPayloadTooShort = errors.New("crypto: payload too short")
	// ErrDecrypt covers every authentication or key failure.
	ErrDecrypt = errors.New("crypto: unable to decrypt payload")
)

func newGCM(part1, part2 string) (cipher.AEAD, error) {
	key := DeriveKey(part1, part2)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// DecryptPayload opens an encrypted page with the key derived from part1
// and part2 (series and chapter id).
func DecryptPayload(payload []byte, part1, part2 string) ([]byte, error) {
	if len(payload) < MinPayloadSize {
		return nil, ErrPayloadTooShort
	}

	aead, err := newGCM(part1, part2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	nonce := payload[HeaderSize:MinPayloadSize]
	plain, err := aead.Open(nil, nonce, payload[MinPayloadSize:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// SealPayload builds an encrypted page from plain. header may be shorter
// than HeaderSize; it is zero padded.
func SealPayload(plain, header, nonce []byte, part1, part2 string) ([]byte, error) {
	if len(header) > HeaderSize {
		return nil, fmt.Errorf("crypto: header is %d bytes, max %d", len(header), HeaderSize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("crypto: nonce is %d bytes, want %d", len(nonce), NonceSize)
	}

	aead, err := newGCM(part1, part2)
	if err != nil {
		return nil, err
	}

	out := make([]byte, MinPayloadSize, MinPayloadSize+len(plain)+TagSize)
	copy(out, header)
	copy(out[HeaderSize:], nonce)
	return aead.Seal(out, nonce, plain, nil), nil
}
