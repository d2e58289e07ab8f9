package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNonce = []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

func TestDeriveKeyMatchesSHA256(t *testing.T) {
	assert.Equal(t, sha256.Sum256([]byte("series-1:chapter-9")), DeriveKey("series-1", "chapter-9"))
	assert.NotEqual(t, DeriveKey("a", "b:c"), DeriveKey("a", "bc"))
}

func TestDeriveSeedUsesFirstEightBytes(t *testing.T) {
	sum := sha256.Sum256([]byte("s:c:0001.jpg"))
	want := new(big.Int).SetUint64(binary.BigEndian.Uint64(sum[:8]))

	got := DeriveSeed("s", "c", "0001.jpg")
	assert.Equal(t, 0, want.Cmp(got))
	assert.LessOrEqual(t, got.BitLen(), 64)
	assert.Equal(t, 0, got.Cmp(DeriveSeed("s", "c", "0001.jpg")))
}

func TestChallengeKeyID(t *testing.T) {
	sum := sha256.Sum256([]byte("abc:def"))
	id := ChallengeKeyID("abc", "def")
	assert.Len(t, id, 16)
	assert.Equal(t, sum[:16], id)
}

func TestSealDecryptRoundTrip(t *testing.T) {
	plain := bytes.Repeat([]byte("page data "), 40)
	header := bytes.Repeat([]byte{0xAB}, 20)

	payload, err := SealPayload(plain, header, testNonce, "series", "chapter")
	require.NoError(t, err)
	require.Len(t, payload, MinPayloadSize+len(plain)+TagSize)
	assert.Equal(t, header, payload[:20])
	assert.Equal(t, make([]byte, HeaderSize-20), payload[20:HeaderSize])
	assert.Equal(t, testNonce, payload[HeaderSize:MinPayloadSize])

	got, err := DecryptPayload(payload, "series", "chapter")
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestDecryptPayloadTooShort(t *testing.T) {
	_, err := DecryptPayload(make([]byte, MinPayloadSize-1), "a", "b")
	assert.ErrorIs(t, err, ErrPayloadTooShort)

	// header and nonce but no tag
	_, err = DecryptPayload(make([]byte, MinPayloadSize), "a", "b")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDecryptPayloadWrongKey(t *testing.T) {
	payload, err := SealPayload([]byte("secret"), nil, testNonce, "series", "chapter")
	require.NoError(t, err)

	got, err := DecryptPayload(payload, "series", "other")
	assert.ErrorIs(t, err, ErrDecrypt)
	assert.Nil(t, got)
}

func TestDecryptPayloadTampered(t *testing.T) {
	payload, err := SealPayload([]byte("secret image bytes"), nil, testNonce, "s", "c")
	require.NoError(t, err)

	for _, idx := range []int{HeaderSize + 1, MinPayloadSize, len(payload) - 1} {
		tampered := append([]byte(nil), payload...)
		tampered[idx] ^= 0x01
		got, err := DecryptPayload(tampered, "s", "c")
		assert.ErrorIs(t, err, ErrDecrypt, "byte %d", idx)
		assert.Nil(t, got)
	}

	// the header is not authenticated
	tampered := append([]byte(nil), payload...)
	tampered[0] ^= 0xFF
	_, err = DecryptPayload(tampered, "s", "c")
	assert.NoError(t, err)
}

func TestSealPayloadValidatesSizes(t *testing.T) {
	_, err := SealPayload(nil, make([]byte, HeaderSize+1), testNonce, "a", "b")
	assert.Error(t, err)
	_, err = SealPayload(nil, nil, []byte{1, 2, 3}, "a", "b")
	assert.Error(t, err)
}

func TestWidevineSystemID(t *testing.T) {
	want, err := base64.StdEncoding.DecodeString("7e+LqXnWSs6jyCfc1R0h7Q==")
	require.NoError(t, err)
	assert.Equal(t, want, WidevineSystemID[:])
}

func TestBuildPSSH(t *testing.T) {
	keyID := ChallengeKeyID("series", "chapter")
	box := BuildPSSH(keyID)

	require.Len(t, box, 32+2+len(keyID))
	assert.Equal(t, uint32(len(box)), binary.BigEndian.Uint32(box[0:4]))
	assert.Equal(t, "pssh", string(box[4:8]))
	assert.Equal(t, []byte{0, 0, 0, 0}, box[8:12])
	assert.Equal(t, WidevineSystemID[:], box[12:28])
	assert.Equal(t, uint32(2+len(keyID)), binary.BigEndian.Uint32(box[28:32]))
	assert.Equal(t, byte(0x12), box[32])
	assert.Equal(t, byte(len(keyID)), box[33])
	assert.Equal(t, keyID, box[34:])
}
