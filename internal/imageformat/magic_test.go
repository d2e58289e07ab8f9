package imageformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, JPEG},
		{"jpeg minimal", []byte{0xFF, 0xD8}, JPEG},
		{"webp", []byte("RIFF\x10\x00\x00\x00WEBPVP8L"), WEBP},
		{"riff not webp", []byte("RIFF\x10\x00\x00\x00WAVEfmt "), Unknown},
		{"jxl codestream", []byte{0xFF, 0x0A, 0x00}, JXLCodestream},
		{"jxl container", append(append([]byte{}, jxlContainer...), 0, 0, 0, 0x14), JXL},
		{"jxl truncated", jxlContainer[:8], Unknown},
		{"png", []byte{0x89, 'P', 'N', 'G'}, Unknown},
		{"single byte", []byte{0xFF}, Unknown},
		{"empty", nil, Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.data))
			assert.Equal(t, tc.want != Unknown, IsImage(tc.data))
		})
	}
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, "jpeg", JPEG.String())
	assert.Equal(t, ".jpg", JPEG.Ext())
	assert.Equal(t, ".webp", WEBP.Ext())
	assert.Equal(t, ".jxl", JXLCodestream.Ext())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, ".bin", Unknown.Ext())
}
