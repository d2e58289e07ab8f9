package imageformat

import "bytes"

// Format identifies an image container by its leading bytes.
type Format int

const (
	Unknown Format = iota
	JPEG
	WEBP
	JXLCodestream
	JXL
)

func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case WEBP:
		return "webp"
	case JXLCodestream, JXL:
		return "jxl"
	default:
		return "unknown"
	}
}

// Ext returns the file extension used when writing f unchanged.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return ".jpg"
	case WEBP:
		return ".webp"
	case JXLCodestream, JXL:
		return ".jxl"
	default:
		return ".bin"
	}
}

var jxlContainer = []byte{0x00, 0x00, 0x00, 0x0C, 'J', 'X', 'L', ' ', 0x0D, 0x0A, 0x87, 0x0A}

// Detect sniffs the container format of data.
func Detect(data []byte) Format {
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return JPEG
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return WEBP
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0x0A:
		return JXLCodestream
	case len(data) >= len(jxlContainer) && bytes.Equal(data[:len(jxlContainer)], jxlContainer):
		return JXL
	}
	return Unknown
}

// IsImage reports whether data starts with a recognised signature.
func IsImage(data []byte) bool {
	return Detect(data) != Unknown
}
