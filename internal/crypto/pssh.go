package crypto

import "encoding/binary"

// WidevineSystemID identifies the DRM system in a PSSH box.
var WidevineSystemID = [16]byte{
	0xed, 0xef, 0x8b, 0xa9, 0x79, 0xd6, 0x4a, 0xce,
	0xa3, 0xc8, 0x27, 0xdc, 0xd5, 0x1d, 0x21, 0xed,
}

// BuildPSSH returns a version 0 PSSH box whose init data holds keyID as a
// single protobuf key_id field:
//
//	size(4) "pssh" version+flags(4) systemID(16) dataSize(4) 0x12 len keyID
func BuildPSSH(keyID []byte) []byte {
	data := make([]byte, 0, 2+len(keyID))
	data = append(data, 0x12, byte(len(keyID)))
	data = append(data, keyID...)

	boxSize := 8 + 4 + len(WidevineSystemID) + 4 + len(data)
	box := make([]byte, 0, boxSize)
	box = binary.BigEndian.AppendUint32(box, uint32(boxSize))
	box = append(box, "pssh"...)
	box = append(box, 0, 0, 0, 0)
	box = append(box, WidevineSystemID[:]...)
	box = binary.BigEndian.AppendUint32(box, uint32(len(data)))
	return append(box, data...)
}
