package scramble

// Transform reassigns equal-size chunks of data according to m.
//
// The data is cut into len(m) chunks of len(data)/len(m) bytes. The
// len(data)%len(m) leftover bytes pass through untouched: with forward set
// they are read from the front and written to the back, otherwise they are
// read from the back and written to the front. Pairs outside [0, len(m))
// are skipped.
//
//	forward:  out[p.Dst] = chunk[p.Src]
//	reverse:  out[p.Src] = chunk[p.Dst]
func Transform(data []byte, m Mapping, forward bool) []byte {
	s := len(m)
	if s == 0 {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}

	total := len(data)
	chunkLen := total / s
	rem := total % s

	var remainder, body []byte
	if forward {
		remainder, body = data[:rem], data[rem:]
	} else {
		remainder, body = data[total-rem:], data[:total-rem]
	}

	chunk := func(i int) []byte { return body[i*chunkLen : (i+1)*chunkLen] }

	slots := make([][]byte, s)
	for _, p := range m {
		if p.Dst < 0 || p.Src < 0 || p.Dst >= s || p.Src >= s {
			continue
		}
		if forward {
			slots[p.Dst] = chunk(p.Src)
		} else {
			slots[p.Src] = chunk(p.Dst)
		}
	}

	out := make([]byte, 0, total)
	if !forward {
		out = append(out, remainder...)
	}
	for _, c := range slots {
		out = append(out, c...)
	}
	if forward {
		out = append(out, remainder...)
	}
	return out
}

// Unscramble restores a page scrambled with the same mapping.
func Unscramble(data []byte, m Mapping) []byte {
	return Transform(data, m, true)
}

// Scramble is the inverse of Unscramble under the same mapping.
func Scramble(data []byte, m Mapping) []byte {
	return Transform(data, m, false)
}
