package session

import "unicode/utf8"

// textDecoder converts PTY chunks to text. A rune split across two reads is
// carried into the next chunk; a chunk that is invalid for any other reason
// is dropped.
type textDecoder struct {
	carry []byte
}

func (d *textDecoder) decode(chunk []byte) (string, bool) {
	data := chunk
	if len(d.carry) > 0 {
		data = append(d.carry, chunk...)
		d.carry = nil
	}

	cut := incompleteSuffix(data)
	complete := data[:len(data)-cut]
	if cut > 0 {
		d.carry = append([]byte(nil), data[len(data)-cut:]...)
	}

	if !utf8.Valid(complete) {
		return "", false
	}

	return string(complete), true
}

// incompleteSuffix reports how many trailing bytes form the start of a
// multi-byte rune that has not fully arrived yet.
func incompleteSuffix(data []byte) int {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(data); i++ {
		c := data[len(data)-i]
		if c < utf8.RuneSelf {
			return 0
		}
		if !utf8.RuneStart(c) {
			continue
		}

		need := 0
		switch {
		case c&0xE0 == 0xC0:
			need = 2
		case c&0xF0 == 0xE0:
			need = 3
		case c&0xF8 == 0xF0:
			need = 4
		}
		if need > i {
			return i
		}
		return 0
	}

	return 0
}
