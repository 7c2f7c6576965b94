// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package protocol

// EncodeStatString escapes data so the result never contains an embedded
// zero byte and can be carried in a null-terminated field. Input is
// processed in groups of up to 7 bytes; each group is prefixed with a mask
// byte whose bit (i+1) records whether input byte i was odd (bit set,
// value passed through unchanged) or even (bit clear, value emitted as
// v+1). Bit 0 of the mask is always set.
func EncodeStatString(data []byte) []byte {
	var out = make([]byte, 0, len(data)+len(data)/7+1)

	for i := 0; i < len(data); i += 7 {
		var end = i + 7
		if end > len(data) {
			end = len(data)
		}

		var mask byte = 0x01
		var group = make([]byte, end-i)
		for j, v := range data[i:end] {
			if v%2 == 0 {
				group[j] = v + 1
			} else {
				group[j] = v
				mask |= 1 << uint(j+1)
			}
		}

		out = append(out, mask)
		out = append(out, group...)
	}

	return out
}

// DecodeStatString reverses EncodeStatString.
func DecodeStatString(data []byte) []byte {
	var out = make([]byte, 0, len(data))

	for i := 0; i < len(data); {
		var mask = data[i]
		i++

		var end = i + 7
		if end > len(data) {
			end = len(data)
		}

		for j := 0; i < end; i, j = i+1, j+1 {
			var v = data[i]
			if mask&(1<<uint(j+1)) == 0 {
				v--
			}
			out = append(out, v)
		}
	}

	return out
}
