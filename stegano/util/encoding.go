package util

/*
 * transform data from/to a flat bit stream.
 * there is no length prefix and no terminator on purpose:
 * the column scheme carries raw bits and nothing else.
 */
func ToBits( data []byte ) []uint8 {
	bits := make( []uint8, 0, len(data) * 8 )
	for _, b := range data {
		// most significant bit goes first
		for i := 7; i >= 0; i-- {
			bits = append( bits, (b >> uint(i)) & 1 )
		}
	}
	return bits
}

func FromBits( bits []uint8 ) []byte {
	result := []byte{}
	for i := 0; i + 8 <= len(bits); i += 8 {
		b := byte(0)
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[i + j] & 1)
		}
		result = append( result, b )
	}
	// a trailing group shorter than 8 bits is dropped, not an error
	return result
}
