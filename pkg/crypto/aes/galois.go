package aes

// Mul multiplies a and b in GF(2^8) modulo the AES polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B).
func Mul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			p ^= a
		}

		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= 0x1B
		}
		b >>= 1
	}
	return p
}
