package aes

// SubBytes replaces every byte of s through the forward S-box.
func SubBytes(s State) State {
	for c := range s {
		for r := range s[c] {
			s[c][r] = sBox[s[c][r]]
		}
	}
	return s
}

// InvSubBytes replaces every byte of s through the inverse S-box.
func InvSubBytes(s State) State {
	for c := range s {
		for r := range s[c] {
			s[c][r] = invSBox[s[c][r]]
		}
	}
	return s
}

// ShiftRow rotates row left by n positions.
func ShiftRow(row [4]byte, n int) [4]byte {
	var out [4]byte
	for i := range row {
		out[i] = row[(i+n)%4]
	}
	return out
}

// InvShiftRow rotates row right by n positions, undoing ShiftRow.
func InvShiftRow(row [4]byte, n int) [4]byte {
	var out [4]byte
	for i := range row {
		out[(i+n)%4] = row[i]
	}
	return out
}

// ShiftRows rotates row r of s left by r positions. Row 0 is unchanged.
func ShiftRows(s State) State {
	for r := 1; r < 4; r++ {
		s.setRow(r, ShiftRow(s.Row(r), r))
	}
	return s
}

// InvShiftRows rotates row r of s right by r positions.
func InvShiftRows(s State) State {
	for r := 1; r < 4; r++ {
		s.setRow(r, InvShiftRow(s.Row(r), r))
	}
	return s
}

// MixColumn multiplies col by the fixed matrix
//
//	2 3 1 1
//	1 2 3 1
//	1 1 2 3
//	3 1 1 2
//
// over GF(2^8).
func MixColumn(col [4]byte) [4]byte {
	a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
	return [4]byte{
		Mul(a0, 2) ^ Mul(a1, 3) ^ a2 ^ a3,
		a0 ^ Mul(a1, 2) ^ Mul(a2, 3) ^ a3,
		a0 ^ a1 ^ Mul(a2, 2) ^ Mul(a3, 3),
		Mul(a0, 3) ^ a1 ^ a2 ^ Mul(a3, 2),
	}
}

// InvMixColumn multiplies col by the inverse matrix
//
//	14 11 13  9
//	 9 14 11 13
//	13  9 14 11
//	11 13  9 14
func InvMixColumn(col [4]byte) [4]byte {
	a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
	return [4]byte{
		Mul(a0, 14) ^ Mul(a1, 11) ^ Mul(a2, 13) ^ Mul(a3, 9),
		Mul(a0, 9) ^ Mul(a1, 14) ^ Mul(a2, 11) ^ Mul(a3, 13),
		Mul(a0, 13) ^ Mul(a1, 9) ^ Mul(a2, 14) ^ Mul(a3, 11),
		Mul(a0, 11) ^ Mul(a1, 13) ^ Mul(a2, 9) ^ Mul(a3, 14),
	}
}

// MixColumns applies MixColumn to every column of s.
func MixColumns(s State) State {
	for c := range s {
		s[c] = MixColumn(s[c])
	}
	return s
}

// InvMixColumns applies InvMixColumn to every column of s.
func InvMixColumns(s State) State {
	for c := range s {
		s[c] = InvMixColumn(s[c])
	}
	return s
}

// AddRoundKey XORs k into s. Applying it twice with the same key is the identity.
func AddRoundKey(s State, k RoundKey) State {
	for c := range s {
		for r := range s[c] {
			s[c][r] ^= k[c][r]
		}
	}
	return s
}
