package aes

import (
	"bytes"
	stdaes "crypto/aes"
	"encoding/hex"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b, want byte
	}{
		{0x57, 0x83, 0xC1},
		{0x57, 0x13, 0xFE},
		{0x57, 0x02, 0xAE},
		{0x00, 0xFF, 0x00},
		{0x01, 0xAB, 0xAB},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mul(tt.a, tt.b), "Mul(%#x, %#x)", tt.a, tt.b)
		assert.Equal(t, tt.want, Mul(tt.b, tt.a), "Mul(%#x, %#x)", tt.b, tt.a)
	}
}

func TestSBoxInverse(t *testing.T) {
	for x := 0; x < 256; x++ {
		assert.Equal(t, byte(x), invSBox[sBox[x]])
		assert.Equal(t, byte(x), sBox[invSBox[x]])
	}
	assert.Equal(t, byte(0x63), sBox[0x00])
	assert.Equal(t, byte(0xED), sBox[0x53])
}

func TestRcon(t *testing.T) {
	x := byte(1)
	for i, c := range rcon {
		assert.Equal(t, x, c, "rcon[%d]", i)
		assert.NotZero(t, c)
		x = Mul(x, 2)
	}
}

func TestParseKeySize(t *testing.T) {
	tests := []struct {
		bits      int
		nk, nr    int
		wantError bool
	}{
		{128, 4, 10, false},
		{192, 6, 12, false},
		{256, 8, 14, false},
		{0, 0, 0, true},
		{64, 0, 0, true},
		{512, 0, 0, true},
	}

	for _, tt := range tests {
		size, err := ParseKeySize(tt.bits)
		if tt.wantError {
			assert.ErrorIs(t, err, ErrInvalidKeySize)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.nk, size.Nk())
		assert.Equal(t, tt.nr, size.Rounds())
		assert.Equal(t, tt.bits/8, size.Bytes())
	}
}

func TestExpandKey(t *testing.T) {
	for _, size := range KeySizes {
		t.Run(size.String(), func(t *testing.T) {
			key := make([]byte, size.Bytes())
			schedule, err := ExpandKey(key, size)
			require.NoError(t, err)
			assert.Equal(t, size.Rounds()+1, schedule.Len())
			assert.Equal(t, size.Rounds(), schedule.Rounds())
			assert.Equal(t, size, schedule.KeySize())
		})
	}
}

func TestExpandKeyFIPS197(t *testing.T) {
	// Appendix A.1: the last round key of 2b7e1516...
	schedule, err := ExpandKey(mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"), AES128)
	require.NoError(t, err)

	first := schedule.RoundKey(0)
	assert.Equal(t, [4]byte{0x2b, 0x7e, 0x15, 0x16}, first[0])

	last := schedule.RoundKey(10)
	assert.Equal(t, [4]byte{0xd0, 0x14, 0xf9, 0xa8}, last[0])
	assert.Equal(t, [4]byte{0xc9, 0xee, 0x25, 0x89}, last[1])
	assert.Equal(t, [4]byte{0xe1, 0x3f, 0x0c, 0xc8}, last[2])
	assert.Equal(t, [4]byte{0xb6, 0x63, 0x0c, 0xa6}, last[3])
}

func TestExpandKeyErrors(t *testing.T) {
	_, err := ExpandKey(make([]byte, 16), KeySize(100))
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = ExpandKey(make([]byte, 16), AES256)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = ExpandKey(nil, AES128)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestShiftRowInverse(t *testing.T) {
	row := [4]byte{0x0a, 0x0b, 0x0c, 0x0d}
	for n := 0; n < 4; n++ {
		assert.Equal(t, row, InvShiftRow(ShiftRow(row, n), n), "shift %d", n)
		assert.Equal(t, row, ShiftRow(InvShiftRow(row, n), n), "shift %d", n)
	}
	assert.Equal(t, [4]byte{0x0b, 0x0c, 0x0d, 0x0a}, ShiftRow(row, 1))
	assert.Equal(t, [4]byte{0x0d, 0x0a, 0x0b, 0x0c}, InvShiftRow(row, 1))
}

func TestShiftRows(t *testing.T) {
	s, err := NewState(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	require.NoError(t, err)

	shifted := ShiftRows(s)
	assert.Equal(t, mustHex(t, "00050a0f04090e03080d02070c01060b"), shifted.Bytes())
	assert.Equal(t, s, InvShiftRows(shifted))
}

func TestMixColumn(t *testing.T) {
	// Well known MixColumns test columns.
	tests := []struct {
		in, out [4]byte
	}{
		{[4]byte{0xdb, 0x13, 0x53, 0x45}, [4]byte{0x8e, 0x4d, 0xa1, 0xbc}},
		{[4]byte{0xf2, 0x0a, 0x22, 0x5c}, [4]byte{0x9f, 0xdc, 0x58, 0x9d}},
		{[4]byte{0x01, 0x01, 0x01, 0x01}, [4]byte{0x01, 0x01, 0x01, 0x01}},
		{[4]byte{0xd4, 0xd4, 0xd4, 0xd5}, [4]byte{0xd5, 0xd5, 0xd7, 0xd6}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.out, MixColumn(tt.in))
		assert.Equal(t, tt.in, InvMixColumn(tt.out))
	}
}

func TestMixColumnInverseSampled(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		var col [4]byte
		rng.Read(col[:])
		require.Equal(t, col, InvMixColumn(MixColumn(col)))
		require.Equal(t, col, MixColumn(InvMixColumn(col)))
	}
}

func TestRoundTransformInverses(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		var s State
		var k RoundKey
		for c := range s {
			rng.Read(s[c][:])
			rng.Read(k[c][:])
		}

		assert.Equal(t, s, InvSubBytes(SubBytes(s)))
		assert.Equal(t, s, InvShiftRows(ShiftRows(s)))
		assert.Equal(t, s, InvMixColumns(MixColumns(s)))
		assert.Equal(t, s, AddRoundKey(AddRoundKey(s, k), k))
	}
}

func TestTransformsDoNotMutateInput(t *testing.T) {
	s, err := NewState(mustHex(t, "00112233445566778899aabbccddeeff"))
	require.NoError(t, err)
	orig := s

	_ = SubBytes(s)
	_ = ShiftRows(s)
	_ = MixColumns(s)
	assert.Equal(t, orig, s)
}

func TestKnownAnswerTests(t *testing.T) {
	for _, v := range KnownAnswerTests() {
		t.Run(v.Name, func(t *testing.T) {
			assert.NoError(t, v.Check())
		})
	}
	assert.NoError(t, SelfTest())
}

func TestZeroKeyZeroBlock(t *testing.T) {
	ct, err := Encrypt(make([]byte, 16), make([]byte, 16), AES128)
	require.NoError(t, err)
	assert.Equal(t, "66e94bd4ef8a2c3b884cfa59ca342b2e", hex.EncodeToString(ct))
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, size := range KeySizes {
		t.Run(size.String(), func(t *testing.T) {
			for i := 0; i < 200; i++ {
				key := make([]byte, size.Bytes())
				block := make([]byte, BlockSize)
				rng.Read(key)
				rng.Read(block)

				ct, err := Encrypt(block, key, size)
				require.NoError(t, err)
				pt, err := Decrypt(ct, key, size)
				require.NoError(t, err)
				require.Equal(t, block, pt)

				pt, err = Decrypt(block, key, size)
				require.NoError(t, err)
				ct, err = Encrypt(pt, key, size)
				require.NoError(t, err)
				require.Equal(t, block, ct)
			}
		})
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, size := range KeySizes {
		t.Run(size.String(), func(t *testing.T) {
			for i := 0; i < 100; i++ {
				key := make([]byte, size.Bytes())
				block := make([]byte, BlockSize)
				rng.Read(key)
				rng.Read(block)

				ref, err := stdaes.NewCipher(key)
				require.NoError(t, err)
				want := make([]byte, BlockSize)
				ref.Encrypt(want, block)

				got, err := Encrypt(block, key, size)
				require.NoError(t, err)
				require.Equal(t, want, got)
			}
		})
	}
}

func TestBlockLengthErrors(t *testing.T) {
	key := make([]byte, 16)
	for _, n := range []int{0, 1, 15, 17, 32} {
		ct, err := Encrypt(make([]byte, n), key, AES128)
		assert.ErrorIs(t, err, ErrInvalidBlockLength, "length %d", n)
		assert.Nil(t, ct)

		pt, err := Decrypt(make([]byte, n), key, AES128)
		assert.ErrorIs(t, err, ErrInvalidBlockLength, "length %d", n)
		assert.Nil(t, pt)
	}
}

func TestCipherKeyErrors(t *testing.T) {
	c, err := NewCipher(make([]byte, 16), KeySize(160))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
	assert.Nil(t, c)

	c, err = NewCipher(make([]byte, 24), AES128)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
	assert.Nil(t, c)
}

func TestCipherConcurrentUse(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	base, err := NewCipher(key, AES128)
	require.NoError(t, err)

	// Ciphers built from one schedule share it without copying.
	ciphers := []*Cipher{base, NewCipherFromSchedule(base.Schedule())}
	assert.Same(t, base.Schedule(), ciphers[1].Schedule())

	pt := mustHex(t, "00112233445566778899aabbccddeeff")
	want := mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(c *Cipher) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := c.EncryptBlock(pt)
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(got, want) {
					errs <- assert.AnError
					return
				}
			}
		}(ciphers[i%len(ciphers)])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestGenerateKey(t *testing.T) {
	for _, size := range KeySizes {
		key, err := GenerateKey(size)
		require.NoError(t, err)
		assert.Len(t, key, size.Bytes())

		key2, err := GenerateKey(size)
		require.NoError(t, err)
		assert.NotEqual(t, key, key2)
	}

	_, err := GenerateKey(KeySize(1))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func BenchmarkEncryptBlock(b *testing.B) {
	for _, size := range KeySizes {
		b.Run(size.String(), func(b *testing.B) {
			c, err := NewCipher(make([]byte, size.Bytes()), size)
			if err != nil {
				b.Fatal(err)
			}
			s := State{}

			b.SetBytes(BlockSize)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s = c.EncryptState(s)
			}
		})
	}
}

func BenchmarkExpandKey(b *testing.B) {
	key := make([]byte, 32)
	for i := 0; i < b.N; i++ {
		if _, err := ExpandKey(key, AES256); err != nil {
			b.Fatal(err)
		}
	}
}
