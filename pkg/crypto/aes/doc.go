// Package aes implements the AES block cipher (FIPS-197) from first principles
// for 128, 192 and 256-bit keys.
//
// The package works on single 16-byte blocks. There is no chaining mode: every
// block is transformed independently under the same round key schedule, which
// makes multi-block use equivalent to ECB. The block codec pads the final block
// with NUL bytes and strips trailing NULs on the way back, so a plaintext that
// legitimately ends in NUL bytes does not survive a round trip unchanged.
//
// Nothing here is constant time. It exists for demonstration and benchmarking.
package aes
