package aes

// Cipher encrypts and decrypts single blocks under one key.
// It holds only the immutable schedule and is safe for concurrent use.
type Cipher struct {
	schedule *Schedule
}

// NewCipher expands key and returns a Cipher for it.
func NewCipher(key []byte, size KeySize) (*Cipher, error) {
	schedule, err := ExpandKey(key, size)
	if err != nil {
		return nil, err
	}
	return &Cipher{schedule: schedule}, nil
}

// NewCipherFromSchedule wraps an already expanded schedule.
func NewCipherFromSchedule(schedule *Schedule) *Cipher {
	return &Cipher{schedule: schedule}
}

// Schedule returns the round key schedule used by c.
func (c *Cipher) Schedule() *Schedule {
	return c.schedule
}

// KeySize returns the variant c was created for.
func (c *Cipher) KeySize() KeySize {
	return c.schedule.size
}

// EncryptState runs the forward cipher over one state.
func (c *Cipher) EncryptState(s State) State {
	keys := c.schedule.keys
	nr := len(keys) - 1

	s = AddRoundKey(s, keys[0])
	for round := 1; round < nr; round++ {
		s = AddRoundKey(MixColumns(ShiftRows(SubBytes(s))), keys[round])
	}
	return AddRoundKey(ShiftRows(SubBytes(s)), keys[nr])
}

// DecryptState runs the inverse cipher over one state. It undoes EncryptState
// step for step, walking the schedule from the last round key to the first.
func (c *Cipher) DecryptState(s State) State {
	keys := c.schedule.keys
	nr := len(keys) - 1

	s = AddRoundKey(s, keys[nr])
	for round := nr - 1; round > 0; round-- {
		s = InvMixColumns(AddRoundKey(InvSubBytes(InvShiftRows(s)), keys[round]))
	}
	return AddRoundKey(InvSubBytes(InvShiftRows(s)), keys[0])
}

// EncryptBlock encrypts a single 16-byte block.
func (c *Cipher) EncryptBlock(block []byte) ([]byte, error) {
	s, err := NewState(block)
	if err != nil {
		return nil, err
	}
	return c.EncryptState(s).Bytes(), nil
}

// DecryptBlock decrypts a single 16-byte block.
func (c *Cipher) DecryptBlock(block []byte) ([]byte, error) {
	s, err := NewState(block)
	if err != nil {
		return nil, err
	}
	return c.DecryptState(s).Bytes(), nil
}

// Encrypt expands key and encrypts one block with it.
func Encrypt(block, key []byte, size KeySize) ([]byte, error) {
	c, err := NewCipher(key, size)
	if err != nil {
		return nil, err
	}
	return c.EncryptBlock(block)
}

// Decrypt expands key and decrypts one block with it.
func Decrypt(block, key []byte, size KeySize) ([]byte, error) {
	c, err := NewCipher(key, size)
	if err != nil {
		return nil, err
	}
	return c.DecryptBlock(block)
}
