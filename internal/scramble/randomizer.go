package scramble

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"
)

const (
	prngMultiplier  = 0x2545F4914F6CDD1D
	roundMultiplier = 0x045D9F3B
	mask32          = 0xFFFFFFFF
	feistelRounds   = 4
)

// sboxTable is the 16-entry substitution table used by roundFunc.
var sboxTable = [16]uint64{
	163, 95, 137, 13, 55, 193, 107, 228,
	114, 185, 22, 243, 68, 218, 158, 40,
}

var mask64 = new(big.Int).SetUint64(^uint64(0))

var (
	errInvalidSeed = errors.New("scramble: seed must be a non-negative integer")
	errGridDim     = errors.New("scramble: grid dimension must be positive")
)

// Randomizer produces a reproducible permutation of gridDim² slot indices.
// The internal xorshift state advances on every call to Next, so a
// Randomizer must not be shared between goroutines.
type Randomizer struct {
	size    int
	seed    uint64
	state   uint64
	entropy [sha512.Size]byte
	order   []int
}

// NewRandomizer seeds the generator and computes its permutation.
// Seeds wider than 64 bits are masked.
func NewRandomizer(seed *big.Int, gridDim int) (*Randomizer, error) {
	if seed == nil || seed.Sign() < 0 {
		return nil, errInvalidSeed
	}
	if gridDim <= 0 {
		return nil, errGridDim
	}

	masked := new(big.Int).And(seed, mask64)
	seedStr := []byte(masked.String())

	sum := sha256.Sum256(seedStr)
	r := &Randomizer{
		size:    gridDim * gridDim,
		seed:    masked.Uint64(),
		state:   binary.BigEndian.Uint64(sum[0:8]) ^ binary.BigEndian.Uint64(sum[8:16]),
		entropy: sha512.Sum512(seedStr),
	}

	r.order = make([]int, r.size)
	for i := range r.order {
		r.order[i] = i
	}
	r.permute()
	return r, nil
}

// Size returns the number of slots in the permutation.
func (r *Randomizer) Size() int { return r.size }

// Seed returns the 64-bit seed the generator was built from.
func (r *Randomizer) Seed() uint64 { return r.seed }

// Order returns a copy of the permutation.
func (r *Randomizer) Order() []int {
	out := make([]int, len(r.order))
	copy(out, r.order)
	return out
}

// Next advances the xorshift state and returns it.
func (r *Randomizer) Next() uint64 {
	s := r.state
	s ^= s << 11
	s ^= s >> 19
	s ^= s << 7
	s *= prngMultiplier
	r.state = s
	return s
}

func (r *Randomizer) entropyByte(i int) uint64 {
	return uint64(r.entropy[i%len(r.entropy)])
}

func sbox(e uint64) uint64 {
	return sboxTable[e&15] ^ ((e >> 4) & 15)
}

func (r *Randomizer) roundFunc(x, c uint64) uint64 {
	n := x ^ r.Next() ^ c
	v := ((n << 5) | (n >> 3)) & mask32
	v = (v * roundMultiplier) & mask32
	v ^= sbox(v & 0xFF)
	v ^= v >> 13
	return v
}

func (r *Randomizer) feistelMix(a, b uint64, rounds int) (uint64, uint64) {
	left, right := a, b
	for round := 0; round < rounds; round++ {
		ent := r.entropyByte(round)
		left ^= r.roundFunc(right, ent)
		right ^= r.roundFunc(left, ent^(uint64(round*31)&0xFF))
	}
	return left, right
}

func (r *Randomizer) permute() {
	size := uint64(r.size)
	half := r.size / 2

	for t := 0; t < half; t++ {
		left, right := r.feistelMix(uint64(t), uint64(t+half), feistelRounds)
		i, j := int(left%size), int(right%size)
		r.order[i], r.order[j] = r.order[j], r.order[i]
	}

	// The draw plus entropy byte may exceed 64 bits; the modulus is taken
	// on the full 65-bit sum.
	for e := r.size - 1; e > 0; e-- {
		lo, carry := bits.Add64(r.Next(), r.entropyByte(e), 0)
		j := int(bits.Rem64(carry, lo, uint64(e+1)))
		r.order[e], r.order[j] = r.order[j], r.order[e]
	}
}
