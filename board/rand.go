package board

// PseudoRand is a xorshift64* generator. It is deterministic for a given seed
// so Zobrist keys are reproducible across runs.
type PseudoRand struct {
	s uint64
}

func NewPseudoRand(seed uint64) *PseudoRand {
	r := &PseudoRand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator. A zero seed would lock xorshift at zero, so it
// is replaced by a fixed non-zero one.
func (r *PseudoRand) Seed(seed uint64) {
	if seed == 0 {
		seed = 0x_98_F1_07_A2_BE_EF_12_34
	}
	r.s = seed
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}
