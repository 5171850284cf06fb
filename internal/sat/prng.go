package sat

// drand is MiniSat's exact pseudo-random generator. It is intentionally a
// simple linear congruential generator rather than a modern PRNG: the
// branching decisions it feeds into (see Solver.pickBranchLit) must stay
// bit-reproducible across implementations given the same seed, which a
// swap to math/rand (or any PRNG with different internal state) would
// silently break.
func drand(seed *float64) float64 {
	*seed *= 1389796
	q := float64(int64(*seed / 2147483647))
	*seed -= q * 2147483647
	return *seed / 2147483647
}

// irand returns a pseudo-random integer in [0, n).
func irand(seed *float64, n int) int {
	return int(drand(seed) * float64(n))
}
