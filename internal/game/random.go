package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// travelRNG is the generator for one leg of travel. A seed, step and
// destination always give the same gold, so a loaded save replays the
// same route identically.
func travelRNG(seed int64, step int, to string) *rand.Rand {
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, step, "leg"), seedWord(seed, step, to)))
}

func seedWord(seed int64, step int, salt string) uint64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d:%d:%s", seed, step, salt)
	return h.Sum64()
}
