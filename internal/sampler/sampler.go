package sampler

import (
	"math/rand/v2"

	"github.com/suykerbuyk/note-connections/internal/host"
)

// Sample returns min(n, len(docs)) distinct documents picked by shuffling a
// copy of docs and taking the head. The input is left untouched. A nil rng
// uses the global source.
func Sample(docs []host.Document, n int, rng *rand.Rand) []host.Document {
	if n <= 0 || len(docs) == 0 {
		return []host.Document{}
	}

	shuffled := make([]host.Document, len(docs))
	copy(shuffled, docs)

	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
