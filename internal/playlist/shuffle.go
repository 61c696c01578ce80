package playlist

import (
	"math/rand/v2"
	"time"
)

// NewRand returns a PCG-backed generator. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a random permutation of the playlist's songs.
// The songs are copied first; p is never modified.
func Shuffle(p *Playlist, rng *rand.Rand) []Song {
	shuffled := p.Songs()
	n := len(shuffled)

	// Fisher-Yates: pick each slot's song from the not yet placed tail.
	for i := 0; i < n-1; i++ {
		r := i + rng.IntN(n-i)
		shuffled[i], shuffled[r] = shuffled[r], shuffled[i]
	}
	return shuffled
}
