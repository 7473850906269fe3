package background

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// hexAlphabet is the 16 symbol alphabet random colours are drawn from.
const hexAlphabet = "0123456789abcdef"

// Rand is the source of randomness used for colours and angles.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// lockedRand serialises access to a *rand.Rand, which is not safe for concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// defaultRand returns a randomly seeded source.
func defaultRand() Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// randomHexColor draws 6 hex digits independently and returns "#rrggbb".
func randomHexColor(r Rand) string {
	var sb strings.Builder
	sb.Grow(7)
	sb.WriteByte('#')
	for i := 0; i < 6; i++ {
		sb.WriteByte(hexAlphabet[r.IntN(len(hexAlphabet))])
	}
	return sb.String()
}

// randomAngle returns an angle in [0, 360).
func randomAngle(r Rand) int {
	return r.IntN(360)
}
