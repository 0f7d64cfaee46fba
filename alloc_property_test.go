package xalloc

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/cznic/sortutil"
	"github.com/stretchr/testify/require"
)

// stableLive returns bp in ascending order, using sortutil.Int64Slice to
// get a deterministic replay order over a map of live handles so a
// failing seed reproduces.
func stableLive(live map[int64]int64) []int64 {
	a := make(sortutil.Int64Slice, 0, len(live))
	for bp := range live {
		a = append(a, bp)
	}
	sort.Sort(a)
	return []int64(a)
}

// TestInvariantsAfterRandomOps drives a long randomized sequence of
// Alloc/Free/Realloc and runs Verify after every operation, checking
// every structural invariant holds continuously, not just at convenient
// checkpoints.
func TestInvariantsAfterRandomOps(t *testing.T) {
	a := newTestAllocator(t)
	rng := rand.New(rand.NewSource(42))

	live := make(map[int64]int64) // bp -> requested size
	for i := 0; i < 2000; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			sz := int64(rng.Intn(512) + 1)
			bp, ok := a.Alloc(sz)
			require.True(t, ok)
			live[bp] = sz

		case rng.Intn(2) == 0:
			keys := stableLive(live)
			victim := keys[rng.Intn(len(keys))]
			a.Free(victim)
			delete(live, victim)

		default:
			keys := stableLive(live)
			victim := keys[rng.Intn(len(keys))]
			newSz := int64(rng.Intn(512) + 1)
			newBp, ok := a.Realloc(victim, newSz)
			require.True(t, ok)
			delete(live, victim)
			live[newBp] = newSz
		}

		st, err := a.Verify(nil)
		require.NoErrorf(t, err, "iteration %d", i)
		require.Equal(t, int64(len(live))+1, st.AllocBlocks, "iteration %d: alloc block count drifted", i)
	}
}
