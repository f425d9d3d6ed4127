package quiz

import (
	"math/rand"
	"slices"
)

// Sample draws k distinct ids uniformly without replacement. When k covers
// the whole input every id is returned. The input is never modified.
func Sample(ids []int64, k int) []int64 {
	if k <= 0 {
		return nil
	}
	pool := slices.Clone(ids)
	if k >= len(pool) {
		return pool
	}
	// partial Fisher-Yates: the first k slots end up a uniform sample
	for i := 0; i < k; i++ {
		j := i + rand.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
