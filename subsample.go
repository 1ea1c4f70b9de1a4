// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// SubsampleCounts draws n observations, without replacement, from the
// multiset of per-OTU observations described by counts, and returns
// the drawn counts in the same positions. The result sums to exactly
// n and every entry is ≤ its original. counts must be non-negative
// integers summing to at least n; when the sum is exactly n a copy is
// returned without consulting rnd.
func SubsampleCounts(counts []float64, n int, rnd *rand.Rand) ([]float64, error) {
	total := 0
	for i, v := range counts {
		if v < 0 || v != math.Trunc(v) {
			return nil, fmt.Errorf("count %v at index %d is not a non-negative integer", v, i)
		}
		total += int(v)
	}
	if total < n {
		return nil, fmt.Errorf("cannot draw %d observations from a total of %d", n, total)
	}
	if total == n {
		return append([]float64(nil), counts...), nil
	}
	if rnd == nil {
		return nil, errors.New("nil random source")
	}
	pool := make([]int, 0, total)
	for i, v := range counts {
		for k := 0; k < int(v); k++ {
			pool = append(pool, i)
		}
	}
	rnd.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
	out := make([]float64, len(counts))
	for _, i := range pool[:n] {
		out[i]++
	}
	return out, nil
}
