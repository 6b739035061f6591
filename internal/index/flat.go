package index

import "sort"

// FlatL2 is a brute-force exact index over squared euclidean distance.
// Every query scans every stored vector; no approximation, no tuning.
type FlatL2 struct {
	vectors [][]float32
}

// Flat is the default Builder.
func Flat(vectors [][]float32) (Index, error) {
	return &FlatL2{vectors: vectors}, nil
}

// Len reports the number of stored vectors.
func (f *FlatL2) Len() int { return len(f.vectors) }

// Search scans the whole index per query. Equal distances break toward the
// lower vector id, so results are stable for a fixed index and query.
func (f *FlatL2) Search(queries [][]float32, k int) ([][]float64, [][]int, error) {
	if k > len(f.vectors) {
		k = len(f.vectors)
	}
	if k < 0 {
		k = 0
	}

	dists := make([][]float64, len(queries))
	ids := make([][]int, len(queries))

	scored := make([]candidate, len(f.vectors))
	for qi, q := range queries {
		for i, v := range f.vectors {
			scored[i] = candidate{id: i, dist: squaredEuclidean(q, v)}
		}
		sort.Slice(scored, func(a, b int) bool {
			if scored[a].dist != scored[b].dist {
				return scored[a].dist < scored[b].dist
			}
			return scored[a].id < scored[b].id
		})

		d := make([]float64, k)
		n := make([]int, k)
		for i := 0; i < k; i++ {
			d[i] = scored[i].dist
			n[i] = scored[i].id
		}
		dists[qi], ids[qi] = d, n
	}

	return dists, ids, nil
}

type candidate struct {
	id   int
	dist float64
}

// squaredEuclidean computes squared euclidean distance with 4-way loop
// unrolling. Accumulates in float64 to keep wide sums stable.
func squaredEuclidean(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum0, sum1, sum2, sum3 float64
	i := 0
	for ; i <= n-4; i += 4 {
		d0 := float64(a[i] - b[i])
		d1 := float64(a[i+1] - b[i+1])
		d2 := float64(a[i+2] - b[i+2])
		d3 := float64(a[i+3] - b[i+3])
		sum0 += d0 * d0
		sum1 += d1 * d1
		sum2 += d2 * d2
		sum3 += d3 * d3
	}
	for ; i < n; i++ {
		d := float64(a[i] - b[i])
		sum0 += d * d
	}

	return sum0 + sum1 + sum2 + sum3
}
