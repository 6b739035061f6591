// Package cluster implements density-based grouping of embedding vectors.
package cluster

import (
	"math"
	"sort"
)

// Noise is the label for vectors that belong to no cluster.
const Noise = -1

const unclassified = -2

// DBSCAN groups vectors by euclidean density. MinPoints is the minimum
// cluster size, counting the point itself. Eps is the neighborhood radius;
// zero means estimate it from the data.
type DBSCAN struct {
	MinPoints int
	Eps       float64
}

// NewDBSCAN returns a DBSCAN with the given minimum cluster size and a
// data-estimated radius.
func NewDBSCAN(minPoints int) *DBSCAN {
	return &DBSCAN{MinPoints: minPoints}
}

// Cluster labels every vector. Cluster ids start at 0 in first-appearance
// order over the input, so labeling is deterministic for fixed input.
func (d *DBSCAN) Cluster(vectors [][]float32) ([]int, error) {
	n := len(vectors)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unclassified
	}
	if n == 0 {
		return labels, nil
	}

	minPts := d.MinPoints
	if minPts < 1 {
		minPts = 1
	}
	eps := d.Eps
	if eps <= 0 {
		eps = estimateEps(vectors, minPts)
	}
	epsSq := eps * eps

	next := 0
	for i := 0; i < n; i++ {
		if labels[i] != unclassified {
			continue
		}
		neighbors := regionQuery(vectors, i, epsSq)
		if len(neighbors) < minPts {
			labels[i] = Noise
			continue
		}
		labels[i] = next
		expand(vectors, labels, neighbors, next, epsSq, minPts)
		next++
	}

	demoteUndersized(labels, next, minPts)

	return labels, nil
}

// demoteUndersized reclassifies clusters with fewer than minPts members as
// noise. A core point whose whole neighborhood was already absorbed as border
// members of an earlier cluster founds a cluster below the minimum size.
// Surviving labels are recompacted to 0..C-1 in first-appearance order.
func demoteUndersized(labels []int, clusters, minPts int) {
	if clusters == 0 {
		return
	}

	sizes := make([]int, clusters)
	for _, l := range labels {
		if l >= 0 {
			sizes[l]++
		}
	}

	remap := make([]int, clusters)
	next := 0
	for id, size := range sizes {
		if size < minPts {
			remap[id] = Noise
			continue
		}
		remap[id] = next
		next++
	}

	for i, l := range labels {
		if l >= 0 {
			labels[i] = remap[l]
		}
	}
}

// expand grows cluster id from the seed neighborhood. Seeds reached as noise
// become border members; only core points extend the frontier.
func expand(vectors [][]float32, labels []int, seeds []int, id int, epsSq float64, minPts int) {
	for qi := 0; qi < len(seeds); qi++ {
		p := seeds[qi]
		switch labels[p] {
		case Noise:
			labels[p] = id
			continue
		case unclassified:
			labels[p] = id
		default:
			continue
		}

		nb := regionQuery(vectors, p, epsSq)
		if len(nb) >= minPts {
			seeds = append(seeds, nb...)
		}
	}
}

// regionQuery returns the indices within eps of point i, i included.
func regionQuery(vectors [][]float32, i int, epsSq float64) []int {
	var out []int
	for j := range vectors {
		if squaredEuclidean(vectors[i], vectors[j]) <= epsSq {
			out = append(out, j)
		}
	}
	return out
}

// estimateEps derives a radius from the data: the median distance to the
// (minPts-1)-th nearest neighbor, doubled so chains with uneven local
// spacing stay connected.
func estimateEps(vectors [][]float32, minPts int) float64 {
	n := len(vectors)
	kdist := make([]float64, 0, n)
	dists := make([]float64, 0, n)

	for i := range vectors {
		dists = dists[:0]
		for j := range vectors {
			if i == j {
				continue
			}
			dists = append(dists, math.Sqrt(squaredEuclidean(vectors[i], vectors[j])))
		}
		if len(dists) == 0 {
			continue
		}
		sort.Float64s(dists)

		k := minPts - 1
		if k < 1 {
			k = 1
		}
		if k > len(dists) {
			k = len(dists)
		}
		kdist = append(kdist, dists[k-1])
	}

	if len(kdist) == 0 {
		return 0
	}
	sort.Float64s(kdist)
	return 2 * kdist[len(kdist)/2]
}

func squaredEuclidean(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return sum
}
