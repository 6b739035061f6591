// Package index provides exact nearest-neighbor search over in-memory vectors.
package index

import (
	"fmt"

	"github.com/kailas-cloud/knowdex/internal/domain"
)

// Index answers k-nearest-neighbor queries over a fixed vector set.
type Index interface {
	// Search returns the k nearest stored vectors for every query as parallel
	// distance/id slices, squared euclidean, ascending. k is clamped to Len().
	Search(queries [][]float32, k int) (dists [][]float64, ids [][]int, err error)
	// Len reports the number of stored vectors.
	Len() int
}

// Builder constructs an Index over the given vectors. Vectors are captured by
// reference and must not be mutated afterwards.
type Builder func(vectors [][]float32) (Index, error)

// NotConfigured returns a Builder for deployments without a nearest-neighbor
// backend. Building fails with ErrIndexUnavailable naming the feature that
// needed it, so the error surfaces on first index access rather than at
// knowledge base construction.
func NotConfigured(feature string) Builder {
	return func([][]float32) (Index, error) {
		return nil, fmt.Errorf("%w: %s needs a nearest-neighbor backend", domain.ErrIndexUnavailable, feature)
	}
}
