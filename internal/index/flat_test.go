package index

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/kailas-cloud/knowdex/internal/domain"
)

func TestFlatSearchOrdersByDistance(t *testing.T) {
	idx, err := Flat([][]float32{
		{0, 0},
		{3, 0},
		{1, 0},
		{10, 0},
	})
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}

	dists, ids, err := idx.Search([][]float32{{0, 0}}, 4)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	wantIDs := []int{0, 2, 1, 3}
	wantDists := []float64{0, 1, 9, 100}
	for i := range wantIDs {
		if ids[0][i] != wantIDs[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[0][i], wantIDs[i])
		}
		if dists[0][i] != wantDists[i] {
			t.Errorf("dists[%d] = %v, want %v", i, dists[0][i], wantDists[i])
		}
	}
}

func TestFlatSelfSearchIsReflexive(t *testing.T) {
	vectors := [][]float32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	idx, err := Flat(vectors)
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}

	for i, v := range vectors {
		dists, ids, err := idx.Search([][]float32{v}, 1)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if ids[0][0] != i {
			t.Errorf("nearest to vector %d = %d, want itself", i, ids[0][0])
		}
		if dists[0][0] != 0 {
			t.Errorf("self distance = %v, want 0", dists[0][0])
		}
	}
}

func TestFlatClampsKToLen(t *testing.T) {
	idx, err := Flat([][]float32{{0}, {1}})
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}

	dists, ids, err := idx.Search([][]float32{{0}}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(ids[0]) != 2 || len(dists[0]) != 2 {
		t.Errorf("result lengths = %d/%d, want 2/2", len(ids[0]), len(dists[0]))
	}
}

func TestFlatTieBreaksByLowerID(t *testing.T) {
	idx, err := Flat([][]float32{
		{2, 0},
		{0, 2},
		{-2, 0},
	})
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}

	_, ids, err := idx.Search([][]float32{{0, 0}}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	want := []int{0, 1, 2}
	for i := range want {
		if ids[0][i] != want[i] {
			t.Errorf("ids = %v, want %v", ids[0], want)
			break
		}
	}
}

func TestFlatBatchQueriesAreIndependent(t *testing.T) {
	idx, err := Flat([][]float32{{0, 0}, {5, 5}})
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}

	dists, ids, err := idx.Search([][]float32{{0, 0}, {5, 5}}, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d result rows, want 2", len(ids))
	}
	if ids[0][0] != 0 || ids[1][0] != 1 {
		t.Errorf("nearest ids = %d/%d, want 0/1", ids[0][0], ids[1][0])
	}
	if dists[0][0] != 0 || dists[1][0] != 0 {
		t.Errorf("self distances = %v/%v, want 0/0", dists[0][0], dists[1][0])
	}
}

func TestNotConfiguredNamesMissingFeature(t *testing.T) {
	build := NotConfigured("similarity search")

	_, err := build([][]float32{{1}})
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("error = %v, want ErrIndexUnavailable", err)
	}
	if !strings.Contains(err.Error(), "similarity search") {
		t.Errorf("error %q does not name the feature", err)
	}
}

func TestSquaredEuclideanMatchesDefinition(t *testing.T) {
	// Length 5 exercises both the unrolled body and the tail.
	a := []float32{1, 2, 3, 4, 5}
	b := []float32{5, 4, 3, 2, 1}

	var want float64
	for i := range a {
		d := float64(a[i] - b[i])
		want += d * d
	}

	if got := squaredEuclidean(a, b); math.Abs(got-want) > 1e-9 {
		t.Errorf("squaredEuclidean = %v, want %v", got, want)
	}
}
