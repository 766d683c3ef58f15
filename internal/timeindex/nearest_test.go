package timeindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestExactMatch(t *testing.T) {
	times := []int64{100, 200, 300, 400, 500}
	for i, ts := range times {
		idx, err := Nearest(times, ts)
		require.NoError(t, err)
		assert.Equal(t, i, idx, "target %d", ts)
	}
}

func TestNearestOutOfRange(t *testing.T) {
	times := []int64{1000, 4600, 8200}

	idx, err := Nearest(times, -50)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = Nearest(times, 99999)
	require.NoError(t, err)
	assert.Equal(t, len(times)-1, idx)
}

func TestNearestBetween(t *testing.T) {
	times := []int64{0, 3600, 7200, 10800}

	tests := []struct {
		name   string
		target int64
		want   int
	}{
		{"closer to lower", 1000, 0},
		{"closer to upper", 3000, 1},
		{"tie prefers upper", 1800, 1},
		{"tie in the middle", 9000, 3},
		{"just past lower", 7201, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Nearest(times, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx)
		})
	}
}

func TestNearestIrregularCadence(t *testing.T) {
	times := []int64{0, 10, 1000, 1010}

	idx, err := Nearest(times, 600)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = Nearest(times, 400)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestNearestSingleElement(t *testing.T) {
	for _, target := range []int64{-10, 5, 10} {
		idx, err := Nearest([]int64{5}, target)
		require.NoError(t, err)
		assert.Equal(t, 0, idx)
	}
}

func TestNearestEmpty(t *testing.T) {
	_, err := Nearest(nil, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySequence)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNearestDuplicateKeys(t *testing.T) {
	times := []int64{10, 20, 20, 20, 30}
	idx, err := Nearest(times, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), times[idx])
}

func TestSearchInsertionPoint(t *testing.T) {
	times := []int64{10, 20, 30}

	p, ok := Search(times, 25, compareInt64)
	assert.False(t, ok)
	assert.Equal(t, 2, p)

	p, ok = Search(times, 5, compareInt64)
	assert.False(t, ok)
	assert.Equal(t, 0, p)

	p, ok = Search(times, 35, compareInt64)
	assert.False(t, ok)
	assert.Equal(t, 3, p)
}

func TestNearestFuncFloat(t *testing.T) {
	keys := []float64{0.5, 1.5, 2.5}
	cmp := func(a, b float64) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	dist := func(a, b float64) float64 {
		if a > b {
			return a - b
		}
		return b - a
	}

	idx, err := NearestFunc(keys, 1.9, cmp, dist)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestFloor(t *testing.T) {
	days := []int64{0, 86400, 172800}

	assert.Equal(t, -1, Floor(days, -1))
	assert.Equal(t, 0, Floor(days, 0))
	assert.Equal(t, 0, Floor(days, 86399))
	assert.Equal(t, 1, Floor(days, 86400))
	assert.Equal(t, 2, Floor(days, 999999))
	assert.Equal(t, -1, Floor(nil, 5))
	assert.Equal(t, 2, Floor([]int64{1, 5, 5, 9}, 5))
}
