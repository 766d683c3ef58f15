// Package timeindex maps a target key onto the closest position of an
// ascending sequence. Quality functions use it to turn a UNIX timestamp into
// an index into hourly forecast arrays.
package timeindex

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the root of all input validation errors.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptySequence is returned when there is nothing to search.
	ErrEmptySequence = fmt.Errorf("%w: empty sequence", ErrInvalidArgument)
)

// Search runs a binary search for target over the ascending sequence s.
// It returns the index of an element equal to target and true, or the
// insertion point (the first index whose element is greater than target)
// and false.
func Search[T any](s []T, target T, cmp func(a, b T) int) (int, bool) {
	lo, hi := 0, len(s)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch c := cmp(target, s[mid]); {
		case c > 0:
			lo = mid + 1
		case c < 0:
			hi = mid - 1
		default:
			return mid, true
		}
	}
	return lo, false
}

// NearestFunc returns the index of the element of s closest to target.
//
// cmp is a three-way comparator and dist reports the absolute distance
// between two keys. When target falls exactly between two neighbours the
// later index wins. Targets outside the range clamp to the first or last
// element.
func NearestFunc[T any](s []T, target T, cmp func(a, b T) int, dist func(a, b T) float64) (int, error) {
	if len(s) == 0 {
		return 0, ErrEmptySequence
	}

	p, exact := Search(s, target, cmp)
	if exact {
		return p, nil
	}

	switch {
	case p == 0:
		return 0, nil
	case p >= len(s):
		return len(s) - 1, nil
	}

	below := dist(target, s[p-1])
	above := dist(s[p], target)
	if below < above {
		return p - 1, nil
	}
	return p, nil
}

// Nearest resolves target against ascending UNIX-second timestamps.
func Nearest(times []int64, target int64) (int, error) {
	return NearestFunc(times, target, compareInt64, distInt64)
}

// Floor returns the index of the last timestamp not after target, or -1
// when target precedes the whole sequence.
func Floor(times []int64, target int64) int {
	p, exact := Search(times, target, compareInt64)
	if exact {
		// Step over equal neighbours so repeated keys resolve to the last one.
		for p+1 < len(times) && times[p+1] == target {
			p++
		}
		return p
	}
	return p - 1
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func distInt64(a, b int64) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}
