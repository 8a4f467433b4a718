package slicest

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_KeepsOrderAndInput(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	got := Filter(in, func(n int) bool { return n%2 == 1 })
	assert.Equal(t, []int{1, 3, 5}, got)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, in)
	assert.Empty(t, Filter([]int(nil), func(int) bool { return true }))
}

func TestCountAndReduce(t *testing.T) {
	words := []string{"pan", "torta", "alfajor"}
	assert.Equal(t, 2, Count(words, func(s string) bool { return len(s) > 3 }))
	assert.Equal(t, 15, ReduceD(words, 0, func(s string, n int) int { return n + len(s) }))
}

func TestMapX_StopsOnError(t *testing.T) {
	got, err := MapX([]string{"1", "2"}, strconv.Atoi)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	_, err = MapX([]string{"1", "x"}, strconv.Atoi)
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestToMap_LaterWins(t *testing.T) {
	m := ToMap([]string{"a", "bb", "cc"}, func(s string) (int, string) { return len(s), s })
	assert.Equal(t, map[int]string{1: "a", 2: "cc"}, m)
}
