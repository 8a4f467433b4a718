package mapst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]string{"es": "Español", "en": "English", "de": "Deutsch"}
	assert.Equal(t, []string{"de", "en", "es"}, SortedKeys(m))
	assert.Len(t, Keys(m), 3)
}

func TestFilter(t *testing.T) {
	m := map[string]int{"pan": 3, "torta": 0}
	assert.Equal(t, map[string]int{"pan": 3}, Filter(m, func(_ string, n int) bool { return n > 0 }))
}
