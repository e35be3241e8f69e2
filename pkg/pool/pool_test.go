package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelize(t *testing.T) {
	pools := map[string]*Pool{
		"nil":     nil,
		"default": NewPool(0),
		"single":  NewPool(1),
	}
	for name, pl := range pools {
		t.Run(name, func(t *testing.T) {
			if pl != nil {
				defer pl.TearDown()
			}
			count := 100
			results := pl.Parallelize(count, func(i int) any {
				return i * i
			})
			require.Len(t, results, count)
			for i, r := range results {
				assert.Equal(t, i*i, r.(int))
			}
		})
	}
}

func TestSearch(t *testing.T) {
	pl := NewPool(2)
	defer pl.TearDown()

	hits := pl.Search(3, func() any {
		return struct{}{}
	})
	assert.Len(t, hits, 3)
}

func TestSearchNilPool(t *testing.T) {
	var pl *Pool
	i := 0
	hits := pl.Search(1, func() any {
		i++
		if i < 10 {
			return nil
		}
		return i
	})
	require.Len(t, hits, 1)
	assert.Equal(t, 10, hits[0].(int))
}
