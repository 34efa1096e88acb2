package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 48))
	assert.Equal(t, 1, TotalPages(1, 48))
	assert.Equal(t, 1, TotalPages(48, 48))
	assert.Equal(t, 2, TotalPages(49, 48))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestPaginate_CoversSequenceExactly(t *testing.T) {
	for _, pageSize := range []int{1, 3, 7, 48} {
		for _, n := range []int{0, 1, 2, 6, 7, 8, 47, 48, 49, 100} {
			t.Run(fmt.Sprintf("p=%d,n=%d", pageSize, n), func(t *testing.T) {
				items := make([]int, n)
				for i := range items {
					items[i] = i
				}

				var joined []int
				for page := 1; page <= TotalPages(n, pageSize); page++ {
					chunk := Paginate(items, page, pageSize)
					assert.NotEmpty(t, chunk)
					assert.LessOrEqual(t, len(chunk), pageSize)
					joined = append(joined, chunk...)
				}

				if n == 0 {
					assert.Empty(t, joined)
					return
				}
				assert.Equal(t, items, joined)
			})
		}
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	items := []string{"a", "b", "c"}

	assert.Empty(t, Paginate(items, 0, 2))
	assert.Empty(t, Paginate(items, 3, 2))
	assert.Equal(t, []string{"c"}, Paginate(items, 2, 2))
}
