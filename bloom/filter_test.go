package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/bizscan/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://www.yelp.com/biz/tasty-place"))

	f.Add("https://www.yelp.com/biz/tasty-place")

	assert.True(t, f.Test("https://www.yelp.com/biz/tasty-place"))
	assert.False(t, f.Test("https://www.yelp.com/biz/corner-cafe"))
}

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.TestAndAdd("https://www.yelp.com/biz/a"))
	assert.True(t, f.TestAndAdd("https://www.yelp.com/biz/a"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	for i := range 3 {
		f.Add(fmt.Sprintf("https://www.yelp.com/biz/%d", i))
	}

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_ConcurrentAdds(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.001)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Add(fmt.Sprintf("https://www.yelp.com/biz/%d", i))
		}()
	}
	wg.Wait()

	for i := range 50 {
		assert.True(t, f.Test(fmt.Sprintf("https://www.yelp.com/biz/%d", i)))
	}
}
