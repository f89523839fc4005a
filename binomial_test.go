package cyclic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinomial(t *testing.T) {
	assert.Equal(t, 1, Binomial(17, 0))
	assert.Equal(t, 17, Binomial(17, 1))
	assert.Equal(t, 136, Binomial(17, 2))
	assert.Equal(t, 680, Binomial(17, 3))
	assert.Equal(t, 24310, Binomial(17, 8))
	assert.Equal(t, Binomial(17, 8), Binomial(17, 9))
	assert.Equal(t, 1, Binomial(17, 17))

	sum := 0
	for k := 0; k <= N; k++ {
		sum += Binomial(N, k)
	}
	assert.Equal(t, 1<<N, sum)

	assert.Panics(t, func() { Binomial(-1, 0) })
	assert.Panics(t, func() { Binomial(3, 4) })
}

func TestPatternCnt(t *testing.T) {
	assert.Equal(t, 0, patternCnt(N, 0))
	assert.Equal(t, 17, patternCnt(N, 1))
	assert.Equal(t, 153, patternCnt(N, 2))
}
