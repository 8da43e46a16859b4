package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPairFillOnce(t *testing.T) {
	var p IndexPair

	assert.True(t, p.FillR1(3))
	assert.False(t, p.FillR1(7), "a filled slot is never overwritten")
	require.NotNil(t, p.R1)
	assert.Equal(t, 3, *p.R1)
	assert.False(t, p.Complete())

	assert.True(t, p.FillR2(5))
	assert.True(t, p.Complete())
	assert.Equal(t, 5, *p.R2)
}

func TestIndexPairFillSide(t *testing.T) {
	var p IndexPair

	assert.True(t, p.FillSide('1', 1))
	assert.True(t, p.FillSide('2', 2))
	assert.Equal(t, 1, *p.R1)
	assert.Equal(t, 2, *p.R2)

	var q IndexPair
	// Side '0' counts as the first mate.
	assert.True(t, q.FillSide('0', 9))
	assert.Equal(t, 9, *q.R1)
	assert.Nil(t, q.R2)
}

func TestIndexPairMerge(t *testing.T) {
	one := 1
	two := 2
	nine := 9

	p := IndexPair{R1: &one}
	p.Merge(IndexPair{R1: &nine, R2: &two})

	assert.Equal(t, 1, *p.R1, "merge never overwrites")
	require.NotNil(t, p.R2)
	assert.Equal(t, 2, *p.R2)
}
