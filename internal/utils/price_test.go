package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 269.97, Round2(269.96999999999997))
	assert.Equal(t, 150.0, Round2(150.0))
	assert.Equal(t, 0.1, Round2(0.1))
	assert.Equal(t, 1.0, Round2(0.999))
}

func TestTotalPrice(t *testing.T) {
	// 3 * 89.99 accumulates binary float error; the total must still come
	// out as an exact cent amount.
	assert.Equal(t, 269.97, TotalPrice(3, 89.99))
	assert.Equal(t, 450.0, TotalPrice(3, 150.0))
	assert.Equal(t, 89.99, TotalPrice(1, 89.99))
	assert.Equal(t, 0.0, TotalPrice(0, 89.99))
}
