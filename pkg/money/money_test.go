package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"29.99", 2999},
		{"20", 2000},
		{"25.5", 2550},
		{"0.01", 1},
		{"0", 0},
		{"99999999.99", MaxCents},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("29.999")
	assert.ErrorIs(t, err, ErrTooManyDecimals)

	_, err = Parse("-1.00")
	assert.ErrorIs(t, err, ErrNegative)

	_, err = Parse("100000000.00")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Parse("abc")
	assert.Error(t, err)
}

func TestFromDecimal_TrailingZeros(t *testing.T) {
	// 10.000在数值上只有2位有效小数
	cents, err := FromDecimal(decimal.RequireFromString("10.000"))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), cents)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "45.50", Format(4550))
	assert.Equal(t, "0.01", Format(1))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "10.00", Format(1000))
}
