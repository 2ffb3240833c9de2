package clibind

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRange(t *testing.T) {
	v := must(IntRange(0, 100))
	for x := int64(0); x <= 100; x++ {
		got, err := v.Validate(strconv.FormatInt(x, 10))
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}
	_, err := v.Validate("-1")
	assert.EqualError(t, err, `"-1" must be at least 0`)
	assert.True(t, IsKind(err, OutOfRange))
	_, err = v.Validate("101")
	assert.EqualError(t, err, `"101" must be at most 100`)
	_, err = v.Validate("abc")
	assert.True(t, IsKind(err, InvalidNumber))
}

func TestIntRangeOpenEnded(t *testing.T) {
	lo := must(IntRange(1, nil))
	_, err := lo.Validate("99999")
	assert.NoError(t, err)
	_, err = lo.Validate("0")
	assert.True(t, IsKind(err, OutOfRange))

	hi := must(IntRange(nil, 9))
	_, err = hi.Validate("-100")
	assert.NoError(t, err)
	_, err = hi.Validate("10")
	assert.True(t, IsKind(err, OutOfRange))
}

func TestFloatRange(t *testing.T) {
	v := must(FloatRange(0.0, 1.0))
	got, err := v.Validate("0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, got)
	_, err = v.Validate("1.01")
	assert.True(t, IsKind(err, OutOfRange))
}

func TestRangeSetup(t *testing.T) {
	_, err := IntRange(10, 1)
	assert.EqualError(t, err, "min must be less than or equal to max")
	_, err = FloatRange(2.0, 1.0)
	assert.Error(t, err)
	_, err = IntRange("low", nil)
	assert.True(t, IsKind(err, UnsupportedType))
	_, err = FloatRange(0, 1.0)
	assert.True(t, IsKind(err, UnsupportedType))
}
