package projection

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentGraph/internal/model"
)

func TestRunningRating(t *testing.T) {
	first := RunningRating(decimal.Zero, big.NewInt(0), big.NewInt(4))
	assert.True(t, first.Equal(decimal.NewFromInt(4)), "got %s", first)

	second := RunningRating(first, big.NewInt(1), big.NewInt(2))
	assert.True(t, second.Equal(decimal.NewFromInt(3)), "got %s", second)

	third := RunningRating(second, big.NewInt(2), big.NewInt(5))
	assert.Equal(t, "3.666666666666666667", third.String())
}

func TestRunningRatingZeroCountIgnoresStaleRating(t *testing.T) {
	rating := RunningRating(decimal.NewFromInt(5), nil, big.NewInt(1))
	assert.True(t, rating.Equal(decimal.NewFromInt(1)))
}

func TestApplyRatingPersistsAverageAndCount(t *testing.T) {
	user := &model.User{NumReviews: new(big.Int), Rating: decimal.Zero}
	applyRating(user, big.NewInt(4))
	applyRating(user, big.NewInt(2))
	assert.True(t, user.Rating.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, int64(2), user.NumReviews.Int64())
}

func TestAddDelta(t *testing.T) {
	total, err := addDelta(nil, big.NewInt(5))
	require.NoError(t, err)
	total, err = addDelta(total, big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, "12", total.String())

	_, err = addDelta(total, big.NewInt(-1))
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func uintString(v uint64) string {
	return new(big.Int).SetUint64(v).String()
}
