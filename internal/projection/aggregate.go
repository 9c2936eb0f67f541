package projection

import (
	"math/big"

	"github.com/shopspring/decimal"

	"talentGraph/internal/model"
)

const (
	// MaxRating is the top of the review rating scale.
	MaxRating = 5
	// FeeDivider is the denominator of every escrow fee rate.
	FeeDivider = 10000
	// RatingPrecision is the number of decimal places kept by running ratings.
	RatingPrecision = 18
)

// RunningRating folds a new rating into an average over count earlier reviews:
// (current*count + rating) / (count+1). With no earlier reviews the new rating
// becomes the average.
func RunningRating(current decimal.Decimal, count, rating *big.Int) decimal.Decimal {
	r := decimal.NewFromBigInt(rating, 0)
	if count == nil || count.Sign() == 0 {
		return r
	}
	n := decimal.NewFromBigInt(count, 0)
	return current.Mul(n).Add(r).DivRound(n.Add(decimal.NewFromInt(1)), RatingPrecision)
}

// applyRating stores the new running average on user and only then bumps the
// received review count.
func applyRating(user *model.User, rating *big.Int) {
	user.Rating = RunningRating(user.Rating, user.NumReviews, rating)
	user.NumReviews = increment(user.NumReviews)
}

func increment(count *big.Int) *big.Int {
	if count == nil {
		return big.NewInt(1)
	}
	return new(big.Int).Add(count, big.NewInt(1))
}

// addDelta returns total+delta. Totals only grow, so a negative delta is rejected.
func addDelta(total, delta *big.Int) (*big.Int, error) {
	if delta == nil {
		delta = new(big.Int)
	}
	if delta.Sign() < 0 {
		return nil, invalidEvent("negative delta %s", delta)
	}
	if total == nil {
		return new(big.Int).Set(delta), nil
	}
	return new(big.Int).Add(total, delta), nil
}
