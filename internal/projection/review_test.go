package projection

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentGraph/internal/model"
)

func reviewSetup(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	h.profile("1", aliceAddr)
	h.profile("2", bobAddr)
	h.service("7", "1", "2", "1")
	return h
}

func TestReviewMintedUpdatesRunningRating(t *testing.T) {
	h := reviewSetup(t)

	h.mustApply(model.EventReviewMinted, model.ReviewMintedData{ServiceID: "7", ToID: "2", TokenID: "1", Rating: "4", ReviewURI: "QmA"})
	seller := load[model.User](t, h.store, model.KindUser, "2")
	assert.True(t, seller.Rating.Equal(decimal.NewFromInt(4)), "rating %s", seller.Rating)
	assert.Equal(t, "1", seller.NumReviews.String())

	h.mustApply(model.EventReviewMinted, model.ReviewMintedData{ServiceID: "7", ToID: "2", TokenID: "2", Rating: "2", ReviewURI: "QmB"})
	seller = load[model.User](t, h.store, model.KindUser, "2")
	assert.True(t, seller.Rating.Equal(decimal.NewFromInt(3)), "rating %s", seller.Rating)
	assert.Equal(t, "2", seller.NumReviews.String())

	buyer := load[model.User](t, h.store, model.KindUser, "1")
	assert.Equal(t, "2", buyer.NumGivenReviews.String())
	assert.Equal(t, "0", buyer.NumReviews.String())

	review := load[model.Review](t, h.store, model.KindReview, "2")
	assert.Equal(t, "2", review.Rating.String())
	assert.Equal(t, "QmB", review.CID)
	assert.Equal(t, "7", review.Service)
	assert.Equal(t, "2", review.To)
	assert.Equal(t, "QmB-"+uintString(h.block), review.Description)
}

func TestReviewMintedRegistersContent(t *testing.T) {
	h := reviewSetup(t)
	h.mustApply(model.EventReviewMinted, model.ReviewMintedData{ServiceID: "7", ToID: "1", TokenID: "9", Rating: "5", ReviewURI: "QmReview"})

	require.Len(t, h.registry.registrations, 1)
	reg := h.registry.registrations[0]
	assert.Equal(t, "QmReview", reg.CID)
	assert.Equal(t, "9", reg.Context[ContextReviewID])
	assert.Equal(t, "QmReview-"+uintString(h.block), reg.Context[ContextDataID])

	seller := load[model.User](t, h.store, model.KindUser, "2")
	assert.Equal(t, "1", seller.NumGivenReviews.String())
}

func TestReviewMintedOnce(t *testing.T) {
	h := reviewSetup(t)
	mint := model.ReviewMintedData{ServiceID: "7", ToID: "2", TokenID: "1", Rating: "4", ReviewURI: "QmA"}
	h.mustApply(model.EventReviewMinted, mint)
	before := h.store.Snapshot()

	mint.Rating = "1"
	h.mustApply(model.EventReviewMinted, mint)
	assert.Equal(t, before, h.store.Snapshot())
	assert.Len(t, h.registry.registrations, 1)
}

func TestReviewRatingAboveScaleRejected(t *testing.T) {
	h := reviewSetup(t)
	before := h.store.Snapshot()

	err := h.apply(model.EventReviewMinted, model.ReviewMintedData{ServiceID: "7", ToID: "2", TokenID: "1", Rating: "6", ReviewURI: "QmA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEvent))
	assert.Equal(t, before, h.store.Snapshot())
}

func TestReviewRegistryFailureDoesNotFailEvent(t *testing.T) {
	h := reviewSetup(t)
	h.registry.err = errors.New("queue closed")

	h.mustApply(model.EventReviewMinted, model.ReviewMintedData{ServiceID: "7", ToID: "2", TokenID: "1", Rating: "3", ReviewURI: "QmA"})
	load[model.Review](t, h.store, model.KindReview, "1")
}

func TestReviewsAfterConfirmationCreditBothSides(t *testing.T) {
	h := newHarness(t)
	h.profile("1", aliceAddr)
	h.profile("2", bobAddr)
	h.service("8", "1", "0", "1")
	h.mustApply(model.EventServiceConfirmed, model.ServiceStatusData{ID: "8", BuyerID: "1", SellerID: "2"})

	service := load[model.Service](t, h.store, model.KindService, "8")
	assert.Equal(t, "2", service.Seller)
	assert.Equal(t, "2", service.Recipient)

	h.mustApply(model.EventReviewMinted, model.ReviewMintedData{ServiceID: "8", ToID: "2", TokenID: "1", Rating: "5", ReviewURI: "QmA"})
	h.mustApply(model.EventReviewMinted, model.ReviewMintedData{ServiceID: "8", ToID: "1", TokenID: "2", Rating: "3", ReviewURI: "QmB"})

	buyer := load[model.User](t, h.store, model.KindUser, "1")
	seller := load[model.User](t, h.store, model.KindUser, "2")
	assert.Equal(t, "1", buyer.NumGivenReviews.String())
	assert.Equal(t, "1", buyer.NumReviews.String())
	assert.Equal(t, "1", seller.NumGivenReviews.String())
	assert.Equal(t, "1", seller.NumReviews.String())
}

func TestReviewOfBuyerWithoutSellerCreditsNobody(t *testing.T) {
	h := newHarness(t)
	h.profile("1", aliceAddr)
	h.profile("2", bobAddr)
	h.service("9", "1", "0", "1")

	h.mustApply(model.EventReviewMinted, model.ReviewMintedData{ServiceID: "9", ToID: "1", TokenID: "3", Rating: "4", ReviewURI: "QmC"})

	buyer := load[model.User](t, h.store, model.KindUser, "1")
	assert.Equal(t, "1", buyer.NumReviews.String())
	assert.Equal(t, "0", buyer.NumGivenReviews.String())
	seller := load[model.User](t, h.store, model.KindUser, "2")
	assert.Equal(t, "0", seller.NumGivenReviews.String())
	load[model.Review](t, h.store, model.KindReview, "3")
}
