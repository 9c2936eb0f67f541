package projection

import (
	"context"

	"go.uber.org/zap"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
)

// handleReviewMinted creates the review, folds its rating into the receiver's
// running average, credits the reviewer and queues the review content for fetch.
// A mint id is only ever applied once; a second mint with the same id is ignored.
func handleReviewMinted(ctx context.Context, ev *eventContext, d model.ReviewMintedData) error {
	var f fields
	reviewID := f.id("tokenId", d.TokenID)
	serviceID := f.id("serviceId", d.ServiceID)
	toID := f.id("toId", d.ToID)
	rating := f.rating("rating", d.Rating)
	if f.err != nil {
		return f.err
	}

	review, outcome, err := ev.repo.GetOrCreateReview(ctx, reviewID, serviceID, toID)
	if err != nil {
		return err
	}
	if outcome == entity.Existing {
		ev.logger.Warn("review already minted", zap.String("review", reviewID))
		return nil
	}

	receiver, err := ev.repo.RequireUser(ctx, toID)
	if err != nil {
		return err
	}
	applyRating(receiver, rating)
	if err := ev.repo.Save(model.KindUser, receiver.ID, receiver); err != nil {
		return err
	}

	service, err := ev.repo.RequireService(ctx, serviceID)
	if err != nil {
		return err
	}
	var giverID string
	switch {
	case toID == service.Buyer && service.Seller == "":
		ev.logger.Error("review of buyer on service without seller",
			zap.String("review", reviewID),
			zap.String("service", serviceID),
			zap.String("to", toID),
		)
	case toID == service.Buyer:
		giverID = service.Seller
	case toID == service.Seller:
		giverID = service.Buyer
	default:
		ev.logger.Error("review receiver is neither buyer nor seller",
			zap.String("review", reviewID),
			zap.String("service", serviceID),
			zap.String("to", toID),
		)
	}
	if giverID != "" {
		giver, _, err := ev.repo.GetOrCreateUser(ctx, giverID)
		if err != nil {
			return err
		}
		giver.NumGivenReviews = increment(giver.NumGivenReviews)
		if err := ev.repo.Save(model.KindUser, giver.ID, giver); err != nil {
			return err
		}
	}

	dataID := entity.ReviewDataID(d.ReviewURI, ev.timestamp)
	review.Rating = rating
	review.CID = d.ReviewURI
	review.Description = dataID
	review.CreatedAt = ev.timestamp
	ev.registerForFetch(d.ReviewURI, map[string]string{
		ContextReviewID: review.ID,
		ContextDataID:   dataID,
	})
	return ev.repo.Save(model.KindReview, review.ID, review)
}
