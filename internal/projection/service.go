package projection

import (
	"context"

	"go.uber.org/zap"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
)

// CanTransition reports whether a service may move from one status to another.
// Opened and Filled are initial states only; nothing moves a service back to them.
func CanTransition(from, to model.ServiceStatus) bool {
	switch to {
	case model.ServiceConfirmed:
		return from == model.ServiceOpened || from == model.ServiceFilled
	case model.ServiceFinished, model.ServiceRejected:
		return true
	default:
		return false
	}
}

func handleServiceCreated(ctx context.Context, ev *eventContext, d model.ServiceCreatedData) error {
	var f fields
	id := f.id("id", d.ID)
	buyerID := f.id("buyerId", d.BuyerID)
	sellerID := f.id("sellerId", d.SellerID)
	initiatorID := f.id("initiatorId", d.InitiatorID)
	platformID := f.id("platformId", d.PlatformID)
	if f.err != nil {
		return f.err
	}

	buyer, err := ev.repo.RequireUser(ctx, buyerID)
	if err != nil {
		return err
	}
	var seller *model.User
	if sellerID != entity.NoUserID {
		if seller, err = ev.repo.RequireUser(ctx, sellerID); err != nil {
			return err
		}
	}
	initiator, err := ev.repo.RequireUser(ctx, initiatorID)
	if err != nil {
		return err
	}

	service, outcome, err := ev.repo.GetOrCreateService(ctx, id)
	if err != nil {
		return err
	}
	if outcome == entity.Created || service.Status == model.ServiceOpened || service.Status == model.ServiceFilled {
		service.Status = model.ServiceFilled
		if seller == nil {
			service.Status = model.ServiceOpened
		}
	}

	service.Buyer = buyer.ID
	if seller != nil {
		service.Seller = seller.ID
	}
	service.Sender = initiator.ID
	switch initiatorID {
	case buyerID:
		service.Recipient = service.Seller
	case sellerID:
		service.Recipient = service.Buyer
	default:
		ev.logger.Error("service created by neither buyer nor seller",
			zap.String("service", id),
			zap.String("initiator", initiatorID),
		)
	}

	if platformID != entity.NoUserID {
		platform, _, err := ev.repo.GetOrCreatePlatform(ctx, platformID)
		if err != nil {
			return err
		}
		service.Platform = platform.ID
	}

	service.URI = d.ServiceDataURI
	service.CreatedAt = ev.timestamp
	service.UpdatedAt = ev.timestamp
	return ev.repo.Save(model.KindService, service.ID, service)
}

// transitionService moves a service to status to. A confirmation also records
// the accepted seller on services opened without one.
func transitionService(to model.ServiceStatus) func(context.Context, *eventContext, model.ServiceStatusData) error {
	return func(ctx context.Context, ev *eventContext, d model.ServiceStatusData) error {
		var f fields
		id := f.id("id", d.ID)
		var sellerID string
		if to == model.ServiceConfirmed {
			sellerID = f.id("sellerId", d.SellerID)
		}
		if f.err != nil {
			return f.err
		}

		service, _, err := ev.repo.GetOrCreateService(ctx, id)
		if err != nil {
			return err
		}
		if !CanTransition(service.Status, to) {
			ev.logger.Warn("ignored service transition",
				zap.String("service", id),
				zap.String("from", string(service.Status)),
				zap.String("to", string(to)),
			)
			return nil
		}
		if sellerID != "" && sellerID != entity.NoUserID {
			if err := assignSeller(ctx, ev, service, sellerID); err != nil {
				return err
			}
		}
		service.Status = to
		service.UpdatedAt = ev.timestamp
		return ev.repo.Save(model.KindService, service.ID, service)
	}
}

func assignSeller(ctx context.Context, ev *eventContext, service *model.Service, sellerID string) error {
	if service.Seller != "" {
		if service.Seller != sellerID {
			ev.logger.Warn("confirmation names another seller",
				zap.String("service", service.ID),
				zap.String("seller", service.Seller),
				zap.String("confirmed", sellerID),
			)
		}
		return nil
	}
	seller, err := ev.repo.RequireUser(ctx, sellerID)
	if err != nil {
		return err
	}
	service.Seller = seller.ID
	if service.Recipient == "" && service.Buyer != "" && service.Sender == service.Buyer {
		service.Recipient = seller.ID
	}
	return nil
}

func handleProposalCreated(ctx context.Context, ev *eventContext, d model.ProposalData) error {
	var f fields
	serviceID := f.id("serviceId", d.ServiceID)
	sellerID := f.id("sellerId", d.SellerID)
	rateToken := f.address("rateToken", d.RateToken)
	rateAmount := f.amount("rateAmount", d.RateAmount)
	if f.err != nil {
		return f.err
	}

	service, err := ev.repo.RequireService(ctx, serviceID)
	if err != nil {
		return err
	}
	seller, err := ev.repo.RequireUser(ctx, sellerID)
	if err != nil {
		return err
	}
	token, _, err := ev.repo.GetOrCreateToken(ctx, rateToken)
	if err != nil {
		return err
	}

	proposal, _, err := ev.repo.GetOrCreateProposal(ctx, entity.ProposalID(serviceID, sellerID), serviceID)
	if err != nil {
		return err
	}
	proposal.Status = model.ProposalPending
	proposal.Service = service.ID
	proposal.Seller = seller.ID
	proposal.RateToken = token.ID
	proposal.RateAmount = rateAmount
	proposal.URI = d.ProposalDataURI
	proposal.CreatedAt = ev.timestamp
	proposal.UpdatedAt = ev.timestamp
	return ev.repo.Save(model.KindProposal, proposal.ID, proposal)
}

// handleProposalUpdated refreshes the offer. It never touches the status.
func handleProposalUpdated(ctx context.Context, ev *eventContext, d model.ProposalData) error {
	var f fields
	serviceID := f.id("serviceId", d.ServiceID)
	sellerID := f.id("sellerId", d.SellerID)
	rateToken := f.address("rateToken", d.RateToken)
	rateAmount := f.amount("rateAmount", d.RateAmount)
	if f.err != nil {
		return f.err
	}

	token, _, err := ev.repo.GetOrCreateToken(ctx, rateToken)
	if err != nil {
		return err
	}
	proposal, _, err := ev.repo.GetOrCreateProposal(ctx, entity.ProposalID(serviceID, sellerID), serviceID)
	if err != nil {
		return err
	}
	proposal.RateToken = token.ID
	proposal.RateAmount = rateAmount
	proposal.URI = d.ProposalDataURI
	proposal.UpdatedAt = ev.timestamp
	return ev.repo.Save(model.KindProposal, proposal.ID, proposal)
}

func handleProposalRejected(ctx context.Context, ev *eventContext, d model.ProposalData) error {
	var f fields
	serviceID := f.id("serviceId", d.ServiceID)
	sellerID := f.id("sellerId", d.SellerID)
	if f.err != nil {
		return f.err
	}

	proposal, _, err := ev.repo.GetOrCreateProposal(ctx, entity.ProposalID(serviceID, sellerID), serviceID)
	if err != nil {
		return err
	}
	proposal.Status = model.ProposalRejected
	proposal.UpdatedAt = ev.timestamp
	return ev.repo.Save(model.KindProposal, proposal.ID, proposal)
}
