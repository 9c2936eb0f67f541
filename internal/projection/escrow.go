package projection

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
)

// Escrow payment types and dispute parties as numbered by the escrow contract.
const (
	paymentRelease   = 0
	paymentReimburse = 1

	partySender   = 0
	partyReceiver = 1
)

var paymentTypeNames = map[int]string{
	paymentRelease:   "Release",
	paymentReimburse: "Reimburse",
}

// handleTransactionCreated snapshots fee rates and arbitration settings.
// A transaction that was already projected keeps its original snapshot.
func handleTransactionCreated(ctx context.Context, ev *eventContext, d model.TransactionCreatedData) error {
	var f fields
	id := f.id("transactionId", d.TransactionID)
	senderID := f.id("senderId", d.SenderID)
	receiverID := f.id("receiverId", d.ReceiverID)
	serviceID := f.id("serviceId", d.ServiceID)
	platformID := f.id("platformId", d.PlatformID)
	tokenAddress := f.address("token", d.Token)
	amount := f.amount("amount", d.Amount)
	protocolRate := f.feeRate("protocolEscrowFeeRate", d.ProtocolEscrowFeeRate)
	originRate := f.feeRate("originPlatformEscrowFeeRate", d.OriginPlatformEscrowFeeRate)
	platformRate := f.feeRate("platformEscrowFeeRate", d.PlatformEscrowFeeRate)
	arbitrator := f.address("arbitrator", d.Arbitrator)
	timeout := f.amount("arbitrationFeeTimeout", d.ArbitrationFeeTimeout)
	if f.err != nil {
		return f.err
	}

	sender, err := ev.repo.RequireUser(ctx, senderID)
	if err != nil {
		return err
	}
	receiver, err := ev.repo.RequireUser(ctx, receiverID)
	if err != nil {
		return err
	}
	service, err := ev.repo.RequireService(ctx, serviceID)
	if err != nil {
		return err
	}
	if _, _, err := ev.repo.GetOrCreatePlatform(ctx, platformID); err != nil {
		return err
	}
	token, _, err := ev.repo.GetOrCreateToken(ctx, tokenAddress)
	if err != nil {
		return err
	}

	tx, outcome, err := ev.repo.GetOrCreateTransaction(ctx, id, ev.timestamp)
	if err != nil {
		return err
	}
	if outcome == entity.Existing && tx.Sender != "" {
		ev.logger.Warn("transaction already created", zap.String("transaction", id))
		return nil
	}
	tx.Sender = sender.ID
	tx.Receiver = receiver.ID
	tx.Service = service.ID
	tx.Token = token.ID
	tx.Amount = amount
	tx.ProtocolEscrowFeeRate = protocolRate
	tx.OriginPlatformEscrowFeeRate = originRate
	tx.PlatformEscrowFeeRate = platformRate
	tx.Arbitrator = arbitrator
	tx.ArbitratorExtraData = d.ArbitratorExtraData
	tx.ArbitrationFeeTimeout = timeout
	tx.LastInteraction = ev.timestamp
	return ev.repo.Save(model.KindTransaction, tx.ID, tx)
}

// handlePayment accumulates the payment of one type on a transaction.
// Released funds also count towards the receiver's gain in that token.
func handlePayment(ctx context.Context, ev *eventContext, d model.PaymentData) error {
	var f fields
	txID := f.id("transactionId", d.TransactionID)
	serviceID := f.id("serviceId", d.ServiceID)
	tokenAddress := f.address("token", d.Token)
	amount := f.amount("amount", d.Amount)
	if f.err != nil {
		return f.err
	}
	paymentType, ok := paymentTypeNames[d.PaymentType]
	if !ok {
		return invalidEvent("unknown payment type %d", d.PaymentType)
	}

	tx, err := ev.repo.RequireTransaction(ctx, txID)
	if err != nil {
		return err
	}
	token, _, err := ev.repo.GetOrCreateToken(ctx, tokenAddress)
	if err != nil {
		return err
	}

	payment, outcome, err := ev.repo.GetOrCreatePayment(ctx, entity.PaymentID(txID, paymentType), serviceID)
	if err != nil {
		return err
	}
	total, err := addDelta(payment.Amount, amount)
	if err != nil {
		return err
	}
	payment.Amount = total
	payment.Transaction = tx.ID
	payment.PaymentType = paymentType
	if outcome == entity.Created {
		payment.CreatedAt = ev.timestamp
	}
	if err := ev.repo.Save(model.KindPayment, payment.ID, payment); err != nil {
		return err
	}

	if d.PaymentType == paymentRelease && tx.Receiver != "" {
		if err := addUserGain(ctx, ev, tx.Receiver, token.ID, amount); err != nil {
			return err
		}
	}

	tx.LastInteraction = ev.timestamp
	return ev.repo.Save(model.KindTransaction, tx.ID, tx)
}

// feeReleased books a released platform fee on the FeePayment for
// (service, platform, type) and on the platform's gain in the token.
func feeReleased(feeType model.FeePaymentType) func(context.Context, *eventContext, model.FeeReleasedData) error {
	return func(ctx context.Context, ev *eventContext, d model.FeeReleasedData) error {
		var f fields
		platformID := f.id("platformId", d.PlatformID)
		serviceID := f.id("serviceId", d.ServiceID)
		tokenAddress := f.address("token", d.Token)
		amount := f.amount("amount", d.Amount)
		if f.err != nil {
			return f.err
		}

		service, err := ev.repo.RequireService(ctx, serviceID)
		if err != nil {
			return err
		}
		platform, _, err := ev.repo.GetOrCreatePlatform(ctx, platformID)
		if err != nil {
			return err
		}
		token, _, err := ev.repo.GetOrCreateToken(ctx, tokenAddress)
		if err != nil {
			return err
		}

		feeID := entity.FeePaymentID(service.ID, platform.ID, feeType)
		var fee *model.FeePayment
		if feeType == model.FeeOriginPlatform {
			fee, _, err = ev.repo.GetOrCreateOriginPlatformFee(ctx, feeID)
		} else {
			fee, _, err = ev.repo.GetOrCreatePlatformFee(ctx, feeID)
		}
		if err != nil {
			return err
		}
		if fee.Amount, err = addDelta(fee.Amount, amount); err != nil {
			return err
		}
		fee.Platform = platform.ID
		fee.Service = service.ID
		fee.Token = token.ID
		if err := ev.repo.Save(model.KindFeePayment, fee.ID, fee); err != nil {
			return err
		}

		gain, _, err := ev.repo.GetOrCreatePlatformGain(ctx, entity.PlatformGainID(platform.ID, token.ID))
		if err != nil {
			return err
		}
		gain.Platform = platform.ID
		gain.Token = token.ID
		if feeType == model.FeeOriginPlatform {
			gain.TotalOriginPlatformFeeGain, err = addDelta(gain.TotalOriginPlatformFeeGain, amount)
		} else {
			gain.TotalPlatformFeeGain, err = addDelta(gain.TotalPlatformFeeGain, amount)
		}
		if err != nil {
			return err
		}
		return ev.repo.Save(model.KindPlatformGain, gain.ID, gain)
	}
}

func handleFeesClaimed(ctx context.Context, ev *eventContext, d model.FeesClaimedData) error {
	var f fields
	platformID := f.id("platformId", d.PlatformID)
	tokenAddress := f.address("token", d.Token)
	amount := f.amount("amount", d.Amount)
	if f.err != nil {
		return f.err
	}

	platform, _, err := ev.repo.GetOrCreatePlatform(ctx, platformID)
	if err != nil {
		return err
	}
	token, _, err := ev.repo.GetOrCreateToken(ctx, tokenAddress)
	if err != nil {
		return err
	}
	claim, _, err := ev.repo.GetOrCreateClaim(ctx, entity.FeeClaimID(platform.ID, token.ID))
	if err != nil {
		return err
	}
	if claim.Amount, err = addDelta(claim.Amount, amount); err != nil {
		return err
	}
	claim.Platform = platform.ID
	claim.Token = token.ID
	return ev.repo.Save(model.KindFeeClaim, claim.ID, claim)
}

func handleArbitrationFeePaid(ctx context.Context, ev *eventContext, d model.ArbitrationFeeData) error {
	var f fields
	id := f.id("transactionId", d.TransactionID)
	amount := f.amount("amount", d.Amount)
	if f.err != nil {
		return f.err
	}

	tx, err := ev.repo.RequireTransaction(ctx, id)
	if err != nil {
		return err
	}
	switch d.Party {
	case partySender:
		tx.SenderFee, err = addDelta(tx.SenderFee, amount)
	case partyReceiver:
		tx.ReceiverFee, err = addDelta(tx.ReceiverFee, amount)
	default:
		ev.logger.Error("arbitration fee paid by unknown party", zap.String("transaction", id), zap.Int("party", d.Party))
	}
	if err != nil {
		return err
	}
	tx.LastInteraction = ev.timestamp
	return ev.repo.Save(model.KindTransaction, tx.ID, tx)
}

func handleHasToPayFee(ctx context.Context, ev *eventContext, d model.HasToPayFeeData) error {
	var f fields
	id := f.id("transactionId", d.TransactionID)
	if f.err != nil {
		return f.err
	}

	tx, err := ev.repo.RequireTransaction(ctx, id)
	if err != nil {
		return err
	}
	switch d.Party {
	case partySender:
		tx.Status = model.TransactionWaitingSender
	case partyReceiver:
		tx.Status = model.TransactionWaitingReceiver
	default:
		ev.logger.Error("fee requested from unknown party", zap.String("transaction", id), zap.Int("party", d.Party))
	}
	tx.LastInteraction = ev.timestamp
	return ev.repo.Save(model.KindTransaction, tx.ID, tx)
}

func handleRulingExecuted(ctx context.Context, ev *eventContext, d model.RulingExecutedData) error {
	var f fields
	id := f.id("transactionId", d.TransactionID)
	if f.err != nil {
		return f.err
	}

	tx, err := ev.repo.RequireTransaction(ctx, id)
	if err != nil {
		return err
	}
	tx.Status = model.TransactionResolved
	tx.LastInteraction = ev.timestamp
	return ev.repo.Save(model.KindTransaction, tx.ID, tx)
}

// handleEvidenceSubmitted records evidence once. The evidence group id is the
// escrow transaction id.
func handleEvidenceSubmitted(ctx context.Context, ev *eventContext, d model.EvidenceData) error {
	var f fields
	txID := f.id("evidenceGroupID", d.EvidenceGroupID)
	party := f.address("party", d.Party)
	if f.err != nil {
		return f.err
	}
	if d.Evidence == "" {
		return invalidEvent("empty evidence uri")
	}

	tx, err := ev.repo.RequireTransaction(ctx, txID)
	if err != nil {
		return err
	}
	evidence, outcome, err := ev.repo.GetOrCreateEvidence(ctx, entity.EvidenceID(tx.ID, d.Evidence), tx.ID)
	if err != nil {
		return err
	}
	if outcome == entity.Existing {
		return nil
	}
	evidence.Party = party
	evidence.URI = d.Evidence
	evidence.CreatedAt = ev.timestamp
	return ev.repo.Save(model.KindEvidence, evidence.ID, evidence)
}

func handleAllowedTokenListUpdated(ctx context.Context, ev *eventContext, d model.AllowedTokenData) error {
	var f fields
	address := f.address("tokenAddress", d.TokenAddress)
	if f.err != nil {
		return f.err
	}

	token, _, err := ev.repo.GetOrCreateToken(ctx, address)
	if err != nil {
		return err
	}
	token.Allowed = d.Status
	return ev.repo.Save(model.KindToken, token.ID, token)
}

func addUserGain(ctx context.Context, ev *eventContext, userID, tokenID string, amount *big.Int) error {
	gain, _, err := ev.repo.GetOrCreateUserGain(ctx, entity.UserGainID(userID, tokenID), userID)
	if err != nil {
		return err
	}
	if gain.TotalGain, err = addDelta(gain.TotalGain, amount); err != nil {
		return err
	}
	gain.Token = tokenID
	return ev.repo.Save(model.KindUserGain, gain.ID, gain)
}
