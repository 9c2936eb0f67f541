package projection

import (
	"context"
	"math/big"

	"talentGraph/internal/model"
)

func handleProfileMinted(ctx context.Context, ev *eventContext, d model.ProfileMintedData) error {
	var f fields
	id := f.id("profileId", d.ProfileID)
	address := f.address("user", d.User)
	fee := f.amount("fee", d.Fee)
	if f.err != nil {
		return f.err
	}

	user, _, err := ev.repo.GetOrCreateUser(ctx, id)
	if err != nil {
		return err
	}
	user.Address = address
	user.Handle = d.Handle
	user.CreatedAt = ev.timestamp
	user.UpdatedAt = ev.timestamp
	if err := ev.repo.Save(model.KindUser, user.ID, user); err != nil {
		return err
	}
	return addMintFee(ctx, ev, fee)
}

func handlePohActivated(ctx context.Context, ev *eventContext, d model.PohActivatedData) error {
	var f fields
	id := f.id("profileId", d.ProfileID)
	if f.err != nil {
		return f.err
	}

	user, err := ev.repo.RequireUser(ctx, id)
	if err != nil {
		return err
	}
	user.WithPoh = true
	user.UpdatedAt = ev.timestamp
	return ev.repo.Save(model.KindUser, user.ID, user)
}

func handleUserMintFeeUpdated(ctx context.Context, ev *eventContext, d model.MintFeeUpdatedData) error {
	var f fields
	fee := f.amount("mintFee", d.MintFee)
	if f.err != nil {
		return f.err
	}
	return updateProtocol(ctx, ev, func(p *model.Protocol) error {
		p.UserMintFee = fee
		return nil
	})
}

func handlePlatformMinted(ctx context.Context, ev *eventContext, d model.PlatformMintedData) error {
	var f fields
	id := f.id("platformId", d.PlatformID)
	address := f.address("platformOwnerAddress", d.PlatformOwnerAddress)
	fee := f.amount("fee", d.Fee)
	if f.err != nil {
		return f.err
	}

	platform, _, err := ev.repo.GetOrCreatePlatform(ctx, id)
	if err != nil {
		return err
	}
	platform.Address = address
	platform.Name = d.PlatformName
	platform.CreatedAt = ev.timestamp
	platform.UpdatedAt = ev.timestamp
	if err := ev.repo.Save(model.KindPlatform, platform.ID, platform); err != nil {
		return err
	}
	return addMintFee(ctx, ev, fee)
}

func handlePlatformFeeRateUpdated(ctx context.Context, ev *eventContext, d model.PlatformFeeRateData) error {
	var f fields
	id := f.id("platformId", d.PlatformID)
	rate := f.feeRate("platformEscrowFeeRate", d.PlatformEscrowFeeRate)
	if f.err != nil {
		return f.err
	}
	return updatePlatform(ctx, ev, id, func(p *model.Platform) {
		p.PlatformEscrowFeeRate = rate
	})
}

func handlePlatformArbitratorUpdated(ctx context.Context, ev *eventContext, d model.PlatformArbitratorData) error {
	var f fields
	id := f.id("platformId", d.PlatformID)
	arbitrator := f.address("arbitrator", d.Arbitrator)
	if f.err != nil {
		return f.err
	}
	return updatePlatform(ctx, ev, id, func(p *model.Platform) {
		p.Arbitrator = arbitrator
		p.ArbitratorExtraData = d.ExtraData
	})
}

func handlePlatformFeeTimeoutUpdated(ctx context.Context, ev *eventContext, d model.PlatformFeeTimeoutData) error {
	var f fields
	id := f.id("platformId", d.PlatformID)
	timeout := f.amount("arbitrationFeeTimeout", d.ArbitrationFeeTimeout)
	if f.err != nil {
		return f.err
	}
	return updatePlatform(ctx, ev, id, func(p *model.Platform) {
		p.ArbitrationFeeTimeout = timeout
	})
}

func handlePlatformMintFeeUpdated(ctx context.Context, ev *eventContext, d model.MintFeeUpdatedData) error {
	var f fields
	fee := f.amount("mintFee", d.MintFee)
	if f.err != nil {
		return f.err
	}
	return updateProtocol(ctx, ev, func(p *model.Protocol) error {
		p.PlatformMintFee = fee
		return nil
	})
}

func handleProtocolFeeRateUpdated(ctx context.Context, ev *eventContext, d model.ProtocolFeeRateData) error {
	var f fields
	rate := f.feeRate("protocolEscrowFeeRate", d.ProtocolEscrowFeeRate)
	if f.err != nil {
		return f.err
	}
	return updateProtocol(ctx, ev, func(p *model.Protocol) error {
		p.ProtocolEscrowFeeRate = rate
		return nil
	})
}

func handleOriginPlatformFeeRateUpdated(ctx context.Context, ev *eventContext, d model.ProtocolFeeRateData) error {
	var f fields
	rate := f.feeRate("originPlatformEscrowFeeRate", d.OriginPlatformEscrowFeeRate)
	if f.err != nil {
		return f.err
	}
	return updateProtocol(ctx, ev, func(p *model.Protocol) error {
		p.OriginPlatformEscrowFeeRate = rate
		return nil
	})
}

func updatePlatform(ctx context.Context, ev *eventContext, id string, mutate func(*model.Platform)) error {
	platform, _, err := ev.repo.GetOrCreatePlatform(ctx, id)
	if err != nil {
		return err
	}
	mutate(platform)
	platform.UpdatedAt = ev.timestamp
	return ev.repo.Save(model.KindPlatform, platform.ID, platform)
}

// updateProtocol loads the protocol handle, applies mutate and stores it back.
func updateProtocol(ctx context.Context, ev *eventContext, mutate func(*model.Protocol) error) error {
	protocol, err := ev.repo.Protocol(ctx)
	if err != nil {
		return err
	}
	if err := mutate(protocol); err != nil {
		return err
	}
	return ev.repo.Save(model.KindProtocol, protocol.ID, protocol)
}

func addMintFee(ctx context.Context, ev *eventContext, fee *big.Int) error {
	return updateProtocol(ctx, ev, func(p *model.Protocol) error {
		total, err := addDelta(p.TotalMintFees, fee)
		if err != nil {
			return err
		}
		p.TotalMintFees = total
		return nil
	})
}
