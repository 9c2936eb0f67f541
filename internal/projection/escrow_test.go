package projection

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
)

const daiID = "0x6b175474e89094c44da98b954eedeac495271d0f"

func escrowSetup(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	h.profile("1", aliceAddr)
	h.profile("2", bobAddr)
	h.mustApply(model.EventPlatformMinted, model.PlatformMintedData{
		PlatformOwnerAddress: carolAddr, PlatformID: "3", PlatformName: "hirevibes", Fee: "100",
	})
	h.service("7", "1", "2", "1")
	h.mustApply(model.EventTransactionCreated, model.TransactionCreatedData{
		TransactionID:               "5",
		SenderID:                    "1",
		ReceiverID:                  "2",
		Token:                       daiAddr,
		Amount:                      "1000",
		ServiceID:                   "7",
		PlatformID:                  "3",
		ProtocolEscrowFeeRate:       100,
		OriginPlatformEscrowFeeRate: 200,
		PlatformEscrowFeeRate:       300,
		Arbitrator:                  carolAddr,
		ArbitratorExtraData:         "0x",
		ArbitrationFeeTimeout:       "86400",
	})
	return h
}

func TestTransactionCreatedSnapshotsRates(t *testing.T) {
	h := escrowSetup(t)
	tx := load[model.Transaction](t, h.store, model.KindTransaction, "5")
	assert.Equal(t, "1", tx.Sender)
	assert.Equal(t, "2", tx.Receiver)
	assert.Equal(t, daiID, tx.Token)
	assert.Equal(t, 100, tx.ProtocolEscrowFeeRate)
	assert.Equal(t, 200, tx.OriginPlatformEscrowFeeRate)
	assert.Equal(t, 300, tx.PlatformEscrowFeeRate)
	assert.Equal(t, model.TransactionNoDispute, tx.Status)

	h.mustApply(model.EventProtocolEscrowFeeRateUpdated, model.ProtocolFeeRateData{ProtocolEscrowFeeRate: 900})
	h.mustApply(model.EventPlatformEscrowFeeRateUpdated, model.PlatformFeeRateData{PlatformID: "3", PlatformEscrowFeeRate: 800})
	tx = load[model.Transaction](t, h.store, model.KindTransaction, "5")
	assert.Equal(t, 100, tx.ProtocolEscrowFeeRate)
	assert.Equal(t, 300, tx.PlatformEscrowFeeRate)

	protocol := load[model.Protocol](t, h.store, model.KindProtocol, entity.ProtocolID)
	assert.Equal(t, 900, protocol.ProtocolEscrowFeeRate)
	assert.Equal(t, "100", protocol.TotalMintFees.String())
	platform := load[model.Platform](t, h.store, model.KindPlatform, "3")
	assert.Equal(t, 800, platform.PlatformEscrowFeeRate)
	assert.Equal(t, "hirevibes", platform.Name)

	err := h.apply(model.EventPlatformEscrowFeeRateUpdated, model.PlatformFeeRateData{PlatformID: "3", PlatformEscrowFeeRate: FeeDivider + 1})
	assert.True(t, errors.Is(err, ErrInvalidEvent))
}

func TestFeeTotalsAreMonotone(t *testing.T) {
	h := escrowSetup(t)

	type totals struct{ origin, platform, claim, payment, userGain *big.Int }
	read := func() totals {
		gain := load[model.PlatformGain](t, h.store, model.KindPlatformGain, entity.PlatformGainID("3", daiID))
		claim := load[model.FeeClaim](t, h.store, model.KindFeeClaim, entity.FeeClaimID("3", daiID))
		payment := load[model.Payment](t, h.store, model.KindPayment, entity.PaymentID("5", "Release"))
		userGain := load[model.UserGain](t, h.store, model.KindUserGain, entity.UserGainID("2", daiID))
		return totals{gain.TotalOriginPlatformFeeGain, gain.TotalPlatformFeeGain, claim.Amount, payment.Amount, userGain.TotalGain}
	}

	steps := []struct {
		name    string
		payload interface{}
	}{
		{model.EventOriginPlatformFeeReleased, model.FeeReleasedData{PlatformID: "3", ServiceID: "7", Token: daiAddr, Amount: "20"}},
		{model.EventPlatformFeeReleased, model.FeeReleasedData{PlatformID: "3", ServiceID: "7", Token: daiAddr, Amount: "30"}},
		{model.EventFeesClaimed, model.FeesClaimedData{PlatformID: "3", Token: daiAddr, Amount: "10"}},
		{model.EventPayment, model.PaymentData{TransactionID: "5", PaymentType: 0, Token: daiAddr, Amount: "400", ServiceID: "7"}},
		{model.EventOriginPlatformFeeReleased, model.FeeReleasedData{PlatformID: "3", ServiceID: "7", Token: daiAddr, Amount: "0"}},
		{model.EventPayment, model.PaymentData{TransactionID: "5", PaymentType: 0, Token: daiAddr, Amount: "600", ServiceID: "7"}},
		{model.EventFeesClaimed, model.FeesClaimedData{PlatformID: "3", Token: daiAddr, Amount: "40"}},
	}
	for _, step := range steps {
		h.mustApply(step.name, step.payload)
	}

	prev := read()
	for i := 0; i < 2; i++ {
		for _, step := range steps {
			h.mustApply(step.name, step.payload)
			cur := read()
			assert.GreaterOrEqual(t, cur.origin.Cmp(prev.origin), 0, step.name)
			assert.GreaterOrEqual(t, cur.platform.Cmp(prev.platform), 0, step.name)
			assert.GreaterOrEqual(t, cur.claim.Cmp(prev.claim), 0, step.name)
			assert.GreaterOrEqual(t, cur.payment.Cmp(prev.payment), 0, step.name)
			assert.GreaterOrEqual(t, cur.userGain.Cmp(prev.userGain), 0, step.name)
			prev = cur
		}
	}

	final := read()
	assert.Equal(t, "60", final.origin.String())
	assert.Equal(t, "90", final.platform.String())
	assert.Equal(t, "150", final.claim.String())
	assert.Equal(t, "3000", final.payment.String())
	assert.Equal(t, "3000", final.userGain.String())

	fee := load[model.FeePayment](t, h.store, model.KindFeePayment, entity.FeePaymentID("7", "3", model.FeeOriginPlatform))
	assert.Equal(t, model.FeeOriginPlatform, fee.Type)
	assert.Equal(t, "60", fee.Amount.String())

	before := h.store.Snapshot()
	err := h.apply(model.EventFeesClaimed, model.FeesClaimedData{PlatformID: "3", Token: daiAddr, Amount: "-5"})
	assert.True(t, errors.Is(err, ErrInvalidEvent))
	assert.Equal(t, before, h.store.Snapshot())
}

func TestReimbursementIsNotAGain(t *testing.T) {
	h := escrowSetup(t)
	h.mustApply(model.EventPayment, model.PaymentData{TransactionID: "5", PaymentType: 1, Token: daiAddr, Amount: "250", ServiceID: "7"})

	payment := load[model.Payment](t, h.store, model.KindPayment, entity.PaymentID("5", "Reimburse"))
	assert.Equal(t, "250", payment.Amount.String())
	assert.Equal(t, "Reimburse", payment.PaymentType)
	_, ok, err := h.store.LoadEntity(context.Background(), model.KindUserGain, entity.UserGainID("2", daiID))
	require.NoError(t, err)
	assert.False(t, ok)

	err = h.apply(model.EventPayment, model.PaymentData{TransactionID: "5", PaymentType: 4, Token: daiAddr, Amount: "1", ServiceID: "7"})
	assert.True(t, errors.Is(err, ErrInvalidEvent))
}

func TestDisputeFlow(t *testing.T) {
	h := escrowSetup(t)

	h.mustApply(model.EventArbitrationFeePaid, model.ArbitrationFeeData{TransactionID: "5", Party: 0, Amount: "15"})
	h.mustApply(model.EventHasToPayFee, model.HasToPayFeeData{TransactionID: "5", Party: 1})
	tx := load[model.Transaction](t, h.store, model.KindTransaction, "5")
	assert.Equal(t, "15", tx.SenderFee.String())
	assert.Equal(t, model.TransactionWaitingReceiver, tx.Status)

	h.mustApply(model.EventArbitrationFeePaid, model.ArbitrationFeeData{TransactionID: "5", Party: 1, Amount: "15"})
	h.mustApply(model.EventEvidenceSubmitted, model.EvidenceData{
		Arbitrator: carolAddr, EvidenceGroupID: "5", Party: aliceAddr, Evidence: "QmEvidence",
	})
	h.mustApply(model.EventRulingExecuted, model.RulingExecutedData{TransactionID: "5", Ruling: "1"})
	tx = load[model.Transaction](t, h.store, model.KindTransaction, "5")
	assert.Equal(t, "15", tx.ReceiverFee.String())
	assert.Equal(t, model.TransactionResolved, tx.Status)
	assert.Equal(t, h.block, tx.LastInteraction)

	evidence := load[model.Evidence](t, h.store, model.KindEvidence, entity.EvidenceID("5", "QmEvidence"))
	assert.Equal(t, "5", evidence.Transaction)
	assert.Equal(t, "QmEvidence", evidence.URI)
	createdAt := evidence.CreatedAt

	// Evidence is immutable once recorded.
	h.mustApply(model.EventEvidenceSubmitted, model.EvidenceData{
		Arbitrator: carolAddr, EvidenceGroupID: "5", Party: bobAddr, Evidence: "QmEvidence",
	})
	evidence = load[model.Evidence](t, h.store, model.KindEvidence, entity.EvidenceID("5", "QmEvidence"))
	assert.Equal(t, createdAt, evidence.CreatedAt)
	assert.Equal(t, aliceAddr, evidence.Party)

	err := h.apply(model.EventRulingExecuted, model.RulingExecutedData{TransactionID: "404", Ruling: "1"})
	assert.True(t, errors.Is(err, entity.ErrMissingDependency))
}
