package market

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"talentGraph/internal/model"
)

// Contract is one marketplace contract ABI plus the canonical names of its events.
// Several contracts emit an event called Mint, so names are mapped per contract.
type Contract struct {
	Name   string
	ABI    abi.ABI
	Events map[string]string
}

var contractEvents = []struct {
	name   string
	json   string
	events map[string]string
}{
	{
		name: "serviceRegistry",
		json: serviceRegistryABIJSON,
		events: map[string]string{
			"ServiceCreated":   model.EventServiceCreated,
			"ServiceConfirmed": model.EventServiceConfirmed,
			"ServiceFinished":  model.EventServiceFinished,
			"ServiceRejected":  model.EventServiceRejected,
			"ProposalCreated":  model.EventProposalCreated,
			"ProposalUpdated":  model.EventProposalUpdated,
			"ProposalRejected": model.EventProposalRejected,
		},
	},
	{
		name: "review",
		json: reviewABIJSON,
		events: map[string]string{
			"Mint": model.EventReviewMinted,
		},
	},
	{
		name: "profileID",
		json: profileIDABIJSON,
		events: map[string]string{
			"Mint":           model.EventProfileMinted,
			"PohActivated":   model.EventPohActivated,
			"MintFeeUpdated": model.EventUserMintFeeUpdated,
		},
	},
	{
		name: "platformID",
		json: platformIDABIJSON,
		events: map[string]string{
			"Mint":                         model.EventPlatformMinted,
			"PlatformEscrowFeeRateUpdated": model.EventPlatformEscrowFeeRateUpdated,
			"ArbitratorUpdated":            model.EventPlatformArbitratorUpdated,
			"ArbitrationFeeTimeoutUpdated": model.EventPlatformArbitrationFeeTimeoutUpdated,
			"PlatformMintFeeUpdated":       model.EventPlatformMintFeeUpdated,
		},
	},
	{
		name: "escrow",
		json: escrowABIJSON,
		events: map[string]string{
			"TransactionCreated":                     model.EventTransactionCreated,
			"Payment":                                model.EventPayment,
			"OriginServiceFeeRateReleased":           model.EventOriginPlatformFeeReleased,
			"OriginValidatedProposalFeeRateReleased": model.EventPlatformFeeReleased,
			"FeesClaimed":                            model.EventFeesClaimed,
			"ArbitrationFeePayment":                  model.EventArbitrationFeePaid,
			"HasToPayFee":                            model.EventHasToPayFee,
			"RulingExecuted":                         model.EventRulingExecuted,
			"Evidence":                               model.EventEvidenceSubmitted,
			"ProtocolEscrowFeeRateUpdated":           model.EventProtocolEscrowFeeRateUpdated,
			"OriginPlatformEscrowFeeRateUpdated":     model.EventOriginPlatformEscrowFeeRateUpdated,
			"AllowedTokenListUpdated":                model.EventAllowedTokenListUpdated,
		},
	},
}

var (
	contractsOnce sync.Once
	contracts     []Contract
	contractsErr  error
)

// Contracts returns the parsed marketplace contract ABIs.
func Contracts() ([]Contract, error) {
	contractsOnce.Do(func() {
		for _, entry := range contractEvents {
			parsed, err := abi.JSON(strings.NewReader(entry.json))
			if err != nil {
				contractsErr = fmt.Errorf("parse %s abi: %w", entry.name, err)
				return
			}
			for abiName := range entry.events {
				if _, ok := parsed.Events[abiName]; !ok {
					contractsErr = fmt.Errorf("%s abi has no event %s", entry.name, abiName)
					return
				}
			}
			contracts = append(contracts, Contract{Name: entry.name, ABI: parsed, Events: entry.events})
		}
	})
	return contracts, contractsErr
}

// EventByName finds the ABI event that produces a canonical event name.
func EventByName(name string) (abi.Event, error) {
	all, err := Contracts()
	if err != nil {
		return abi.Event{}, err
	}
	for _, contract := range all {
		for abiName, canonical := range contract.Events {
			if canonical == name {
				return contract.ABI.Events[abiName], nil
			}
		}
	}
	return abi.Event{}, fmt.Errorf("unknown event %s", name)
}

// Topic0s returns the topic0 of every catalogued event in a stable order.
func Topic0s() ([]common.Hash, error) {
	all, err := Contracts()
	if err != nil {
		return nil, err
	}
	seen := make(map[common.Hash]struct{})
	var out []common.Hash
	for _, contract := range all {
		for abiName := range contract.Events {
			id := contract.ABI.Events[abiName].ID
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hex() < out[j].Hex() })
	return out, nil
}
