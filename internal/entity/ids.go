package entity

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"talentGraph/internal/model"
)

const (
	// ProtocolID is the id of the single Protocol entity.
	ProtocolID = "1"
	// NativeTokenAddress stands for the chain's native asset.
	NativeTokenAddress = "0x0000000000000000000000000000000000000000"
	// NoUserID marks an unset user reference in contract events.
	NoUserID = "0"
)

// NumericID renders an on-chain numeric id in canonical decimal form.
func NumericID(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}

// ParseNumericID canonicalises a decimal id string, so "007" and "7" map to the same entity.
func ParseNumericID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty id")
	}
	value, ok := new(big.Int).SetString(input, 10)
	if !ok || value.Sign() < 0 {
		return "", fmt.Errorf("invalid id: %s", input)
	}
	return value.String(), nil
}

// TokenID returns the lower-case hex form of a token address.
func TokenID(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid token address: %s", address)
	}
	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}

// ProposalID joins a service id and a seller id.
func ProposalID(serviceID, sellerID string) string {
	return serviceID + "-" + sellerID
}

// PaymentID keys cumulative payments by transaction and payment type.
func PaymentID(transactionID, paymentType string) string {
	return transactionID + "-" + paymentType
}

// FeePaymentID keys the fee a platform earned on a service.
func FeePaymentID(serviceID, platformID string, feeType model.FeePaymentType) string {
	switch feeType {
	case model.FeeOriginPlatform:
		return serviceID + "-" + platformID + "-origin"
	default:
		return serviceID + "-" + platformID + "-platform"
	}
}

// FeeClaimID keys the fees a platform claimed in one token.
func FeeClaimID(platformID, tokenID string) string {
	return platformID + "-" + tokenID
}

// PlatformGainID keys the fee income of a platform in one token.
func PlatformGainID(platformID, tokenID string) string {
	return platformID + "-" + tokenID
}

// UserGainID keys the income of a user in one token.
func UserGainID(userID, tokenID string) string {
	return userID + "-" + tokenID
}

// EvidenceID keys an evidence submission by transaction and evidence uri.
func EvidenceID(transactionID, uri string) string {
	return transactionID + "-" + uri
}

// ReviewDataID derives the id of the off-chain review content record.
func ReviewDataID(cid string, timestamp uint64) string {
	return cid + "-" + strconv.FormatUint(timestamp, 10)
}
