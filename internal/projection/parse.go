package projection

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"talentGraph/internal/entity"
)

// fields parses event parameters and keeps the first failure,
// so a handler checks err once after reading every field.
type fields struct {
	err error
}

func (f *fields) id(name, value string) string {
	if f.err != nil {
		return ""
	}
	id, err := entity.ParseNumericID(value)
	if err != nil {
		f.err = invalidEvent("%s: %v", name, err)
		return ""
	}
	return id
}

func (f *fields) amount(name, value string) *big.Int {
	if f.err != nil {
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return new(big.Int)
	}
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok || amount.Sign() < 0 {
		f.err = invalidEvent("%s: invalid amount %q", name, value)
		return nil
	}
	return amount
}

func (f *fields) address(name, value string) string {
	if f.err != nil {
		return ""
	}
	if !common.IsHexAddress(value) {
		f.err = invalidEvent("%s: invalid address %q", name, value)
		return ""
	}
	return strings.ToLower(common.HexToAddress(value).Hex())
}

func (f *fields) feeRate(name string, value int) int {
	if f.err != nil {
		return 0
	}
	if value < 0 || value > FeeDivider {
		f.err = invalidEvent("%s: fee rate %d outside [0, %d]", name, value, FeeDivider)
		return 0
	}
	return value
}

func (f *fields) rating(name, value string) *big.Int {
	rating := f.amount(name, value)
	if f.err != nil {
		return nil
	}
	if rating.Cmp(big.NewInt(MaxRating)) > 0 {
		f.err = invalidEvent("%s: rating %s above %d", name, rating, MaxRating)
		return nil
	}
	return rating
}
