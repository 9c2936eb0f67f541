package tokenmeta

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const erc20ABIStringJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"}
]`

// Some early tokens (MKR, SAI) return bytes32 for symbol and name.
const erc20ABIBytes32JSON = `[
  {"inputs": [], "name": "symbol", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"}
]`

var (
	erc20ABIs     struct{ str, b32 abi.ABI }
	erc20ABIsOnce sync.Once
	erc20ABIsErr  error
)

func erc20ABIInstances() (abi.ABI, abi.ABI, error) {
	erc20ABIsOnce.Do(func() {
		erc20ABIs.str, erc20ABIsErr = abi.JSON(strings.NewReader(erc20ABIStringJSON))
		if erc20ABIsErr != nil {
			return
		}
		erc20ABIs.b32, erc20ABIsErr = abi.JSON(strings.NewReader(erc20ABIBytes32JSON))
	})
	return erc20ABIs.str, erc20ABIs.b32, erc20ABIsErr
}

// ErrNoRPC is returned by every read of an Unavailable reader.
var ErrNoRPC = errors.New("no rpc configured")

// Reader performs the three independent ERC20 metadata reads.
type Reader interface {
	TrySymbol(ctx context.Context, token common.Address) Result[string]
	TryName(ctx context.Context, token common.Address) Result[string]
	TryDecimals(ctx context.Context, token common.Address) Result[uint8]
}

// ContractCaller executes eth_call. *chain.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ChainReader reads ERC20 metadata over RPC at the latest block.
type ChainReader struct {
	caller ContractCaller
}

func NewChainReader(caller ContractCaller) *ChainReader {
	return &ChainReader{caller: caller}
}

func (r *ChainReader) TrySymbol(ctx context.Context, token common.Address) Result[string] {
	return r.tryText(ctx, token, "symbol")
}

func (r *ChainReader) TryName(ctx context.Context, token common.Address) Result[string] {
	return r.tryText(ctx, token, "name")
}

func (r *ChainReader) TryDecimals(ctx context.Context, token common.Address) Result[uint8] {
	stringABI, _, err := erc20ABIInstances()
	if err != nil {
		return Failed[uint8](fmt.Errorf("parse erc20 abi: %w", err))
	}
	values, err := r.call(ctx, token, stringABI, "decimals")
	if err != nil {
		return Failed[uint8](err)
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return Failed[uint8](fmt.Errorf("decimals unexpected type %T", values[0]))
	}
	return Ok(decimals)
}

func (r *ChainReader) tryText(ctx context.Context, token common.Address, method string) Result[string] {
	stringABI, bytes32ABI, err := erc20ABIInstances()
	if err != nil {
		return Failed[string](fmt.Errorf("parse erc20 abi: %w", err))
	}

	values, err := r.call(ctx, token, stringABI, method)
	if err == nil {
		if text, ok := values[0].(string); ok {
			return Ok(text)
		}
	}

	values, fallbackErr := r.call(ctx, token, bytes32ABI, method)
	if fallbackErr != nil {
		if err == nil {
			err = fallbackErr
		}
		return Failed[string](err)
	}
	raw, ok := values[0].([32]byte)
	if !ok {
		return Failed[string](fmt.Errorf("%s unexpected type %T", method, values[0]))
	}
	return Ok(string(bytes.TrimRight(raw[:], "\x00")))
}

func (r *ChainReader) call(ctx context.Context, token common.Address, parsed abi.ABI, method string) ([]interface{}, error) {
	if r == nil || r.caller == nil {
		return nil, ErrNoRPC
	}
	data, err := parsed.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	resp, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("%s return size %d", method, len(values))
	}
	return values, nil
}

// Unavailable is a Reader for runs without an RPC endpoint; every read fails.
type Unavailable struct{}

func (Unavailable) TrySymbol(context.Context, common.Address) Result[string] {
	return Failed[string](ErrNoRPC)
}

func (Unavailable) TryName(context.Context, common.Address) Result[string] {
	return Failed[string](ErrNoRPC)
}

func (Unavailable) TryDecimals(context.Context, common.Address) Result[uint8] {
	return Failed[uint8](ErrNoRPC)
}
