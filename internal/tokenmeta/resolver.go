package tokenmeta

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Native asset metadata, used without any contract call.
const (
	NativeSymbol   = "ETH"
	NativeName     = "Ether"
	NativeDecimals = uint8(18)
)

// Metadata holds the outcome of each read independently; partial metadata is final.
type Metadata struct {
	Symbol   Result[string]
	Name     Result[string]
	Decimals Result[uint8]
}

// Resolver resolves token metadata once per address.
type Resolver struct {
	reader Reader
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[common.Address]Metadata
	calls int
}

func NewResolver(reader Reader, logger *zap.Logger) *Resolver {
	if reader == nil {
		reader = Unavailable{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		reader: reader,
		logger: logger,
		cache:  make(map[common.Address]Metadata),
	}
}

// Resolve returns metadata for token. The zero address is the native asset.
func (r *Resolver) Resolve(ctx context.Context, token common.Address) Metadata {
	if token == (common.Address{}) {
		return Metadata{
			Symbol:   Ok(NativeSymbol),
			Name:     Ok(NativeName),
			Decimals: Ok(NativeDecimals),
		}
	}

	r.mu.RLock()
	meta, ok := r.cache[token]
	r.mu.RUnlock()
	if ok {
		return meta
	}

	meta = Metadata{
		Symbol:   r.reader.TrySymbol(ctx, token),
		Name:     r.reader.TryName(ctx, token),
		Decimals: r.reader.TryDecimals(ctx, token),
	}
	r.logOutcome(token, "symbol", meta.Symbol.Err())
	r.logOutcome(token, "name", meta.Name.Err())
	r.logOutcome(token, "decimals", meta.Decimals.Err())

	r.mu.Lock()
	r.cache[token] = meta
	r.calls++
	r.mu.Unlock()
	return meta
}

// Resolutions returns how many addresses were resolved over the reader.
func (r *Resolver) Resolutions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls
}

func (r *Resolver) logOutcome(token common.Address, field string, err error) {
	if err == nil {
		return
	}
	r.logger.Info("token metadata call reverted",
		zap.String("token", token.Hex()),
		zap.String("field", field),
		zap.Error(err),
	)
}
