package entity

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"talentGraph/internal/model"
	"talentGraph/internal/tokenmeta"
)

// Outcome tells whether getOrCreate found or built the entity.
type Outcome int

const (
	Existing Outcome = iota
	Created
)

func (o Outcome) String() string {
	if o == Created {
		return "created"
	}
	return "existing"
}

// MetadataResolver resolves token metadata.
type MetadataResolver interface {
	Resolve(ctx context.Context, token common.Address) tokenmeta.Metadata
}

// Repository gives get-or-create access to every entity kind within one session.
type Repository struct {
	session  *Session
	resolver MetadataResolver
}

func NewRepository(session *Session, resolver MetadataResolver) *Repository {
	if resolver == nil {
		resolver = tokenmeta.NewResolver(nil, nil)
	}
	return &Repository{session: session, resolver: resolver}
}

// Save persists an entity within the session.
func (r *Repository) Save(kind model.Kind, id string, value interface{}) error {
	return r.session.Save(kind, id, value)
}

func getOrCreate[T any](ctx context.Context, r *Repository, kind model.Kind, id string, seed func(*T) error) (*T, Outcome, error) {
	if id == "" {
		return nil, Existing, fmt.Errorf("%s id is empty", kind)
	}
	var value T
	found, err := r.session.Load(ctx, kind, id, &value)
	if err != nil {
		return nil, Existing, err
	}
	if found {
		return &value, Existing, nil
	}
	if err := seed(&value); err != nil {
		return nil, Existing, err
	}
	if err := r.session.Save(kind, id, &value); err != nil {
		return nil, Existing, err
	}
	r.session.markCreated(kind, id)
	return &value, Created, nil
}

func find[T any](ctx context.Context, r *Repository, kind model.Kind, id string) (*T, bool, error) {
	var value T
	found, err := r.session.Load(ctx, kind, id, &value)
	if err != nil || !found {
		return nil, false, err
	}
	return &value, true, nil
}

// FindUser looks a user up without creating it.
func (r *Repository) FindUser(ctx context.Context, id string) (*model.User, bool, error) {
	return find[model.User](ctx, r, model.KindUser, id)
}

// RequireUser returns the user or a MissingDependencyError.
func (r *Repository) RequireUser(ctx context.Context, id string) (*model.User, error) {
	user, ok, err := r.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingDependencyError{Kind: model.KindUser, ID: id}
	}
	return user, nil
}

// FindService looks a service up without creating it.
func (r *Repository) FindService(ctx context.Context, id string) (*model.Service, bool, error) {
	return find[model.Service](ctx, r, model.KindService, id)
}

// RequireService returns the service or a MissingDependencyError.
func (r *Repository) RequireService(ctx context.Context, id string) (*model.Service, error) {
	service, ok, err := r.FindService(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingDependencyError{Kind: model.KindService, ID: id}
	}
	return service, nil
}

// FindTransaction looks an escrow transaction up without creating it.
func (r *Repository) FindTransaction(ctx context.Context, id string) (*model.Transaction, bool, error) {
	return find[model.Transaction](ctx, r, model.KindTransaction, id)
}

// RequireTransaction returns the transaction or a MissingDependencyError.
func (r *Repository) RequireTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	tx, ok, err := r.FindTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingDependencyError{Kind: model.KindTransaction, ID: id}
	}
	return tx, nil
}

func (r *Repository) GetOrCreateUser(ctx context.Context, id string) (*model.User, Outcome, error) {
	return getOrCreate(ctx, r, model.KindUser, id, func(u *model.User) error {
		*u = model.User{
			ID:              id,
			Address:         NativeTokenAddress,
			NumReviews:      new(big.Int),
			NumGivenReviews: new(big.Int),
			Rating:          decimal.Zero,
		}
		return nil
	})
}

// GetOrCreateService seeds a new service as Filled; ServiceCreated decides the real initial state.
func (r *Repository) GetOrCreateService(ctx context.Context, id string) (*model.Service, Outcome, error) {
	return getOrCreate(ctx, r, model.KindService, id, func(s *model.Service) error {
		*s = model.Service{ID: id, Status: model.ServiceFilled}
		return nil
	})
}

// GetOrCreateProposal also creates the referenced service and the native rate token.
func (r *Repository) GetOrCreateProposal(ctx context.Context, id, serviceID string) (*model.Proposal, Outcome, error) {
	return getOrCreate(ctx, r, model.KindProposal, id, func(p *model.Proposal) error {
		service, _, err := r.GetOrCreateService(ctx, serviceID)
		if err != nil {
			return err
		}
		token, _, err := r.GetOrCreateToken(ctx, NativeTokenAddress)
		if err != nil {
			return err
		}
		*p = model.Proposal{
			ID:         id,
			Status:     model.ProposalPending,
			Service:    service.ID,
			RateToken:  token.ID,
			RateAmount: new(big.Int),
		}
		return nil
	})
}

// GetOrCreateReview also creates the referenced service and target user.
func (r *Repository) GetOrCreateReview(ctx context.Context, id, serviceID, toID string) (*model.Review, Outcome, error) {
	return getOrCreate(ctx, r, model.KindReview, id, func(rv *model.Review) error {
		to, _, err := r.GetOrCreateUser(ctx, toID)
		if err != nil {
			return err
		}
		service, _, err := r.GetOrCreateService(ctx, serviceID)
		if err != nil {
			return err
		}
		*rv = model.Review{ID: id, To: to.ID, Service: service.ID, Rating: new(big.Int)}
		return nil
	})
}

func (r *Repository) GetOrCreateTransaction(ctx context.Context, id string, timestamp uint64) (*model.Transaction, Outcome, error) {
	return getOrCreate(ctx, r, model.KindTransaction, id, func(tx *model.Transaction) error {
		*tx = model.Transaction{
			ID:                    id,
			Amount:                new(big.Int),
			SenderFee:             new(big.Int),
			ReceiverFee:           new(big.Int),
			LastInteraction:       timestamp,
			Status:                model.TransactionNoDispute,
			Arbitrator:            NativeTokenAddress,
			ArbitrationFeeTimeout: new(big.Int),
		}
		return nil
	})
}

func (r *Repository) GetOrCreatePayment(ctx context.Context, id, serviceID string) (*model.Payment, Outcome, error) {
	return getOrCreate(ctx, r, model.KindPayment, id, func(p *model.Payment) error {
		service, _, err := r.GetOrCreateService(ctx, serviceID)
		if err != nil {
			return err
		}
		*p = model.Payment{ID: id, Service: service.ID, Amount: new(big.Int)}
		return nil
	})
}

func (r *Repository) GetOrCreatePlatform(ctx context.Context, id string) (*model.Platform, Outcome, error) {
	return getOrCreate(ctx, r, model.KindPlatform, id, func(p *model.Platform) error {
		*p = model.Platform{
			ID:                    id,
			Address:               NativeTokenAddress,
			Arbitrator:            NativeTokenAddress,
			ArbitrationFeeTimeout: new(big.Int),
		}
		return nil
	})
}

// GetOrCreateToken resolves metadata only when the token is first created.
// Reverted reads leave their field at the zero value; allowed always starts false.
func (r *Repository) GetOrCreateToken(ctx context.Context, address string) (*model.Token, Outcome, error) {
	id, err := TokenID(address)
	if err != nil {
		return nil, Existing, err
	}
	return getOrCreate(ctx, r, model.KindToken, id, func(t *model.Token) error {
		*t = model.Token{ID: id, Address: id}
		meta := r.resolver.Resolve(ctx, common.HexToAddress(id))
		if symbol, ok := meta.Symbol.Get(); ok {
			t.Symbol = symbol
		}
		if name, ok := meta.Name.Get(); ok {
			t.Name = name
		}
		if decimals, ok := meta.Decimals.Get(); ok {
			t.Decimals = decimals
		}
		t.Allowed = false
		return nil
	})
}

func (r *Repository) GetOrCreateOriginPlatformFee(ctx context.Context, id string) (*model.FeePayment, Outcome, error) {
	return r.getOrCreateFeePayment(ctx, id, model.FeeOriginPlatform)
}

func (r *Repository) GetOrCreatePlatformFee(ctx context.Context, id string) (*model.FeePayment, Outcome, error) {
	return r.getOrCreateFeePayment(ctx, id, model.FeePlatform)
}

func (r *Repository) getOrCreateFeePayment(ctx context.Context, id string, feeType model.FeePaymentType) (*model.FeePayment, Outcome, error) {
	return getOrCreate(ctx, r, model.KindFeePayment, id, func(f *model.FeePayment) error {
		*f = model.FeePayment{ID: id, Type: feeType, Amount: new(big.Int)}
		return nil
	})
}

func (r *Repository) GetOrCreateClaim(ctx context.Context, id string) (*model.FeeClaim, Outcome, error) {
	return getOrCreate(ctx, r, model.KindFeeClaim, id, func(c *model.FeeClaim) error {
		*c = model.FeeClaim{ID: id, Amount: new(big.Int)}
		return nil
	})
}

func (r *Repository) GetOrCreatePlatformGain(ctx context.Context, id string) (*model.PlatformGain, Outcome, error) {
	return getOrCreate(ctx, r, model.KindPlatformGain, id, func(g *model.PlatformGain) error {
		*g = model.PlatformGain{
			ID:                         id,
			TotalOriginPlatformFeeGain: new(big.Int),
			TotalPlatformFeeGain:       new(big.Int),
		}
		return nil
	})
}

func (r *Repository) GetOrCreateUserGain(ctx context.Context, id, userID string) (*model.UserGain, Outcome, error) {
	return getOrCreate(ctx, r, model.KindUserGain, id, func(g *model.UserGain) error {
		user, _, err := r.GetOrCreateUser(ctx, userID)
		if err != nil {
			return err
		}
		*g = model.UserGain{ID: id, User: user.ID, TotalGain: new(big.Int)}
		return nil
	})
}

// Protocol returns the single Protocol entity, creating it on first use.
func (r *Repository) Protocol(ctx context.Context) (*model.Protocol, error) {
	protocol, _, err := getOrCreate(ctx, r, model.KindProtocol, ProtocolID, func(p *model.Protocol) error {
		*p = model.Protocol{
			ID:              ProtocolID,
			UserMintFee:     new(big.Int),
			PlatformMintFee: new(big.Int),
			TotalMintFees:   new(big.Int),
		}
		return nil
	})
	return protocol, err
}

func (r *Repository) GetOrCreateEvidence(ctx context.Context, id, transactionID string) (*model.Evidence, Outcome, error) {
	return getOrCreate(ctx, r, model.KindEvidence, id, func(e *model.Evidence) error {
		tx, _, err := r.GetOrCreateTransaction(ctx, transactionID, 0)
		if err != nil {
			return err
		}
		*e = model.Evidence{ID: id, Transaction: tx.ID}
		return nil
	})
}

func (r *Repository) GetOrCreateKeyword(ctx context.Context, id string) (*model.Keyword, Outcome, error) {
	return getOrCreate(ctx, r, model.KindKeyword, id, func(k *model.Keyword) error {
		*k = model.Keyword{ID: id}
		return nil
	})
}
