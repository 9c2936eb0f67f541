package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentGraph/internal/model"
	"talentGraph/internal/tokenmeta"
)

type countingResolver struct {
	calls int
}

func (c *countingResolver) Resolve(context.Context, common.Address) tokenmeta.Metadata {
	c.calls++
	return tokenmeta.Metadata{
		Symbol:   tokenmeta.Failed[string](errors.New("reverted")),
		Name:     tokenmeta.Ok("Dai Stablecoin"),
		Decimals: tokenmeta.Ok(uint8(18)),
	}
}

func commit(t *testing.T, store Store, fn func(repo *Repository)) {
	t.Helper()
	session := NewSession(store)
	fn(NewRepository(session, &countingResolver{}))
	require.NoError(t, session.Commit(context.Background()))
}

func TestGetOrCreateIdempotent(t *testing.T) {
	ctx := context.Background()
	calls := []func(repo *Repository) error{
		func(repo *Repository) error { _, _, err := repo.GetOrCreateUser(ctx, "1"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreateService(ctx, "2"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreateProposal(ctx, "2-1", "2"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreateReview(ctx, "3", "2", "1"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreateTransaction(ctx, "4", 99); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreatePayment(ctx, "4-0", "2"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreatePlatform(ctx, "5"); return err },
		func(repo *Repository) error {
			_, _, err := repo.GetOrCreateToken(ctx, "0x6B175474E89094C44Da98b954EedeAC495271d0F")
			return err
		},
		func(repo *Repository) error { _, _, err := repo.GetOrCreateOriginPlatformFee(ctx, "2-5-origin"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreatePlatformFee(ctx, "2-5-platform"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreateClaim(ctx, "5-x"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreatePlatformGain(ctx, "5-x"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreateUserGain(ctx, "1-x", "1"); return err },
		func(repo *Repository) error { _, err := repo.Protocol(ctx); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreateEvidence(ctx, "4-uri", "4"); return err },
		func(repo *Repository) error { _, _, err := repo.GetOrCreateKeyword(ctx, "golang"); return err },
	}

	once := NewMemoryStore()
	twice := NewMemoryStore()
	for _, call := range calls {
		commit(t, once, func(repo *Repository) { require.NoError(t, call(repo)) })
		commit(t, twice, func(repo *Repository) { require.NoError(t, call(repo)) })
		commit(t, twice, func(repo *Repository) { require.NoError(t, call(repo)) })
	}

	assert.Equal(t, once.Snapshot(), twice.Snapshot())
}

func TestGetOrCreateReturnsExistingUnmodified(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	commit(t, store, func(repo *Repository) {
		user, outcome, err := repo.GetOrCreateUser(ctx, "7")
		require.NoError(t, err)
		assert.Equal(t, Created, outcome)
		user.Handle = "alice"
		require.NoError(t, repo.Save(model.KindUser, user.ID, user))
	})

	commit(t, store, func(repo *Repository) {
		user, outcome, err := repo.GetOrCreateUser(ctx, "7")
		require.NoError(t, err)
		assert.Equal(t, Existing, outcome)
		assert.Equal(t, "alice", user.Handle)
	})
}

func TestProposalCreatesDependencies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	commit(t, store, func(repo *Repository) {
		proposal, _, err := repo.GetOrCreateProposal(ctx, ProposalID("42", "7"), "42")
		require.NoError(t, err)
		assert.Equal(t, model.ProposalPending, proposal.Status)
		assert.Equal(t, NativeTokenAddress, proposal.RateToken)
	})

	commit(t, store, func(repo *Repository) {
		service, err := repo.RequireService(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, model.ServiceFilled, service.Status)
	})
}

func TestTokenMetadataResolvedOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	resolver := &countingResolver{}

	for i := 0; i < 2; i++ {
		session := NewSession(store)
		repo := NewRepository(session, resolver)
		token, _, err := repo.GetOrCreateToken(ctx, "0x6B175474E89094C44Da98b954EedeAC495271d0F")
		require.NoError(t, err)
		assert.Equal(t, "0x6b175474e89094c44da98b954eedeac495271d0f", token.ID)
		assert.Empty(t, token.Symbol)
		assert.Equal(t, "Dai Stablecoin", token.Name)
		assert.Equal(t, uint8(18), token.Decimals)
		assert.False(t, token.Allowed)
		require.NoError(t, session.Commit(ctx))
	}
	assert.Equal(t, 1, resolver.calls)
}

func TestRequireMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewSession(NewMemoryStore()), nil)

	_, err := repo.RequireUser(ctx, "404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDependency))

	var missing *MissingDependencyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, model.KindUser, missing.Kind)
	assert.Equal(t, "404", missing.ID)
}

func TestSessionDiscardLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	session := NewSession(store)
	repo := NewRepository(session, nil)

	_, _, err := repo.GetOrCreateUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []model.Kind{model.KindUser}, session.Created())
	assert.Zero(t, store.Len())

	_, found, err := NewRepository(NewSession(store), nil).FindUser(ctx, "1")
	require.NoError(t, err)
	assert.False(t, found)
}
