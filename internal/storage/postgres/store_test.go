package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("talent_graph"),
		tcpostgres.WithUsername("test_user"),
		tcpostgres.WithPassword("test_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))
	return store
}

func TestStoreEntityRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, ok, err := store.LoadEntity(ctx, model.KindUser, "1")
	require.NoError(t, err)
	assert.False(t, ok)

	session := entity.NewSession(store)
	repo := entity.NewRepository(session, nil)
	user, outcome, err := repo.GetOrCreateUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, entity.Created, outcome)
	user.Handle = "alice"
	require.NoError(t, repo.Save(model.KindUser, user.ID, user))
	_, _, err = repo.GetOrCreateKeyword(ctx, "golang")
	require.NoError(t, err)
	require.NoError(t, session.Commit(ctx))

	data, ok, err := store.LoadEntity(ctx, model.KindUser, "1")
	require.NoError(t, err)
	require.True(t, ok)
	var loaded model.User
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, "alice", loaded.Handle)
	assert.Equal(t, "0", loaded.NumReviews.String())

	again := entity.NewRepository(entity.NewSession(store), nil)
	_, outcome, err = again.GetOrCreateUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, entity.Existing, outcome)

	n, err := store.Count(ctx, model.KindKeyword)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStoreCursor(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, ok, err := store.LoadCursor(ctx, "project")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveCursor(ctx, "project", model.Position{BlockNumber: 41000000, LogIndex: 3}))
	require.NoError(t, store.SaveCursor(ctx, "project", model.Position{BlockNumber: 41000001, LogIndex: 0}))
	pos, ok, err := store.LoadCursor(ctx, "project")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.Position{BlockNumber: 41000001, LogIndex: 0}, pos)

	_, _, err = store.LoadCursor(ctx, "")
	assert.Error(t, err)
}
