package game_test

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/application/game"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

func newSession(t *testing.T, variant string) *simulation.GameSession {
	t.Helper()
	session, err := simulation.NewGameSession(simulation.MustPreset(variant), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return session
}

func TestMemorySessionStore_CreateAndInfo(t *testing.T) {
	// Arrange
	store := game.NewMemorySessionStore()
	started := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	// Act
	id, err := store.Create(newSession(t, simulation.VariantShipping), 99, started)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	info, err := store.Info(id)
	require.NoError(t, err)
	assert.Equal(t, game.SessionInfo{ID: id, Variant: simulation.VariantShipping, Seed: 99, StartedAt: started}, info)
	assert.Equal(t, 1, store.Count())
}

func TestMemorySessionStore_UnknownSession(t *testing.T) {
	store := game.NewMemorySessionStore()

	_, err := store.Info("missing")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)

	err = store.WithSession("missing", func(*simulation.GameSession) error { return nil })
	assert.ErrorIs(t, err, game.ErrSessionNotFound)

	assert.ErrorIs(t, store.Delete("missing"), game.ErrSessionNotFound)

	_, err = store.Create(nil, 1, time.Now())
	assert.Error(t, err)
}

func TestMemorySessionStore_WithSessionPropagatesError(t *testing.T) {
	store := game.NewMemorySessionStore()
	id, err := store.Create(newSession(t, simulation.VariantClassic), 1, time.Now())
	require.NoError(t, err)
	boom := errors.New("boom")

	err = store.WithSession(id, func(*simulation.GameSession) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestMemorySessionStore_TracksVariantAfterReset(t *testing.T) {
	store := game.NewMemorySessionStore()
	id, err := store.Create(newSession(t, simulation.VariantClassic), 1, time.Now())
	require.NoError(t, err)

	err = store.WithSession(id, func(session *simulation.GameSession) error {
		_, err := session.ResetWith(simulation.MustPreset(simulation.VariantReputation))
		return err
	})
	require.NoError(t, err)

	info, err := store.Info(id)
	require.NoError(t, err)
	assert.Equal(t, simulation.VariantReputation, info.Variant)
}

func TestMemorySessionStore_SerializesSubmitsPerSession(t *testing.T) {
	store := game.NewMemorySessionStore()
	id, err := store.Create(newSession(t, simulation.VariantClassic), 1, time.Now())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.WithSession(id, func(session *simulation.GameSession) error {
				_, err := session.Submit(simulation.PlayerDecision{OrderQuantity: 20})
				return err
			})
		}()
	}
	wg.Wait()

	err = store.WithSession(id, func(session *simulation.GameSession) error {
		assert.Equal(t, 11, session.Week())
		assert.Len(t, session.History(), 10)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(id))
	assert.Equal(t, 0, store.Count())
}
