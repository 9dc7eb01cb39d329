package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every backend must share.
func runContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing is nil nil", func(t *testing.T) {
		v, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "donors", []byte(`[{"email":"a@x"}]`)))
		v, err := s.Get(ctx, "donors")
		require.NoError(t, err)
		assert.Equal(t, `[{"email":"a@x"}]`, string(v))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", []byte("old")))
		require.NoError(t, s.Set(ctx, "k", []byte("new")))
		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("empty value is not missing", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "empty", nil))
		v, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		assert.NotNil(t, v)
		assert.Empty(t, v)
	})

	t.Run("keys sorted", func(t *testing.T) {
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"donors", "empty", "k"}, keys)
	})

	t.Run("update", func(t *testing.T) {
		require.NoError(t, s.Update(ctx, "counter", func(cur []byte) ([]byte, error) {
			assert.Nil(t, cur)
			return []byte("1"), nil
		}))
		require.NoError(t, s.Update(ctx, "counter", func(cur []byte) ([]byte, error) {
			assert.Equal(t, []byte("1"), cur)
			return []byte("2"), nil
		}))
		v, err := s.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), v)
	})

	t.Run("update error leaves value", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.Update(ctx, "counter", func([]byte) ([]byte, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
		v, err := s.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), v)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "k"))
		require.NoError(t, s.Delete(ctx, "k"))
		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}
