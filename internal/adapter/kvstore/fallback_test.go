package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vastrakart/assistant/internal/adapter/kvstore"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestMemory(t *testing.T) {

	t.Run("MissingKeyYieldsNil", func(t *testing.T) {
		m := kvstore.NewMemory()

		b, err := m.Get(t.Context(), "nope")

		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("SetGet", func(t *testing.T) {
		m := kvstore.NewMemory()

		err := m.Set(t.Context(), "k", []byte("v"))
		require.NoError(t, err)

		b, err := m.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), b)
	})

	t.Run("ValueIsCopied", func(t *testing.T) {
		m := kvstore.NewMemory()
		v := []byte("abc")

		err := m.Set(t.Context(), "k", v)
		require.NoError(t, err)
		v[0] = 'x'

		b, err := m.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), b)
	})
}

func TestFallback(t *testing.T) {

	t.Run("ServesPrimaryWhileHealthy", func(t *testing.T) {
		primary := new(MockStorage)
		primary.On("Set", mock.Anything, "k", []byte("v")).Return(nil)
		primary.On("Get", mock.Anything, "k").Return([]byte("v"), nil)
		f := kvstore.NewFallback(primary)
		ctx := t.Context()

		require.NoError(t, f.Set(ctx, "k", []byte("v")))
		b, err := f.Get(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, []byte("v"), b)
		assert.False(t, f.Degraded())
	})

	t.Run("NilPrimaryStartsDegraded", func(t *testing.T) {
		f := kvstore.NewFallback(nil)
		ctx := t.Context()

		assert.True(t, f.Degraded())

		require.NoError(t, f.Set(ctx, "k", []byte("v")))
		b, err := f.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), b)
	})

	t.Run("DegradesOnFirstFailure", func(t *testing.T) {
		primary := new(MockStorage)
		primary.On("Set", mock.Anything, "k1", []byte("v1")).
			Return(assert.AnError).Once()
		f := kvstore.NewFallback(primary)
		ctx := t.Context()

		// The failed write lands in the fallback instead of erroring.
		require.NoError(t, f.Set(ctx, "k1", []byte("v1")))
		assert.True(t, f.Degraded())

		b, err := f.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), b)

		// State written before and after the transition is retained
		// within the process.
		require.NoError(t, f.Set(ctx, "k2", []byte("v2")))
		b, err = f.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), b)

		primary.AssertNumberOfCalls(t, "Set", 1)
		primary.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("DegradesOnReadFailure", func(t *testing.T) {
		primary := new(MockStorage)
		primary.On("Get", mock.Anything, "k").
			Return(nil, assert.AnError).Once()
		f := kvstore.NewFallback(primary)
		ctx := t.Context()

		b, err := f.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, b)
		assert.True(t, f.Degraded())
	})

	t.Run("NeverPromotesBack", func(t *testing.T) {
		primary := new(MockStorage)
		primary.On("Get", mock.Anything, "k").
			Return(nil, assert.AnError).Once()
		f := kvstore.NewFallback(primary)
		ctx := t.Context()

		_, err := f.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, f.Degraded())

		// Even a recovered primary is never consulted again.
		require.NoError(t, f.Set(ctx, "k", []byte("v")))
		_, err = f.Get(ctx, "k")
		require.NoError(t, err)

		primary.AssertNumberOfCalls(t, "Get", 1)
		primary.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}
