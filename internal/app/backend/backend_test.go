package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/storage"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type StoreMock struct {
	mock.Mock
	storage.Store
}

func (m *StoreMock) CheckDatabaseReady(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{}
	cfg.Driver = DriverRedis
	cfg.AddressRedis = mr.Addr()

	b, err := Open(context.Background(), cfg, newNoopLogger())
	require.NoError(t, err)
	t.Cleanup(b.Close)

	require.NotNil(t, b.Cache)
	require.NoError(t, b.Store.CheckDatabaseReady(context.Background()))

	ctx := context.Background()
	require.NoError(t, storage.SaveSlot(ctx, b.Store, storage.KeyClients, []string{"a"}, time.Now()))
	assert.True(t, mr.Exists(keyPrefix+storage.KeyClients))
}

func TestOpen_RedisUnavailable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Driver = DriverRedis
	cfg.AddressRedis = "127.0.0.1:1"
	cfg.DialTimeout = 100 * time.Millisecond

	_, err := Open(context.Background(), cfg, newNoopLogger())
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Driver = "sqlite"

	_, err := Open(context.Background(), cfg, newNoopLogger())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestWaitForDB(t *testing.T) {
	t.Run("ready after retry", func(t *testing.T) {
		s := new(StoreMock)
		s.On("CheckDatabaseReady", mock.Anything).Return(errors.New("missing table")).Once()
		s.On("CheckDatabaseReady", mock.Anything).Return(nil).Once()

		require.NoError(t, waitForDB(context.Background(), s, 3, time.Millisecond))
		s.AssertExpectations(t)
	})

	t.Run("gives up", func(t *testing.T) {
		s := new(StoreMock)
		s.On("CheckDatabaseReady", mock.Anything).Return(errors.New("missing table"))

		err := waitForDB(context.Background(), s, 2, time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing table")
		s.AssertNumberOfCalls(t, "CheckDatabaseReady", 2)
	})
}

func TestClose_Order(t *testing.T) {
	var order []int
	b := &Backend{log: newNoopLogger()}
	b.closers = []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return errors.New("already closed") },
	}

	b.Close()
	assert.Equal(t, []int{2, 1}, order)
	assert.Nil(t, b.closers)
}
