package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomdesk/infras/otel/mocks"
	"roomdesk/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type receiptView struct {
	Code  string  `json:"code"`
	Total float64 `json:"total"`
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, mocks.NewOtel())
	ctx := context.Background()

	mock.ExpectSet("receipt:get:ABC123", []byte(`{"code":"ABC123","total":300}`), time.Minute).SetVal("OK")
	mock.ExpectGet("receipt:get:ABC123").SetVal(`{"code":"ABC123","total":300}`)

	require.NoError(t, c.Save(ctx, "receipt:get:ABC123", receiptView{Code: "ABC123", Total: 300}, 60))

	var got receiptView
	require.NoError(t, c.Get(ctx, "receipt:get:ABC123", &got))
	assert.Equal(t, receiptView{Code: "ABC123", Total: 300}, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectGet("receipt:get:missing").RedisNil()

	var got receiptView
	err := c.Get(context.Background(), "receipt:get:missing", &got)

	assert.True(t, errors.Is(err, cache.Nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Increment(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, mocks.NewOtel())
	ctx := context.Background()

	mock.ExpectIncr("limiter:1.2.3.4").SetVal(1)
	mock.ExpectExpire("limiter:1.2.3.4", 30*time.Second).SetVal(true)
	mock.ExpectIncr("limiter:1.2.3.4").SetVal(2)

	count, err := c.Increment(ctx, "limiter:1.2.3.4", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = c.Increment(ctx, "limiter:1.2.3.4", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_IncrementError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectIncr("limiter:5.6.7.8").SetErr(errors.New("connection refused"))

	_, err := c.Increment(context.Background(), "limiter:5.6.7.8", 30)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
