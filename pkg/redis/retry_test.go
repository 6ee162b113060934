package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryingClientRecoversFromDroppedConnection(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := WithRetry(&Client{Client: db})
	ctx := context.Background()

	mock.ExpectHGet("provinces", "xai-xai").SetErr(errors.New("read tcp: connection reset by peer"))
	mock.ExpectHGet("provinces", "xai-xai").SetVal("gaza")
	mock.ExpectHSet("provinces", "maxixe", "inhambane").SetErr(errors.New("dial tcp: i/o timeout"))
	mock.ExpectHSet("provinces", "maxixe", "inhambane").SetVal(1)

	value, err := client.HGetString(ctx, "provinces", "xai-xai")
	require.NoError(t, err)
	assert.Equal(t, "gaza", value)

	require.NoError(t, client.HSetString(ctx, "provinces", "maxixe", "inhambane"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetryingClientDoesNotRetryMissingField(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := WithRetry(&Client{Client: db})

	mock.ExpectHGet("provinces", "lisboa").RedisNil()

	_, err := client.HGetString(context.Background(), "provinces", "lisboa")
	assert.True(t, IsNil(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetryingClientStopsAfterPolicyAttempts(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := WithRetry(&Client{Client: db})
	down := errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

	mock.ExpectDel("provinces").SetErr(down)
	mock.ExpectDel("provinces").SetErr(down)

	err := client.Delete(context.Background(), "provinces")
	assert.EqualError(t, err, down.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{redis.Nil, false},
		{fmt.Errorf("hget: %w", redis.Nil), false},
		{context.DeadlineExceeded, false},
		{errors.New("WRONGTYPE Operation against a key holding the wrong kind of value"), false},
		{errors.New("NOAUTH Authentication required"), false},
		{errors.New("connection refused"), true},
		{errors.New("redis: connection pool timeout"), true},
		{errors.New("LOADING Redis is loading the dataset in memory"), true},
		{errors.New("something unexpected"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetryable(tt.err), "%v", tt.err)
	}
}
