package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientHashRoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &Client{Client: db}
	ctx := context.Background()

	mock.ExpectHSet("provinces", "beira", "sofala").SetVal(1)
	mock.ExpectHGet("provinces", "beira").SetVal("sofala")
	mock.ExpectHGet("provinces", "lisboa").RedisNil()

	require.NoError(t, client.HSetString(ctx, "provinces", "beira", "sofala"))

	value, err := client.HGetString(ctx, "provinces", "beira")
	require.NoError(t, err)
	assert.Equal(t, "sofala", value)

	_, err = client.HGetString(ctx, "provinces", "lisboa")
	assert.True(t, IsNil(err))
	assert.ErrorIs(t, err, ErrNil)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientDeleteAndPing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &Client{Client: db}
	ctx := context.Background()

	mock.ExpectDel("provinces", "other").SetVal(2)
	mock.ExpectPing().SetVal("PONG")
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	require.NoError(t, client.Delete(ctx, "provinces", "other"))
	assert.NoError(t, client.Ping(ctx))
	assert.Error(t, client.Ping(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsNil(t *testing.T) {
	assert.False(t, IsNil(nil))
	assert.False(t, IsNil(errors.New("boom")))
	assert.True(t, IsNil(ErrNil))
}
