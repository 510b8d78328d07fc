package sessions_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"github.com/jrsteele09/go-coinbase-oauth/sessions"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	data := &sessions.Data{
		Credential: &sessions.Credential{AccessToken: "AT", RefreshToken: "RT"},
		CreatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	key := sessions.DefaultRedisPrefix + "sid"

	t.Run("save", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := sessions.NewRedisStore(db, "")

		mock.ExpectSet(key, string(payload), 30*time.Minute).SetVal("OK")
		require.NoError(t, store.Save(ctx, "sid", data, 30*time.Minute))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := sessions.NewRedisStore(db, "")

		mock.ExpectGet(key).SetVal(string(payload))
		got, err := store.Get(ctx, "sid")
		require.NoError(t, err)
		require.Equal(t, "AT", got.Credential.AccessToken)
		require.Equal(t, "RT", got.Credential.RefreshToken)
		require.True(t, data.CreatedAt.Equal(got.CreatedAt))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := sessions.NewRedisStore(db, "")

		mock.ExpectGet(key).RedisNil()
		_, err := store.Get(ctx, "sid")
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("corrupt value", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := sessions.NewRedisStore(db, "")

		mock.ExpectGet(key).SetVal("{not json")
		_, err := store.Get(ctx, "sid")
		require.Error(t, err)
		require.NotErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("delete with custom prefix", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := sessions.NewRedisStore(db, "test:")

		mock.ExpectDel("test:sid").SetVal(1)
		require.NoError(t, store.Delete(ctx, "sid"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
