// internal/structuring/roster/store_test.go
package roster

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"warroom-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_NotEmpty(t *testing.T) {
	r := Default()
	assert.NotEmpty(t, r)
	assert.True(t, r.Contains("Apex Energy Partners"))
	assert.False(t, r.Contains("Unknown Client"))
}

func TestStore_LoadFromPostgresOnCacheMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(cacheKey).RedisNil()

	rows := sqlmock.NewRows([]string{"name"}).
		AddRow("Apex Energy Partners").
		AddRow("Summit Education Group")
	mock.ExpectQuery("SELECT name FROM clients").WillReturnRows(rows)

	expected := Roster{"Apex Energy Partners", "Summit Education Group"}
	payload, _ := json.Marshal(expected)
	redisMock.ExpectSet(cacheKey, payload, 10*time.Minute).SetVal("OK")

	store := NewStore(db, rdb, 10*time.Minute, logger.NewNoOpLogger())
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestStore_LoadFromCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cached := Roster{"Northgate Health Systems"}
	payload, _ := json.Marshal(cached)

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(cacheKey).SetVal(string(payload))

	store := NewStore(db, rdb, time.Minute, logger.NewNoOpLogger())
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, got)

	// Postgres must not be touched on a cache hit.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM clients").WillReturnError(assert.AnError)

	store := NewStore(db, nil, time.Minute, logger.NewNoOpLogger())
	_, err = store.Load(context.Background())
	assert.Error(t, err)
}

func TestStore_CacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name"}).AddRow("Bluebonnet Transit Alliance")
	mock.ExpectQuery("SELECT name FROM clients").WillReturnRows(rows)

	store := NewStore(db, rdb, time.Minute, logger.NewNoOpLogger())

	first, err := store.Load(context.Background())
	require.NoError(t, err)

	// Second load is served entirely from the cache.
	second, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.NoError(t, store.Invalidate(context.Background()))
	assert.False(t, mr.Exists(cacheKey))
}
