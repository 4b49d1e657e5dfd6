package redisstore

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fiber.Storage = (*Store)(nil)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := New("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestStoreSetGetDelete(t *testing.T) {
	store, mr := newTestStore(t)

	val, err := store.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("abc", []byte("payload"), time.Minute))
	assert.True(t, mr.Exists(defaultPrefix+"abc"))

	val, err = store.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	require.NoError(t, store.Delete("abc"))
	val, err = store.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, store.Set("abc", []byte("payload"), time.Minute))
	mr.FastForward(2 * time.Minute)

	val, err := store.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStoreResetKeepsForeignKeys(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("other:key", "v"))
	require.NoError(t, store.Set("a", []byte("1"), 0))
	require.NoError(t, store.Set("b", []byte("2"), 0))

	require.NoError(t, store.Reset())
	assert.False(t, mr.Exists(defaultPrefix+"a"))
	assert.False(t, mr.Exists(defaultPrefix+"b"))
	assert.True(t, mr.Exists("other:key"))
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	_, err = New("http://localhost:6379")
	assert.Error(t, err)
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New("redis://" + addr)
	assert.Error(t, err)
}
