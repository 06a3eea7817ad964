package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/bookshelf/internal/client/config"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/bookmarks"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabasePath = filepath.Join(t.TempDir(), "bookshelf.db")
	return c
}

func TestNewApp_SQLiteBookmarks(t *testing.T) {
	ctx := context.Background()
	a, err := NewApp(ctx, testConfig(t), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(ctx) })

	require.Nil(t, a.redis)
	require.Empty(t, a.getStatus())

	ids, err := a.library.SavedBookIDs(ctx)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestNewApp_RedisBookmarks(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	c := testConfig(t)
	c.BookmarkStore = config.BookmarkStoreRedis
	c.RedisAddr = mr.Addr()

	a, err := NewApp(ctx, c, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(ctx) })
	require.NotNil(t, a.redis)

	mr.SAdd(bookmarks.DefaultRedisKey, "B2", "B1")
	ids, err := a.library.SavedBookIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"B1", "B2"}, ids)
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := testConfig(t)
	c.BookmarkStore = config.BookmarkStoreRedis
	c.RedisAddr = addr

	_, err := NewApp(context.Background(), c, logging.Discard())
	require.Error(t, err)
}

func TestApp_RunExitsOnQuit(t *testing.T) {
	silencePrintln(t)
	ctx := context.Background()

	a, err := NewApp(ctx, testConfig(t), logging.Discard())
	require.NoError(t, err)

	var out bytes.Buffer
	a.in = strings.NewReader("exit\n")
	a.out = &out

	require.NoError(t, a.Run(ctx))
	require.Contains(t, out.String(), "Welcome to the bookshelf CLI")
}

func TestNewApp_CreatesDatabaseDirectory(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)
	c.DatabasePath = filepath.Join(t.TempDir(), "state", "bookshelf.db")

	a, err := NewApp(ctx, c, logging.Discard())
	require.NoError(t, err)
	a.Close(ctx)
}
