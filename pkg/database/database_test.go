package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devtrack/engine/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func TestOpenSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "open.db")
	db, err := Open(context.Background(), Options{Driver: DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, Ping(context.Background(), db))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	require.Equal(t, 1, fk)
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	require.Equal(t, "dev.db?_pragma=foreign_keys(1)", sqliteDSN("dev.db"))
	require.Equal(t, "dev.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("dev.db?_pragma=busy_timeout(5000)"))
	require.Equal(t, "dev.db?_pragma=foreign_keys(0)", sqliteDSN("dev.db?_pragma=foreign_keys(0)"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle", DSN: "x"})
	require.ErrorContains(t, err, "unsupported database driver")
}

func TestBackoffIsCapped(t *testing.T) {
	b := backoff{maxRetries: 5, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}
	require.Equal(t, 500*time.Millisecond, b.nextDelay(0))
	require.Equal(t, 2*time.Second, b.nextDelay(2))
	require.Equal(t, 5*time.Second, b.nextDelay(6))
}
