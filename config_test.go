package mysqlcl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDSNTCP(t *testing.T) {
	cfg, err := ParseDSN("app:s3cret@tcp(db.internal:3307)/orders")
	require.NoError(t, err)
	require.Equal(t, Config{
		Host:     "db.internal",
		User:     "app",
		Password: "s3cret",
		Database: "orders",
		Port:     3307,
	}, cfg)
}

func TestParseDSNDefaults(t *testing.T) {
	cfg, err := ParseDSN("root@tcp(127.0.0.1)/")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Host)
	require.Equal(t, uint16(3306), cfg.Port)
	require.Equal(t, "root", cfg.User)
	require.Empty(t, cfg.Database)
	require.Empty(t, cfg.UnixSocket)
}

func TestParseDSNUnixSocket(t *testing.T) {
	cfg, err := ParseDSN("app:pw@unix(/var/run/mysqld/mysqld.sock)/orders")
	require.NoError(t, err)
	require.Equal(t, "/var/run/mysqld/mysqld.sock", cfg.UnixSocket)
	require.Empty(t, cfg.Host)
	require.Zero(t, cfg.Port)
	require.Equal(t, "orders", cfg.Database)
}

func TestParseDSNInvalid(t *testing.T) {
	_, err := ParseDSN("not a dsn @@@")
	require.Error(t, err)
}
