package mysqlcl

import (
	"fmt"
	"net"
	"strconv"

	gomysql "github.com/go-sql-driver/mysql"
)

// Config holds the parameters Connect hands to the client library. Zero
// values are passed through as "absent": the library then falls back to its
// own defaults (localhost, current user, default port).
type Config struct {
	Host     string
	User     string
	Password string
	Database string
	Port     uint16

	// UnixSocket, when set, connects over the local socket instead of TCP.
	UnixSocket string

	// Flags is the CLIENT_* capability bitmask, passed through untouched.
	Flags uint64
}

// ParseDSN converts a DSN in the widely used
// "user:password@tcp(host:port)/dbname" dialect into a Config.
// "user@unix(/var/run/mysqld/mysqld.sock)/dbname" selects a socket
// connection. Options after '?' configure the go-sql-driver parser and are
// ignored here; this package has no session-option layer.
func ParseDSN(dsn string) (Config, error) {
	parsed, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return Config{}, fmt.Errorf("mysqlcl: parse dsn: %w", err)
	}
	cfg := Config{
		User:     parsed.User,
		Password: parsed.Passwd,
		Database: parsed.DBName,
	}
	switch parsed.Net {
	case "unix":
		cfg.UnixSocket = parsed.Addr
	default:
		host, portStr, err := net.SplitHostPort(parsed.Addr)
		if err != nil {
			return Config{}, fmt.Errorf("mysqlcl: parse dsn address %q: %w", parsed.Addr, err)
		}
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return Config{}, fmt.Errorf("mysqlcl: parse dsn port %q: %w", portStr, err)
		}
		cfg.Host = host
		cfg.Port = uint16(port)
	}
	return cfg, nil
}
