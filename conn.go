package mysqlcl

import (
	"sync"

	"github.com/rs/zerolog"
)

// Conn owns at most one live native session handle. The zero value is a
// closed connection; Connect acquires a handle and Close releases it.
//
// A single mutex serializes the handle-management calls (Connect, Close,
// IsOpen, Query, Prepare and the introspection accessors) so two goroutines
// cannot race on acquiring or releasing the handle. It deliberately does not
// serialize row fetching: a streaming Result reads through the same native
// handle, so one Conn supports one active stream at a time. Drain or close
// the Result before issuing the next statement, and give concurrent
// goroutines their own Conn.
type Conn struct {
	mu     sync.Mutex
	handle uintptr
	log    zerolog.Logger
}

// ConnOption configures a Conn.
type ConnOption func(*Conn)

// WithLogger routes connect/query/prepare diagnostics to log. Without it
// failures are still returned as errors but nothing is logged.
func WithLogger(log zerolog.Logger) ConnOption {
	return func(c *Conn) {
		c.log = log
	}
}

// NewConn returns a closed connection. Connect must be called before any
// other operation.
func NewConn(opts ...ConnOption) *Conn {
	c := &Conn{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect establishes a session with the server. Any existing handle is
// closed first, so Connect doubles as reset-then-retry and may be called
// repeatedly. On failure the partially acquired handle is released, the
// server diagnostic is logged, and an *Error carrying the server errno is
// returned.
func (c *Conn) Connect(cfg Config) error {
	if err := loadClientLibrary(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != 0 {
		c_mysql_close(c.handle)
		c.handle = 0
	}
	handle := c_mysql_init(0)
	if handle == 0 {
		return ErrInitFailed
	}
	host, keepHost := cStringPtr(cfg.Host)
	user, keepUser := cStringPtr(cfg.User)
	passwd, keepPasswd := cStringPtr(cfg.Password)
	db, keepDb := cStringPtr(cfg.Database)
	socket, keepSocket := cStringPtr(cfg.UnixSocket)
	ret := c_mysql_real_connect(handle, host, user, passwd, db,
		uint32(cfg.Port), socket, c_ulong_t(cfg.Flags))
	keepHost()
	keepUser()
	keepPasswd()
	keepDb()
	keepSocket()
	if ret == 0 {
		err := connError(handle)
		c.log.Error().Uint16("errno", err.Errno).Str("sqlstate", err.SQLState).
			Str("host", cfg.Host).Msg("failed to connect to database: " + err.Message)
		c_mysql_close(handle)
		return err
	}
	c.handle = handle
	return nil
}

// Close releases the native handle. Calling Close on an already closed
// connection is a no-op. Closing also abandons any in-flight streaming
// Result; its outstanding Rows become invalid.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != 0 {
		c_mysql_close(c.handle)
		c.handle = 0
	}
	return nil
}

// IsOpen reports whether the session is live. This is a ping round-trip to
// the server, not a cached flag, and blocks for its duration.
func (c *Conn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return false
	}
	return c_mysql_ping(c.handle) == 0
}

// Query sends sql for execution and switches to streaming retrieval: rows
// are pulled from the server lazily as the Result is fetched, not buffered
// up front. The returned Result must be drained or closed before the next
// statement on this Conn.
//
// A nil Result with a nil error means the statement produced no result to
// own (INSERT, UPDATE and friends). A nil Result with a non-nil error means
// the statement failed; the connection itself stays open.
func (c *Conn) Query(sql string) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return nil, ErrConnClosed
	}
	text, keep := cTextPtr(sql)
	rc := c_mysql_real_query(c.handle, text, c_ulong_t(len(sql)))
	keep()
	if rc != 0 {
		err := connError(c.handle)
		c.log.Error().Uint16("errno", err.Errno).Msg("query failed: " + err.Message)
		return nil, err
	}
	res := c_mysql_use_result(c.handle)
	if res == 0 {
		if c_mysql_errno(c.handle) != 0 {
			err := connError(c.handle)
			c.log.Error().Uint16("errno", err.Errno).Msg("query failed: " + err.Message)
			return nil, err
		}
		// no result set to own
		return nil, nil
	}
	return &Result{res: res, numFields: int(c_mysql_num_fields(res))}, nil
}

// Prepare asks the server to parse sql. The returned statement's parameter
// count equals the number of ? placeholders and is fixed for its lifetime.
func (c *Conn) Prepare(sql string) (*Stmt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return nil, ErrConnClosed
	}
	stmt := c_mysql_stmt_init(c.handle)
	if stmt == 0 {
		err := connError(c.handle)
		c.log.Error().Uint16("errno", err.Errno).Msg("prepare failed: " + err.Message)
		return nil, err
	}
	text, keep := cTextPtr(sql)
	rc := c_mysql_stmt_prepare(stmt, text, c_ulong_t(len(sql)))
	keep()
	if rc != 0 {
		err := stmtError(stmt)
		c.log.Error().Uint16("errno", err.Errno).Msg("prepare failed: " + err.Message)
		c_mysql_stmt_close(stmt)
		return nil, err
	}
	n := int(c_mysql_stmt_param_count(stmt))
	return &Stmt{
		stmt:   stmt,
		params: make([]c_mysql_bind_t, n),
		ints:   make([]int64, n),
		floats: make([]float64, n),
		keep:   make([]any, n),
	}, nil
}

// InsertID returns the autoincrement identifier generated by the previous
// statement, or -1 when the connection is closed.
func (c *Conn) InsertID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return -1
	}
	return int64(c_mysql_insert_id(c.handle))
}

// AffectedRows returns the row count changed by the previous statement, or
// -1 when the connection is closed.
func (c *Conn) AffectedRows() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return -1
	}
	return int64(c_mysql_affected_rows(c.handle))
}

// MoreResults reports whether more result sets are pending from a
// multi-statement execution.
func (c *Conn) MoreResults() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return false
	}
	return c_mysql_more_results(c.handle) != 0
}

// NextResult advances to the next result set of a multi-statement
// execution: 0 when one is available, -1 when there are none (or the
// connection is closed), a positive error number on failure.
func (c *Conn) NextResult() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return -1
	}
	return int(c_mysql_next_result(c.handle))
}
