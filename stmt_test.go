package mysqlcl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZeroStmtIsInert(t *testing.T) {
	var zero Stmt
	require.False(t, zero.Valid())
	require.Zero(t, zero.ParamCount())
	require.ErrorIs(t, zero.Execute(), ErrStmtClosed)
	require.ErrorIs(t, zero.ExecuteBound(), ErrStmtClosed)
	require.ErrorIs(t, zero.BindParam(0, 1), ErrStmtClosed)
	require.Equal(t, int64(-1), zero.AffectedRows())
	require.Equal(t, int64(-1), zero.InsertID())
	require.NoError(t, zero.Close())

	var nilStmt *Stmt
	require.False(t, nilStmt.Valid())
	require.Zero(t, nilStmt.ParamCount())
	require.NoError(t, nilStmt.Close())
}

// Arity and range checks run before anything native happens, so a dummy
// handle is enough to exercise them.
func TestExecuteArityRejectedLocally(t *testing.T) {
	s := &Stmt{
		stmt:   1,
		params: make([]c_mysql_bind_t, 2),
		ints:   make([]int64, 2),
		floats: make([]float64, 2),
		keep:   make([]any, 2),
	}
	require.Error(t, s.Execute(1))
	require.Error(t, s.Execute(1, 2, 3))
	require.Error(t, s.Execute())

	require.Error(t, s.BindParam(-1, 1))
	require.Error(t, s.BindParam(2, 1))
	require.Error(t, s.BindParam(0, struct{}{}))
}

func TestBindParamLayout(t *testing.T) {
	s := &Stmt{
		stmt:   1,
		params: make([]c_mysql_bind_t, 4),
		ints:   make([]int64, 4),
		floats: make([]float64, 4),
		keep:   make([]any, 4),
	}
	require.NoError(t, s.BindParam(0, 42))
	require.Equal(t, int32(MYSQL_TYPE_LONGLONG), s.params[0].BufferType)
	require.Equal(t, int64(42), s.ints[0])
	require.NotZero(t, s.params[0].Buffer)
	require.Zero(t, s.params[0].IsUnsigned)

	require.NoError(t, s.BindParam(1, uint64(7)))
	require.Equal(t, uint8(1), s.params[1].IsUnsigned)

	require.NoError(t, s.BindParam(2, "abc"))
	require.Equal(t, int32(MYSQL_TYPE_STRING), s.params[2].BufferType)
	require.Equal(t, c_ulong_t(3), s.params[2].BufferLength)
	require.NotZero(t, s.params[2].Buffer)

	require.NoError(t, s.BindParam(3, nil))
	require.Equal(t, int32(MYSQL_TYPE_NULL), s.params[3].BufferType)
	require.Zero(t, s.params[3].Buffer)

	// rebinding discards the previous binding entirely
	require.NoError(t, s.BindParam(2, nil))
	require.Equal(t, int32(MYSQL_TYPE_NULL), s.params[2].BufferType)
	require.Zero(t, s.params[2].BufferLength)
}

func TestPrepareParamCount(t *testing.T) {
	conn := openTestConn(t)
	mustExec(t, conn, "CREATE TEMPORARY TABLE mysqlcl_params (a INT, b VARCHAR(16), c INT)")

	stmt, err := conn.Prepare("INSERT INTO mysqlcl_params VALUES (?, ?, ?)")
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	defer stmt.Close()
	if !stmt.Valid() {
		t.Fatal("expected a valid statement")
	}
	if got := stmt.ParamCount(); got != 3 {
		t.Fatalf("expected 3 parameters, got %d", got)
	}
}

func TestPrepareMalformed(t *testing.T) {
	conn := openTestConn(t)
	stmt, err := conn.Prepare("INSERT INTO")
	if err == nil {
		stmt.Close()
		t.Fatal("expected prepare to fail")
	}
	if stmt.Valid() {
		t.Fatal("expected an invalid statement")
	}
	var myErr *Error
	if !errors.As(err, &myErr) || myErr.Errno == 0 {
		t.Fatalf("expected a server errno, got %v", err)
	}
	if !conn.IsOpen() {
		t.Fatal("connection must stay open after a failed prepare")
	}
}

func TestInsertRoundTrip(t *testing.T) {
	conn := openTestConn(t)
	mustExec(t, conn, `CREATE TEMPORARY TABLE mysqlcl_rt (
		id INT AUTO_INCREMENT PRIMARY KEY,
		n BIGINT,
		s VARBINARY(64)
	)`)

	stmt, err := conn.Prepare("INSERT INTO mysqlcl_rt (n, s) VALUES (?, ?)")
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	defer stmt.Close()

	if err := stmt.Execute(5, "abc"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if got := stmt.AffectedRows(); got != 1 {
		t.Fatalf("expected 1 affected row, got %d", got)
	}
	firstID := conn.InsertID()
	if firstID <= 0 {
		t.Fatalf("expected a positive insert id, got %d", firstID)
	}
	if got := stmt.InsertID(); got != firstID {
		t.Fatalf("statement insert id %d != connection insert id %d", got, firstID)
	}

	// manual binding path, including NULL and []byte
	if err := stmt.BindParam(0, nil); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := stmt.BindParam(1, []byte{0, 1, 2}); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := stmt.ExecuteBound(); err != nil {
		t.Fatalf("execute bound failed: %v", err)
	}
	if got := conn.InsertID(); got != firstID+1 {
		t.Fatalf("expected insert id %d, got %d", firstID+1, got)
	}

	res, err := conn.Query("SELECT n, s FROM mysqlcl_rt ORDER BY id")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	defer res.Close()

	row := res.FetchRow()
	require.True(t, row.Valid())
	require.Equal(t, "5", row.String(0))
	require.Equal(t, []byte("abc"), row.Bytes(1))

	row = res.FetchRow()
	require.True(t, row.Valid())
	require.True(t, row.IsNull(0))
	require.Equal(t, []byte{0, 1, 2}, row.Bytes(1))

	require.False(t, res.FetchRow().Valid())
}

func TestStmtCloseIdempotent(t *testing.T) {
	conn := openTestConn(t)
	stmt, err := conn.Prepare("SELECT ?")
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	require.True(t, stmt.Valid())
	require.Equal(t, 1, stmt.ParamCount())
	require.NoError(t, stmt.Close())
	require.False(t, stmt.Valid())
	require.NoError(t, stmt.Close())
	require.ErrorIs(t, stmt.Execute(1), ErrStmtClosed)
}

// mustExec runs DDL/DML that produces no result set.
func mustExec(t *testing.T, conn *Conn, sql string) {
	t.Helper()
	res, err := conn.Query(sql)
	if err != nil {
		t.Fatalf("exec %q: %v", sql, err)
	}
	if res.Valid() {
		res.Close()
		t.Fatalf("exec %q: unexpected result set", sql)
	}
}
