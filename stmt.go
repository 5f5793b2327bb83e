package mysqlcl

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Stmt owns a native prepared-statement handle together with the bind array
// for its placeholders. The array's length is fixed when Prepare parses the
// SQL; its element layout is the client ABI's MYSQL_BIND, which the library
// reads directly during execute.
//
// Bound buffers are borrowed, not copied: string and []byte binds point the
// native side straight at the caller's bytes. Stmt retains a reference so
// the garbage collector keeps them live, but the caller must not mutate a
// bound []byte until the following Execute or ExecuteBound returns.
//
// The zero Stmt and a closed Stmt are inert: Valid reports false and every
// operation returns ErrStmtClosed.
type Stmt struct {
	stmt   uintptr
	params []c_mysql_bind_t
	ints   []int64   // backing store for integer binds
	floats []float64 // backing store for float binds
	keep   []any     // pins borrowed buffers across the native call
}

// Valid reports whether the statement owns a native handle.
func (s *Stmt) Valid() bool {
	return s != nil && s.stmt != 0
}

// ParamCount returns the number of placeholders in the prepared SQL.
func (s *Stmt) ParamCount() int {
	if s == nil {
		return 0
	}
	return len(s.params)
}

// BindParam stores v into placeholder slot i. Supported kinds: nil (SQL
// NULL), the signed and unsigned integer types, float32/float64, string and
// []byte. A slot may be rebound; the previous binding is discarded.
func (s *Stmt) BindParam(i int, v any) error {
	if !s.Valid() {
		return ErrStmtClosed
	}
	if i < 0 || i >= len(s.params) {
		return fmt.Errorf("mysqlcl: bind index %d out of range for %d parameters", i, len(s.params))
	}
	b := &s.params[i]
	*b = c_mysql_bind_t{}
	s.keep[i] = nil
	switch x := v.(type) {
	case nil:
		b.BufferType = int32(MYSQL_TYPE_NULL)
	case int:
		s.bindInt(i, int64(x), false)
	case int8:
		s.bindInt(i, int64(x), false)
	case int16:
		s.bindInt(i, int64(x), false)
	case int32:
		s.bindInt(i, int64(x), false)
	case int64:
		s.bindInt(i, x, false)
	case uint:
		s.bindInt(i, int64(x), true)
	case uint8:
		s.bindInt(i, int64(x), true)
	case uint16:
		s.bindInt(i, int64(x), true)
	case uint32:
		s.bindInt(i, int64(x), true)
	case uint64:
		s.bindInt(i, int64(x), true)
	case float32:
		s.bindFloat(i, float64(x))
	case float64:
		s.bindFloat(i, x)
	case string:
		if len(x) > 0 {
			b.Buffer = uintptr(unsafe.Pointer(unsafe.StringData(x)))
		}
		b.BufferLength = c_ulong_t(len(x))
		b.BufferType = int32(MYSQL_TYPE_STRING)
		s.keep[i] = x
	case []byte:
		if len(x) > 0 {
			b.Buffer = uintptr(unsafe.Pointer(&x[0]))
		}
		b.BufferLength = c_ulong_t(len(x))
		b.BufferType = int32(MYSQL_TYPE_BLOB)
		s.keep[i] = x
	default:
		return fmt.Errorf("mysqlcl: unsupported bind type %T", v)
	}
	return nil
}

func (s *Stmt) bindInt(i int, v int64, unsigned bool) {
	s.ints[i] = v
	b := &s.params[i]
	b.Buffer = uintptr(unsafe.Pointer(&s.ints[i]))
	b.BufferType = int32(MYSQL_TYPE_LONGLONG)
	if unsigned {
		b.IsUnsigned = 1
	}
}

func (s *Stmt) bindFloat(i int, v float64) {
	s.floats[i] = v
	b := &s.params[i]
	b.Buffer = uintptr(unsafe.Pointer(&s.floats[i]))
	b.BufferType = int32(MYSQL_TYPE_DOUBLE)
}

// Execute binds args positionally into slots 0..n-1 and executes. The
// argument count must equal ParamCount; a mismatch is rejected before
// anything is sent to the server.
func (s *Stmt) Execute(args ...any) error {
	if !s.Valid() {
		return ErrStmtClosed
	}
	if len(args) != len(s.params) {
		return fmt.Errorf("mysqlcl: got %d args, want %d", len(args), len(s.params))
	}
	for i, v := range args {
		if err := s.BindParam(i, v); err != nil {
			return err
		}
	}
	return s.submit()
}

// ExecuteBound executes with the slots populated by earlier BindParam
// calls. All ParamCount slots must have been bound; an unbound slot is sent
// as its zero binding, which the server rejects.
func (s *Stmt) ExecuteBound() error {
	if !s.Valid() {
		return ErrStmtClosed
	}
	return s.submit()
}

// submit pushes the bind array to the client library and executes. The
// borrowed buffers in keep must stay live until the native call returns.
func (s *Stmt) submit() error {
	var binds uintptr
	if len(s.params) > 0 {
		binds = uintptr(unsafe.Pointer(&s.params[0]))
	}
	if c_mysql_stmt_bind_param(s.stmt, binds) != 0 {
		return stmtError(s.stmt)
	}
	rc := c_mysql_stmt_execute(s.stmt)
	runtime.KeepAlive(s.keep)
	runtime.KeepAlive(s.ints)
	runtime.KeepAlive(s.floats)
	if rc != 0 {
		return stmtError(s.stmt)
	}
	return nil
}

// AffectedRows returns the row count changed by the last Execute, or -1 on
// a closed statement.
func (s *Stmt) AffectedRows() int64 {
	if !s.Valid() {
		return -1
	}
	return int64(c_mysql_stmt_affected_rows(s.stmt))
}

// InsertID returns the autoincrement identifier generated by the last
// Execute, or -1 on a closed statement.
func (s *Stmt) InsertID() int64 {
	if !s.Valid() {
		return -1
	}
	return int64(c_mysql_stmt_insert_id(s.stmt))
}

// Close releases the statement handle and bind array. Idempotent; a closed
// statement's destructor-equivalent is this no-op.
func (s *Stmt) Close() error {
	if s == nil || s.stmt == 0 {
		return nil
	}
	c_mysql_stmt_close(s.stmt)
	s.stmt = 0
	s.params = nil
	s.ints = nil
	s.floats = nil
	s.keep = nil
	return nil
}
